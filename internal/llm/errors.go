package llm

import "errors"

// ProviderError wraps a vendor failure that arrived with an HTTP status,
// so the proxy endpoints can relay the status without leaking the vendor
// error body.
type ProviderError struct {
	Status int
	Err    error
}

func (e *ProviderError) Error() string { return e.Err.Error() }

func (e *ProviderError) Unwrap() error { return e.Err }

// ProviderStatus returns the vendor HTTP status carried by err, or 0 when
// the failure never reached the vendor (transport errors, timeouts).
func ProviderStatus(err error) int {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Status
	}
	return 0
}
