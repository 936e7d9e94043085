package leads

import "errors"

var (
	// ErrNameRequired is returned when the name gate field is missing
	ErrNameRequired = errors.New("name is required")

	// ErrEmailRequired is returned when the email gate field is missing
	ErrEmailRequired = errors.New("email is required")
)
