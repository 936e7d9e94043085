package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for the lead-capture flows.
type LeadMetrics struct {
	webhookTotal    *prometheus.CounterVec
	webhookLatency  *prometheus.HistogramVec
	emailTotal      *prometheus.CounterVec
	callTotal       *prometheus.CounterVec
	completionTotal *prometheus.CounterVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		webhookTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aimissoula",
			Subsystem: "voice",
			Name:      "webhook_total",
			Help:      "Total voice platform webhooks received",
		}, []string{"event_type", "outcome"}),
		webhookLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aimissoula",
			Subsystem: "voice",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of voice webhook processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event_type"}),
		emailTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aimissoula",
			Subsystem: "notify",
			Name:      "lead_email_total",
			Help:      "Total lead notification emails attempted",
		}, []string{"status"}),
		callTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aimissoula",
			Subsystem: "voice",
			Name:      "outbound_call_total",
			Help:      "Total outbound demo calls triggered",
		}, []string{"status"}),
		completionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aimissoula",
			Subsystem: "llm",
			Name:      "completion_total",
			Help:      "Total LLM completions served",
		}, []string{"endpoint", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.webhookTotal, m.webhookLatency, m.emailTotal, m.callTotal, m.completionTotal)
	return m
}

func (m *LeadMetrics) ObserveWebhook(eventType, outcome string) {
	if m == nil {
		return
	}
	m.webhookTotal.WithLabelValues(eventType, outcome).Inc()
}

func (m *LeadMetrics) ObserveWebhookLatency(eventType string, seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.WithLabelValues(eventType).Observe(seconds)
}

func (m *LeadMetrics) ObserveLeadEmail(status string) {
	if m == nil {
		return
	}
	m.emailTotal.WithLabelValues(status).Inc()
}

func (m *LeadMetrics) ObserveCallTrigger(status string) {
	if m == nil {
		return
	}
	m.callTotal.WithLabelValues(status).Inc()
}

func (m *LeadMetrics) ObserveCompletion(endpoint, status string) {
	if m == nil {
		return
	}
	m.completionTotal.WithLabelValues(endpoint, status).Inc()
}
