package observability

import "context"

// HealthStatus is the reported state of an upstream dependency or of the
// aggregate service.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusDegraded HealthStatus = "degraded"
)

// severity orders statuses from healthy to broken so aggregation can keep
// the worst one seen.
func (s HealthStatus) severity() int {
	switch s {
	case HealthStatusDown:
		return 2
	case HealthStatusDegraded:
		return 1
	default:
		return 0
	}
}

// Health is one dependency's probe result.
type Health struct {
	Name    string            `json:"name"`
	Status  HealthStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// ServiceHealth aggregates dependency probes into an overall status for the
// service, suitable for serving from a health endpoint.
type ServiceHealth struct {
	Service    string       `json:"service"`
	Status     HealthStatus `json:"status"`
	Version    string       `json:"version,omitempty"`
	Components []Health     `json:"components,omitempty"`
}

// HealthChecker is implemented by anything that can probe its own upstream,
// such as a REST controller probing its base endpoint.
type HealthChecker interface {
	CheckHealth(ctx context.Context) Health
}

// NewServiceHealth returns an aggregate that starts out up and degrades as
// components report problems.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{
		Service: service,
		Status:  HealthStatusUp,
		Version: version,
	}
}

// AddComponent records a probe result. The aggregate status only ever moves
// toward the worst status reported so far.
func (sh *ServiceHealth) AddComponent(ch Health) {
	sh.Components = append(sh.Components, ch)
	if ch.Status.severity() > sh.Status.severity() {
		sh.Status = ch.Status
	}
}
