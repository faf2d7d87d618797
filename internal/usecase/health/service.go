package health

import "context"

// Status is the aggregated health of the storefront.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the store serves traffic but search lost its semantic leg.
	Degraded Status = "degraded"
	// Unhealthy indicates the catalog store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	store    StorePinger
	embedder EmbedderChecker
}

// New creates a Service. embedder can be nil when semantic search is off.
func New(store StorePinger, embedder EmbedderChecker) *Service {
	return &Service{store: store, embedder: embedder}
}

// Check probes Redis and the embedding provider. Everything lives in
// Redis, so losing it takes the storefront down; a failing embedder
// only degrades search to its keyword legs.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.store.Ping(ctx); err != nil {
		checks["redis"] = CheckError
		status = Unhealthy
	} else {
		checks["redis"] = CheckOK
	}

	if s.embedder != nil {
		if err := s.embedder.HealthCheck(ctx); err != nil {
			checks["embedder"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["embedder"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
