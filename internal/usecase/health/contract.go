package health

import "context"

// StorePinger checks catalog store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// EmbedderChecker checks embedding provider availability.
type EmbedderChecker interface {
	HealthCheck(ctx context.Context) error
}
