package nomurahome

import (
	"context"
	"fmt"
	"time"
)

// UsageService reports embedding token spend. The embedded engine reads
// the same per-day counters the storefront server writes, so reports
// reflect server-side spend; live-day numbers require the server's
// budget tracker and may lag here.
type UsageService struct {
	svc usageUseCase
	obs *observer
}

// Today returns the current day's spend and budget snapshot.
func (s *UsageService) Today(ctx context.Context) (report UsageReport, err error) {
	start := time.Now()
	defer func() { s.obs.observe("usage.today", start, err) }()

	r, err := s.svc.Today(ctx)
	if err != nil {
		return UsageReport{}, fmt.Errorf("usage today: %w", err)
	}
	return fromUsageReport(r), nil
}

// Window returns per-day spend for the trailing window. days is
// clamped to [1, 31].
func (s *UsageService) Window(ctx context.Context, days int) (report UsageReport, err error) {
	start := time.Now()
	defer func() { s.obs.observe("usage.window", start, err) }()

	r, err := s.svc.Window(ctx, days)
	if err != nil {
		return UsageReport{}, fmt.Errorf("usage window: %w", err)
	}
	return fromUsageReport(r), nil
}
