package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
	domusage "github.com/shirwani/chloe-nomura-home/internal/domain/usage"
)

// MaxWindowDays caps how far back Window will look.
const MaxWindowDays = 31

// Service builds embedding spend reports for the admin surface.
type Service struct {
	provider string
	budget   BudgetReader
	counters CounterStore
}

// New creates a Service. budget and counters may each be nil; a missing
// budget reports as unlimited, a missing counter store as zero spend.
func New(provider string, budget BudgetReader, counters CounterStore) *Service {
	return &Service{provider: provider, budget: budget, counters: counters}
}

// Today reports today's spend and the current budget snapshot.
func (s *Service) Today(ctx context.Context) (domusage.Report, error) {
	return s.report(ctx, 1)
}

// Window reports per-day spend for the trailing days, today included.
func (s *Service) Window(ctx context.Context, days int) (domusage.Report, error) {
	if days < 1 {
		days = 1
	}
	if days > MaxWindowDays {
		days = MaxWindowDays
	}
	return s.report(ctx, days)
}

func (s *Service) report(ctx context.Context, days int) (domusage.Report, error) {
	now := time.Now().UTC()

	entries := make([]domusage.DayUsage, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")

		tokens, err := s.tokensFor(ctx, date, i == 0)
		if err != nil {
			return domusage.Report{}, err
		}
		entries = append(entries, domusage.NewDayUsage(date, tokens))
	}

	return domusage.NewReport(now.UnixMilli(), s.budgetSnapshot(now), entries), nil
}

// tokensFor reads one day's spend. Today comes from the in-memory tracker
// when available: the persisted counter lags behind the write-behind.
func (s *Service) tokensFor(ctx context.Context, date string, today bool) (int64, error) {
	if today && s.budget != nil {
		return s.budget.DailyUsed(), nil
	}
	if s.counters == nil {
		return 0, nil
	}
	val, err := s.counters.Get(ctx, domain.BudgetDailyKey(s.provider, date))
	if err != nil {
		return 0, fmt.Errorf("usage day %s: %w", date, err)
	}
	return val, nil
}

func (s *Service) budgetSnapshot(now time.Time) domusage.Budget {
	if s.budget == nil {
		return domusage.Unlimited()
	}

	dailyRemaining := s.budget.RemainingDaily()
	monthlyRemaining := s.budget.RemainingMonthly()
	exhausted := (s.budget.DailyLimit() > 0 && dailyRemaining == 0) ||
		(s.budget.MonthlyLimit() > 0 && monthlyRemaining == 0)

	nextMidnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)

	return domusage.NewBudget(
		s.budget.DailyLimit(), s.budget.DailyUsed(), dailyRemaining,
		s.budget.MonthlyLimit(), s.budget.MonthlyUsed(), monthlyRemaining,
		exhausted, nextMidnight.UnixMilli(),
	)
}
