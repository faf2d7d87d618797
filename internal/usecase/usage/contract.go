package usage

import "context"

// BudgetReader provides read-only access to the live token budget state.
type BudgetReader interface {
	DailyLimit() int64
	MonthlyLimit() int64
	DailyUsed() int64
	MonthlyUsed() int64
	RemainingDaily() int64
	RemainingMonthly() int64
}

// CounterStore reads persisted per-day spend counters.
type CounterStore interface {
	Get(ctx context.Context, key string) (int64, error)
}
