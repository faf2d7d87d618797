package usage

// DayUsage is one day of embedding token spend.
type DayUsage struct {
	date   string
	tokens int64
}

// NewDayUsage creates a daily spend entry. date is formatted as 2006-01-02.
func NewDayUsage(date string, tokens int64) DayUsage {
	return DayUsage{date: date, tokens: tokens}
}

// Date returns the day, formatted as 2006-01-02.
func (d DayUsage) Date() string { return d.date }

// Tokens returns tokens consumed that day.
func (d DayUsage) Tokens() int64 { return d.tokens }

// Budget is a point-in-time snapshot of the embedding token budget.
// Remaining values of -1 mean unlimited.
type Budget struct {
	dailyLimit       int64
	dailyUsed        int64
	dailyRemaining   int64
	monthlyLimit     int64
	monthlyUsed      int64
	monthlyRemaining int64
	exhausted        bool
	resetsAt         int64 // unix millis, converted to ISO 8601 at the transport layer
}

// NewBudget creates a Budget snapshot.
func NewBudget(
	dailyLimit, dailyUsed, dailyRemaining int64,
	monthlyLimit, monthlyUsed, monthlyRemaining int64,
	exhausted bool, resetsAt int64,
) Budget {
	return Budget{
		dailyLimit:       dailyLimit,
		dailyUsed:        dailyUsed,
		dailyRemaining:   dailyRemaining,
		monthlyLimit:     monthlyLimit,
		monthlyUsed:      monthlyUsed,
		monthlyRemaining: monthlyRemaining,
		exhausted:        exhausted,
		resetsAt:         resetsAt,
	}
}

// Unlimited returns a Budget with no caps configured.
func Unlimited() Budget {
	return Budget{dailyRemaining: -1, monthlyRemaining: -1}
}

// DailyLimit returns the daily token cap (0 = unlimited).
func (b Budget) DailyLimit() int64 { return b.dailyLimit }

// DailyUsed returns tokens consumed today.
func (b Budget) DailyUsed() int64 { return b.dailyUsed }

// DailyRemaining returns tokens left today (-1 if unlimited).
func (b Budget) DailyRemaining() int64 { return b.dailyRemaining }

// MonthlyLimit returns the monthly token cap (0 = unlimited).
func (b Budget) MonthlyLimit() int64 { return b.monthlyLimit }

// MonthlyUsed returns tokens consumed this month.
func (b Budget) MonthlyUsed() int64 { return b.monthlyUsed }

// MonthlyRemaining returns tokens left this month (-1 if unlimited).
func (b Budget) MonthlyRemaining() int64 { return b.monthlyRemaining }

// IsExhausted reports whether any configured cap is spent.
func (b Budget) IsExhausted() bool { return b.exhausted }

// ResetsAt returns the next daily rollover (unix millis).
func (b Budget) ResetsAt() int64 { return b.resetsAt }

// Report is an embedding spend report for the admin surface.
type Report struct {
	generatedAt int64
	budget      Budget
	days        []DayUsage
}

// NewReport creates a usage report. days are ordered oldest first.
func NewReport(generatedAt int64, b Budget, days []DayUsage) Report {
	cp := make([]DayUsage, len(days))
	copy(cp, days)
	return Report{generatedAt: generatedAt, budget: b, days: cp}
}

// GeneratedAt returns when the report was built (unix millis).
func (r Report) GeneratedAt() int64 { return r.generatedAt }

// Budget returns the budget snapshot.
func (r Report) Budget() Budget { return r.budget }

// Days returns per-day spend, oldest first.
func (r Report) Days() []DayUsage { return r.days }

// TotalTokens sums spend across the report window.
func (r Report) TotalTokens() int64 {
	var total int64
	for _, d := range r.days {
		total += d.tokens
	}
	return total
}
