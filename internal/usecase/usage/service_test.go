package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shirwani/chloe-nomura-home/internal/domain"
)

// --- Mocks ---

type mockBudgetReader struct {
	dailyLimit       int64
	monthlyLimit     int64
	dailyUsed        int64
	monthlyUsed      int64
	remainingDaily   int64
	remainingMonthly int64
}

func (m *mockBudgetReader) DailyLimit() int64       { return m.dailyLimit }
func (m *mockBudgetReader) MonthlyLimit() int64     { return m.monthlyLimit }
func (m *mockBudgetReader) DailyUsed() int64        { return m.dailyUsed }
func (m *mockBudgetReader) MonthlyUsed() int64      { return m.monthlyUsed }
func (m *mockBudgetReader) RemainingDaily() int64   { return m.remainingDaily }
func (m *mockBudgetReader) RemainingMonthly() int64 { return m.remainingMonthly }

type mockCounters struct {
	data map[string]int64
	err  error
}

func (m *mockCounters) Get(_ context.Context, key string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.data[key], nil
}

func dateAgo(daysBack int) string {
	return time.Now().UTC().AddDate(0, 0, -daysBack).Format("2006-01-02")
}

// --- Tests ---

func TestToday_UsesLiveTracker(t *testing.T) {
	br := &mockBudgetReader{
		dailyLimit:       10000,
		dailyUsed:        3000,
		remainingDaily:   7000,
		monthlyLimit:     100000,
		monthlyUsed:      50000,
		remainingMonthly: 50000,
	}
	// Persisted counter is stale on purpose: the write-behind lags.
	counters := &mockCounters{data: map[string]int64{
		domain.BudgetDailyKey("openai", dateAgo(0)): 2500,
	}}

	svc := New("openai", br, counters)
	r, err := svc.Today(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(r.Days()) != 1 {
		t.Fatalf("expected 1 day, got %d", len(r.Days()))
	}
	if r.Days()[0].Date() != dateAgo(0) {
		t.Errorf("expected today's date, got %q", r.Days()[0].Date())
	}
	if r.Days()[0].Tokens() != 3000 {
		t.Errorf("expected live tracker value 3000, got %d", r.Days()[0].Tokens())
	}

	b := r.Budget()
	if b.DailyLimit() != 10000 || b.DailyUsed() != 3000 || b.DailyRemaining() != 7000 {
		t.Errorf("daily snapshot = %d/%d/%d", b.DailyLimit(), b.DailyUsed(), b.DailyRemaining())
	}
	if b.MonthlyLimit() != 100000 || b.MonthlyRemaining() != 50000 {
		t.Errorf("monthly snapshot = %d/%d", b.MonthlyLimit(), b.MonthlyRemaining())
	}
	if b.IsExhausted() {
		t.Error("budget should not be exhausted")
	}
	if b.ResetsAt() <= time.Now().UTC().UnixMilli() {
		t.Errorf("ResetsAt %d should be in the future", b.ResetsAt())
	}
}

func TestToday_NoBudget_ReadsCounter(t *testing.T) {
	counters := &mockCounters{data: map[string]int64{
		domain.BudgetDailyKey("openai", dateAgo(0)): 250,
	}}

	svc := New("openai", nil, counters)
	r, err := svc.Today(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Days()[0].Tokens() != 250 {
		t.Errorf("expected counter value 250, got %d", r.Days()[0].Tokens())
	}
	if r.Budget().DailyRemaining() != -1 {
		t.Errorf("expected unlimited budget, got remaining %d", r.Budget().DailyRemaining())
	}
}

func TestWindow_ReadsTrailingDays(t *testing.T) {
	br := &mockBudgetReader{dailyUsed: 500}
	counters := &mockCounters{data: map[string]int64{
		domain.BudgetDailyKey("openai", dateAgo(2)): 120,
		domain.BudgetDailyKey("openai", dateAgo(1)): 340,
	}}

	svc := New("openai", br, counters)
	r, err := svc.Window(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	days := r.Days()
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}

	// Oldest first, today last from the live tracker.
	if days[0].Date() != dateAgo(2) || days[0].Tokens() != 120 {
		t.Errorf("days[0] = %s/%d", days[0].Date(), days[0].Tokens())
	}
	if days[1].Date() != dateAgo(1) || days[1].Tokens() != 340 {
		t.Errorf("days[1] = %s/%d", days[1].Date(), days[1].Tokens())
	}
	if days[2].Date() != dateAgo(0) || days[2].Tokens() != 500 {
		t.Errorf("days[2] = %s/%d", days[2].Date(), days[2].Tokens())
	}

	if r.TotalTokens() != 960 {
		t.Errorf("expected total 960, got %d", r.TotalTokens())
	}
}

func TestWindow_ClampsDays(t *testing.T) {
	svc := New("openai", nil, nil)

	r, err := svc.Window(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Days()) != 1 {
		t.Errorf("expected clamp to 1 day, got %d", len(r.Days()))
	}

	r, err = svc.Window(context.Background(), 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Days()) != MaxWindowDays {
		t.Errorf("expected clamp to %d days, got %d", MaxWindowDays, len(r.Days()))
	}
}

func TestWindow_MissingDaysReportZero(t *testing.T) {
	svc := New("openai", nil, &mockCounters{data: map[string]int64{}})

	r, err := svc.Window(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, d := range r.Days() {
		if d.Tokens() != 0 {
			t.Errorf("expected 0 tokens for %s, got %d", d.Date(), d.Tokens())
		}
	}
}

func TestWindow_CounterError(t *testing.T) {
	counters := &mockCounters{err: errors.New("connection refused")}

	svc := New("openai", nil, counters)
	_, err := svc.Window(context.Background(), 3)
	if err == nil {
		t.Fatal("expected error from counter store")
	}
}

func TestToday_Exhausted(t *testing.T) {
	br := &mockBudgetReader{
		dailyLimit:     5000,
		dailyUsed:      5000,
		remainingDaily: 0,
	}

	svc := New("openai", br, nil)
	r, err := svc.Today(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !r.Budget().IsExhausted() {
		t.Error("budget should be exhausted when remaining is 0")
	}
}

func TestToday_MonthlyExhausted(t *testing.T) {
	br := &mockBudgetReader{
		dailyLimit:       0,
		remainingDaily:   -1,
		monthlyLimit:     100000,
		monthlyUsed:      100000,
		remainingMonthly: 0,
	}

	svc := New("openai", br, nil)
	r, err := svc.Today(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !r.Budget().IsExhausted() {
		t.Error("budget should be exhausted when monthly cap is spent")
	}
}
