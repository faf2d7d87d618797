package domain

import "fmt"

// KeyPrefix namespaces every Redis key the storefront writes. Repositories
// build their keys from it, e.g. "nomura:item:<id>" or "nomura:cart:<id>".
const KeyPrefix = "nomura:"

// BudgetDailyKey returns the counter key for one day of embedding token
// spend. date is formatted as 2006-01-02.
func BudgetDailyKey(provider, date string) string {
	return fmt.Sprintf("%sbudget:%s:daily:%s", KeyPrefix, provider, date)
}

// BudgetMonthlyKey returns the counter key for one month of embedding token
// spend. month is formatted as 2006-01.
func BudgetMonthlyKey(provider, month string) string {
	return fmt.Sprintf("%sbudget:%s:monthly:%s", KeyPrefix, provider, month)
}
