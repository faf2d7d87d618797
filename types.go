package nomurahome

import "time"

// Item is a catalog listing.
type Item struct {
	ID            string
	Name          string
	Description   string
	Category      string
	Price         float64
	OriginalPrice float64 // pre-discount price, 0 when not on sale
	Status        string  // "available", "pending", "sold", "unlisted"
	Views         int
	Likes         int
	Images        []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ItemDraft is the caller-supplied shape for creating or upserting an
// item. A blank ID gets a minted UUID on Create; BatchUpsert requires
// explicit IDs. A blank Status defaults to available; a blank Category
// is inferred from the name and description.
type ItemDraft struct {
	ID            string
	Name          string
	Description   string
	Category      string
	Price         float64
	OriginalPrice float64
	Status        string
	Images        []string
}

// ListFilter narrows a catalog listing. Zero values mean no filtering.
type ListFilter struct {
	Query    string
	Category string
	Status   string
	Limit    int
}

// BatchResult reports the outcome of one row in a batch upsert.
type BatchResult struct {
	ID  string
	OK  bool
	Err error
}

// SearchHit is one ranked search result.
type SearchHit struct {
	Item          Item
	SemanticScore float64
	KeywordScore  float64
	CombinedScore float64
}

// SearchTuning overrides the hybrid ranking weights. Zero fields keep
// the defaults (0.3 semantic, 0.4 keyword, 0.3 category, 0.3 cutoff).
type SearchTuning struct {
	SemanticWeight float64
	KeywordWeight  float64
	CategoryWeight float64
	MinScore       float64
}

// CartLine is one cart entry resolved against the live catalog.
type CartLine struct {
	ItemID   string
	Quantity int
	AddedAt  time.Time
	Item     Item
	Subtotal float64
}

// Cart is a shopping cart with its lines priced at read time.
type Cart struct {
	ID       string
	Lines    []CartLine
	Subtotal float64
}

// Customer identifies the buyer and shipping destination of a sale.
type Customer struct {
	Email           string
	Name            string
	ShippingAddress string
}

// OrderLine is one sold item inside an order.
type OrderLine struct {
	ItemID    string
	Name      string
	UnitPrice float64
	Quantity  int
}

// OrderTotals is the money breakdown of an order.
type OrderTotals struct {
	Subtotal float64
	Taxes    float64
	Shipping float64
	Total    float64
}

// Order is a completed sale.
type Order struct {
	ID            string
	CartID        string
	Customer      Customer
	Lines         []OrderLine
	Totals        OrderTotals
	PaymentID     string
	PaymentMethod string
	Confirmation  string
	CreatedAt     time.Time
}

// Account types for User.Type.
const (
	UserTypeCustomer = "customer"
	UserTypeAdmin    = "admin"
)

// User is a registered account. The password hash never leaves the
// engine.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Type      string
	CreatedAt time.Time
}

// DayUsage is one day of embedding token spend.
type DayUsage struct {
	Date   string // 2006-01-02
	Tokens int64
}

// BudgetStatus is a point-in-time snapshot of the embedding token
// budget. Remaining values of -1 mean unlimited.
type BudgetStatus struct {
	DailyLimit       int64
	DailyUsed        int64
	DailyRemaining   int64
	MonthlyLimit     int64
	MonthlyUsed      int64
	MonthlyRemaining int64
	Exhausted        bool
	ResetsAt         time.Time
}

// UsageReport is the embedding spend report.
type UsageReport struct {
	GeneratedAt time.Time
	Budget      BudgetStatus
	Days        []DayUsage // oldest first
	TotalTokens int64
}

// HealthStatus represents the aggregated engine health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component -> "ok"/"error"
}
