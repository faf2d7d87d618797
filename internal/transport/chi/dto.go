package chi

import (
	"time"

	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
	domorder "github.com/shirwani/chloe-nomura-home/internal/domain/order"
	domusage "github.com/shirwani/chloe-nomura-home/internal/domain/usage"
	domuser "github.com/shirwani/chloe-nomura-home/internal/domain/user"
	cartuc "github.com/shirwani/chloe-nomura-home/internal/usecase/cart"
	searchuc "github.com/shirwani/chloe-nomura-home/internal/usecase/search"
)

// Error codes returned in the JSON error envelope.
const (
	codeBadRequest             = "bad_request"
	codeValidationFailed       = "validation_failed"
	codeUnauthorized           = "unauthorized"
	codeInvalidCredentials     = "invalid_credentials"
	codeItemNotFound           = "item_not_found"
	codeCartNotFound           = "cart_not_found"
	codeOrderNotFound          = "order_not_found"
	codeUserNotFound           = "user_not_found"
	codeCategoryNotFound       = "category_not_found"
	codeItemExists             = "item_already_exists"
	codeUserExists             = "user_already_exists"
	codeItemUnavailable        = "item_unavailable"
	codeInvalidQuantity        = "invalid_quantity"
	codeResetTokenInvalid      = "reset_token_invalid"
	codeBudgetExceeded         = "embedding_budget_exceeded"
	codeEmbeddingProviderError = "embedding_provider_error"
	codeSearchUnavailable      = "search_unavailable"
	codeInternalError          = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type itemPayload struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"original_price,omitempty"`
	Status        string    `json:"status"`
	Views         int       `json:"views"`
	Likes         int       `json:"likes"`
	Images        []string  `json:"images,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func itemToPayload(it item.Item) itemPayload {
	return itemPayload{
		ID:            it.ID(),
		Name:          it.Name(),
		Description:   it.Description(),
		Category:      it.Category(),
		Price:         it.Price(),
		OriginalPrice: it.OriginalPrice(),
		Status:        string(it.Status()),
		Views:         it.Views(),
		Likes:         it.Likes(),
		Images:        it.Images(),
		CreatedAt:     time.UnixMilli(it.CreatedAt()).UTC(),
		UpdatedAt:     time.UnixMilli(it.UpdatedAt()).UTC(),
	}
}

type listResponse struct {
	Items []itemPayload `json:"items"`
	Count int           `json:"count"`
}

type searchResultPayload struct {
	Item          itemPayload `json:"item"`
	SemanticScore float64     `json:"semantic_score"`
	KeywordScore  float64     `json:"keyword_score"`
	CombinedScore float64     `json:"combined_score"`
}

func searchResultToPayload(r *searchuc.ScoredResult) searchResultPayload {
	return searchResultPayload{
		Item:          itemToPayload(r.Item),
		SemanticScore: r.SemanticScore,
		KeywordScore:  r.KeywordScore,
		CombinedScore: r.CombinedScore,
	}
}

type searchResponse struct {
	Results []searchResultPayload `json:"results"`
	Count   int                   `json:"count"`
}

type likeResponse struct {
	ItemID string `json:"item_id"`
	Liked  bool   `json:"liked"`
	Likes  int64  `json:"likes"`
}

type categoriesResponse struct {
	Categories map[string]int `json:"categories"`
}

type categoryChangeResponse struct {
	Moved int `json:"moved"`
}

type backfillResponse struct {
	Updated int `json:"updated"`
}

type cartLinePayload struct {
	Item     itemPayload `json:"item"`
	Quantity int         `json:"quantity"`
	AddedAt  time.Time   `json:"added_at"`
	Subtotal float64     `json:"subtotal"`
}

type cartPayload struct {
	CartID   string            `json:"cart_id"`
	Lines    []cartLinePayload `json:"lines"`
	Subtotal float64           `json:"subtotal"`
}

func cartToPayload(v cartuc.View) cartPayload {
	lines := make([]cartLinePayload, len(v.Lines))
	for i, l := range v.Lines {
		lines[i] = cartLinePayload{
			Item:     itemToPayload(l.Item),
			Quantity: l.Line.Quantity(),
			AddedAt:  time.UnixMilli(l.Line.AddedAt()).UTC(),
			Subtotal: l.Subtotal,
		}
	}
	return cartPayload{CartID: v.CartID, Lines: lines, Subtotal: v.Subtotal}
}

type customerPayload struct {
	Email           string `json:"email,omitempty"`
	Name            string `json:"name,omitempty"`
	ShippingAddress string `json:"shipping_address,omitempty"`
}

type orderLinePayload struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type totalsPayload struct {
	Subtotal float64 `json:"subtotal"`
	Taxes    float64 `json:"taxes"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

type orderPayload struct {
	ID            string             `json:"id"`
	CartID        string             `json:"cart_id"`
	Customer      customerPayload    `json:"customer"`
	Lines         []orderLinePayload `json:"lines"`
	Totals        totalsPayload      `json:"totals"`
	PaymentID     string             `json:"payment_id"`
	PaymentMethod string             `json:"payment_method"`
	Confirmation  string             `json:"confirmation,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

func orderToPayload(o domorder.Order) orderPayload {
	lines := make([]orderLinePayload, len(o.Lines()))
	for i, l := range o.Lines() {
		lines[i] = orderLinePayload{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}
	t := o.Totals()
	return orderPayload{
		ID:     o.ID(),
		CartID: o.CartID(),
		Customer: customerPayload{
			Email:           o.Customer().Email,
			Name:            o.Customer().Name,
			ShippingAddress: o.Customer().ShippingAddress,
		},
		Lines: lines,
		Totals: totalsPayload{
			Subtotal: t.Subtotal,
			Taxes:    t.Taxes,
			Shipping: t.Shipping,
			Total:    t.Total,
		},
		PaymentID:     o.PaymentID(),
		PaymentMethod: o.PaymentMethod(),
		Confirmation:  o.Confirmation(),
		CreatedAt:     time.UnixMilli(o.CreatedAt()).UTC(),
	}
}

// userPayload never carries the password hash.
type userPayload struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
}

func userToPayload(u domuser.User) userPayload {
	return userPayload{
		ID:        u.ID(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Email:     u.Email(),
		Phone:     u.Phone(),
		UserType:  u.UserType(),
		CreatedAt: time.UnixMilli(u.CreatedAt()).UTC(),
	}
}

type budgetPayload struct {
	DailyLimit       int64      `json:"daily_limit"`
	DailyUsed        int64      `json:"daily_used"`
	DailyRemaining   int64      `json:"daily_remaining"`
	MonthlyLimit     int64      `json:"monthly_limit"`
	MonthlyUsed      int64      `json:"monthly_used"`
	MonthlyRemaining int64      `json:"monthly_remaining"`
	Exhausted        bool       `json:"exhausted"`
	ResetsAt         *time.Time `json:"resets_at,omitempty"`
}

type dayUsagePayload struct {
	Date   string `json:"date"`
	Tokens int64  `json:"tokens"`
}

type usagePayload struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Budget      budgetPayload     `json:"budget"`
	Days        []dayUsagePayload `json:"days"`
	TotalTokens int64             `json:"total_tokens"`
}

func usageToPayload(r domusage.Report) usagePayload {
	b := r.Budget()
	budget := budgetPayload{
		DailyLimit:       b.DailyLimit(),
		DailyUsed:        b.DailyUsed(),
		DailyRemaining:   b.DailyRemaining(),
		MonthlyLimit:     b.MonthlyLimit(),
		MonthlyUsed:      b.MonthlyUsed(),
		MonthlyRemaining: b.MonthlyRemaining(),
		Exhausted:        b.IsExhausted(),
	}
	if b.ResetsAt() > 0 {
		resetsAt := time.UnixMilli(b.ResetsAt()).UTC()
		budget.ResetsAt = &resetsAt
	}

	days := make([]dayUsagePayload, len(r.Days()))
	for i, d := range r.Days() {
		days[i] = dayUsagePayload{Date: d.Date(), Tokens: d.Tokens()}
	}

	return usagePayload{
		GeneratedAt: time.UnixMilli(r.GeneratedAt()).UTC(),
		Budget:      budget,
		Days:        days,
		TotalTokens: r.TotalTokens(),
	}
}

type batchResultPayload struct {
	ID     string         `json:"id"`
	Status string         `json:"status"`
	Error  *errorResponse `json:"error,omitempty"`
}

type batchResponse struct {
	Items     []batchResultPayload `json:"items"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
}

type versionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

type upsertItemRequest struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"original_price"`
	Status        string   `json:"status"`
	Images        []string `json:"images"`
}

type batchUpsertRequest struct {
	Items []upsertItemRequest `json:"items"`
}

type likeRequest struct {
	UserID string `json:"user_id"`
}

// addLineRequest carries a pointer quantity so an omitted field defaults
// to one while an explicit zero is rejected.
type addLineRequest struct {
	ItemID   string `json:"item_id"`
	Quantity *int   `json:"quantity"`
}

type updateLineRequest struct {
	Quantity *int `json:"quantity"`
}

type promoteRequest struct {
	To string `json:"to"`
}

type renameCategoryRequest struct {
	To string `json:"to"`
}

type checkoutRequest struct {
	Customer      customerPayload `json:"customer"`
	ShippingFee   float64         `json:"shipping_fee"`
	PaymentMethod string          `json:"payment_method"`
	Confirmation  string          `json:"confirmation"`
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

type verifyRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetRequest struct {
	Email string `json:"email"`
}

type resetResponse struct {
	ResetToken string `json:"reset_token"`
}

type confirmResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}
