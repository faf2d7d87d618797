package nomurahome

import (
	"time"

	dombatch "github.com/shirwani/chloe-nomura-home/internal/domain/batch"
	"github.com/shirwani/chloe-nomura-home/internal/domain/item"
	domorder "github.com/shirwani/chloe-nomura-home/internal/domain/order"
	domusage "github.com/shirwani/chloe-nomura-home/internal/domain/usage"
	domuser "github.com/shirwani/chloe-nomura-home/internal/domain/user"
	cartuc "github.com/shirwani/chloe-nomura-home/internal/usecase/cart"
	inventoryuc "github.com/shirwani/chloe-nomura-home/internal/usecase/inventory"
	searchuc "github.com/shirwani/chloe-nomura-home/internal/usecase/search"
)

func fromItem(it item.Item) Item {
	return Item{
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

func fromItems(items []item.Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = fromItem(it)
	}
	return out
}

func toDomainItem(d ItemDraft) (item.Item, error) {
	return item.New(
		d.ID, d.Name, d.Description, d.Category,
		d.Price, d.OriginalPrice,
		item.Status(d.Status), d.Images,
	)
}

func toDraft(d ItemDraft) inventoryuc.Draft {
	return inventoryuc.Draft{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		Category:      d.Category,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Status:        item.Status(d.Status),
		Images:        d.Images,
	}
}

func fromBatchResults(results []dombatch.Result) []BatchResult {
	out := make([]BatchResult, len(results))
	for i, r := range results {
		out[i] = BatchResult{
			ID:  r.ID(),
			OK:  r.Status() == dombatch.StatusOK,
			Err: r.Err(),
		}
	}
	return out
}

func fromScoredResults(results []searchuc.ScoredResult) []SearchHit {
	out := make([]SearchHit, len(results))
	for i, r := range results {
		out[i] = SearchHit{
			Item:          fromItem(r.Item),
			SemanticScore: r.SemanticScore,
			KeywordScore:  r.KeywordScore,
			CombinedScore: r.CombinedScore,
		}
	}
	return out
}

func fromCartView(v cartuc.View) Cart {
	lines := make([]CartLine, len(v.Lines))
	for i, l := range v.Lines {
		lines[i] = CartLine{
			ItemID:   l.Line.ItemID(),
			Quantity: l.Line.Quantity(),
			AddedAt:  time.UnixMilli(l.Line.AddedAt()).UTC(),
			Item:     fromItem(l.Item),
			Subtotal: l.Subtotal,
		}
	}
	return Cart{
		ID:       v.CartID,
		Lines:    lines,
		Subtotal: v.Subtotal,
	}
}

func fromOrder(o domorder.Order) Order {
	lines := make([]OrderLine, len(o.Lines()))
	for i, l := range o.Lines() {
		lines[i] = OrderLine{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}
	t := o.Totals()
	c := o.Customer()
	return Order{
		ID:     o.ID(),
		CartID: o.CartID(),
		Customer: Customer{
			Email:           c.Email,
			Name:            c.Name,
			ShippingAddress: c.ShippingAddress,
		},
		Lines: lines,
		Totals: OrderTotals{
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

func fromUser(u domuser.User) User {
	return User{
		ID:        u.ID(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Email:     u.Email(),
		Phone:     u.Phone(),
		Type:      u.UserType(),
		CreatedAt: time.UnixMilli(u.CreatedAt()).UTC(),
	}
}

func fromUsageReport(r domusage.Report) UsageReport {
	days := make([]DayUsage, len(r.Days()))
	for i, d := range r.Days() {
		days[i] = DayUsage{Date: d.Date(), Tokens: d.Tokens()}
	}
	b := r.Budget()
	return UsageReport{
		GeneratedAt: time.UnixMilli(r.GeneratedAt()).UTC(),
		Budget: BudgetStatus{
			DailyLimit:       b.DailyLimit(),
			DailyUsed:        b.DailyUsed(),
			DailyRemaining:   b.DailyRemaining(),
			MonthlyLimit:     b.MonthlyLimit(),
			MonthlyUsed:      b.MonthlyUsed(),
			MonthlyRemaining: b.MonthlyRemaining(),
			Exhausted:        b.IsExhausted(),
			ResetsAt:         time.UnixMilli(b.ResetsAt()).UTC(),
		},
		Days:        days,
		TotalTokens: r.TotalTokens(),
	}
}
