package reports

import (
	"time"

	"github.com/sagar-developer08/admin-ecom-sub002/internal/orders"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
)

// Predicate narrows an order snapshot before aggregation. Fields compose
// conjunctively; a zero-value field is a no-op for that dimension.
type Predicate struct {
	Statuses  []enums.OrderStatus
	From      time.Time
	To        time.Time
	MinAmount float64
}

func (p Predicate) matches(order orders.Order) bool {
	if len(p.Statuses) > 0 && !statusIn(order.Status, p.Statuses) {
		return false
	}
	if !p.From.IsZero() && order.CreatedAt.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && order.CreatedAt.After(p.To) {
		return false
	}
	if p.MinAmount > 0 && order.TotalAmount < p.MinAmount {
		return false
	}
	return true
}

func statusIn(status enums.OrderStatus, set []enums.OrderStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

// Apply returns the orders matching the predicate. The input slice is never
// mutated.
func Apply(orderSnapshot []orders.Order, predicate Predicate) []orders.Order {
	out := make([]orders.Order, 0, len(orderSnapshot))
	for _, order := range orderSnapshot {
		if predicate.matches(order) {
			out = append(out, order)
		}
	}
	return out
}

// DrillDown narrows the original snapshot to orders carrying at least one
// line item for the given vendor-store key, trimming each kept order's items
// to that key. The view's status restriction, if any, is re-applied so a
// drill-down from the returns view stays inside the returns statuses.
func DrillDown(orderSnapshot []orders.Order, vendorID, storeID string, statuses []enums.OrderStatus) []orders.Order {
	want := statKey{vendorID: vendorID, storeID: storeID}
	out := make([]orders.Order, 0)
	for _, order := range orderSnapshot {
		if len(statuses) > 0 && !statusIn(order.Status, statuses) {
			continue
		}
		var kept []orders.OrderItem
		for _, item := range order.Items {
			if keyFor(item) == want {
				kept = append(kept, item)
			}
		}
		if len(kept) == 0 {
			continue
		}
		scoped := order
		scoped.Items = kept
		out = append(out, scoped)
	}
	return out
}
