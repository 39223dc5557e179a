package reports

import (
	"testing"
	"time"

	"github.com/sagar-developer08/admin-ecom-sub002/internal/orders"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
)

func TestApplyComposesConjunctively(t *testing.T) {
	at := func(day int) time.Time {
		return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
	}
	snapshot := []orders.Order{
		{ID: "keep", Status: enums.OrderStatusDelivered, TotalAmount: 100, CreatedAt: at(10)},
		{ID: "wrong-status", Status: enums.OrderStatusPending, TotalAmount: 100, CreatedAt: at(10)},
		{ID: "too-early", Status: enums.OrderStatusDelivered, TotalAmount: 100, CreatedAt: at(1)},
		{ID: "too-late", Status: enums.OrderStatusDelivered, TotalAmount: 100, CreatedAt: at(25)},
		{ID: "too-small", Status: enums.OrderStatusDelivered, TotalAmount: 10, CreatedAt: at(10)},
	}

	got := Apply(snapshot, Predicate{
		Statuses:  []enums.OrderStatus{enums.OrderStatusDelivered},
		From:      at(5),
		To:        at(20),
		MinAmount: 50,
	})
	if len(got) != 1 || got[0].ID != "keep" {
		t.Fatalf("expected only the order matching all predicates, got %+v", got)
	}
}

func TestApplyDateRangeIsInclusive(t *testing.T) {
	edge := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	snapshot := []orders.Order{{ID: "edge", CreatedAt: edge}}

	got := Apply(snapshot, Predicate{From: edge, To: edge})
	if len(got) != 1 {
		t.Fatal("orders created exactly on the range bounds must match")
	}
}

func TestApplyEmptyPredicateKeepsEverything(t *testing.T) {
	snapshot := []orders.Order{{ID: "a"}, {ID: "b"}}
	if got := Apply(snapshot, Predicate{}); len(got) != 2 {
		t.Fatalf("empty predicate must be a no-op, got %d orders", len(got))
	}
}

func TestDrillDownTrimsToVendorStoreKey(t *testing.T) {
	snapshot := []orders.Order{
		{ID: "o-1", Status: enums.OrderStatusDelivered, Items: []orders.OrderItem{
			{VendorID: "V1", StoreID: "S1", Price: 10, Quantity: 1},
			{VendorID: "V2", StoreID: "S2", Price: 20, Quantity: 1},
		}},
		{ID: "o-2", Status: enums.OrderStatusDelivered, Items: []orders.OrderItem{
			{VendorID: "V2", StoreID: "S2", Price: 5, Quantity: 2},
		}},
	}

	got := DrillDown(snapshot, "V1", "S1", nil)
	if len(got) != 1 || got[0].ID != "o-1" {
		t.Fatalf("expected only o-1, got %+v", got)
	}
	if len(got[0].Items) != 1 || got[0].Items[0].VendorID != "V1" {
		t.Fatalf("kept order must only carry the selected key's items, got %+v", got[0].Items)
	}

	// Original snapshot is untouched.
	if len(snapshot[0].Items) != 2 {
		t.Fatal("drill-down must not mutate the input snapshot")
	}
}

func TestDrillDownReappliesViewStatuses(t *testing.T) {
	snapshot := []orders.Order{
		{ID: "refunded", Status: enums.OrderStatusRefunded, Items: []orders.OrderItem{
			{VendorID: "V1", StoreID: "S1", Price: 10, Quantity: 1},
		}},
		{ID: "delivered", Status: enums.OrderStatusDelivered, Items: []orders.OrderItem{
			{VendorID: "V1", StoreID: "S1", Price: 10, Quantity: 1},
		}},
	}

	got := DrillDown(snapshot, "V1", "S1", enums.ReturnOrderStatuses)
	if len(got) != 1 || got[0].ID != "refunded" {
		t.Fatalf("returns drill-down must stay inside return statuses, got %+v", got)
	}
}
