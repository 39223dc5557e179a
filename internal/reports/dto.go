package reports

import (
	"time"

	"github.com/sagar-developer08/admin-ecom-sub002/internal/orders"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
)

// UnknownKeyPart stands in for a missing vendor or store identifier so that
// unattributable line items still accumulate under a stable key.
const UnknownKeyPart = "unknown"

// VendorStoreStat is one row of the vendor-store performance report. It is
// rebuilt from scratch on every aggregation run and never patched in place.
type VendorStoreStat struct {
	VendorID     string  `json:"vendor_id"`
	StoreID      string  `json:"store_id"`
	VendorName   string  `json:"vendor_name"`
	VendorEmail  string  `json:"vendor_email"`
	StoreName    string  `json:"store_name"`
	TotalOrders  int     `json:"total_orders"`
	TotalItems   int     `json:"total_items"`
	TotalRevenue float64 `json:"total_revenue"`

	PendingOrders    int `json:"pending_orders"`
	ProcessingOrders int `json:"processing_orders"`
	ShippedOrders    int `json:"shipped_orders"`
	DeliveredOrders  int `json:"delivered_orders"`
	CancelledOrders  int `json:"cancelled_orders"`
	RejectedOrders   int `json:"rejected_orders"`
	RefundedOrders   int `json:"refunded_orders"`
	ReturnedOrders   int `json:"returned_orders"`
}

func (s *VendorStoreStat) countStatus(status enums.OrderStatus) {
	switch status {
	case enums.OrderStatusPending:
		s.PendingOrders++
	case enums.OrderStatusProcessing:
		s.ProcessingOrders++
	case enums.OrderStatusShipped:
		s.ShippedOrders++
	case enums.OrderStatusDelivered:
		s.DeliveredOrders++
	case enums.OrderStatusCancelled:
		s.CancelledOrders++
	case enums.OrderStatusRejected:
		s.RejectedOrders++
	case enums.OrderStatusRefunded:
		s.RefundedOrders++
	case enums.OrderStatusReturned:
		s.ReturnedOrders++
	}
}

// ReturnsSummary totals the returns view. TotalRefundAmount only counts
// orders with status refunded; cancelled and returned orders appear in the
// counts but never imply money actually moved.
type ReturnsSummary struct {
	TotalReturns      int     `json:"total_returns"`
	CancelledOrders   int     `json:"cancelled_orders"`
	RejectedOrders    int     `json:"rejected_orders"`
	RefundedOrders    int     `json:"refunded_orders"`
	ReturnedOrders    int     `json:"returned_orders"`
	TotalRefundAmount float64 `json:"total_refund_amount"`
}

// VendorStoreReport is the payload handed to the API layer: ranked stats plus
// a flag for the degraded path where vendor metadata could not be fetched.
type VendorStoreReport struct {
	Stats           []VendorStoreStat `json:"stats"`
	VendorsDegraded bool              `json:"vendors_degraded"`
	GeneratedAt     time.Time         `json:"generated_at"`
}

// DrillDownResult is the order subset backing one vendor-store row.
type DrillDownResult struct {
	VendorID string         `json:"vendor_id"`
	StoreID  string         `json:"store_id"`
	Orders   []orders.Order `json:"orders"`
}
