package orders

import (
	"time"

	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
)

// Order is the upstream order store's view of a marketplace order. The
// console never persists these; they arrive as a bulk snapshot and are
// aggregated in memory.
type Order struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"order_number"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	TotalAmount   float64             `json:"total_amount"`
	TaxAmount     float64             `json:"tax_amount"`
	ShippingFee   float64             `json:"shipping_fee"`
	Discount      float64             `json:"discount"`
	Currency      string              `json:"currency"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	Items         []OrderItem         `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}

// OrderItem is a single line item. VendorID/StoreID attribute the revenue;
// the embedded display names are order-time snapshots and may be stale.
type OrderItem struct {
	ProductName string  `json:"product_name"`
	SKU         string  `json:"sku"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	VendorID    string  `json:"vendor_id"`
	StoreID     string  `json:"store_id"`
	VendorName  string  `json:"vendor_name,omitempty"`
	StoreName   string  `json:"store_name,omitempty"`
}

// Revenue returns the item's contribution to store revenue. Missing price or
// quantity counts as zero, never as a fault.
func (i OrderItem) Revenue() float64 {
	if i.Price <= 0 || i.Quantity <= 0 {
		return 0
	}
	return i.Price * float64(i.Quantity)
}
