package reports

import (
	"sort"

	"github.com/sagar-developer08/admin-ecom-sub002/internal/orders"
	"github.com/sagar-developer08/admin-ecom-sub002/internal/vendors"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
)

type statKey struct {
	vendorID string
	storeID  string
}

func keyFor(item orders.OrderItem) statKey {
	key := statKey{vendorID: item.VendorID, storeID: item.StoreID}
	if key.vendorID == "" {
		key.vendorID = UnknownKeyPart
	}
	if key.storeID == "" {
		key.storeID = UnknownKeyPart
	}
	return key
}

// Aggregate regroups the order snapshot into per-vendor-per-store stats,
// ranked by revenue descending. The accumulator map is local to each call, so
// repeated runs over the same snapshot yield identical output. Status tallies
// are order-level: every item in a cancelled order counts toward its store's
// cancelled counter regardless of what else the order contains.
func Aggregate(orderSnapshot []orders.Order, directory *vendors.Directory) []VendorStoreStat {
	byKey := make(map[statKey]*VendorStoreStat)
	var ordered []*VendorStoreStat

	for _, order := range orderSnapshot {
		for _, item := range order.Items {
			key := keyFor(item)
			stat, ok := byKey[key]
			if !ok {
				stat = newStat(key, item, directory)
				byKey[key] = stat
				ordered = append(ordered, stat)
			}
			stat.TotalOrders++
			stat.TotalItems += item.Quantity
			stat.TotalRevenue += item.Revenue()
			stat.countStatus(order.Status)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TotalRevenue > ordered[j].TotalRevenue
	})

	out := make([]VendorStoreStat, len(ordered))
	for i, stat := range ordered {
		out[i] = *stat
	}
	return out
}

func newStat(key statKey, item orders.OrderItem, directory *vendors.Directory) *VendorStoreStat {
	info := directory.Resolve(key.vendorID)

	// The vendor's own store list is authoritative; the name embedded in the
	// item is an order-time snapshot and may be stale.
	storeName := item.StoreName
	if name, ok := directory.StoreName(key.vendorID, key.storeID); ok {
		storeName = name
	}
	if storeName == "" {
		storeName = key.storeID
	}

	vendorName := info.Name
	if vendorName == vendors.UnknownVendorName && item.VendorName != "" {
		vendorName = item.VendorName
	}

	return &VendorStoreStat{
		VendorID:    key.vendorID,
		StoreID:     key.storeID,
		VendorName:  vendorName,
		VendorEmail: info.Email,
		StoreName:   storeName,
	}
}

// SummarizeReturns totals the return-like subset of an order snapshot. Only
// orders with status refunded contribute to the refund amount.
func SummarizeReturns(orderSnapshot []orders.Order) ReturnsSummary {
	var summary ReturnsSummary
	for _, order := range orderSnapshot {
		if !order.Status.IsReturnLike() {
			continue
		}
		summary.TotalReturns++
		switch order.Status {
		case enums.OrderStatusCancelled:
			summary.CancelledOrders++
		case enums.OrderStatusRejected:
			summary.RejectedOrders++
		case enums.OrderStatusRefunded:
			summary.RefundedOrders++
			summary.TotalRefundAmount += order.TotalAmount
		case enums.OrderStatusReturned:
			summary.ReturnedOrders++
		}
	}
	return summary
}
