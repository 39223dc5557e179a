package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
)

// CommissionRecord stores the computed commission for one vendor's share of
// an upstream order. Orders can span vendors, so the natural key is
// (order_id, vendor_id). PayoutID is set when the record is settled through a
// completed payout.
type CommissionRecord struct {
	ID               uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID          string                 `gorm:"column:order_id;not null;uniqueIndex:idx_commission_records_order_vendor"`
	VendorID         string                 `gorm:"column:vendor_id;not null;index;uniqueIndex:idx_commission_records_order_vendor"`
	OrderAmount      decimal.Decimal        `gorm:"column:order_amount;type:numeric(12,2);not null"`
	Rate             decimal.Decimal        `gorm:"column:rate;type:numeric(5,2);not null"`
	CommissionAmount decimal.Decimal        `gorm:"column:commission_amount;type:numeric(12,2);not null"`
	NetAmount        decimal.Decimal        `gorm:"column:net_amount;type:numeric(12,2);not null"`
	Status           enums.CommissionStatus `gorm:"column:status;type:text;not null;default:'calculated'"`
	PayoutID         *uuid.UUID             `gorm:"column:payout_id;type:uuid;index"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
