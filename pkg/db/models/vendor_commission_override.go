package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorCommissionOverride pins a vendor-specific rate that supersedes the
// global default. Overrides are only granted to verified vendors.
type VendorCommissionOverride struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID  string          `gorm:"column:vendor_id;not null;uniqueIndex"`
	Rate      decimal.Decimal `gorm:"column:rate;type:numeric(5,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
