package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionPolicy is the single global rate policy applied to vendor orders.
// Exactly one row is expected; updates replace the stored values in place.
type CommissionPolicy struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DefaultRate   decimal.Decimal `gorm:"column:default_rate;type:numeric(5,2);not null"`
	MinRate       decimal.Decimal `gorm:"column:min_rate;type:numeric(5,2);not null"`
	MaxRate       decimal.Decimal `gorm:"column:max_rate;type:numeric(5,2);not null"`
	ProcessingFee decimal.Decimal `gorm:"column:processing_fee;type:numeric(5,2);not null;default:0"`
	TaxIncluded   bool            `gorm:"column:tax_included;not null;default:false"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
