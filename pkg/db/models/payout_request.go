package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
)

// PayoutRequest is a vendor's request to withdraw accrued net earnings.
// Status only moves through the transitions encoded on enums.PayoutStatus.
type PayoutRequest struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID        string             `gorm:"column:vendor_id;not null;index"`
	Amount          decimal.Decimal    `gorm:"column:amount;type:numeric(12,2);not null"`
	Status          enums.PayoutStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Method          enums.PayoutMethod `gorm:"column:method;type:text;not null"`
	RejectionReason *string            `gorm:"column:rejection_reason"`
	RequestedAt     time.Time          `gorm:"column:requested_at;not null"`
	ResolvedAt      *time.Time         `gorm:"column:resolved_at"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
