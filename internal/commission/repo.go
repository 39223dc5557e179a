package commission

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sagar-developer08/admin-ecom-sub002/pkg/db/models"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
)

// Repository manages persistence for the commission policy, vendor overrides
// and per-order commission records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetPolicy(ctx context.Context) (*models.CommissionPolicy, error)
	SavePolicy(ctx context.Context, policy *models.CommissionPolicy) error

	ListOverrides(ctx context.Context) ([]models.VendorCommissionOverride, error)
	UpsertOverride(ctx context.Context, override *models.VendorCommissionOverride) error
	DeleteOverride(ctx context.Context, vendorID string) error

	UpsertRecord(ctx context.Context, record *models.CommissionRecord) error
	ListRecords(ctx context.Context, vendorID string) ([]models.CommissionRecord, error)
	UnpaidNetTotal(ctx context.Context, vendorID string) (decimal.Decimal, error)
	ListUnpaidOldestFirst(ctx context.Context, vendorID string) ([]models.CommissionRecord, error)
	MarkPaid(ctx context.Context, recordIDs []uuid.UUID, payoutID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a commission repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) GetPolicy(ctx context.Context) (*models.CommissionPolicy, error) {
	var policy models.CommissionPolicy
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&policy).Error; err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *repository) SavePolicy(ctx context.Context, policy *models.CommissionPolicy) error {
	return r.db.WithContext(ctx).Save(policy).Error
}

func (r *repository) ListOverrides(ctx context.Context) ([]models.VendorCommissionOverride, error) {
	var overrides []models.VendorCommissionOverride
	if err := r.db.WithContext(ctx).
		Order("vendor_id ASC").
		Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *repository) UpsertOverride(ctx context.Context, override *models.VendorCommissionOverride) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vendor_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
		}).
		Create(override).Error
}

func (r *repository) DeleteOverride(ctx context.Context, vendorID string) error {
	return r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Delete(&models.VendorCommissionOverride{}).Error
}

func (r *repository) UpsertRecord(ctx context.Context, record *models.CommissionRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "vendor_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"order_amount", "rate", "commission_amount", "net_amount", "updated_at"}),
		}).
		Create(record).Error
}

func (r *repository) ListRecords(ctx context.Context, vendorID string) ([]models.CommissionRecord, error) {
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	var records []models.CommissionRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) UnpaidNetTotal(ctx context.Context, vendorID string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.CommissionRecord{}).
		Select("SUM(net_amount)").
		Where("vendor_id = ? AND payout_id IS NULL", vendorID).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *repository) ListUnpaidOldestFirst(ctx context.Context, vendorID string) ([]models.CommissionRecord, error) {
	var records []models.CommissionRecord
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND payout_id IS NULL", vendorID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) MarkPaid(ctx context.Context, recordIDs []uuid.UUID, payoutID uuid.UUID) error {
	if len(recordIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.CommissionRecord{}).
		Where("id IN ?", recordIDs).
		Updates(map[string]any{
			"payout_id": payoutID,
			"status":    enums.CommissionStatusPaid,
		}).Error
}
