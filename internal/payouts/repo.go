package payouts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sagar-developer08/admin-ecom-sub002/pkg/db/models"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/pagination"
)

// ListQuery narrows and paginates a payout listing.
type ListQuery struct {
	VendorID string
	Limit    int
	Cursor   *pagination.Cursor
}

// Repository manages persistence for payout requests.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, request *models.PayoutRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error)
	List(ctx context.Context, query ListQuery) ([]models.PayoutRequest, error)
	// TransitionStatus applies the state change only if the stored status
	// still equals from. It reports whether the swap happened, so concurrent
	// transitions race safely: exactly one wins.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to enums.PayoutStatus, resolvedAt *time.Time, rejectionReason *string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a payout repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, request *models.PayoutRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error) {
	var request models.PayoutRequest
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]models.PayoutRequest, error) {
	db := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if query.VendorID != "" {
		db = db.Where("vendor_id = ?", query.VendorID)
	}
	if query.Cursor != nil {
		db = db.Where("(created_at < ?) OR (created_at = ? AND id < ?)", query.Cursor.CreatedAt, query.Cursor.CreatedAt, query.Cursor.ID)
	}
	if query.Limit > 0 {
		db = db.Limit(query.Limit)
	}
	var requests []models.PayoutRequest
	if err := db.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *repository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to enums.PayoutStatus, resolvedAt *time.Time, rejectionReason *string) (bool, error) {
	updates := map[string]any{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	if resolvedAt != nil {
		updates["resolved_at"] = *resolvedAt
	}
	if rejectionReason != nil {
		updates["rejection_reason"] = *rejectionReason
	}

	result := r.db.WithContext(ctx).
		Model(&models.PayoutRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
