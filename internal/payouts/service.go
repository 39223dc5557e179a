package payouts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sagar-developer08/admin-ecom-sub002/internal/commission"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/db/models"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/errors"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/logger"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/metrics"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/pagination"
)

// TxRunner executes a function inside one database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ListInput paginates payout requests, optionally scoped to one vendor.
type ListInput struct {
	VendorID string
	Limit    int
	Cursor   string
}

// PayoutPage is one page of payout requests plus the cursor for the next.
type PayoutPage struct {
	Payouts    []models.PayoutRequest `json:"payouts"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}

// RequestInput creates a new payout request for a vendor.
type RequestInput struct {
	VendorID string             `json:"vendor_id" validate:"required"`
	Amount   decimal.Decimal    `json:"amount"`
	Method   enums.PayoutMethod `json:"method" validate:"required"`
}

// Service drives the payout request lifecycle.
type Service interface {
	Request(ctx context.Context, input RequestInput) (*models.PayoutRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error)
	List(ctx context.Context, input ListInput) (*PayoutPage, error)
	Approve(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error)
	Reject(ctx context.Context, id uuid.UUID, reason string) (*models.PayoutRequest, error)
	Process(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error)
	Complete(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error)
}

type service struct {
	repo           Repository
	commissionRepo commission.Repository
	tx             TxRunner
	logger         *logger.Logger
	metrics        *metrics.EngineMetrics
	now            func() time.Time
}

// NewService wires the payout service. Metrics are optional.
func NewService(repo Repository, commissionRepo commission.Repository, tx TxRunner, logg *logger.Logger, engineMetrics *metrics.EngineMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payout repository required")
	}
	if commissionRepo == nil {
		return nil, fmt.Errorf("commission repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("payout logger required")
	}
	return &service{
		repo:           repo,
		commissionRepo: commissionRepo,
		tx:             tx,
		logger:         logg,
		metrics:        engineMetrics,
		now:            time.Now,
	}, nil
}

func (s *service) Request(ctx context.Context, input RequestInput) (*models.PayoutRequest, error) {
	if input.VendorID == "" {
		return nil, errors.New(errors.CodeValidation, "vendor id is required")
	}
	if !input.Amount.IsPositive() {
		return nil, errors.New(errors.CodeValidation, "payout amount must be positive")
	}
	if !input.Method.IsValid() {
		return nil, errors.New(errors.CodeValidation, fmt.Sprintf("invalid payout method %q", input.Method))
	}

	available, err := s.commissionRepo.UnpaidNetTotal(ctx, input.VendorID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "computing unpaid net earnings")
	}
	if input.Amount.GreaterThan(available) {
		return nil, errors.New(errors.CodeValidation, fmt.Sprintf(
			"requested amount %s exceeds unpaid net earnings %s",
			input.Amount, available,
		))
	}

	request := &models.PayoutRequest{
		VendorID:    input.VendorID,
		Amount:      input.Amount,
		Status:      enums.PayoutStatusPending,
		Method:      input.Method,
		RequestedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "creating payout request")
	}

	payoutCtx := s.logger.WithPayoutID(s.logger.WithVendorID(ctx, input.VendorID), request.ID.String())
	s.logger.Info(payoutCtx, "payout request created")
	return request, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "payout request not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading payout request")
	}
	return request, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*PayoutPage, error) {
	limit := pagination.NormalizeLimit(input.Limit)

	var cursor *pagination.Cursor
	if input.Cursor != "" {
		parsed, err := pagination.ParseCursor(input.Cursor)
		if err != nil {
			return nil, errors.Wrap(errors.CodeValidation, err, "invalid cursor")
		}
		cursor = parsed
	}

	requests, err := s.repo.List(ctx, ListQuery{
		VendorID: input.VendorID,
		Limit:    pagination.LimitWithBuffer(limit),
		Cursor:   cursor,
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing payout requests")
	}

	page := &PayoutPage{Payouts: requests}
	if len(requests) > limit {
		page.Payouts = requests[:limit]
		last := page.Payouts[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

func (s *service) Approve(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error) {
	resolved := s.now().UTC()
	return s.transition(ctx, id, enums.PayoutStatusApproved, &resolved, nil)
}

func (s *service) Reject(ctx context.Context, id uuid.UUID, reason string) (*models.PayoutRequest, error) {
	if reason == "" {
		return nil, errors.New(errors.CodeValidation, "rejection reason is required")
	}
	resolved := s.now().UTC()
	return s.transition(ctx, id, enums.PayoutStatusRejected, &resolved, &reason)
}

func (s *service) Process(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error) {
	return s.transition(ctx, id, enums.PayoutStatusProcessing, nil, nil)
}

// Complete moves the payout to its terminal state and settles unpaid
// commission records against it, oldest first, up to the payout amount. The
// transition and the settlement commit atomically.
func (s *service) Complete(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	target := enums.PayoutStatusCompleted
	if !request.Status.CanTransitionTo(target) {
		return nil, transitionError(request.Status, target)
	}

	resolved := s.now().UTC()
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		swapped, err := repo.TransitionStatus(ctx, id, request.Status, target, &resolved, nil)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "updating payout status")
		}
		if !swapped {
			return staleTransitionError(ctx, repo, id, target)
		}

		commissionRepo := s.commissionRepo.WithTx(tx)
		unpaid, err := commissionRepo.ListUnpaidOldestFirst(ctx, request.VendorID)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "listing unpaid commission records")
		}

		var settled []uuid.UUID
		covered := decimal.Zero
		for _, record := range unpaid {
			if covered.GreaterThanOrEqual(request.Amount) {
				break
			}
			settled = append(settled, record.ID)
			covered = covered.Add(record.NetAmount)
		}
		if err := commissionRepo.MarkPaid(ctx, settled, request.ID); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "settling commission records")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordTransition(ctx, request.Status, target, id)
	request.Status = target
	request.ResolvedAt = &resolved
	return request, nil
}

func (s *service) transition(ctx context.Context, id uuid.UUID, target enums.PayoutStatus, resolvedAt *time.Time, reason *string) (*models.PayoutRequest, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !request.Status.CanTransitionTo(target) {
		return nil, transitionError(request.Status, target)
	}

	swapped, err := s.repo.TransitionStatus(ctx, id, request.Status, target, resolvedAt, reason)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "updating payout status")
	}
	if !swapped {
		// A concurrent transition won the race. Report against the now-stored
		// status.
		return nil, staleTransitionError(ctx, s.repo, id, target)
	}

	s.recordTransition(ctx, request.Status, target, id)
	request.Status = target
	if resolvedAt != nil {
		request.ResolvedAt = resolvedAt
	}
	if reason != nil {
		request.RejectionReason = reason
	}
	return request, nil
}

func (s *service) recordTransition(ctx context.Context, from, to enums.PayoutStatus, id uuid.UUID) {
	if s.metrics != nil {
		s.metrics.IncPayoutTransition(from.String(), to.String())
	}
	s.logger.Info(s.logger.WithPayoutID(ctx, id.String()), fmt.Sprintf("payout %s -> %s", from, to))
}

func transitionError(current, target enums.PayoutStatus) error {
	return errors.New(errors.CodeStateConflict, fmt.Sprintf(
		"payout in state %q cannot transition to %q", current, target,
	))
}

func staleTransitionError(ctx context.Context, repo Repository, id uuid.UUID, target enums.PayoutStatus) error {
	current := enums.PayoutStatus("unknown")
	if request, err := repo.GetByID(ctx, id); err == nil {
		current = request.Status
	}
	return transitionError(current, target)
}
