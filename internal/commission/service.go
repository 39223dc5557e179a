package commission

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sagar-developer08/admin-ecom-sub002/internal/orders"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/db/models"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/errors"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/logger"
)

// OrderSource fetches the order snapshot used to materialize commission
// records.
type OrderSource interface {
	FetchAllOrders(ctx context.Context) ([]orders.Order, error)
}

// VendorVerifier reports whether a vendor is flagged verified in the vendor
// registry. Overrides are only granted to verified vendors.
type VendorVerifier interface {
	Verified(ctx context.Context, vendorID string) (bool, error)
}

// UpdatePolicyInput carries a full replacement for the global policy.
type UpdatePolicyInput struct {
	DefaultRate   decimal.Decimal `json:"default_rate"`
	MinRate       decimal.Decimal `json:"min_rate"`
	MaxRate       decimal.Decimal `json:"max_rate"`
	ProcessingFee decimal.Decimal `json:"processing_fee"`
	TaxIncluded   bool            `json:"tax_included"`
}

// SetOverrideInput pins a vendor-specific rate.
type SetOverrideInput struct {
	VendorID string          `json:"vendor_id" validate:"required"`
	Rate     decimal.Decimal `json:"rate"`
}

// PreviewInput asks for the commission split of a hypothetical order amount.
type PreviewInput struct {
	VendorID    string          `json:"vendor_id"`
	OrderAmount decimal.Decimal `json:"order_amount"`
}

// Service manages the commission policy and materialized commission records.
type Service interface {
	Policy(ctx context.Context) (*models.CommissionPolicy, error)
	UpdatePolicy(ctx context.Context, input UpdatePolicyInput) (*models.CommissionPolicy, error)
	ListOverrides(ctx context.Context) ([]models.VendorCommissionOverride, error)
	SetOverride(ctx context.Context, input SetOverrideInput) error
	RemoveOverride(ctx context.Context, vendorID string) error
	Preview(ctx context.Context, input PreviewInput) (*Breakdown, error)
	ListRecords(ctx context.Context, vendorID string) ([]models.CommissionRecord, error)
	SyncRecords(ctx context.Context) (int, error)
	RatePolicy(ctx context.Context) (RatePolicy, error)
}

type service struct {
	repo        Repository
	orderSource OrderSource
	verifier    VendorVerifier
	logger      *logger.Logger
}

// NewService wires the commission service.
func NewService(repo Repository, orderSource OrderSource, verifier VendorVerifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("commission repository required")
	}
	if orderSource == nil {
		return nil, fmt.Errorf("commission order source required")
	}
	if verifier == nil {
		return nil, fmt.Errorf("commission vendor verifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("commission logger required")
	}
	return &service{repo: repo, orderSource: orderSource, verifier: verifier, logger: logg}, nil
}

func (s *service) Policy(ctx context.Context) (*models.CommissionPolicy, error) {
	policy, err := s.repo.GetPolicy(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading commission policy")
	}
	return policy, nil
}

func (s *service) UpdatePolicy(ctx context.Context, input UpdatePolicyInput) (*models.CommissionPolicy, error) {
	candidate := RatePolicy{
		DefaultRate: input.DefaultRate,
		MinRate:     input.MinRate,
		MaxRate:     input.MaxRate,
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if input.MinRate.IsNegative() {
		return nil, errors.New(errors.CodeValidation, "minimum rate cannot be negative")
	}
	if input.ProcessingFee.IsNegative() {
		return nil, errors.New(errors.CodeValidation, "processing fee cannot be negative")
	}

	policy, err := s.repo.GetPolicy(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading commission policy")
	}
	policy.DefaultRate = input.DefaultRate
	policy.MinRate = input.MinRate
	policy.MaxRate = input.MaxRate
	policy.ProcessingFee = input.ProcessingFee
	policy.TaxIncluded = input.TaxIncluded
	if err := s.repo.SavePolicy(ctx, policy); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "saving commission policy")
	}
	return policy, nil
}

func (s *service) ListOverrides(ctx context.Context) ([]models.VendorCommissionOverride, error) {
	overrides, err := s.repo.ListOverrides(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing vendor overrides")
	}
	return overrides, nil
}

func (s *service) SetOverride(ctx context.Context, input SetOverrideInput) error {
	if input.VendorID == "" {
		return errors.New(errors.CodeValidation, "vendor id is required")
	}

	verified, err := s.verifier.Verified(ctx, input.VendorID)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "checking vendor verification")
	}
	if !verified {
		return errors.New(errors.CodeValidation, "overrides are only permitted for verified vendors")
	}

	policy, err := s.repo.GetPolicy(ctx)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "loading commission policy")
	}
	if input.Rate.LessThan(policy.MinRate) || input.Rate.GreaterThan(policy.MaxRate) {
		return errors.New(errors.CodeValidation, fmt.Sprintf(
			"override rate %s outside policy bounds [%s, %s]",
			input.Rate, policy.MinRate, policy.MaxRate,
		))
	}

	override := &models.VendorCommissionOverride{
		VendorID: input.VendorID,
		Rate:     input.Rate,
	}
	if err := s.repo.UpsertOverride(ctx, override); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "saving vendor override")
	}
	return nil
}

func (s *service) RemoveOverride(ctx context.Context, vendorID string) error {
	if vendorID == "" {
		return errors.New(errors.CodeValidation, "vendor id is required")
	}
	if err := s.repo.DeleteOverride(ctx, vendorID); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "deleting vendor override")
	}
	return nil
}

func (s *service) Preview(ctx context.Context, input PreviewInput) (*Breakdown, error) {
	if input.OrderAmount.IsNegative() {
		return nil, errors.New(errors.CodeValidation, "order amount cannot be negative")
	}
	policy, err := s.RatePolicy(ctx)
	if err != nil {
		return nil, err
	}
	breakdown := CommissionFor(input.OrderAmount, input.VendorID, policy)
	return &breakdown, nil
}

func (s *service) ListRecords(ctx context.Context, vendorID string) ([]models.CommissionRecord, error) {
	records, err := s.repo.ListRecords(ctx, vendorID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing commission records")
	}
	return records, nil
}

// RatePolicy loads the stored policy plus overrides as one calculation view.
func (s *service) RatePolicy(ctx context.Context) (RatePolicy, error) {
	stored, err := s.repo.GetPolicy(ctx)
	if err != nil {
		return RatePolicy{}, errors.Wrap(errors.CodeInternal, err, "loading commission policy")
	}
	overrides, err := s.repo.ListOverrides(ctx)
	if err != nil {
		return RatePolicy{}, errors.Wrap(errors.CodeInternal, err, "listing vendor overrides")
	}

	policy := RatePolicy{
		DefaultRate:   stored.DefaultRate,
		MinRate:       stored.MinRate,
		MaxRate:       stored.MaxRate,
		ProcessingFee: stored.ProcessingFee,
		TaxIncluded:   stored.TaxIncluded,
		Overrides:     make(map[string]decimal.Decimal, len(overrides)),
	}
	for _, override := range overrides {
		policy.Overrides[override.VendorID] = override.Rate
	}
	return policy, nil
}

// SyncRecords recomputes commission records from the current order snapshot.
// Each order contributes one record per vendor whose items it contains,
// settled orders only: return-like and unpaid orders accrue nothing.
func (s *service) SyncRecords(ctx context.Context) (int, error) {
	policy, err := s.RatePolicy(ctx)
	if err != nil {
		return 0, err
	}

	orderList, err := s.orderSource.FetchAllOrders(ctx)
	if err != nil {
		return 0, errors.Wrap(errors.CodeDependency, err, "fetching order snapshot")
	}

	written := 0
	for _, order := range orderList {
		if order.Status.IsReturnLike() || order.PaymentStatus != enums.PaymentStatusPaid {
			continue
		}
		for vendorID, amount := range vendorAmounts(order) {
			breakdown := CommissionFor(amount, vendorID, policy)
			record := &models.CommissionRecord{
				OrderID:          order.ID,
				VendorID:         vendorID,
				OrderAmount:      amount,
				Rate:             breakdown.Rate,
				CommissionAmount: breakdown.CommissionAmount,
				NetAmount:        breakdown.NetAmount,
				Status:           enums.CommissionStatusCalculated,
			}
			if err := s.repo.UpsertRecord(ctx, record); err != nil {
				return written, errors.Wrap(errors.CodeInternal, err, "saving commission record")
			}
			written++
		}
	}
	return written, nil
}

// vendorAmounts splits an order's item revenue by vendor. Items without a
// vendor are unattributable and accrue no commission.
func vendorAmounts(order orders.Order) map[string]decimal.Decimal {
	amounts := make(map[string]decimal.Decimal)
	for _, item := range order.Items {
		if item.VendorID == "" {
			continue
		}
		revenue := decimal.NewFromFloat(item.Revenue())
		amounts[item.VendorID] = amounts[item.VendorID].Add(revenue)
	}
	return amounts
}
