package commission

import (
	"github.com/shopspring/decimal"

	"github.com/sagar-developer08/admin-ecom-sub002/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

// RatePolicy is the in-memory view of the global commission policy plus any
// vendor overrides, as used for a calculation pass.
type RatePolicy struct {
	DefaultRate   decimal.Decimal
	MinRate       decimal.Decimal
	MaxRate       decimal.Decimal
	ProcessingFee decimal.Decimal
	TaxIncluded   bool
	Overrides     map[string]decimal.Decimal
}

// Validate enforces min <= default <= max.
func (p RatePolicy) Validate() error {
	if p.MinRate.GreaterThan(p.DefaultRate) {
		return errors.New(errors.CodeValidation, "minimum rate exceeds default rate")
	}
	if p.DefaultRate.GreaterThan(p.MaxRate) {
		return errors.New(errors.CodeValidation, "default rate exceeds maximum rate")
	}
	return nil
}

// Breakdown is the result of one commission calculation. ProcessingFee is
// reported for downstream payout math; it is never subtracted from NetAmount.
type Breakdown struct {
	Rate             decimal.Decimal `json:"rate"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	NetAmount        decimal.Decimal `json:"net_amount"`
	ProcessingFee    decimal.Decimal `json:"processing_fee"`
}

// clampRate forces the rate into the policy's [min, max] window. The clamp is
// unconditional so a stale override cannot escape a tightened policy.
func clampRate(rate decimal.Decimal, policy RatePolicy) decimal.Decimal {
	if rate.LessThan(policy.MinRate) {
		return policy.MinRate
	}
	if rate.GreaterThan(policy.MaxRate) {
		return policy.MaxRate
	}
	return rate
}

// resolveRate picks the vendor override when present, otherwise the default,
// then clamps the result.
func resolveRate(vendorID string, policy RatePolicy) decimal.Decimal {
	rate := policy.DefaultRate
	if override, ok := policy.Overrides[vendorID]; ok {
		rate = override
	}
	return clampRate(rate, policy)
}

// CommissionFor computes the commission split for one order amount.
// commission = amount * rate / 100; net = amount - commission, so the two
// always recompose to the order amount exactly.
func CommissionFor(orderAmount decimal.Decimal, vendorID string, policy RatePolicy) Breakdown {
	rate := resolveRate(vendorID, policy)
	commission := orderAmount.Mul(rate).Div(oneHundred).Round(2)
	return Breakdown{
		Rate:             rate,
		CommissionAmount: commission,
		NetAmount:        orderAmount.Sub(commission),
		ProcessingFee:    policy.ProcessingFee,
	}
}
