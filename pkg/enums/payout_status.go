package enums

import "fmt"

// PayoutStatus tracks the lifecycle of a vendor payout request.
type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "pending"
	PayoutStatusApproved   PayoutStatus = "approved"
	PayoutStatusRejected   PayoutStatus = "rejected"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusCompleted  PayoutStatus = "completed"
)

var validPayoutStatuses = []PayoutStatus{
	PayoutStatusPending,
	PayoutStatusApproved,
	PayoutStatusRejected,
	PayoutStatusProcessing,
	PayoutStatusCompleted,
}

// allowedPayoutTransitions encodes the full payout state machine. Anything
// absent here is disallowed.
var allowedPayoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutStatusPending:    {PayoutStatusApproved, PayoutStatusRejected},
	PayoutStatusApproved:   {PayoutStatusProcessing},
	PayoutStatusProcessing: {PayoutStatusCompleted},
	PayoutStatusRejected:   {},
	PayoutStatusCompleted:  {},
}

// String implements fmt.Stringer.
func (p PayoutStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PayoutStatus.
func (p PayoutStatus) IsValid() bool {
	for _, candidate := range validPayoutStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (p PayoutStatus) IsTerminal() bool {
	next, ok := allowedPayoutTransitions[p]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether the state machine permits moving to target.
func (p PayoutStatus) CanTransitionTo(target PayoutStatus) bool {
	for _, candidate := range allowedPayoutTransitions[p] {
		if candidate == target {
			return true
		}
	}
	return false
}

// ParsePayoutStatus converts raw input into a PayoutStatus.
func ParsePayoutStatus(value string) (PayoutStatus, error) {
	for _, candidate := range validPayoutStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payout status %q", value)
}
