package enums

import "testing"

func TestPayoutStatusTransitions(t *testing.T) {
	tests := []struct {
		from    PayoutStatus
		to      PayoutStatus
		allowed bool
	}{
		{PayoutStatusPending, PayoutStatusApproved, true},
		{PayoutStatusPending, PayoutStatusRejected, true},
		{PayoutStatusPending, PayoutStatusCompleted, false},
		{PayoutStatusApproved, PayoutStatusProcessing, true},
		{PayoutStatusApproved, PayoutStatusRejected, false},
		{PayoutStatusProcessing, PayoutStatusCompleted, true},
		{PayoutStatusRejected, PayoutStatusApproved, false},
		{PayoutStatusCompleted, PayoutStatusApproved, false},
		{PayoutStatusCompleted, PayoutStatusProcessing, false},
	}

	for _, tc := range tests {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s: expected %v got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestPayoutStatusTerminal(t *testing.T) {
	if !PayoutStatusRejected.IsTerminal() {
		t.Fatal("rejected should be terminal")
	}
	if !PayoutStatusCompleted.IsTerminal() {
		t.Fatal("completed should be terminal")
	}
	if PayoutStatusPending.IsTerminal() {
		t.Fatal("pending is not terminal")
	}
	if PayoutStatus("bogus").IsTerminal() {
		t.Fatal("unknown status should not report terminal")
	}
}

func TestParsePayoutStatus(t *testing.T) {
	if _, err := ParsePayoutStatus("approved"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParsePayoutStatus("on_hold"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
