package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	base := errors.New("upstream unreachable")
	wrapped := Wrap(CodeDependency, base, "fetch orders")

	if wrapped.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
	if !errors.Is(wrapped, base) {
		t.Fatal("wrapped error should unwrap to its cause")
	}
	if wrapped.Error() != "DEPENDENCY_ERROR: fetch orders" {
		t.Fatalf("unexpected message %q", wrapped.Error())
	}
}

func TestWrapNilCause(t *testing.T) {
	err := Wrap(CodeValidation, nil, "amount required")
	if err.Unwrap() != nil {
		t.Fatal("wrapping nil should produce no cause")
	}
	if err.Code() != CodeValidation {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAs(t *testing.T) {
	typed := New(CodeStateConflict, "payout already resolved")
	chained := fmt.Errorf("handling request: %w", typed)

	got := As(chained)
	if got == nil {
		t.Fatal("expected typed error in chain")
	}
	if got.Code() != CodeStateConflict {
		t.Fatalf("unexpected code %s", got.Code())
	}

	if As(errors.New("plain")) != nil {
		t.Fatal("plain errors should not match")
	}
}

func TestMetadataFor(t *testing.T) {
	tests := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeStateConflict, http.StatusUnprocessableEntity},
		{CodeDependency, http.StatusServiceUnavailable},
		{Code("bogus"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("code %s: expected status %d got %d", tc.code, tc.status, got)
		}
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "rate out of bounds").WithDetails(map[string]any{"min": 5, "max": 25})
	details, ok := err.Details().(map[string]any)
	if !ok {
		t.Fatalf("unexpected details type %T", err.Details())
	}
	if details["min"] != 5 || details["max"] != 25 {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestDumpChain(t *testing.T) {
	base := errors.New("socket closed")
	err := Wrap(CodeDependency, base, "vendor snapshot")

	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(dump.Chain))
	}
}
