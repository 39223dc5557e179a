package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sagar-developer08/admin-ecom-sub002/internal/payouts"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/db/models"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
	pkgerrors "github.com/sagar-developer08/admin-ecom-sub002/pkg/errors"
)

type stubPayoutService struct {
	request *models.PayoutRequest
	list    []models.PayoutRequest
	err     error

	lastInput  payouts.RequestInput
	lastList   payouts.ListInput
	lastReason string
}

func (s *stubPayoutService) Request(ctx context.Context, input payouts.RequestInput) (*models.PayoutRequest, error) {
	s.lastInput = input
	return s.request, s.err
}

func (s *stubPayoutService) Get(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error) {
	return s.request, s.err
}

func (s *stubPayoutService) List(ctx context.Context, input payouts.ListInput) (*payouts.PayoutPage, error) {
	s.lastList = input
	if s.err != nil {
		return nil, s.err
	}
	return &payouts.PayoutPage{Payouts: s.list}, nil
}

func (s *stubPayoutService) Approve(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error) {
	return s.request, s.err
}

func (s *stubPayoutService) Reject(ctx context.Context, id uuid.UUID, reason string) (*models.PayoutRequest, error) {
	s.lastReason = reason
	return s.request, s.err
}

func (s *stubPayoutService) Process(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error) {
	return s.request, s.err
}

func (s *stubPayoutService) Complete(ctx context.Context, id uuid.UUID) (*models.PayoutRequest, error) {
	return s.request, s.err
}

func payoutRouter(svc payouts.Service) http.Handler {
	r := chi.NewRouter()
	r.Post("/payouts", PayoutCreate(svc, nil))
	r.Post("/payouts/{payoutID}/approve", PayoutApprove(svc, nil))
	r.Post("/payouts/{payoutID}/reject", PayoutReject(svc, nil))
	return r
}

func TestPayoutCreateSuccess(t *testing.T) {
	stub := &stubPayoutService{request: &models.PayoutRequest{
		ID:       uuid.New(),
		VendorID: "V1",
		Amount:   decimal.NewFromInt(300),
		Status:   enums.PayoutStatusPending,
	}}

	body := bytes.NewBufferString(`{"vendor_id":"V1","amount":300,"method":"bank_transfer"}`)
	req := httptest.NewRequest(http.MethodPost, "/payouts", body)
	rec := httptest.NewRecorder()
	payoutRouter(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.lastInput.Method != enums.PayoutMethodBankTransfer {
		t.Fatalf("method not parsed: %s", stub.lastInput.Method)
	}
}

func TestPayoutCreateRejectsUnknownMethod(t *testing.T) {
	stub := &stubPayoutService{}

	body := bytes.NewBufferString(`{"vendor_id":"V1","amount":300,"method":"cash"}`)
	req := httptest.NewRequest(http.MethodPost, "/payouts", body)
	rec := httptest.NewRecorder()
	payoutRouter(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestPayoutCreateValidationFailure(t *testing.T) {
	stub := &stubPayoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "requested amount 500 exceeds unpaid net earnings 300")}

	body := bytes.NewBufferString(`{"vendor_id":"V1","amount":500,"method":"paypal"}`)
	req := httptest.NewRequest(http.MethodPost, "/payouts", body)
	rec := httptest.NewRecorder()
	payoutRouter(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Message == "" {
		t.Fatal("validation failures must name the violated constraint")
	}
}

func TestPayoutApproveStateConflict(t *testing.T) {
	stub := &stubPayoutService{err: pkgerrors.New(pkgerrors.CodeStateConflict, `payout in state "rejected" cannot transition to "approved"`)}

	req := httptest.NewRequest(http.MethodPost, "/payouts/"+uuid.NewString()+"/approve", nil)
	rec := httptest.NewRecorder()
	payoutRouter(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", rec.Code)
	}
}

func TestPayoutApproveRejectsBadID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/payouts/not-a-uuid/approve", nil)
	rec := httptest.NewRecorder()
	payoutRouter(&stubPayoutService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestPayoutRejectRequiresReasonField(t *testing.T) {
	stub := &stubPayoutService{request: &models.PayoutRequest{Status: enums.PayoutStatusRejected}}

	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest(http.MethodPost, "/payouts/"+uuid.NewString()+"/reject", body)
	rec := httptest.NewRecorder()
	payoutRouter(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}

	body = bytes.NewBufferString(`{"reason":"insufficient documents"}`)
	req = httptest.NewRequest(http.MethodPost, "/payouts/"+uuid.NewString()+"/reject", body)
	rec = httptest.NewRecorder()
	payoutRouter(stub).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.lastReason != "insufficient documents" {
		t.Fatalf("reason not forwarded: %q", stub.lastReason)
	}
}

func TestPayoutsListForwardsQueryParams(t *testing.T) {
	stub := &stubPayoutService{list: []models.PayoutRequest{{ID: uuid.New(), VendorID: "V1"}}}

	r := chi.NewRouter()
	r.Get("/payouts", PayoutsList(stub, nil))

	req := httptest.NewRequest(http.MethodGet, "/payouts?vendor_id=V1&limit=10&cursor=abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.lastList.VendorID != "V1" || stub.lastList.Limit != 10 || stub.lastList.Cursor != "abc" {
		t.Fatalf("query params not forwarded: %+v", stub.lastList)
	}
}

func TestPayoutsListRejectsOversizedLimit(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/payouts", PayoutsList(&stubPayoutService{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/payouts?limit=5000", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
