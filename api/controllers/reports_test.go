package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sagar-developer08/admin-ecom-sub002/internal/reports"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
	pkgerrors "github.com/sagar-developer08/admin-ecom-sub002/pkg/errors"
)

type stubReportsService struct {
	report    *reports.VendorStoreReport
	returns   *reports.ReturnsReport
	drillDown *reports.DrillDownResult
	err       error

	lastStats reports.StatsInput
	lastDrill reports.DrillDownInput
}

func (s *stubReportsService) VendorStoreStats(ctx context.Context, input reports.StatsInput) (*reports.VendorStoreReport, error) {
	s.lastStats = input
	return s.report, s.err
}

func (s *stubReportsService) Returns(ctx context.Context, input reports.StatsInput) (*reports.ReturnsReport, error) {
	s.lastStats = input
	return s.returns, s.err
}

func (s *stubReportsService) DrillDown(ctx context.Context, input reports.DrillDownInput) (*reports.DrillDownResult, error) {
	s.lastDrill = input
	return s.drillDown, s.err
}

func (s *stubReportsService) RefreshSnapshots(ctx context.Context) error { return s.err }

func TestVendorStoreStatsSuccess(t *testing.T) {
	stub := &stubReportsService{report: &reports.VendorStoreReport{
		Stats: []reports.VendorStoreStat{{VendorID: "V1", StoreID: "S1", TotalRevenue: 250}},
	}}
	handler := VendorStoreStats(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/vendor-stores?status=delivered,cancelled&min_amount=50", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if len(stub.lastStats.Statuses) != 2 || stub.lastStats.Statuses[0] != enums.OrderStatusDelivered {
		t.Fatalf("status filter not parsed: %+v", stub.lastStats.Statuses)
	}
	if stub.lastStats.MinAmount != 50 {
		t.Fatalf("min_amount not parsed: %v", stub.lastStats.MinAmount)
	}

	var envelope struct {
		Data reports.VendorStoreReport `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Stats) != 1 || envelope.Data.Stats[0].TotalRevenue != 250 {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestVendorStoreStatsRejectsBadStatus(t *testing.T) {
	handler := VendorStoreStats(&stubReportsService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/vendor-stores?status=bogus", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestVendorStoreStatsUpstreamFailure(t *testing.T) {
	stub := &stubReportsService{err: pkgerrors.New(pkgerrors.CodeDependency, "order store down")}
	handler := VendorStoreStats(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/vendor-stores", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
}

func TestReportDrillDownParsesKey(t *testing.T) {
	stub := &stubReportsService{drillDown: &reports.DrillDownResult{VendorID: "V1", StoreID: "S1"}}

	r := chi.NewRouter()
	r.Get("/reports/vendor-stores/{vendorID}/{storeID}/orders", ReportDrillDown(stub, nil))

	req := httptest.NewRequest(http.MethodGet, "/reports/vendor-stores/V1/S1/orders?status=refunded", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if stub.lastDrill.VendorID != "V1" || stub.lastDrill.StoreID != "S1" {
		t.Fatalf("key not parsed: %+v", stub.lastDrill)
	}
	if len(stub.lastDrill.Statuses) != 1 || stub.lastDrill.Statuses[0] != enums.OrderStatusRefunded {
		t.Fatalf("status restriction not parsed: %+v", stub.lastDrill.Statuses)
	}
}

func TestReturnsReportSuccess(t *testing.T) {
	stub := &stubReportsService{returns: &reports.ReturnsReport{
		Summary: reports.ReturnsSummary{TotalReturns: 2, TotalRefundAmount: 120},
	}}
	handler := ReturnsReport(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/returns", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data reports.ReturnsReport `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Summary.TotalRefundAmount != 120 {
		t.Fatalf("unexpected summary: %+v", envelope.Data.Summary)
	}
}
