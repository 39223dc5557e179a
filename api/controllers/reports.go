package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sagar-developer08/admin-ecom-sub002/api/responses"
	"github.com/sagar-developer08/admin-ecom-sub002/internal/reports"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
	pkgerrors "github.com/sagar-developer08/admin-ecom-sub002/pkg/errors"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/logger"
)

// VendorStoreStats serves the ranked vendor-store performance report.
func VendorStoreStats(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		input, err := statsInputFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.VendorStoreStats(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// ReturnsReport serves the returns view with its summary totals.
func ReturnsReport(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		input, err := statsInputFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Returns(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// ReportDrillDown serves the order subset behind one vendor-store row.
func ReportDrillDown(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		statuses, err := statusesFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.DrillDown(r.Context(), reports.DrillDownInput{
			VendorID: chi.URLParam(r, "vendorID"),
			StoreID:  chi.URLParam(r, "storeID"),
			Statuses: statuses,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func statsInputFromQuery(r *http.Request) (reports.StatsInput, error) {
	var input reports.StatsInput

	statuses, err := statusesFromQuery(r)
	if err != nil {
		return input, err
	}
	input.Statuses = statuses

	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		from, err := parseReportDate(raw)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid from date")
		}
		input.From = from
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("to")); raw != "" {
		to, err := parseReportDate(raw)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid to date")
		}
		input.To = to
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("min_amount")); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil || min < 0 {
			return input, pkgerrors.New(pkgerrors.CodeValidation, "min_amount must be a non-negative number")
		}
		input.MinAmount = min
	}
	return input, nil
}

func statusesFromQuery(r *http.Request) ([]enums.OrderStatus, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("status"))
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	statuses := make([]enums.OrderStatus, 0, len(parts))
	for _, part := range parts {
		status, err := enums.ParseOrderStatus(strings.TrimSpace(part))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// parseReportDate accepts both date-only and RFC3339 timestamps.
func parseReportDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
