package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sagar-developer08/admin-ecom-sub002/api/responses"
	"github.com/sagar-developer08/admin-ecom-sub002/api/validators"
	"github.com/sagar-developer08/admin-ecom-sub002/internal/commission"
	pkgerrors "github.com/sagar-developer08/admin-ecom-sub002/pkg/errors"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/logger"
)

// CommissionPolicyGet returns the global rate policy.
func CommissionPolicyGet(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}
		policy, err := svc.Policy(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, policy)
	}
}

type commissionPolicyRequest struct {
	DefaultRate   decimal.Decimal `json:"default_rate"`
	MinRate       decimal.Decimal `json:"min_rate"`
	MaxRate       decimal.Decimal `json:"max_rate"`
	ProcessingFee decimal.Decimal `json:"processing_fee"`
	TaxIncluded   bool            `json:"tax_included"`
}

// CommissionPolicyUpdate replaces the global rate policy.
func CommissionPolicyUpdate(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}

		var req commissionPolicyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		policy, err := svc.UpdatePolicy(r.Context(), commission.UpdatePolicyInput{
			DefaultRate:   req.DefaultRate,
			MinRate:       req.MinRate,
			MaxRate:       req.MaxRate,
			ProcessingFee: req.ProcessingFee,
			TaxIncluded:   req.TaxIncluded,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, policy)
	}
}

// CommissionOverridesList returns all vendor rate overrides.
func CommissionOverridesList(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}
		overrides, err := svc.ListOverrides(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overrides)
	}
}

type overrideRequest struct {
	VendorID string          `json:"vendor_id" validate:"required"`
	Rate     decimal.Decimal `json:"rate"`
}

// CommissionOverrideSet stores a vendor-specific rate.
func CommissionOverrideSet(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}

		var req overrideRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetOverride(r.Context(), commission.SetOverrideInput{
			VendorID: req.VendorID,
			Rate:     req.Rate,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"vendor_id": req.VendorID})
	}
}

// CommissionOverrideDelete removes a vendor override.
func CommissionOverrideDelete(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}
		if err := svc.RemoveOverride(r.Context(), chi.URLParam(r, "vendorID")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CommissionRecordsList returns stored commission records, optionally scoped
// to one vendor.
func CommissionRecordsList(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}
		records, err := svc.ListRecords(r.Context(), strings.TrimSpace(r.URL.Query().Get("vendor_id")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

type previewRequest struct {
	VendorID    string          `json:"vendor_id"`
	OrderAmount decimal.Decimal `json:"order_amount"`
}

// CommissionPreview computes the commission split for a hypothetical amount.
func CommissionPreview(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}

		var req previewRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		breakdown, err := svc.Preview(r.Context(), commission.PreviewInput{
			VendorID:    req.VendorID,
			OrderAmount: req.OrderAmount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, breakdown)
	}
}

// CommissionSync re-materializes commission records from the order snapshot.
func CommissionSync(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}
		written, err := svc.SyncRecords(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"records": written})
	}
}
