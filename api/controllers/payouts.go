package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sagar-developer08/admin-ecom-sub002/api/responses"
	"github.com/sagar-developer08/admin-ecom-sub002/api/validators"
	"github.com/sagar-developer08/admin-ecom-sub002/internal/payouts"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
	pkgerrors "github.com/sagar-developer08/admin-ecom-sub002/pkg/errors"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/logger"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/pagination"
)

// PayoutsList returns payout requests, optionally scoped to one vendor.
func PayoutsList(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payout service unavailable"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.List(r.Context(), payouts.ListInput{
			VendorID: strings.TrimSpace(r.URL.Query().Get("vendor_id")),
			Limit:    limit,
			Cursor:   strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// PayoutGet returns one payout request by id.
func PayoutGet(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payout service unavailable"))
			return
		}
		id, err := payoutID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		request, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, request)
	}
}

type payoutCreateRequest struct {
	VendorID string          `json:"vendor_id" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Method   string          `json:"method" validate:"required"`
}

// PayoutCreate submits a new payout request.
func PayoutCreate(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payout service unavailable"))
			return
		}

		var req payoutCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePayoutMethod(req.Method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payout method"))
			return
		}

		request, err := svc.Request(r.Context(), payouts.RequestInput{
			VendorID: req.VendorID,
			Amount:   req.Amount,
			Method:   method,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

// PayoutApprove moves a pending payout to approved.
func PayoutApprove(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return transitionHandler(svc, logg, func(r *http.Request, id uuid.UUID) (any, error) {
		return svc.Approve(r.Context(), id)
	})
}

type payoutRejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// PayoutReject moves a pending payout to rejected. A reason is mandatory.
func PayoutReject(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payout service unavailable"))
			return
		}
		id, err := payoutID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req payoutRejectRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Reject(r.Context(), id, req.Reason)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, request)
	}
}

// PayoutProcess moves an approved payout to processing.
func PayoutProcess(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return transitionHandler(svc, logg, func(r *http.Request, id uuid.UUID) (any, error) {
		return svc.Process(r.Context(), id)
	})
}

// PayoutComplete finalizes a processing payout and settles earnings.
func PayoutComplete(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return transitionHandler(svc, logg, func(r *http.Request, id uuid.UUID) (any, error) {
		return svc.Complete(r.Context(), id)
	})
}

func transitionHandler(svc payouts.Service, logg *logger.Logger, op func(r *http.Request, id uuid.UUID) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payout service unavailable"))
			return
		}
		id, err := payoutID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := op(r, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func payoutID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "payoutID"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payout id")
	}
	return id, nil
}
