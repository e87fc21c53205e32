package controllers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/hkfashion/storefront-backend/api/middleware"
	"github.com/hkfashion/storefront-backend/api/responses"
	"github.com/hkfashion/storefront-backend/api/validators"
	checkoutsvc "github.com/hkfashion/storefront-backend/internal/checkout"
	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
	"github.com/hkfashion/storefront-backend/pkg/logger"
)

const productsLocation = "/api/v1/products"

// CheckoutPrepare serves the checkout form prefill. Guests get empty fields,
// signed-in shoppers get their saved account and profile data. An empty cart
// sends the shopper back to the product listing, same as submitting one.
func CheckoutPrepare(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		prefill, err := svc.Prepare(r.Context(), sessionID, optionalUserID(r))
		if err != nil {
			if errors.Is(err, checkoutsvc.ErrEmptyCart) {
				responses.WriteRedirect(w, r, productsLocation)
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, prefill)
	}
}

// CheckoutSubmit places the order. An empty cart sends the shopper back to the
// product listing instead of an error page.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		var payload checkoutsvc.SubmitInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.Submit(r.Context(), sessionID, optionalUserID(r), payload)
		if err != nil {
			if errors.Is(err, checkoutsvc.ErrEmptyCart) {
				responses.WriteRedirect(w, r, productsLocation)
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}

func optionalUserID(r *http.Request) *uuid.UUID {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == uuid.Nil {
		return nil
	}
	return &userID
}
