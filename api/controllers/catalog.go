package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hkfashion/storefront-backend/api/responses"
	"github.com/hkfashion/storefront-backend/api/validators"
	catalogsvc "github.com/hkfashion/storefront-backend/internal/catalog"
	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
	"github.com/hkfashion/storefront-backend/pkg/logger"
)

const (
	maxQueryLen = 200
	maxPage     = 100000
)

// Home returns the newest available products for the landing page.
func Home(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.Home(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

// ListProducts serves the paginated product listing with search, category and
// sort parameters.
func ListProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, maxPage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalogsvc.ListInput{
			Query:        validators.ParseQueryString(r, "q", maxQueryLen),
			CategorySlug: validators.ParseQueryString(r, "category", maxQueryLen),
			Sort:         validators.ParseQueryString(r, "sort", maxQueryLen),
			Page:         page,
		}

		listing, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listing)
	}
}

// ProductDetail serves one product addressed by id and slug. Requests with a
// stale slug miss, so renamed products do not leak under old URLs.
func ProductDetail(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		slug := chi.URLParam(r, "slug")

		product, err := svc.Detail(r.Context(), id, slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// Categories lists the catalog's categories for navigation.
func Categories(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}
