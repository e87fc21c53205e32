package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	catalogsvc "github.com/hkfashion/storefront-backend/internal/catalog"
	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
)

type stubCatalogService struct {
	listing    *catalogsvc.ListView
	home       []catalogsvc.ProductView
	detail     *catalogsvc.ProductView
	categories []catalogsvc.CategoryView
	err        error

	gotInput catalogsvc.ListInput
	gotID    uuid.UUID
	gotSlug  string
}

func (s *stubCatalogService) List(_ context.Context, input catalogsvc.ListInput) (*catalogsvc.ListView, error) {
	s.gotInput = input
	return s.listing, s.err
}

func (s *stubCatalogService) Home(_ context.Context) ([]catalogsvc.ProductView, error) {
	return s.home, s.err
}

func (s *stubCatalogService) Detail(_ context.Context, id uuid.UUID, slug string) (*catalogsvc.ProductView, error) {
	s.gotID = id
	s.gotSlug = slug
	return s.detail, s.err
}

func (s *stubCatalogService) Categories(_ context.Context) ([]catalogsvc.CategoryView, error) {
	return s.categories, s.err
}

func TestListProductsForwardsQueryParams(t *testing.T) {
	svc := &stubCatalogService{listing: &catalogsvc.ListView{}}
	handler := ListProducts(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?q=scarf&category=accessories&sort=price_asc&page=3", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	want := catalogsvc.ListInput{Query: "scarf", CategorySlug: "accessories", Sort: "price_asc", Page: 3}
	if svc.gotInput != want {
		t.Fatalf("unexpected input: %+v", svc.gotInput)
	}
}

func TestListProductsRejectsNonNumericPage(t *testing.T) {
	handler := ListProducts(&stubCatalogService{listing: &catalogsvc.ListView{}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=abc", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestProductDetailParsesParams(t *testing.T) {
	id := uuid.New()
	svc := &stubCatalogService{detail: &catalogsvc.ProductView{ID: id, Slug: "silk-scarf"}}

	router := chi.NewRouter()
	router.Get("/api/v1/products/{id}/{slug}", ProductDetail(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id.String()+"/silk-scarf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.gotID != id || svc.gotSlug != "silk-scarf" {
		t.Fatalf("unexpected params: %s %s", svc.gotID, svc.gotSlug)
	}
}

func TestProductDetailRejectsBadID(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/v1/products/{id}/{slug}", ProductDetail(&stubCatalogService{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid/silk-scarf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestProductDetailNotFound(t *testing.T) {
	svc := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}

	router := chi.NewRouter()
	router.Get("/api/v1/products/{id}/{slug}", ProductDetail(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+uuid.NewString()+"/gone", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestCategoriesList(t *testing.T) {
	svc := &stubCatalogService{categories: []catalogsvc.CategoryView{{ID: uuid.New(), Name: "Accessories", Slug: "accessories"}}}
	handler := Categories(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"accessories"`)) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
