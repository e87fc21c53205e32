package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hkfashion/storefront-backend/api/middleware"
	cartsvc "github.com/hkfashion/storefront-backend/internal/cart"
	pkgerrors "github.com/hkfashion/storefront-backend/pkg/errors"
)

type stubCartService struct {
	err     error
	added   []cartsvc.AddInput
	removed []uuid.UUID
	view    *cartsvc.View
	badge   *cartsvc.BadgeView
}

func (s *stubCartService) Add(_ context.Context, _ string, input cartsvc.AddInput) error {
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, input)
	return nil
}

func (s *stubCartService) Remove(_ context.Context, _ string, productID uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.removed = append(s.removed, productID)
	return nil
}

func (s *stubCartService) Clear(_ context.Context, _ string) error {
	return s.err
}

func (s *stubCartService) Detail(_ context.Context, _ string) (*cartsvc.View, error) {
	return s.view, s.err
}

func (s *stubCartService) Badge(_ context.Context, _ string) (*cartsvc.BadgeView, error) {
	return s.badge, s.err
}

func (s *stubCartService) Current(_ context.Context, _ string) (cartsvc.Cart, error) {
	return cartsvc.New(), s.err
}

func withSession(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithSessionID(req.Context(), uuid.NewString()))
}

func TestCartAddRedirectsToCart(t *testing.T) {
	svc := &stubCartService{}
	handler := CartAdd(svc, nil)

	productID := uuid.New()
	body := []byte(`{"product_id":"` + productID.String() + `","quantity":2}`)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/api/v1/cart" {
		t.Fatalf("unexpected location %s", got)
	}
	if len(svc.added) != 1 || svc.added[0].ProductID != productID || svc.added[0].Quantity != 2 {
		t.Fatalf("unexpected add input: %+v", svc.added)
	}
}

func TestCartAddRejectsZeroQuantity(t *testing.T) {
	handler := CartAdd(&stubCartService{}, nil)

	body := []byte(`{"product_id":"` + uuid.NewString() + `","quantity":0}`)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCartAddPropagatesNotFound(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not available")}
	handler := CartAdd(svc, nil)

	body := []byte(`{"product_id":"` + uuid.NewString() + `","quantity":1}`)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestCartRemoveRedirectsToCart(t *testing.T) {
	svc := &stubCartService{}
	productID := uuid.New()

	router := chi.NewRouter()
	router.Post("/api/v1/cart/items/{productID}/remove", CartRemove(svc, nil))

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items/"+productID.String()+"/remove", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", rec.Code)
	}
	if len(svc.removed) != 1 || svc.removed[0] != productID {
		t.Fatalf("unexpected removals: %+v", svc.removed)
	}
}

func TestCartDetailRequiresSession(t *testing.T) {
	handler := CartDetail(&stubCartService{view: &cartsvc.View{}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}

func TestCartBadge(t *testing.T) {
	svc := &stubCartService{badge: &cartsvc.BadgeView{ItemCount: 3, TotalPrice: decimal.RequireFromString("59.97")}}
	handler := CartBadge(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart/badge", nil))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"item_count":3`)) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
