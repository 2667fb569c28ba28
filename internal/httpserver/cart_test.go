package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-gateway/internal/domain"
)

func TestGetCartIncludesDerivedTotals(t *testing.T) {
	carts := &stubCartSvc{cart: &domain.Cart{
		ID:    "c1",
		State: "active",
		Items: []domain.CartItem{
			{ID: "i1", SKU: "SKU-1", UnitPriceCents: 1999, Quantity: 2},
			{ID: "i2", SKU: "SKU-2", UnitPriceCents: 500, Quantity: 1},
		},
	}}
	router := testRouter(Deps{CartSvc: carts})

	req := httptest.NewRequest(http.MethodGet, "/api/cart/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SubtotalCents != 4498 || resp.TotalQuantity != 3 {
		t.Fatalf("unexpected totals %+v", resp)
	}
}

func TestAddCartItem(t *testing.T) {
	carts := &stubCartSvc{cart: &domain.Cart{ID: "c1", State: "active"}}
	router := testRouter(Deps{CartSvc: carts})

	body := `{"sku":"SKU-1","name":"Tee","unitPriceCents":1999,"quantity":2,"color":"red"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if carts.lastInput.SKU != "SKU-1" || carts.lastInput.Quantity != 2 || carts.lastInput.Color != "red" {
		t.Fatalf("unexpected input %+v", carts.lastInput)
	}
}

func TestAddCartItemValidationError(t *testing.T) {
	carts := &stubCartSvc{err: errors.New("quantity must be positive")}
	router := testRouter(Deps{CartSvc: carts})

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items/", strings.NewReader(`{"sku":"s","name":"n","quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "quantity must be positive") {
		t.Fatalf("expected validation message, got %s", rec.Body.String())
	}
}

func TestChangeCartItemNotFound(t *testing.T) {
	carts := &stubCartSvc{err: domain.ErrNotFound}
	router := testRouter(Deps{CartSvc: carts})

	req := httptest.NewRequest(http.MethodPatch, "/api/cart/items/i9/", strings.NewReader(`{"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRemoveCartItem(t *testing.T) {
	carts := &stubCartSvc{cart: &domain.Cart{ID: "c1", State: "active"}}
	router := testRouter(Deps{CartSvc: carts})

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items/i1/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if carts.lastItemID != "i1" {
		t.Fatalf("unexpected item id %q", carts.lastItemID)
	}
}

func TestClearCart(t *testing.T) {
	carts := &stubCartSvc{}
	router := testRouter(Deps{CartSvc: carts})

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !carts.cleared {
		t.Fatalf("expected clear to be called")
	}
}
