package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-gateway/internal/domain"
)

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products/" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"p1","sku":"SKU-1","name":"Tee","priceCents":1999,"currency":"USD"}]`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	products, err := client.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].SKU != "SKU-1" || products[0].PriceCents != 1999 {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestListProductsBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"catalog unavailable"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.ListProducts(context.Background())
	var berr *Error
	if !errors.As(err, &berr) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if berr.StatusCode != http.StatusBadGateway || berr.Message != "catalog unavailable" {
		t.Fatalf("unexpected error %+v", berr)
	}
}

func TestSubmitOrderSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/orders/submit/" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"orderId":"o-1","orderNumber":"1001"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	result, err := client.SubmitOrder(context.Background(), domain.OrderSubmission{
		Reference:        "ref-1",
		ShippingMethodID: "standard",
		TotalCents:       11300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OrderID != "o-1" || result.OrderNumber != "1001" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestSubmitOrderBackendMessagePassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"card declined"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.SubmitOrder(context.Background(), domain.OrderSubmission{Reference: "ref-2"})
	var berr *Error
	if !errors.As(err, &berr) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if berr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", berr.StatusCode)
	}
	if berr.Message != "card declined" {
		t.Fatalf("expected backend message verbatim, got %q", berr.Message)
	}
}

func TestSubmitOrderNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.SubmitOrder(context.Background(), domain.OrderSubmission{})
	var berr *Error
	if !errors.As(err, &berr) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if berr.Message != "boom" {
		t.Fatalf("unexpected message %q", berr.Message)
	}
}
