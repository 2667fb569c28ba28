package cart

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"storefront-gateway/internal/domain"
	cartrepo "storefront-gateway/internal/repository/cart"
)

type stubRepo struct {
	createCart    *domain.Cart
	createErr     error
	createCalls   int
	getResults    []*domain.Cart
	getErrs       []error
	getCalls      int
	addErr        error
	lastAddCartID string
	lastAddInput  cartrepo.AddItemInput
	changeErr     error
	lastChangeID  string
	lastChangeQty int
	removeErr     error
	lastRemoveID  string
	clearErr      error
	clearedCartID string
}

func (s *stubRepo) Create(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.createCalls++
	return s.createCart, s.createErr
}

func (s *stubRepo) GetActiveBySession(_ context.Context, _ string) (*domain.Cart, error) {
	idx := s.getCalls
	s.getCalls++
	var err error
	if idx < len(s.getErrs) {
		err = s.getErrs[idx]
	}
	if err != nil {
		return nil, err
	}
	var cart *domain.Cart
	if len(s.getResults) > 0 {
		if idx >= len(s.getResults) {
			idx = len(s.getResults) - 1
		}
		cart = s.getResults[idx]
	}
	if cart == nil {
		return nil, domain.ErrNotFound
	}
	return cart, nil
}

func (s *stubRepo) AddItem(_ context.Context, cartID string, in cartrepo.AddItemInput) error {
	s.lastAddCartID = cartID
	s.lastAddInput = in
	return s.addErr
}

func (s *stubRepo) ChangeItemQuantity(_ context.Context, _, itemID string, quantity int) error {
	s.lastChangeID = itemID
	s.lastChangeQty = quantity
	return s.changeErr
}

func (s *stubRepo) RemoveItem(_ context.Context, _, itemID string) error {
	s.lastRemoveID = itemID
	return s.removeErr
}

func (s *stubRepo) Clear(_ context.Context, cartID string) error {
	s.clearedCartID = cartID
	return s.clearErr
}

func newService(repo *stubRepo) *Service {
	return &Service{repo: repo, logger: zap.NewNop(), subs: make(map[int]chan Change)}
}

func TestGetReturnsEmptyCartWhenNoneExists(t *testing.T) {
	svc := newService(&stubRepo{})
	cart, err := svc.Get(context.Background(), "sess")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.ID != "" || len(cart.Items) != 0 || cart.SessionID != "sess" {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestAddItemValidation(t *testing.T) {
	svc := newService(&stubRepo{})
	cases := []struct {
		in   AddItemInput
		want string
	}{
		{AddItemInput{Name: "Tee", Quantity: 1}, "sku required"},
		{AddItemInput{SKU: "s", Quantity: 1}, "name required"},
		{AddItemInput{SKU: "s", Name: "Tee", Quantity: 0}, "quantity must be positive"},
		{AddItemInput{SKU: "s", Name: "Tee", Quantity: 1, UnitPriceCents: -1}, "price must not be negative"},
	}
	for _, tc := range cases {
		_, err := svc.AddItem(context.Background(), "sess", tc.in)
		if err == nil || err.Error() != tc.want {
			t.Fatalf("expected %q, got %v", tc.want, err)
		}
	}
}

func TestAddItemCreatesCartOnFirstAdd(t *testing.T) {
	created := &domain.Cart{ID: "c1", SessionID: "sess"}
	updated := &domain.Cart{
		ID:    "c1",
		Items: []domain.CartItem{{ID: "i1", SKU: "SKU-1", Quantity: 2, UnitPriceCents: 1999}},
	}
	repo := &stubRepo{
		createCart: created,
		getResults: []*domain.Cart{nil, updated},
		getErrs:    []error{domain.ErrNotFound, nil},
	}
	svc := newService(repo)

	ch, cancel := svc.Subscribe(1)
	defer cancel()

	got, err := svc.AddItem(context.Background(), "sess", AddItemInput{
		SKU: "SKU-1", Name: "Tee", Quantity: 2, UnitPriceCents: 1999,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected cart creation")
	}
	if got != updated {
		t.Fatalf("unexpected cart %+v", got)
	}
	if repo.lastAddCartID != "c1" || repo.lastAddInput.Quantity != 2 {
		t.Fatalf("add item not forwarded as expected")
	}

	change := <-ch
	if change.Type != ChangeItemAdded || change.SessionID != "sess" {
		t.Fatalf("unexpected change %+v", change)
	}
	if change.Item == nil || change.Item.SKU != "SKU-1" {
		t.Fatalf("change should carry the added item, got %+v", change.Item)
	}
}

func TestAddItemMergesVariantAttributes(t *testing.T) {
	existing := &domain.Cart{ID: "c1", Items: []domain.CartItem{
		{ID: "i1", SKU: "SKU-1", Color: "red", Size: "M", Quantity: 1},
	}}
	updated := &domain.Cart{ID: "c1", Items: []domain.CartItem{
		{ID: "i1", SKU: "SKU-1", Color: "red", Size: "M", Quantity: 3},
	}}
	repo := &stubRepo{getResults: []*domain.Cart{existing, updated}}
	svc := newService(repo)

	_, err := svc.AddItem(context.Background(), "sess", AddItemInput{
		SKU: "SKU-1", Name: "Tee", Quantity: 2, Color: " red ", Size: "M",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastAddInput.Color != "red" {
		t.Fatalf("expected trimmed color, got %q", repo.lastAddInput.Color)
	}
}

func TestChangeQuantityValidation(t *testing.T) {
	svc := newService(&stubRepo{})
	if _, err := svc.ChangeQuantity(context.Background(), "sess", "", 2); err == nil || err.Error() != "itemId required" {
		t.Fatalf("expected itemId error, got %v", err)
	}
	if _, err := svc.ChangeQuantity(context.Background(), "sess", "i1", 0); err == nil || err.Error() != "quantity must be positive" {
		t.Fatalf("expected quantity error, got %v", err)
	}
}

func TestChangeQuantityPublishesDelta(t *testing.T) {
	initial := &domain.Cart{ID: "c1", Items: []domain.CartItem{{ID: "i1", SKU: "SKU-1", Quantity: 1}}}
	updated := &domain.Cart{ID: "c1", Items: []domain.CartItem{{ID: "i1", SKU: "SKU-1", Quantity: 4}}}
	repo := &stubRepo{getResults: []*domain.Cart{initial, updated}}
	svc := newService(repo)

	ch, cancel := svc.Subscribe(1)
	defer cancel()

	got, err := svc.ChangeQuantity(context.Background(), "sess", "i1", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != updated || repo.lastChangeID != "i1" || repo.lastChangeQty != 4 {
		t.Fatalf("change not forwarded as expected")
	}

	change := <-ch
	if change.Type != ChangeQuantityChanged || change.Item == nil || change.Item.Quantity != 4 {
		t.Fatalf("unexpected change %+v", change)
	}
}

func TestRemoveItemPublishesRemovedItem(t *testing.T) {
	initial := &domain.Cart{ID: "c1", Items: []domain.CartItem{{ID: "i1", SKU: "SKU-1", Quantity: 2}}}
	updated := &domain.Cart{ID: "c1"}
	repo := &stubRepo{getResults: []*domain.Cart{initial, updated}}
	svc := newService(repo)

	ch, cancel := svc.Subscribe(1)
	defer cancel()

	got, err := svc.RemoveItem(context.Background(), "sess", "i1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != updated || repo.lastRemoveID != "i1" {
		t.Fatalf("remove not forwarded as expected")
	}

	change := <-ch
	if change.Type != ChangeItemRemoved || change.Item == nil || change.Item.ID != "i1" {
		t.Fatalf("unexpected change %+v", change)
	}
}

func TestRemoveItemRepoError(t *testing.T) {
	repo := &stubRepo{
		getResults: []*domain.Cart{{ID: "c1"}},
		removeErr:  errors.New("remove failed"),
	}
	svc := newService(repo)
	_, err := svc.RemoveItem(context.Background(), "sess", "i1")
	if err == nil || err.Error() != "remove failed" {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestClearNoCartIsNoop(t *testing.T) {
	repo := &stubRepo{}
	svc := newService(repo)
	if err := svc.Clear(context.Background(), "sess"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.clearedCartID != "" {
		t.Fatalf("clear should not reach the repo without a cart")
	}
}

func TestClearPublishes(t *testing.T) {
	repo := &stubRepo{getResults: []*domain.Cart{{ID: "c1"}}}
	svc := newService(repo)

	ch, cancel := svc.Subscribe(1)
	defer cancel()

	if err := svc.Clear(context.Background(), "sess"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.clearedCartID != "c1" {
		t.Fatalf("unexpected cleared cart %q", repo.clearedCartID)
	}

	change := <-ch
	if change.Type != ChangeCleared || change.Item != nil {
		t.Fatalf("unexpected change %+v", change)
	}
}

func TestSlowSubscriberDoesNotBlockMutations(t *testing.T) {
	repo := &stubRepo{getResults: []*domain.Cart{{ID: "c1"}}}
	svc := newService(repo)

	// Fill the subscriber buffer and never drain it.
	_, cancel := svc.Subscribe(1)
	defer cancel()

	if err := svc.Clear(context.Background(), "sess"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.getCalls = 0
	repo.getResults = []*domain.Cart{{ID: "c1"}}
	if err := svc.Clear(context.Background(), "sess"); err != nil {
		t.Fatalf("second clear must not block: %v", err)
	}
}
