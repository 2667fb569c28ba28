// Package cart owns the session cart state. Other components mutate it
// through this service and observe it through typed change notifications
// instead of re-reading the full cart.
package cart

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"storefront-gateway/internal/domain"
	cartrepo "storefront-gateway/internal/repository/cart"
)

type ChangeType string

const (
	ChangeItemAdded       ChangeType = "item_added"
	ChangeItemRemoved     ChangeType = "item_removed"
	ChangeQuantityChanged ChangeType = "quantity_changed"
	ChangeCleared         ChangeType = "cleared"
)

// Change carries the delta of one cart mutation. Item is nil for cleared.
type Change struct {
	Type      ChangeType
	SessionID string
	Item      *domain.CartItem
}

type cartRepo interface {
	Create(ctx context.Context, sessionID string) (*domain.Cart, error)
	GetActiveBySession(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID string, in cartrepo.AddItemInput) error
	ChangeItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	Clear(ctx context.Context, cartID string) error
}

type Service struct {
	repo   cartRepo
	logger *zap.Logger

	mu     sync.Mutex
	subs   map[int]chan Change
	nextID int
}

func New(repo cartrepo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, subs: make(map[int]chan Change)}
}

type AddItemInput struct {
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	Color          string `json:"color,omitempty"`
	Size           string `json:"size,omitempty"`
}

// Get returns the active cart for a session, or an empty cart when the
// session has none yet. Reading never creates state.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.GetActiveBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Cart{SessionID: sessionID, State: "active"}, nil
		}
		return nil, err
	}
	return cart, nil
}

// Snapshot derives the pricing snapshot for the session's current cart.
func (s *Service) Snapshot(ctx context.Context, sessionID string) (domain.CartSnapshot, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}
	return cart.Snapshot(), nil
}

func (s *Service) AddItem(ctx context.Context, sessionID string, in AddItemInput) (*domain.Cart, error) {
	if strings.TrimSpace(in.SKU) == "" {
		return nil, errors.New("sku required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name required")
	}
	if in.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if in.UnitPriceCents < 0 {
		return nil, errors.New("price must not be negative")
	}

	cart, err := s.repo.GetActiveBySession(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		cart, err = s.repo.Create(ctx, sessionID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.AddItem(ctx, cart.ID, cartrepo.AddItemInput{
		SKU:            strings.TrimSpace(in.SKU),
		Name:           strings.TrimSpace(in.Name),
		UnitPriceCents: in.UnitPriceCents,
		Quantity:       in.Quantity,
		Color:          strings.TrimSpace(in.Color),
		Size:           strings.TrimSpace(in.Size),
	}); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetActiveBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.publish(Change{Type: ChangeItemAdded, SessionID: sessionID, Item: findItem(updated, in)})
	return updated, nil
}

func (s *Service) ChangeQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*domain.Cart, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, errors.New("itemId required")
	}
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}

	cart, err := s.repo.GetActiveBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ChangeItemQuantity(ctx, cart.ID, itemID, quantity); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetActiveBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.publish(Change{Type: ChangeQuantityChanged, SessionID: sessionID, Item: findItemByID(updated, itemID)})
	return updated, nil
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, itemID string) (*domain.Cart, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, errors.New("itemId required")
	}

	cart, err := s.repo.GetActiveBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	removed := findItemByID(cart, itemID)
	if err := s.repo.RemoveItem(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetActiveBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.publish(Change{Type: ChangeItemRemoved, SessionID: sessionID, Item: removed})
	return updated, nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	cart, err := s.repo.GetActiveBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.repo.Clear(ctx, cart.ID); err != nil {
		return err
	}
	s.publish(Change{Type: ChangeCleared, SessionID: sessionID})
	return nil
}

// Subscribe registers a change listener. The returned cancel func must be
// called to release the subscription.
func (s *Service) Subscribe(buffer int) (<-chan Change, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Change, buffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// publish delivers a change to all subscribers without blocking mutations;
// a subscriber with a full buffer misses the change.
func (s *Service) publish(change Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subs {
		select {
		case ch <- change:
		default:
			s.logger.Debug("cart change dropped", zap.Int("subscriber", id), zap.String("type", string(change.Type)))
		}
	}
}

func findItem(cart *domain.Cart, in AddItemInput) *domain.CartItem {
	if cart == nil {
		return nil
	}
	sku := strings.TrimSpace(in.SKU)
	color := strings.TrimSpace(in.Color)
	size := strings.TrimSpace(in.Size)
	for i := range cart.Items {
		item := &cart.Items[i]
		if item.SKU == sku && item.Color == color && item.Size == size {
			return item
		}
	}
	return nil
}

func findItemByID(cart *domain.Cart, itemID string) *domain.CartItem {
	if cart == nil {
		return nil
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			return &cart.Items[i]
		}
	}
	return nil
}
