package cart

import (
	"context"

	"storefront-gateway/internal/domain"
)

type AddItemInput struct {
	SKU            string
	Name           string
	UnitPriceCents int64
	Quantity       int
	Color          string
	Size           string
}

type Repository interface {
	Create(ctx context.Context, sessionID string) (*domain.Cart, error)
	GetActiveBySession(ctx context.Context, sessionID string) (*domain.Cart, error)
	// AddItem merges quantity into an existing line with the same sku and
	// variant attributes, or inserts a new one.
	AddItem(ctx context.Context, cartID string, in AddItemInput) error
	// ChangeItemQuantity updates a line's quantity; zero or less removes it.
	ChangeItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	Clear(ctx context.Context, cartID string) error
}
