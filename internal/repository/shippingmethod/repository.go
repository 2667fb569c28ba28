package shippingmethod

import (
	"context"

	"storefront-gateway/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.ShippingMethod, error)
	// GetByID loads one method with its tiers in ascending breakpoint order.
	GetByID(ctx context.Context, id string) (*domain.ShippingMethod, error)
}
