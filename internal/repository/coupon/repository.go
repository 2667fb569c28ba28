package coupon

import (
	"context"

	"storefront-gateway/internal/domain"
)

type Repository interface {
	// GetByCode matches a coupon code case-insensitively.
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	List(ctx context.Context) ([]domain.Coupon, error)
}
