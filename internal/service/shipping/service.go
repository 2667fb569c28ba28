package shipping

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/pricing"
	methodrepo "storefront-gateway/internal/repository/shippingmethod"
)

type methodRepo interface {
	List(ctx context.Context) ([]domain.ShippingMethod, error)
	GetByID(ctx context.Context, id string) (*domain.ShippingMethod, error)
}

type Service struct {
	repo   methodRepo
	logger *zap.Logger
}

func New(repo methodrepo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]domain.ShippingMethod, error) {
	return s.repo.List(ctx)
}

// PriceForQuantity prices one method for a cart quantity. Unknown method ids
// surface domain.ErrNotFound; the caller decides the fallback.
func (s *Service) PriceForQuantity(ctx context.Context, methodID string, quantity int) (pricing.ShippingQuote, error) {
	if strings.TrimSpace(methodID) == "" {
		return pricing.ShippingQuote{}, errors.New("shipping method id required")
	}
	if quantity < 0 {
		return pricing.ShippingQuote{}, errors.New("quantity must not be negative")
	}

	method, err := s.repo.GetByID(ctx, methodID)
	if err != nil {
		return pricing.ShippingQuote{}, err
	}
	return pricing.PriceForQuantity(*method, quantity), nil
}
