package coupon

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/pricing"
	couponrepo "storefront-gateway/internal/repository/coupon"
)

type couponRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}

type Service struct {
	repo   couponRepo
	logger *zap.Logger
}

func New(repo couponrepo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Resolve looks up a coupon code case-insensitively and evaluates it against
// the cart snapshot. Unknown codes resolve to not-applicable with the
// "not found" reason instead of an error; only infrastructure failures
// propagate as errors.
func (s *Service) Resolve(ctx context.Context, code string, snap domain.CartSnapshot) (pricing.Resolution, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return pricing.Resolution{Reason: pricing.ReasonNotFound}, nil
	}

	coupon, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return pricing.Resolution{Reason: pricing.ReasonNotFound}, nil
		}
		return pricing.Resolution{}, err
	}

	res := pricing.ResolveCoupon(coupon, snap)
	if !res.Applicable {
		s.logger.Debug("coupon rejected", zap.String("code", code), zap.String("reason", res.Reason))
	}
	return res, nil
}
