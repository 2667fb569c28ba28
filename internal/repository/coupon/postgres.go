package coupon

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storefront-gateway/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const couponColumns = `id::text, code, kind, percent_off::float8, amount_off_cents, min_purchase_cents, min_items, created_at`

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	const q = `
SELECT ` + couponColumns + `
FROM coupons
WHERE lower(code) = lower($1)
`
	var c domain.Coupon
	err := r.pool.QueryRow(ctx, q, code).Scan(
		&c.ID,
		&c.Code,
		&c.Kind,
		&c.PercentOff,
		&c.AmountOffCents,
		&c.MinPurchaseCents,
		&c.MinItems,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("coupon repo: get by code", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Coupon, error) {
	const q = `
SELECT ` + couponColumns + `
FROM coupons
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("coupon repo: list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Coupon
	for rows.Next() {
		var c domain.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.Kind, &c.PercentOff, &c.AmountOffCents, &c.MinPurchaseCents, &c.MinItems, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("coupon repo: list rows", zap.Error(err))
		return nil, err
	}
	return result, nil
}
