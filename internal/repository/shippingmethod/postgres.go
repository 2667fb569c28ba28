package shippingmethod

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

func (r *postgresRepo) List(ctx context.Context) ([]domain.ShippingMethod, error) {
	const q = `
SELECT id::text, key, name, base_price_cents, created_at
FROM shipping_methods
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("shipping repo: list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var methods []domain.ShippingMethod
	for rows.Next() {
		var m domain.ShippingMethod
		if err := rows.Scan(&m.ID, &m.Key, &m.Name, &m.BasePriceCents, &m.CreatedAt); err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("shipping repo: list rows", zap.Error(err))
		return nil, err
	}

	for i := range methods {
		tiers, err := r.tiersFor(ctx, methods[i].ID)
		if err != nil {
			return nil, err
		}
		methods[i].Tiers = tiers
	}
	return methods, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.ShippingMethod, error) {
	const q = `
SELECT id::text, key, name, base_price_cents, created_at
FROM shipping_methods
WHERE id::text = $1 OR key = $1
`
	var m domain.ShippingMethod
	err := r.pool.QueryRow(ctx, q, id).Scan(&m.ID, &m.Key, &m.Name, &m.BasePriceCents, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("shipping repo: get by id", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	tiers, err := r.tiersFor(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.Tiers = tiers
	return &m, nil
}

func (r *postgresRepo) tiersFor(ctx context.Context, methodID string) ([]domain.ShippingTier, error) {
	const q = `
SELECT min_quantity, price_cents
FROM shipping_method_tiers
WHERE method_id = $1
ORDER BY min_quantity ASC
`
	rows, err := r.pool.Query(ctx, q, methodID)
	if err != nil {
		r.logger.Error("shipping repo: tiers", zap.String("method_id", methodID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var tiers []domain.ShippingTier
	for rows.Next() {
		var t domain.ShippingTier
		if err := rows.Scan(&t.MinQuantity, &t.PriceCents); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tiers, nil
}
