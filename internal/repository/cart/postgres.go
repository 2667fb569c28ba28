package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-gateway/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const cartColumns = `id::text, session_id, state, created_at`

func (r *postgresRepo) Create(ctx context.Context, sessionID string) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (session_id, state)
VALUES ($1, 'active')
RETURNING ` + cartColumns + `
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, q, sessionID).Scan(
		&cart.ID,
		&cart.SessionID,
		&cart.State,
		&cart.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) GetActiveBySession(ctx context.Context, sessionID string) (*domain.Cart, error) {
	const q = `
SELECT ` + cartColumns + `
FROM carts
WHERE session_id = $1 AND state = 'active'
ORDER BY created_at DESC
LIMIT 1
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, q, sessionID).Scan(
		&cart.ID,
		&cart.SessionID,
		&cart.State,
		&cart.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	items, err := r.itemsFor(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return &cart, nil
}

func (r *postgresRepo) AddItem(ctx context.Context, cartID string, in AddItemInput) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var itemID string
	var existingQty int
	err = tx.QueryRow(ctx, `
SELECT id::text, quantity
FROM cart_items
WHERE cart_id = $1 AND sku = $2 AND color = $3 AND size = $4
`, cartID, in.SKU, in.Color, in.Size).Scan(&itemID, &existingQty)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if err == nil {
		if _, err := tx.Exec(ctx, `
UPDATE cart_items
SET quantity = $1
WHERE id = $2
`, existingQty+in.Quantity, itemID); err != nil {
			return err
		}
	} else {
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, sku, name, unit_price_cents, quantity, color, size)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, cartID, in.SKU, in.Name, in.UnitPriceCents, in.Quantity, in.Color, in.Size); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) ChangeItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error {
	if quantity <= 0 {
		return r.RemoveItem(ctx, cartID, itemID)
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE cart_items
SET quantity = $1
WHERE id::text = $2 AND cart_id = $3
`, quantity, itemID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) RemoveItem(ctx context.Context, cartID, itemID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE id::text = $1 AND cart_id = $2
`, itemID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, cartID string) error {
	_, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE cart_id = $1
`, cartID)
	return err
}

func (r *postgresRepo) itemsFor(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	const q = `
SELECT id::text, cart_id::text, sku, name, unit_price_cents, quantity, color, size, created_at
FROM cart_items
WHERE cart_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.SKU,
			&item.Name,
			&item.UnitPriceCents,
			&item.Quantity,
			&item.Color,
			&item.Size,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
