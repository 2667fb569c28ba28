package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type couponSeed struct {
	Code             string
	Kind             string
	PercentOff       float64
	AmountOffCents   int64
	MinPurchaseCents *int64
	MinItems         *int
}

type shippingSeed struct {
	Key            string
	Name           string
	BasePriceCents int64
	Tiers          [][2]int64 // min quantity, price cents
}

func int64Ptr(v int64) *int64 { return &v }

// Apply inserts demo coupons and shipping methods. It is idempotent via
// ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	coupons := []couponSeed{
		{Code: "SAVE10", Kind: "percentage", PercentOff: 10, MinPurchaseCents: int64Ptr(5000)},
		{Code: "FIVEOFF", Kind: "fixed", AmountOffCents: 500},
		{Code: "FREESHIP", Kind: "shipping_percentage", PercentOff: 100, MinPurchaseCents: int64Ptr(10000)},
	}
	for _, c := range coupons {
		if err := upsertCoupon(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert coupon %s: %w", c.Code, err)
		}
	}

	methods := []shippingSeed{
		{
			Key:            "standard",
			Name:           "Standard Shipping",
			BasePriceCents: 1500,
			Tiers:          [][2]int64{{1, 1500}, {5, 1000}, {10, 500}},
		},
		{
			Key:            "express",
			Name:           "Express Shipping",
			BasePriceCents: 2500,
		},
	}
	for _, m := range methods {
		if err := upsertShippingMethod(ctx, pool, m); err != nil {
			return fmt.Errorf("upsert shipping method %s: %w", m.Key, err)
		}
	}

	return nil
}

func upsertCoupon(ctx context.Context, pool *pgxpool.Pool, c couponSeed) error {
	const q = `
INSERT INTO coupons (code, kind, percent_off, amount_off_cents, min_purchase_cents, min_items)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (lower(code)) DO UPDATE
SET kind = EXCLUDED.kind,
    percent_off = EXCLUDED.percent_off,
    amount_off_cents = EXCLUDED.amount_off_cents,
    min_purchase_cents = EXCLUDED.min_purchase_cents,
    min_items = EXCLUDED.min_items
`
	_, err := pool.Exec(ctx, q, c.Code, c.Kind, c.PercentOff, c.AmountOffCents, c.MinPurchaseCents, c.MinItems)
	return err
}

func upsertShippingMethod(ctx context.Context, pool *pgxpool.Pool, m shippingSeed) error {
	const q = `
INSERT INTO shipping_methods (key, name, base_price_cents)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE
SET name = EXCLUDED.name,
    base_price_cents = EXCLUDED.base_price_cents
RETURNING id::text
`
	var methodID string
	if err := pool.QueryRow(ctx, q, m.Key, m.Name, m.BasePriceCents).Scan(&methodID); err != nil {
		return err
	}

	for _, tier := range m.Tiers {
		const tq = `
INSERT INTO shipping_method_tiers (method_id, min_quantity, price_cents)
VALUES ($1, $2, $3)
ON CONFLICT (method_id, min_quantity) DO UPDATE
SET price_cents = EXCLUDED.price_cents
`
		if _, err := pool.Exec(ctx, tq, methodID, tier[0], tier[1]); err != nil {
			return err
		}
	}
	return nil
}
