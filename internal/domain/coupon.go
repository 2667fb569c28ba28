package domain

import "time"

// Discount kinds supported by the coupon schema.
const (
	DiscountPercentage         = "percentage"
	DiscountFixed              = "fixed"
	DiscountShippingPercentage = "shipping_percentage"
)

type Coupon struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	Kind             string    `json:"kind"`
	PercentOff       float64   `json:"percentOff,omitempty"`
	AmountOffCents   int64     `json:"amountOffCents,omitempty"`
	MinPurchaseCents *int64    `json:"minPurchaseCents,omitempty"`
	MinItems         *int      `json:"minItems,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}
