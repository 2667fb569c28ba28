package domain

import "time"

type ShippingMethod struct {
	ID             string         `json:"id"`
	Key            string         `json:"key"`
	Name           string         `json:"name"`
	BasePriceCents int64          `json:"basePriceCents"`
	Tiers          []ShippingTier `json:"tiers,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// ShippingTier maps a quantity breakpoint to a price. Tiers are stored in
// ascending breakpoint order; breakpoints are expected to be strictly
// increasing.
type ShippingTier struct {
	MinQuantity int   `json:"minQuantity"`
	PriceCents  int64 `json:"priceCents"`
}
