package pricing

import (
	"github.com/shopspring/decimal"

	"storefront-gateway/internal/domain"
)

// ShippingQuote is the priced shipping cost for one method and cart quantity.
type ShippingQuote struct {
	PriceCents     int64 `json:"price"`
	BasePriceCents int64 `json:"base_price"`
	Tiered         bool  `json:"has_tiers"`
}

// PriceForQuantity selects the tier with the largest breakpoint not exceeding
// quantity, or the base price when no tier matches or no tiers exist. If
// tiers share a breakpoint, the first one in ascending order wins.
func PriceForQuantity(method domain.ShippingMethod, quantity int) ShippingQuote {
	quote := ShippingQuote{
		PriceCents:     method.BasePriceCents,
		BasePriceCents: method.BasePriceCents,
		Tiered:         len(method.Tiers) > 0,
	}

	best := -1
	for _, tier := range method.Tiers {
		if tier.MinQuantity <= quantity && tier.MinQuantity > best {
			best = tier.MinQuantity
			quote.PriceCents = tier.PriceCents
		}
	}
	return quote
}

// ApplyShippingDiscount applies a shipping_percentage coupon fraction to a
// shipping price, floored at zero.
func ApplyShippingDiscount(priceCents int64, fraction float64) int64 {
	if fraction <= 0 {
		return priceCents
	}
	if fraction >= 1 {
		return 0
	}
	discounted := decimal.NewFromInt(priceCents).
		Mul(decimal.NewFromFloat(1 - fraction)).
		Round(0).
		IntPart()
	if discounted < 0 {
		return 0
	}
	return discounted
}
