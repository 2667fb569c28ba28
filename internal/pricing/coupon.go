package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"storefront-gateway/internal/domain"
)

// Resolution reports whether a coupon applies to a cart and what it is worth.
// DiscountCents comes off the subtotal; ShippingFraction (0..1) comes off the
// shipping price and is applied by the shipping calculator.
type Resolution struct {
	Applicable       bool    `json:"applicable"`
	DiscountCents    int64   `json:"discountCents"`
	ShippingFraction float64 `json:"shippingFraction,omitempty"`
	Reason           string  `json:"reason,omitempty"`
}

// ReasonNotFound is returned for coupon codes that match nothing.
const ReasonNotFound = "not found"

var oneHundred = decimal.NewFromInt(100)

// ResolveCoupon decides applicability and computes the discount for one cart
// snapshot. It is a pure function of its inputs; a nil coupon means the code
// matched nothing. Conditions are checked in order: minimum purchase first,
// then minimum item count.
func ResolveCoupon(coupon *domain.Coupon, snap domain.CartSnapshot) Resolution {
	if coupon == nil {
		return Resolution{Reason: ReasonNotFound}
	}
	if coupon.MinPurchaseCents != nil && snap.SubtotalCents < *coupon.MinPurchaseCents {
		return Resolution{Reason: "minimum purchase amount not met"}
	}
	if coupon.MinItems != nil && snap.TotalQuantity < *coupon.MinItems {
		return Resolution{Reason: "minimum item count not met"}
	}

	switch strings.ToLower(strings.TrimSpace(coupon.Kind)) {
	case domain.DiscountPercentage:
		return Resolution{
			Applicable:    true,
			DiscountCents: percentOfCents(snap.SubtotalCents, coupon.PercentOff),
		}
	case domain.DiscountFixed:
		discount := coupon.AmountOffCents
		if discount > snap.SubtotalCents {
			discount = snap.SubtotalCents
		}
		if discount < 0 {
			discount = 0
		}
		return Resolution{Applicable: true, DiscountCents: discount}
	case domain.DiscountShippingPercentage:
		fraction := coupon.PercentOff / 100
		if fraction > 1 {
			fraction = 1
		}
		if fraction < 0 {
			fraction = 0
		}
		return Resolution{Applicable: true, ShippingFraction: fraction}
	default:
		return Resolution{Reason: "unsupported discount kind"}
	}
}

// percentOfCents computes percent of an integer cent amount, rounded half away
// from zero to the nearest cent.
func percentOfCents(cents int64, percent float64) int64 {
	if percent <= 0 || cents <= 0 {
		return 0
	}
	if percent > 100 {
		percent = 100
	}
	return decimal.NewFromInt(cents).
		Mul(decimal.NewFromFloat(percent)).
		Div(oneHundred).
		Round(0).
		IntPart()
}
