package pricing

// AggregateTotal combines a subtotal, a subtotal discount, and a shipping
// price into the final order total. The discounted subtotal never goes below
// zero. All amounts are integer cents.
func AggregateTotal(subtotalCents, discountCents, shippingCents int64) int64 {
	discounted := subtotalCents - discountCents
	if discounted < 0 {
		discounted = 0
	}
	return discounted + shippingCents
}
