package domain

import "time"

type Cart struct {
	ID        string     `json:"id"`
	SessionID string     `json:"-"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"createdAt"`
	Items     []CartItem `json:"items,omitempty"`
}

type CartItem struct {
	ID             string    `json:"id"`
	CartID         string    `json:"cartId"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int       `json:"quantity"`
	Color          string    `json:"color,omitempty"`
	Size           string    `json:"size,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CartSnapshot is a point-in-time read of cart contents used for one pricing
// computation. Item order is irrelevant to pricing.
type CartSnapshot struct {
	Items         []CartItem `json:"items"`
	SubtotalCents int64      `json:"subtotalCents"`
	TotalQuantity int        `json:"totalQuantity"`
}

// Snapshot derives subtotal and total quantity from the cart's items.
func (c Cart) Snapshot() CartSnapshot {
	snap := CartSnapshot{Items: c.Items}
	for _, item := range c.Items {
		snap.SubtotalCents += item.UnitPriceCents * int64(item.Quantity)
		snap.TotalQuantity += item.Quantity
	}
	return snap
}
