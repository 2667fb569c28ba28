package domain

// Product and Category mirror the commerce backend's catalog payloads. The
// gateway never persists them; they pass through from the backend to the
// storefront.
type Product struct {
	ID          string                 `json:"id"`
	SKU         string                 `json:"sku"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	PriceCents  int64                  `json:"priceCents"`
	Currency    string                 `json:"currency"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
}

type Category struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
