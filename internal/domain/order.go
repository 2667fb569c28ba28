package domain

// OrderSubmission is the payload forwarded to the commerce backend when the
// shopper confirms payment.
type OrderSubmission struct {
	Reference        string                 `json:"reference"`
	Items            []CartItem             `json:"items"`
	ShippingMethodID string                 `json:"shipping_method_id"`
	CouponCode       string                 `json:"coupon_code,omitempty"`
	TotalCents       int64                  `json:"total_amount"`
	ShippingAddress  map[string]interface{} `json:"shipping_address"`
	PaymentInfo      map[string]interface{} `json:"payment_info"`
}

// OrderResult echoes the backend's answer to a submission.
type OrderResult struct {
	OrderID     string `json:"orderId,omitempty"`
	OrderNumber string `json:"orderNumber,omitempty"`
}
