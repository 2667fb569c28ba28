package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	checkoutsvc "storefront-gateway/internal/service/checkout"
)

func applyCouponHandler(checkout CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Code             string `json:"code"`
			ShippingMethodID string `json:"shipping_method_id"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if in.Code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code required"})
			return
		}

		quote, err := checkout.Quote(c.Request.Context(), sessionID(c), checkoutsvc.QuoteInput{
			CouponCode:       in.Code,
			ShippingMethodID: in.ShippingMethodID,
		})
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, quote)
	}
}

func checkoutQuoteHandler(checkout CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutsvc.QuoteInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		quote, err := checkout.Quote(c.Request.Context(), sessionID(c), in)
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, quote)
	}
}

func submitOrderHandler(checkout CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutsvc.SubmitInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		result, err := checkout.Submit(c.Request.Context(), sessionID(c), in)
		if err != nil {
			writeCartError(c, err)
			return
		}
		if result.State == checkoutsvc.StateFailed {
			c.JSON(result.FailureStatus, gin.H{
				"state": result.State,
				"error": result.FailureMessage,
			})
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}
