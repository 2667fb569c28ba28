package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/domain"
)

func listShippingMethodsHandler(shipping ShippingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		methods, err := shipping.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load shipping methods"})
			return
		}
		if methods == nil {
			methods = []domain.ShippingMethod{}
		}
		c.JSON(http.StatusOK, methods)
	}
}

func shippingPriceHandler(shipping ShippingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
		if err != nil || quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a non-negative integer"})
			return
		}

		quote, err := shipping.PriceForQuantity(c.Request.Context(), c.Param("methodID"), quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "shipping method not found"})
				return
			}
			if isValidationError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to price shipping"})
			return
		}
		c.JSON(http.StatusOK, quote)
	}
}
