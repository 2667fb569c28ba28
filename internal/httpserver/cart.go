package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/domain"
	cartsvc "storefront-gateway/internal/service/cart"
)

type cartResponse struct {
	Cart          *domain.Cart `json:"cart"`
	SubtotalCents int64        `json:"subtotalCents"`
	TotalQuantity int          `json:"totalQuantity"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	snap := cart.Snapshot()
	return cartResponse{
		Cart:          cart,
		SubtotalCents: snap.SubtotalCents,
		TotalQuantity: snap.TotalQuantity,
	}
}

func getCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func addCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cartsvc.AddItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		cart, err := carts.AddItem(c.Request.Context(), sessionID(c), in)
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toCartResponse(cart))
	}
}

func changeCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Quantity int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		cart, err := carts.ChangeQuantity(c.Request.Context(), sessionID(c), c.Param("itemID"), in.Quantity)
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func removeCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.RemoveItem(c.Request.Context(), sessionID(c), c.Param("itemID"))
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func clearCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Clear(c.Request.Context(), sessionID(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// writeCartError maps service errors: not-found to 404, validation messages
// to 400, everything else to 500.
func writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case isValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var validationMessages = map[string]struct{}{
	"sku required":                  {},
	"name required":                 {},
	"itemId required":               {},
	"quantity must be positive":     {},
	"price must not be negative":    {},
	"shipping method id required":   {},
	"quantity must not be negative": {},
	"shipping_method_id required":   {},
	"cart is empty":                 {},
}

func isValidationError(err error) bool {
	_, ok := validationMessages[err.Error()]
	return ok
}
