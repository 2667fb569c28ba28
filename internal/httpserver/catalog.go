package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/backend"
	"storefront-gateway/internal/domain"
)

func listProductsHandler(catalog CatalogClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.ListProducts(c.Request.Context())
		if err != nil {
			relayBackendError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func listCategoriesHandler(catalog CatalogClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := catalog.ListCategories(c.Request.Context())
		if err != nil {
			relayBackendError(c, err)
			return
		}
		if categories == nil {
			categories = []domain.Category{}
		}
		c.JSON(http.StatusOK, categories)
	}
}

// relayBackendError passes the backend's status and message through when it
// supplied one, and answers 502 for transport failures.
func relayBackendError(c *gin.Context, err error) {
	var berr *backend.Error
	if errors.As(err, &berr) {
		c.JSON(berr.StatusCode, gin.H{"error": berr.Message})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "commerce backend unavailable"})
}
