package httpserver

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/pricing"
	cartsvc "storefront-gateway/internal/service/cart"
	checkoutsvc "storefront-gateway/internal/service/checkout"
)

// CatalogClient reads the commerce backend's catalog.
type CatalogClient interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type CartService interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddItem(ctx context.Context, sessionID string, in cartsvc.AddItemInput) (*domain.Cart, error)
	ChangeQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type ShippingService interface {
	List(ctx context.Context) ([]domain.ShippingMethod, error)
	PriceForQuantity(ctx context.Context, methodID string, quantity int) (pricing.ShippingQuote, error)
}

type CheckoutService interface {
	Quote(ctx context.Context, sessionID string, in checkoutsvc.QuoteInput) (*checkoutsvc.Quote, error)
	Submit(ctx context.Context, sessionID string, in checkoutsvc.SubmitInput) (*checkoutsvc.Result, error)
}

// Deps carries the collaborators the routes need.
type Deps struct {
	Catalog     CatalogClient
	CartSvc     CartService
	ShippingSvc ShippingService
	CheckoutSvc CheckoutService
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	if len(corsOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = corsOrigins
		cfg.AllowHeaders = append(cfg.AllowHeaders, sessionHeader)
		cfg.ExposeHeaders = append(cfg.ExposeHeaders, sessionHeader)
		router.Use(cors.New(cfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api", cartSessionMiddleware())
	{
		api.GET("/products/", listProductsHandler(deps.Catalog))
		api.GET("/categories/", listCategoriesHandler(deps.Catalog))

		api.GET("/shipping-methods/", listShippingMethodsHandler(deps.ShippingSvc))
		api.GET("/shipping-methods/:methodID/price-for-quantity/", shippingPriceHandler(deps.ShippingSvc))

		api.GET("/cart/", getCartHandler(deps.CartSvc))
		api.POST("/cart/items/", addCartItemHandler(deps.CartSvc))
		api.PATCH("/cart/items/:itemID/", changeCartItemHandler(deps.CartSvc))
		api.DELETE("/cart/items/:itemID/", removeCartItemHandler(deps.CartSvc))
		api.DELETE("/cart/", clearCartHandler(deps.CartSvc))
		api.POST("/cart/apply-coupon/", applyCouponHandler(deps.CheckoutSvc))

		api.POST("/checkout/quote/", checkoutQuoteHandler(deps.CheckoutSvc))
		api.POST("/orders/submit/", submitOrderHandler(deps.CheckoutSvc))
	}

	return router
}

// requestLogger logs each request the way the rest of the service logs, with
// zap fields instead of gin's default writer.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
