package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"storefront-gateway/internal/backend"
	"storefront-gateway/internal/config"
	"storefront-gateway/internal/db"
	"storefront-gateway/internal/httpserver"
	"storefront-gateway/internal/logging"
	cartrepo "storefront-gateway/internal/repository/cart"
	couponrepo "storefront-gateway/internal/repository/coupon"
	methodrepo "storefront-gateway/internal/repository/shippingmethod"
	cartsvc "storefront-gateway/internal/service/cart"
	checkoutsvc "storefront-gateway/internal/service/checkout"
	couponsvc "storefront-gateway/internal/service/coupon"
	shippingsvc "storefront-gateway/internal/service/shipping"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	backendClient := backend.New(cfg.BackendBaseURL, logger)

	couponRepo := couponrepo.NewPostgres(dbpool, logger)
	couponService := couponsvc.New(couponRepo, logger)
	methodRepo := methodrepo.NewPostgres(dbpool, logger)
	shippingService := shippingsvc.New(methodRepo, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	cartService := cartsvc.New(cartRepo, logger)
	checkoutService := checkoutsvc.New(cartService, couponService, shippingService, backendClient, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:     backendClient,
		CartSvc:     cartService,
		ShippingSvc: shippingService,
		CheckoutSvc: checkoutService,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
