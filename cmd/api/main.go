package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"urbancart-backend/config"
	"urbancart-backend/internal/delivery/http/middleware"
	v1 "urbancart-backend/internal/delivery/http/v1"
	infracache "urbancart-backend/internal/infrastructure/cache"
	"urbancart-backend/internal/repository/postgres"
	"urbancart-backend/internal/usecase"
	"urbancart-backend/pkg/logger"
	"urbancart-backend/pkg/payment"
	"urbancart-backend/pkg/storage"
	"urbancart-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.Env, cfg.LogLevel)
	utils.SetSecret(cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPgxPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("database connection established")

	// Repositories
	txManager := postgres.NewTransactionManager(pool)
	userRepo := postgres.NewUserRepository(pool)
	addressRepo := postgres.NewAddressRepository(pool, txManager)
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)

	// Infrastructure
	cacheService := infracache.NewMemoryCache(cfg.CacheProductTTL, 2*cfg.CacheProductTTL)
	stripeGateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.FrontendURL)

	// Usecases
	authUC := usecase.NewAuthUsecase(userRepo, cfg.AccessTokenExpiry)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	catalogUC := usecase.NewCatalogUsecase(productRepo, cacheService, cfg.CacheProductTTL)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo, cfg.MaxCartQuantity)
	orderUC := usecase.NewOrderUsecase(orderRepo, cartRepo, productRepo, addressRepo, txManager)
	paymentUC := usecase.NewPaymentUsecase(orderRepo, stripeGateway)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, productRepo, orderRepo, cacheService)

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	secureCookie := cfg.Env == "production"
	v1.NewAuthHandler(authUC, cfg.AccessTokenExpiry, secureCookie).RegisterRoutes(mux)
	v1.NewAddressHandler(addressUC).RegisterRoutes(mux)
	v1.NewProductHandler(catalogUC).RegisterRoutes(mux)
	v1.NewCartHandler(cartUC).RegisterRoutes(mux)
	v1.NewOrderHandler(orderUC).RegisterRoutes(mux)
	v1.NewPaymentHandler(paymentUC).RegisterRoutes(mux)
	v1.NewReviewHandler(reviewUC).RegisterRoutes(mux)

	if cfg.StorageBucket != "" {
		objectStorage, err := storage.NewObjectStorage(ctx,
			cfg.StorageAccountID, cfg.StorageAccessKey, cfg.StorageSecretKey,
			cfg.StorageBucket, cfg.StoragePublicURL, cfg.StorageUploadTimeout)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize object storage")
		}
		v1.NewUploadHandler(objectStorage, cfg.MaxUploadSizeMB).RegisterRoutes(mux)
	} else {
		logger.Warn().Msg("object storage not configured, image uploads disabled")
	}

	// Middleware chain, outermost first
	rateLimiter := middleware.NewRateLimiter(20, 40)
	var handler http.Handler = mux
	handler = gziphandler.GzipHandler(handler)
	handler = rateLimiter.Middleware(handler)
	handler = middleware.RequestLogger(handler)
	handler = middleware.CORS(cfg.AllowedOrigin)(handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("server stopped")
}
