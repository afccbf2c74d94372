package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saasify-labs/commerce-api/internal/api/handlers"
	"github.com/saasify-labs/commerce-api/internal/api/middleware"
	"github.com/saasify-labs/commerce-api/internal/cache"
	"github.com/saasify-labs/commerce-api/internal/config"
	"github.com/saasify-labs/commerce-api/internal/health"
	"github.com/saasify-labs/commerce-api/internal/metrics"
	repository "github.com/saasify-labs/commerce-api/internal/repositories"
	service "github.com/saasify-labs/commerce-api/internal/services"
	"github.com/saasify-labs/commerce-api/internal/store"
	"github.com/saasify-labs/commerce-api/internal/utils"
	"github.com/saasify-labs/commerce-api/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Document store setup
	startupCtx, startupCancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
	defer startupCancel()

	st, err := store.New(startupCtx, cfg)
	if err != nil {
		slog.Error("Error accessing the document store", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := st.Close(shutdownCtx); err != nil {
			slog.Error("Error closing store connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Store connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	repos := repository.New(st)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	var emailClient sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailClient = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	// one lock space for cart mutations and checkout
	userLocks := utils.NewKeyedMutex()

	userService := service.NewUserService(repos.User, rateLimitRepo, &cfg.Security)
	userHandler := handlers.NewUserHandler(userService)
	catalogService := service.NewCatalogService(repos.Product, productCache)
	productHandler := handlers.NewProductHandler(catalogService)
	cartService := service.NewCartService(repos.Cart, repos.Product, userLocks)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutService := service.NewCheckoutService(repos.Order, repos.Cart, repos.Product, repos.User, emailClient, userLocks)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderService := service.NewOrderService(repos.Order)
	orderHandler := handlers.NewOrderHandler(orderService)
	statusHandler := handlers.NewStatusHandler(st)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("Store initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /{$}", statusHandler.Root())
	routerMux.HandleFunc("GET /test", statusHandler.Test())
	routerMux.Handle("GET /healthz", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.HandleFunc("POST /auth/signup", userHandler.Signup())
	routerMux.HandleFunc("POST /auth/signin", userHandler.Signin())
	routerMux.HandleFunc("GET /auth/me", authMiddleware.Authenticate(userHandler.Me()))
	routerMux.HandleFunc("POST /products", productHandler.CreateProduct())
	routerMux.HandleFunc("GET /products", productHandler.ListProducts())
	routerMux.HandleFunc("POST /cart/add", cartHandler.AddItem())
	routerMux.HandleFunc("GET /cart/{user_id}", cartHandler.GetCart())
	routerMux.HandleFunc("POST /checkout", checkoutHandler.Checkout())
	routerMux.HandleFunc("GET /orders/{user_id}", orderHandler.ListOrders())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "commerce-api")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}
}
