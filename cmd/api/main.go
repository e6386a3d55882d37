package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/geniusdatahub/gdh_api/internal/cache"
	"github.com/geniusdatahub/gdh_api/internal/config"
	"github.com/geniusdatahub/gdh_api/internal/database"
	"github.com/geniusdatahub/gdh_api/internal/handler"
	"github.com/geniusdatahub/gdh_api/internal/middleware"
	"github.com/geniusdatahub/gdh_api/internal/purchase"
	"github.com/geniusdatahub/gdh_api/internal/repository"
	"github.com/geniusdatahub/gdh_api/internal/service"
	"github.com/geniusdatahub/gdh_api/internal/storage"
	"github.com/geniusdatahub/gdh_api/internal/utils"
	"github.com/geniusdatahub/gdh_api/internal/worker"
	"github.com/geniusdatahub/gdh_api/pkg/paystack"
	"github.com/geniusdatahub/gdh_api/pkg/supplier"
)

// main is the application entrypoint for the GeniusDataHub storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("storage", cfg.Storage.Driver).Msg("starting gdh api")

	// 3. Wire the backing store for orders, agents, and AFA registrations
	var orderStore repository.OrderStore
	var agentStore repository.AgentStore
	var afaStore repository.AfaStore

	switch cfg.Storage.Driver {
	case "postgres":
		db, err := database.Connect(&cfg.DB)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := runMigrations(db.DB); err != nil {
			log.Error().Err(err).Msg("migration failed")
			fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
			os.Exit(1)
		}
		log.Info().Msg("migrations completed successfully")

		orderStore = repository.NewOrderPGRepository(db)
		agentStore = repository.NewAgentPGRepository(db)
		afaStore = repository.NewAfaPGRepository(db)
	default:
		// Flat JSON array files, lazily created, one single-writer store each.
		orderStore = repository.NewOrderFileRepository(storage.NewFile(filepath.Join(cfg.Storage.DataDir, "orders.json")))
		agentStore = repository.NewAgentFileRepository(storage.NewFile(filepath.Join(cfg.Storage.DataDir, "agents.json")))
		afaStore = repository.NewAfaFileRepository(storage.NewFile(filepath.Join(cfg.Storage.DataDir, "afa-registrations.json")))
	}

	// 3a. Optional Redis catalog cache
	var catalogCache *cache.CatalogCache
	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis connection failed - catalog cache disabled")
		} else {
			defer redisClient.Close()
			catalogCache = cache.NewCatalogCache(redisClient, cfg.Redis.CacheTTL)
			log.Info().Msg("redis catalog cache enabled")
		}
	}

	// 4. Provider clients
	var paystackClient *paystack.Client
	if cfg.Paystack.SecretKey != "" {
		paystackClient = paystack.NewClient(cfg.Paystack.SecretKey)
		log.Info().Msg("Paystack client initialized")
	} else {
		log.Warn().Msg("PAYSTACK_SECRET_KEY not set - payment step will report not ready")
	}
	supplierClient := supplier.NewClient(cfg.Supplier.URL, cfg.Supplier.APIKey)
	if !supplierClient.Configured() {
		log.Info().Msg("Supplier API not configured - orders will be recorded without fulfillment")
	}

	// 5. Repositories and services
	bundleRepo := repository.NewBundleRepository(cfg.Storage.CatalogPath)
	catalogSvc := service.NewCatalogService(bundleRepo, catalogCache)
	orderSvc := service.NewOrderService(orderStore, supplierClient)
	afaSvc := service.NewAfaService(afaStore)
	agentSvc := service.NewAgentService(agentStore, cfg.Agent.FeeAmount)

	flows := purchase.NewManager(cfg.Worker.FlowSessionTTL)
	purchaseSvc := service.NewPurchaseService(flows, catalogSvc, orderSvc, paystackClient, cfg.Paystack.StoreEmail)

	utils.SetJWTSecret(cfg.Admin.JWTSecret)
	adminAuthSvc := service.NewAdminAuthService(cfg.Admin.Email, cfg.Admin.PasswordHash)

	// 6. Handlers
	handlers := &Handlers{
		Health:   handler.NewHealthHandler(catalogSvc),
		Catalog:  handler.NewCatalogHandler(catalogSvc),
		Order:    handler.NewOrderHandler(orderSvc),
		Afa:      handler.NewAfaHandler(afaSvc),
		Agent:    handler.NewAgentHandler(agentSvc),
		Purchase: handler.NewPurchaseHandler(purchaseSvc),
		Auth:     handler.NewAuthHandler(adminAuthSvc),
		Admin:    handler.NewAdminHandler(orderSvc, agentSvc, afaSvc),
	}
	if cfg.Paystack.SecretKey != "" {
		handlers.Webhook = handler.NewWebhookHandler(orderSvc, cfg.Paystack.SecretKey)
	}

	// 7. Middleware and router
	jwtMw := middleware.NewJWTMiddleware()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw, adminAuthSvc.Enabled())

	// 8. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 9. Start workers
	go worker.NewFlowSweeper(flows, cfg.Worker.FlowSweepInterval).Start(ctx)
	if paystackClient != nil {
		go worker.NewReconcileWorker(orderSvc, paystackClient, cfg.Worker.ReconcileInterval, cfg.Worker.ReconcileWindow).Start(ctx)
	}

	// 10. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 12. Cancel context to stop workers
	cancel()

	// 13. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health   *handler.HealthHandler
	Catalog  *handler.CatalogHandler
	Order    *handler.OrderHandler
	Afa      *handler.AfaHandler
	Agent    *handler.AgentHandler
	Purchase *handler.PurchaseHandler
	Webhook  *handler.WebhookHandler
	Auth     *handler.AuthHandler
	Admin    *handler.AdminHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware, adminEnabled bool) {
	// Public storefront endpoints (bare wire shapes)
	router.GET("/bundles", handlers.Catalog.GetBundles)
	router.GET("/categories", handlers.Catalog.GetCategories)
	router.POST("/orders", handlers.Order.CreateOrder)
	router.GET("/afa", handlers.Afa.GetStatus)
	router.POST("/afa", handlers.Afa.Register)
	router.POST("/agents", handlers.Agent.Register)

	// Payment provider webhook
	if handlers.Webhook != nil {
		router.POST("/webhook/paystack", handlers.Webhook.HandlePaystackEvent)
	}

	router.GET("/v1/health", handlers.Health.GetHealth)

	// Purchase wizard
	flow := router.Group("/v1/purchase")
	{
		flow.POST("", handlers.Purchase.Open)
		flow.GET("/:id", handlers.Purchase.Get)
		flow.PUT("/:id/recipient", handlers.Purchase.SetRecipient)
		flow.POST("/:id/confirm", handlers.Purchase.Confirm)
		flow.POST("/:id/back", handlers.Purchase.Back)
		flow.POST("/:id/pay", handlers.Purchase.Pay)
		flow.POST("/:id/complete", handlers.Purchase.Complete)
		flow.DELETE("/:id", handlers.Purchase.Cancel)
	}

	// Admin routes
	if adminEnabled {
		admin := router.Group("/v1/admin")
		admin.POST("/auth/login", handlers.Auth.Login)
		admin.Use(jwtMiddleware.Handle())
		{
			admin.GET("/orders", handlers.Admin.ListOrders)
			admin.GET("/agents", handlers.Admin.ListAgents)
			admin.GET("/afa-registrations", handlers.Admin.ListAfaRegistrations)
			admin.GET("/stats", handlers.Admin.GetStats)
		}
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
