package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/directoriodominicano/backend/internal/adapters/cache"
	"github.com/directoriodominicano/backend/internal/adapters/database"
	"github.com/directoriodominicano/backend/internal/adapters/events"
	"github.com/directoriodominicano/backend/internal/adapters/payments"
	"github.com/directoriodominicano/backend/internal/adapters/search"
	"github.com/directoriodominicano/backend/internal/api/handlers"
	"github.com/directoriodominicano/backend/internal/api/middleware"
	"github.com/directoriodominicano/backend/internal/api/routes"
	"github.com/directoriodominicano/backend/internal/application/services"
	"github.com/directoriodominicano/backend/internal/domain/providers"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
	"github.com/directoriodominicano/backend/internal/infrastructure/clients/postgres"
	"github.com/directoriodominicano/backend/internal/infrastructure/clients/redis"
	"github.com/directoriodominicano/backend/internal/infrastructure/clients/typesense"
	"github.com/directoriodominicano/backend/internal/infrastructure/observability"
	"github.com/directoriodominicano/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client. The primary store is the only hard
	// dependency; everything else degrades.
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
		typesenseClient = nil
	} else {
		log.Println("Typesense client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for cache invalidation fan-out
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize adapters

	baseBusinessAdapter := database.NewBusinessAdapter(pgClient)

	// Wrap with caching if Redis is available
	var businessAdapter repositories.BusinessRepository
	if cacheProvider != nil {
		businessAdapter = database.NewCachedBusinessAdapter(baseBusinessAdapter, cacheProvider)
		log.Println("Business adapter wrapped with caching layer")
	} else {
		businessAdapter = baseBusinessAdapter
		log.Println("Business adapter running without cache (Redis unavailable)")
	}

	userAdapter := database.NewUserAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)
	subscriptionAdapter := database.NewSubscriptionAdapter(pgClient)

	var searchRepo repositories.BusinessSearchRepository
	if typesenseClient != nil {
		if err := typesenseClient.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}
		searchRepo = search.NewTypesenseAdapter(typesenseClient)
	}

	var paymentProvider providers.PaymentProvider
	if cfg.PayPal.Configured() {
		paymentProvider = payments.NewPayPalAdapter(&cfg.PayPal)
		log.Println("PayPal subscription verification enabled")
	} else {
		log.Println("Warning: PayPal credentials not set; premium activation disabled")
	}

	// Initialize services

	directoryService := services.NewDirectoryService(businessAdapter, searchRepo, metrics, cfg.Directory.PageSize)
	businessService := services.NewBusinessService(businessAdapter, searchRepo, eventBus)
	moderationService := services.NewModerationService(businessAdapter, searchRepo, eventBus)
	authService := services.NewAuthService(userAdapter, &cfg.Auth)
	reviewService := services.NewReviewService(reviewAdapter, businessAdapter, searchRepo)
	subscriptionService := services.NewSubscriptionService(subscriptionAdapter, paymentProvider, eventBus, cfg.PayPal.PlanID)

	// Initialize cache invalidation service
	var cacheInvalidationService *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidationService.Start(); err != nil {
			log.Printf("Warning: Failed to start cache invalidation service: %v", err)
		} else {
			log.Println("Cache invalidation service started successfully")
		}
	}

	// Initialize handlers

	directoryHandler := handlers.NewDirectoryHandler(directoryService, businessService, cfg.Directory.DefaultCity)
	businessHandler := handlers.NewBusinessHandler(businessService)
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(moderationService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	referenceHandler := handlers.NewReferenceHandler()

	authMiddleware := middleware.NewAuthMiddleware(authService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		directoryHandler,
		businessHandler,
		authHandler,
		adminHandler,
		reviewHandler,
		subscriptionHandler,
		referenceHandler,
		authMiddleware,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	if cacheInvalidationService != nil {
		cacheInvalidationService.Stop()
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
