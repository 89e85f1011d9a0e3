package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pirate444/food-order-app/cache"
	"github.com/pirate444/food-order-app/config"
	"github.com/pirate444/food-order-app/controllers"
	"github.com/pirate444/food-order-app/database"
	"github.com/pirate444/food-order-app/events"
	"github.com/pirate444/food-order-app/logger"
	"github.com/pirate444/food-order-app/middleware"
	"github.com/pirate444/food-order-app/routes"
	"github.com/pirate444/food-order-app/seed"
	"github.com/pirate444/food-order-app/services"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.AppEnv)
	log := logger.Log
	defer log.Sync()

	// --- MongoDB ---
	// A failed ping degrades the process to best-effort mode instead of
	// refusing to start; requests fail with 500 until the store comes back.
	client, db, err := database.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Warn("MongoDB not reachable, continuing in degraded mode", zap.Error(err))
	} else {
		log.Info("Connected to MongoDB", zap.String("database", cfg.MongoDB))
	}
	if client != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = database.Disconnect(shutdownCtx, client)
		}()
	}
	if db == nil {
		log.Fatal("MongoDB client could not be constructed", zap.Error(err))
	}

	// --- Redis catalog cache (optional) ---
	var foodCache *cache.FoodCache
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Warn("Redis not reachable, catalog cache disabled", zap.Error(err))
		} else {
			foodCache = cache.NewFoodCache(redisClient, cfg.CacheTTL)
			log.Info("Connected to Redis")
		}
	}

	// --- Kafka order events (optional) ---
	var publisher events.OrderPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		publisher = producer
		log.Info("Order event producer enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	}

	// --- Service wiring ---
	foodRepo := database.NewFoodRepository(db)
	cartRepo := database.NewCartRepository(db)
	orderRepo := database.NewOrderRepository(db)

	foodService := services.NewFoodService(foodRepo, foodCache)
	cartService := services.NewCartService(cartRepo, foodRepo)
	orderService := services.NewOrderService(orderRepo, foodRepo, publisher)

	foodController := controllers.NewFoodController(foodService)
	cartController := controllers.NewCartController(cartService)
	orderController := controllers.NewOrderController(orderService)

	if cfg.SeedOnStart {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := seed.Run(seedCtx, foodRepo, log); err != nil {
			log.Warn("Catalog seeding failed", zap.Error(err))
		}
		cancel()
	}

	// --- HTTP router ---
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())

	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.Register(r, cfg, foodController, cartController, orderController)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	go func() {
		log.Info("Food order API starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server stopped gracefully")
}
