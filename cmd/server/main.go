package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/connecthub/adapters/event"
	httpAdapter "github.com/khoahotran/connecthub/adapters/http"
	"github.com/khoahotran/connecthub/adapters/persistence"
	searchUC "github.com/khoahotran/connecthub/internal/application/usecase/search"
	"github.com/khoahotran/connecthub/internal/config"
	"github.com/khoahotran/connecthub/pkg/auth"
	"github.com/khoahotran/connecthub/pkg/logger"
	"github.com/khoahotran/connecthub/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting ConnectHub search API...")

	// Tracing
	tp, err := tracing.NewTracerProvider(cfg, appLogger, "connecthub-api")
	if err != nil {
		appLogger.Warn("Tracer init failed, continue without tracing")
	} else {
		defer tp.Shutdown(context.Background())
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	searchRepo := persistence.NewPostgresSearchRepo(dbPool, appLogger)
	enrichRepo := persistence.NewPostgresEnrichRepo(dbPool, appLogger)
	trendingStore := persistence.NewRedisTrendingStore(redisClient)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	userSearchUseCase := searchUC.NewUserSearchUseCase(searchRepo, enrichRepo, kafkaClient, appLogger)
	postSearchUseCase := searchUC.NewPostSearchUseCase(searchRepo, enrichRepo, kafkaClient, appLogger)
	globalSearchUseCase := searchUC.NewGlobalSearchUseCase(userSearchUseCase, postSearchUseCase, kafkaClient, appLogger, cfg.Search.PreviewSize)
	trendingUseCase := searchUC.NewTrendingUseCase(trendingStore, appLogger, cfg.Search.TrendingSize)

	// HTTP Handlers
	searchHandler := httpAdapter.NewSearchHandler(
		globalSearchUseCase,
		userSearchUseCase,
		postSearchUseCase,
		trendingUseCase,
		appLogger,
	)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	// Setup Gin router
	router := gin.Default()
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		searchGroup := api.Group("/search")
		searchGroup.Use(authMiddleware)
		{
			searchGroup.GET("", searchHandler.GlobalSearch)
			searchGroup.GET("/users", searchHandler.UserSearch)
			searchGroup.GET("/posts", searchHandler.PostSearch)
			searchGroup.GET("/trending", searchHandler.Trending)
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
