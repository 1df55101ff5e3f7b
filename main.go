package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"checkin-backend/config"
	"checkin-backend/handlers"
	"checkin-backend/models"
	"checkin-backend/store"
)

func connectToDatabase(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// selectStore picks the storage backend: Postgres when DATABASE_URL is set,
// the in-memory store otherwise.
func selectStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Info("no DATABASE_URL configured, using in-memory store")
		return store.NewMemory(), func() {}, nil
	}

	pool, err := connectToDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	pg := store.NewPostgres(pool)
	if err := pg.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	logger.Info("connected to database")
	return pg, pool.Close, nil
}

func main() {
	// A missing .env is fine; everything has environment defaults.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	ctx := context.Background()
	st, closeStore, err := selectStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("unable to set up storage", zap.Error(err))
	}
	defer closeStore()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := models.RegisterValidators(v); err != nil {
			logger.Fatal("unable to register validators", zap.Error(err))
		}
	}

	eventHandler := handlers.NewEventHandler(st, logger)
	checkinHandler := handlers.NewCheckinHandler(st, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handlers.SecurityHeaders())
	router.Use(handlers.RequestLogger(logger))
	router.Use(handlers.RateLimiter(cfg.RateLimit, cfg.RateWindow))

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	{
		api.POST("/events", eventHandler.CreateEvent)
		api.GET("/events", eventHandler.GetEvents)
		api.GET("/events/by-name/:name", eventHandler.GetEventByName)
		api.GET("/events/:id", eventHandler.GetEvent)
		api.PATCH("/events/:id", eventHandler.UpdateEvent)
		api.PATCH("/events/:id/archive", eventHandler.UpdateArchiveStatus)
		api.DELETE("/events/:id", eventHandler.DeleteEvent)
		api.POST("/events/:id/verify-admin", eventHandler.VerifyAdmin)
		api.GET("/events/:id/qr", eventHandler.QRCode)

		api.POST("/checkins", checkinHandler.CreateCheckin)
		api.GET("/events/:id/checkins", checkinHandler.GetCheckinsByEvent)
		api.GET("/events/:id/export", checkinHandler.ExportCheckins)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
