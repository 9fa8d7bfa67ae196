package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/keechi-app/keechi-api/internal/cache"
	"github.com/keechi-app/keechi-api/internal/config"
	dbpkg "github.com/keechi-app/keechi-api/internal/db"
	"github.com/keechi-app/keechi-api/internal/logger"
	"github.com/keechi-app/keechi-api/internal/middleware"
	"github.com/keechi-app/keechi-api/internal/routes"
	"github.com/keechi-app/keechi-api/internal/storage"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Env)
	defer logger.L().Sync()

	db := dbpkg.NewDB(cfg)

	var availabilityCache *cache.AvailabilityCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		availabilityCache = cache.NewAvailabilityCache(rdb)
	}

	images, err := storage.NewImageStore(cfg)
	if err != nil {
		logger.L().Fatal("image store init failed", zap.Error(err))
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/uploads", cfg.UploadDir)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, availabilityCache, images)

	logger.L().Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.L().Fatal("server failed", zap.Error(err))
	}
}
