package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Sa-pphire/contactcard/internal/config"
	"github.com/Sa-pphire/contactcard/internal/database"
	"github.com/Sa-pphire/contactcard/internal/domain/card"
	"github.com/Sa-pphire/contactcard/internal/middleware"
	"github.com/Sa-pphire/contactcard/internal/pkg/logger"
	"github.com/Sa-pphire/contactcard/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		stdlog.Fatal(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", "error", err)
	}
	if err := db.AutoMigrate(&card.Card{}); err != nil {
		log.Fatal("database migration failed", "error", err)
	}

	blobs, err := storage.FromConfig(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("blob store setup failed", "error", err)
	}

	cardRepo := card.NewRepository(db)
	cardService := card.NewService(cardRepo, blobs, log, cfg.CodeImageSize)
	cardHandler := card.NewHandler(cardService, cfg.PublicBaseURL)

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS())
	r.LoadHTMLGlob("web/templates/*.html")

	if cfg.StorageDriver == storage.DriverFilesystem {
		r.Static(cfg.StaticURLBase, cfg.LocalStoragePath)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	card.RegisterRoutes(r, cardHandler)

	log.Info("server starting", "port", cfg.Port, "storage", cfg.StorageDriver, "env", cfg.AppEnv)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
