package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/astraautomax/automax-backend/config"
	"github.com/astraautomax/automax-backend/database"
	"github.com/astraautomax/automax-backend/handlers"
	"github.com/astraautomax/automax-backend/logger"
	"github.com/astraautomax/automax-backend/middleware"
	"github.com/astraautomax/automax-backend/services"
)

// @title Automax Catalog API
// @version 1.0
// @description Product catalog, contact-form intake and admin login, backed by MongoDB.
// @BasePath /api
func main() {
	// A missing .env file is fine; production sets real environment variables.
	if err := godotenv.Load(); err != nil {
		log.Printf("Info: no .env file loaded (%v), relying on system environment variables", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	flush, err := logger.Init(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer flush()

	if cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Connect(ctx, database.Options{
		URI:              cfg.MongoURI,
		Database:         cfg.MongoDatabase,
		PartNumberUnique: cfg.PartNumberUnique,
	})
	if err != nil {
		zap.L().Fatal("failed to connect to mongodb", zap.Error(err))
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: buildRouter(cfg, store),
	}

	go func() {
		zap.L().Info("server listening",
			zap.String("addr", server.Addr),
			zap.String("cors", cfg.CORSMode),
			zap.String("images", cfg.ImageStorage),
			zap.Bool("auth", cfg.AuthEnabled),
			zap.Bool("authRequired", cfg.AuthRequired))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("graceful shutdown failed", zap.Error(err))
	}
	if err := store.Disconnect(shutdownCtx); err != nil {
		zap.L().Error("failed to disconnect mongodb", zap.Error(err))
	}
}

func buildRouter(cfg *config.Config, store *database.Store) *gin.Engine {
	deps := handlers.Deps{
		Products: store,
		Contacts: store,
		Health:   store,
		Images:   services.InlineStorage{},
	}
	if cfg.ImageStorage == config.ImageCloud {
		deps.Images = services.CloudStorage{Host: services.NewCloudinary(services.CloudinaryConfig{
			BaseURL:   cfg.CloudinaryAPI,
			CloudName: cfg.CloudinaryCloud,
			APIKey:    cfg.CloudinaryKey,
			APISecret: cfg.CloudinarySecret,
			Folder:    cfg.CloudinaryFolder,
		})}
	}

	routerCfg := handlers.RouterConfig{
		Origins:   middleware.NewOriginPolicy(cfg.AllowedOrigins),
		BodyLimit: cfg.BodyLimit,
	}
	if cfg.CORSMode == config.CORSOpen {
		routerCfg.Origins = middleware.AllowAllOrigins()
	}
	if cfg.RateLimitRPS > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.AuthEnabled {
		auth := services.NewAuthenticator(store, cfg.JWTSecret)
		deps.Auth = auth
		if cfg.AuthRequired {
			routerCfg.RequireAuth = middleware.RequireToken(auth)
		}
	}

	return handlers.NewRouter(handlers.New(deps), routerCfg)
}
