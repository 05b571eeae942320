package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hydroassist/go-hydro-chatbot/internal/actions"
	"github.com/hydroassist/go-hydro-chatbot/internal/api"
	"github.com/hydroassist/go-hydro-chatbot/internal/config"
	"github.com/hydroassist/go-hydro-chatbot/internal/emergencyapi"
	"github.com/hydroassist/go-hydro-chatbot/internal/logging"
	"github.com/hydroassist/go-hydro-chatbot/internal/nlu"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Server.Debug)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port,
		"emergency_api", cfg.EmergencyAPI.BaseURL)

	gateway := emergencyapi.NewClient(cfg.EmergencyAPI.BaseURL, cfg.EmergencyAPI.Timeout)
	extractor := nlu.NewExtractor(cfg.Geo.Region, cfg.Geo.DefaultCoordinate)
	acts := actions.New(gateway, extractor)

	// Gin router
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RequestIDMiddleware())
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimitRPS))

	handler := api.NewHandler(acts)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
