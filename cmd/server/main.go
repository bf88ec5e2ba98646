package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/RestartDK/selene/internal/admin"
	"github.com/RestartDK/selene/internal/agent"
	"github.com/RestartDK/selene/internal/api"
	"github.com/RestartDK/selene/internal/config"
	"github.com/RestartDK/selene/internal/middleware"
	"github.com/RestartDK/selene/internal/seed"
	"github.com/RestartDK/selene/internal/service"
	"github.com/RestartDK/selene/internal/store"
)

func main() {
	// A missing .env is fine; env vars win either way.
	_ = godotenv.Load()

	cfg := config.Load()

	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)

	gin.SetMode(cfg.GinMode)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		log.WithError(err).Fatal("failed to create db directory")
	}

	bboltStore, err := store.NewBBoltStore(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open bbolt store")
	}
	defer bboltStore.Close()

	if err := seed.LoadFromFile(context.Background(), cfg.SeedFile, bboltStore); err != nil {
		log.WithError(err).Fatal("failed to seed data")
	}

	entityStore := store.NewCachedStore(bboltStore, cfg.CacheTTL)

	feedService := service.NewFeedService(entityStore)
	socialService := service.NewSocialService(entityStore)
	inviteService := service.NewInviteService(entityStore)
	bookingService := service.NewBookingService(entityStore)
	concierge := agent.NewConcierge(entityStore, bookingService, inviteService)

	swagger, err := api.GetSwagger()
	if err != nil {
		log.WithError(err).Fatal("failed to load embedded openapi spec")
	}

	validator, err := middleware.NewOpenAPIValidator(swagger)
	if err != nil {
		log.WithError(err).Fatal("failed to create openapi validator")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))
	r.Use(validator)

	handler := api.NewHandler(cfg.CurrentUserID, feedService, socialService, inviteService, bookingService, concierge)
	api.RegisterHandlers(r, handler)

	srv := &http.Server{
		Handler: r,
		Addr:    net.JoinHostPort("0.0.0.0", cfg.Port),
	}

	adminRouter := gin.New()
	adminRouter.Use(gin.Recovery())

	adminHandler := admin.NewHandler(entityStore)
	admin.RegisterHandlers(adminRouter, adminHandler)

	adminSrv := &http.Server{
		Handler: adminRouter,
		Addr:    net.JoinHostPort("0.0.0.0", cfg.AdminPort),
	}

	go func() {
		log.WithFields(log.Fields{
			"addr":         srv.Addr,
			"current_user": cfg.CurrentUserID,
		}).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	go func() {
		log.WithField("addr", adminSrv.Addr).Info("starting admin server")
		if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("admin server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.WithField("signal", fmt.Sprintf("%v", sig)).Info("shutting down servers")

	if err := srv.Close(); err != nil {
		log.WithError(err).Error("server close error")
	}
	if err := adminSrv.Close(); err != nil {
		log.WithError(err).Error("admin server close error")
	}
}
