package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"hotel-reservation/config"
	"hotel-reservation/controllers"
	"hotel-reservation/routes"
	"hotel-reservation/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		logrus.Info(".env not found; continuing with environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	config.SetupLogger(cfg)
	gin.SetMode(cfg.GinMode)

	db, err := config.ConnectDatabase(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("database connect failed")
	}

	clk := clockwork.NewRealClock()
	if cfg.SeedDemoData {
		if err := config.SeedDatabase(db, clk); err != nil {
			logrus.WithError(err).Fatal("seeding failed")
		}
	}
	if cfg.APIKeyHash == "" {
		logrus.Warn("API_KEY_HASH not set; write routes are unprotected")
	}

	roomService := services.NewRoomService(db, clk)
	guestService := services.NewGuestService(db, clk)
	reservationService := services.NewReservationService(db, clk, cfg.Location)

	router := routes.SetupRouter(
		controllers.NewRoomController(roomService),
		controllers.NewGuestController(guestService),
		controllers.NewReservationController(reservationService),
		routes.Options{CORSOrigins: cfg.CORSOrigins, APIKeyHash: cfg.APIKeyHash},
	)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.WithField("addr", addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logrus.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logrus.Info("server stopped gracefully")
}
