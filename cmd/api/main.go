package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/toshihome/homestay-bookings/internal/cache"
	"github.com/toshihome/homestay-bookings/internal/http/handlers"
	"github.com/toshihome/homestay-bookings/internal/mailer"
	"github.com/toshihome/homestay-bookings/internal/storage"
	"github.com/toshihome/homestay-bookings/pkg/config"
	"github.com/toshihome/homestay-bookings/pkg/events"
	"github.com/toshihome/homestay-bookings/pkg/logger"
	mw "github.com/toshihome/homestay-bookings/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, relying on environment variables")
	}
	cfg := config.Load()

	ctx := context.Background()

	// The store connects once at startup. A failed connect leaves the
	// process running with an unavailable store so the diagnostic
	// endpoints still answer.
	store, err := storage.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Warn("Store unavailable at startup", "error", err)
	}
	defer store.Close(ctx)

	featured, err := cache.NewFeatured(cfg.Redis.URL, cfg.Redis.FeaturedTTL)
	if err != nil {
		logger.Warn("Featured cache disabled", "error", err)
	}
	defer featured.Close()

	var bus events.Publisher = events.NoopBus{}
	if cfg.NATS.URL != "" {
		natsBus, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			logger.Warn("Event bus disabled", "error", err)
		} else {
			bus = natsBus
		}
	}
	defer bus.Close()

	var mail mailer.Service = mailer.NewDevMailer()
	if !cfg.Email.DevMode {
		mail = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("homestay-bookings"))
	r.Use(mw.Logging)
	r.Use(mw.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.Health)

	handlers.NewSystemHandler(store, cfg.Mongo.URL != "").Register(r)
	r.Mount("/api/homestays", handlers.NewHomestaysHandler(store, featured, bus).Routes())
	r.Mount("/api/bookings", handlers.NewBookingsHandler(store, bus, mail).Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down homestay-bookings service...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}()

	logger.Info("Starting homestay-bookings service", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
