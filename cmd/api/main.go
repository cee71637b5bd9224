package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/rahulp0817/doctor-appointment-booking/internal/api/router"
	"github.com/rahulp0817/doctor-appointment-booking/internal/availability"
	"github.com/rahulp0817/doctor-appointment-booking/internal/booking"
	"github.com/rahulp0817/doctor-appointment-booking/internal/calendly"
	appconfig "github.com/rahulp0817/doctor-appointment-booking/internal/config"
	"github.com/rahulp0817/doctor-appointment-booking/internal/http/handlers"
	"github.com/rahulp0817/doctor-appointment-booking/internal/observability/metrics"
	"github.com/rahulp0817/doctor-appointment-booking/internal/schedule"
	"github.com/rahulp0817/doctor-appointment-booking/pkg/logging"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting doctor-appointment-booking API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.CalendlyAccessToken == "" {
		logger.Warn("CALENDLY_ACCESS_TOKEN is not set; provider calls will fail and slot lookups will degrade to empty")
	}

	// Metrics register against the default registerer so promhttp picks
	// up process and Go runtime collectors alongside our own.
	bookingMetrics := metrics.NewBookingMetrics(nil)

	// Provider client
	clientOpts := []calendly.Option{
		calendly.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	}
	if cfg.CalendlyBaseURL != "" {
		clientOpts = append(clientOpts, calendly.WithBaseURL(cfg.CalendlyBaseURL))
	}
	client := calendly.NewClient(cfg.CalendlyAccessToken, logger, clientOpts...)

	// Optional availability cache
	resolverOpts := []availability.Option{
		availability.WithMetrics(bookingMetrics),
		availability.WithDefaultTimezone(cfg.DefaultTimezone),
	}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unreachable, availability cache disabled", "error", err)
		} else {
			cache := availability.NewCache(redisClient, cfg.AvailabilityCacheTTL, logger)
			resolverOpts = append(resolverOpts, availability.WithCache(cache))
			logger.Info("availability cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.AvailabilityCacheTTL)
		}
	}

	// Initialize services
	resolver := availability.NewResolver(client, logger, resolverOpts...)
	submitter := booking.NewSubmitter(client, logger, booking.WithMetrics(bookingMetrics))

	// Initialize handlers
	slotsHandler := handlers.NewSlotsHandler(resolver, logger,
		handlers.WithDefaultTimezone(cfg.DefaultTimezone),
		handlers.WithWorkingHours(schedule.WorkingHours{
			Start: cfg.WorkingHoursStart,
			End:   cfg.WorkingHoursEnd,
		}),
	)
	bookingHandler := handlers.NewBookingHandler(submitter, logger)
	eventTypesHandler := handlers.NewEventTypesHandler(client, cfg.CalendlyUserURI, logger)

	// Setup router
	routerCfg := &router.Config{
		Logger:             logger,
		SlotsHandler:       slotsHandler,
		BookingHandler:     bookingHandler,
		EventTypesHandler:  eventTypesHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
