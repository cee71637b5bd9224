// Package router wires the booking API's HTTP routes.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rahulp0817/doctor-appointment-booking/internal/http/handlers"
	httpmiddleware "github.com/rahulp0817/doctor-appointment-booking/internal/http/middleware"
	"github.com/rahulp0817/doctor-appointment-booking/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	SlotsHandler       *handlers.SlotsHandler
	BookingHandler     *handlers.BookingHandler
	EventTypesHandler  *handlers.EventTypesHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", handlers.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.SlotsHandler != nil {
			api.Post("/slots", cfg.SlotsHandler.GetSlots)
			api.Post("/slots/offline", cfg.SlotsHandler.OfflineSlots)
		}
		if cfg.BookingHandler != nil {
			api.Post("/book", cfg.BookingHandler.CreateBooking)
		}
		if cfg.EventTypesHandler != nil {
			api.Get("/event-types", cfg.EventTypesHandler.ListEventTypes)
			api.Get("/availability-schedules", cfg.EventTypesHandler.AvailabilitySchedules)
			api.Get("/appointment-types", cfg.EventTypesHandler.AppointmentTypes)
		}
	})

	return r
}
