package wire

import (
	"event-ticketing/internal/adaptor"
	"event-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireEvent(r chi.Router, eventHandler *adaptor.EventHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/events", eventHandler.ListEvents)
	r.Get("/api/events/{idOrSlug}", eventHandler.GetEvent)
	r.Get("/api/events/{idOrSlug}/schedules", eventHandler.ListSchedules)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireActor(log))

		r.Post("/events", eventHandler.CreateEvent)
		r.Post("/schedules", eventHandler.CreateSchedule)
		r.Put("/zone-pricing", eventHandler.UpsertZonePricing)
	})
}
