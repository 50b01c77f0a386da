package wire

import (
	"event-ticketing/internal/adaptor"
	"event-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePreReserve(r chi.Router, preReserveHandler *adaptor.PreReserveHandler, log *zap.Logger) {
	// POST /api/bookings/pre-reserve - Bulk placeholder creation (admin)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor(log))
		r.Post("/api/bookings/pre-reserve", preReserveHandler.PreReserve)
	})

	// POST /api/bookings/{id}/assign - Bind one placeholder to an identity
	r.Post("/api/bookings/{id}/assign", preReserveHandler.Assign)

	// POST /api/bookings/assign-bulk - Best-effort batch assignment
	r.Post("/api/bookings/assign-bulk", preReserveHandler.AssignBulk)

	// POST /api/admin/guests/cleanup - Remove orphaned guest accounts
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor(log))
		r.Post("/api/admin/guests/cleanup", preReserveHandler.CleanupGuests)
	})
}
