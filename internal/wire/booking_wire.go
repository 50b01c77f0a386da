package wire

import (
	"event-ticketing/internal/adaptor"
	"event-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - Customer checkout (starts pending)
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings - Filtered, paginated listing
		r.Get("/", bookingHandler.ListBookings)

		// GET /api/bookings/{id} - Full booking detail
		r.Get("/{id}", bookingHandler.GetBookingByID)

		// PATCH /api/bookings/{id}/status - Status state machine transition
		r.Patch("/{id}/status", bookingHandler.UpdateStatus)

		// POST /api/bookings/{id}/cancel - Cancel and release seats
		r.Post("/{id}/cancel", bookingHandler.CancelBooking)

		// PATCH /api/bookings/{id}/used-quantity - Check-in tracking
		r.Patch("/{id}/used-quantity", bookingHandler.UpdateUsedQuantity)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.RequireActor(log))

		// POST /api/admin/bookings - Admin checkout (starts confirmed)
		r.Post("/", bookingHandler.CreateAdminBooking)
	})
}
