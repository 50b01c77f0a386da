package wire

import (
	"event-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSeat(r chi.Router, seatHandler *adaptor.SeatHandler) {
	// POST /api/seats/check-availability - Advisory availability check
	r.Post("/api/seats/check-availability", seatHandler.CheckAvailability)
}
