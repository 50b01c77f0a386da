package adaptor

import (
	"event-ticketing/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Event          *EventHandler
	Seat           *SeatHandler
	Booking        *BookingHandler
	PreReserve     *PreReserveHandler
	ScheduleWorker *ScheduleWorkerHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Event:          NewEventHandler(service.Event, log),
		Seat:           NewSeatHandler(service.Seat, log),
		Booking:        NewBookingHandler(service.Booking, log),
		PreReserve:     NewPreReserveHandler(service.PreReserve, log),
		ScheduleWorker: NewScheduleWorkerHandler(service.ScheduleWorker, log),
	}
}
