package usecase

import (
	"event-ticketing/internal/data/repository"
	"event-ticketing/pkg/database"
	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Event          EventService
	Seat           SeatService
	Booking        BookingService
	PreReserve     PreReserveService
	ScheduleWorker ScheduleWorkerService
}

func NewService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	numbers := utils.NewNumberGenerator(config.Booking.NumberLength, config.Booking.NumberAttempts)
	pricer := NewPriceResolver(repo.ZonePricing, log)
	currency := config.Booking.DefaultCurrency

	return &Service{
		Event:          NewEventService(repo, currency, log),
		Seat:           NewSeatService(repo, log),
		Booking:        NewBookingService(db, repo, numbers, pricer, currency, log),
		PreReserve:     NewPreReserveService(db, repo, numbers, pricer, currency, log),
		ScheduleWorker: NewScheduleWorkerService(repo, log),
	}
}
