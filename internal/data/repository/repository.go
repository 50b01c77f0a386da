package repository

import (
	"event-ticketing/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Event          EventRepository
	Schedule       ScheduleRepository
	Seat           SeatRepository
	ZonePricing    ZonePricingRepository
	Booking        BookingRepository
	BookingSeat    BookingSeatRepository
	User           UserRepository
	ScheduleWorker ScheduleWorkerRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Event:          NewEventRepository(db, log),
		Schedule:       NewScheduleRepository(db, log),
		Seat:           NewSeatRepository(db, log),
		ZonePricing:    NewZonePricingRepository(db, log),
		Booking:        NewBookingRepository(db, log),
		BookingSeat:    NewBookingSeatRepository(db, log),
		User:           NewUserRepository(db, log),
		ScheduleWorker: NewScheduleWorkerRepository(db, log),
	}
}
