package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRefunded  BookingStatus = "refunded"
)

// statusTransitions is the full forward-only state machine. Cancelled and
// refunded have no outgoing transitions.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled, BookingStatusRefunded},
	BookingStatusCompleted: {BookingStatusRefunded},
	BookingStatusCancelled: {},
	BookingStatusRefunded:  {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s BookingStatus) IsTerminal() bool {
	next, ok := statusTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether the move from s to next is allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is the central entity. Its number is globally unique and
// immutable; totals are snapshotted at creation and never recomputed from
// current pricing. Bookings are never hard-deleted.
type Booking struct {
	Base
	BookingNumber      string        `db:"booking_number"`
	UserID             uuid.UUID     `db:"user_id"`
	EventID            uuid.UUID     `db:"event_id"`
	ScheduleID         *uuid.UUID    `db:"schedule_id"`
	Quantity           int           `db:"quantity"`
	UnitPrice          float64       `db:"unit_price"`
	TotalPrice         float64       `db:"total_price"`
	Currency           string        `db:"currency"`
	Status             BookingStatus `db:"status"`
	IsAdminBooking     bool          `db:"is_admin_booking"`
	IsPreReserved      bool          `db:"is_pre_reserved"`
	AdminActorID       *uuid.UUID    `db:"admin_actor_id"`
	CancellationReason *string       `db:"cancellation_reason"`
	CancelledAt        *time.Time    `db:"cancelled_at"`
	UsedQuantity       *int          `db:"used_quantity"`
}
