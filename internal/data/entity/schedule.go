package entity

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is a bounded time occurrence of an Event. Seat reservations and
// worker assignments are scoped to a schedule, never to the event itself.
type Schedule struct {
	Base
	EventID uuid.UUID `db:"event_id"`
	StartAt time.Time `db:"start_at"`
	EndAt   time.Time `db:"end_at"`
}
