package entity

import "github.com/google/uuid"

// ZonePricing is the price for a (zone, event, schedule) triple. Absence of
// a row is a configuration error unless the booking carries an explicit
// override price.
type ZonePricing struct {
	Base
	ZoneID     uuid.UUID `db:"zone_id"`
	EventID    uuid.UUID `db:"event_id"`
	ScheduleID uuid.UUID `db:"schedule_id"`
	Price      float64   `db:"price"`
}
