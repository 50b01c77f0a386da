package entity

import "github.com/google/uuid"

// BookingSeat reserves one physical seat for one schedule. Its existence is
// the seat lock: the unique constraint on (seat_id, schedule_id) is the only
// mutual exclusion between concurrent checkouts. The zone/section/row
// columns are a snapshot taken at reservation time so later structural
// edits never change a sold ticket's description.
type BookingSeat struct {
	BaseSimple
	BookingID  uuid.UUID `db:"booking_id"`
	UserID     uuid.UUID `db:"user_id"`
	SeatID     uuid.UUID `db:"seat_id"`
	ScheduleID uuid.UUID `db:"schedule_id"`

	ZoneName        string          `db:"zone_name"`
	ZoneType        ZoneType        `db:"zone_type"`
	SectionName     string          `db:"section_name"`
	SectionPosition SectionPosition `db:"section_position"`
	RowNumber       int             `db:"row_number"`
	SeatLabel       string          `db:"seat_label"`
}
