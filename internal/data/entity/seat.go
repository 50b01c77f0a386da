package entity

import "github.com/google/uuid"

// Seat is immutable structural identity inside a Section. Whether a seat is
// reserved for a schedule is never stored here; it is derived from
// booking_seats rows.
type Seat struct {
	Base
	SectionID  uuid.UUID `db:"section_id"`
	RowNumber  int       `db:"row_number"`
	SeatNumber int       `db:"seat_number"`
	Label      string    `db:"label"` // A1, A2, B1, etc.
}

// SeatDetail is a seat joined with its section and zone, the material for
// zone pricing and for the snapshot written onto booking_seats.
type SeatDetail struct {
	SeatID          uuid.UUID       `db:"seat_id"`
	RowNumber       int             `db:"row_number"`
	SeatNumber      int             `db:"seat_number"`
	Label           string          `db:"label"`
	SectionID       uuid.UUID       `db:"section_id"`
	SectionName     string          `db:"section_name"`
	SectionPosition SectionPosition `db:"section_position"`
	ZoneID          uuid.UUID       `db:"zone_id"`
	ZoneName        string          `db:"zone_name"`
	ZoneType        ZoneType        `db:"zone_type"`
}
