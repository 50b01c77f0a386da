package request

// PreReserveRequest creates placeholder bookings held by generated guest
// users. Same discriminated shape as checkout but without owner info.
type PreReserveRequest struct {
	EventID    string          `json:"event_id" validate:"required"`
	ScheduleID *string         `json:"schedule_id" validate:"omitempty,uuid4"`
	Quantity   int             `json:"quantity" validate:"omitempty,min=1"`
	Seats      []SeatSelection `json:"seats" validate:"omitempty,min=1,dive"`
	UnitPrice  *float64        `json:"unit_price" validate:"omitempty,min=0"`
}

// AssignBookingRequest binds a pre-reserved booking to a real identity.
type AssignBookingRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,min=5,max=32"`
}

type BulkAssignItem struct {
	BookingID string  `json:"booking_id" validate:"required,uuid4"`
	Name      string  `json:"name" validate:"required,min=1,max=200"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,min=5,max=32"`
}

type BulkAssignRequest struct {
	Assignments []BulkAssignItem `json:"assignments" validate:"required,min=1,dive"`
}
