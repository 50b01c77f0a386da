package request

// OwnerInfo identifies the person a booking is sold to. Email or phone is
// required so the owner can be resolved against existing accounts.
type OwnerInfo struct {
	Name  string  `json:"name" validate:"required,min=1,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,min=5,max=32"`
}

type SeatSelection struct {
	SeatID string `json:"seat_id" validate:"required,uuid4"`
}

// CreateBookingRequest is discriminated by the event's pricing mode:
// non-seated events take quantity, seated events take schedule_id + seats.
type CreateBookingRequest struct {
	EventID    string          `json:"event_id" validate:"required"` // id or slug
	ScheduleID *string         `json:"schedule_id" validate:"omitempty,uuid4"`
	Quantity   int             `json:"quantity" validate:"omitempty,min=1"`
	Seats      []SeatSelection `json:"seats" validate:"omitempty,min=1,dive"`
	OwnerInfo  OwnerInfo       `json:"owner_info" validate:"required"`
	UnitPrice  *float64        `json:"unit_price" validate:"omitempty,min=0"`
}

type UpdateBookingStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=pending confirmed completed cancelled refunded"`
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type UpdateUsedQuantityRequest struct {
	UsedQuantity int     `json:"used_quantity" validate:"min=0"`
	Status       *string `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled refunded"`
}

type CheckAvailabilityRequest struct {
	ScheduleID string   `json:"schedule_id" validate:"required,uuid4"`
	SeatIDs    []string `json:"seat_ids" validate:"required,min=1,dive,uuid4"`
}

// ListBookingsQuery mirrors the supported list filters; parsed from the
// query string, not a JSON body.
type ListBookingsQuery struct {
	Status         string
	EventID        string
	ScheduleID     string
	UserID         string
	IsAdminBooking string
	IsPreReserved  string
	CreatedFrom    string
	CreatedTo      string
	Search         string
	Page           int
	PerPage        int
}
