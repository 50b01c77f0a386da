package request

type CreateEventRequest struct {
	Name            string   `json:"name" validate:"required,min=1,max=200"`
	Slug            string   `json:"slug" validate:"required,min=1,max=200"`
	HasSeats        bool     `json:"has_seats"`
	OriginalPrice   *float64 `json:"original_price" validate:"omitempty,min=0"`
	DiscountedPrice *float64 `json:"discounted_price" validate:"omitempty,min=0"`
	Currency        string   `json:"currency" validate:"omitempty,len=3"`
}

type CreateScheduleRequest struct {
	EventID string `json:"event_id" validate:"required,uuid4"`
	StartAt string `json:"start_at" validate:"required"` // RFC3339
	EndAt   string `json:"end_at" validate:"required"`   // RFC3339
}

type UpsertZonePricingRequest struct {
	ZoneID     string  `json:"zone_id" validate:"required,uuid4"`
	EventID    string  `json:"event_id" validate:"required,uuid4"`
	ScheduleID string  `json:"schedule_id" validate:"required,uuid4"`
	Price      float64 `json:"price" validate:"min=0"`
}
