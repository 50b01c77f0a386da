package response

import (
	"time"

	"event-ticketing/internal/data/entity"
)

type EventResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	HasSeats        bool     `json:"has_seats"`
	OriginalPrice   *float64 `json:"original_price,omitempty"`
	DiscountedPrice *float64 `json:"discounted_price,omitempty"`
	Currency        string   `json:"currency"`
	IsActive        bool     `json:"is_active"`
}

type ScheduleResponse struct {
	ID      string    `json:"id"`
	EventID string    `json:"event_id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

func EventToResponse(event *entity.Event) EventResponse {
	return EventResponse{
		ID:              event.ID.String(),
		Name:            event.Name,
		Slug:            event.Slug,
		HasSeats:        event.HasSeats,
		OriginalPrice:   event.OriginalPrice,
		DiscountedPrice: event.DiscountedPrice,
		Currency:        event.Currency,
		IsActive:        event.IsActive,
	}
}

func ScheduleToResponse(schedule *entity.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:      schedule.ID.String(),
		EventID: schedule.EventID.String(),
		StartAt: schedule.StartAt,
		EndAt:   schedule.EndAt,
	}
}
