package response

import (
	"time"

	"event-ticketing/internal/data/entity"
)

type OwnerResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	IsGuestUser bool    `json:"is_guest_user"`
}

type BookingSeatResponse struct {
	SeatID          string `json:"seat_id"`
	ZoneName        string `json:"zone_name"`
	ZoneType        string `json:"zone_type"`
	SectionName     string `json:"section_name"`
	SectionPosition string `json:"section_position"`
	RowNumber       int    `json:"row_number"`
	SeatLabel       string `json:"seat_label"`
}

type BookingResponse struct {
	ID                 string                `json:"id"`
	BookingNumber      string                `json:"booking_number"`
	UserID             string                `json:"user_id"`
	EventID            string                `json:"event_id"`
	ScheduleID         *string               `json:"schedule_id,omitempty"`
	EventName          string                `json:"event_name,omitempty"`
	ScheduleStartAt    *time.Time            `json:"schedule_start_at,omitempty"`
	ScheduleEndAt      *time.Time            `json:"schedule_end_at,omitempty"`
	Quantity           int                   `json:"quantity"`
	UnitPrice          float64               `json:"unit_price"`
	TotalPrice         float64               `json:"total_price"`
	Currency           string                `json:"currency"`
	Status             entity.BookingStatus  `json:"status"`
	IsAdminBooking     bool                  `json:"is_admin_booking"`
	IsPreReserved      bool                  `json:"is_pre_reserved"`
	CancellationReason *string               `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time            `json:"cancelled_at,omitempty"`
	UsedQuantity       *int                  `json:"used_quantity,omitempty"`
	Seats              []BookingSeatResponse `json:"seats,omitempty"`
	Owner              *OwnerResponse        `json:"owner,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
}

// BookingDetailResponse adds the admin actor for single-booking reads.
type BookingDetailResponse struct {
	BookingResponse
	AdminActor *OwnerResponse `json:"admin_actor,omitempty"`
}

// Helper converters

func OwnerToResponse(user *entity.User) OwnerResponse {
	return OwnerResponse{
		ID:          user.ID.String(),
		Name:        user.Name,
		Email:       user.Email,
		Phone:       user.Phone,
		IsGuestUser: user.IsGuestUser,
	}
}

func BookingSeatToResponse(bs *entity.BookingSeat) BookingSeatResponse {
	return BookingSeatResponse{
		SeatID:          bs.SeatID.String(),
		ZoneName:        bs.ZoneName,
		ZoneType:        string(bs.ZoneType),
		SectionName:     bs.SectionName,
		SectionPosition: string(bs.SectionPosition),
		RowNumber:       bs.RowNumber,
		SeatLabel:       bs.SeatLabel,
	}
}

func BookingToResponse(booking *entity.Booking, seats []*entity.BookingSeat) BookingResponse {
	resp := BookingResponse{
		ID:                 booking.ID.String(),
		BookingNumber:      booking.BookingNumber,
		UserID:             booking.UserID.String(),
		EventID:            booking.EventID.String(),
		Quantity:           booking.Quantity,
		UnitPrice:          booking.UnitPrice,
		TotalPrice:         booking.TotalPrice,
		Currency:           booking.Currency,
		Status:             booking.Status,
		IsAdminBooking:     booking.IsAdminBooking,
		IsPreReserved:      booking.IsPreReserved,
		CancellationReason: booking.CancellationReason,
		CancelledAt:        booking.CancelledAt,
		UsedQuantity:       booking.UsedQuantity,
		CreatedAt:          booking.CreatedAt,
	}

	if booking.ScheduleID != nil {
		scheduleID := booking.ScheduleID.String()
		resp.ScheduleID = &scheduleID
	}

	for _, bs := range seats {
		resp.Seats = append(resp.Seats, BookingSeatToResponse(bs))
	}

	return resp
}
