package response

import "event-ticketing/internal/data/entity"

type SeatDetailResponse struct {
	SeatID          string `json:"seat_id"`
	RowNumber       int    `json:"row_number"`
	SeatNumber      int    `json:"seat_number"`
	Label           string `json:"label"`
	SectionID       string `json:"section_id"`
	SectionName     string `json:"section_name"`
	SectionPosition string `json:"section_position"`
	ZoneID          string `json:"zone_id"`
	ZoneName        string `json:"zone_name"`
	ZoneType        string `json:"zone_type"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
	// ConflictingSeats holds the labels of seats already reserved for the
	// schedule, for user-facing error messages.
	ConflictingSeats []string `json:"conflicting_seats,omitempty"`
}

func SeatDetailToResponse(d *entity.SeatDetail) SeatDetailResponse {
	return SeatDetailResponse{
		SeatID:          d.SeatID.String(),
		RowNumber:       d.RowNumber,
		SeatNumber:      d.SeatNumber,
		Label:           d.Label,
		SectionID:       d.SectionID.String(),
		SectionName:     d.SectionName,
		SectionPosition: string(d.SectionPosition),
		ZoneID:          d.ZoneID.String(),
		ZoneName:        d.ZoneName,
		ZoneType:        string(d.ZoneType),
	}
}
