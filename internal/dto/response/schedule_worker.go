package response

import (
	"time"

	"event-ticketing/internal/data/entity"
)

type ScheduleWorkerResponse struct {
	ID         string    `json:"id"`
	ScheduleID string    `json:"schedule_id"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func ScheduleWorkerToResponse(assignment *entity.ScheduleWorker) ScheduleWorkerResponse {
	return ScheduleWorkerResponse{
		ID:         assignment.ID.String(),
		ScheduleID: assignment.ScheduleID.String(),
		UserID:     assignment.UserID.String(),
		CreatedAt:  assignment.CreatedAt,
	}
}
