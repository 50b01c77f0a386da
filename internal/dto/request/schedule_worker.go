package request

type AssignScheduleWorkerRequest struct {
	ScheduleID string `json:"schedule_id" validate:"required,uuid4"`
	UserID     string `json:"user_id" validate:"required,uuid4"`
}
