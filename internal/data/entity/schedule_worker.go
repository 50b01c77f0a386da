package entity

import "github.com/google/uuid"

// ScheduleWorker links a worker to a schedule. The unique constraint on
// (schedule_id, user_id) is the invariant; inserts race against it instead
// of checking first.
type ScheduleWorker struct {
	BaseSimple
	ScheduleID uuid.UUID `db:"schedule_id"`
	UserID     uuid.UUID `db:"user_id"`
}
