package repository

import (
	"context"
	"fmt"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScheduleWorkerRepository interface {
	// Insert attempts the row directly. A unique violation on
	// (schedule_id, user_id) is surfaced raw so the service can recognize
	// it with database.IsUniqueViolation; there is no check-then-insert.
	Insert(ctx context.Context, assignment *entity.ScheduleWorker) error
	FindByScheduleAndUser(ctx context.Context, scheduleID, userID uuid.UUID) (*entity.ScheduleWorker, error)
	FindBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]*entity.ScheduleWorker, error)
}

type scheduleWorkerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScheduleWorkerRepository(db database.PgxIface, log *zap.Logger) ScheduleWorkerRepository {
	return &scheduleWorkerRepository{
		db:  db,
		log: log.With(zap.String("repository", "schedule_worker")),
	}
}

func (r *scheduleWorkerRepository) Insert(ctx context.Context, assignment *entity.ScheduleWorker) error {
	query := `
		INSERT INTO schedule_workers (id, schedule_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		assignment.ID,
		assignment.ScheduleID,
		assignment.UserID,
		assignment.CreatedAt,
	)

	if err != nil {
		if !database.IsUniqueViolation(err) {
			r.log.Error("Failed to insert schedule worker",
				zap.Error(err),
				zap.String("schedule_id", assignment.ScheduleID.String()),
				zap.String("user_id", assignment.UserID.String()),
			)
		}
		return fmt.Errorf("insert schedule worker: %w", err)
	}

	return nil
}

func (r *scheduleWorkerRepository) FindByScheduleAndUser(ctx context.Context, scheduleID, userID uuid.UUID) (*entity.ScheduleWorker, error) {
	query := `
		SELECT id, schedule_id, user_id, created_at
		FROM schedule_workers
		WHERE schedule_id = $1 AND user_id = $2
	`

	var assignment entity.ScheduleWorker
	err := r.db.QueryRow(ctx, query, scheduleID, userID).Scan(
		&assignment.ID,
		&assignment.ScheduleID,
		&assignment.UserID,
		&assignment.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find schedule worker",
			zap.Error(err),
			zap.String("schedule_id", scheduleID.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find schedule worker: %w", err)
	}

	return &assignment, nil
}

func (r *scheduleWorkerRepository) FindBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]*entity.ScheduleWorker, error) {
	query := `
		SELECT id, schedule_id, user_id, created_at
		FROM schedule_workers
		WHERE schedule_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, scheduleID)
	if err != nil {
		r.log.Error("Failed to find schedule workers",
			zap.Error(err),
			zap.String("schedule_id", scheduleID.String()),
		)
		return nil, fmt.Errorf("find schedule workers for %s: %w", scheduleID.String(), err)
	}
	defer rows.Close()

	var assignments []*entity.ScheduleWorker
	for rows.Next() {
		var assignment entity.ScheduleWorker
		err := rows.Scan(
			&assignment.ID,
			&assignment.ScheduleID,
			&assignment.UserID,
			&assignment.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan schedule worker row", zap.Error(err))
			return nil, fmt.Errorf("scan schedule worker row: %w", err)
		}
		assignments = append(assignments, &assignment)
	}

	return assignments, nil
}
