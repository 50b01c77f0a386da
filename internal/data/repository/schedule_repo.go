package repository

import (
	"context"
	"fmt"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.Schedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Schedule, error)
	// HasOverlap reports whether another schedule of the same event
	// intersects [startAt, endAt). excludeID skips a schedule being updated.
	HasOverlap(ctx context.Context, eventID uuid.UUID, startAt, endAt time.Time, excludeID *uuid.UUID) (bool, error)
}

type scheduleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScheduleRepository(db database.PgxIface, log *zap.Logger) ScheduleRepository {
	return &scheduleRepository{
		db:  db,
		log: log.With(zap.String("repository", "schedule")),
	}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *entity.Schedule) error {
	query := `
		INSERT INTO schedules (id, event_id, start_at, end_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		schedule.ID,
		schedule.EventID,
		schedule.StartAt,
		schedule.EndAt,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create schedule",
			zap.Error(err),
			zap.String("event_id", schedule.EventID.String()),
		)
		return fmt.Errorf("create schedule for event %s: %w", schedule.EventID.String(), err)
	}

	return nil
}

func (r *scheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	query := `
		SELECT id, event_id, start_at, end_at, created_at, updated_at, deleted_at
		FROM schedules
		WHERE id = $1 AND deleted_at IS NULL
	`

	var schedule entity.Schedule
	err := r.db.QueryRow(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.EventID,
		&schedule.StartAt,
		&schedule.EndAt,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
		&schedule.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find schedule by ID",
			zap.Error(err),
			zap.String("schedule_id", id.String()),
		)
		return nil, fmt.Errorf("find schedule by ID %s: %w", id.String(), err)
	}

	return &schedule, nil
}

func (r *scheduleRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Schedule, error) {
	query := `
		SELECT id, event_id, start_at, end_at, created_at, updated_at, deleted_at
		FROM schedules
		WHERE event_id = $1 AND deleted_at IS NULL
		ORDER BY start_at
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to find schedules by event ID",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find schedules by event ID %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	var schedules []*entity.Schedule
	for rows.Next() {
		var schedule entity.Schedule
		err := rows.Scan(
			&schedule.ID,
			&schedule.EventID,
			&schedule.StartAt,
			&schedule.EndAt,
			&schedule.CreatedAt,
			&schedule.UpdatedAt,
			&schedule.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan schedule row", zap.Error(err))
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		schedules = append(schedules, &schedule)
	}

	return schedules, nil
}

func (r *scheduleRepository) HasOverlap(ctx context.Context, eventID uuid.UUID, startAt, endAt time.Time, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM schedules
			WHERE event_id = $1
			  AND deleted_at IS NULL
			  AND start_at < $3
			  AND end_at > $2
			  AND ($4::uuid IS NULL OR id <> $4)
		)
	`

	var overlaps bool
	err := r.db.QueryRow(ctx, query, eventID, startAt, endAt, excludeID).Scan(&overlaps)
	if err != nil {
		r.log.Error("Failed to check schedule overlap",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return false, fmt.Errorf("check schedule overlap for event %s: %w", eventID.String(), err)
	}

	return overlaps, nil
}
