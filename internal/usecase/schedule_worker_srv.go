package usecase

import (
	"context"
	"fmt"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/dto/response"
	"event-ticketing/pkg/apperrors"
	"event-ticketing/pkg/database"
	"event-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScheduleWorkerService interface {
	// Assign inserts the assignment and lets the unique constraint on
	// (schedule_id, user_id) decide races. created=false means the pair
	// already existed; the handler turns that into a conflict response.
	Assign(ctx context.Context, req *request.AssignScheduleWorkerRequest) (*response.ScheduleWorkerResponse, bool, error)
	ListBySchedule(ctx context.Context, scheduleID string) ([]response.ScheduleWorkerResponse, error)
}

type scheduleWorkerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewScheduleWorkerService(repo *repository.Repository, log *zap.Logger) ScheduleWorkerService {
	return &scheduleWorkerService{
		repo: repo,
		log:  log.With(zap.String("service", "schedule_worker")),
	}
}

func (s *scheduleWorkerService) Assign(ctx context.Context, req *request.AssignScheduleWorkerRequest) (*response.ScheduleWorkerResponse, bool, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Assign schedule worker validation failed", zap.Any("errors", errs))
		return nil, false, fmt.Errorf("%w: %s", apperrors.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: invalid schedule ID %s", apperrors.ErrBadRequest, req.ScheduleID)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: invalid user ID %s", apperrors.ErrBadRequest, req.UserID)
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, false, fmt.Errorf("assign schedule worker: %w", err)
	}
	if schedule == nil {
		return nil, false, fmt.Errorf("%w: schedule %s", apperrors.ErrNotFound, req.ScheduleID)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("assign schedule worker: %w", err)
	}
	if user == nil {
		return nil, false, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, req.UserID)
	}

	assignment := &entity.ScheduleWorker{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ScheduleID: scheduleID,
		UserID:     userID,
	}

	if err := s.repo.ScheduleWorker.Insert(ctx, assignment); err != nil {
		if !database.IsUniqueViolation(err) {
			return nil, false, fmt.Errorf("assign schedule worker: %w", err)
		}

		// Lost the race or the pair already existed; surface the winner.
		existing, findErr := s.repo.ScheduleWorker.FindByScheduleAndUser(ctx, scheduleID, userID)
		if findErr != nil {
			return nil, false, fmt.Errorf("assign schedule worker: %w", findErr)
		}
		if existing == nil {
			return nil, false, fmt.Errorf("assign schedule worker: %w", err)
		}

		s.log.Info("Schedule worker already assigned",
			zap.String("schedule_id", req.ScheduleID),
			zap.String("user_id", req.UserID),
		)

		resp := response.ScheduleWorkerToResponse(existing)
		return &resp, false, nil
	}

	s.log.Info("Schedule worker assigned",
		zap.String("assignment_id", assignment.ID.String()),
		zap.String("schedule_id", req.ScheduleID),
		zap.String("user_id", req.UserID),
	)

	resp := response.ScheduleWorkerToResponse(assignment)
	return &resp, true, nil
}

func (s *scheduleWorkerService) ListBySchedule(ctx context.Context, scheduleID string) ([]response.ScheduleWorkerResponse, error) {
	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid schedule ID %s", apperrors.ErrBadRequest, scheduleID)
	}

	assignments, err := s.repo.ScheduleWorker.FindBySchedule(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list schedule workers: %w", err)
	}

	responses := make([]response.ScheduleWorkerResponse, len(assignments))
	for i, assignment := range assignments {
		responses[i] = response.ScheduleWorkerToResponse(assignment)
	}

	return responses, nil
}
