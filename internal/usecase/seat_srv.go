package usecase

import (
	"context"
	"fmt"
	"strings"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/dto/response"
	"event-ticketing/pkg/apperrors"
	"event-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SeatService interface {
	// CheckAvailability is advisory: it reports which of the requested seats
	// already carry a reservation for the schedule. The answer can be stale
	// the moment it is produced; checkout relies on the unique constraint,
	// not on this.
	CheckAvailability(ctx context.Context, req *request.CheckAvailabilityRequest) (*response.AvailabilityResponse, error)
}

type seatService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSeatService(repo *repository.Repository, log *zap.Logger) SeatService {
	return &seatService{
		repo: repo,
		log:  log.With(zap.String("service", "seat")),
	}
}

func (s *seatService) CheckAvailability(ctx context.Context, req *request.CheckAvailabilityRequest) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Check availability validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid schedule ID %s", apperrors.ErrBadRequest, req.ScheduleID)
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("%w: schedule %s", apperrors.ErrNotFound, req.ScheduleID)
	}

	seatIDs, err := parseSeatIDs(req.SeatIDs)
	if err != nil {
		return nil, err
	}

	details, err := loadSeatDetails(ctx, s.repo.Seat, seatIDs)
	if err != nil {
		return nil, err
	}

	reserved, err := s.repo.BookingSeat.FindReservedSeatIDs(ctx, seatIDs, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}

	labelByID := make(map[uuid.UUID]string, len(details))
	for _, d := range details {
		labelByID[d.SeatID] = d.Label
	}

	resp := &response.AvailabilityResponse{Available: len(reserved) == 0}
	for _, seatID := range reserved {
		resp.ConflictingSeats = append(resp.ConflictingSeats, labelByID[seatID])
	}

	s.log.Info("Seat availability checked",
		zap.String("schedule_id", req.ScheduleID),
		zap.Int("requested", len(seatIDs)),
		zap.Int("conflicting", len(reserved)),
	)

	return resp, nil
}

func parseSeatIDs(ids []string) ([]uuid.UUID, error) {
	seatIDs := make([]uuid.UUID, len(ids))
	for i, raw := range ids {
		seatID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid seat ID %s", apperrors.ErrBadRequest, raw)
		}
		seatIDs[i] = seatID
	}
	return seatIDs, nil
}

// loadSeatDetails fetches the joined seat rows and diffs the result against
// the requested ids so a missing seat is reported by id, not silently
// dropped. Duplicate ids are rejected up front; the diff below assumes the
// request is a set.
func loadSeatDetails(ctx context.Context, seats repository.SeatRepository, ids []uuid.UUID) ([]*entity.SeatDetail, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate seat ID %s", apperrors.ErrBadRequest, id)
		}
		seen[id] = struct{}{}
	}

	details, err := seats.FindDetailsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load seat details: %w", err)
	}

	if len(details) != len(ids) {
		found := make(map[uuid.UUID]struct{}, len(details))
		for _, d := range details {
			found[d.SeatID] = struct{}{}
		}
		var missing []string
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				missing = append(missing, id.String())
			}
		}
		return nil, fmt.Errorf("%w: seats %s", apperrors.ErrNotFound, strings.Join(missing, ", "))
	}

	return details, nil
}
