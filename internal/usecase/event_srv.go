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
	"event-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService interface {
	CreateEvent(ctx context.Context, req *request.CreateEventRequest) (*response.EventResponse, error)
	GetEvent(ctx context.Context, idOrSlug string) (*response.EventResponse, error)
	ListEvents(ctx context.Context, page, perPage int) ([]response.EventResponse, error)

	CreateSchedule(ctx context.Context, req *request.CreateScheduleRequest) (*response.ScheduleResponse, error)
	ListSchedules(ctx context.Context, eventID string) ([]response.ScheduleResponse, error)

	UpsertZonePricing(ctx context.Context, req *request.UpsertZonePricingRequest) error
}

type eventService struct {
	repo            *repository.Repository
	defaultCurrency string
	log             *zap.Logger
}

func NewEventService(repo *repository.Repository, defaultCurrency string, log *zap.Logger) EventService {
	return &eventService{
		repo:            repo,
		defaultCurrency: defaultCurrency,
		log:             log.With(zap.String("service", "event")),
	}
}

func (s *eventService) CreateEvent(ctx context.Context, req *request.CreateEventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Event.FindByIDOrSlug(ctx, req.Slug)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: event slug %s is taken", apperrors.ErrConflict, req.Slug)
	}

	currency := req.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	now := time.Now()
	event := &entity.Event{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:            req.Name,
		Slug:            req.Slug,
		HasSeats:        req.HasSeats,
		OriginalPrice:   req.OriginalPrice,
		DiscountedPrice: req.DiscountedPrice,
		Currency:        currency,
		IsActive:        true,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("slug", event.Slug),
		zap.Bool("has_seats", event.HasSeats),
	)

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) GetEvent(ctx context.Context, idOrSlug string) (*response.EventResponse, error) {
	event, err := s.repo.Event.FindByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %s", apperrors.ErrNotFound, idOrSlug)
	}

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) ListEvents(ctx context.Context, page, perPage int) ([]response.EventResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	events, err := s.repo.Event.List(ctx, perPage, utils.CalculateOffset(page, perPage))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	responses := make([]response.EventResponse, len(events))
	for i, event := range events {
		responses[i] = response.EventToResponse(event)
	}

	return responses, nil
}

func (s *eventService) CreateSchedule(ctx context.Context, req *request.CreateScheduleRequest) (*response.ScheduleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create schedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event ID %s", apperrors.ErrBadRequest, req.EventID)
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %s", apperrors.ErrNotFound, req.EventID)
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_at %s", apperrors.ErrBadRequest, req.StartAt)
	}
	endAt, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end_at %s", apperrors.ErrBadRequest, req.EndAt)
	}
	if !endAt.After(startAt) {
		return nil, fmt.Errorf("%w: end_at must be after start_at", apperrors.ErrBadRequest)
	}

	overlaps, err := s.repo.Schedule.HasOverlap(ctx, eventID, startAt, endAt, nil)
	if err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	if overlaps {
		return nil, fmt.Errorf("%w: schedule overlaps an existing schedule of the event", apperrors.ErrConflict)
	}

	now := time.Now()
	schedule := &entity.Schedule{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		EventID: eventID,
		StartAt: startAt,
		EndAt:   endAt,
	}

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	s.log.Info("Schedule created",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("event_id", req.EventID),
		zap.Time("start_at", startAt),
	)

	resp := response.ScheduleToResponse(schedule)
	return &resp, nil
}

func (s *eventService) ListSchedules(ctx context.Context, eventID string) ([]response.ScheduleResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event ID %s", apperrors.ErrBadRequest, eventID)
	}

	schedules, err := s.repo.Schedule.FindByEventID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	responses := make([]response.ScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		responses[i] = response.ScheduleToResponse(schedule)
	}

	return responses, nil
}

func (s *eventService) UpsertZonePricing(ctx context.Context, req *request.UpsertZonePricingRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Upsert zone pricing validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", apperrors.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	zoneID, err := uuid.Parse(req.ZoneID)
	if err != nil {
		return fmt.Errorf("%w: invalid zone ID %s", apperrors.ErrBadRequest, req.ZoneID)
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return fmt.Errorf("%w: invalid event ID %s", apperrors.ErrBadRequest, req.EventID)
	}
	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return fmt.Errorf("%w: invalid schedule ID %s", apperrors.ErrBadRequest, req.ScheduleID)
	}

	now := time.Now()
	pricing := &entity.ZonePricing{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ZoneID:     zoneID,
		EventID:    eventID,
		ScheduleID: scheduleID,
		Price:      req.Price,
	}

	if err := s.repo.ZonePricing.Upsert(ctx, pricing); err != nil {
		return fmt.Errorf("upsert zone pricing: %w", err)
	}

	s.log.Info("Zone pricing upserted",
		zap.String("zone_id", req.ZoneID),
		zap.String("event_id", req.EventID),
		zap.String("schedule_id", req.ScheduleID),
		zap.Float64("price", req.Price),
	)

	return nil
}
