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

type BookingService interface {
	// CreateBooking is the customer checkout: the booking starts pending.
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	// CreateAdminBooking records the acting admin and starts confirmed.
	CreateAdminBooking(ctx context.Context, adminActorID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error)
	ListBookings(ctx context.Context, query *request.ListBookingsQuery) (*response.PaginatedResponse[response.BookingResponse], error)

	UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error)
	UpdateUsedQuantity(ctx context.Context, bookingID string, req *request.UpdateUsedQuantityRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	db       database.PgxIface
	repo     *repository.Repository
	numbers  *utils.NumberGenerator
	pricer   *PriceResolver
	currency string
	log      *zap.Logger
}

func NewBookingService(db database.PgxIface, repo *repository.Repository, numbers *utils.NumberGenerator, pricer *PriceResolver, currency string, log *zap.Logger) BookingService {
	return &bookingService{
		db:       db,
		repo:     repo,
		numbers:  numbers,
		pricer:   pricer,
		currency: currency,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	return s.create(ctx, req, nil)
}

func (s *bookingService) CreateAdminBooking(ctx context.Context, adminActorID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	return s.create(ctx, req, &adminActorID)
}

// create is the shared checkout path. The request is discriminated by the
// event's mode: non-seated events take a quantity, seated events take a
// schedule plus explicit seats. Booking row and seat rows are written in
// one transaction; a unique violation on any (seat_id, schedule_id) pair
// aborts the whole thing.
func (s *bookingService) create(ctx context.Context, req *request.CreateBookingRequest, adminActorID *uuid.UUID) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	event, err := s.repo.Event.FindByIDOrSlug(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %s", apperrors.ErrNotFound, req.EventID)
	}
	if !event.IsActive {
		return nil, fmt.Errorf("%w: event %s is not active", apperrors.ErrBadRequest, event.Slug)
	}

	if event.HasSeats {
		if req.ScheduleID == nil || len(req.Seats) == 0 {
			return nil, fmt.Errorf("%w: seated event requires schedule_id and seats", apperrors.ErrBadRequest)
		}
	} else {
		if len(req.Seats) > 0 {
			return nil, fmt.Errorf("%w: event %s does not take seat selections", apperrors.ErrBadRequest, event.Slug)
		}
		if req.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity is required for non-seated events", apperrors.ErrBadRequest)
		}
	}

	owner, err := resolveOwner(ctx, s.repo.User, s.log, req.OwnerInfo.Name, req.OwnerInfo.Email, req.OwnerInfo.Phone)
	if err != nil {
		return nil, err
	}

	status := entity.BookingStatusPending
	if adminActorID != nil {
		status = entity.BookingStatusConfirmed
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingNumber:  s.numbers.GenerateOne(ctx, s.repo.Booking.ExistsByNumber),
		UserID:         owner.ID,
		EventID:        event.ID,
		Currency:       s.resolveCurrency(event),
		Status:         status,
		IsAdminBooking: adminActorID != nil,
		AdminActorID:   adminActorID,
	}

	var bookingSeats []*entity.BookingSeat
	if event.HasSeats {
		bookingSeats, err = s.prepareSeatedBooking(ctx, booking, event, req)
	} else {
		err = s.prepareNonSeatedBooking(ctx, booking, event, req)
	}
	if err != nil {
		return nil, err
	}

	if err := s.writeBooking(ctx, booking, bookingSeats); err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_number", booking.BookingNumber),
		zap.String("user_id", owner.ID.String()),
		zap.Int("quantity", booking.Quantity),
		zap.Float64("total_price", booking.TotalPrice),
		zap.Bool("is_admin_booking", booking.IsAdminBooking),
	)

	resp := s.toResponse(ctx, booking)
	ownerResp := response.OwnerToResponse(owner)
	resp.Owner = &ownerResp
	return &resp, nil
}

func (s *bookingService) prepareNonSeatedBooking(ctx context.Context, booking *entity.Booking, event *entity.Event, req *request.CreateBookingRequest) error {
	if req.ScheduleID != nil {
		scheduleID, err := s.resolveSchedule(ctx, *req.ScheduleID, event.ID)
		if err != nil {
			return err
		}
		booking.ScheduleID = &scheduleID
	}

	booking.Quantity = req.Quantity
	booking.UnitPrice = s.pricer.ResolveFlatPrice(event, req.UnitPrice)
	booking.TotalPrice = booking.UnitPrice * float64(booking.Quantity)
	return nil
}

func (s *bookingService) prepareSeatedBooking(ctx context.Context, booking *entity.Booking, event *entity.Event, req *request.CreateBookingRequest) ([]*entity.BookingSeat, error) {
	scheduleID, err := s.resolveSchedule(ctx, *req.ScheduleID, event.ID)
	if err != nil {
		return nil, err
	}
	booking.ScheduleID = &scheduleID

	seatIDs := make([]uuid.UUID, len(req.Seats))
	for i, sel := range req.Seats {
		seatID, err := uuid.Parse(sel.SeatID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid seat ID %s", apperrors.ErrBadRequest, sel.SeatID)
		}
		seatIDs[i] = seatID
	}

	details, err := loadSeatDetails(ctx, s.repo.Seat, seatIDs)
	if err != nil {
		return nil, err
	}

	// Advisory pre-check for a friendly error message. The constraint in
	// writeBooking is what actually decides the race.
	reserved, err := s.repo.BookingSeat.FindReservedSeatIDs(ctx, seatIDs, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if len(reserved) > 0 {
		return nil, fmt.Errorf("%w: %d of the requested seats are already reserved", apperrors.ErrConflict, len(reserved))
	}

	unitPrice, err := s.pricer.ResolveZonePrice(ctx, details[0].ZoneID, event.ID, scheduleID, req.UnitPrice)
	if err != nil {
		return nil, err
	}

	booking.Quantity = len(details)
	booking.UnitPrice = unitPrice
	booking.TotalPrice = unitPrice * float64(len(details))

	bookingSeats := make([]*entity.BookingSeat, len(details))
	for i, d := range details {
		bookingSeats[i] = &entity.BookingSeat{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: booking.CreatedAt,
			},
			BookingID:       booking.ID,
			UserID:          booking.UserID,
			SeatID:          d.SeatID,
			ScheduleID:      scheduleID,
			ZoneName:        d.ZoneName,
			ZoneType:        d.ZoneType,
			SectionName:     d.SectionName,
			SectionPosition: d.SectionPosition,
			RowNumber:       d.RowNumber,
			SeatLabel:       d.Label,
		}
	}

	return bookingSeats, nil
}

func (s *bookingService) resolveSchedule(ctx context.Context, rawID string, eventID uuid.UUID) (uuid.UUID, error) {
	scheduleID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid schedule ID %s", apperrors.ErrBadRequest, rawID)
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve schedule: %w", err)
	}
	if schedule == nil {
		return uuid.Nil, fmt.Errorf("%w: schedule %s", apperrors.ErrNotFound, rawID)
	}
	if schedule.EventID != eventID {
		return uuid.Nil, fmt.Errorf("%w: schedule %s does not belong to the event", apperrors.ErrBadRequest, rawID)
	}

	return scheduleID, nil
}

func (s *bookingService) writeBooking(ctx context.Context, booking *entity.Booking, bookingSeats []*entity.BookingSeat) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.Booking.CreateTx(ctx, tx, booking); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	if err := s.repo.BookingSeat.CreateBatchTx(ctx, tx, bookingSeats); err != nil {
		if database.IsUniqueViolation(err) {
			s.log.Warn("Seat reservation lost to concurrent booking",
				zap.String("booking_number", booking.BookingNumber),
			)
			return fmt.Errorf("%w: one or more seats were reserved concurrently", apperrors.ErrConflict)
		}
		return fmt.Errorf("create booking seats: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking transaction: %w", err)
	}

	return nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	detail := &response.BookingDetailResponse{
		BookingResponse: s.toResponse(ctx, booking),
	}

	owner, _ := s.repo.User.FindByID(ctx, booking.UserID)
	if owner != nil {
		ownerResp := response.OwnerToResponse(owner)
		detail.Owner = &ownerResp
	}

	if booking.AdminActorID != nil {
		actor, _ := s.repo.User.FindByID(ctx, *booking.AdminActorID)
		if actor != nil {
			actorResp := response.OwnerToResponse(actor)
			detail.AdminActor = &actorResp
		}
	}

	return detail, nil
}

func (s *bookingService) ListBookings(ctx context.Context, query *request.ListBookingsQuery) (*response.PaginatedResponse[response.BookingResponse], error) {
	filter, err := buildBookingFilter(query)
	if err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	bookings, err := s.repo.Booking.List(ctx, *filter, perPage, utils.CalculateOffset(page, perPage))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx, *filter)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = s.toResponse(ctx, booking)
	}

	s.log.Info("Bookings listed",
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
		zap.Int("page", page),
	)

	return response.NewPaginatedResponse(responses, page, perPage, total), nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update status validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	target := entity.BookingStatus(req.Status)
	if !booking.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: cannot transition booking from %s to %s",
			apperrors.ErrBadRequest, booking.Status, target)
	}

	// Cancellation has side effects (seat release, reason, timestamp) and
	// always runs through the cancel path.
	if target == entity.BookingStatusCancelled {
		reason := "cancelled via status update"
		if req.Reason != nil {
			reason = *req.Reason
		}
		return s.cancel(ctx, booking, reason)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, target); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	booking.Status = target

	s.log.Info("Booking status updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(target)),
	)

	resp := s.toResponse(ctx, booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Cancel booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(entity.BookingStatusCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel booking in status %s", apperrors.ErrBadRequest, booking.Status)
	}

	return s.cancel(ctx, booking, req.Reason)
}

// cancel flips the status and releases the seat rows in one transaction so
// a freed seat is never observable alongside a still-active booking.
func (s *bookingService) cancel(ctx context.Context, booking *entity.Booking, reason string) (*response.BookingResponse, error) {
	now := time.Now()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cancel transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.Booking.CancelTx(ctx, tx, booking.ID, reason, now); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	if err := s.repo.BookingSeat.DeleteByBookingIDTx(ctx, tx, booking.ID); err != nil {
		return nil, fmt.Errorf("release booking seats: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cancel transaction: %w", err)
	}

	booking.Status = entity.BookingStatusCancelled
	booking.CancellationReason = &reason
	booking.CancelledAt = &now

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_number", booking.BookingNumber),
		zap.String("reason", reason),
	)

	resp := s.toResponse(ctx, booking)
	return &resp, nil
}

func (s *bookingService) UpdateUsedQuantity(ctx context.Context, bookingID string, req *request.UpdateUsedQuantityRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update used quantity validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if req.UsedQuantity > booking.Quantity {
		return nil, fmt.Errorf("%w: used quantity %d exceeds booked quantity %d",
			apperrors.ErrBadRequest, req.UsedQuantity, booking.Quantity)
	}

	var status *entity.BookingStatus
	if req.Status != nil {
		target := entity.BookingStatus(*req.Status)
		if target != booking.Status {
			if !booking.Status.CanTransitionTo(target) {
				return nil, fmt.Errorf("%w: cannot transition booking from %s to %s",
					apperrors.ErrBadRequest, booking.Status, target)
			}
			status = &target
		}
	}

	if err := s.repo.Booking.UpdateUsedQuantity(ctx, booking.ID, req.UsedQuantity, status); err != nil {
		return nil, fmt.Errorf("update used quantity: %w", err)
	}

	used := req.UsedQuantity
	booking.UsedQuantity = &used
	if status != nil {
		booking.Status = *status
	}

	s.log.Info("Booking used quantity updated",
		zap.String("booking_id", booking.ID.String()),
		zap.Int("used_quantity", used),
	)

	resp := s.toResponse(ctx, booking)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking ID %s", apperrors.ErrBadRequest, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", apperrors.ErrNotFound, bookingID)
	}

	return booking, nil
}

func (s *bookingService) resolveCurrency(event *entity.Event) string {
	if event.Currency != "" {
		return event.Currency
	}
	return s.currency
}

// toResponse enriches the row with its seats, event name and schedule times.
// Lookups are best-effort; a missing reference never fails the read.
func (s *bookingService) toResponse(ctx context.Context, booking *entity.Booking) response.BookingResponse {
	seats, _ := s.repo.BookingSeat.FindByBookingID(ctx, booking.ID)
	resp := response.BookingToResponse(booking, seats)

	event, _ := s.repo.Event.FindByID(ctx, booking.EventID)
	if event != nil {
		resp.EventName = event.Name
	}

	if booking.ScheduleID != nil {
		schedule, _ := s.repo.Schedule.FindByID(ctx, *booking.ScheduleID)
		if schedule != nil {
			resp.ScheduleStartAt = &schedule.StartAt
			resp.ScheduleEndAt = &schedule.EndAt
		}
	}

	return resp
}

// buildBookingFilter translates query-string values into a repository
// filter, rejecting malformed ids and timestamps up front.
func buildBookingFilter(query *request.ListBookingsQuery) (*repository.BookingFilter, error) {
	filter := &repository.BookingFilter{Search: query.Search}

	if query.Status != "" {
		status := entity.BookingStatus(query.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: invalid status %s", apperrors.ErrBadRequest, query.Status)
		}
		filter.Status = &status
	}

	parseID := func(raw string, dst **uuid.UUID) error {
		if raw == "" {
			return nil
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("%w: invalid ID filter %s", apperrors.ErrBadRequest, raw)
		}
		*dst = &id
		return nil
	}
	if err := parseID(query.EventID, &filter.EventID); err != nil {
		return nil, err
	}
	if err := parseID(query.ScheduleID, &filter.ScheduleID); err != nil {
		return nil, err
	}
	if err := parseID(query.UserID, &filter.UserID); err != nil {
		return nil, err
	}

	parseBool := func(raw string, dst **bool) error {
		if raw == "" {
			return nil
		}
		if raw != "true" && raw != "false" {
			return fmt.Errorf("%w: invalid boolean filter %s", apperrors.ErrBadRequest, raw)
		}
		value := raw == "true"
		*dst = &value
		return nil
	}
	if err := parseBool(query.IsAdminBooking, &filter.IsAdminBooking); err != nil {
		return nil, err
	}
	if err := parseBool(query.IsPreReserved, &filter.IsPreReserved); err != nil {
		return nil, err
	}

	if query.CreatedFrom != "" {
		from, err := time.Parse(time.RFC3339, query.CreatedFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid created_from %s", apperrors.ErrBadRequest, query.CreatedFrom)
		}
		filter.CreatedFrom = &from
	}
	if query.CreatedTo != "" {
		to, err := time.Parse(time.RFC3339, query.CreatedTo)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid created_to %s", apperrors.ErrBadRequest, query.CreatedTo)
		}
		filter.CreatedTo = &to
	}

	return filter, nil
}
