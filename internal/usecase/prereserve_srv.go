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

type PreReserveService interface {
	// PreReserve creates placeholder bookings, each held by a generated
	// guest user, to be bound to real identities later via Assign.
	PreReserve(ctx context.Context, adminActorID uuid.UUID, req *request.PreReserveRequest) (*response.PreReserveResponse, error)
	// Assign binds one pre-reserved booking to a real identity and deletes
	// the guest once it owns no bookings.
	Assign(ctx context.Context, bookingID string, req *request.AssignBookingRequest) (*response.BookingResponse, error)
	// AssignBulk is best-effort: one failed item never rolls back the others.
	AssignBulk(ctx context.Context, req *request.BulkAssignRequest) (*response.BulkAssignmentResponse, error)
	// CleanupGuests removes guests orphaned by earlier assignment failures.
	CleanupGuests(ctx context.Context) (int64, error)
}

type preReserveService struct {
	db       database.PgxIface
	repo     *repository.Repository
	numbers  *utils.NumberGenerator
	pricer   *PriceResolver
	currency string
	log      *zap.Logger
}

func NewPreReserveService(db database.PgxIface, repo *repository.Repository, numbers *utils.NumberGenerator, pricer *PriceResolver, currency string, log *zap.Logger) PreReserveService {
	return &preReserveService{
		db:       db,
		repo:     repo,
		numbers:  numbers,
		pricer:   pricer,
		currency: currency,
		log:      log.With(zap.String("service", "pre_reserve")),
	}
}

func (s *preReserveService) PreReserve(ctx context.Context, adminActorID uuid.UUID, req *request.PreReserveRequest) (*response.PreReserveResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Pre-reserve validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	event, err := s.repo.Event.FindByIDOrSlug(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("pre-reserve: %w", err)
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
		return s.preReserveSeated(ctx, adminActorID, event, req)
	}

	if len(req.Seats) > 0 {
		return nil, fmt.Errorf("%w: event %s does not take seat selections", apperrors.ErrBadRequest, event.Slug)
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity is required for non-seated events", apperrors.ErrBadRequest)
	}
	return s.preReserveNonSeated(ctx, adminActorID, event, req)
}

// preReserveNonSeated writes all placeholders in one transaction; the batch
// either fully exists or not at all.
func (s *preReserveService) preReserveNonSeated(ctx context.Context, adminActorID uuid.UUID, event *entity.Event, req *request.PreReserveRequest) (*response.PreReserveResponse, error) {
	var scheduleID *uuid.UUID
	if req.ScheduleID != nil {
		id, err := uuid.Parse(*req.ScheduleID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid schedule ID %s", apperrors.ErrBadRequest, *req.ScheduleID)
		}
		schedule, err := s.repo.Schedule.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("pre-reserve: %w", err)
		}
		if schedule == nil {
			return nil, fmt.Errorf("%w: schedule %s", apperrors.ErrNotFound, *req.ScheduleID)
		}
		if schedule.EventID != event.ID {
			return nil, fmt.Errorf("%w: schedule %s does not belong to the event", apperrors.ErrBadRequest, *req.ScheduleID)
		}
		scheduleID = &id
	}

	numbers, err := s.reserveNumbers(ctx, req.Quantity)
	if err != nil {
		return nil, err
	}

	unitPrice := s.pricer.ResolveFlatPrice(event, req.UnitPrice)

	// Guest accounts are written before the batch transaction; if the batch
	// fails they stay behind until CleanupGuests reclaims them.
	bookings := make([]*entity.Booking, req.Quantity)
	guests := make([]*entity.User, req.Quantity)
	for i := 0; i < req.Quantity; i++ {
		guest, err := s.createGuest(ctx, numbers[i])
		if err != nil {
			return nil, err
		}
		guests[i] = guest
		bookings[i] = s.newPlaceholder(numbers[i], guest.ID, event, scheduleID, adminActorID, unitPrice)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin pre-reserve transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, booking := range bookings {
		if err := s.repo.Booking.CreateTx(ctx, tx, booking); err != nil {
			return nil, fmt.Errorf("pre-reserve booking: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit pre-reserve transaction: %w", err)
	}

	s.log.Info("Pre-reserved non-seated bookings",
		zap.String("event_id", event.ID.String()),
		zap.Int("count", len(bookings)),
	)

	return s.toPreReserveResponse(bookings, guests), nil
}

// preReserveSeated creates one placeholder per seat, each in its own
// transaction, so one contested seat does not void the rest of the batch.
func (s *preReserveService) preReserveSeated(ctx context.Context, adminActorID uuid.UUID, event *entity.Event, req *request.PreReserveRequest) (*response.PreReserveResponse, error) {
	scheduleID, err := uuid.Parse(*req.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid schedule ID %s", apperrors.ErrBadRequest, *req.ScheduleID)
	}
	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("pre-reserve: %w", err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("%w: schedule %s", apperrors.ErrNotFound, *req.ScheduleID)
	}
	if schedule.EventID != event.ID {
		return nil, fmt.Errorf("%w: schedule %s does not belong to the event", apperrors.ErrBadRequest, *req.ScheduleID)
	}

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

	numbers, err := s.reserveNumbers(ctx, len(details))
	if err != nil {
		return nil, err
	}

	var bookings []*entity.Booking
	var guests []*entity.User
	var firstErr error

	for i, d := range details {
		unitPrice, err := s.pricer.ResolveZonePrice(ctx, d.ZoneID, event.ID, scheduleID, req.UnitPrice)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		guest, err := s.createGuest(ctx, numbers[i])
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		booking := s.newPlaceholder(numbers[i], guest.ID, event, &scheduleID, adminActorID, unitPrice)
		if err := s.writeSeatedPlaceholder(ctx, booking, guest.ID, d, scheduleID); err != nil {
			// Seat lost to a concurrent booking; drop its guest and move on.
			s.repo.User.DeleteGuestIfUnreferenced(ctx, guest.ID)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		bookings = append(bookings, booking)
		guests = append(guests, guest)
	}

	if len(bookings) == 0 && firstErr != nil {
		return nil, firstErr
	}

	s.log.Info("Pre-reserved seated bookings",
		zap.String("event_id", event.ID.String()),
		zap.String("schedule_id", scheduleID.String()),
		zap.Int("requested", len(details)),
		zap.Int("created", len(bookings)),
	)

	return s.toPreReserveResponse(bookings, guests), nil
}

func (s *preReserveService) writeSeatedPlaceholder(ctx context.Context, booking *entity.Booking, guestID uuid.UUID, d *entity.SeatDetail, scheduleID uuid.UUID) error {
	bookingSeat := &entity.BookingSeat{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: booking.CreatedAt,
		},
		BookingID:       booking.ID,
		UserID:          guestID,
		SeatID:          d.SeatID,
		ScheduleID:      scheduleID,
		ZoneName:        d.ZoneName,
		ZoneType:        d.ZoneType,
		SectionName:     d.SectionName,
		SectionPosition: d.SectionPosition,
		RowNumber:       d.RowNumber,
		SeatLabel:       d.Label,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin pre-reserve transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.Booking.CreateTx(ctx, tx, booking); err != nil {
		return fmt.Errorf("pre-reserve booking: %w", err)
	}

	if err := s.repo.BookingSeat.CreateBatchTx(ctx, tx, []*entity.BookingSeat{bookingSeat}); err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: seat %s is already reserved", apperrors.ErrConflict, d.Label)
		}
		return fmt.Errorf("pre-reserve booking seat: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit pre-reserve transaction: %w", err)
	}

	return nil
}

func (s *preReserveService) Assign(ctx context.Context, bookingID string, req *request.AssignBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Assign validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking ID %s", apperrors.ErrBadRequest, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("assign booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", apperrors.ErrNotFound, bookingID)
	}
	if !booking.IsPreReserved {
		return nil, fmt.Errorf("%w: booking %s is not pre-reserved", apperrors.ErrBadRequest, booking.BookingNumber)
	}

	previousOwnerID := booking.UserID

	owner, err := resolveOwner(ctx, s.repo.User, s.log, req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin assign transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.Booking.ReassignOwnerTx(ctx, tx, booking.ID, owner.ID); err != nil {
		return nil, fmt.Errorf("assign booking: %w", err)
	}
	if err := s.repo.BookingSeat.ReassignOwnerTx(ctx, tx, booking.ID, owner.ID); err != nil {
		return nil, fmt.Errorf("assign booking seats: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit assign transaction: %w", err)
	}

	booking.UserID = owner.ID
	booking.IsPreReserved = false

	// The delete re-checks ownership inside the statement, so a guest that
	// still holds other placeholders survives.
	if previousOwnerID != owner.ID {
		if _, err := s.repo.User.DeleteGuestIfUnreferenced(ctx, previousOwnerID); err != nil {
			s.log.Warn("Guest cleanup after assignment failed",
				zap.Error(err),
				zap.String("guest_id", previousOwnerID.String()),
			)
		}
	}

	s.log.Info("Booking assigned",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_number", booking.BookingNumber),
		zap.String("owner_id", owner.ID.String()),
	)

	seats, _ := s.repo.BookingSeat.FindByBookingID(ctx, booking.ID)
	resp := response.BookingToResponse(booking, seats)
	ownerResp := response.OwnerToResponse(owner)
	resp.Owner = &ownerResp
	return &resp, nil
}

func (s *preReserveService) AssignBulk(ctx context.Context, req *request.BulkAssignRequest) (*response.BulkAssignmentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Bulk assign validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	resp := &response.BulkAssignmentResponse{
		Results: make([]response.AssignmentResult, 0, len(req.Assignments)),
	}

	for _, item := range req.Assignments {
		result := response.AssignmentResult{BookingID: item.BookingID}

		booking, err := s.Assign(ctx, item.BookingID, &request.AssignBookingRequest{
			Name:  item.Name,
			Email: item.Email,
			Phone: item.Phone,
		})
		if err != nil {
			result.Error = err.Error()
			resp.FailedCount++
		} else {
			result.Success = true
			result.Booking = booking
			resp.SuccessCount++
		}

		resp.Results = append(resp.Results, result)
	}

	resp.Success = resp.FailedCount == 0

	s.log.Info("Bulk assignment finished",
		zap.Int("total", len(req.Assignments)),
		zap.Int("succeeded", resp.SuccessCount),
		zap.Int("failed", resp.FailedCount),
	)

	return resp, nil
}

func (s *preReserveService) CleanupGuests(ctx context.Context) (int64, error) {
	removed, err := s.repo.User.DeleteUnreferencedGuests(ctx)
	if err != nil {
		return 0, fmt.Errorf("cleanup guests: %w", err)
	}

	if removed > 0 {
		s.log.Info("Unreferenced guests removed", zap.Int64("count", removed))
	}

	return removed, nil
}

// ==================== HELPER METHODS ====================

// reserveNumbers generates n numbers disjoint from everything persisted.
// The existing set is loaded once; intra-batch uniqueness is tracked in
// memory by the generator.
func (s *preReserveService) reserveNumbers(ctx context.Context, n int) ([]string, error) {
	existing, err := s.repo.Booking.AllNumbers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing booking numbers: %w", err)
	}
	return s.numbers.GenerateBulk(n, existing), nil
}

func (s *preReserveService) createGuest(ctx context.Context, bookingNumber string) (*entity.User, error) {
	guest, err := newUser("Guest "+bookingNumber, nil, nil, true)
	if err != nil {
		return nil, err
	}
	if err := s.repo.User.Create(ctx, guest); err != nil {
		return nil, fmt.Errorf("create guest user: %w", err)
	}
	return guest, nil
}

func (s *preReserveService) newPlaceholder(number string, guestID uuid.UUID, event *entity.Event, scheduleID *uuid.UUID, adminActorID uuid.UUID, unitPrice float64) *entity.Booking {
	now := time.Now()
	currency := event.Currency
	if currency == "" {
		currency = s.currency
	}

	return &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingNumber:  number,
		UserID:         guestID,
		EventID:        event.ID,
		ScheduleID:     scheduleID,
		Quantity:       1,
		UnitPrice:      unitPrice,
		TotalPrice:     unitPrice,
		Currency:       currency,
		Status:         entity.BookingStatusPending,
		IsAdminBooking: true,
		IsPreReserved:  true,
		AdminActorID:   &adminActorID,
	}
}

func (s *preReserveService) toPreReserveResponse(bookings []*entity.Booking, guests []*entity.User) *response.PreReserveResponse {
	resp := &response.PreReserveResponse{
		Bookings: make([]response.BookingResponse, len(bookings)),
		Count:    len(bookings),
	}
	for i, booking := range bookings {
		bookingResp := response.BookingToResponse(booking, nil)
		ownerResp := response.OwnerToResponse(guests[i])
		bookingResp.Owner = &ownerResp
		resp.Bookings[i] = bookingResp
	}
	return resp
}
