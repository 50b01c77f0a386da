package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// In-memory fakes standing in for the pgx repositories. They enforce the
// same uniqueness rules the schema does, returning a pgconn unique-violation
// error so the services' conflict handling is exercised for real.

type memStore struct {
	events         map[uuid.UUID]*entity.Event
	schedules      map[uuid.UUID]*entity.Schedule
	seats          map[uuid.UUID]*entity.SeatDetail
	zonePricing    map[string]*entity.ZonePricing
	bookings       map[uuid.UUID]*entity.Booking
	bookingSeats   []*entity.BookingSeat
	users          map[uuid.UUID]*entity.User
	workers        map[string]*entity.ScheduleWorker
	userCreates    int
	deletedGuests  []uuid.UUID
	failNextExists bool
}

func newMemStore() *memStore {
	return &memStore{
		events:      make(map[uuid.UUID]*entity.Event),
		schedules:   make(map[uuid.UUID]*entity.Schedule),
		seats:       make(map[uuid.UUID]*entity.SeatDetail),
		zonePricing: make(map[string]*entity.ZonePricing),
		bookings:    make(map[uuid.UUID]*entity.Booking),
		users:       make(map[uuid.UUID]*entity.User),
		workers:     make(map[string]*entity.ScheduleWorker),
	}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func pricingKey(zoneID, eventID, scheduleID uuid.UUID) string {
	return zoneID.String() + "|" + eventID.String() + "|" + scheduleID.String()
}

func workerKey(scheduleID, userID uuid.UUID) string {
	return scheduleID.String() + "|" + userID.String()
}

// ==================== EVENT ====================

type memEventRepo struct{ store *memStore }

func (r *memEventRepo) Create(ctx context.Context, event *entity.Event) error {
	r.store.events[event.ID] = event
	return nil
}

func (r *memEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.store.events[id], nil
}

func (r *memEventRepo) FindByIDOrSlug(ctx context.Context, idOrSlug string) (*entity.Event, error) {
	if id, err := uuid.Parse(idOrSlug); err == nil {
		return r.store.events[id], nil
	}
	for _, event := range r.store.events {
		if event.Slug == idOrSlug {
			return event, nil
		}
	}
	return nil, nil
}

func (r *memEventRepo) List(ctx context.Context, limit, offset int) ([]*entity.Event, error) {
	var events []*entity.Event
	for _, event := range r.store.events {
		events = append(events, event)
	}
	return events, nil
}

// ==================== SCHEDULE ====================

type memScheduleRepo struct{ store *memStore }

func (r *memScheduleRepo) Create(ctx context.Context, schedule *entity.Schedule) error {
	r.store.schedules[schedule.ID] = schedule
	return nil
}

func (r *memScheduleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	return r.store.schedules[id], nil
}

func (r *memScheduleRepo) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Schedule, error) {
	var schedules []*entity.Schedule
	for _, schedule := range r.store.schedules {
		if schedule.EventID == eventID {
			schedules = append(schedules, schedule)
		}
	}
	return schedules, nil
}

func (r *memScheduleRepo) HasOverlap(ctx context.Context, eventID uuid.UUID, startAt, endAt time.Time, excludeID *uuid.UUID) (bool, error) {
	for _, schedule := range r.store.schedules {
		if schedule.EventID != eventID {
			continue
		}
		if excludeID != nil && schedule.ID == *excludeID {
			continue
		}
		if schedule.StartAt.Before(endAt) && schedule.EndAt.After(startAt) {
			return true, nil
		}
	}
	return false, nil
}

// ==================== SEAT ====================

type memSeatRepo struct{ store *memStore }

func (r *memSeatRepo) FindDetailsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.SeatDetail, error) {
	var details []*entity.SeatDetail
	for _, id := range ids {
		if d, ok := r.store.seats[id]; ok {
			details = append(details, d)
		}
	}
	return details, nil
}

// ==================== ZONE PRICING ====================

type memZonePricingRepo struct{ store *memStore }

func (r *memZonePricingRepo) FindPricing(ctx context.Context, zoneID, eventID, scheduleID uuid.UUID) (*entity.ZonePricing, error) {
	return r.store.zonePricing[pricingKey(zoneID, eventID, scheduleID)], nil
}

func (r *memZonePricingRepo) Upsert(ctx context.Context, pricing *entity.ZonePricing) error {
	r.store.zonePricing[pricingKey(pricing.ZoneID, pricing.EventID, pricing.ScheduleID)] = pricing
	return nil
}

// ==================== BOOKING ====================

type memBookingRepo struct{ store *memStore }

func (r *memBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.store.bookings[id], nil
}

func (r *memBookingRepo) FindByNumber(ctx context.Context, number string) (*entity.Booking, error) {
	for _, booking := range r.store.bookings {
		if booking.BookingNumber == number {
			return booking, nil
		}
	}
	return nil, nil
}

func (r *memBookingRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	if r.store.failNextExists {
		r.store.failNextExists = false
		return false, errors.New("lookup unavailable")
	}
	booking, _ := r.FindByNumber(ctx, number)
	return booking != nil, nil
}

func (r *memBookingRepo) AllNumbers(ctx context.Context) (map[string]struct{}, error) {
	numbers := make(map[string]struct{})
	for _, booking := range r.store.bookings {
		numbers[booking.BookingNumber] = struct{}{}
	}
	return numbers, nil
}

func (r *memBookingRepo) List(ctx context.Context, filter repository.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for _, booking := range r.store.bookings {
		if matchesFilter(booking, filter) {
			bookings = append(bookings, booking)
		}
	}
	return bookings, nil
}

func (r *memBookingRepo) Count(ctx context.Context, filter repository.BookingFilter) (int64, error) {
	bookings, _ := r.List(ctx, filter, 0, 0)
	return int64(len(bookings)), nil
}

func matchesFilter(booking *entity.Booking, filter repository.BookingFilter) bool {
	if filter.Status != nil && booking.Status != *filter.Status {
		return false
	}
	if filter.EventID != nil && booking.EventID != *filter.EventID {
		return false
	}
	if filter.ScheduleID != nil && (booking.ScheduleID == nil || *booking.ScheduleID != *filter.ScheduleID) {
		return false
	}
	if filter.UserID != nil && booking.UserID != *filter.UserID {
		return false
	}
	if filter.IsAdminBooking != nil && booking.IsAdminBooking != *filter.IsAdminBooking {
		return false
	}
	if filter.IsPreReserved != nil && booking.IsPreReserved != *filter.IsPreReserved {
		return false
	}
	if filter.Search != "" && !strings.Contains(booking.BookingNumber, filter.Search) {
		return false
	}
	return true
}

func (r *memBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, booking := range r.store.bookings {
		if booking.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	booking, ok := r.store.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}
	booking.Status = status
	return nil
}

func (r *memBookingRepo) UpdateUsedQuantity(ctx context.Context, bookingID uuid.UUID, usedQuantity int, status *entity.BookingStatus) error {
	booking, ok := r.store.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}
	booking.UsedQuantity = &usedQuantity
	if status != nil {
		booking.Status = *status
	}
	return nil
}

func (r *memBookingRepo) CreateTx(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error {
	for _, existing := range r.store.bookings {
		if existing.BookingNumber == booking.BookingNumber {
			return uniqueViolation("bookings_booking_number_key")
		}
	}
	r.store.bookings[booking.ID] = booking
	recordUndo(tx, func() { delete(r.store.bookings, booking.ID) })
	return nil
}

func (r *memBookingRepo) CancelTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID, reason string, at time.Time) error {
	booking, ok := r.store.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}
	prevStatus, prevReason, prevAt := booking.Status, booking.CancellationReason, booking.CancelledAt
	booking.Status = entity.BookingStatusCancelled
	booking.CancellationReason = &reason
	booking.CancelledAt = &at
	recordUndo(tx, func() {
		booking.Status = prevStatus
		booking.CancellationReason = prevReason
		booking.CancelledAt = prevAt
	})
	return nil
}

func (r *memBookingRepo) ReassignOwnerTx(ctx context.Context, tx pgx.Tx, bookingID, newUserID uuid.UUID) error {
	booking, ok := r.store.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}
	prevUserID, prevPreReserved := booking.UserID, booking.IsPreReserved
	booking.UserID = newUserID
	booking.IsPreReserved = false
	recordUndo(tx, func() {
		booking.UserID = prevUserID
		booking.IsPreReserved = prevPreReserved
	})
	return nil
}

// ==================== BOOKING SEAT ====================

type memBookingSeatRepo struct{ store *memStore }

func (r *memBookingSeatRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingSeat, error) {
	var seats []*entity.BookingSeat
	for _, bs := range r.store.bookingSeats {
		if bs.BookingID == bookingID {
			seats = append(seats, bs)
		}
	}
	return seats, nil
}

func (r *memBookingSeatRepo) FindReservedSeatIDs(ctx context.Context, seatIDs []uuid.UUID, scheduleID uuid.UUID) ([]uuid.UUID, error) {
	requested := make(map[uuid.UUID]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		requested[id] = struct{}{}
	}
	var reserved []uuid.UUID
	for _, bs := range r.store.bookingSeats {
		if bs.ScheduleID != scheduleID {
			continue
		}
		if _, ok := requested[bs.SeatID]; ok {
			reserved = append(reserved, bs.SeatID)
		}
	}
	return reserved, nil
}

func (r *memBookingSeatRepo) CreateBatchTx(ctx context.Context, tx pgx.Tx, bookingSeats []*entity.BookingSeat) error {
	for _, bs := range bookingSeats {
		for _, existing := range r.store.bookingSeats {
			if existing.SeatID == bs.SeatID && existing.ScheduleID == bs.ScheduleID {
				return uniqueViolation("booking_seats_seat_id_schedule_id_key")
			}
		}
	}
	prevLen := len(r.store.bookingSeats)
	r.store.bookingSeats = append(r.store.bookingSeats, bookingSeats...)
	recordUndo(tx, func() { r.store.bookingSeats = r.store.bookingSeats[:prevLen] })
	return nil
}

func (r *memBookingSeatRepo) DeleteByBookingIDTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID) error {
	var removed []*entity.BookingSeat
	kept := r.store.bookingSeats[:0]
	for _, bs := range r.store.bookingSeats {
		if bs.BookingID != bookingID {
			kept = append(kept, bs)
		} else {
			removed = append(removed, bs)
		}
	}
	r.store.bookingSeats = kept
	recordUndo(tx, func() { r.store.bookingSeats = append(r.store.bookingSeats, removed...) })
	return nil
}

func (r *memBookingSeatRepo) ReassignOwnerTx(ctx context.Context, tx pgx.Tx, bookingID, newUserID uuid.UUID) error {
	for _, bs := range r.store.bookingSeats {
		if bs.BookingID == bookingID {
			row, prevUserID := bs, bs.UserID
			row.UserID = newUserID
			recordUndo(tx, func() { row.UserID = prevUserID })
		}
	}
	return nil
}

// ==================== USER ====================

type memUserRepo struct{ store *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.users[user.ID] = user
	r.store.userCreates++
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.store.users[id], nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Email != nil && strings.EqualFold(*user.Email, email) {
			return user, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Phone != nil && *user.Phone == phone {
			return user, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) DeleteGuestIfUnreferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	user, ok := r.store.users[id]
	if !ok || !user.IsGuestUser {
		return false, nil
	}
	for _, booking := range r.store.bookings {
		if booking.UserID == id {
			return false, nil
		}
	}
	delete(r.store.users, id)
	r.store.deletedGuests = append(r.store.deletedGuests, id)
	return true, nil
}

func (r *memUserRepo) DeleteUnreferencedGuests(ctx context.Context) (int64, error) {
	var removed int64
	for id, user := range r.store.users {
		if !user.IsGuestUser {
			continue
		}
		if deleted, _ := r.DeleteGuestIfUnreferenced(ctx, id); deleted {
			removed++
		}
	}
	return removed, nil
}

// ==================== SCHEDULE WORKER ====================

type memScheduleWorkerRepo struct{ store *memStore }

func (r *memScheduleWorkerRepo) Insert(ctx context.Context, assignment *entity.ScheduleWorker) error {
	key := workerKey(assignment.ScheduleID, assignment.UserID)
	if _, exists := r.store.workers[key]; exists {
		return fmt.Errorf("insert schedule worker: %w", uniqueViolation("schedule_workers_schedule_id_user_id_key"))
	}
	r.store.workers[key] = assignment
	return nil
}

func (r *memScheduleWorkerRepo) FindByScheduleAndUser(ctx context.Context, scheduleID, userID uuid.UUID) (*entity.ScheduleWorker, error) {
	return r.store.workers[workerKey(scheduleID, userID)], nil
}

func (r *memScheduleWorkerRepo) FindBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]*entity.ScheduleWorker, error) {
	var assignments []*entity.ScheduleWorker
	for _, assignment := range r.store.workers {
		if assignment.ScheduleID == scheduleID {
			assignments = append(assignments, assignment)
		}
	}
	return assignments, nil
}

// ==================== DB / TX ====================

// stubTx satisfies pgx.Tx. The mem repos journal an undo closure per write
// via recordUndo; Rollback before Commit replays the journal in reverse, so
// a failed transaction leaves the store exactly as a real rollback would.
type stubTx struct {
	undo      []func()
	committed bool
}

// recordUndo registers the inverse of a write on the transaction it ran in.
func recordUndo(tx pgx.Tx, undo func()) {
	if st, ok := tx.(*stubTx); ok {
		st.undo = append(st.undo, undo)
	}
}

func (t *stubTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *stubTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *stubTx) Rollback(ctx context.Context) error {
	if t.committed {
		return nil
	}
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
	return nil
}
func (t *stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not implemented")
}
func (t *stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *stubTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *stubTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("not implemented")
}
func (t *stubTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not implemented")
}
func (t *stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}
func (t *stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *stubTx) Conn() *pgx.Conn                                               { return nil }

type stubDB struct {
	failNextBegin bool
}

func (db *stubDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected direct query")
}
func (db *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (db *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("unexpected direct exec")
}
func (db *stubDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if db.failNextBegin {
		db.failNextBegin = false
		return nil, errors.New("connection lost")
	}
	return &stubTx{}, nil
}
func (db *stubDB) Ping(ctx context.Context) error            { return nil }
func (db *stubDB) Close()                                    {}

// ==================== FIXTURE ====================

type fixture struct {
	store *memStore
	db    *stubDB
	repo  *repository.Repository
	svc   *Service
}

func newFixture() *fixture {
	store := newMemStore()
	repo := &repository.Repository{
		Event:          &memEventRepo{store: store},
		Schedule:       &memScheduleRepo{store: store},
		Seat:           &memSeatRepo{store: store},
		ZonePricing:    &memZonePricingRepo{store: store},
		Booking:        &memBookingRepo{store: store},
		BookingSeat:    &memBookingSeatRepo{store: store},
		User:           &memUserRepo{store: store},
		ScheduleWorker: &memScheduleWorkerRepo{store: store},
	}

	db := &stubDB{}
	config := &utils.Config{
		Booking: utils.BookingConfig{
			DefaultCurrency: "USD",
			NumberLength:    8,
			NumberAttempts:  5,
		},
	}

	return &fixture{
		store: store,
		db:    db,
		repo:  repo,
		svc:   NewService(db, repo, config, zap.NewNop()),
	}
}

func (f *fixture) addEvent(hasSeats bool, original, discounted *float64) *entity.Event {
	now := time.Now()
	event := &entity.Event{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name: "Test Event", Slug: "test-event-" + uuid.NewString()[:8],
		HasSeats:        hasSeats,
		OriginalPrice:   original,
		DiscountedPrice: discounted,
		Currency:        "USD",
		IsActive:        true,
	}
	f.store.events[event.ID] = event
	return event
}

func (f *fixture) addSchedule(eventID uuid.UUID, startAt, endAt time.Time) *entity.Schedule {
	now := time.Now()
	schedule := &entity.Schedule{
		Base:    entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		EventID: eventID,
		StartAt: startAt,
		EndAt:   endAt,
	}
	f.store.schedules[schedule.ID] = schedule
	return schedule
}

func (f *fixture) addSeat(zoneID uuid.UUID, row, number int) *entity.SeatDetail {
	seat := &entity.SeatDetail{
		SeatID:          uuid.New(),
		RowNumber:       row,
		SeatNumber:      number,
		Label:           fmt.Sprintf("R%d-S%d", row, number),
		SectionID:       uuid.New(),
		SectionName:     "Center",
		SectionPosition: entity.SectionPositionCenter,
		ZoneID:          zoneID,
		ZoneName:        "Regular",
		ZoneType:        entity.ZoneTypeRegular,
	}
	f.store.seats[seat.SeatID] = seat
	return seat
}

func (f *fixture) addZonePricing(zoneID, eventID, scheduleID uuid.UUID, price float64) {
	now := time.Now()
	f.store.zonePricing[pricingKey(zoneID, eventID, scheduleID)] = &entity.ZonePricing{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		ZoneID:     zoneID,
		EventID:    eventID,
		ScheduleID: scheduleID,
		Price:      price,
	}
}

func (f *fixture) addUser(name string, email, phone *string, isGuest bool) *entity.User {
	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: "x",
		IsGuestUser:  isGuest,
	}
	f.store.users[user.ID] = user
	return user
}

func strPtr(s string) *string     { return &s }
func floatPtr(v float64) *float64 { return &v }
