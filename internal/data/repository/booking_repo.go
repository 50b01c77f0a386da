package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingFilter narrows List/Count. Nil fields are ignored. Search matches
// the booking number and the owner's name, email and phone.
type BookingFilter struct {
	Status         *entity.BookingStatus
	EventID        *uuid.UUID
	ScheduleID     *uuid.UUID
	UserID         *uuid.UUID
	IsAdminBooking *bool
	IsPreReserved  *bool
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
	Search         string
}

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByNumber(ctx context.Context, number string) (*entity.Booking, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	// AllNumbers loads every persisted booking number, used to seed bulk
	// number generation.
	AllNumbers(ctx context.Context) (map[string]struct{}, error)
	List(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	UpdateUsedQuantity(ctx context.Context, bookingID uuid.UUID, usedQuantity int, status *entity.BookingStatus) error

	// Transaction methods
	CreateTx(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error
	CancelTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID, reason string, at time.Time) error
	ReassignOwnerTx(ctx context.Context, tx pgx.Tx, bookingID, newUserID uuid.UUID) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `b.id, b.booking_number, b.user_id, b.event_id, b.schedule_id, b.quantity,
	b.unit_price, b.total_price, b.currency, b.status, b.is_admin_booking, b.is_pre_reserved,
	b.admin_actor_id, b.cancellation_reason, b.cancelled_at, b.used_quantity, b.created_at, b.updated_at, b.deleted_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.BookingNumber,
		&booking.UserID,
		&booking.EventID,
		&booking.ScheduleID,
		&booking.Quantity,
		&booking.UnitPrice,
		&booking.TotalPrice,
		&booking.Currency,
		&booking.Status,
		&booking.IsAdminBooking,
		&booking.IsPreReserved,
		&booking.AdminActorID,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&booking.UsedQuantity,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) CreateTx(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_number, user_id, event_id, schedule_id, quantity,
			unit_price, total_price, currency, status, is_admin_booking, is_pre_reserved,
			admin_actor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := tx.Exec(ctx, query,
		booking.ID,
		booking.BookingNumber,
		booking.UserID,
		booking.EventID,
		booking.ScheduleID,
		booking.Quantity,
		booking.UnitPrice,
		booking.TotalPrice,
		booking.Currency,
		booking.Status,
		booking.IsAdminBooking,
		booking.IsPreReserved,
		booking.AdminActorID,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_number", booking.BookingNumber),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingNumber, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1 AND b.deleted_at IS NULL`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByNumber(ctx context.Context, number string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.booking_number = $1 AND b.deleted_at IS NULL`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, number))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by number",
			zap.Error(err),
			zap.String("booking_number", number),
		)
		return nil, fmt.Errorf("find booking by number %s: %w", number, err)
	}

	return booking, nil
}

func (r *bookingRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE booking_number = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, number).Scan(&exists); err != nil {
		r.log.Error("Failed to check booking number existence",
			zap.Error(err),
			zap.String("booking_number", number),
		)
		return false, fmt.Errorf("check booking number %s: %w", number, err)
	}

	return exists, nil
}

func (r *bookingRepository) AllNumbers(ctx context.Context) (map[string]struct{}, error) {
	query := `SELECT booking_number FROM bookings`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to load booking numbers", zap.Error(err))
		return nil, fmt.Errorf("load booking numbers: %w", err)
	}
	defer rows.Close()

	numbers := make(map[string]struct{})
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			r.log.Error("Failed to scan booking number row", zap.Error(err))
			return nil, fmt.Errorf("scan booking number row: %w", err)
		}
		numbers[number] = struct{}{}
	}

	return numbers, nil
}

// buildFilter translates a BookingFilter into WHERE conditions. Positional
// args continue from the provided slice so limit/offset can follow.
func buildFilter(filter BookingFilter, args []any) (string, []any) {
	conds := []string{"b.deleted_at IS NULL"}

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != nil {
		add("b.status = $%d", *filter.Status)
	}
	if filter.EventID != nil {
		add("b.event_id = $%d", *filter.EventID)
	}
	if filter.ScheduleID != nil {
		add("b.schedule_id = $%d", *filter.ScheduleID)
	}
	if filter.UserID != nil {
		add("b.user_id = $%d", *filter.UserID)
	}
	if filter.IsAdminBooking != nil {
		add("b.is_admin_booking = $%d", *filter.IsAdminBooking)
	}
	if filter.IsPreReserved != nil {
		add("b.is_pre_reserved = $%d", *filter.IsPreReserved)
	}
	if filter.CreatedFrom != nil {
		add("b.created_at >= $%d", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		add("b.created_at <= $%d", *filter.CreatedTo)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(b.booking_number ILIKE $%d OR u.name ILIKE $%d OR u.email ILIKE $%d OR u.phone ILIKE $%d)",
			n, n, n, n))
	}

	return strings.Join(conds, " AND "), args
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	where, args := buildFilter(filter, nil)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM bookings b
		INNER JOIN users u ON b.user_id = u.id
		WHERE %s
		ORDER BY b.created_at DESC
		LIMIT $%d OFFSET $%d
	`, bookingColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	where, args := buildFilter(filter, nil)

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM bookings b
		INNER JOIN users u ON b.user_id = u.id
		WHERE %s
	`, where)

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1 AND deleted_at IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateUsedQuantity(ctx context.Context, bookingID uuid.UUID, usedQuantity int, status *entity.BookingStatus) error {
	query := `
		UPDATE bookings
		SET used_quantity = $2, status = COALESCE($3, status), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, bookingID, usedQuantity, status)
	if err != nil {
		r.log.Error("Failed to update booking used quantity",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.Int("used_quantity", usedQuantity),
		)
		return fmt.Errorf("update booking %s used quantity: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) CancelTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID, reason string, at time.Time) error {
	query := `
		UPDATE bookings
		SET status = $2, cancellation_reason = $3, cancelled_at = $4, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := tx.Exec(ctx, query, bookingID, entity.BookingStatusCancelled, reason, at)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("cancel booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) ReassignOwnerTx(ctx context.Context, tx pgx.Tx, bookingID, newUserID uuid.UUID) error {
	query := `
		UPDATE bookings
		SET user_id = $2, is_pre_reserved = FALSE, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := tx.Exec(ctx, query, bookingID, newUserID)
	if err != nil {
		r.log.Error("Failed to reassign booking owner",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("new_user_id", newUserID.String()),
		)
		return fmt.Errorf("reassign booking %s owner: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}
