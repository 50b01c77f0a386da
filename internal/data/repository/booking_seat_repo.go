package repository

import (
	"context"
	"fmt"
	"strings"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jackc/pgx/v5"
)

type BookingSeatRepository interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingSeat, error)
	// FindReservedSeatIDs returns which of seatIDs already carry a
	// reservation row for the schedule. Advisory: the unique constraint on
	// (seat_id, schedule_id) is what actually prevents double allocation.
	FindReservedSeatIDs(ctx context.Context, seatIDs []uuid.UUID, scheduleID uuid.UUID) ([]uuid.UUID, error)

	// Transaction methods
	CreateBatchTx(ctx context.Context, tx pgx.Tx, bookingSeats []*entity.BookingSeat) error
	DeleteByBookingIDTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID) error
	ReassignOwnerTx(ctx context.Context, tx pgx.Tx, bookingID, newUserID uuid.UUID) error
}

type bookingSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingSeatRepository(db database.PgxIface, log *zap.Logger) BookingSeatRepository {
	return &bookingSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_seat")),
	}
}

// CreateBatchTx inserts every reservation row in one statement so a unique
// violation on any (seat_id, schedule_id) pair fails the whole batch and
// the surrounding transaction, never a partial write.
func (r *bookingSeatRepository) CreateBatchTx(ctx context.Context, tx pgx.Tx, bookingSeats []*entity.BookingSeat) error {
	if len(bookingSeats) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO booking_seats (id, booking_id, user_id, seat_id, schedule_id,
			zone_name, zone_type, section_name, section_position, row_number, seat_label, created_at)
		VALUES `)

	args := make([]any, 0, len(bookingSeats)*12)
	for i, bs := range bookingSeats {
		if i > 0 {
			sb.WriteString(",")
		}
		base := i * 12
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10, base+11, base+12))
		args = append(args,
			bs.ID, bs.BookingID, bs.UserID, bs.SeatID, bs.ScheduleID,
			bs.ZoneName, bs.ZoneType, bs.SectionName, bs.SectionPosition, bs.RowNumber, bs.SeatLabel, bs.CreatedAt,
		)
	}

	_, err := tx.Exec(ctx, sb.String(), args...)
	if err != nil {
		r.log.Error("Failed to create booking seats",
			zap.Error(err),
			zap.String("booking_id", bookingSeats[0].BookingID.String()),
			zap.Int("seat_count", len(bookingSeats)),
		)
		return fmt.Errorf("create booking seats for booking %s: %w",
			bookingSeats[0].BookingID.String(), err)
	}

	return nil
}

func (r *bookingSeatRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingSeat, error) {
	query := `
		SELECT id, booking_id, user_id, seat_id, schedule_id,
		       zone_name, zone_type, section_name, section_position, row_number, seat_label, created_at
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY row_number, seat_label
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking seats by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find booking seats by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var bookingSeats []*entity.BookingSeat
	for rows.Next() {
		var bs entity.BookingSeat
		err := rows.Scan(
			&bs.ID,
			&bs.BookingID,
			&bs.UserID,
			&bs.SeatID,
			&bs.ScheduleID,
			&bs.ZoneName,
			&bs.ZoneType,
			&bs.SectionName,
			&bs.SectionPosition,
			&bs.RowNumber,
			&bs.SeatLabel,
			&bs.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking seat row", zap.Error(err))
			return nil, fmt.Errorf("scan booking seat row: %w", err)
		}
		bookingSeats = append(bookingSeats, &bs)
	}

	return bookingSeats, nil
}

func (r *bookingSeatRepository) FindReservedSeatIDs(ctx context.Context, seatIDs []uuid.UUID, scheduleID uuid.UUID) ([]uuid.UUID, error) {
	if len(seatIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT seat_id
		FROM booking_seats
		WHERE seat_id = ANY($1) AND schedule_id = $2
	`

	rows, err := r.db.Query(ctx, query, seatIDs, scheduleID)
	if err != nil {
		r.log.Error("Failed to find reserved seats",
			zap.Error(err),
			zap.String("schedule_id", scheduleID.String()),
		)
		return nil, fmt.Errorf("find reserved seats for schedule %s: %w", scheduleID.String(), err)
	}
	defer rows.Close()

	var reserved []uuid.UUID
	for rows.Next() {
		var seatID uuid.UUID
		if err := rows.Scan(&seatID); err != nil {
			r.log.Error("Failed to scan seat ID row", zap.Error(err))
			return nil, fmt.Errorf("scan seat ID row: %w", err)
		}
		reserved = append(reserved, seatID)
	}

	return reserved, nil
}

// DeleteByBookingIDTx releases a cancelled booking's seats. Run in the same
// transaction as the status change so no partial state is observable.
func (r *bookingSeatRepository) DeleteByBookingIDTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID) error {
	query := `DELETE FROM booking_seats WHERE booking_id = $1`

	_, err := tx.Exec(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to delete booking seats by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("delete booking seats by booking ID %s: %w", bookingID.String(), err)
	}

	return nil
}

func (r *bookingSeatRepository) ReassignOwnerTx(ctx context.Context, tx pgx.Tx, bookingID, newUserID uuid.UUID) error {
	query := `UPDATE booking_seats SET user_id = $2 WHERE booking_id = $1`

	_, err := tx.Exec(ctx, query, bookingID, newUserID)
	if err != nil {
		r.log.Error("Failed to reassign booking seats owner",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("new_user_id", newUserID.String()),
		)
		return fmt.Errorf("reassign booking seats for booking %s: %w", bookingID.String(), err)
	}

	return nil
}
