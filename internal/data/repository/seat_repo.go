package repository

import (
	"context"
	"fmt"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SeatRepository interface {
	// FindDetailsByIDs returns the seats joined with their section and zone.
	// The result may be shorter than ids; callers diff to find missing seats.
	FindDetailsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.SeatDetail, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) FindDetailsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.SeatDetail, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT s.id, s.row_number, s.seat_number, s.label,
		       sec.id, sec.name, sec.position,
		       z.id, z.name, z.zone_type
		FROM seats s
		INNER JOIN sections sec ON s.section_id = sec.id
		INNER JOIN zones z ON sec.zone_id = z.id
		WHERE s.id = ANY($1) AND s.deleted_at IS NULL
		ORDER BY z.name, sec.name, s.row_number, s.seat_number
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find seat details",
			zap.Error(err),
			zap.Int("seat_count", len(ids)),
		)
		return nil, fmt.Errorf("find seat details: %w", err)
	}
	defer rows.Close()

	var details []*entity.SeatDetail
	for rows.Next() {
		var d entity.SeatDetail
		err := rows.Scan(
			&d.SeatID,
			&d.RowNumber,
			&d.SeatNumber,
			&d.Label,
			&d.SectionID,
			&d.SectionName,
			&d.SectionPosition,
			&d.ZoneID,
			&d.ZoneName,
			&d.ZoneType,
		)
		if err != nil {
			r.log.Error("Failed to scan seat detail row", zap.Error(err))
			return nil, fmt.Errorf("scan seat detail row: %w", err)
		}
		details = append(details, &d)
	}

	return details, nil
}
