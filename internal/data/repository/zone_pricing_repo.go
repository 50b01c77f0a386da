package repository

import (
	"context"
	"fmt"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ZonePricingRepository interface {
	// FindPricing returns the price row for (zone, event, schedule) or nil.
	FindPricing(ctx context.Context, zoneID, eventID, scheduleID uuid.UUID) (*entity.ZonePricing, error)
	Upsert(ctx context.Context, pricing *entity.ZonePricing) error
}

type zonePricingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewZonePricingRepository(db database.PgxIface, log *zap.Logger) ZonePricingRepository {
	return &zonePricingRepository{
		db:  db,
		log: log.With(zap.String("repository", "zone_pricing")),
	}
}

func (r *zonePricingRepository) FindPricing(ctx context.Context, zoneID, eventID, scheduleID uuid.UUID) (*entity.ZonePricing, error) {
	query := `
		SELECT id, zone_id, event_id, schedule_id, price, created_at, updated_at, deleted_at
		FROM zone_pricings
		WHERE zone_id = $1 AND event_id = $2 AND schedule_id = $3 AND deleted_at IS NULL
	`

	var pricing entity.ZonePricing
	err := r.db.QueryRow(ctx, query, zoneID, eventID, scheduleID).Scan(
		&pricing.ID,
		&pricing.ZoneID,
		&pricing.EventID,
		&pricing.ScheduleID,
		&pricing.Price,
		&pricing.CreatedAt,
		&pricing.UpdatedAt,
		&pricing.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find zone pricing",
			zap.Error(err),
			zap.String("zone_id", zoneID.String()),
			zap.String("event_id", eventID.String()),
			zap.String("schedule_id", scheduleID.String()),
		)
		return nil, fmt.Errorf("find zone pricing for zone %s: %w", zoneID.String(), err)
	}

	return &pricing, nil
}

func (r *zonePricingRepository) Upsert(ctx context.Context, pricing *entity.ZonePricing) error {
	query := `
		INSERT INTO zone_pricings (id, zone_id, event_id, schedule_id, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (zone_id, event_id, schedule_id)
		DO UPDATE SET price = EXCLUDED.price, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		pricing.ID,
		pricing.ZoneID,
		pricing.EventID,
		pricing.ScheduleID,
		pricing.Price,
		pricing.CreatedAt,
		pricing.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert zone pricing",
			zap.Error(err),
			zap.String("zone_id", pricing.ZoneID.String()),
		)
		return fmt.Errorf("upsert zone pricing for zone %s: %w", pricing.ZoneID.String(), err)
	}

	return nil
}
