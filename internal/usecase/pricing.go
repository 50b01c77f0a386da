package usecase

import (
	"context"
	"fmt"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/pkg/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PriceResolver computes unit prices at booking time. Resolved prices are
// snapshotted onto the booking; later pricing edits never touch sold rows.
type PriceResolver struct {
	pricing repository.ZonePricingRepository
	log     *zap.Logger
}

func NewPriceResolver(pricing repository.ZonePricingRepository, log *zap.Logger) *PriceResolver {
	return &PriceResolver{
		pricing: pricing,
		log:     log.With(zap.String("service", "pricing")),
	}
}

// ResolveFlatPrice prices a non-seated booking: explicit override first,
// then the event's discounted price, then its original price, then zero.
// Zero is a legitimate price (free events), not an error.
func (r *PriceResolver) ResolveFlatPrice(event *entity.Event, override *float64) float64 {
	if override != nil {
		return *override
	}
	if event.DiscountedPrice != nil {
		return *event.DiscountedPrice
	}
	if event.OriginalPrice != nil {
		return *event.OriginalPrice
	}
	return 0
}

// ResolveZonePrice prices a seated booking from the (zone, event, schedule)
// pricing row unless an override is given. A missing row without an override
// is a configuration error, not a fallback-to-zero.
//
// Multi-seat batches are priced by the first seat's zone; mixed-zone batches
// should be split into separate bookings by the caller.
func (r *PriceResolver) ResolveZonePrice(ctx context.Context, zoneID, eventID, scheduleID uuid.UUID, override *float64) (float64, error) {
	if override != nil {
		return *override, nil
	}

	pricing, err := r.pricing.FindPricing(ctx, zoneID, eventID, scheduleID)
	if err != nil {
		return 0, fmt.Errorf("resolve zone price: %w", err)
	}
	if pricing == nil {
		r.log.Warn("Zone pricing not configured",
			zap.String("zone_id", zoneID.String()),
			zap.String("event_id", eventID.String()),
			zap.String("schedule_id", scheduleID.String()),
		)
		return 0, fmt.Errorf("%w: zone pricing not configured for zone %s", apperrors.ErrBadRequest, zoneID.String())
	}

	return pricing.Price, nil
}
