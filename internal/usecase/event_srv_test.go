package usecase

import (
	"context"
	"testing"
	"time"

	"event-ticketing/internal/dto/request"
	"event-ticketing/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture()

		event, err := f.svc.Event.CreateEvent(ctx, &request.CreateEventRequest{
			Name:          "Summer Concert",
			Slug:          "summer-concert",
			OriginalPrice: floatPtr(90),
		})

		require.NoError(t, err)
		assert.Equal(t, "summer-concert", event.Slug)
		assert.True(t, event.IsActive)
		assert.Equal(t, "USD", event.Currency, "falls back to the configured default")
	})

	t.Run("DuplicateSlug", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Event.CreateEvent(ctx, &request.CreateEventRequest{
			Name: "Summer Concert",
			Slug: "summer-concert",
		})
		require.NoError(t, err)

		_, err = f.svc.Event.CreateEvent(ctx, &request.CreateEventRequest{
			Name: "Another Concert",
			Slug: "summer-concert",
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("LookupBySlugAndByID", func(t *testing.T) {
		f := newFixture()

		created, err := f.svc.Event.CreateEvent(ctx, &request.CreateEventRequest{
			Name: "Summer Concert",
			Slug: "summer-concert",
		})
		require.NoError(t, err)

		bySlug, err := f.svc.Event.GetEvent(ctx, "summer-concert")
		require.NoError(t, err)
		assert.Equal(t, created.ID, bySlug.ID)

		byID, err := f.svc.Event.GetEvent(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, byID.ID)

		_, err = f.svc.Event.GetEvent(ctx, "no-such-event")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestEventService_CreateSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("OverlapRejected", func(t *testing.T) {
		f := newFixture()
		event := f.addEvent(true, nil, nil)
		base := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

		first, err := f.svc.Event.CreateSchedule(ctx, &request.CreateScheduleRequest{
			EventID: event.ID.String(),
			StartAt: base.Format(time.RFC3339),
			EndAt:   base.Add(2 * time.Hour).Format(time.RFC3339),
		})
		require.NoError(t, err)
		assert.Equal(t, event.ID.String(), first.EventID)

		_, err = f.svc.Event.CreateSchedule(ctx, &request.CreateScheduleRequest{
			EventID: event.ID.String(),
			StartAt: base.Add(time.Hour).Format(time.RFC3339),
			EndAt:   base.Add(3 * time.Hour).Format(time.RFC3339),
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)

		// Back-to-back is fine.
		_, err = f.svc.Event.CreateSchedule(ctx, &request.CreateScheduleRequest{
			EventID: event.ID.String(),
			StartAt: base.Add(2 * time.Hour).Format(time.RFC3339),
			EndAt:   base.Add(4 * time.Hour).Format(time.RFC3339),
		})
		assert.NoError(t, err)
	})

	t.Run("EndBeforeStartRejected", func(t *testing.T) {
		f := newFixture()
		event := f.addEvent(true, nil, nil)
		base := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

		_, err := f.svc.Event.CreateSchedule(ctx, &request.CreateScheduleRequest{
			EventID: event.ID.String(),
			StartAt: base.Format(time.RFC3339),
			EndAt:   base.Add(-time.Hour).Format(time.RFC3339),
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("MalformedTimestamp", func(t *testing.T) {
		f := newFixture()
		event := f.addEvent(true, nil, nil)

		_, err := f.svc.Event.CreateSchedule(ctx, &request.CreateScheduleRequest{
			EventID: event.ID.String(),
			StartAt: "tomorrow evening",
			EndAt:   "later",
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}

func TestEventService_UpsertZonePricing(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	event := f.addEvent(true, nil, nil)
	schedule := f.addSchedule(event.ID, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
	zoneID := f.addSeat(uuid.New(), 1, 1).ZoneID
	resolver := NewPriceResolver(f.repo.ZonePricing, zap.NewNop())

	err := f.svc.Event.UpsertZonePricing(ctx, &request.UpsertZonePricingRequest{
		ZoneID:     zoneID.String(),
		EventID:    event.ID.String(),
		ScheduleID: schedule.ID.String(),
		Price:      65,
	})
	require.NoError(t, err)

	price, err := resolver.ResolveZonePrice(ctx, zoneID, event.ID, schedule.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 65.0, price)

	// A second upsert replaces the price.
	err = f.svc.Event.UpsertZonePricing(ctx, &request.UpsertZonePricingRequest{
		ZoneID:     zoneID.String(),
		EventID:    event.ID.String(),
		ScheduleID: schedule.ID.String(),
		Price:      70,
	})
	require.NoError(t, err)

	price, err = resolver.ResolveZonePrice(ctx, zoneID, event.ID, schedule.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 70.0, price)
}
