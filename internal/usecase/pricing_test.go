package usecase

import (
	"context"
	"testing"

	"event-ticketing/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPriceResolver_ResolveFlatPrice(t *testing.T) {
	f := newFixture()
	resolver := NewPriceResolver(f.repo.ZonePricing, zap.NewNop())

	t.Run("OverrideWins", func(t *testing.T) {
		event := f.addEvent(false, floatPtr(100), floatPtr(80))
		assert.Equal(t, 55.0, resolver.ResolveFlatPrice(event, floatPtr(55)))
	})

	t.Run("ZeroOverrideIsAPrice", func(t *testing.T) {
		event := f.addEvent(false, floatPtr(100), floatPtr(80))
		assert.Equal(t, 0.0, resolver.ResolveFlatPrice(event, floatPtr(0)))
	})

	t.Run("DiscountedBeforeOriginal", func(t *testing.T) {
		event := f.addEvent(false, floatPtr(100), floatPtr(80))
		assert.Equal(t, 80.0, resolver.ResolveFlatPrice(event, nil))
	})

	t.Run("OriginalWhenNoDiscount", func(t *testing.T) {
		event := f.addEvent(false, floatPtr(100), nil)
		assert.Equal(t, 100.0, resolver.ResolveFlatPrice(event, nil))
	})

	t.Run("ZeroWhenUnpriced", func(t *testing.T) {
		event := f.addEvent(false, nil, nil)
		assert.Equal(t, 0.0, resolver.ResolveFlatPrice(event, nil))
	})
}

func TestPriceResolver_ResolveZonePrice(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	resolver := NewPriceResolver(f.repo.ZonePricing, zap.NewNop())

	zoneID := uuid.New()
	eventID := uuid.New()
	scheduleID := uuid.New()

	t.Run("MissingWithoutOverride", func(t *testing.T) {
		_, err := resolver.ResolveZonePrice(ctx, zoneID, eventID, scheduleID, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("OverrideSkipsLookup", func(t *testing.T) {
		price, err := resolver.ResolveZonePrice(ctx, zoneID, eventID, scheduleID, floatPtr(42))
		require.NoError(t, err)
		assert.Equal(t, 42.0, price)
	})

	t.Run("ConfiguredPrice", func(t *testing.T) {
		f.addZonePricing(zoneID, eventID, scheduleID, 75)

		price, err := resolver.ResolveZonePrice(ctx, zoneID, eventID, scheduleID, nil)
		require.NoError(t, err)
		assert.Equal(t, 75.0, price)
	})
}
