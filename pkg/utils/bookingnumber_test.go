package utils

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberGenerator_GenerateOne(t *testing.T) {
	ctx := context.Background()

	t.Run("Format", func(t *testing.T) {
		gen := NewNumberGenerator(8, 5)

		number := gen.GenerateOne(ctx, func(ctx context.Context, n string) (bool, error) {
			return false, nil
		})

		require.True(t, strings.HasPrefix(number, BookingNumberPrefix))
		code := strings.TrimPrefix(number, BookingNumberPrefix)
		assert.Len(t, code, 8)
		for _, c := range code {
			assert.Contains(t, bookingNumberAlphabet, string(c))
		}
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
		assert.NotContains(t, code, "L")
	})

	t.Run("FallbackAfterCollisions", func(t *testing.T) {
		gen := NewNumberGenerator(8, 3)

		calls := 0
		number := gen.GenerateOne(ctx, func(ctx context.Context, n string) (bool, error) {
			calls++
			return true, nil
		})

		assert.Equal(t, 3, calls)
		require.True(t, strings.HasPrefix(number, BookingNumberPrefix))
		// Timestamp fallback is longer than the configured random code.
		assert.Greater(t, len(number), len(BookingNumberPrefix)+8)
	})

	t.Run("LookupErrorCountsAsCollision", func(t *testing.T) {
		gen := NewNumberGenerator(8, 2)

		number := gen.GenerateOne(ctx, func(ctx context.Context, n string) (bool, error) {
			return false, errors.New("db down")
		})

		// Generation stays total even when every lookup fails.
		require.True(t, strings.HasPrefix(number, BookingNumberPrefix))
	})

	t.Run("SkipsTakenNumbers", func(t *testing.T) {
		gen := NewNumberGenerator(8, 5)

		taken := map[string]bool{}
		first := gen.GenerateOne(ctx, func(ctx context.Context, n string) (bool, error) {
			return taken[n], nil
		})
		taken[first] = true

		second := gen.GenerateOne(ctx, func(ctx context.Context, n string) (bool, error) {
			return taken[n], nil
		})

		assert.NotEqual(t, first, second)
	})
}

func TestNumberGenerator_GenerateBulk(t *testing.T) {
	t.Run("DistinctAndDisjoint", func(t *testing.T) {
		gen := NewNumberGenerator(8, 5)

		existing := map[string]struct{}{
			BookingNumberPrefix + "AAAAAAAA": {},
			BookingNumberPrefix + "BBBBBBBB": {},
		}

		numbers := gen.GenerateBulk(50, existing)

		require.Len(t, numbers, 50)
		seen := map[string]struct{}{
			BookingNumberPrefix + "AAAAAAAA": {},
			BookingNumberPrefix + "BBBBBBBB": {},
		}
		for _, n := range numbers {
			_, dup := seen[n]
			assert.False(t, dup, "number %s generated twice or collides with existing", n)
			seen[n] = struct{}{}
			assert.True(t, strings.HasPrefix(n, BookingNumberPrefix))
		}
	})

	t.Run("NilExistingSet", func(t *testing.T) {
		gen := NewNumberGenerator(8, 5)

		numbers := gen.GenerateBulk(3, nil)

		require.Len(t, numbers, 3)
		assert.NotEqual(t, numbers[0], numbers[1])
		assert.NotEqual(t, numbers[1], numbers[2])
	})
}

func TestEncodeInAlphabet(t *testing.T) {
	assert.Equal(t, string(bookingNumberAlphabet[0]), encodeInAlphabet(0))
	assert.Equal(t, string(bookingNumberAlphabet[1]), encodeInAlphabet(1))
	// Negative input must not loop forever or panic.
	assert.NotEmpty(t, encodeInAlphabet(-42))

	for _, c := range encodeInAlphabet(1234567890) {
		assert.Contains(t, bookingNumberAlphabet, string(c))
	}
}
