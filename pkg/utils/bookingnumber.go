package utils

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

const (
	// BookingNumberPrefix tags every generated booking number.
	BookingNumberPrefix = "TKT-"

	// bookingNumberAlphabet drops 0/O/1/I/L so numbers read unambiguously
	// on printed tickets and over the phone.
	bookingNumberAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

	fallbackSuffixLength = 2
)

// NumberExistsFunc reports whether a candidate number is already persisted.
type NumberExistsFunc func(ctx context.Context, number string) (bool, error)

// NumberGenerator produces unique, human-readable booking numbers.
//
// Generation is two-phase: a bounded number of short random codes checked
// against existing numbers, then a timestamp-derived fallback that needs no
// further lookup. The fallback keeps the operation total; it never fails.
type NumberGenerator struct {
	length   int
	attempts int
	rng      *rand.Rand
	now      func() time.Time
}

func NewNumberGenerator(length, attempts int) *NumberGenerator {
	if length <= 0 {
		length = 8
	}
	if attempts <= 0 {
		attempts = 5
	}
	return &NumberGenerator{
		length:   length,
		attempts: attempts,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

// GenerateOne returns a booking number not yet known to exists. A lookup
// error counts as a collision so generation stays total; after the attempt
// budget the timestamp fallback is used.
func (g *NumberGenerator) GenerateOne(ctx context.Context, exists NumberExistsFunc) string {
	for i := 0; i < g.attempts; i++ {
		candidate := BookingNumberPrefix + g.randomCode(g.length)
		taken, err := exists(ctx, candidate)
		if err == nil && !taken {
			return candidate
		}
	}
	return g.fallbackCode()
}

// GenerateBulk returns n pairwise-distinct numbers, disjoint from existing.
// The existing set is consulted in memory only; newly picked numbers are
// added to it so intra-batch collisions cannot happen.
func (g *NumberGenerator) GenerateBulk(n int, existing map[string]struct{}) []string {
	if existing == nil {
		existing = make(map[string]struct{}, n)
	}

	numbers := make([]string, 0, n)
	for i := 0; i < n; i++ {
		number := ""
		for attempt := 0; attempt < g.attempts; attempt++ {
			candidate := BookingNumberPrefix + g.randomCode(g.length)
			if _, taken := existing[candidate]; !taken {
				number = candidate
				break
			}
		}
		if number == "" {
			number = g.fallbackCode()
		}
		existing[number] = struct{}{}
		numbers = append(numbers, number)
	}

	return numbers
}

func (g *NumberGenerator) randomCode(length int) string {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(bookingNumberAlphabet[g.rng.Intn(len(bookingNumberAlphabet))])
	}
	return sb.String()
}

// fallbackCode encodes the current nanosecond timestamp in the restricted
// alphabet plus a short random suffix. Unique up to clock granularity
// without any lookup.
func (g *NumberGenerator) fallbackCode() string {
	return BookingNumberPrefix + encodeInAlphabet(g.now().UnixNano()) + g.randomCode(fallbackSuffixLength)
}

func encodeInAlphabet(v int64) string {
	if v < 0 {
		v = -v
	}
	if v == 0 {
		return string(bookingNumberAlphabet[0])
	}

	base := int64(len(bookingNumberAlphabet))
	buf := make([]byte, 0, 16)
	for v > 0 {
		buf = append(buf, bookingNumberAlphabet[v%base])
		v /= base
	}
	// reverse
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}
