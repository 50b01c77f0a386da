package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	allStatuses := []BookingStatus{
		BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusCompleted,
		BookingStatusCancelled,
		BookingStatusRefunded,
	}

	allowed := map[BookingStatus]map[BookingStatus]bool{
		BookingStatusPending:   {BookingStatusConfirmed: true, BookingStatusCancelled: true},
		BookingStatusConfirmed: {BookingStatusCompleted: true, BookingStatusCancelled: true, BookingStatusRefunded: true},
		BookingStatusCompleted: {BookingStatusRefunded: true},
		BookingStatusCancelled: {},
		BookingStatusRefunded:  {},
	}

	// Every (from, to) pair, including self-transitions, has a defined answer.
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			assert.Equal(t, allowed[from][to], from.CanTransitionTo(to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusConfirmed.IsTerminal())
	assert.False(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.True(t, BookingStatusRefunded.IsTerminal())
}

func TestBookingStatus_IsValid(t *testing.T) {
	assert.True(t, BookingStatusPending.IsValid())
	assert.True(t, BookingStatusRefunded.IsValid())
	assert.False(t, BookingStatus("shipped").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}
