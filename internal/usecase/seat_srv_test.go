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
)

func TestSeatService_CheckAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("AvailabilityFlipsAfterBookingAndCancel", func(t *testing.T) {
		f := newFixture()
		event := f.addEvent(true, nil, nil)
		schedule := f.addSchedule(event.ID, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
		zoneID := uuid.New()
		seat := f.addSeat(zoneID, 1, 1)
		f.addZonePricing(zoneID, event.ID, schedule.ID, 40)

		checkReq := &request.CheckAvailabilityRequest{
			ScheduleID: schedule.ID.String(),
			SeatIDs:    []string{seat.SeatID.String()},
		}

		avail, err := f.svc.Seat.CheckAvailability(ctx, checkReq)
		require.NoError(t, err)
		assert.True(t, avail.Available)
		assert.Empty(t, avail.ConflictingSeats)

		booking, err := f.svc.Booking.CreateBooking(ctx, &request.CreateBookingRequest{
			EventID:    event.ID.String(),
			ScheduleID: strPtr(schedule.ID.String()),
			Seats:      []request.SeatSelection{{SeatID: seat.SeatID.String()}},
			OwnerInfo:  ownerInfo(),
		})
		require.NoError(t, err)

		avail, err = f.svc.Seat.CheckAvailability(ctx, checkReq)
		require.NoError(t, err)
		assert.False(t, avail.Available)
		assert.Equal(t, []string{"R1-S1"}, avail.ConflictingSeats)

		_, err = f.svc.Booking.CancelBooking(ctx, booking.ID, &request.CancelBookingRequest{
			Reason: "changed plans",
		})
		require.NoError(t, err)

		avail, err = f.svc.Seat.CheckAvailability(ctx, checkReq)
		require.NoError(t, err)
		assert.True(t, avail.Available)
	})

	t.Run("OnlyConflictingSeatsReported", func(t *testing.T) {
		f := newFixture()
		event := f.addEvent(true, nil, nil)
		schedule := f.addSchedule(event.ID, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
		zoneID := uuid.New()
		taken := f.addSeat(zoneID, 1, 1)
		free := f.addSeat(zoneID, 1, 2)
		f.addZonePricing(zoneID, event.ID, schedule.ID, 40)

		_, err := f.svc.Booking.CreateBooking(ctx, &request.CreateBookingRequest{
			EventID:    event.ID.String(),
			ScheduleID: strPtr(schedule.ID.String()),
			Seats:      []request.SeatSelection{{SeatID: taken.SeatID.String()}},
			OwnerInfo:  ownerInfo(),
		})
		require.NoError(t, err)

		avail, err := f.svc.Seat.CheckAvailability(ctx, &request.CheckAvailabilityRequest{
			ScheduleID: schedule.ID.String(),
			SeatIDs:    []string{taken.SeatID.String(), free.SeatID.String()},
		})
		require.NoError(t, err)
		assert.False(t, avail.Available)
		assert.Equal(t, []string{"R1-S1"}, avail.ConflictingSeats)
	})

	t.Run("UnknownScheduleIsNotFound", func(t *testing.T) {
		f := newFixture()
		seat := f.addSeat(uuid.New(), 1, 1)

		_, err := f.svc.Seat.CheckAvailability(ctx, &request.CheckAvailabilityRequest{
			ScheduleID: uuid.NewString(),
			SeatIDs:    []string{seat.SeatID.String()},
		})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("UnknownSeatsReportedByID", func(t *testing.T) {
		f := newFixture()
		event := f.addEvent(true, nil, nil)
		schedule := f.addSchedule(event.ID, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
		known := f.addSeat(uuid.New(), 1, 1)
		ghost := uuid.New()

		_, err := f.svc.Seat.CheckAvailability(ctx, &request.CheckAvailabilityRequest{
			ScheduleID: schedule.ID.String(),
			SeatIDs:    []string{known.SeatID.String(), ghost.String()},
		})

		require.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Contains(t, err.Error(), ghost.String())
		assert.NotContains(t, err.Error(), known.SeatID.String())
	})

	t.Run("DuplicateSeatIDsRejected", func(t *testing.T) {
		f := newFixture()
		event := f.addEvent(true, nil, nil)
		schedule := f.addSchedule(event.ID, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
		seat := f.addSeat(uuid.New(), 1, 1)

		_, err := f.svc.Seat.CheckAvailability(ctx, &request.CheckAvailabilityRequest{
			ScheduleID: schedule.ID.String(),
			SeatIDs:    []string{seat.SeatID.String(), seat.SeatID.String()},
		})

		require.ErrorIs(t, err, apperrors.ErrBadRequest)
		assert.Contains(t, err.Error(), seat.SeatID.String())
	})

	t.Run("EmptySeatListRejected", func(t *testing.T) {
		f := newFixture()
		event := f.addEvent(true, nil, nil)
		schedule := f.addSchedule(event.ID, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))

		_, err := f.svc.Seat.CheckAvailability(ctx, &request.CheckAvailabilityRequest{
			ScheduleID: schedule.ID.String(),
		})

		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}
