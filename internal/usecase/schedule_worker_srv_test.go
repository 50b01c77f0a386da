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

func TestScheduleWorkerService_Assign(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstInsertWinsDuplicateReturnsExisting", func(t *testing.T) {
		f := newFixture()
		event := f.addEvent(true, nil, nil)
		schedule := f.addSchedule(event.ID, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
		worker := f.addUser("Shift Worker", strPtr("worker@example.com"), nil, false)

		req := &request.AssignScheduleWorkerRequest{
			ScheduleID: schedule.ID.String(),
			UserID:     worker.ID.String(),
		}

		first, created, err := f.svc.ScheduleWorker.Assign(ctx, req)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, schedule.ID.String(), first.ScheduleID)
		assert.Equal(t, worker.ID.String(), first.UserID)

		second, created, err := f.svc.ScheduleWorker.Assign(ctx, req)
		require.NoError(t, err, "duplicate is reported, not failed")
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID, "the surviving assignment is the original one")
	})

	t.Run("SameWorkerDifferentSchedules", func(t *testing.T) {
		f := newFixture()
		event := f.addEvent(true, nil, nil)
		morning := f.addSchedule(event.ID, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
		evening := f.addSchedule(event.ID, time.Now().Add(5*time.Hour), time.Now().Add(6*time.Hour))
		worker := f.addUser("Shift Worker", strPtr("worker@example.com"), nil, false)

		_, created, err := f.svc.ScheduleWorker.Assign(ctx, &request.AssignScheduleWorkerRequest{
			ScheduleID: morning.ID.String(),
			UserID:     worker.ID.String(),
		})
		require.NoError(t, err)
		assert.True(t, created)

		_, created, err = f.svc.ScheduleWorker.Assign(ctx, &request.AssignScheduleWorkerRequest{
			ScheduleID: evening.ID.String(),
			UserID:     worker.ID.String(),
		})
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("UnknownSchedule", func(t *testing.T) {
		f := newFixture()
		worker := f.addUser("Shift Worker", strPtr("worker@example.com"), nil, false)

		_, _, err := f.svc.ScheduleWorker.Assign(ctx, &request.AssignScheduleWorkerRequest{
			ScheduleID: uuid.NewString(),
			UserID:     worker.ID.String(),
		})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		f := newFixture()
		event := f.addEvent(true, nil, nil)
		schedule := f.addSchedule(event.ID, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))

		_, _, err := f.svc.ScheduleWorker.Assign(ctx, &request.AssignScheduleWorkerRequest{
			ScheduleID: schedule.ID.String(),
			UserID:     uuid.NewString(),
		})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestScheduleWorkerService_ListBySchedule(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	event := f.addEvent(true, nil, nil)
	schedule := f.addSchedule(event.ID, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
	other := f.addSchedule(event.ID, time.Now().Add(5*time.Hour), time.Now().Add(6*time.Hour))

	for i := 0; i < 2; i++ {
		worker := f.addUser("Shift Worker", strPtr(uuid.NewString()+"@example.com"), nil, false)
		_, _, err := f.svc.ScheduleWorker.Assign(ctx, &request.AssignScheduleWorkerRequest{
			ScheduleID: schedule.ID.String(),
			UserID:     worker.ID.String(),
		})
		require.NoError(t, err)
	}

	listed, err := f.svc.ScheduleWorker.ListBySchedule(ctx, schedule.ID.String())
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	empty, err := f.svc.ScheduleWorker.ListBySchedule(ctx, other.ID.String())
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = f.svc.ScheduleWorker.ListBySchedule(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
