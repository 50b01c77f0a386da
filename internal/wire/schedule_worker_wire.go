package wire

import (
	"event-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireScheduleWorker(r chi.Router, workerHandler *adaptor.ScheduleWorkerHandler) {
	// POST /api/schedule-workers - Assign a worker (409 on duplicate pair)
	r.Post("/api/schedule-workers", workerHandler.Assign)

	// GET /api/schedules/{id}/workers - Workers of one schedule
	r.Get("/api/schedules/{id}/workers", workerHandler.ListBySchedule)
}
