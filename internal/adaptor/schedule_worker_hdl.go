package adaptor

import (
	"encoding/json"
	"net/http"

	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScheduleWorkerHandler struct {
	service usecase.ScheduleWorkerService
	log     *zap.Logger
}

func NewScheduleWorkerHandler(service usecase.ScheduleWorkerService, log *zap.Logger) *ScheduleWorkerHandler {
	return &ScheduleWorkerHandler{
		service: service,
		log:     log.With(zap.String("handler", "schedule_worker")),
	}
}

// Assign handles POST /api/schedule-workers
//
// A duplicate (schedule, worker) pair answers 409 with the existing
// assignment so concurrent duplicate submissions resolve deterministically.
func (h *ScheduleWorkerHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req request.AssignScheduleWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	assignment, created, err := h.service.Assign(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "assign schedule worker")
		return
	}

	if !created {
		utils.ResponseJSON(w, http.StatusConflict, false, "worker is already assigned to this schedule", assignment, nil)
		return
	}

	utils.ResponseCreated(w, "success", assignment)
}

// ListBySchedule handles GET /api/schedules/{id}/workers
func (h *ScheduleWorkerHandler) ListBySchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "id")
	if scheduleID == "" {
		utils.ResponseBadRequest(w, "Schedule ID is required", nil)
		return
	}

	assignments, err := h.service.ListBySchedule(r.Context(), scheduleID)
	if err != nil {
		handleServiceError(w, h.log, err, "list schedule workers")
		return
	}

	utils.ResponseSuccess(w, "success", assignments)
}
