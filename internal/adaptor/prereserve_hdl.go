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

type PreReserveHandler struct {
	service usecase.PreReserveService
	log     *zap.Logger
}

func NewPreReserveHandler(service usecase.PreReserveService, log *zap.Logger) *PreReserveHandler {
	return &PreReserveHandler{
		service: service,
		log:     log.With(zap.String("handler", "pre_reserve")),
	}
}

// PreReserve handles POST /api/bookings/pre-reserve (admin only)
func (h *PreReserveHandler) PreReserve(w http.ResponseWriter, r *http.Request) {
	actorID, ok := utils.GetActorIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Acting user is required")
		return
	}

	var req request.PreReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.PreReserve(r.Context(), actorID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "pre-reserve bookings")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// Assign handles POST /api/bookings/{id}/assign
func (h *PreReserveHandler) Assign(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.AssignBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Assign(r.Context(), bookingID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "assign booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// AssignBulk handles POST /api/bookings/assign-bulk
//
// The batch itself always succeeds with 200; per-item failures are reported
// in the body, never as an HTTP error.
func (h *PreReserveHandler) AssignBulk(w http.ResponseWriter, r *http.Request) {
	var req request.BulkAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.AssignBulk(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "bulk assign bookings")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// CleanupGuests handles POST /api/admin/guests/cleanup (admin only)
func (h *PreReserveHandler) CleanupGuests(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.CleanupGuests(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "cleanup guests")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]int64{"removed": removed})
}
