package adaptor

import (
	"net/http"

	"luminacine/internal/dto/request"
	"luminacine/internal/usecase"
	"luminacine/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ScheduleHandler serves the admin schedule console.
type ScheduleHandler struct {
	errorResponder
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, errs errorResponder, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		errorResponder: errs,
		service:        service,
		log:            log.With(zap.String("handler", "schedule")),
	}
}

// CreateSchedule handles POST /api/admin/movies/{id}/schedules
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	var req request.ScheduleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	schedule, err := h.service.CreateSchedule(r.Context(), movieID, &req)
	if err != nil {
		h.handleServiceError(w, r, h.log, err, "create schedule")
		return
	}

	utils.ResponseCreated(w, "Schedule created successfully", schedule)
}

// UpdateSchedule handles PUT /api/admin/movies/{id}/schedules/{scheduleID}
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	scheduleID := chi.URLParam(r, "scheduleID")

	var req request.ScheduleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	schedule, err := h.service.UpdateSchedule(r.Context(), movieID, scheduleID, &req)
	if err != nil {
		h.handleServiceError(w, r, h.log, err, "update schedule")
		return
	}

	utils.ResponseSuccess(w, "Schedule updated successfully", schedule)
}

// DeleteSchedule handles DELETE /api/admin/schedules/{scheduleID}
func (h *ScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "scheduleID")

	if err := h.service.DeleteSchedule(r.Context(), scheduleID); err != nil {
		h.handleServiceError(w, r, h.log, err, "delete schedule")
		return
	}

	utils.ResponseSuccess(w, "Schedule deleted successfully", nil)
}
