package adaptor

import (
	"net/http"

	"luminacine/internal/checkout"
	"luminacine/internal/dto/request"
	"luminacine/internal/usecase"
	"luminacine/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutHandler drives the seat selection page. Every answer carries the
// full flow view so the page can redraw from it.
type CheckoutHandler struct {
	errorResponder
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, errs errorResponder, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		errorResponder: errs,
		service:        service,
		log:            log.With(zap.String("handler", "checkout")),
	}
}

// Open handles POST /api/checkout
func (h *CheckoutHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req request.OpenCheckoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.Open(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, h.log, err, "open checkout")
		return
	}

	utils.ResponseCreated(w, "Checkout opened", view)
}

// View handles GET /api/checkout/{flowID}
func (h *CheckoutHandler) View(w http.ResponseWriter, r *http.Request) {
	flowID, ok := h.flowID(w, r)
	if !ok {
		return
	}

	view, err := h.service.View(r.Context(), flowID)
	if err != nil {
		h.handleServiceError(w, r, h.log, err, "view checkout")
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// Reload handles POST /api/checkout/{flowID}/reload
func (h *CheckoutHandler) Reload(w http.ResponseWriter, r *http.Request) {
	flowID, ok := h.flowID(w, r)
	if !ok {
		return
	}

	view, err := h.service.Reload(r.Context(), flowID)
	if err != nil {
		h.handleServiceError(w, r, h.log, err, "reload seats")
		return
	}

	utils.ResponseSuccess(w, "Seats reloaded", view)
}

// ToggleSeat handles POST /api/checkout/{flowID}/seats/{seatID}/toggle
func (h *CheckoutHandler) ToggleSeat(w http.ResponseWriter, r *http.Request) {
	flowID, ok := h.flowID(w, r)
	if !ok {
		return
	}

	view, err := h.service.ToggleSeat(r.Context(), flowID, chi.URLParam(r, "seatID"))
	if err != nil {
		h.handleServiceError(w, r, h.log, err, "toggle seat")
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// Proceed handles POST /api/checkout/{flowID}/proceed
func (h *CheckoutHandler) Proceed(w http.ResponseWriter, r *http.Request) {
	flowID, ok := h.flowID(w, r)
	if !ok {
		return
	}

	view, err := h.service.Proceed(r.Context(), flowID)
	if err != nil {
		h.handleServiceError(w, r, h.log, err, "proceed to review")
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// Confirm handles POST /api/checkout/{flowID}/confirm
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	flowID, ok := h.flowID(w, r)
	if !ok {
		return
	}

	result, err := h.service.Confirm(r.Context(), flowID)
	if err != nil {
		h.handleServiceError(w, r, h.log, err, "confirm booking")
		return
	}

	if result.Rescheduled {
		utils.ResponseSuccess(w, "Booking rescheduled", result)
		return
	}
	utils.ResponseCreated(w, "Booking created", result)
}

// Close handles DELETE /api/checkout/{flowID}, sent when the page is left.
func (h *CheckoutHandler) Close(w http.ResponseWriter, r *http.Request) {
	flowID, ok := h.flowID(w, r)
	if !ok {
		return
	}

	if err := h.service.Close(r.Context(), flowID); err != nil {
		h.handleServiceError(w, r, h.log, err, "close checkout")
		return
	}

	utils.ResponseSuccess(w, "Checkout closed", nil)
}

func (h *CheckoutHandler) flowID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "flowID"))
	if err != nil {
		utils.ResponseNotFound(w, checkout.ErrFlowNotFound.Error())
		return uuid.Nil, false
	}
	return id, true
}
