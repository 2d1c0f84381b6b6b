package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"luminacine/internal/checkout"
	"luminacine/internal/usecase"
	"luminacine/pkg/backend"
	"luminacine/pkg/middleware"
	"luminacine/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Movie    *MovieHandler
	Schedule *ScheduleHandler
	Checkout *CheckoutHandler
	Booking  *BookingHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	errs := errorResponder{auth: service.Auth, cookieName: config.Session.CookieName}

	return &Handler{
		Auth:     NewAuthHandler(service.Auth, config.Session, errs, log),
		User:     NewUserHandler(service.User, errs, log),
		Movie:    NewMovieHandler(service.Movie, errs, log),
		Schedule: NewScheduleHandler(service.Schedule, errs, log),
		Checkout: NewCheckoutHandler(service.Checkout, errs, log),
		Booking:  NewBookingHandler(service.Booking, errs, log),
	}
}

// errorResponder maps service errors onto HTTP answers. A backend 401 ends
// the local session as well: the browser is sent back to the login page.
type errorResponder struct {
	auth       usecase.AuthService
	cookieName string
}

var loginRedirect = map[string]string{"redirect": "/"}

func (e errorResponder) handleServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNoSession), errors.Is(err, usecase.ErrSessionInvalid):
		log.Warn(operation+" failed - no session", zap.Error(err))
		middleware.ClearSessionCookie(w, e.cookieName)
		utils.ResponseUnauthorized(w, "Session expired, please log in again", loginRedirect)

	case errors.Is(err, backend.ErrUnauthorized):
		log.Warn(operation+" failed - backend rejected session", zap.Error(err))
		e.endSession(r, log)
		middleware.ClearSessionCookie(w, e.cookieName)
		utils.ResponseUnauthorized(w, "Session expired, please log in again", loginRedirect)

	case errors.Is(err, backend.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, backend.Message(err))

	case errors.Is(err, checkout.ErrBookingConflict), errors.Is(err, backend.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, "Some seats were just booked by someone else, please choose again", map[string]string{
			"reason": backend.Message(err),
		})

	case errors.Is(err, checkout.ErrSeatBooked),
		errors.Is(err, checkout.ErrSubmissionInFlight),
		errors.Is(err, checkout.ErrAlreadySubmitted):
		log.Warn(operation+" failed - checkout state", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, checkout.ErrFlowNotFound),
		errors.Is(err, checkout.ErrSeatNotFound),
		errors.Is(err, usecase.ErrBookingNotFound),
		errors.Is(err, backend.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, backend.Message(err))

	case errors.Is(err, checkout.ErrEmptySelection),
		errors.Is(err, checkout.ErrScheduleMissing),
		errors.Is(err, checkout.ErrNotReady),
		errors.Is(err, checkout.ErrFlowClosed),
		errors.Is(err, backend.ErrBadRequest):
		log.Warn(operation+" failed - invalid", zap.Error(err))
		utils.ResponseBadRequest(w, backend.Message(err), nil)

	case errors.Is(err, checkout.ErrMissingBookingID):
		log.Error(operation+" failed - booking id missing", zap.Error(err))
		utils.ResponseBadGateway(w, "Booking was submitted but no booking id came back, check your bookings")

	case errors.Is(err, backend.ErrTransport), errors.Is(err, backend.ErrServer):
		log.Error(operation+" failed - backend unavailable", zap.Error(err))
		utils.ResponseBadGateway(w, "Booking service is unavailable, please try again")

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func (e errorResponder) endSession(r *http.Request, log *zap.Logger) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		return
	}
	if err := e.auth.Logout(r.Context(), session); err != nil {
		log.Error("Failed to revoke session", zap.Error(err))
	}
}

// decodeAndValidate reads a JSON body into req and validates it, answering
// 400 itself when either fails.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}
