package adaptor

import (
	"net/http"

	"luminacine/internal/usecase"
	"luminacine/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	errorResponder
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, errs errorResponder, log *zap.Logger) *UserHandler {
	return &UserHandler{
		errorResponder: errs,
		service:        service,
		log:            log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/user/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context())
	if err != nil {
		h.handleServiceError(w, r, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}
