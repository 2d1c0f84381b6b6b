package wire

import (
	"luminacine/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, guard routeGuard) {
	r.With(guard.auth).Get("/api/user/profile", userHandler.GetProfile)
}
