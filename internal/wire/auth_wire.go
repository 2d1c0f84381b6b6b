package wire

import (
	"luminacine/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, guard routeGuard) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(guard.auth).Post("/api/logout", authHandler.Logout)
	r.With(guard.auth).Post("/api/logout/all", authHandler.LogoutAll)
}
