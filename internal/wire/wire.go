// internal/wire/wire.go
package wire

import (
	"net/http"

	"luminacine/internal/adaptor"
	"luminacine/internal/usecase"
	"luminacine/pkg/middleware"
	"luminacine/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring menginisialisasi semua dependencies
func Wiring(service *usecase.Service, config *utils.Config, logger *zap.Logger) *App {
	handler := adaptor.NewHandler(service, config, logger)

	return &App{
		Router:  setupRouter(handler, service, config, logger),
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigin))

	guard := routeGuard{
		auth:  middleware.AuthSession(service.Auth, config.Session.CookieName, usecase.ErrSessionInvalid, logger),
		admin: middleware.Admin(logger),
	}

	// Apply routes
	wireAuth(r, handler.Auth, guard)
	wireUser(r, handler.User, guard)
	wireMovie(r, handler.Movie, handler.Schedule, guard)
	wireCheckout(r, handler.Checkout, guard)
	wireBooking(r, handler.Booking, guard)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", map[string]string{"app": config.App.Name})
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// routeGuard holds the middleware protecting session and admin routes.
type routeGuard struct {
	auth  func(http.Handler) http.Handler
	admin func(http.Handler) http.Handler
}
