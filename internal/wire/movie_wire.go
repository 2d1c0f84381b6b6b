package wire

import (
	"luminacine/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	scheduleHandler *adaptor.ScheduleHandler,
	guard routeGuard,
) {
	// ==================== PROTECTED ROUTES ====================
	// the backend catalog needs the user's bearer token
	r.Group(func(r chi.Router) {
		r.Use(guard.auth)

		r.Get("/api/movies", movieHandler.GetMovies)
		r.Get("/api/movies/{id}", movieHandler.GetMovieByID)
		r.Get("/api/movies/{id}/schedules", movieHandler.GetSchedules)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(guard.auth)
		r.Use(guard.admin)

		r.Post("/movies", movieHandler.CreateMovie)
		r.Put("/movies/{id}", movieHandler.UpdateMovie)
		r.Delete("/movies/{id}", movieHandler.DeleteMovie)

		r.Post("/movies/{id}/schedules", scheduleHandler.CreateSchedule)
		r.Put("/movies/{id}/schedules/{scheduleID}", scheduleHandler.UpdateSchedule)
		r.Delete("/schedules/{scheduleID}", scheduleHandler.DeleteSchedule)
	})
}
