package wire

import (
	"luminacine/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, guard routeGuard) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(guard.auth)

		// GET /api/user/bookings - booking history of the session user
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		r.Get("/api/bookings/{id}", bookingHandler.GetTicket)
		r.Delete("/api/bookings/{id}", bookingHandler.CancelBooking)
		r.Post("/api/bookings/{id}/reschedule", bookingHandler.Reschedule)
	})
}
