package wire

import (
	"luminacine/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCheckout(r chi.Router, checkoutHandler *adaptor.CheckoutHandler, guard routeGuard) {
	r.Route("/api/checkout", func(r chi.Router) {
		r.Use(guard.auth)

		r.Post("/", checkoutHandler.Open)
		r.Get("/{flowID}", checkoutHandler.View)
		r.Delete("/{flowID}", checkoutHandler.Close)
		r.Post("/{flowID}/reload", checkoutHandler.Reload)
		r.Post("/{flowID}/seats/{seatID}/toggle", checkoutHandler.ToggleSeat)
		r.Post("/{flowID}/proceed", checkoutHandler.Proceed)
		r.Post("/{flowID}/confirm", checkoutHandler.Confirm)
	})
}
