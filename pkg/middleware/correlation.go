package middleware

import (
	"net/http"

	"luminacine/pkg/utils"

	"github.com/lithammer/shortuuid/v3"
)

const HeaderCorrelationID = "Correlation-ID"

// CorrelationID tags each request with the caller's Correlation-ID or a
// fresh one. It is echoed back and forwarded on backend calls.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get(HeaderCorrelationID)
		if correlationID == "" {
			correlationID = shortuuid.New()
		}

		w.Header().Set(HeaderCorrelationID, correlationID)
		next.ServeHTTP(w, r.WithContext(utils.SetCorrelationIDContext(r.Context(), correlationID)))
	})
}
