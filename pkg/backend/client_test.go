package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"luminacine/pkg/backend"
	"luminacine/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newClient(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return backend.NewClient(utils.BackendConfig{BaseURL: srv.URL + "/", Timeout: time.Second}, zap.NewNop())
}

func TestClient_DoUnwrapsEnvelopeAndForwardsHeaders(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movies/3", r.URL.Path)
		assert.Equal(t, "Bearer backend-token", r.Header.Get("Authorization"))
		assert.Equal(t, "corr-1", r.Header.Get("Correlation-ID"))
		w.Write([]byte(`{"message":"ok","data":{"title":"Dune"}}`))
	})

	ctx := utils.SetTokenContext(context.Background(), "backend-token")
	ctx = utils.SetCorrelationIDContext(ctx, "corr-1")

	var out struct {
		Title string `json:"title"`
	}
	require.NoError(t, client.Do(ctx, http.MethodGet, "/movies/3", nil, &out))
	assert.Equal(t, "Dune", out.Title)
}

func TestClient_DoDecodesBareBody(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("Correlation-ID"))
		w.Write([]byte(`{"id_schedule":5,"price":75000}`))
	})

	var out struct {
		Price int `json:"price"`
	}
	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/movies/1/schedules/5", nil, &out))
	assert.Equal(t, 75000, out.Price)
}

func TestClient_SendsJSONBody(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "x", body["name"])
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, client.Do(context.Background(), http.MethodPost, "/users", map[string]string{"name": "x"}, nil))
}

func TestClient_MapsStatusesToSentinels(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"token expired"}`, backend.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, `{}`, backend.ErrForbidden},
		{"not found", http.StatusNotFound, `{"message":"missing"}`, backend.ErrNotFound},
		{"conflict", http.StatusConflict, `{"message":"seat A2 taken"}`, backend.ErrConflict},
		{"conflict worded as bad request", http.StatusBadRequest, `{"message":"seat A2 is already booked"}`, backend.ErrConflict},
		{"indonesian conflict", http.StatusBadRequest, `{"error":"Kursi sudah dipesan"}`, backend.ErrConflict},
		{"bad request", http.StatusBadRequest, `{"message":"id_schedule required"}`, backend.ErrBadRequest},
		{"server", http.StatusBadGateway, `oops`, backend.ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := client.Do(context.Background(), http.MethodGet, "/bookings/1", nil, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var apiErr *backend.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := backend.NewClient(utils.BackendConfig{BaseURL: srv.URL, Timeout: time.Second}, zap.NewNop())
	err := client.Do(context.Background(), http.MethodGet, "/movies", nil, nil)
	assert.ErrorIs(t, err, backend.ErrTransport)
}

func TestMessage(t *testing.T) {
	err := &backend.APIError{Method: "POST", Path: "/bookings", Status: 409, Message: "Seat A2 already booked"}
	assert.Equal(t, "Seat A2 already booked", backend.Message(err))
}
