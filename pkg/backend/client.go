package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"luminacine/pkg/metrics"
	"luminacine/pkg/utils"

	"github.com/lithammer/shortuuid/v3"
	"go.uber.org/zap"
)

const (
	headerCorrelationID = "Correlation-ID"
	maxBodyBytes        = 4 << 20
)

// API is the surface repositories depend on.
type API interface {
	Call(ctx context.Context, method, path string, body any) (*Response, error)
	Do(ctx context.Context, method, path string, body, out any) error
}

type Response struct {
	Status int
	Body   []byte
}

// Client talks JSON to the remote LuminaCine REST backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(config utils.BackendConfig, log *zap.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With(zap.String("client", "backend")),
	}
}

// Call performs one request and returns the raw 2xx body. Non-2xx answers
// come back as *APIError, network failures wrap ErrTransport.
func (c *Client) Call(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := utils.GetTokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	correlationID, ok := utils.GetCorrelationIDFromContext(ctx)
	if !ok {
		correlationID = "gen_" + shortuuid.New()
	}
	req.Header.Set(headerCorrelationID, correlationID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveBackend(method, path, 0, time.Since(start))
		c.log.Warn("Backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("correlation_id", correlationID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	metrics.ObserveBackend(method, path, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %v", ErrTransport, method, path, err)
	}

	c.log.Debug("Backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("correlation_id", correlationID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(raw),
		}
	}

	return &Response{Status: resp.StatusCode, Body: raw}, nil
}

// Do calls the backend and decodes the "data" member of the envelope into
// out. Bodies without an envelope are decoded whole.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.Call(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}

	if err := DecodeData(resp.Body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// DecodeData unwraps {"data": ...} when present.
func DecodeData(body []byte, out any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		data := bytes.TrimSpace(envelope.Data)
		if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
			return json.Unmarshal(data, out)
		}
	}
	return json.Unmarshal(body, out)
}

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, m := range []string{payload.Message, payload.Error, payload.Msg} {
			if m != "" {
				return m
			}
		}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
