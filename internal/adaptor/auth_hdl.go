package adaptor

import (
	"net"
	"net/http"
	"strings"

	"luminacine/internal/dto/request"
	"luminacine/internal/usecase"
	"luminacine/pkg/middleware"
	"luminacine/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	errorResponder
	service usecase.AuthService
	cookie  utils.SessionConfig
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, cookie utils.SessionConfig, errs errorResponder, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		errorResponder: errs,
		service:        service,
		cookie:         cookie,
		log:            log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful, please log in", user)
}

// Login handles POST /api/login. The session token goes out both as an
// HttpOnly cookie and in the body for API clients.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req, usecase.ClientMeta{
		UserAgent: r.UserAgent(),
		IPAddress: clientIP(r),
	})
	if err != nil {
		h.handleServiceError(w, r, h.log, err, "login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    resp.Token,
		Path:     "/",
		Expires:  resp.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		h.handleServiceError(w, r, h.log, usecase.ErrNoSession, "logout")
		return
	}

	if err := h.service.Logout(r.Context(), session); err != nil {
		h.handleServiceError(w, r, h.log, err, "logout")
		return
	}

	middleware.ClearSessionCookie(w, h.cookie.CookieName)
	utils.ResponseSuccess(w, "Logout successful", loginRedirect)
}

// LogoutAll handles POST /api/logout/all
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		h.handleServiceError(w, r, h.log, usecase.ErrNoSession, "logout all")
		return
	}

	if err := h.service.LogoutAll(r.Context(), session); err != nil {
		h.handleServiceError(w, r, h.log, err, "logout all")
		return
	}

	middleware.ClearSessionCookie(w, h.cookie.CookieName)
	utils.ResponseSuccess(w, "Logged out from all devices", loginRedirect)
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		ip, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(ip)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
