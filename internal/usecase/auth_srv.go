package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"luminacine/internal/checkout"
	"luminacine/internal/data/entity"
	"luminacine/internal/data/repository"
	"luminacine/internal/dto/request"
	"luminacine/internal/dto/response"
	"luminacine/pkg/backend"
	"luminacine/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientMeta describes the browser a session is opened for.
type ClientMeta struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, meta ClientMeta) (*response.AuthResponse, error)
	Logout(ctx context.Context, session *entity.Session) error
	LogoutAll(ctx context.Context, session *entity.Session) error
	Resolve(ctx context.Context, token string) (*entity.Session, error)
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	repo      *repository.Repository
	sealer    *utils.Sealer
	checkouts *checkout.Store
	config    *utils.Config
	log       *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	sealer *utils.Sealer,
	checkouts *checkout.Store,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		sealer:    sealer,
		checkouts: checkouts,
		config:    config,
		log:       log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	user, err := s.repo.User.Register(ctx, entity.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered", zap.String("email", user.Email))

	resp := response.UserToResponse(*user)
	return &resp, nil
}

// Login exchanges credentials for a backend token and opens a local session
// holding it sealed. The session never outlives the backend token.
func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta ClientMeta) (*response.AuthResponse, error) {
	result, err := s.repo.User.Login(ctx, entity.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) ||
			errors.Is(err, backend.ErrBadRequest) ||
			errors.Is(err, backend.ErrNotFound) {
			s.log.Warn("Login rejected", zap.String("email", req.Email), zap.Error(err))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour)
	claims := parseTokenClaims(result.AccessToken)
	if claims.expiresAt != nil && claims.expiresAt.Before(expiresAt) {
		expiresAt = *claims.expiresAt
	}
	if !expiresAt.After(now) {
		s.log.Warn("Backend issued an expired token", zap.String("email", req.Email))
		return nil, ErrSessionInvalid
	}

	user := result.User
	if user.ID.IsZero() && claims.userID != "" {
		user.ID = entity.ID(claims.userID)
	}
	if claims.role != "" && user.Role == entity.RoleCustomer {
		user.Role = entity.UserRole(claims.role)
	}

	sealed, err := s.sealer.Seal(result.AccessToken)
	if err != nil {
		s.log.Error("Failed to seal backend token", zap.Error(err))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		Token:        uuid.New(),
		UserID:       user.ID,
		UserName:     user.Name,
		Email:        user.Email,
		Role:         user.Role,
		SealedToken:  sealed,
		BackendToken: result.AccessToken,
		ExpiresAt:    expiresAt,
	}
	if meta.UserAgent != "" {
		session.UserAgent = &meta.UserAgent
	}
	if meta.IPAddress != "" {
		session.IPAddress = &meta.IPAddress
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	resp := response.AuthToResponse(session)
	return &resp, nil
}

// Logout revokes the session and closes its checkouts. Revoking an already
// revoked session is not an error.
func (s *authService) Logout(ctx context.Context, session *entity.Session) error {
	closed := s.checkouts.CloseOwner(session.ID.String())

	if err := s.repo.Session.Revoke(ctx, session.Token); err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		return err
	}

	s.log.Info("User logged out",
		zap.String("user_id", session.UserID.String()),
		zap.Int("closed_checkouts", closed),
	)
	return nil
}

// LogoutAll revokes every session of the user. Checkouts of the other
// sessions become unreachable and are swept.
func (s *authService) LogoutAll(ctx context.Context, session *entity.Session) error {
	s.checkouts.CloseOwner(session.ID.String())

	if err := s.repo.Session.RevokeAllUserSessions(ctx, session.UserID); err != nil {
		return err
	}

	s.log.Info("User logged out everywhere", zap.String("user_id", session.UserID.String()))
	return nil
}

func (s *authService) Resolve(ctx context.Context, token string) (*entity.Session, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	session, err := s.repo.Session.FindValidSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionInvalid
	}

	backendToken, err := s.sealer.Open(session.SealedToken)
	if err != nil {
		s.log.Warn("Stored backend token cannot be opened",
			zap.String("session_id", session.ID.String()),
			zap.Error(err))
		return nil, ErrSessionInvalid
	}

	session.BackendToken = backendToken
	return session, nil
}

func (s *authService) CleanExpiredSessions(ctx context.Context) (int64, error) {
	return s.repo.Session.CleanExpiredSessions(ctx)
}

type tokenClaims struct {
	expiresAt *time.Time
	userID    string
	role      string
}

// parseTokenClaims reads the backend token without verifying its signature.
func parseTokenClaims(token string) tokenClaims {
	var out tokenClaims

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return out
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		out.expiresAt = &t
	}
	for _, key := range []string{"id_user", "userId", "id"} {
		if v, ok := claims[key]; ok && v != nil {
			out.userID = claimString(v)
			break
		}
	}
	if role, ok := claims["role"].(string); ok {
		out.role = role
	}
	return out
}

// claimString renders numeric claims in plain decimal; JSON numbers decode
// as float64 and would otherwise print as 1e+06.
func claimString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
