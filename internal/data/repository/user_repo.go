package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"luminacine/internal/data/entity"
	"luminacine/pkg/backend"

	"go.uber.org/zap"
)

var ErrLoginResponseInvalid = errors.New("login response carries no access token")

// LoginResult is what the backend hands out on /login.
type LoginResult struct {
	AccessToken string
	User        entity.User
}

type UserRepository interface {
	Login(ctx context.Context, credentials entity.Credentials) (*LoginResult, error)
	Register(ctx context.Context, registration entity.Registration) (*entity.User, error)
}

type userRepository struct {
	api backend.API
	log *zap.Logger
}

func NewUserRepository(api backend.API, log *zap.Logger) UserRepository {
	return &userRepository{
		api: api,
		log: log.With(zap.String("repository", "user")),
	}
}

// Login accepts the token at top level or under "data", and the user
// under "user" or "data".
func (r *userRepository) Login(ctx context.Context, credentials entity.Credentials) (*LoginResult, error) {
	resp, err := r.api.Call(ctx, http.MethodPost, "/login", credentials)
	if err != nil {
		return nil, fmt.Errorf("login rejected: %w", err)
	}

	var body struct {
		AccessToken string          `json:"accessToken"`
		User        *entity.User    `json:"user"`
		Data        json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}

	result := &LoginResult{AccessToken: body.AccessToken}
	if body.User != nil {
		result.User = *body.User
	}

	if len(body.Data) > 0 {
		var data struct {
			AccessToken string       `json:"accessToken"`
			User        *entity.User `json:"user"`
		}
		if err := json.Unmarshal(body.Data, &data); err == nil {
			if result.AccessToken == "" {
				result.AccessToken = data.AccessToken
			}
			if result.User.ID.IsZero() && data.User != nil {
				result.User = *data.User
			}
		}
		if result.User.ID.IsZero() {
			var user entity.User
			if err := json.Unmarshal(body.Data, &user); err == nil {
				result.User = user
			}
		}
	}

	if result.AccessToken == "" {
		r.log.Error("Login response without token", zap.String("email", credentials.Email))
		return nil, ErrLoginResponseInvalid
	}
	if result.User.Email == "" {
		result.User.Email = credentials.Email
	}
	if result.User.Role == "" {
		result.User.Role = entity.RoleCustomer
	}

	return result, nil
}

func (r *userRepository) Register(ctx context.Context, registration entity.Registration) (*entity.User, error) {
	var user entity.User
	if err := r.api.Do(ctx, http.MethodPost, "/users", registration, &user); err != nil {
		r.log.Warn("Registration rejected", zap.Error(err), zap.String("email", registration.Email))
		return nil, fmt.Errorf("registration rejected: %w", err)
	}

	if user.Email == "" {
		user.Email = registration.Email
		user.Name = registration.Name
	}
	return &user, nil
}
