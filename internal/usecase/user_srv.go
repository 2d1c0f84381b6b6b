package usecase

import (
	"context"

	"luminacine/internal/dto/response"
	"luminacine/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context) (*response.UserResponse, error)
}

type userService struct {
	log *zap.Logger
}

func NewUserService(log *zap.Logger) UserService {
	return &userService{
		log: log.With(zap.String("service", "user")),
	}
}

// GetProfile answers from the session; the backend has no profile endpoint.
func (us *userService) GetProfile(ctx context.Context) (*response.UserResponse, error) {
	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	resp := response.UserToResponse(session.User())
	return &resp, nil
}
