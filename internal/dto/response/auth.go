package response

import (
	"time"

	"luminacine/internal/data/entity"
)

type AuthResponse struct {
	UserID    string          `json:"user_id"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      entity.UserRole `json:"role"`
	Redirect  string          `json:"redirect"`
}

type UserResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  entity.UserRole `json:"role"`
}

func UserToResponse(user entity.User) UserResponse {
	return UserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// AuthToResponse sends admins to the dashboard and everyone else home.
func AuthToResponse(session *entity.Session) AuthResponse {
	redirect := "/home"
	if session.Role == entity.RoleAdmin {
		redirect = "/admindashboard"
	}

	return AuthResponse{
		UserID:    session.UserID.String(),
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
		Name:      session.UserName,
		Email:     session.Email,
		Role:      session.Role,
		Redirect:  redirect,
	}
}
