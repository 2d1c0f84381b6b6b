package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a browser session of this front end. BackendToken is only ever
// held in memory; the store keeps SealedToken.
type Session struct {
	BaseSimple
	Token        uuid.UUID  `db:"token"`
	UserID       ID         `db:"user_id"`
	UserName     string     `db:"user_name"`
	Email        string     `db:"email"`
	Role         UserRole   `db:"role"`
	SealedToken  []byte     `db:"sealed_token"`
	BackendToken string     `db:"-"`
	UserAgent    *string    `db:"user_agent"`
	IPAddress    *string    `db:"ip_address"`
	ExpiresAt    time.Time  `db:"expires_at"`
	RevokedAt    *time.Time `db:"revoked_at"`
}

func (s *Session) User() User {
	return User{ID: s.UserID, Name: s.UserName, Email: s.Email, Role: s.Role}
}
