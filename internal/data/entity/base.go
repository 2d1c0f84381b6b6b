package entity

import (
	"time"

	"github.com/google/uuid"
)

// BaseSimple is shared by rows owned by this service (the backend owns everything else).
type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
