package repository

import (
	"luminacine/pkg/backend"
	"luminacine/pkg/database"
	"luminacine/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Movie    MovieRepository
	Schedule ScheduleRepository
	Seat     SeatRepository
	Booking  BookingRepository
}

// NewRepository wires the session store (db) and the backend-backed
// repositories. rdb may be nil.
func NewRepository(db database.PgxIface, api backend.API, rdb *redis.Client, config *utils.Config, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(api, log),
		Session:  NewSessionRepository(db, log),
		Movie:    NewMovieRepository(api, rdb, config.Redis.CacheTTL, log),
		Schedule: NewScheduleRepository(api, log),
		Seat:     NewSeatRepository(api, log),
		Booking:  NewBookingRepository(api, log),
	}
}
