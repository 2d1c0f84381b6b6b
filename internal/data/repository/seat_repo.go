package repository

import (
	"context"
	"fmt"
	"net/http"

	"luminacine/internal/data/entity"
	"luminacine/pkg/backend"

	"go.uber.org/zap"
)

type SeatRepository interface {
	FindStatusBySchedule(ctx context.Context, scheduleID entity.ID) ([]entity.Seat, error)
}

type seatRepository struct {
	api backend.API
	log *zap.Logger
}

func NewSeatRepository(api backend.API, log *zap.Logger) SeatRepository {
	return &seatRepository{
		api: api,
		log: log.With(zap.String("repository", "seat")),
	}
}

// FindStatusBySchedule returns every seat of the showing with its
// backend-authoritative status.
func (r *seatRepository) FindStatusBySchedule(ctx context.Context, scheduleID entity.ID) ([]entity.Seat, error) {
	var seats []entity.Seat
	path := "/seats/schedule/" + scheduleID.Segment() + "/status"
	if err := r.api.Do(ctx, http.MethodGet, path, nil, &seats); err != nil {
		r.log.Error("Failed to fetch seat status", zap.Error(err), zap.String("schedule_id", scheduleID.String()))
		return nil, fmt.Errorf("failed to fetch seats of schedule %s: %w", scheduleID, err)
	}

	return seats, nil
}
