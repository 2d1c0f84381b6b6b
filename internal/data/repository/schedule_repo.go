package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"luminacine/internal/data/entity"
	"luminacine/pkg/backend"

	"go.uber.org/zap"
)

type ScheduleRepository interface {
	FindByMovie(ctx context.Context, movieID entity.ID) ([]entity.Schedule, error)
	FindByID(ctx context.Context, movieID, scheduleID entity.ID) (*entity.Schedule, error)
	Create(ctx context.Context, movieID entity.ID, schedule *entity.Schedule) (*entity.Schedule, error)
	Update(ctx context.Context, movieID, scheduleID entity.ID, schedule *entity.Schedule) (*entity.Schedule, error)
	Delete(ctx context.Context, scheduleID entity.ID) error
}

type scheduleRepository struct {
	api backend.API
	log *zap.Logger
}

func NewScheduleRepository(api backend.API, log *zap.Logger) ScheduleRepository {
	return &scheduleRepository{
		api: api,
		log: log.With(zap.String("repository", "schedule")),
	}
}

func schedulesPath(movieID entity.ID) string {
	return "/movies/" + movieID.Segment() + "/schedules"
}

func (r *scheduleRepository) FindByMovie(ctx context.Context, movieID entity.ID) ([]entity.Schedule, error) {
	var schedules []entity.Schedule
	if err := r.api.Do(ctx, http.MethodGet, schedulesPath(movieID), nil, &schedules); err != nil {
		r.log.Error("Failed to fetch schedules", zap.Error(err), zap.String("movie_id", movieID.String()))
		return nil, fmt.Errorf("failed to fetch schedules of movie %s: %w", movieID, err)
	}

	for i := range schedules {
		if schedules[i].MovieID.IsZero() {
			schedules[i].MovieID = movieID
		}
	}
	return schedules, nil
}

// FindByID answers either enveloped or bare; Do handles both.
func (r *scheduleRepository) FindByID(ctx context.Context, movieID, scheduleID entity.ID) (*entity.Schedule, error) {
	var schedule entity.Schedule
	path := schedulesPath(movieID) + "/" + scheduleID.Segment()
	if err := r.api.Do(ctx, http.MethodGet, path, nil, &schedule); err != nil {
		if !errors.Is(err, backend.ErrNotFound) {
			r.log.Error("Failed to fetch schedule", zap.Error(err), zap.String("schedule_id", scheduleID.String()))
		}
		return nil, fmt.Errorf("failed to fetch schedule %s: %w", scheduleID, err)
	}

	if schedule.ID.IsZero() {
		schedule.ID = scheduleID
	}
	if schedule.MovieID.IsZero() {
		schedule.MovieID = movieID
	}
	return &schedule, nil
}

func (r *scheduleRepository) Create(ctx context.Context, movieID entity.ID, schedule *entity.Schedule) (*entity.Schedule, error) {
	var created entity.Schedule
	if err := r.api.Do(ctx, http.MethodPost, schedulesPath(movieID), schedule, &created); err != nil {
		r.log.Error("Failed to create schedule", zap.Error(err), zap.String("movie_id", movieID.String()))
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	if created.ID.IsZero() {
		created = *schedule
	}
	created.MovieID = movieID
	return &created, nil
}

func (r *scheduleRepository) Update(ctx context.Context, movieID, scheduleID entity.ID, schedule *entity.Schedule) (*entity.Schedule, error) {
	var updated entity.Schedule
	path := schedulesPath(movieID) + "/" + scheduleID.Segment()
	if err := r.api.Do(ctx, http.MethodPut, path, schedule, &updated); err != nil {
		r.log.Error("Failed to update schedule", zap.Error(err), zap.String("schedule_id", scheduleID.String()))
		return nil, fmt.Errorf("failed to update schedule %s: %w", scheduleID, err)
	}

	if updated.ID.IsZero() {
		updated = *schedule
	}
	updated.ID = scheduleID
	updated.MovieID = movieID
	return &updated, nil
}

func (r *scheduleRepository) Delete(ctx context.Context, scheduleID entity.ID) error {
	if err := r.api.Do(ctx, http.MethodDelete, "/schedules/"+scheduleID.Segment(), nil, nil); err != nil {
		r.log.Error("Failed to delete schedule", zap.Error(err), zap.String("schedule_id", scheduleID.String()))
		return fmt.Errorf("failed to delete schedule %s: %w", scheduleID, err)
	}
	return nil
}
