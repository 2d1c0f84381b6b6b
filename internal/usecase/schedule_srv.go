package usecase

import (
	"context"

	"luminacine/internal/data/entity"
	"luminacine/internal/data/repository"
	"luminacine/internal/dto/request"
	"luminacine/internal/dto/response"

	"go.uber.org/zap"
)

type ScheduleService interface {
	CreateSchedule(ctx context.Context, movieID string, req *request.ScheduleRequest) (*response.ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, movieID, scheduleID string, req *request.ScheduleRequest) (*response.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, scheduleID string) error
}

type scheduleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewScheduleService(repo *repository.Repository, log *zap.Logger) ScheduleService {
	return &scheduleService{
		repo: repo,
		log:  log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) CreateSchedule(ctx context.Context, movieID string, req *request.ScheduleRequest) (*response.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.Create(ctx, entity.ID(movieID), scheduleFromRequest(req))
	if err != nil {
		return nil, err
	}

	s.log.Info("Schedule created",
		zap.String("movie_id", movieID),
		zap.String("schedule_id", schedule.ID.String()))

	resp := response.ScheduleToResponse(*schedule)
	return &resp, nil
}

func (s *scheduleService) UpdateSchedule(ctx context.Context, movieID, scheduleID string, req *request.ScheduleRequest) (*response.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.Update(ctx, entity.ID(movieID), entity.ID(scheduleID), scheduleFromRequest(req))
	if err != nil {
		return nil, err
	}

	s.log.Info("Schedule updated", zap.String("schedule_id", scheduleID))

	resp := response.ScheduleToResponse(*schedule)
	return &resp, nil
}

func (s *scheduleService) DeleteSchedule(ctx context.Context, scheduleID string) error {
	if err := s.repo.Schedule.Delete(ctx, entity.ID(scheduleID)); err != nil {
		return err
	}

	s.log.Info("Schedule deleted", zap.String("schedule_id", scheduleID))
	return nil
}

// scheduleFromRequest pads "19:00" to the backend's "19:00:00".
func scheduleFromRequest(req *request.ScheduleRequest) *entity.Schedule {
	t := req.Time
	if len(t) == 5 {
		t += ":00"
	}

	return &entity.Schedule{
		CinemaName: req.CinemaName,
		Studio:     req.Studio,
		Date:       req.Date,
		Time:       t,
		Price:      entity.Amount(req.Price),
	}
}
