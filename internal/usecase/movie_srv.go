package usecase

import (
	"context"

	"luminacine/internal/catalog"
	"luminacine/internal/data/entity"
	"luminacine/internal/data/repository"
	"luminacine/internal/dto/request"
	"luminacine/internal/dto/response"

	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, filter catalog.Filter) (*response.CatalogResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	GetSchedules(ctx context.Context, movieID, date string) (*response.ScheduleListResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

// GetMovies filters in memory; the filter menus are built from the full list.
func (s *movieService) GetMovies(ctx context.Context, filter catalog.Filter) (*response.CatalogResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	years := catalog.Years(movies)
	if years == nil {
		years = []string{}
	}
	genres := catalog.Genres(movies)
	if genres == nil {
		genres = []string{}
	}

	return &response.CatalogResponse{
		Movies: response.MoviesToResponse(catalog.FilterMovies(movies, filter)),
		Years:  years,
		Genres: genres,
	}, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, entity.ID(movieID))
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(*movie)
	return &resp, nil
}

// GetSchedules groups the showings of date by venue. Without a date, or
// with one that has no showings, the earliest date is used.
func (s *movieService) GetSchedules(ctx context.Context, movieID, date string) (*response.ScheduleListResponse, error) {
	schedules, err := s.repo.Schedule.FindByMovie(ctx, entity.ID(movieID))
	if err != nil {
		return nil, err
	}

	dates := catalog.Dates(schedules)
	selected := date
	if !contains(dates, selected) {
		selected = ""
		if len(dates) > 0 {
			selected = dates[0]
		}
	}

	resp := response.SchedulesToResponse(dates, selected, catalog.GroupByVenue(schedules, selected))
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.Create(ctx, movieFromRequest(req))
	if err != nil {
		return nil, err
	}

	s.log.Info("Movie created", zap.String("movie_id", movie.ID.String()), zap.String("title", req.Title))

	resp := response.MovieToResponse(*movie)
	if resp.Title == "" {
		resp = response.MovieToResponse(*movieFromRequest(req))
		resp.ID = movie.ID.String()
	}
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.Update(ctx, entity.ID(movieID), movieFromRequest(req))
	if err != nil {
		return nil, err
	}

	s.log.Info("Movie updated", zap.String("movie_id", movieID))

	resp := response.MovieToResponse(*movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	if err := s.repo.Movie.Delete(ctx, entity.ID(movieID)); err != nil {
		return err
	}

	s.log.Info("Movie deleted", zap.String("movie_id", movieID))
	return nil
}

func movieFromRequest(req *request.MovieRequest) *entity.Movie {
	return &entity.Movie{
		Title:       req.Title,
		Synopsis:    req.Synopsis,
		Genre:       req.Genre,
		Duration:    req.Duration,
		PosterURL:   req.PosterURL,
		ReleaseDate: req.ReleaseDate,
	}
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
