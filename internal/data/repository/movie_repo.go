package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"luminacine/internal/data/entity"
	"luminacine/pkg/backend"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const movieCachePrefix = "luminacine:movies:"

type MovieRepository interface {
	FindAll(ctx context.Context) ([]entity.Movie, error)
	FindByID(ctx context.Context, id entity.ID) (*entity.Movie, error)
	Create(ctx context.Context, movie *entity.Movie) (*entity.Movie, error)
	Update(ctx context.Context, id entity.ID, movie *entity.Movie) (*entity.Movie, error)
	Delete(ctx context.Context, id entity.ID) error
}

type movieRepository struct {
	api backend.API
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// NewMovieRepository reads through rdb when it is non-nil.
func NewMovieRepository(api backend.API, rdb *redis.Client, ttl time.Duration, log *zap.Logger) MovieRepository {
	return &movieRepository{
		api: api,
		rdb: rdb,
		ttl: ttl,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) FindAll(ctx context.Context) ([]entity.Movie, error) {
	var movies []entity.Movie
	if r.cached(ctx, "all", &movies) {
		return movies, nil
	}

	if err := r.api.Do(ctx, http.MethodGet, "/movies", nil, &movies); err != nil {
		r.log.Error("Failed to fetch movies", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch movies: %w", err)
	}

	r.store(ctx, "all", movies)
	return movies, nil
}

func (r *movieRepository) FindByID(ctx context.Context, id entity.ID) (*entity.Movie, error) {
	var movie entity.Movie
	if r.cached(ctx, id.String(), &movie) {
		return &movie, nil
	}

	if err := r.api.Do(ctx, http.MethodGet, "/movies/"+id.Segment(), nil, &movie); err != nil {
		if !errors.Is(err, backend.ErrNotFound) {
			r.log.Error("Failed to fetch movie", zap.Error(err), zap.String("movie_id", id.String()))
		}
		return nil, fmt.Errorf("failed to fetch movie %s: %w", id, err)
	}

	r.store(ctx, id.String(), movie)
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	var created entity.Movie
	if err := r.api.Do(ctx, http.MethodPost, "/movies", movie, &created); err != nil {
		r.log.Error("Failed to create movie", zap.Error(err), zap.String("title", movie.Title))
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	r.invalidate(ctx)
	return &created, nil
}

func (r *movieRepository) Update(ctx context.Context, id entity.ID, movie *entity.Movie) (*entity.Movie, error) {
	var updated entity.Movie
	if err := r.api.Do(ctx, http.MethodPut, "/movies/"+id.Segment(), movie, &updated); err != nil {
		r.log.Error("Failed to update movie", zap.Error(err), zap.String("movie_id", id.String()))
		return nil, fmt.Errorf("failed to update movie %s: %w", id, err)
	}
	if updated.ID.IsZero() {
		updated = *movie
		updated.ID = id
	}

	r.invalidate(ctx, id.String())
	return &updated, nil
}

func (r *movieRepository) Delete(ctx context.Context, id entity.ID) error {
	if err := r.api.Do(ctx, http.MethodDelete, "/movies/"+id.Segment(), nil, nil); err != nil {
		r.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", id.String()))
		return fmt.Errorf("failed to delete movie %s: %w", id, err)
	}

	r.invalidate(ctx, id.String())
	return nil
}

// cached reports a hit; cache errors are treated as misses.
func (r *movieRepository) cached(ctx context.Context, key string, out any) bool {
	if r.rdb == nil {
		return false
	}

	raw, err := r.rdb.Get(ctx, movieCachePrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("Movie cache read failed", zap.Error(err), zap.String("key", key))
		}
		return false
	}

	return json.Unmarshal(raw, out) == nil
}

func (r *movieRepository) store(ctx context.Context, key string, value any) {
	if r.rdb == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, movieCachePrefix+key, raw, r.ttl).Err(); err != nil {
		r.log.Warn("Movie cache write failed", zap.Error(err), zap.String("key", key))
	}
}

func (r *movieRepository) invalidate(ctx context.Context, ids ...string) {
	if r.rdb == nil {
		return
	}

	keys := []string{movieCachePrefix + "all"}
	for _, id := range ids {
		keys = append(keys, movieCachePrefix+id)
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn("Movie cache invalidation failed", zap.Error(err))
	}
}
