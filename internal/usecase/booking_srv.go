package usecase

import (
	"context"
	"errors"
	"sync"

	"luminacine/internal/data/entity"
	"luminacine/internal/data/repository"
	"luminacine/internal/dto/request"
	"luminacine/internal/dto/response"
	"luminacine/pkg/backend"
	"luminacine/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const movieLookupConcurrency = 4

type BookingService interface {
	GetTicket(ctx context.Context, bookingID string) (*response.TicketResponse, error)
	GetUserBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error)
	CancelBooking(ctx context.Context, bookingID string) error
	Reschedule(ctx context.Context, bookingID string, req *request.RescheduleRequest) (*response.TicketResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

// GetTicket shows the booking as the backend stores it, including its total.
func (s *bookingService) GetTicket(ctx context.Context, bookingID string) (*response.TicketResponse, error) {
	booking, err := s.ownedBooking(ctx, entity.ID(bookingID))
	if err != nil {
		return nil, err
	}

	resp := response.TicketToResponse(*booking, s.movieOf(ctx, *booking))
	return &resp, nil
}

// GetUserBookings pages through the session user's bookings. Movie lookups
// that fail degrade to an unknown movie rather than failing the page.
func (s *bookingService) GetUserBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	bookings, err := s.repo.Booking.FindByUser(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	start, end := utils.PageBounds(len(bookings), req.Page, req.Limit())
	page := bookings[start:end]

	movies := s.moviesOf(ctx, page)
	items := make([]response.TicketResponse, 0, len(page))
	for _, booking := range page {
		items = append(items, response.TicketToResponse(booking, movies[booking.MovieID()]))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), int64(len(bookings))), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) error {
	booking, err := s.ownedBooking(ctx, entity.ID(bookingID))
	if err != nil {
		return err
	}

	if err := s.repo.Booking.Delete(ctx, booking.ID); err != nil {
		return err
	}

	s.log.Info("Booking cancelled", zap.String("booking_id", bookingID))
	return nil
}

// Reschedule moves the booking to another showing keeping its seats. The
// new price is the target showing's price.
func (s *bookingService) Reschedule(ctx context.Context, bookingID string, req *request.RescheduleRequest) (*response.TicketResponse, error) {
	booking, err := s.ownedBooking(ctx, entity.ID(bookingID))
	if err != nil {
		return nil, err
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, entity.ID(req.MovieID), entity.ID(req.ScheduleID))
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Booking.Reschedule(ctx, booking.ID, entity.ReschedulePayload{
		ScheduleID: schedule.ID,
		NewPrice:   schedule.Price,
	}); err != nil {
		return nil, err
	}

	s.log.Info("Booking rescheduled",
		zap.String("booking_id", bookingID),
		zap.String("schedule_id", schedule.ID.String()))

	return s.GetTicket(ctx, bookingID)
}

func (s *bookingService) ownedBooking(ctx context.Context, id entity.ID) (*entity.Booking, error) {
	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if !ownsBooking(session, booking) {
		s.log.Warn("Booking of another user requested",
			zap.String("booking_id", id.String()),
			zap.String("owner_id", booking.UserID.String()),
			zap.String("user_id", session.UserID.String()))
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) movieOf(ctx context.Context, booking entity.Booking) *entity.Movie {
	movieID := booking.MovieID()
	if movieID.IsZero() {
		return nil
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		s.log.Warn("Movie lookup failed",
			zap.String("booking_id", booking.ID.String()),
			zap.String("movie_id", movieID.String()),
			zap.Error(err))
		return nil
	}
	return movie
}

// moviesOf looks up each distinct movie once, a few at a time.
func (s *bookingService) moviesOf(ctx context.Context, bookings []entity.Booking) map[entity.ID]*entity.Movie {
	var (
		mu     sync.Mutex
		movies = make(map[entity.ID]*entity.Movie)
		seen   = make(map[entity.ID]bool)
	)

	var g errgroup.Group
	g.SetLimit(movieLookupConcurrency)

	for _, booking := range bookings {
		movieID := booking.MovieID()
		if movieID.IsZero() || seen[movieID] {
			continue
		}
		seen[movieID] = true

		booking := booking
		g.Go(func() error {
			movie := s.movieOf(ctx, booking)
			mu.Lock()
			movies[movieID] = movie
			mu.Unlock()
			return nil
		})
	}

	// failed lookups degrade to a nil movie, so no goroutine returns an error
	g.Wait()
	return movies
}
