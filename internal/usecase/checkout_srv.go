package usecase

import (
	"context"
	"errors"
	"time"

	"luminacine/internal/checkout"
	"luminacine/internal/data/entity"
	"luminacine/internal/data/repository"
	"luminacine/internal/dto/request"
	"luminacine/internal/dto/response"
	"luminacine/pkg/backend"
	"luminacine/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutService interface {
	Open(ctx context.Context, req *request.OpenCheckoutRequest) (*response.CheckoutResponse, error)
	View(ctx context.Context, flowID uuid.UUID) (*response.CheckoutResponse, error)
	Reload(ctx context.Context, flowID uuid.UUID) (*response.CheckoutResponse, error)
	Proceed(ctx context.Context, flowID uuid.UUID) (*response.CheckoutResponse, error)
	ToggleSeat(ctx context.Context, flowID uuid.UUID, seatID string) (*response.CheckoutResponse, error)
	Confirm(ctx context.Context, flowID uuid.UUID) (*response.ConfirmResponse, error)
	Close(ctx context.Context, flowID uuid.UUID) error
	Sweep() int
}

type checkoutService struct {
	repo       *repository.Repository
	store      *checkout.Store
	inventory  checkout.Inventory
	serviceFee entity.Amount
	log        *zap.Logger
}

func NewCheckoutService(
	repo *repository.Repository,
	store *checkout.Store,
	config *utils.Config,
	log *zap.Logger,
) CheckoutService {
	return &checkoutService{
		repo:       repo,
		store:      store,
		inventory:  showingInventory{schedules: repo.Schedule, seats: repo.Seat},
		serviceFee: entity.Amount(config.Checkout.ServiceFee),
		log:        log.With(zap.String("service", "checkout")),
	}
}

// showingInventory feeds the checkout loader from the repositories.
type showingInventory struct {
	schedules repository.ScheduleRepository
	seats     repository.SeatRepository
}

func (i showingInventory) Schedule(ctx context.Context, movieID, scheduleID entity.ID) (*entity.Schedule, error) {
	return i.schedules.FindByID(ctx, movieID, scheduleID)
}

func (i showingInventory) Seats(ctx context.Context, scheduleID entity.ID) ([]entity.Seat, error) {
	return i.seats.FindStatusBySchedule(ctx, scheduleID)
}

// Open starts a checkout and loads it right away. Load failures end up in
// the returned view; only a rejected session is returned as an error.
func (s *checkoutService) Open(ctx context.Context, req *request.OpenCheckoutRequest) (*response.CheckoutResponse, error) {
	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	params := checkout.Params{
		MovieID:    entity.ID(req.MovieID),
		ScheduleID: entity.ID(req.ScheduleID),
		UserID:     session.UserID,
	}

	if req.Reschedule {
		booking, err := s.repo.Booking.FindByID(ctx, entity.ID(req.BookingID))
		if err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, err
		}
		if !ownsBooking(session, booking) {
			s.log.Warn("Reschedule of another user's booking requested",
				zap.String("booking_id", booking.ID.String()),
				zap.String("owner_id", booking.UserID.String()),
				zap.String("user_id", session.UserID.String()))
			return nil, ErrBookingNotFound
		}
		params.RescheduleBookingID = booking.ID
	}

	flow := checkout.NewFlow(params, s.inventory, s.repo.Booking, s.serviceFee, s.log)
	s.store.Open(session.ID.String(), flow)

	s.log.Info("Checkout opened",
		zap.String("flow_id", flow.ID().String()),
		zap.String("schedule_id", req.ScheduleID),
		zap.Bool("reschedule", params.IsReschedule()),
	)

	if err := s.load(ctx, flow); err != nil {
		return nil, err
	}
	return s.render(flow), nil
}

func (s *checkoutService) View(ctx context.Context, flowID uuid.UUID) (*response.CheckoutResponse, error) {
	flow, err := s.flow(ctx, flowID)
	if err != nil {
		return nil, err
	}

	if flow.NeedsLoad() {
		if err := s.load(ctx, flow); err != nil {
			return nil, err
		}
	}
	return s.render(flow), nil
}

func (s *checkoutService) Reload(ctx context.Context, flowID uuid.UUID) (*response.CheckoutResponse, error) {
	flow, err := s.flow(ctx, flowID)
	if err != nil {
		return nil, err
	}

	if err := s.load(ctx, flow); err != nil {
		return nil, err
	}
	return s.render(flow), nil
}

func (s *checkoutService) Proceed(ctx context.Context, flowID uuid.UUID) (*response.CheckoutResponse, error) {
	flow, err := s.flow(ctx, flowID)
	if err != nil {
		return nil, err
	}

	if err := flow.Proceed(); err != nil {
		return nil, err
	}
	return s.render(flow), nil
}

func (s *checkoutService) ToggleSeat(ctx context.Context, flowID uuid.UUID, seatID string) (*response.CheckoutResponse, error) {
	flow, err := s.flow(ctx, flowID)
	if err != nil {
		return nil, err
	}

	if _, err := flow.Toggle(entity.ID(seatID)); err != nil {
		return nil, err
	}
	return s.render(flow), nil
}

func (s *checkoutService) Confirm(ctx context.Context, flowID uuid.UUID) (*response.ConfirmResponse, error) {
	flow, err := s.flow(ctx, flowID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := flow.Confirm(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Info("Checkout confirmed",
		zap.String("flow_id", flowID.String()),
		zap.String("booking_id", result.BookingID.String()),
		zap.Duration("duration", time.Since(start)),
	)

	resp := response.ConfirmToResponse(result)
	return &resp, nil
}

func (s *checkoutService) Close(ctx context.Context, flowID uuid.UUID) error {
	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		return ErrNoSession
	}
	return s.store.Close(flowID, session.ID.String())
}

func (s *checkoutService) Sweep() int {
	return s.store.Sweep()
}

func (s *checkoutService) flow(ctx context.Context, flowID uuid.UUID) (*checkout.Flow, error) {
	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}
	return s.store.Get(flowID, session.ID.String())
}

// load keeps load failures inside the flow state, except a rejected
// backend session which the caller must act on.
func (s *checkoutService) load(ctx context.Context, flow *checkout.Flow) error {
	err := flow.Load(ctx)
	switch {
	case err == nil,
		errors.Is(err, checkout.ErrLoadSuperseded),
		errors.Is(err, checkout.ErrSubmissionInFlight):
		return nil
	case errors.Is(err, backend.ErrUnauthorized), errors.Is(err, checkout.ErrFlowClosed):
		return err
	default:
		return nil
	}
}

func (s *checkoutService) render(flow *checkout.Flow) *response.CheckoutResponse {
	resp := response.CheckoutToResponse(flow.Snapshot())
	return &resp
}

// ownsBooking is false for a booking the backend returned without an owner,
// unless the session is an admin.
func ownsBooking(session *entity.Session, booking *entity.Booking) bool {
	if session.Role == entity.RoleAdmin {
		return true
	}
	return !booking.UserID.IsZero() && booking.UserID == session.UserID
}

var _ checkout.Gateway = repository.BookingRepository(nil)
