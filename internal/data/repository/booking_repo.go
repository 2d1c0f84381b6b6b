package repository

import (
	"context"
	"fmt"
	"net/http"

	"luminacine/internal/data/entity"
	"luminacine/pkg/backend"

	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, payload entity.BookingPayload) (*entity.Booking, error)
	Update(ctx context.Context, id entity.ID, payload entity.BookingPayload) (*entity.Booking, error)
	Reschedule(ctx context.Context, id entity.ID, payload entity.ReschedulePayload) (*entity.Booking, error)
	FindByID(ctx context.Context, id entity.ID) (*entity.Booking, error)
	FindByUser(ctx context.Context, userID entity.ID) ([]entity.Booking, error)
	Delete(ctx context.Context, id entity.ID) error
}

type bookingRepository struct {
	api backend.API
	log *zap.Logger
}

func NewBookingRepository(api backend.API, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		api: api,
		log: log.With(zap.String("repository", "booking")),
	}
}

// Create returns the booking as the backend echoes it. The ID may be
// empty when the backend omits it; callers decide what that means.
func (r *bookingRepository) Create(ctx context.Context, payload entity.BookingPayload) (*entity.Booking, error) {
	var booking entity.Booking
	if err := r.api.Do(ctx, http.MethodPost, "/bookings", payload, &booking); err != nil {
		r.log.Warn("Booking create rejected",
			zap.Error(err),
			zap.String("schedule_id", payload.ScheduleID.String()),
			zap.Int("seats", len(payload.Seats)),
		)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &booking, nil
}

// Update replaces schedule and seats of an existing booking. The booking
// keeps its ID whatever the backend echoes.
func (r *bookingRepository) Update(ctx context.Context, id entity.ID, payload entity.BookingPayload) (*entity.Booking, error) {
	var booking entity.Booking
	if err := r.api.Do(ctx, http.MethodPut, "/bookings/"+id.Segment(), payload, &booking); err != nil {
		r.log.Warn("Booking update rejected",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("schedule_id", payload.ScheduleID.String()),
		)
		return nil, fmt.Errorf("failed to update booking %s: %w", id, err)
	}

	booking.ID = id
	return &booking, nil
}

func (r *bookingRepository) Reschedule(ctx context.Context, id entity.ID, payload entity.ReschedulePayload) (*entity.Booking, error) {
	var booking entity.Booking
	if err := r.api.Do(ctx, http.MethodPut, "/bookings/"+id.Segment(), payload, &booking); err != nil {
		r.log.Warn("Booking reschedule rejected",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("schedule_id", payload.ScheduleID.String()),
		)
		return nil, fmt.Errorf("failed to reschedule booking %s: %w", id, err)
	}

	booking.ID = id
	return &booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id entity.ID) (*entity.Booking, error) {
	var booking entity.Booking
	if err := r.api.Do(ctx, http.MethodGet, "/bookings/"+id.Segment(), nil, &booking); err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}

	if booking.ID.IsZero() {
		booking.ID = id
	}
	return &booking, nil
}

func (r *bookingRepository) FindByUser(ctx context.Context, userID entity.ID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	if err := r.api.Do(ctx, http.MethodGet, "/bookings/user/"+userID.Segment(), nil, &bookings); err != nil {
		r.log.Error("Failed to fetch user bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to fetch bookings of user %s: %w", userID, err)
	}
	return bookings, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id entity.ID) error {
	if err := r.api.Do(ctx, http.MethodDelete, "/bookings/"+id.Segment(), nil, nil); err != nil {
		r.log.Error("Failed to delete booking", zap.Error(err), zap.String("booking_id", id.String()))
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	return nil
}
