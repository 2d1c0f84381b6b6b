package usecase_test

import (
	"context"
	"sync"

	"luminacine/internal/data/entity"
	"luminacine/internal/data/repository"
	"luminacine/pkg/backend"

	"github.com/google/uuid"
)

type MockUsers struct {
	Result   *repository.LoginResult
	LoginErr error
}

func (m *MockUsers) Login(_ context.Context, _ entity.Credentials) (*repository.LoginResult, error) {
	if m.LoginErr != nil {
		return nil, m.LoginErr
	}
	result := *m.Result
	return &result, nil
}

func (m *MockUsers) Register(_ context.Context, registration entity.Registration) (*entity.User, error) {
	return &entity.User{ID: "100", Name: registration.Name, Email: registration.Email, Role: entity.RoleCustomer}, nil
}

type MockSessions struct {
	lock     sync.Mutex
	Sessions map[uuid.UUID]*entity.Session
}

func NewMockSessions() *MockSessions {
	return &MockSessions{Sessions: make(map[uuid.UUID]*entity.Session)}
}

func (m *MockSessions) Create(_ context.Context, session *entity.Session) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	stored := *session
	stored.BackendToken = ""
	m.Sessions[session.Token] = &stored
	return nil
}

func (m *MockSessions) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	session, ok := m.Sessions[token]
	if !ok || session.RevokedAt != nil {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (m *MockSessions) Revoke(_ context.Context, token uuid.UUID) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	session, ok := m.Sessions[token]
	if !ok || session.RevokedAt != nil {
		return repository.ErrSessionNotFound
	}
	now := session.CreatedAt
	session.RevokedAt = &now
	return nil
}

func (m *MockSessions) RevokeAllUserSessions(_ context.Context, userID entity.ID) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	for _, session := range m.Sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			now := session.CreatedAt
			session.RevokedAt = &now
		}
	}
	return nil
}

func (m *MockSessions) CleanExpiredSessions(context.Context) (int64, error) { return 0, nil }

type MockMovies struct {
	Movies  map[entity.ID]entity.Movie
	Failing map[entity.ID]bool
}

func (m *MockMovies) FindAll(context.Context) ([]entity.Movie, error) {
	out := make([]entity.Movie, 0, len(m.Movies))
	for _, movie := range m.Movies {
		out = append(out, movie)
	}
	return out, nil
}

func (m *MockMovies) FindByID(_ context.Context, id entity.ID) (*entity.Movie, error) {
	if m.Failing[id] {
		return nil, backend.ErrServer
	}
	movie, ok := m.Movies[id]
	if !ok {
		return nil, &backend.APIError{Status: 404}
	}
	return &movie, nil
}

func (m *MockMovies) Create(_ context.Context, movie *entity.Movie) (*entity.Movie, error) {
	return movie, nil
}

func (m *MockMovies) Update(_ context.Context, id entity.ID, movie *entity.Movie) (*entity.Movie, error) {
	movie.ID = id
	return movie, nil
}

func (m *MockMovies) Delete(context.Context, entity.ID) error { return nil }

type MockSchedules struct {
	Schedules []entity.Schedule
}

func (m *MockSchedules) FindByMovie(_ context.Context, movieID entity.ID) ([]entity.Schedule, error) {
	var out []entity.Schedule
	for _, schedule := range m.Schedules {
		if schedule.MovieID == movieID {
			out = append(out, schedule)
		}
	}
	return out, nil
}

func (m *MockSchedules) FindByID(_ context.Context, movieID, scheduleID entity.ID) (*entity.Schedule, error) {
	for _, schedule := range m.Schedules {
		if schedule.ID == scheduleID && schedule.MovieID == movieID {
			return &schedule, nil
		}
	}
	return nil, &backend.APIError{Status: 404}
}

func (m *MockSchedules) Create(_ context.Context, movieID entity.ID, schedule *entity.Schedule) (*entity.Schedule, error) {
	schedule.MovieID = movieID
	return schedule, nil
}

func (m *MockSchedules) Update(_ context.Context, movieID, scheduleID entity.ID, schedule *entity.Schedule) (*entity.Schedule, error) {
	schedule.ID, schedule.MovieID = scheduleID, movieID
	return schedule, nil
}

func (m *MockSchedules) Delete(context.Context, entity.ID) error { return nil }

type MockSeats struct {
	Seats []entity.Seat
	Err   error
}

func (m *MockSeats) FindStatusBySchedule(context.Context, entity.ID) ([]entity.Seat, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]entity.Seat(nil), m.Seats...), nil
}

type BookingCall struct {
	Method     string
	ID         entity.ID
	Payload    entity.BookingPayload
	Reschedule entity.ReschedulePayload
}

type MockBookings struct {
	lock     sync.Mutex
	Bookings map[entity.ID]entity.Booking
	Calls    []BookingCall
	NextID   entity.ID
}

func (m *MockBookings) record(call BookingCall) {
	m.lock.Lock()
	m.Calls = append(m.Calls, call)
	m.lock.Unlock()
}

func (m *MockBookings) Create(_ context.Context, payload entity.BookingPayload) (*entity.Booking, error) {
	m.record(BookingCall{Method: "POST", Payload: payload})
	return &entity.Booking{ID: m.NextID, TotalPrice: payload.TotalPrice}, nil
}

func (m *MockBookings) Update(_ context.Context, id entity.ID, payload entity.BookingPayload) (*entity.Booking, error) {
	m.record(BookingCall{Method: "PUT", ID: id, Payload: payload})
	return &entity.Booking{ID: id, TotalPrice: payload.TotalPrice}, nil
}

func (m *MockBookings) Reschedule(_ context.Context, id entity.ID, payload entity.ReschedulePayload) (*entity.Booking, error) {
	m.record(BookingCall{Method: "PUT", ID: id, Reschedule: payload})
	return &entity.Booking{ID: id}, nil
}

func (m *MockBookings) FindByID(_ context.Context, id entity.ID) (*entity.Booking, error) {
	booking, ok := m.Bookings[id]
	if !ok {
		return nil, &backend.APIError{Status: 404}
	}
	return &booking, nil
}

func (m *MockBookings) FindByUser(_ context.Context, userID entity.ID) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, id := range []entity.ID{"1", "2", "3", "4", "5"} {
		if booking, ok := m.Bookings[id]; ok && booking.UserID == userID {
			out = append(out, booking)
		}
	}
	return out, nil
}

func (m *MockBookings) Delete(_ context.Context, id entity.ID) error {
	m.record(BookingCall{Method: "DELETE", ID: id})
	return nil
}
