package usecase_test

import (
	"context"
	"testing"
	"time"

	"luminacine/internal/checkout"
	"luminacine/internal/data/entity"
	"luminacine/internal/data/repository"
	"luminacine/internal/dto/request"
	"luminacine/internal/dto/response"
	"luminacine/internal/usecase"
	"luminacine/pkg/backend"
	"luminacine/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	repo      *repository.Repository
	sessions  *MockSessions
	bookings  *MockBookings
	users     *MockUsers
	checkouts *checkout.Store
	service   *usecase.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sealer, err := utils.NewSealer("test-secret")
	require.NoError(t, err)

	f := &fixture{
		sessions: NewMockSessions(),
		bookings: &MockBookings{Bookings: map[entity.ID]entity.Booking{}, NextID: "700"},
		users: &MockUsers{Result: &repository.LoginResult{
			AccessToken: "opaque-token",
			User:        entity.User{ID: "12", Name: "Ana", Email: "ana@x.id", Role: entity.RoleCustomer},
		}},
		checkouts: checkout.NewStore(time.Hour),
	}
	f.repo = &repository.Repository{
		User:    f.users,
		Session: f.sessions,
		Movie: &MockMovies{
			Movies:  map[entity.ID]entity.Movie{"4": {ID: "4", Title: "Dune"}, "5": {ID: "5", Title: "Alien"}},
			Failing: map[entity.ID]bool{"6": true},
		},
		Schedule: &MockSchedules{Schedules: []entity.Schedule{
			{ID: "9", MovieID: "4", CinemaName: "Lumina XXI", Studio: "1", Date: "2025-06-01", Time: "19:00:00", Price: 75000},
			{ID: "10", MovieID: "4", CinemaName: "Lumina XXI", Studio: "2", Date: "2025-06-02", Time: "13:00:00", Price: 60000},
		}},
		Seat: &MockSeats{Seats: []entity.Seat{
			{ID: "1", Code: "A1", Status: entity.SeatAvailable},
			{ID: "2", Code: "A2", Status: entity.SeatAvailable},
			{ID: "3", Code: "A3", Status: entity.SeatBooked},
		}},
		Booking: f.bookings,
	}

	config := &utils.Config{
		Session:  utils.SessionConfig{ExpiryHours: 24},
		Checkout: utils.CheckoutConfig{ServiceFee: 5000},
	}
	f.service = usecase.NewService(f.repo, sealer, f.checkouts, config, zap.NewNop())
	return f
}

// login opens a session and returns a context carrying it, as the auth
// middleware would.
func (f *fixture) login(t *testing.T) context.Context {
	t.Helper()

	resp, err := f.service.Auth.Login(context.Background(), &request.LoginRequest{Email: "ana@x.id", Password: "pw"}, usecase.ClientMeta{})
	require.NoError(t, err)

	session, err := f.service.Auth.Resolve(context.Background(), resp.Token)
	require.NoError(t, err)
	return utils.SetSessionContext(context.Background(), session)
}

func TestAuth_LoginSealsTokenAndResolves(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.Auth.Login(context.Background(), &request.LoginRequest{Email: "ana@x.id", Password: "pw"}, usecase.ClientMeta{UserAgent: "test"})
	require.NoError(t, err)
	assert.Equal(t, "/home", resp.Redirect)
	assert.Equal(t, "12", resp.UserID)

	token, err := uuid.Parse(resp.Token)
	require.NoError(t, err)
	stored := f.sessions.Sessions[token]
	require.NotNil(t, stored)
	assert.NotContains(t, string(stored.SealedToken), "opaque-token")

	session, err := f.service.Auth.Resolve(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", session.BackendToken)

	_, err = f.service.Auth.Resolve(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, usecase.ErrSessionInvalid)
	_, err = f.service.Auth.Resolve(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, usecase.ErrSessionInvalid)
}

func TestAuth_LoginUsesTokenClaims(t *testing.T) {
	f := newFixture(t)

	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp":  exp.Unix(),
		"role": "admin",
	}).SignedString([]byte("backend-key"))
	require.NoError(t, err)
	f.users.Result.AccessToken = token

	resp, err := f.service.Auth.Login(context.Background(), &request.LoginRequest{Email: "ana@x.id", Password: "pw"}, usecase.ClientMeta{})
	require.NoError(t, err)

	assert.Equal(t, "/admindashboard", resp.Redirect)
	assert.Equal(t, entity.RoleAdmin, resp.Role)
	assert.True(t, resp.ExpiresAt.Equal(exp))
}

func TestAuth_LoginTakesLargeUserIDFromClaims(t *testing.T) {
	f := newFixture(t)
	f.users.Result.User.ID = ""

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id_user": 1000000,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("backend-key"))
	require.NoError(t, err)
	f.users.Result.AccessToken = token

	resp, err := f.service.Auth.Login(context.Background(), &request.LoginRequest{Email: "ana@x.id", Password: "pw"}, usecase.ClientMeta{})
	require.NoError(t, err)
	assert.Equal(t, "1000000", resp.UserID)

	session, err := f.service.Auth.Resolve(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.ID("1000000"), session.UserID)
}

func TestAuth_LoginRejected(t *testing.T) {
	f := newFixture(t)
	f.users.LoginErr = &backend.APIError{Method: "POST", Path: "/login", Status: 401, Message: "wrong password"}

	_, err := f.service.Auth.Login(context.Background(), &request.LoginRequest{Email: "ana@x.id", Password: "pw"}, usecase.ClientMeta{})
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	f.users.LoginErr = backend.ErrTransport
	_, err = f.service.Auth.Login(context.Background(), &request.LoginRequest{Email: "ana@x.id", Password: "pw"}, usecase.ClientMeta{})
	assert.ErrorIs(t, err, backend.ErrTransport)
}

func TestAuth_LogoutClosesCheckouts(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t)

	_, err := f.service.Checkout.Open(ctx, &request.OpenCheckoutRequest{MovieID: "4", ScheduleID: "9"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.checkouts.Len())

	session, _ := utils.GetSessionFromContext(ctx)
	require.NoError(t, f.service.Auth.Logout(ctx, session))
	assert.Zero(t, f.checkouts.Len())

	_, err = f.service.Auth.Resolve(context.Background(), session.Token.String())
	assert.ErrorIs(t, err, usecase.ErrSessionInvalid)

	require.NoError(t, f.service.Auth.Logout(ctx, session))
}

func TestAuth_LogoutAllRevokesEverySession(t *testing.T) {
	f := newFixture(t)
	first := f.login(t)
	second := f.login(t)

	session, _ := utils.GetSessionFromContext(first)
	require.NoError(t, f.service.Auth.LogoutAll(first, session))

	other, _ := utils.GetSessionFromContext(second)
	_, err := f.service.Auth.Resolve(context.Background(), other.Token.String())
	assert.ErrorIs(t, err, usecase.ErrSessionInvalid)
}

func TestCheckout_CreateFlow(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t)

	view, err := f.service.Checkout.Open(ctx, &request.OpenCheckoutRequest{MovieID: "4", ScheduleID: "9"})
	require.NoError(t, err)
	assert.Equal(t, checkout.LoadReady, view.LoadState)
	assert.False(t, view.CanConfirm)

	flowID := uuid.MustParse(view.FlowID)
	for _, seat := range []string{"1", "2"} {
		view, err = f.service.Checkout.ToggleSeat(ctx, flowID, seat)
		require.NoError(t, err)
	}
	assert.Equal(t, "Rp. 150.000", view.SubtotalLabel)
	assert.Equal(t, "Rp. 155.000", view.TotalLabel)

	_, err = f.service.Checkout.ToggleSeat(ctx, flowID, "3")
	assert.ErrorIs(t, err, checkout.ErrSeatBooked)

	view, err = f.service.Checkout.Proceed(ctx, flowID)
	require.NoError(t, err)
	assert.Equal(t, checkout.StepReview, view.Step)

	confirm, err := f.service.Checkout.Confirm(ctx, flowID)
	require.NoError(t, err)
	assert.Equal(t, "700", confirm.BookingID)
	assert.Equal(t, "/ticket/700", confirm.Redirect)

	require.Len(t, f.bookings.Calls, 1)
	assert.Equal(t, "POST", f.bookings.Calls[0].Method)
	assert.Equal(t, entity.ID("12"), f.bookings.Calls[0].Payload.UserID)

	view, err = f.service.Checkout.View(ctx, flowID)
	require.NoError(t, err)
	assert.Equal(t, checkout.SubmitSubmitted, view.Submission)
	assert.Equal(t, "/ticket/700", view.TicketPath)
}

func TestCheckout_RescheduleFlow(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t)
	f.bookings.Bookings["55"] = entity.Booking{ID: "55", UserID: "12"}

	view, err := f.service.Checkout.Open(ctx, &request.OpenCheckoutRequest{MovieID: "4", ScheduleID: "9", Reschedule: true, BookingID: "55"})
	require.NoError(t, err)
	assert.True(t, view.Reschedule)

	flowID := uuid.MustParse(view.FlowID)
	_, err = f.service.Checkout.ToggleSeat(ctx, flowID, "1")
	require.NoError(t, err)

	confirm, err := f.service.Checkout.Confirm(ctx, flowID)
	require.NoError(t, err)
	assert.Equal(t, "55", confirm.BookingID)
	assert.True(t, confirm.Rescheduled)

	require.Len(t, f.bookings.Calls, 1)
	assert.Equal(t, "PUT", f.bookings.Calls[0].Method)
	assert.Equal(t, entity.ID("55"), f.bookings.Calls[0].ID)
}

func TestCheckout_RescheduleOfForeignBooking(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t)
	f.bookings.Bookings["56"] = entity.Booking{ID: "56", UserID: "99"}

	_, err := f.service.Checkout.Open(ctx, &request.OpenCheckoutRequest{MovieID: "4", ScheduleID: "9", Reschedule: true, BookingID: "56"})
	assert.ErrorIs(t, err, usecase.ErrBookingNotFound)

	_, err = f.service.Checkout.Open(ctx, &request.OpenCheckoutRequest{MovieID: "4", ScheduleID: "9", Reschedule: true, BookingID: "404"})
	assert.ErrorIs(t, err, usecase.ErrBookingNotFound)
}

func TestCheckout_LoadFailureStaysInView(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t)
	f.repo.Seat.(*MockSeats).Err = backend.ErrTransport

	view, err := f.service.Checkout.Open(ctx, &request.OpenCheckoutRequest{MovieID: "4", ScheduleID: "9"})
	require.NoError(t, err)
	assert.Equal(t, checkout.LoadError, view.LoadState)
	assert.NotEmpty(t, view.Error)
	assert.Empty(t, view.Rows)

	f.repo.Seat.(*MockSeats).Err = &backend.APIError{Status: 401}
	_, err = f.service.Checkout.Reload(ctx, uuid.MustParse(view.FlowID))
	assert.ErrorIs(t, err, backend.ErrUnauthorized)
}

func TestCheckout_FlowsAreScopedToSession(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t)
	other := f.login(t)

	view, err := f.service.Checkout.Open(ctx, &request.OpenCheckoutRequest{MovieID: "4", ScheduleID: "9"})
	require.NoError(t, err)

	flowID := uuid.MustParse(view.FlowID)
	_, err = f.service.Checkout.View(other, flowID)
	assert.ErrorIs(t, err, checkout.ErrFlowNotFound)

	require.NoError(t, f.service.Checkout.Close(ctx, flowID))
	_, err = f.service.Checkout.View(ctx, flowID)
	assert.ErrorIs(t, err, checkout.ErrFlowNotFound)
}

func TestBooking_HistoryDegradesUnknownMovies(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t)
	f.bookings.Bookings["1"] = entity.Booking{ID: "1", UserID: "12", Schedule: &entity.Schedule{MovieID: "4"}, TotalPrice: 80000}
	f.bookings.Bookings["2"] = entity.Booking{ID: "2", UserID: "12", Schedule: &entity.Schedule{MovieID: "6"}}
	f.bookings.Bookings["3"] = entity.Booking{ID: "3", UserID: "12", Schedule: &entity.Schedule{MovieID: "4"}}
	f.bookings.Bookings["4"] = entity.Booking{ID: "4", UserID: "99", Schedule: &entity.Schedule{MovieID: "4"}}

	page, err := f.service.Booking.GetUserBookings(ctx, &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Dune", page.Data[0].MovieTitle)
	assert.Equal(t, "Rp. 80.000", page.Data[0].TotalLabel)
	assert.Equal(t, response.UnknownMovie, page.Data[1].MovieTitle)

	page, err = f.service.Booking.GetUserBookings(ctx, &request.PaginatedRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "3", page.Data[0].BookingID)

	page, err = f.service.Booking.GetUserBookings(ctx, &request.PaginatedRequest{Page: 1e17, PerPage: 100})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(3), page.Pagination.Total)
}

func TestBooking_PureReschedule(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t)
	f.bookings.Bookings["55"] = entity.Booking{ID: "55", UserID: "12", Schedule: &entity.Schedule{MovieID: "4"}}

	ticket, err := f.service.Booking.Reschedule(ctx, "55", &request.RescheduleRequest{MovieID: "4", ScheduleID: "10"})
	require.NoError(t, err)
	assert.Equal(t, "55", ticket.BookingID)

	require.Len(t, f.bookings.Calls, 1)
	assert.Equal(t, entity.ReschedulePayload{ScheduleID: "10", NewPrice: 60000}, f.bookings.Calls[0].Reschedule)
}

func TestBooking_CancelForeignBooking(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t)
	f.bookings.Bookings["4"] = entity.Booking{ID: "4", UserID: "99"}

	assert.ErrorIs(t, f.service.Booking.CancelBooking(ctx, "4"), usecase.ErrBookingNotFound)
	assert.Empty(t, f.bookings.Calls)
}

func TestBooking_UnownedBookingIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t)
	f.bookings.Bookings["8"] = entity.Booking{ID: "8", Schedule: &entity.Schedule{MovieID: "4"}}

	_, err := f.service.Booking.GetTicket(ctx, "8")
	assert.ErrorIs(t, err, usecase.ErrBookingNotFound)
	assert.ErrorIs(t, f.service.Booking.CancelBooking(ctx, "8"), usecase.ErrBookingNotFound)
	_, err = f.service.Checkout.Open(ctx, &request.OpenCheckoutRequest{MovieID: "4", ScheduleID: "9", Reschedule: true, BookingID: "8"})
	assert.ErrorIs(t, err, usecase.ErrBookingNotFound)
	assert.Empty(t, f.bookings.Calls)

	admin := utils.SetSessionContext(context.Background(), &entity.Session{UserID: "1", Role: entity.RoleAdmin})
	require.NoError(t, f.service.Booking.CancelBooking(admin, "8"))
	require.Len(t, f.bookings.Calls, 1)
	assert.Equal(t, "DELETE", f.bookings.Calls[0].Method)
}

func TestMovie_SchedulesDefaultToFirstDate(t *testing.T) {
	f := newFixture(t)

	list, err := f.service.Movie.GetSchedules(context.Background(), "4", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, list.Dates)
	assert.Equal(t, "2025-06-01", list.SelectedDate)
	require.Len(t, list.Groups, 1)
	assert.Equal(t, "Rp. 75.000", list.Groups[0].PriceLabel)

	list, err = f.service.Movie.GetSchedules(context.Background(), "4", "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, "2", list.Groups[0].Studio)
}
