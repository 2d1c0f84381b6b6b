package usecase

import (
	"luminacine/internal/checkout"
	"luminacine/internal/data/repository"
	"luminacine/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Movie    MovieService
	Schedule ScheduleService
	Checkout CheckoutService
	Booking  BookingService
}

func NewService(
	repo *repository.Repository,
	sealer *utils.Sealer,
	checkouts *checkout.Store,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(repo, sealer, checkouts, config, log),
		User:     NewUserService(log),
		Movie:    NewMovieService(repo, log),
		Schedule: NewScheduleService(repo, log),
		Checkout: NewCheckoutService(repo, checkouts, config, log),
		Booking:  NewBookingService(repo, log),
	}
}
