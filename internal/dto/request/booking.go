package request

// OpenCheckoutRequest starts a checkout for one showing. With Reschedule
// set the submission updates BookingID instead of creating a booking.
type OpenCheckoutRequest struct {
	MovieID    string `json:"movie_id" validate:"required"`
	ScheduleID string `json:"schedule_id" validate:"required"`
	Reschedule bool   `json:"reschedule"`
	BookingID  string `json:"booking_id" validate:"required_if=Reschedule true"`
}

// RescheduleRequest moves a booking to another showing keeping its seats.
type RescheduleRequest struct {
	MovieID    string `json:"movie_id" validate:"required"`
	ScheduleID string `json:"schedule_id" validate:"required"`
}
