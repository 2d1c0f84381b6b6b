package entity

type Booking struct {
	ID         ID        `json:"id_booking"`
	UserID     ID        `json:"id_user"`
	ScheduleID ID        `json:"id_schedule"`
	TotalPrice Amount    `json:"total_price"`
	Schedule   *Schedule `json:"schedule,omitempty"`
	Seats      []Seat    `json:"seats,omitempty"`
}

func (b Booking) SeatCodes() []string {
	codes := make([]string, 0, len(b.Seats))
	for _, seat := range b.Seats {
		codes = append(codes, seat.Code)
	}
	return codes
}

// MovieID resolves the movie through the embedded schedule.
func (b Booking) MovieID() ID {
	if b.Schedule == nil {
		return ""
	}
	return b.Schedule.MovieID
}

// BookingPayload is the body of POST /bookings and of a reschedule with new seats.
type BookingPayload struct {
	UserID     ID     `json:"id_user"`
	ScheduleID ID     `json:"id_schedule"`
	TotalPrice Amount `json:"total_price"`
	Seats      []ID   `json:"seats"`
}

// ReschedulePayload moves a booking to another schedule without changing seats.
type ReschedulePayload struct {
	ScheduleID ID     `json:"id_schedule"`
	NewPrice   Amount `json:"new_price"`
}
