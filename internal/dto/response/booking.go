package response

import (
	"strings"

	"luminacine/internal/checkout"
	"luminacine/internal/data/entity"
	"luminacine/pkg/utils"
)

const (
	SeatAvailable = "available"
	SeatBooked    = "booked"
	SeatSelected  = "selected"
)

type SeatResponse struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Status string `json:"status"`
}

type SeatRowResponse struct {
	Row   string         `json:"row"`
	Seats []SeatResponse `json:"seats"`
}

type CheckoutResponse struct {
	FlowID              string               `json:"flow_id"`
	Step                checkout.Step        `json:"step"`
	LoadState           checkout.LoadState   `json:"load_state"`
	Error               string               `json:"error,omitempty"`
	Schedule            *ScheduleResponse    `json:"schedule,omitempty"`
	Rows                []SeatRowResponse    `json:"rows"`
	SelectedSeats       []string             `json:"selected_seats"`
	SeatCount           int                  `json:"seat_count"`
	Subtotal            int64                `json:"subtotal"`
	SubtotalLabel       string               `json:"subtotal_label"`
	ServiceFee          int64                `json:"service_fee"`
	ServiceFeeLabel     string               `json:"service_fee_label"`
	Total               int64                `json:"total"`
	TotalLabel          string               `json:"total_label"`
	CanProceed          bool                 `json:"can_proceed"`
	CanConfirm          bool                 `json:"can_confirm"`
	Submission          checkout.SubmitState `json:"submission"`
	BookingID           string               `json:"booking_id,omitempty"`
	TicketPath          string               `json:"ticket_path,omitempty"`
	Reschedule          bool                 `json:"reschedule"`
	RescheduleBookingID string               `json:"reschedule_booking_id,omitempty"`
}

type ConfirmResponse struct {
	BookingID   string `json:"booking_id"`
	Rescheduled bool   `json:"rescheduled"`
	Redirect    string `json:"redirect"`
	Total       int64  `json:"total"`
	TotalLabel  string `json:"total_label"`
}

// CheckoutToResponse renders a flow snapshot. Load and submission errors
// surface as one message, submission first.
func CheckoutToResponse(view checkout.View) CheckoutResponse {
	resp := CheckoutResponse{
		FlowID:              view.ID.String(),
		Step:                view.Step,
		LoadState:           view.LoadState,
		Rows:                make([]SeatRowResponse, 0, len(view.Rows)),
		SelectedSeats:       make([]string, 0, len(view.Selected)),
		SeatCount:           view.Quote.SeatCount,
		Subtotal:            int64(view.Quote.Subtotal),
		SubtotalLabel:       utils.FormatRupiah(int64(view.Quote.Subtotal)),
		ServiceFee:          int64(view.Quote.ServiceFee),
		ServiceFeeLabel:     utils.FormatRupiah(int64(view.Quote.ServiceFee)),
		Total:               int64(view.Quote.Total),
		TotalLabel:          utils.FormatRupiah(int64(view.Quote.Total)),
		CanProceed:          view.CanProceed,
		CanConfirm:          view.CanConfirm,
		Submission:          view.Submission,
		Reschedule:          view.Params.IsReschedule(),
		RescheduleBookingID: view.Params.RescheduleBookingID.String(),
	}

	switch {
	case view.SubmitErr != nil:
		resp.Error = view.SubmitErr.Error()
	case view.LoadErr != nil:
		resp.Error = view.LoadErr.Error()
	}

	if view.Schedule != nil {
		schedule := ScheduleToResponse(*view.Schedule)
		resp.Schedule = &schedule
	}

	for _, row := range view.Rows {
		r := SeatRowResponse{Row: row.Label, Seats: make([]SeatResponse, 0, len(row.Seats))}
		for _, seat := range row.Seats {
			status := SeatAvailable
			switch {
			case !seat.IsAvailable():
				status = SeatBooked
			case view.IsSelected(seat.ID):
				status = SeatSelected
			}
			r.Seats = append(r.Seats, SeatResponse{ID: seat.ID.String(), Code: seat.Code, Status: status})
		}
		resp.Rows = append(resp.Rows, r)
	}

	for _, seat := range view.Selected {
		resp.SelectedSeats = append(resp.SelectedSeats, seat.Code)
	}

	if !view.BookingID.IsZero() {
		resp.BookingID = view.BookingID.String()
		resp.TicketPath = "/ticket/" + view.BookingID.String()
	}

	return resp
}

func ConfirmToResponse(result *checkout.Result) ConfirmResponse {
	return ConfirmResponse{
		BookingID:   result.BookingID.String(),
		Rescheduled: result.Rescheduled,
		Redirect:    result.TicketPath(),
		Total:       int64(result.TotalPrice),
		TotalLabel:  utils.FormatRupiah(int64(result.TotalPrice)),
	}
}

type TicketActions struct {
	Reschedule string `json:"reschedule"`
	Cancel     string `json:"cancel"`
}

type TicketResponse struct {
	BookingID  string            `json:"booking_id"`
	Movie      *MovieResponse    `json:"movie,omitempty"`
	MovieTitle string            `json:"movie_title"`
	Schedule   *ScheduleResponse `json:"schedule,omitempty"`
	Seats      string            `json:"seats"`
	SeatCodes  []string          `json:"seat_codes"`
	TotalPrice int64             `json:"total_price"`
	TotalLabel string            `json:"total_label"`
	Actions    TicketActions     `json:"actions"`
}

// UnknownMovie is shown when a booking's movie cannot be looked up.
const UnknownMovie = "Unknown Movie"

// TicketToResponse renders what the backend stored, never a locally
// computed price.
func TicketToResponse(booking entity.Booking, movie *entity.Movie) TicketResponse {
	codes := booking.SeatCodes()
	resp := TicketResponse{
		BookingID:  booking.ID.String(),
		MovieTitle: UnknownMovie,
		Seats:      strings.Join(codes, ", "),
		SeatCodes:  codes,
		TotalPrice: int64(booking.TotalPrice),
		TotalLabel: utils.FormatRupiah(int64(booking.TotalPrice)),
		Actions: TicketActions{
			Cancel: "/api/bookings/" + booking.ID.String(),
		},
	}

	if movie != nil {
		m := MovieToResponse(*movie)
		resp.Movie = &m
		resp.MovieTitle = movie.Title
	}

	if booking.Schedule != nil {
		schedule := ScheduleToResponse(*booking.Schedule)
		resp.Schedule = &schedule
	}

	if movieID := booking.MovieID(); !movieID.IsZero() {
		resp.Actions.Reschedule = "/movies/" + movieID.String() + "?reschedule=true&bookingId=" + booking.ID.String()
	}

	return resp
}
