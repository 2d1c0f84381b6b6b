package checkout

import "errors"

var (
	ErrEmptySelection     = errors.New("no seats selected")
	ErrScheduleMissing    = errors.New("schedule not loaded")
	ErrSeatBooked         = errors.New("seat is already booked")
	ErrSeatNotFound       = errors.New("seat does not belong to this schedule")
	ErrNotReady           = errors.New("seat inventory is not ready")
	ErrSubmissionInFlight = errors.New("a booking submission is already in flight")
	ErrAlreadySubmitted   = errors.New("booking already submitted")
	ErrBookingConflict    = errors.New("selected seats are no longer available")
	ErrMissingBookingID   = errors.New("backend accepted the booking without an id")
	ErrLoadSuperseded     = errors.New("load result discarded")
	ErrFlowClosed         = errors.New("checkout flow closed")
	ErrFlowNotFound       = errors.New("checkout flow not found")
)
