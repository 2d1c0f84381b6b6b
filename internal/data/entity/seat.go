package entity

import (
	"strconv"
	"strings"
	"unicode"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
)

type Seat struct {
	ID         ID         `json:"id_seat"`
	Code       string     `json:"seat_code"`
	Status     SeatStatus `json:"status"`
	ScheduleID ID         `json:"id_schedule,omitempty"`
}

// IsAvailable reports whether the seat can be selected. Any status other
// than available, including an empty one, is treated as taken.
func (s Seat) IsAvailable() bool {
	return strings.EqualFold(strings.TrimSpace(string(s.Status)), string(SeatAvailable))
}

// Row is the leading letter part of the seat code ("A" for "A10").
func (s Seat) Row() string {
	return strings.ToUpper(strings.TrimRightFunc(s.Code, unicode.IsDigit))
}

// Number is the trailing numeric part of the seat code; ok is false when
// the code has no parsable suffix.
func (s Seat) Number() (int, bool) {
	digits := strings.TrimPrefix(s.Code, strings.TrimRightFunc(s.Code, unicode.IsDigit))
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
