package entity

import (
	"strings"
	"time"
)

type Schedule struct {
	ID         ID     `json:"id_schedule,omitempty"`
	MovieID    ID     `json:"id_movie,omitempty"`
	CinemaName string `json:"cinema_name"`
	Studio     string `json:"studio"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Price      Amount `json:"price"`
	Movie      *Movie `json:"movie,omitempty"`
}

// ShortTime trims seconds, "14:30:00" -> "14:30".
func (s Schedule) ShortTime() string {
	if len(s.Time) >= 5 {
		return s.Time[:5]
	}
	return s.Time
}

// DateOnly drops a timestamp suffix the backend sometimes appends.
func (s Schedule) DateOnly() string {
	if i := strings.IndexByte(s.Date, 'T'); i > 0 {
		return s.Date[:i]
	}
	return s.Date
}

func (s Schedule) StartsAt() (time.Time, bool) {
	t, err := time.Parse("2006-01-02 15:04", s.DateOnly()+" "+s.ShortTime())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
