package entity

import (
	"strings"
	"time"
)

type Movie struct {
	ID          ID     `json:"id_movie,omitempty"`
	Title       string `json:"title"`
	Synopsis    string `json:"sinopsis"`
	Genre       string `json:"genre"`
	Duration    int    `json:"duration"`
	PosterURL   string `json:"poster_url"`
	ReleaseDate string `json:"release_date"`
}

// ReleaseTime accepts both plain dates and full timestamps.
func (m Movie) ReleaseTime() (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, m.ReleaseDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (m Movie) ReleaseYear() string {
	t, ok := m.ReleaseTime()
	if !ok {
		return ""
	}
	return t.Format("2006")
}

// Genres splits the comma separated genre field.
func (m Movie) Genres() []string {
	var genres []string
	for _, g := range strings.Split(m.Genre, ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
