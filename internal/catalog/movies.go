package catalog

import (
	"sort"
	"strings"

	"luminacine/internal/data/entity"
)

// Filter narrows the movie list. Empty fields match everything.
type Filter struct {
	Search string
	Year   string
	Genre  string
}

func (f Filter) matches(movie entity.Movie) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(movie.Title), strings.ToLower(strings.TrimSpace(f.Search))) {
		return false
	}
	if f.Year != "" && movie.ReleaseYear() != f.Year {
		return false
	}
	if f.Genre != "" {
		for _, genre := range movie.Genres() {
			if strings.EqualFold(genre, strings.TrimSpace(f.Genre)) {
				return true
			}
		}
		return false
	}
	return true
}

func FilterMovies(movies []entity.Movie, filter Filter) []entity.Movie {
	out := make([]entity.Movie, 0, len(movies))
	for _, movie := range movies {
		if filter.matches(movie) {
			out = append(out, movie)
		}
	}
	return out
}

// Years lists the distinct release years, newest first.
func Years(movies []entity.Movie) []string {
	seen := make(map[string]struct{})
	var years []string
	for _, movie := range movies {
		year := movie.ReleaseYear()
		if year == "" {
			continue
		}
		if _, ok := seen[year]; !ok {
			seen[year] = struct{}{}
			years = append(years, year)
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}

// Genres lists the distinct genres in alphabetical order.
func Genres(movies []entity.Movie) []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, movie := range movies {
		for _, genre := range movie.Genres() {
			if _, ok := seen[genre]; !ok {
				seen[genre] = struct{}{}
				genres = append(genres, genre)
			}
		}
	}

	sort.Strings(genres)
	return genres
}
