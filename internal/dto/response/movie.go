package response

import (
	"luminacine/internal/catalog"
	"luminacine/internal/data/entity"
	"luminacine/pkg/utils"
)

type MovieResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Synopsis    string   `json:"synopsis"`
	Genre       string   `json:"genre"`
	Genres      []string `json:"genres"`
	Duration    int      `json:"duration"`
	PosterURL   string   `json:"poster_url"`
	ReleaseDate string   `json:"release_date"`
	ReleaseYear string   `json:"release_year,omitempty"`
}

// CatalogResponse is the movie list plus the values its filter menus offer.
type CatalogResponse struct {
	Movies []MovieResponse `json:"movies"`
	Years  []string        `json:"years"`
	Genres []string        `json:"genres"`
}

type ScheduleResponse struct {
	ID         string `json:"id"`
	MovieID    string `json:"movie_id"`
	CinemaName string `json:"cinema_name"`
	Studio     string `json:"studio"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Price      int64  `json:"price"`
	PriceLabel string `json:"price_label"`
}

type VenueGroupResponse struct {
	Cinema     string             `json:"cinema"`
	Studio     string             `json:"studio"`
	Price      int64              `json:"price"`
	PriceLabel string             `json:"price_label"`
	Schedules  []ScheduleResponse `json:"schedules"`
}

type ScheduleListResponse struct {
	Dates        []string             `json:"dates"`
	SelectedDate string               `json:"selected_date"`
	Groups       []VenueGroupResponse `json:"groups"`
}

func MovieToResponse(movie entity.Movie) MovieResponse {
	genres := movie.Genres()
	if genres == nil {
		genres = []string{}
	}

	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Synopsis:    movie.Synopsis,
		Genre:       movie.Genre,
		Genres:      genres,
		Duration:    movie.Duration,
		PosterURL:   movie.PosterURL,
		ReleaseDate: movie.ReleaseDate,
		ReleaseYear: movie.ReleaseYear(),
	}
}

func MoviesToResponse(movies []entity.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, movie := range movies {
		out = append(out, MovieToResponse(movie))
	}
	return out
}

func ScheduleToResponse(schedule entity.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:         schedule.ID.String(),
		MovieID:    schedule.MovieID.String(),
		CinemaName: schedule.CinemaName,
		Studio:     schedule.Studio,
		Date:       schedule.DateOnly(),
		Time:       schedule.ShortTime(),
		Price:      int64(schedule.Price),
		PriceLabel: utils.FormatRupiah(int64(schedule.Price)),
	}
}

func SchedulesToResponse(dates []string, selected string, groups []catalog.Group) ScheduleListResponse {
	resp := ScheduleListResponse{
		Dates:        dates,
		SelectedDate: selected,
		Groups:       make([]VenueGroupResponse, 0, len(groups)),
	}
	if resp.Dates == nil {
		resp.Dates = []string{}
	}

	for _, group := range groups {
		g := VenueGroupResponse{
			Cinema:     group.Venue.Cinema,
			Studio:     group.Venue.Studio,
			Price:      int64(group.Price),
			PriceLabel: utils.FormatRupiah(int64(group.Price)),
			Schedules:  make([]ScheduleResponse, 0, len(group.Schedules)),
		}
		for _, schedule := range group.Schedules {
			g.Schedules = append(g.Schedules, ScheduleToResponse(schedule))
		}
		resp.Groups = append(resp.Groups, g)
	}
	return resp
}
