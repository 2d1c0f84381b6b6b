package request

// MovieRequest carries a poster URL that is already hosted somewhere.
type MovieRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Synopsis    string `json:"sinopsis" validate:"required"`
	Genre       string `json:"genre" validate:"required"`
	Duration    int    `json:"duration" validate:"required,gt=0"`
	PosterURL   string `json:"poster_url" validate:"required,url"`
	ReleaseDate string `json:"release_date" validate:"required,datetime=2006-01-02"`
}

type ScheduleRequest struct {
	CinemaName string `json:"cinema_name" validate:"required"`
	Studio     string `json:"studio" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time" validate:"required"`
	Price      int64  `json:"price" validate:"required,gt=0"`
}
