package request

// PaginatedRequest pages a list the BFF holds in full, such as the booking
// history the backend returns unpaged.
type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// Limit is PerPage clamped to 1..100, defaulting to 10.
func (p PaginatedRequest) Limit() int {
	switch {
	case p.PerPage < 1:
		return 10
	case p.PerPage > 100:
		return 100
	default:
		return p.PerPage
	}
}
