package utils

import "math"

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// CalculateOffset saturates at math.MaxInt instead of overflowing.
func CalculateOffset(page, perPage int) int {
	if page < 1 || perPage <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

// PageBounds returns the [start, end) slice window of a page over total items.
// Both bounds always fall within [0, total].
func PageBounds(total, page, perPage int) (int, int) {
	if total <= 0 || perPage <= 0 {
		return 0, 0
	}

	start := CalculateOffset(page, perPage)
	if start > total {
		start = total
	}
	end := total
	if perPage < total-start {
		end = start + perPage
	}
	return start, end
}
