package checkout

import (
	"sort"

	"luminacine/internal/data/entity"
)

// Row is one row of the seat map, e.g. "A": A1, A2, A10.
type Row struct {
	Label string
	Seats []entity.Seat
}

// GroupRows groups seats by their leading letters. Rows sort
// lexicographically, seats within a row by their trailing number; codes
// without a number go last, ordered by code.
func GroupRows(seats []entity.Seat) []Row {
	byRow := make(map[string][]entity.Seat)
	for _, seat := range seats {
		byRow[seat.Row()] = append(byRow[seat.Row()], seat)
	}

	rows := make([]Row, 0, len(byRow))
	for label, rowSeats := range byRow {
		sort.SliceStable(rowSeats, func(i, j int) bool {
			return seatLess(rowSeats[i], rowSeats[j])
		})
		rows = append(rows, Row{Label: label, Seats: rowSeats})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	return rows
}

func seatLess(a, b entity.Seat) bool {
	na, okA := a.Number()
	nb, okB := b.Number()
	switch {
	case okA && okB && na != nb:
		return na < nb
	case okA != okB:
		return okA
	default:
		return a.Code < b.Code
	}
}
