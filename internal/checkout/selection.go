package checkout

import "luminacine/internal/data/entity"

// Selection is the set of seats picked in one flow. It is unique by seat
// ID and remembers insertion order for display. Not safe for concurrent
// use; Flow guards it.
type Selection struct {
	seats []entity.Seat
	index map[entity.ID]struct{}
}

func NewSelection() *Selection {
	return &Selection{index: make(map[entity.ID]struct{})}
}

func (s *Selection) Contains(id entity.ID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Selection) Add(seat entity.Seat) bool {
	if s.Contains(seat.ID) {
		return false
	}
	s.index[seat.ID] = struct{}{}
	s.seats = append(s.seats, seat)
	return true
}

func (s *Selection) Remove(id entity.ID) bool {
	if !s.Contains(id) {
		return false
	}
	delete(s.index, id)
	for i, seat := range s.seats {
		if seat.ID == id {
			s.seats = append(s.seats[:i], s.seats[i+1:]...)
			break
		}
	}
	return true
}

func (s *Selection) Len() int {
	return len(s.seats)
}

func (s *Selection) Seats() []entity.Seat {
	out := make([]entity.Seat, len(s.seats))
	copy(out, s.seats)
	return out
}

func (s *Selection) IDs() []entity.ID {
	ids := make([]entity.ID, 0, len(s.seats))
	for _, seat := range s.seats {
		ids = append(ids, seat.ID)
	}
	return ids
}

func (s *Selection) Clear() {
	s.seats = nil
	s.index = make(map[entity.ID]struct{})
}
