package catalog

import (
	"sort"

	"luminacine/internal/data/entity"
)

// Venue identifies where a showing happens.
type Venue struct {
	Cinema string
	Studio string
}

// Group is the set of showings of one venue on one date.
type Group struct {
	Venue     Venue
	Price     entity.Amount
	Schedules []entity.Schedule
}

// Dates lists the distinct show dates in ascending order.
func Dates(schedules []entity.Schedule) []string {
	seen := make(map[string]struct{})
	var dates []string
	for _, schedule := range schedules {
		date := schedule.DateOnly()
		if _, ok := seen[date]; !ok {
			seen[date] = struct{}{}
			dates = append(dates, date)
		}
	}

	sort.Strings(dates)
	return dates
}

// GroupByVenue keeps the schedules of date and groups them by venue.
// Groups keep first-seen order; times within a group are ascending. The
// group price is the price of its earliest showing.
func GroupByVenue(schedules []entity.Schedule, date string) []Group {
	index := make(map[Venue]int)
	var groups []Group
	for _, schedule := range schedules {
		if schedule.DateOnly() != date {
			continue
		}

		venue := Venue{Cinema: schedule.CinemaName, Studio: schedule.Studio}
		i, ok := index[venue]
		if !ok {
			i = len(groups)
			index[venue] = i
			groups = append(groups, Group{Venue: venue})
		}
		groups[i].Schedules = append(groups[i].Schedules, schedule)
	}

	for i := range groups {
		sort.SliceStable(groups[i].Schedules, func(a, b int) bool {
			return groups[i].Schedules[a].ShortTime() < groups[i].Schedules[b].ShortTime()
		})
		groups[i].Price = groups[i].Schedules[0].Price
	}
	return groups
}
