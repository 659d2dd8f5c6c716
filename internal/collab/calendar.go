package collab

import (
	"sort"

	"github.com/benvon/day-planner/internal/models"
)

// CalendarSource resolves the ordered event list for a profile and date
type CalendarSource interface {
	Lookup(profile *models.Profile, date string) ([]models.CalendarEvent, error)
}

// DemoCalendar serves events from the demo day blocks embedded in profiles.
// The demo data keys days symbolically (Day_1), so every date resolves to the
// first day block.
type DemoCalendar struct{}

// NewDemoCalendar creates a demo calendar source
func NewDemoCalendar() *DemoCalendar {
	return &DemoCalendar{}
}

// Lookup returns the profile's events for the date, sorted by time
func (c *DemoCalendar) Lookup(profile *models.Profile, date string) ([]models.CalendarEvent, error) {
	if profile == nil || len(profile.Days) == 0 {
		return []models.CalendarEvent{}, nil
	}

	dayKeys := make([]string, 0, len(profile.Days))
	for k := range profile.Days {
		dayKeys = append(dayKeys, k)
	}
	sort.Strings(dayKeys)
	blocks := profile.Days[dayKeys[0]]

	events := make([]models.CalendarEvent, 0, len(blocks))
	for t, title := range blocks {
		events = append(events, models.CalendarEvent{Time: t, Title: title})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Time < events[j].Time })

	return events, nil
}
