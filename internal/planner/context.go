package planner

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/benvon/day-planner/internal/collab"
	"github.com/benvon/day-planner/internal/models"
)

// Day boundary constants used when deriving free blocks
const (
	DayStart         = "06:00"
	EveningEnd       = "22:30"
	morningThreshold = "08:00"
	eveningThreshold = "20:30"

	focusMinMinutes    = 45
	morningCutoff      = "12:00"
	afternoonCutoff    = "18:30"
	defaultSpanMinutes = 480
)

// ContextEngine derives scheduling features from a profile calendar
type ContextEngine struct {
	calendar collab.CalendarSource
}

// NewContextEngine creates a context engine backed by the given calendar
func NewContextEngine(calendar collab.CalendarSource) *ContextEngine {
	return &ContextEngine{calendar: calendar}
}

// DeriveContext computes the DayContext for a profile and date. It is
// deterministic and has no side effects; the only failure mode is the
// calendar lookup itself.
func (e *ContextEngine) DeriveContext(profile *models.Profile, date string) (*models.DayContext, error) {
	events, err := e.calendar.Lookup(profile, date)
	if err != nil {
		return nil, err
	}

	sorted := make([]models.CalendarEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return eventSortKey(sorted[i]) < eventSortKey(sorted[j])
	})

	ctx := &models.DayContext{
		Events:     sorted,
		EventCount: len(sorted),
		FreeBlocks: freeBlocks(sorted),
		DayLoad:    classifyLoad(len(sorted)),
		EventTypes: countEventTypes(sorted),
	}
	if len(sorted) > 0 {
		ctx.FirstEventTime = sorted[0].Time
		ctx.FirstEventTitle = sorted[0].Title
		ctx.LastEventTime = sorted[len(sorted)-1].Time
		ctx.LastEventTitle = sorted[len(sorted)-1].Title
	}

	ctx.BlockCount = len(ctx.FreeBlocks)
	for _, b := range ctx.FreeBlocks {
		if b.Minutes > ctx.LongestBlock {
			ctx.LongestBlock = b.Minutes
		}
	}
	ctx.FocusWindows = focusWindows(ctx.FreeBlocks)
	ctx.MeetingDensity = meetingDensity(len(sorted), ctx.FirstEventTime, ctx.LastEventTime)

	// Unparsable dates degrade to a non-weekend day, never an error
	if d, perr := time.Parse("2006-01-02", date); perr == nil {
		ctx.Weekday = d.Weekday().String()[:3]
		ctx.IsWeekend = d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
	}

	meta := profile.Meta
	ctx.Role = meta.Role
	ctx.NightOwl = meta.NightOwl
	ctx.PrefersParties = meta.Parties
	ctx.Religious = meta.Religious
	ctx.Music = meta.Music
	ctx.Hobby = meta.Hobby

	return ctx, nil
}

func eventSortKey(e models.CalendarEvent) string {
	if e.Time == "" {
		return "23:59"
	}
	return e.Time
}

// freeBlocks computes the gaps between consecutive events, plus a synthetic
// morning block before a late-enough first event and a synthetic evening
// block after an early-enough last event.
func freeBlocks(events []models.CalendarEvent) []models.FreeBlock {
	blocks := []models.FreeBlock{}
	var prev *models.CalendarEvent
	for i := range events {
		e := events[i]
		if prev == nil {
			if e.Time > morningThreshold {
				blocks = append(blocks, newFreeBlock(DayStart, e.Time))
			}
		} else {
			blocks = append(blocks, newFreeBlock(prev.Time, e.Time))
		}
		prev = &events[i]
	}
	if prev != nil && prev.Time < eveningThreshold {
		blocks = append(blocks, newFreeBlock(prev.Time, EveningEnd))
	}
	return blocks
}

func newFreeBlock(start, end string) models.FreeBlock {
	minutes := toMinutes(end) - toMinutes(start)
	if minutes < 0 {
		minutes = 0
	}
	return models.FreeBlock{Start: start, End: end, Minutes: minutes}
}

func classifyLoad(count int) models.DayLoad {
	switch {
	case count <= 2:
		return models.DayLoadLight
	case count <= 4:
		return models.DayLoadMedium
	default:
		return models.DayLoadHeavy
	}
}

func countEventTypes(events []models.CalendarEvent) models.EventTypeCounts {
	var counts models.EventTypeCounts
	for _, e := range events {
		title := strings.ToLower(e.Title)
		if strings.Contains(title, "meeting") || strings.Contains(title, "review") {
			counts.Meeting++
		}
		if strings.Contains(title, "call") || strings.Contains(title, "sync") {
			counts.Call++
		}
		if strings.Contains(title, "family") || strings.Contains(title, "kids") {
			counts.Family++
		}
		if strings.Contains(title, "party") || strings.Contains(title, "drink") {
			counts.Party++
		}
		if strings.Contains(title, "flight") || strings.Contains(title, "commute") || strings.Contains(title, "drive") {
			counts.Travel++
		}
	}
	return counts
}

// focusWindows picks the longest qualifying morning and afternoon blocks.
// A category is omitted when no block qualifies.
func focusWindows(blocks []models.FreeBlock) []models.FocusWindow {
	var bestMorning, bestAfternoon *models.FreeBlock
	for i := range blocks {
		b := blocks[i]
		if b.Minutes < focusMinMinutes {
			continue
		}
		switch {
		case b.Start <= morningCutoff:
			if bestMorning == nil || b.Minutes > bestMorning.Minutes {
				bestMorning = &blocks[i]
			}
		case b.Start <= afternoonCutoff:
			if bestAfternoon == nil || b.Minutes > bestAfternoon.Minutes {
				bestAfternoon = &blocks[i]
			}
		}
	}

	windows := []models.FocusWindow{}
	if bestMorning != nil {
		windows = append(windows, models.FocusWindow{Window: bestMorning.Start + "-" + bestMorning.End, Minutes: bestMorning.Minutes})
	}
	if bestAfternoon != nil {
		windows = append(windows, models.FocusWindow{Window: bestAfternoon.Start + "-" + bestAfternoon.End, Minutes: bestAfternoon.Minutes})
	}
	return windows
}

// meetingDensity is events per hour of calendar span, floored at a one
// minute span to avoid division by zero. Empty days use a default span.
func meetingDensity(count int, firstTime, lastTime string) float64 {
	spanMin := defaultSpanMinutes
	if firstTime != "" && lastTime != "" {
		spanMin = toMinutes(lastTime) - toMinutes(firstTime)
		if spanMin < 1 {
			spanMin = 1
		}
	}
	density := float64(count) / (float64(spanMin) / 60.0)
	return math.Round(density*100) / 100
}

// toMinutes converts "HH:MM" to minutes since midnight; malformed input
// yields zero, matching the defensive defaults used throughout
func toMinutes(t string) int {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0
	}
	return h*60 + m
}
