package models

// DayLoad buckets the number of calendar events into a coarse busyness level
type DayLoad string

const (
	DayLoadLight  DayLoad = "light"
	DayLoadMedium DayLoad = "medium"
	DayLoadHeavy  DayLoad = "heavy"
)

// CalendarEvent is a single timed entry on a profile's day
type CalendarEvent struct {
	Time  string `json:"time"`
	Title string `json:"title"`
}

// FreeBlock is an open interval between events, in "HH:MM" bounds
type FreeBlock struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Minutes int    `json:"minutes"`
}

// FocusWindow is a free block promoted to a deep-work recommendation
type FocusWindow struct {
	Window  string `json:"window"`
	Minutes int    `json:"minutes"`
}

// EventTypeCounts tallies events by keyword category. An event can count
// toward several categories at once.
type EventTypeCounts struct {
	Meeting int `json:"meeting"`
	Call    int `json:"call"`
	Family  int `json:"family"`
	Party   int `json:"party"`
	Travel  int `json:"travel"`
}

// DayContext is the derived scheduling picture for one profile-day. It is
// the sole input contract between the context engine and the agents.
type DayContext struct {
	Events          []CalendarEvent `json:"events"`
	EventCount      int             `json:"event_count"`
	FirstEventTime  string          `json:"first_event_time,omitempty"`
	FirstEventTitle string          `json:"first_event_title,omitempty"`
	LastEventTime   string          `json:"last_event_time,omitempty"`
	LastEventTitle  string          `json:"last_event_title,omitempty"`
	FreeBlocks      []FreeBlock     `json:"free_blocks"`
	BlockCount      int             `json:"block_count"`
	LongestBlock    int             `json:"longest_block"`
	FocusWindows    []FocusWindow   `json:"focus_windows"`
	DayLoad         DayLoad         `json:"day_load"`
	EventTypes      EventTypeCounts `json:"event_types"`
	MeetingDensity  float64         `json:"meeting_density"`
	Weekday         string          `json:"weekday,omitempty"`
	IsWeekend       bool            `json:"is_weekend"`

	// Profile flags copied through so agents can act on context alone
	Role           string `json:"role,omitempty"`
	NightOwl       bool   `json:"night_owl"`
	PrefersParties bool   `json:"prefers_parties"`
	Religious      bool   `json:"religious"`
	Music          string `json:"music,omitempty"`
	Hobby          string `json:"hobby,omitempty"`
}
