package models

import (
	"time"

	"github.com/google/uuid"
)

// Stage is the gate an event plan currently sits at. Stages only ever move
// forward, and each confirmation action advances exactly one gate.
type Stage string

const (
	StageReviewThemeVenue    Stage = "review_theme_venue"
	StageThemeVenueConfirmed Stage = "theme_venue_confirmed"
	StagePickTime            Stage = "pick_time"
	StageSelectInvitees      Stage = "select_invitees"
	StageReviewInvite        Stage = "review_invite"
	StageReadyToSend         Stage = "ready_to_send"
	StageSent                Stage = "sent"
)

var stageOrder = map[Stage]int{
	StageReviewThemeVenue:    0,
	StageThemeVenueConfirmed: 1,
	StagePickTime:            2,
	StageSelectInvitees:      3,
	StageReviewInvite:        4,
	StageReadyToSend:         5,
	StageSent:                6,
}

// Index returns the stage's position in the pipeline, or -1 for unknown stages
func (s Stage) Index() int {
	if i, ok := stageOrder[s]; ok {
		return i
	}
	return -1
}

// AtLeast reports whether the stage is at or past the other stage
func (s Stage) AtLeast(other Stage) bool {
	return s.Index() >= other.Index()
}

// Budget tiers in rupees
const (
	BudgetTierLow    = 3000
	BudgetTierMedium = 10000
	BudgetTierHigh   = 25000
)

// BudgetForTier maps a tier name to its amount; unknown tiers get medium
func BudgetForTier(tier string) int {
	switch tier {
	case "low":
		return BudgetTierLow
	case "high":
		return BudgetTierHigh
	default:
		return BudgetTierMedium
	}
}

// TaskKind identifies a home-operations task on the plan timeline
type TaskKind string

const (
	TaskDecideMenu      TaskKind = "decide_menu"
	TaskGroceryShopping TaskKind = "grocery_shopping"
	TaskWifiAccess      TaskKind = "wifi_access"
	TaskSecureLocks     TaskKind = "secure_locks"
	TaskPostCleanup     TaskKind = "post_cleanup"
)

// TaskStatus is the lifecycle state of a timeline task
type TaskStatus string

const (
	TaskScheduled TaskStatus = "scheduled"
	TaskRunning   TaskStatus = "running"
	TaskDone      TaskStatus = "done"
	TaskFailed    TaskStatus = "failed"
	TaskSkipped   TaskStatus = "skipped"
)

// Per-kind task results

type MenuResult struct {
	Guests int      `json:"guests"`
	Veg    int      `json:"veg"`
	Dishes []string `json:"dishes"`
}

type GroceryResult struct {
	Items []string `json:"list"`
	ETA   string   `json:"eta"`
}

type WifiResult struct {
	SSID        string `json:"ssid"`
	QRGenerated bool   `json:"qr_generated"`
}

type LocksResult struct {
	Engaged bool `json:"engaged"`
}

type CleanupResult struct {
	Rooms []string `json:"rooms"`
}

// TaskResult holds the outcome of a completed task; exactly one section is
// set, matching the task's kind.
type TaskResult struct {
	Menu    *MenuResult    `json:"menu,omitempty"`
	Grocery *GroceryResult `json:"grocery,omitempty"`
	Wifi    *WifiResult    `json:"wifi,omitempty"`
	Locks   *LocksResult   `json:"locks,omitempty"`
	Cleanup *CleanupResult `json:"cleanup,omitempty"`
}

// TimelineTask is one scheduled home-operations task on a plan
type TimelineTask struct {
	ID          uuid.UUID   `json:"id"`
	Kind        TaskKind    `json:"kind"`
	Title       string      `json:"title"`
	ScheduledAt time.Time   `json:"scheduled_at"`
	DueAt       time.Time   `json:"due_at"`
	Status      TaskStatus  `json:"status"`
	Notes       string      `json:"notes,omitempty"`
	Result      *TaskResult `json:"result,omitempty"`
}

// VenueOptions groups the candidate venues offered during theme review
type VenueOptions struct {
	Restaurant []string `json:"restaurant"`
	Home       []string `json:"home"`
}

// SendResult summarizes an invite dispatch. Queued counts invites handed to
// the async dispatcher rather than delivered inline.
type SendResult struct {
	Sent    int      `json:"sent"`
	Queued  int      `json:"queued,omitempty"`
	Failed  []string `json:"failed"`
	Preview string   `json:"preview"`
}

// Plan is the full state of one event-planning thread
type Plan struct {
	ThreadID  string `json:"thread_id"`
	ProfileID string `json:"profile_id"`

	HonoreeName string `json:"honoree_name"`
	Relation    string `json:"relation"`
	EventType   string `json:"event_type"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Budget      int    `json:"budget"`

	Theme        string       `json:"theme"`
	ThemeOptions []string     `json:"theme_options"`
	Venue        string       `json:"venue"`
	VenueOptions VenueOptions `json:"venue_options"`

	Availability []string `json:"availability"`
	TimeOptions  []string `json:"time_options"`

	Invitees           []string `json:"invitees"`
	InviteeSuggestions []string `json:"invitee_suggestions"`

	InviteTemplate string `json:"invite_template"`
	InvitePreview  string `json:"invite_preview"`

	Stage        Stage                   `json:"stage"`
	InviteResult *SendResult             `json:"invite_result,omitempty"`
	Timeline     []TimelineTask          `json:"timeline"`
	Ops          map[TaskKind]TaskResult `json:"ops,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
