// Package workflow drives the gated event-planning pipeline: a Plan moves
// through review, time selection, invitee selection and invite review before
// an explicit confirmation sends the invites and schedules home operations.
package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benvon/day-planner/internal/collab"
	"github.com/benvon/day-planner/internal/models"
	"github.com/benvon/day-planner/internal/services/ai"
	"github.com/benvon/day-planner/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrValidation marks rejected inputs; the plan is left unmodified
var ErrValidation = errors.New("validation failed")

// DefaultEventLeadDays is how far out an unspecified event date lands
const DefaultEventLeadDays = 14

// DefaultBudget applies when neither an amount nor a tier is given
const DefaultBudget = models.BudgetTierMedium

// candidate evening slots offered during time selection
var timeSlotGrid = []string{"18:00", "18:30", "19:00", "19:30", "20:00", "20:30", "21:00"}

const maxTimeOptions = 3
const maxInviteeSuggestions = 10
const maxAvailabilityEvents = 2

// Engine runs the planning pipeline against a Plan aggregate. All stage
// functions are idempotent; the whole pipeline is re-run after every edit
// and each stage short-circuits when its output already exists.
type Engine struct {
	calendar  collab.CalendarSource
	messenger collab.Messenger
	provider  ai.Provider
	logger    *zap.Logger
	now       func() time.Time
}

// NewEngine creates a workflow engine. provider may be nil; tone edits then
// use the deterministic rewriter.
func NewEngine(calendar collab.CalendarSource, messenger collab.Messenger, provider ai.Provider, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		calendar:  calendar,
		messenger: messenger,
		provider:  provider,
		logger:    logger,
		now:       time.Now,
	}
}

// StartParams are the optional seeds for a new plan
type StartParams struct {
	HonoreeName string   `json:"honoree_name"`
	Relation    string   `json:"relation"`
	EventType   string   `json:"event_type"`
	EventDate   string   `json:"event_date"`
	Budget      Budget   `json:"budget"`
	Invitees    []string `json:"invitees"`
}

// Budget accepts either an integer amount or a tier keyword in JSON
type Budget int

// UnmarshalJSON normalizes {low, medium, high} tiers to amounts
func (b *Budget) UnmarshalJSON(data []byte) error {
	var amount int
	if err := json.Unmarshal(data, &amount); err == nil {
		*b = Budget(amount)
		return nil
	}
	var tier string
	if err := json.Unmarshal(data, &tier); err != nil {
		return fmt.Errorf("budget must be an integer or a tier keyword: %w", err)
	}
	*b = Budget(models.BudgetForTier(tier))
	return nil
}

// StartPlan creates a new plan thread and runs the pipeline once
func (e *Engine) StartPlan(ctx context.Context, profileID string, profile *models.Profile, params StartParams) (*models.Plan, error) {
	if params.EventDate != "" {
		if err := validation.ValidateDate(params.EventDate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	now := e.now()
	plan := &models.Plan{
		ThreadID:    uuid.NewString(),
		ProfileID:   profileID,
		HonoreeName: validation.SanitizeText(params.HonoreeName),
		Relation:    validation.SanitizeText(params.Relation),
		EventType:   validation.SanitizeText(params.EventType),
		Date:        params.EventDate,
		Budget:      int(params.Budget),
		Invitees:    dedupe(params.Invitees),
		Timeline:    []models.TimelineTask{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	e.Run(ctx, plan, profile)
	e.logger.Info("plan_started",
		zap.String("thread_id", plan.ThreadID),
		zap.String("profile_id", profileID),
		zap.String("stage", string(plan.Stage)),
	)
	return plan, nil
}

// Run re-executes all four stages. Safe to call after any partial edit.
func (e *Engine) Run(ctx context.Context, plan *models.Plan, profile *models.Profile) {
	e.stageCalendar(plan, profile)
	e.stagePlanner(plan, profile)
	e.stageCompose(plan, profile)
	e.stageSend(ctx, plan)
	plan.UpdatedAt = e.now()
}

// stageCalendar fixes the event date and captures availability around it
func (e *Engine) stageCalendar(plan *models.Plan, profile *models.Profile) {
	if plan.Date == "" {
		plan.Date = e.now().AddDate(0, 0, DefaultEventLeadDays).Format("2006-01-02")
	}
	if len(plan.Availability) > 0 {
		return
	}

	// Availability lookups degrade to empty, never fail the pipeline
	events, err := e.calendar.Lookup(profile, plan.Date)
	if err != nil {
		e.logger.Warn("availability_lookup_failed", zap.String("thread_id", plan.ThreadID), zap.Error(err))
		events = nil
	}
	if len(events) > maxAvailabilityEvents {
		events = events[:maxAvailabilityEvents]
	}
	plan.Availability = make([]string, 0, len(events))
	for _, ev := range events {
		plan.Availability = append(plan.Availability, ev.Time+" "+ev.Title)
	}
}

// stagePlanner fills honoree, budget, theme and venue defaults
func (e *Engine) stagePlanner(plan *models.Plan, profile *models.Profile) {
	if plan.HonoreeName == "" {
		plan.HonoreeName = "Spouse"
	}
	if plan.Relation == "" {
		plan.Relation = "family"
	}
	if plan.EventType == "" {
		plan.EventType = "birthday"
	}
	if plan.Budget <= 0 {
		plan.Budget = DefaultBudget
	}
	if len(plan.ThemeOptions) == 0 {
		plan.ThemeOptions = ThemeSuggestions(profile, plan.HonoreeName)
	}
	if plan.Theme == "" {
		plan.Theme = plan.ThemeOptions[0]
	}
	if plan.Venue == "" {
		plan.Venue = DefaultVenue(profile)
	}
	if len(plan.VenueOptions.Restaurant) == 0 && len(plan.VenueOptions.Home) == 0 {
		plan.VenueOptions = VenueChoices()
	}
	if plan.Stage == "" {
		plan.Stage = models.StageReviewThemeVenue
	}
}

// stageCompose advances through time selection, invitee selection and invite
// composition once the theme and venue are confirmed.
func (e *Engine) stageCompose(plan *models.Plan, profile *models.Profile) {
	if !plan.Stage.AtLeast(models.StageThemeVenueConfirmed) || plan.Stage == models.StageSent {
		return
	}

	if plan.Time == "" {
		plan.TimeOptions = timeOptions(plan.Availability)
		// The one permitted rewind: a cleared time (date or venue edit)
		// pulls the plan back to time selection.
		plan.Stage = models.StagePickTime
		return
	}

	if len(plan.Invitees) == 0 {
		plan.InviteeSuggestions = inviteeSuggestions(profile)
		plan.Stage = models.StageSelectInvitees
		return
	}

	if plan.InviteTemplate == "" {
		plan.InviteTemplate = DefaultInviteTemplate
	}
	plan.InvitePreview = RenderPreview(plan.InviteTemplate, plan.Invitees, e.inviteParams(plan))
	if plan.Stage.Index() < models.StageReviewInvite.Index() {
		plan.Stage = models.StageReviewInvite
	}
}

// stageSend dispatches invites and, for home venues, schedules the ops
// timeline. Runs only on the explicit ready_to_send gate.
func (e *Engine) stageSend(ctx context.Context, plan *models.Plan) {
	if plan.Stage != models.StageReadyToSend {
		return
	}

	params := e.inviteParams(plan)
	params["name"] = "Friend"
	params["guest"] = "Friend"
	message := ComposeMessage(plan.InviteTemplate, params)

	result, err := e.messenger.SendInvites(ctx, plan.ThreadID, plan.Invitees, message)
	if err != nil {
		// Dispatch failures degrade to an empty result; the plan still
		// reaches sent so ops scheduling is not blocked
		e.logger.Warn("invite_dispatch_failed", zap.String("thread_id", plan.ThreadID), zap.Error(err))
		result = &models.SendResult{Failed: []string{}, Preview: collab.Preview(message)}
	}
	plan.InviteResult = result
	plan.Stage = models.StageSent

	if len(plan.Timeline) == 0 && strings.Contains(strings.ToLower(plan.Venue), "home") {
		plan.Timeline = buildTimeline(plan, e.now())
	}
	e.logger.Info("invites_sent",
		zap.String("thread_id", plan.ThreadID),
		zap.Int("invitees", len(plan.Invitees)),
		zap.Int("timeline_tasks", len(plan.Timeline)),
	)
}

func (e *Engine) inviteParams(plan *models.Plan) map[string]string {
	return map[string]string{
		"honoree": plan.HonoreeName,
		"spouse":  plan.HonoreeName,
		"date":    plan.Date,
		"venue":   plan.Venue,
		"rsvp":    RSVPLink,
	}
}

// timeOptions offers evening slots that do not collide with availability
// events, capped and deduplicated; falls back to the head of the grid
func timeOptions(availability []string) []string {
	busy := make(map[string]bool, len(availability))
	for _, a := range availability {
		if len(a) >= 5 {
			busy[a[:5]] = true
		}
	}
	out := make([]string, 0, maxTimeOptions)
	for _, slot := range timeSlotGrid {
		if busy[slot] {
			continue
		}
		out = append(out, slot)
		if len(out) == maxTimeOptions {
			return out
		}
	}
	if len(out) == 0 {
		out = append(out, timeSlotGrid[:maxTimeOptions]...)
	}
	return out
}

// inviteeSuggestions pools family then colleague emails, deduplicated
func inviteeSuggestions(profile *models.Profile) []string {
	if profile == nil {
		return []string{}
	}
	out := make([]string, 0, maxInviteeSuggestions)
	seen := make(map[string]bool)
	add := func(people []models.Person) {
		for _, p := range people {
			if p.Email == "" || seen[p.Email] || len(out) >= maxInviteeSuggestions {
				continue
			}
			seen[p.Email] = true
			out = append(out, p.Email)
		}
	}
	add(profile.Meta.Family)
	add(profile.Meta.Colleagues)
	return out
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
