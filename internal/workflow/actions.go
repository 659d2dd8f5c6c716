package workflow

import (
	"context"
	"fmt"

	"github.com/benvon/day-planner/internal/models"
	"github.com/benvon/day-planner/internal/validation"
	"go.uber.org/zap"
)

// Action names accepted by ApplyAction
const (
	ActionChangeTheme       = "change_theme"
	ActionChangeVenue       = "change_venue"
	ActionConfirmThemeVenue = "confirm_theme_venue"
	ActionChooseTime        = "choose_time"
	ActionChangeDate        = "change_date"
	ActionAdjustBudget      = "adjust_budget"
	ActionAddInvitees       = "add_invitees"
	ActionRemoveInvitees    = "remove_invitees"
	ActionConfirmInvitees   = "confirm_invitees"
	ActionEditInviteTone    = "edit_invite_tone"
	ActionEditInviteText    = "edit_invite_text"
	ActionConfirmSend       = "confirm_send"
)

// Action is one mutation request against a plan. Only the fields relevant
// to the named action are read.
type Action struct {
	Name     string   `json:"action" validate:"required"`
	Theme    string   `json:"theme,omitempty"`
	Venue    string   `json:"venue,omitempty"`
	Time     string   `json:"time,omitempty"`
	Date     string   `json:"date,omitempty"`
	Budget   Budget   `json:"budget,omitempty"`
	Invitees []string `json:"invitees,omitempty"`
	Style    string   `json:"style,omitempty"`
	Brevity  string   `json:"brevity,omitempty"`
	Template string   `json:"template,omitempty"`
}

// ApplyAction mutates the plan per the action, then re-runs the pipeline to
// fill downstream gaps. On a validation error the plan is left unmodified.
func (e *Engine) ApplyAction(ctx context.Context, plan *models.Plan, profile *models.Profile, action Action) error {
	if plan.Stage == models.StageSent {
		return fmt.Errorf("%w: plan already sent", ErrValidation)
	}

	switch action.Name {
	case ActionChangeTheme:
		theme := validation.SanitizeText(action.Theme)
		if theme == "" {
			return fmt.Errorf("%w: theme is required", ErrValidation)
		}
		plan.Theme = theme
		e.resetSchedule(plan)

	case ActionChangeVenue:
		venue := validation.SanitizeText(action.Venue)
		if venue == "" {
			return fmt.Errorf("%w: venue is required", ErrValidation)
		}
		plan.Venue = venue
		e.resetSchedule(plan)

	case ActionConfirmThemeVenue:
		if plan.Stage == models.StageReviewThemeVenue {
			plan.Stage = models.StageThemeVenueConfirmed
		}

	case ActionChooseTime:
		if err := validation.ValidateTimeOfDay(action.Time); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		plan.Time = action.Time

	case ActionChangeDate:
		if err := validation.ValidateDate(action.Date); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		plan.Date = action.Date
		e.resetSchedule(plan)

	case ActionAdjustBudget:
		if action.Budget <= 0 {
			return fmt.Errorf("%w: budget must be positive", ErrValidation)
		}
		plan.Budget = int(action.Budget)

	case ActionAddInvitees:
		if len(action.Invitees) == 0 {
			return fmt.Errorf("%w: invitees are required", ErrValidation)
		}
		plan.Invitees = dedupe(append(plan.Invitees, action.Invitees...))

	case ActionRemoveInvitees:
		if len(action.Invitees) == 0 {
			return fmt.Errorf("%w: invitees are required", ErrValidation)
		}
		drop := make(map[string]bool, len(action.Invitees))
		for _, v := range action.Invitees {
			drop[v] = true
		}
		kept := plan.Invitees[:0:0]
		for _, v := range plan.Invitees {
			if !drop[v] {
				kept = append(kept, v)
			}
		}
		plan.Invitees = kept

	case ActionConfirmInvitees:
		if len(plan.Invitees) == 0 {
			return fmt.Errorf("%w: no invitees to confirm", ErrValidation)
		}

	case ActionEditInviteTone:
		style := action.Style
		if style == "" {
			style = "friendly"
		}
		brevity := normalizeBrevity(action.Brevity)
		template := plan.InviteTemplate
		if template == "" {
			template = DefaultInviteTemplate
		}
		plan.InviteTemplate = e.rewriteTemplate(ctx, style, brevity, template)
		plan.InvitePreview = RenderPreview(plan.InviteTemplate, plan.Invitees, e.inviteParams(plan))

	case ActionEditInviteText:
		template := action.Template
		if template == "" {
			return fmt.Errorf("%w: template is required", ErrValidation)
		}
		plan.InviteTemplate = template
		plan.InvitePreview = RenderPreview(template, plan.Invitees, e.inviteParams(plan))

	case ActionConfirmSend:
		if !plan.Stage.AtLeast(models.StageReviewInvite) {
			return fmt.Errorf("%w: invite must be reviewed before sending", ErrValidation)
		}
		plan.Stage = models.StageReadyToSend

	default:
		return fmt.Errorf("%w: unknown action %q", ErrValidation, action.Name)
	}

	e.Run(ctx, plan, profile)
	e.logger.Info("action_applied",
		zap.String("thread_id", plan.ThreadID),
		zap.String("action", action.Name),
		zap.String("stage", string(plan.Stage)),
	)
	return nil
}

// resetSchedule clears time-dependent fields so the pipeline recomputes them
func (e *Engine) resetSchedule(plan *models.Plan) {
	plan.Time = ""
	plan.TimeOptions = nil
	plan.Availability = nil
}

// rewriteTemplate prefers the LLM and falls back to deterministic tweaks
func (e *Engine) rewriteTemplate(ctx context.Context, style, brevity, template string) string {
	if e.provider != nil {
		revised, err := e.provider.RewriteInvite(ctx, style, brevity, template)
		if err != nil {
			e.logger.Warn("invite_rewrite_failed", zap.Error(err))
		} else if revised != "" {
			return revised
		}
	}
	return RewriteTone(style, brevity, template)
}

func normalizeBrevity(b string) string {
	switch b {
	case "short", "brief":
		return "short"
	case "detailed", "long":
		return "detailed"
	default:
		return "medium"
	}
}
