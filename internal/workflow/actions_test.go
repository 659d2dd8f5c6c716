package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/benvon/day-planner/internal/models"
)

func startedPlan(t *testing.T, e *Engine, profile *models.Profile) *models.Plan {
	t.Helper()
	plan, err := e.StartPlan(context.Background(), "p1", profile, StartParams{})
	if err != nil {
		t.Fatalf("StartPlan failed: %v", err)
	}
	return plan
}

func apply(t *testing.T, e *Engine, plan *models.Plan, profile *models.Profile, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		if err := e.ApplyAction(context.Background(), plan, profile, a); err != nil {
			t.Fatalf("Action %s failed: %v", a.Name, err)
		}
	}
}

func TestConfirmationFlowAdvancesStages(t *testing.T) {
	t.Parallel()

	e := newTestEngine(&fakeCalendar{}, &fakeMessenger{})
	profile := homeProfile()
	plan := startedPlan(t, e, profile)

	apply(t, e, plan, profile, Action{Name: ActionConfirmThemeVenue})
	if plan.Stage != models.StagePickTime {
		t.Fatalf("Expected pick_time after theme confirmation, got %q", plan.Stage)
	}
	if len(plan.TimeOptions) == 0 {
		t.Error("Expected time options to be offered")
	}

	apply(t, e, plan, profile, Action{Name: ActionChooseTime, Time: "19:00"})
	if plan.Stage != models.StageSelectInvitees {
		t.Fatalf("Expected select_invitees after choosing a time, got %q", plan.Stage)
	}
	if len(plan.InviteeSuggestions) == 0 {
		t.Error("Expected invitee suggestions from the profile")
	}

	apply(t, e, plan, profile, Action{Name: ActionAddInvitees, Invitees: []string{"asha@example.com"}})
	if plan.Stage != models.StageReviewInvite {
		t.Fatalf("Expected review_invite after adding invitees, got %q", plan.Stage)
	}
	if plan.InviteTemplate == "" || plan.InvitePreview == "" {
		t.Error("Expected a composed invite template and preview")
	}

	apply(t, e, plan, profile, Action{Name: ActionConfirmSend})
	if plan.Stage != models.StageSent {
		t.Fatalf("Expected sent after confirm_send, got %q", plan.Stage)
	}
	if len(plan.Timeline) != 5 {
		t.Errorf("Expected 5 home-ops tasks for a home venue, got %d", len(plan.Timeline))
	}
}

func TestAddInviteesDeduplicates(t *testing.T) {
	t.Parallel()

	e := newTestEngine(&fakeCalendar{}, &fakeMessenger{})
	profile := homeProfile()
	plan := startedPlan(t, e, profile)

	apply(t, e, plan, profile, Action{
		Name:     ActionAddInvitees,
		Invitees: []string{"a@x.com", "a@x.com", "b@x.com", ""},
	})

	want := []string{"a@x.com", "b@x.com"}
	if len(plan.Invitees) != len(want) {
		t.Fatalf("Expected %v, got %v", want, plan.Invitees)
	}
	for i := range want {
		if plan.Invitees[i] != want[i] {
			t.Errorf("Invitee %d = %q, want %q", i, plan.Invitees[i], want[i])
		}
	}
}

func TestRemoveInvitees(t *testing.T) {
	t.Parallel()

	e := newTestEngine(&fakeCalendar{}, &fakeMessenger{})
	profile := homeProfile()
	plan := startedPlan(t, e, profile)

	apply(t, e, plan, profile,
		Action{Name: ActionAddInvitees, Invitees: []string{"a@x.com", "b@x.com", "c@x.com"}},
		Action{Name: ActionRemoveInvitees, Invitees: []string{"b@x.com", "missing@x.com"}},
	)

	if len(plan.Invitees) != 2 || plan.Invitees[0] != "a@x.com" || plan.Invitees[1] != "c@x.com" {
		t.Errorf("Expected [a@x.com c@x.com], got %v", plan.Invitees)
	}
}

func TestEditsRejectedAfterSent(t *testing.T) {
	t.Parallel()

	e := newTestEngine(&fakeCalendar{}, &fakeMessenger{})
	profile := homeProfile()
	plan := startedPlan(t, e, profile)

	apply(t, e, plan, profile,
		Action{Name: ActionConfirmThemeVenue},
		Action{Name: ActionChooseTime, Time: "19:00"},
		Action{Name: ActionAddInvitees, Invitees: []string{"asha@example.com"}},
		Action{Name: ActionConfirmSend},
	)
	if plan.Stage != models.StageSent {
		t.Fatalf("Expected sent, got %q", plan.Stage)
	}

	err := e.ApplyAction(context.Background(), plan, profile, Action{Name: ActionChangeVenue, Venue: "Quiet rooftop"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "already sent") {
		t.Errorf("Expected 'already sent' in error, got %q", err.Error())
	}
}

func TestChangeDateRewindsToTimeSelection(t *testing.T) {
	t.Parallel()

	e := newTestEngine(&fakeCalendar{}, &fakeMessenger{})
	profile := homeProfile()
	plan := startedPlan(t, e, profile)

	apply(t, e, plan, profile,
		Action{Name: ActionConfirmThemeVenue},
		Action{Name: ActionChooseTime, Time: "19:00"},
		Action{Name: ActionAddInvitees, Invitees: []string{"asha@example.com"}},
	)
	if plan.Stage != models.StageReviewInvite {
		t.Fatalf("Expected review_invite, got %q", plan.Stage)
	}

	apply(t, e, plan, profile, Action{Name: ActionChangeDate, Date: "2025-06-20"})

	if plan.Date != "2025-06-20" {
		t.Errorf("Expected date to change, got %q", plan.Date)
	}
	if plan.Time != "" {
		t.Errorf("Expected chosen time to be cleared, got %q", plan.Time)
	}
	if plan.Stage != models.StagePickTime {
		t.Errorf("Expected stage to rewind to pick_time, got %q", plan.Stage)
	}
}

func TestActionValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		action  Action
		wantErr string
	}{
		{name: "unknown action", action: Action{Name: "explode"}, wantErr: "unknown action"},
		{name: "empty theme", action: Action{Name: ActionChangeTheme}, wantErr: "theme is required"},
		{name: "empty venue", action: Action{Name: ActionChangeVenue}, wantErr: "venue is required"},
		{name: "bad time", action: Action{Name: ActionChooseTime, Time: "25:99"}, wantErr: "time"},
		{name: "bad date", action: Action{Name: ActionChangeDate, Date: "20-06-2025"}, wantErr: "date"},
		{name: "zero budget", action: Action{Name: ActionAdjustBudget, Budget: 0}, wantErr: "budget must be positive"},
		{name: "no invitees to add", action: Action{Name: ActionAddInvitees}, wantErr: "invitees are required"},
		{name: "no invitees to confirm", action: Action{Name: ActionConfirmInvitees}, wantErr: "no invitees to confirm"},
		{name: "empty template", action: Action{Name: ActionEditInviteText}, wantErr: "template is required"},
		{name: "premature send", action: Action{Name: ActionConfirmSend}, wantErr: "reviewed before sending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newTestEngine(&fakeCalendar{}, &fakeMessenger{})
			profile := homeProfile()
			plan := startedPlan(t, e, profile)

			err := e.ApplyAction(context.Background(), plan, profile, tt.action)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Expected ErrValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected %q in error, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestEditInviteToneFallback(t *testing.T) {
	t.Parallel()

	e := newTestEngine(&fakeCalendar{}, &fakeMessenger{})
	profile := homeProfile()
	plan := startedPlan(t, e, profile)

	apply(t, e, plan, profile, Action{Name: ActionEditInviteTone, Style: "playful"})

	if !strings.Contains(plan.InviteTemplate, "🎉") {
		t.Errorf("Expected playful rewrite, got %q", plan.InviteTemplate)
	}
	if plan.InvitePreview == "" {
		t.Error("Expected preview to be refreshed")
	}
}

func TestEditInviteTextSetsTemplate(t *testing.T) {
	t.Parallel()

	e := newTestEngine(&fakeCalendar{}, &fakeMessenger{})
	profile := homeProfile()
	plan := startedPlan(t, e, profile)

	apply(t, e, plan, profile, Action{
		Name:     ActionEditInviteText,
		Template: "Come celebrate {honoree} on {date}!",
	})

	if plan.InviteTemplate != "Come celebrate {honoree} on {date}!" {
		t.Errorf("Unexpected template %q", plan.InviteTemplate)
	}
	if !strings.Contains(plan.InvitePreview, "Spouse") {
		t.Errorf("Expected honoree substituted in preview, got %q", plan.InvitePreview)
	}
}

func TestAdjustBudget(t *testing.T) {
	t.Parallel()

	e := newTestEngine(&fakeCalendar{}, &fakeMessenger{})
	profile := homeProfile()
	plan := startedPlan(t, e, profile)

	apply(t, e, plan, profile, Action{Name: ActionAdjustBudget, Budget: 15000})
	if plan.Budget != 15000 {
		t.Errorf("Expected budget 15000, got %d", plan.Budget)
	}
}
