package agents

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/benvon/day-planner/internal/models"
	"github.com/benvon/day-planner/internal/planner"
)

type stubBullets struct {
	tips []string
	err  error
}

func (s *stubBullets) GenerateBullets(ctx context.Context, prompt string, count int) ([]string, error) {
	return s.tips, s.err
}

func TestRunCoversAllRoutedAgents(t *testing.T) {
	t.Parallel()

	profile := &models.Profile{Meta: models.ProfileMeta{Role: "software engineer"}}
	req := &Request{Date: "2025-06-02", Context: &models.DayContext{DayLoad: models.DayLoadMedium}}

	for name := range planner.KnownAgents {
		card, ok := Run(name, profile, req)
		if !ok {
			t.Errorf("Agent %q is routed but not registered", name)
			continue
		}
		if card == nil {
			t.Errorf("Agent %q returned no card", name)
			continue
		}
		if card.Agent == "" || card.Title == "" {
			t.Errorf("Agent %q produced an incomplete card: %+v", name, card)
		}
	}
}

func TestRunUnknownAgent(t *testing.T) {
	t.Parallel()

	if card, ok := Run("nonexistent", &models.Profile{}, &Request{}); ok || card != nil {
		t.Errorf("Expected no card for unknown agent, got %v / %v", card, ok)
	}
}

func TestDisplayNamesResolve(t *testing.T) {
	t.Parallel()

	if len(DisplayNames) != len(planner.KnownAgents) {
		t.Fatalf("Expected %d display names, got %d", len(planner.KnownAgents), len(DisplayNames))
	}
	for display, name := range DisplayNames {
		if !planner.KnownAgents[name] {
			t.Errorf("Display name %q maps to unknown agent %q", display, name)
		}
	}
}

func TestSupervisorInsightsFallbackTips(t *testing.T) {
	t.Parallel()

	day := &models.DayContext{
		DayLoad:      models.DayLoadLight,
		EventCount:   2,
		FocusWindows: []models.FocusWindow{{Window: "09:00-11:30", Minutes: 150}},
	}
	card := SupervisorInsights(context.Background(), nil, &models.Profile{}, day)

	if card.Agent != "SupervisorAgent" || card.Priority != 0 {
		t.Errorf("Unexpected card identity: %+v", card)
	}
	if card.Summary != "Load light; 2 events; focus 09:00-11:30" {
		t.Errorf("Summary = %q", card.Summary)
	}
	tips := card.Data.Insights.Insights
	if len(tips) != 3 {
		t.Fatalf("Expected 3 fallback tips, got %v", tips)
	}
	if tips[0] != "Protect 60m deep work 09:00-11:30" {
		t.Errorf("Deep-work tip = %q", tips[0])
	}
	if !strings.Contains(tips[2], "21:30") {
		t.Errorf("Expected early wind-down for non night owls, got %q", tips[2])
	}
}

func TestSupervisorInsightsNightOwlWindDown(t *testing.T) {
	t.Parallel()

	day := &models.DayContext{NightOwl: true}
	card := SupervisorInsights(context.Background(), nil, &models.Profile{}, day)
	tips := card.Data.Insights.Insights
	if tips[2] != "Aim lights out by 23:30" {
		t.Errorf("Expected night-owl wind-down, got %q", tips[2])
	}
	if tips[0] != "Protect one 60m deep-work block" {
		t.Errorf("Expected generic deep-work tip without focus windows, got %q", tips[0])
	}
}

func TestSupervisorInsightsUsesGeneratedBullets(t *testing.T) {
	t.Parallel()

	bullets := &stubBullets{tips: []string{"one", "two", "three"}}
	card := SupervisorInsights(context.Background(), bullets, &models.Profile{}, &models.DayContext{})
	if len(card.Data.Insights.Insights) != 3 || card.Data.Insights.Insights[0] != "one" {
		t.Errorf("Expected generated tips, got %v", card.Data.Insights.Insights)
	}
}

func TestSupervisorInsightsBulletFailureFallsBack(t *testing.T) {
	t.Parallel()

	bullets := &stubBullets{err: fmt.Errorf("provider down")}
	card := SupervisorInsights(context.Background(), bullets, &models.Profile{}, &models.DayContext{})
	if len(card.Data.Insights.Insights) != 3 {
		t.Fatalf("Expected fallback tips, got %v", card.Data.Insights.Insights)
	}
	if card.Data.Insights.Insights[1] != "Batch emails twice; avoid constant context switching" {
		t.Errorf("Unexpected fallback tip %q", card.Data.Insights.Insights[1])
	}
}

func TestCelebrationsWithinHorizon(t *testing.T) {
	t.Parallel()

	profile := &models.Profile{Meta: models.ProfileMeta{
		Family: []models.Person{
			{Name: "Asha", Relation: "spouse", Birthday: "06-10"},
			{Name: "Ravi", Birthday: "06-01", Anniversary: "09-20"},
		},
		Colleagues: []models.Person{
			{Name: "Meera", Role: "manager", Birthday: "06-05"},
		},
	}}
	req := &Request{Date: "2025-06-02"}

	card := Celebrations(profile, req)
	if card.Priority != 2 {
		t.Fatalf("Expected priority 2, got %d", card.Priority)
	}

	fam := card.Data.Celebrations.UpcomingFamily
	col := card.Data.Celebrations.UpcomingColleagues
	// Ravi's birthday already passed and the anniversary is out of range
	if len(fam) != 1 || fam[0].Name != "Asha" || fam[0].DaysLeft != 8 {
		t.Errorf("UpcomingFamily = %+v", fam)
	}
	if len(col) != 1 || col[0].Name != "Meera" || col[0].DaysLeft != 3 {
		t.Errorf("UpcomingColleagues = %+v", col)
	}
	if card.Summary != "2 upcoming; next: Asha (birthday) in 8d" {
		t.Errorf("Summary = %q", card.Summary)
	}
}

func TestCelebrationsEmpty(t *testing.T) {
	t.Parallel()

	card := Celebrations(&models.Profile{}, &Request{Date: "2025-06-02"})
	if card.Priority != 7 {
		t.Errorf("Expected priority 7, got %d", card.Priority)
	}
	if card.Summary != "No family/colleague events in next 2 weeks." {
		t.Errorf("Summary = %q", card.Summary)
	}
	if card.Data.Celebrations.UpcomingFamily == nil || card.Data.Celebrations.UpcomingColleagues == nil {
		t.Error("Expected empty slices, not nil")
	}
}

func TestCelebrationsSortedByDaysLeft(t *testing.T) {
	t.Parallel()

	profile := &models.Profile{Meta: models.ProfileMeta{
		Family: []models.Person{
			{Name: "Later", Birthday: "06-12"},
			{Name: "Sooner", Birthday: "06-04"},
		},
	}}
	card := Celebrations(profile, &Request{Date: "2025-06-02"})
	fam := card.Data.Celebrations.UpcomingFamily
	if len(fam) != 2 || fam[0].Name != "Sooner" || fam[1].Name != "Later" {
		t.Errorf("Expected soonest first, got %+v", fam)
	}
}

func TestCelebrationsFamilyOnlyHeadline(t *testing.T) {
	t.Parallel()

	// Family anniversary inside the horizon, nearest colleague birthday outside
	profile := &models.Profile{Meta: models.ProfileMeta{
		Family: []models.Person{
			{Name: "Priya", Relation: "spouse", Anniversary: "08-30"},
		},
		Colleagues: []models.Person{
			{Name: "Suresh", Role: "CFO", Birthday: "10-05"},
		},
	}}
	card := Celebrations(profile, &Request{Date: "2025-08-25"})

	if card.Summary != "1 upcoming; next: Priya (anniversary) in 5d" {
		t.Errorf("Summary = %q", card.Summary)
	}
	if len(card.Data.Celebrations.UpcomingFamily) != 1 {
		t.Errorf("UpcomingFamily = %+v", card.Data.Celebrations.UpcomingFamily)
	}
	if len(card.Data.Celebrations.UpcomingColleagues) != 0 {
		t.Errorf("UpcomingColleagues = %+v", card.Data.Celebrations.UpcomingColleagues)
	}
}

func TestFitnessSlotSelection(t *testing.T) {
	t.Parallel()

	req := &Request{Context: &models.DayContext{
		FreeBlocks: []models.FreeBlock{
			{Start: "12:00", End: "13:00", Minutes: 60},
			{Start: "17:00", End: "18:00", Minutes: 60},
		},
	}}
	card := Fitness(&models.Profile{}, req)
	if card.Data.Fitness.SuggestedTime == nil || card.Data.Fitness.SuggestedTime.Start != "17:00" {
		t.Errorf("Expected the late-afternoon slot, got %+v", card.Data.Fitness.SuggestedTime)
	}
	if card.Data.Fitness.Plan != "AM walk 30m + PM bodyweight 20m" {
		t.Errorf("Plan = %q", card.Data.Fitness.Plan)
	}
}

func TestFitnessNightOwlPlan(t *testing.T) {
	t.Parallel()

	profile := &models.Profile{Meta: models.ProfileMeta{NightOwl: true}}
	card := Fitness(profile, &Request{})
	if card.Data.Fitness.Plan != "Evening bike 45m + core" {
		t.Errorf("Plan = %q", card.Data.Fitness.Plan)
	}
}

func TestGettingStartedWeekend(t *testing.T) {
	t.Parallel()

	req := &Request{Date: "2025-06-07", Context: &models.DayContext{IsWeekend: true}}
	card := GettingStarted(&models.Profile{}, req)
	if card.Title != "Weekend Brief" {
		t.Errorf("Title = %q", card.Title)
	}
	if card.Data.Brief.FocusTip != "Keep it light; one meaningful personal task" {
		t.Errorf("FocusTip = %q", card.Data.Brief.FocusTip)
	}
}

func TestGettingStartedNextEvent(t *testing.T) {
	t.Parallel()

	req := &Request{Date: "2025-06-02", Context: &models.DayContext{
		Events:     []models.CalendarEvent{{Time: "09:00", Title: "Standup"}},
		EventCount: 1,
	}}
	card := GettingStarted(&models.Profile{}, req)
	if !strings.Contains(card.Summary, "Next: 09:00 Standup") {
		t.Errorf("Summary = %q", card.Summary)
	}
}
