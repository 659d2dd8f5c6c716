package planner

import (
	"testing"

	"github.com/benvon/day-planner/internal/models"
)

func orderEquals(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Order length %d, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Order mismatch at %d\ngot:  %v\nwant: %v", i, got, want)
		}
	}
}

func TestRouteOrderDefaultWeekday(t *testing.T) {
	t.Parallel()

	ctx := &models.DayContext{Role: "software engineer", DayLoad: models.DayLoadMedium}
	got := RouteOrder(&models.Profile{}, ctx)
	orderEquals(t, got, []string{
		AgentGettingStarted, AgentCelebrations, AgentTraffic, AgentWorkLife,
		AgentNutrition, AgentLearning, AgentHobby, AgentFitness,
		AgentFinanceErrands, AgentLifeAfterWork, AgentRelaxation,
	})
}

func TestRouteOrderExec(t *testing.T) {
	t.Parallel()

	ctx := &models.DayContext{Role: "Sales Executive", DayLoad: models.DayLoadMedium}
	got := RouteOrder(&models.Profile{}, ctx)
	orderEquals(t, got, []string{
		AgentGettingStarted, AgentCelebrations, AgentWorkLife, AgentTraffic,
		AgentNutrition, AgentLearning, AgentFitness, AgentFinanceErrands,
		AgentHobby, AgentLifeAfterWork, AgentRelaxation,
	})
}

func TestRouteOrderEveningEngagement(t *testing.T) {
	t.Parallel()

	// A late last event pulls life_after_work up next to learning
	ctx := &models.DayContext{
		Role:          "software engineer",
		DayLoad:       models.DayLoadMedium,
		LastEventTime: "20:00",
	}
	got := RouteOrder(&models.Profile{}, ctx)
	orderEquals(t, got, []string{
		AgentGettingStarted, AgentCelebrations, AgentTraffic, AgentWorkLife,
		AgentNutrition, AgentLearning, AgentLifeAfterWork, AgentHobby,
		AgentFitness, AgentFinanceErrands, AgentRelaxation,
	})
}

func TestRouteOrderWeekend(t *testing.T) {
	t.Parallel()

	ctx := &models.DayContext{
		Role:      "software engineer",
		DayLoad:   models.DayLoadMedium,
		IsWeekend: true,
	}
	got := RouteOrder(&models.Profile{}, ctx)
	orderEquals(t, got, []string{
		AgentGettingStarted, AgentCelebrations, AgentFinanceErrands, AgentLearning,
		AgentHobby, AgentNutrition, AgentFitness, AgentTraffic,
		AgentWorkLife, AgentLifeAfterWork, AgentRelaxation,
	})
}

func TestRouteOrderLightLoadPromotesFitness(t *testing.T) {
	t.Parallel()

	ctx := &models.DayContext{Role: "software engineer", DayLoad: models.DayLoadLight}
	got := RouteOrder(&models.Profile{}, ctx)
	if got[2] != AgentFitness {
		t.Errorf("Expected fitness at position 2 on a light day, got %v", got)
	}

	night := &models.DayContext{Role: "software engineer", DayLoad: models.DayLoadLight, NightOwl: true}
	got = RouteOrder(&models.Profile{}, night)
	if got[3] != AgentFitness {
		t.Errorf("Expected fitness at position 3 for a night owl, got %v", got)
	}
}

func TestRouteOrderHeavyLoadDemotesHobby(t *testing.T) {
	t.Parallel()

	ctx := &models.DayContext{Role: "software engineer", DayLoad: models.DayLoadHeavy}
	got := RouteOrder(&models.Profile{}, ctx)
	idx := indexOf(got, AgentHobby)
	if idx < len(got)-3 {
		t.Errorf("Expected hobby near the end on a heavy day, got position %d in %v", idx, got)
	}
}

func TestRouteOrderGenZNightOwl(t *testing.T) {
	t.Parallel()

	ctx := &models.DayContext{Role: "GenZ student", DayLoad: models.DayLoadMedium, NightOwl: true}
	got := RouteOrder(&models.Profile{}, ctx)
	if got[2] != AgentHobby {
		t.Errorf("Expected hobby first for genz night owls, got %v", got)
	}
}

func TestRouteOrderFallsBackToProfileRole(t *testing.T) {
	t.Parallel()

	profile := &models.Profile{Meta: models.ProfileMeta{Role: "Account Executive"}}
	got := RouteOrder(profile, &models.DayContext{DayLoad: models.DayLoadMedium})
	if got[2] != AgentWorkLife {
		t.Errorf("Expected exec ordering from the profile role, got %v", got)
	}
}
