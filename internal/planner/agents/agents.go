// Package agents holds the planning agents the router sequences. Each agent
// is a pure function from profile and day context to an optional card; the
// core depends only on this contract.
package agents

import (
	"context"
	"fmt"

	"github.com/benvon/day-planner/internal/models"
	"github.com/benvon/day-planner/internal/planner"
)

// Request carries the per-request inputs shared by all agents
type Request struct {
	Date    string
	Context *models.DayContext
}

func (r *Request) dayContext() *models.DayContext {
	if r == nil || r.Context == nil {
		return &models.DayContext{}
	}
	return r.Context
}

// AgentFunc is the contract every planning agent satisfies. A nil card means
// the agent has nothing to say for this request.
type AgentFunc func(profile *models.Profile, req *Request) *models.Card

var registry = map[string]AgentFunc{
	planner.AgentGettingStarted: GettingStarted,
	planner.AgentCelebrations:   Celebrations,
	planner.AgentTraffic:        Traffic,
	planner.AgentWorkLife:       WorkLife,
	planner.AgentFitness:        Fitness,
	planner.AgentHobby:          Hobby,
	planner.AgentLifeAfterWork:  LifeAfterWork,
	planner.AgentRelaxation:     Relaxation,
	planner.AgentNutrition:      Nutrition,
	planner.AgentFinanceErrands: FinanceErrands,
	planner.AgentLearning:       Learning,
}

// Run invokes the named agent. The second return is false for unknown names.
func Run(name string, profile *models.Profile, req *Request) (*models.Card, bool) {
	fn, ok := registry[name]
	if !ok {
		return nil, false
	}
	return fn(profile, req), true
}

// DisplayNames maps the external agent identifiers to router names
var DisplayNames = map[string]string{
	"GettingStartedAgent": planner.AgentGettingStarted,
	"CelebrationsAgent":   planner.AgentCelebrations,
	"TrafficAgent":        planner.AgentTraffic,
	"WorkLifeAgent":       planner.AgentWorkLife,
	"FitnessAgent":        planner.AgentFitness,
	"HobbyAgent":          planner.AgentHobby,
	"LifeAfterWorkAgent":  planner.AgentLifeAfterWork,
	"RelaxationAgent":     planner.AgentRelaxation,
	"NutritionAgent":      planner.AgentNutrition,
	"FinanceErrandsAgent": planner.AgentFinanceErrands,
	"LearningAgent":       planner.AgentLearning,
}

// BulletSource produces short planning tips; the AI provider satisfies it.
// A nil source falls back to canned tips.
type BulletSource interface {
	GenerateBullets(ctx context.Context, prompt string, count int) ([]string, error)
}

// SupervisorInsights builds the priority-0 overview card that leads every
// day plan response.
func SupervisorInsights(ctx context.Context, bullets BulletSource, profile *models.Profile, day *models.DayContext) models.Card {
	load := day.DayLoad
	if load == "" {
		load = models.DayLoadMedium
	}

	fwStr := ""
	for i, w := range day.FocusWindows {
		if i > 0 {
			fwStr += ", "
		}
		fwStr += w.Window
	}

	summary := fmt.Sprintf("Load %s; %d events", load, day.EventCount)
	if fwStr != "" {
		summary += "; focus " + fwStr
	}

	prompt := fmt.Sprintf(
		"You are a pragmatic day planner. Given user role, day load, free blocks and first/last events, "+
			"produce 3 crisp planning tips. Prioritize focus protection, timeboxing, and energy management.\n"+
			"Role: %s\nLoad: %s\nFirst: %s %s\nLast: %s %s\nFocus windows: %s\nNight owl: %t\n",
		day.Role, load, day.FirstEventTime, day.FirstEventTitle,
		day.LastEventTime, day.LastEventTitle, fwStr, day.NightOwl,
	)

	var tips []string
	if bullets != nil {
		if generated, err := bullets.GenerateBullets(ctx, prompt, 3); err == nil && len(generated) > 0 {
			tips = generated
		}
	}
	if len(tips) == 0 {
		deepWork := "Protect one 60m deep-work block"
		if len(day.FocusWindows) > 0 {
			deepWork = "Protect 60m deep work " + day.FocusWindows[0].Window
		}
		windDown := "Prep for evening unwind by 21:30"
		if day.NightOwl {
			windDown = "Aim lights out by 23:30"
		}
		tips = []string{
			deepWork,
			"Batch emails twice; avoid constant context switching",
			windDown,
		}
	}

	return models.Card{
		Agent:    "SupervisorAgent",
		Title:    "Planner Insights",
		Summary:  summary,
		Priority: 0,
		Data: models.CardData{
			Insights: &models.InsightsData{
				Insights:     tips,
				FocusWindows: day.FocusWindows,
				Load:         load,
				Role:         day.Role,
			},
		},
	}
}

// firstBlockWhere returns the first free block matching pred, or nil
func firstBlockWhere(blocks []models.FreeBlock, pred func(models.FreeBlock) bool) *models.FreeBlock {
	for i := range blocks {
		if pred(blocks[i]) {
			return &blocks[i]
		}
	}
	return nil
}

func firstBlock(blocks []models.FreeBlock) *models.FreeBlock {
	if len(blocks) == 0 {
		return nil
	}
	return &blocks[0]
}
