package agents

import (
	"strings"

	"github.com/benvon/day-planner/internal/models"
)

// Relaxation builds a wind-down routine with a lights-out target
func Relaxation(profile *models.Profile, req *Request) *models.Card {
	ctx := req.dayContext()
	night := ctx.NightOwl
	religious := ctx.Religious
	if profile != nil {
		if profile.Meta.NightOwl {
			night = true
		}
		if profile.Meta.Religious {
			religious = true
		}
	}

	routine := []string{"4-7-8 breathing (5 cycles)", "Screen off 30m before bed"}
	if religious {
		routine = append([]string{"Prayer + gratitude (5m)"}, routine...)
	}
	if ctx.IsWeekend {
		routine = append(routine, "Reflect on highlights of the week")
	}

	lightsOut := "22:30"
	switch {
	case night:
		lightsOut = "23:30"
	case ctx.IsWeekend:
		lightsOut = "23:00"
	}

	title := "Wind Down"
	priority := 8
	if ctx.IsWeekend {
		title = "Weekend Wind Down"
		priority = 6
	}

	return &models.Card{
		Agent:    "RelaxationAgent",
		Title:    title,
		Summary:  strings.Join(routine, " · ") + "; lights out " + lightsOut,
		Priority: priority,
		Data: models.CardData{
			WindDown: &models.WindDownData{
				JournalPrompts: []string{"What gave me energy today?", "What can I let go of?"},
				LightsOut:      lightsOut,
				Routine:        routine,
				Weekend:        ctx.IsWeekend,
			},
		},
	}
}
