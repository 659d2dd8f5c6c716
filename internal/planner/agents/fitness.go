package agents

import (
	"github.com/benvon/day-planner/internal/models"
)

// Fitness slots a workout into an early-morning or late-afternoon free block
func Fitness(profile *models.Profile, req *Request) *models.Card {
	ctx := req.dayContext()
	night := ctx.NightOwl
	if profile != nil && profile.Meta.NightOwl {
		night = true
	}

	slot := firstBlockWhere(ctx.FreeBlocks, func(b models.FreeBlock) bool {
		return b.Start <= "09:30" || ("16:00" <= b.Start && b.Start <= "18:30")
	})
	if slot == nil {
		slot = firstBlock(ctx.FreeBlocks)
	}

	plan := "AM walk 30m + PM bodyweight 20m"
	if night {
		plan = "Evening bike 45m + core"
	}

	summary := plan
	if slot != nil {
		summary += " at " + slot.Start
	}
	return &models.Card{
		Agent:    "FitnessAgent",
		Title:    "Today's Workout",
		Summary:  summary,
		Priority: 4,
		Data: models.CardData{
			Fitness: &models.FitnessData{
				Plan:          plan,
				SuggestedTime: slot,
				MealTip:       "Protein lunch; hydrate 2L",
			},
		},
	}
}
