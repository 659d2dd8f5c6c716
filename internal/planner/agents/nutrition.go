package agents

import (
	"github.com/benvon/day-planner/internal/models"
)

// Nutrition plans the day's meals around a midday lunch slot
func Nutrition(profile *models.Profile, req *Request) *models.Card {
	ctx := req.dayContext()

	slot := firstBlockWhere(ctx.FreeBlocks, func(b models.FreeBlock) bool {
		return "11:30" <= b.Start && b.Start <= "14:30"
	})
	if slot == nil {
		slot = firstBlock(ctx.FreeBlocks)
	}

	plan := models.MealPlan{
		Breakfast: "Oats + nuts + fruit; coffee/tea",
		Lunch:     "Protein-forward bowl; greens; skip sugary drinks",
		Snack:     "Greek yogurt or nuts",
		Dinner:    "Light carbs + lean protein; early if possible",
		Hydration: "Target 2-2.5L water",
	}
	if ctx.DayLoad == models.DayLoadHeavy {
		plan.Snack = "Banana + peanut butter (energy)"
	}

	summary := "Balanced meals; hydrate 2-2.5L"
	if slot != nil {
		summary += "; lunch at " + slot.Start
	}
	return &models.Card{
		Agent:    "NutritionAgent",
		Title:    "Nutrition Plan",
		Summary:  summary,
		Priority: 5,
		Data: models.CardData{
			Nutrition: &models.NutritionData{Plan: plan, SuggestedTime: slot},
		},
	}
}
