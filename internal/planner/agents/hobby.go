package agents

import (
	"github.com/benvon/day-planner/internal/models"
)

// Hobby nudges a short weekday practice or a longer weekend session
func Hobby(profile *models.Profile, req *Request) *models.Card {
	ctx := req.dayContext()
	hobby := ctx.Hobby
	if hobby == "" && profile != nil {
		hobby = profile.Meta.Hobby
	}

	var task string
	var priority int
	if ctx.IsWeekend {
		priority = 5
		switch hobby {
		case "garden_automation":
			task = "Garden project: set up moisture sensors; prune basil (45m)"
		case "guitar":
			task = "Learn a new riff + jam with backing track (45m)"
		default:
			task = "Explore hobby for 45m: unstructured, fun session"
		}
	} else {
		priority = 7
		switch hobby {
		case "garden_automation":
			task = "Check soil moisture; test drip; trim basil (15m)"
		case "guitar":
			task = "Practice chord transitions + metronome (15m)"
		default:
			task = "15m reading/journaling"
		}
	}

	slot := firstBlockWhere(ctx.FreeBlocks, func(b models.FreeBlock) bool {
		if ctx.IsWeekend {
			return "10:30" <= b.Start && b.Start <= "17:30"
		}
		return "12:00" <= b.Start && b.Start <= "18:00"
	})
	if slot == nil {
		slot = firstBlock(ctx.FreeBlocks)
	}

	summary := task
	if slot != nil {
		summary += " at " + slot.Start
	}
	return &models.Card{
		Agent:    "HobbyAgent",
		Title:    "Hobby Nudge",
		Summary:  summary,
		Priority: priority,
		Data: models.CardData{
			Hobby: &models.HobbyData{Task: task, SuggestedTime: slot},
		},
	}
}
