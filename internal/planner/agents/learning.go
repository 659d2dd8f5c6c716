package agents

import (
	"strings"

	"github.com/benvon/day-planner/internal/models"
)

// Learning picks role-appropriate study material for a pre-lunch block
func Learning(profile *models.Profile, req *Request) *models.Card {
	ctx := req.dayContext()
	role := strings.ToLower(ctx.Role)
	if role == "" && profile != nil {
		role = strings.ToLower(profile.Meta.Role)
	}

	var picks []string
	switch {
	case strings.Contains(role, "exec"):
		picks = []string{
			"Strategic Thinking: 3 short case videos",
			"AI for Managers: 30m primer",
		}
	case strings.Contains(role, "c-level") || strings.Contains(role, "c level"):
		picks = []string{
			"Board Communication Masterclass: 1 module",
			"Finance for Non-CFOs: Working capital deep dive",
		}
	case strings.Contains(role, "genz") || strings.Contains(role, "gen z"):
		picks = []string{
			"JavaScript projects: Build a small game",
			"Design basics: 3 mini lessons",
		}
	default:
		picks = []string{"Learn something new: 30m", "TED/YouTube: 2 high-signal talks"}
	}

	slot := firstBlockWhere(ctx.FreeBlocks, func(b models.FreeBlock) bool {
		return b.Minutes >= 25 && b.Start <= "12:30"
	})
	if slot == nil {
		slot = firstBlock(ctx.FreeBlocks)
	}

	summary := picks[0]
	if slot != nil {
		summary += " at " + slot.Start
	}
	return &models.Card{
		Agent:    "LearningAgent",
		Title:    "Learning Sprint",
		Summary:  summary,
		Priority: 6,
		Data: models.CardData{
			Learning: &models.LearningData{Suggestions: picks, SuggestedTime: slot},
		},
	}
}
