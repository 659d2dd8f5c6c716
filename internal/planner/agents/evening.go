package agents

import (
	"fmt"
	"strings"

	"github.com/benvon/day-planner/internal/collab"
	"github.com/benvon/day-planner/internal/models"
)

// LifeAfterWork suggests an evening plan, skewing family-friendly for
// executive roles and low-key on heavy days.
func LifeAfterWork(profile *models.Profile, req *Request) *models.Card {
	ctx := req.dayContext()

	taste := "mix"
	role := ""
	parties := ctx.PrefersParties
	if profile != nil {
		if profile.Meta.Music != "" {
			taste = profile.Meta.Music
		}
		role = strings.ToLower(profile.Meta.Role)
		if profile.Meta.Parties {
			parties = true
		}
	}
	if role == "" {
		role = strings.ToLower(ctx.Role)
	}

	familyMode := strings.Contains(role, "exec") || strings.Contains(role, "c-level") || strings.Contains(role, "c level")
	movieTaste := "trending"
	if familyMode {
		movieTaste = "family"
	}
	picks := collab.MoviePicks(movieTaste)
	playlists := collab.MusicPicks("relax", taste)

	suggestion := "Light dinner + show"
	if familyMode {
		suggestion = "Movie night at home"
	} else if parties {
		suggestion = "Catch up with friends"
	}
	if ctx.DayLoad == models.DayLoadHeavy {
		suggestion = "Low-key unwind; short show + early night"
	}

	return &models.Card{
		Agent:    "LifeAfterWorkAgent",
		Title:    "Evening Plans",
		Summary:  fmt.Sprintf("%s: Watch %s · Music %s", suggestion, picks[0], playlists[0]),
		Priority: 6,
		Data: models.CardData{
			Evening: &models.EveningData{
				Movies:     picks,
				Playlists:  playlists,
				Suggestion: suggestion,
			},
		},
	}
}
