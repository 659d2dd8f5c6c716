package workflow

import (
	"strings"

	"github.com/benvon/day-planner/internal/models"
)

// MaxThemeOptions caps the theme suggestion list
const MaxThemeOptions = 3

var fallbackThemes = []string{"Warm & Minimal", "Classic Gold", "Garden Party"}

var elegantKeywords = []string{"classical", "art", "ballet"}
var sportyKeywords = []string{"football", "f1", "game-console", "ps5"}

// ThemeSuggestions derives up to three theme options from the honoree's
// likes and the profile's flags, falling back to generic themes.
func ThemeSuggestions(profile *models.Profile, honoreeName string) []string {
	out := []string{}
	add := func(theme string) {
		for _, t := range out {
			if t == theme {
				return
			}
		}
		out = append(out, theme)
	}

	for _, like := range honoreeLikes(profile, honoreeName) {
		l := strings.ToLower(like)
		for _, kw := range elegantKeywords {
			if strings.Contains(l, kw) {
				add("Elegant Minimal")
			}
		}
		for _, kw := range sportyKeywords {
			if strings.Contains(l, kw) {
				add("Sporty Fun")
			}
		}
	}
	if profile != nil {
		if profile.Meta.Parties {
			add("Lively Social")
		}
		if len(profile.Meta.Stressors) > 0 {
			add("Calm & Cozy")
		}
	}

	if len(out) == 0 {
		out = append(out, fallbackThemes...)
	}
	if len(out) > MaxThemeOptions {
		out = out[:MaxThemeOptions]
	}
	return out
}

// honoreeLikes finds the honoree among family members by name; when no
// record matches, the likes of all family members are pooled
func honoreeLikes(profile *models.Profile, honoreeName string) []string {
	if profile == nil {
		return nil
	}
	for _, p := range profile.Meta.Family {
		if strings.EqualFold(p.Name, honoreeName) {
			return p.Likes
		}
	}
	var likes []string
	for _, p := range profile.Meta.Family {
		likes = append(likes, p.Likes...)
	}
	return likes
}

// DefaultVenue picks a home-style default for home-preferring profiles
func DefaultVenue(profile *models.Profile) string {
	if profile != nil && profile.Meta.PrefersHome {
		return "Home - Living room dinner"
	}
	return "Trendy lounge"
}

// VenueChoices lists the candidate venues offered during theme review
func VenueChoices() models.VenueOptions {
	return models.VenueOptions{
		Restaurant: []string{"Trendy lounge", "Quiet rooftop", "Garden bistro"},
		Home:       []string{"Home - Living room dinner", "Home - Backyard dinner"},
	}
}
