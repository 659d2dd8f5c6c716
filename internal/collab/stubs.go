package collab

import (
	"fmt"

	"github.com/benvon/day-planner/internal/models"
)

// Stub collaborator lookups. These stand in for real weather/traffic/inbox
// integrations; the planning core only depends on their shapes.

// LookupWeather returns a stubbed forecast for a city and date
func LookupWeather(city, date string) models.Weather {
	return models.Weather{Location: city, Date: date, High: 31, Low: 24, Condition: "Partly Cloudy"}
}

// LookupRoute returns a stubbed route between two places
func LookupRoute(origin, dest, when string) models.RouteInfo {
	return models.RouteInfo{Origin: origin, Dest: dest, ETAMin: 42, Route: []string{"ORR", "Exit 9", "Service Rd"}}
}

// FetchEmails returns a stubbed inbox snapshot
func FetchEmails() []models.Email {
	return []models.Email{
		{From: "ceo@example.com", Subject: "Q4 Targets", Due: "today"},
		{From: "hr@example.com", Subject: "Birthdays this week", Due: "tomorrow"},
	}
}

// FetchTickets returns a stubbed issue-tracker snapshot
func FetchTickets() []models.Ticket {
	return []models.Ticket{
		{Key: "ENG-101", Title: "Finalize OpenADR test plan", Status: "In Progress"},
		{Key: "ENG-203", Title: "Bug triage backlog", Status: "To Do"},
	}
}

// MusicPicks returns stubbed playlist recommendations for a mood and genre
func MusicPicks(mood, genre string) []string {
	picks := make([]string, 0, 5)
	for i := 1; i <= 4; i++ {
		picks = append(picks, fmt.Sprintf("%s Mix #%d", titleCase(genre), i))
	}
	switch mood {
	case "focus":
		picks = append(picks, "Deep Work Instrumentals")
	case "relax":
		picks = append(picks, "Evening Chillout")
	}
	return picks
}

// MoviePicks returns stubbed movie recommendations for a taste
func MoviePicks(taste string) []string {
	return []string{"Top pick for " + taste, "Critically Acclaimed 2025", "Trending on OTT"}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
