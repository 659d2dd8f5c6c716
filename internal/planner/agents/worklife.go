package agents

import (
	"fmt"

	"github.com/benvon/day-planner/internal/collab"
	"github.com/benvon/day-planner/internal/models"
)

var focusPlans = map[models.DayLoad][]string{
	models.DayLoadLight:  {"Ship one backlog ticket", "Inbox zero"},
	models.DayLoadMedium: {"Advance ENG-101", "Reply to 3 key threads"},
	models.DayLoadHeavy:  {"Unblock ENG-101", "Defer noncritical emails"},
}

// WorkLife summarizes the work inbox and picks a focus plan. Weekends soften
// to a weekly review instead.
func WorkLife(profile *models.Profile, req *Request) *models.Card {
	ctx := req.dayContext()
	emails := collab.FetchEmails()
	tickets := collab.FetchTickets()

	if ctx.IsWeekend {
		return &models.Card{
			Agent:    "WorkLifeAgent",
			Title:    "Weekend Planning",
			Summary:  "Weekend review: inbox triage + plan next week",
			Priority: 6,
			Data: models.CardData{
				Work: &models.WorkData{
					Emails:  emails,
					Tickets: tickets,
					WeeklyReview: []string{
						"Scan inbox for high-signal threads",
						"Review calendar next week",
						"Pick top 3 goals",
					},
				},
			},
		}
	}

	urgent := []models.Email{}
	for _, e := range emails {
		if e.Due == "today" {
			urgent = append(urgent, e)
		}
	}
	top := []models.Ticket{}
	for _, t := range tickets {
		if t.Status != "Done" {
			top = append(top, t)
		}
		if len(top) == 2 {
			break
		}
	}

	load := ctx.DayLoad
	if load == "" {
		load = models.DayLoadMedium
	}
	birthdays := []string{"Teammate A (today)", "Teammate B (Fri)"}

	return &models.Card{
		Agent:    "WorkLifeAgent",
		Title:    "Work Focus",
		Summary:  fmt.Sprintf("%d emails, %d tickets; today: %d urgent; birthdays: %s", len(emails), len(tickets), len(urgent), birthdays[0]),
		Priority: 3,
		Data: models.CardData{
			Work: &models.WorkData{
				Emails:       emails,
				UrgentEmails: urgent,
				Tickets:      tickets,
				TopTickets:   top,
				Birthdays:    birthdays,
				FocusPlan:    focusPlans[load],
			},
		},
	}
}
