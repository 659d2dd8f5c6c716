package agents

import (
	"fmt"
	"sort"
	"time"

	"github.com/benvon/day-planner/internal/models"
)

const celebrationHorizonDays = 14

// Celebrations surfaces family and colleague occasions in the next two weeks
func Celebrations(profile *models.Profile, req *Request) *models.Card {
	today := time.Now()
	if d, err := time.Parse("2006-01-02", req.Date); err == nil {
		today = d
	}

	var famEvents, colEvents []models.Occasion
	if profile != nil {
		for _, f := range profile.Meta.Family {
			relation := f.Relation
			if relation == "" {
				relation = "family"
			}
			if f.Birthday != "" {
				famEvents = append(famEvents, models.Occasion{Name: f.Name, Relation: relation, Type: "birthday", Date: f.Birthday})
			}
			if f.Anniversary != "" {
				famEvents = append(famEvents, models.Occasion{Name: f.Name, Relation: relation, Type: "anniversary", Date: f.Anniversary})
			}
		}
		for _, c := range profile.Meta.Colleagues {
			relation := c.Role
			if relation == "" {
				relation = "colleague"
			}
			if c.Birthday != "" {
				colEvents = append(colEvents, models.Occasion{Name: c.Name, Relation: relation, Type: "birthday", Date: c.Birthday})
			}
		}
	}

	upcomingFam := upcomingWithin(celebrationHorizonDays, today, famEvents)
	upcomingCol := upcomingWithin(celebrationHorizonDays, today, colEvents)
	total := len(upcomingFam) + len(upcomingCol)

	if total == 0 {
		return &models.Card{
			Agent:    "CelebrationsAgent",
			Title:    "Celebrations",
			Summary:  "No family/colleague events in next 2 weeks.",
			Priority: 7,
			Data: models.CardData{
				Celebrations: &models.CelebrationsData{
					UpcomingFamily:     []models.Occasion{},
					UpcomingColleagues: []models.Occasion{},
				},
			},
		}
	}

	// Family occasions sort ahead of colleague ones for the headline
	var first models.Occasion
	if len(upcomingFam) > 0 {
		first = upcomingFam[0]
	} else {
		first = upcomingCol[0]
	}
	return &models.Card{
		Agent:    "CelebrationsAgent",
		Title:    "Upcoming Celebrations",
		Summary:  fmt.Sprintf("%d upcoming; next: %s (%s) in %dd", total, first.Name, first.Type, first.DaysLeft),
		Priority: 2,
		Data: models.CardData{
			Celebrations: &models.CelebrationsData{
				UpcomingFamily:     upcomingFam,
				UpcomingColleagues: upcomingCol,
			},
		},
	}
}

// parseOccasionDate accepts "YYYY-MM-DD" or "MM-DD" with the current year
func parseOccasionDate(date string, year int) (time.Time, bool) {
	if len(date) == 10 {
		d, err := time.Parse("2006-01-02", date)
		return d, err == nil
	}
	d, err := time.Parse("2006-01-02", fmt.Sprintf("%04d-%s", year, date))
	return d, err == nil
}

func upcomingWithin(daysAhead int, today time.Time, items []models.Occasion) []models.Occasion {
	out := []models.Occasion{}
	todayDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for _, it := range items {
		d, ok := parseOccasionDate(it.Date, today.Year())
		if !ok {
			continue
		}
		eventDay := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		delta := int(eventDay.Sub(todayDay).Hours() / 24)
		if delta < 0 || delta > daysAhead {
			continue
		}
		it.DaysLeft = delta
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysLeft < out[j].DaysLeft })
	return out
}
