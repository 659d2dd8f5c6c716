package agents

import (
	"fmt"

	"github.com/benvon/day-planner/internal/collab"
	"github.com/benvon/day-planner/internal/models"
)

var focusTips = map[models.DayLoad]string{
	models.DayLoadLight:  "Batch emails first, then deep work 90m",
	models.DayLoadMedium: "Timebox meetings; protect a 60m deep-work block",
	models.DayLoadHeavy:  "Triage quickly; pick one high-impact task",
}

// GettingStarted opens the day with weather, calendar shape and a focus tip
func GettingStarted(profile *models.Profile, req *Request) *models.Card {
	ctx := req.dayContext()

	city := "Bengaluru"
	taste := "chill"
	if profile != nil {
		if profile.HomeCity != "" {
			city = profile.HomeCity
		}
		if profile.Meta.Music != "" {
			taste = profile.Meta.Music
		}
	}
	wx := collab.LookupWeather(city, req.Date)

	mood := "focus"
	if ctx.IsWeekend {
		mood = "relax"
	}
	music := collab.MusicPicks(mood, taste)
	if len(music) > 2 {
		music = music[:2]
	}

	next := "Open morning"
	if ctx.IsWeekend {
		next = "Slow morning"
	}
	if len(ctx.Events) > 0 {
		next = fmt.Sprintf("Next: %s %s", ctx.Events[0].Time, ctx.Events[0].Title)
	}

	load := ctx.DayLoad
	if load == "" {
		load = models.DayLoadMedium
	}
	focusTip := focusTips[load]
	if ctx.IsWeekend {
		focusTip = "Keep it light; one meaningful personal task"
	}

	title := "Morning Brief"
	if ctx.IsWeekend {
		title = "Weekend Brief"
	}

	return &models.Card{
		Agent:    "GettingStartedAgent",
		Title:    title,
		Summary:  fmt.Sprintf("%d events. Weather %s %d-%d°C. %s.", ctx.EventCount, wx.Condition, wx.Low, wx.High, next),
		Priority: 1,
		Data: models.CardData{
			Brief: &models.BriefData{
				Events:     ctx.Events,
				Weather:    wx,
				Music:      music,
				FocusTip:   focusTip,
				FreeBlocks: ctx.FreeBlocks,
				Weekend:    ctx.IsWeekend,
			},
		},
	}
}
