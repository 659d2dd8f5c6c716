package agents

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benvon/day-planner/internal/collab"
	"github.com/benvon/day-planner/internal/models"
)

// Traffic recommends a commute route and a leave-by time that lands ten
// minutes before the first event.
func Traffic(profile *models.Profile, req *Request) *models.Card {
	ctx := req.dayContext()

	origin, dest := "Home", "Office"
	if len(ctx.Events) > 0 {
		title := strings.ToLower(ctx.Events[0].Title)
		if strings.Contains(title, "meeting") || strings.Contains(title, "office") {
			dest = "Office"
		}
	}
	r := collab.LookupRoute(origin, dest, req.Date)

	leaveBy := ""
	if ctx.FirstEventTime != "" && r.ETAMin > 0 {
		if total, ok := minutesOfDay(ctx.FirstEventTime); ok {
			total -= r.ETAMin + 10
			if total < 0 {
				total = 0
			}
			leaveBy = fmt.Sprintf("%02d:%02d", total/60, total%60)
		}
	}

	summary := fmt.Sprintf("ETA %d min via %s", r.ETAMin, strings.Join(r.Route, ", "))
	if leaveBy != "" {
		summary += "; leave by " + leaveBy
	}
	return &models.Card{
		Agent:    "TrafficAgent",
		Title:    "Best Route",
		Summary:  summary,
		Priority: 2,
		Data: models.CardData{
			RouteData: &models.RouteData{RouteInfo: r, LeaveBy: leaveBy},
		},
	}
}

func minutesOfDay(t string) (int, bool) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return h*60 + m, true
}
