package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/benvon/day-planner/internal/models"
	"github.com/google/uuid"
)

// DefaultEventTime anchors the ops timeline when no time was chosen
const DefaultEventTime = "19:00"

// taskTitles are the display titles for home-operations tasks
var taskTitles = map[models.TaskKind]string{
	models.TaskDecideMenu:      "Decide Menu",
	models.TaskGroceryShopping: "Grocery Shopping",
	models.TaskWifiAccess:      "Guest Wi-Fi Access",
	models.TaskSecureLocks:     "Secure Home Locks",
	models.TaskPostCleanup:     "Post-Party Cleanup",
}

// dueMargins give each task a completion window after its scheduled time
var dueMargins = map[models.TaskKind]time.Duration{
	models.TaskDecideMenu:      2 * time.Hour,
	models.TaskGroceryShopping: 3 * time.Hour,
	models.TaskWifiAccess:      time.Hour,
	models.TaskSecureLocks:     30 * time.Minute,
	models.TaskPostCleanup:     2 * time.Hour,
}

// buildTimeline creates the fixed five-task home-operations batch anchored
// to the event date and time. Called exactly once, when a home-venue plan
// first reaches sent.
func buildTimeline(plan *models.Plan, now time.Time) []models.TimelineTask {
	eventDay, err := time.Parse("2006-01-02", plan.Date)
	if err != nil {
		eventDay = now.AddDate(0, 0, 7)
	}
	eventTime := plan.Time
	if eventTime == "" {
		eventTime = DefaultEventTime
	}

	schedule := []struct {
		kind    models.TaskKind
		dayOffs int
		at      string
	}{
		{models.TaskDecideMenu, -3, eventTime},
		{models.TaskGroceryShopping, -1, "17:00"},
		{models.TaskWifiAccess, 0, "17:00"},
		{models.TaskSecureLocks, 0, "22:00"},
		{models.TaskPostCleanup, 0, "23:00"},
	}

	tasks := make([]models.TimelineTask, 0, len(schedule))
	for _, s := range schedule {
		scheduledAt := atClockTime(eventDay.AddDate(0, 0, s.dayOffs), s.at)
		tasks = append(tasks, models.TimelineTask{
			ID:          uuid.New(),
			Kind:        s.kind,
			Title:       taskTitles[s.kind],
			ScheduledAt: scheduledAt,
			DueAt:       scheduledAt.Add(dueMargins[s.kind]),
			Status:      models.TaskScheduled,
		})
	}
	return tasks
}

func atClockTime(day time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		t, _ = time.Parse("15:04", DefaultEventTime)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// Tick advances the virtual clock over the plan's timeline. Tasks are
// visited in creation order; a task whose scheduled time has arrived runs
// to done and counts against maxSteps (non-positive means unlimited).
// Returns the tasks processed this tick and the count still scheduled.
func Tick(plan *models.Plan, now time.Time, maxSteps int) ([]models.TimelineTask, int) {
	processed := []models.TimelineTask{}
	for i := range plan.Timeline {
		task := &plan.Timeline[i]
		if task.Status != models.TaskScheduled {
			continue
		}
		if task.ScheduledAt.After(now) {
			continue
		}
		if maxSteps > 0 && len(processed) >= maxSteps {
			break
		}

		task.Status = models.TaskRunning
		result := executeTask(task.Kind, plan)
		task.Result = &result
		task.Notes = taskSummary(task.Kind, result)
		task.Status = models.TaskDone

		if plan.Ops == nil {
			plan.Ops = make(map[models.TaskKind]models.TaskResult)
		}
		plan.Ops[task.Kind] = result
		processed = append(processed, *task)
	}

	remaining := 0
	for _, task := range plan.Timeline {
		if task.Status == models.TaskScheduled {
			remaining++
		}
	}
	return processed, remaining
}

// executeTask produces the deterministic stub outcome for a task kind
func executeTask(kind models.TaskKind, plan *models.Plan) models.TaskResult {
	switch kind {
	case models.TaskDecideMenu:
		guests := len(plan.Invitees) + 2
		return models.TaskResult{Menu: &models.MenuResult{
			Guests: guests,
			Veg:    guests / 2,
			Dishes: []string{"Paneer tikka", "Veg biryani", "Garden salad", "Birthday cake"},
		}}

	case models.TaskGroceryShopping:
		items := []string{"Rice", "Vegetables", "Milk", "Flowers"}
		if menu, ok := plan.Ops[models.TaskDecideMenu]; ok && menu.Menu != nil {
			items = append([]string{}, menu.Menu.Dishes...)
		}
		return models.TaskResult{Grocery: &models.GroceryResult{Items: items, ETA: "2h"}}

	case models.TaskWifiAccess:
		return models.TaskResult{Wifi: &models.WifiResult{SSID: "HomeGuest", QRGenerated: true}}

	case models.TaskSecureLocks:
		return models.TaskResult{Locks: &models.LocksResult{Engaged: true}}

	case models.TaskPostCleanup:
		return models.TaskResult{Cleanup: &models.CleanupResult{Rooms: []string{"living room", "kitchen", "patio"}}}
	}
	return models.TaskResult{}
}

// taskSummary renders the one-line note recorded on a completed task
func taskSummary(kind models.TaskKind, result models.TaskResult) string {
	switch kind {
	case models.TaskDecideMenu:
		if result.Menu != nil {
			return fmt.Sprintf("Menu for %d guests (%d veg). Dishes: %s",
				result.Menu.Guests, result.Menu.Veg, strings.Join(result.Menu.Dishes, ", "))
		}
	case models.TaskGroceryShopping:
		if result.Grocery != nil {
			return fmt.Sprintf("%d items ordered. ETA %s.", len(result.Grocery.Items), result.Grocery.ETA)
		}
	case models.TaskWifiAccess:
		if result.Wifi != nil {
			return fmt.Sprintf("SSID %s ready; QR generated.", result.Wifi.SSID)
		}
	case models.TaskSecureLocks:
		return "All smart locks engaged."
	case models.TaskPostCleanup:
		if result.Cleanup != nil {
			return fmt.Sprintf("Robot vacuum ran; cleaned: %s.", strings.Join(result.Cleanup.Rooms, ", "))
		}
	}
	return "Task completed."
}
