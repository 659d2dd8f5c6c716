package planner

import (
	"strings"

	"github.com/benvon/day-planner/internal/models"
)

// Agent names known to the router
const (
	AgentGettingStarted = "getting_started"
	AgentCelebrations   = "celebrations"
	AgentTraffic        = "traffic"
	AgentWorkLife       = "work_life"
	AgentFitness        = "fitness"
	AgentHobby          = "hobby"
	AgentLifeAfterWork  = "life_after_work"
	AgentRelaxation     = "relaxation"
	AgentNutrition      = "nutrition"
	AgentFinanceErrands = "finance_errands"
	AgentLearning       = "learning"
)

// KnownAgents is the set of agent names the router may emit
var KnownAgents = map[string]bool{
	AgentGettingStarted: true,
	AgentCelebrations:   true,
	AgentTraffic:        true,
	AgentWorkLife:       true,
	AgentFitness:        true,
	AgentHobby:          true,
	AgentLifeAfterWork:  true,
	AgentRelaxation:     true,
	AgentNutrition:      true,
	AgentFinanceErrands: true,
	AgentLearning:       true,
}

const eveningStart = "19:00"

// RouteOrder decides which agents to run and in what order based on the
// profile and day context. It is total: unknown and duplicate names are
// dropped rather than reported, and the result always starts with the
// getting-started and celebrations agents.
func RouteOrder(profile *models.Profile, ctx *models.DayContext) []string {
	role := strings.ToLower(ctx.Role)
	if role == "" && profile != nil {
		role = strings.ToLower(profile.Meta.Role)
	}
	night := ctx.NightOwl
	load := ctx.DayLoad
	if load == "" {
		load = models.DayLoadMedium
	}

	seq := []string{AgentGettingStarted, AgentCelebrations}

	switch {
	case strings.Contains(role, "exec") || strings.Contains(role, "c-level") || strings.Contains(role, "c level"):
		seq = append(seq,
			AgentWorkLife, AgentTraffic, AgentNutrition, AgentLearning, AgentFitness,
			AgentFinanceErrands, AgentHobby, AgentLifeAfterWork, AgentRelaxation)
	case strings.Contains(role, "genz") || strings.Contains(role, "gen z"):
		if night {
			seq = append(seq, AgentHobby)
		}
		seq = append(seq,
			AgentTraffic, AgentWorkLife, AgentNutrition, AgentLearning, AgentFitness,
			AgentFinanceErrands, AgentLifeAfterWork, AgentRelaxation)
	default:
		if night {
			seq = append(seq, AgentWorkLife, AgentTraffic)
		} else {
			seq = append(seq, AgentTraffic, AgentWorkLife)
		}
		seq = append(seq,
			AgentNutrition, AgentLearning, AgentHobby, AgentLifeAfterWork, AgentFitness,
			AgentFinanceErrands, AgentRelaxation)
	}

	// Weekends pull leisure and errands forward and push work and commute
	// toward the back. Each moved name is inserted at a fixed position, so
	// the last one moved ends up earliest.
	if ctx.IsWeekend {
		for _, name := range []string{AgentHobby, AgentLearning, AgentFinanceErrands, AgentLifeAfterWork} {
			if remove(&seq, name) {
				insertAt(&seq, 2, name)
			}
		}
		if remove(&seq, AgentWorkLife) {
			insertAt(&seq, len(seq)-1, AgentWorkLife)
		}
		if remove(&seq, AgentTraffic) {
			insertAt(&seq, len(seq)-2, AgentTraffic)
		}
	}

	if load == models.DayLoadLight && remove(&seq, AgentFitness) {
		pos := 2
		if night {
			pos = 3
		}
		insertAt(&seq, pos, AgentFitness)
	}
	if load == models.DayLoadHeavy && remove(&seq, AgentHobby) {
		insertAt(&seq, len(seq)-1, AgentHobby)
	}

	// Evening engagement shifts life_after_work near the learning slot;
	// otherwise it lands second-to-last (busy and quiet days currently
	// share that slot).
	eveningEngagement := (ctx.LastEventTime >= eveningStart && ctx.LastEventTime != "") ||
		ctx.EventTypes.Party+ctx.EventTypes.Family > 0
	if remove(&seq, AgentLifeAfterWork) {
		if eveningEngagement {
			idx := indexOf(seq, AgentLearning)
			if idx >= 0 {
				idx++
			} else {
				idx = 3
			}
			if idx > len(seq)-1 {
				idx = len(seq) - 1
			}
			insertAt(&seq, idx, AgentLifeAfterWork)
		} else {
			insertAt(&seq, len(seq)-1, AgentLifeAfterWork)
		}
	}

	// Drop duplicates and unknown names, preserving first-seen order
	seen := make(map[string]bool, len(seq))
	out := make([]string, 0, len(seq))
	for _, name := range seq {
		if seen[name] || !KnownAgents[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func indexOf(seq []string, name string) int {
	for i, s := range seq {
		if s == name {
			return i
		}
	}
	return -1
}

func remove(seq *[]string, name string) bool {
	idx := indexOf(*seq, name)
	if idx < 0 {
		return false
	}
	*seq = append((*seq)[:idx], (*seq)[idx+1:]...)
	return true
}

func insertAt(seq *[]string, pos int, name string) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(*seq) {
		pos = len(*seq)
	}
	s := append(*seq, "")
	copy(s[pos+1:], s[pos:])
	s[pos] = name
	*seq = s
}
