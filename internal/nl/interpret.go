// Package nl maps natural-language utterances to planner operations. Rules
// handle the common phrasings; an optional AI provider covers the rest.
package nl

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/benvon/day-planner/internal/planner"
	"github.com/benvon/day-planner/internal/services/ai"
)

// Intent type names produced by Interpret
const (
	IntentStartPlan      = "start_plan"
	IntentEditInviteTone = "edit_invite_tone"
	IntentEditInviteText = "edit_invite_text"
	IntentChangeDate     = "change_date"
	IntentChangeVenue    = "change_venue"
	IntentAdjustBudget   = "adjust_budget"
	IntentAddInvitees    = "add_invitees"
	IntentRemoveInvitees = "remove_invitees"
	IntentUnknown        = "unknown"
)

var (
	forNameRe  = regexp.MustCompile(`for\s+([A-Za-z ]+)`)
	budgetRe   = regexp.MustCompile(`budget\s+(\d+[kK]?)`)
	amountRe   = regexp.MustCompile(`(\d+[kK]?)`)
	styleRe    = regexp.MustCompile(`(playful|formal|romantic|friendly|professional)`)
	brevityRe  = regexp.MustCompile(`(short|brief|detailed|long|medium)`)
	isoDateRe  = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	venueRe    = regexp.MustCompile(`(?:at|to)\s+([A-Za-z0-9 &'\-]+)$`)
	emailRe    = regexp.MustCompile(`[\w.]+@[\w.-]+`)
	numberedRe = regexp.MustCompile(`^\d+[kK]$`)
)

// PlanIntents are the intents routed to the event workflow
var PlanIntents = map[string]bool{
	IntentStartPlan:      true,
	IntentEditInviteTone: true,
	IntentEditInviteText: true,
	IntentChangeDate:     true,
	IntentChangeVenue:    true,
	IntentAdjustBudget:   true,
	IntentAddInvitees:    true,
	IntentRemoveInvitees: true,
}

// Interpret maps an utterance to a structured command. Keyword rules run
// first; an AI provider, when configured, handles anything the rules miss.
func Interpret(ctx context.Context, provider ai.Provider, utterance string) *ai.Command {
	utter := strings.TrimSpace(utterance)
	low := strings.ToLower(utter)

	if containsAny(low, "start", "plan", "birthday") {
		cmd := &ai.Command{Type: IntentStartPlan}
		if m := forNameRe.FindStringSubmatch(utter); m != nil {
			cmd.HonoreeName = strings.TrimRight(strings.TrimSpace(m[1]), ".")
		}
		if m := budgetRe.FindStringSubmatch(low); m != nil {
			cmd.Budget = parseAmount(m[1])
		}
		return cmd
	}

	if containsAny(low, "tone", "playful", "formal", "romantic", "friendly", "professional") {
		style := "friendly"
		if m := styleRe.FindStringSubmatch(low); m != nil {
			style = m[1]
		}
		brevity := "medium"
		if m := brevityRe.FindStringSubmatch(low); m != nil {
			switch m[1] {
			case "short", "brief":
				brevity = "short"
			case "detailed", "long":
				brevity = "detailed"
			}
		}
		return &ai.Command{Type: IntentEditInviteTone, Style: style, Brevity: brevity}
	}

	if containsAny(low, "template", "rewrite", "edit invite", "change invite", "reword") {
		return &ai.Command{Type: IntentEditInviteText, Template: utter}
	}

	if strings.Contains(low, "budget") {
		if m := amountRe.FindStringSubmatch(low); m != nil {
			return &ai.Command{Type: IntentAdjustBudget, Budget: parseAmount(m[1])}
		}
	}

	if strings.Contains(low, "date") {
		if m := isoDateRe.FindStringSubmatch(low); m != nil {
			return &ai.Command{Type: IntentChangeDate, EventDate: m[1]}
		}
	}

	if strings.Contains(low, "venue") || strings.Contains(low, "place") {
		if m := venueRe.FindStringSubmatch(utter); m != nil {
			return &ai.Command{Type: IntentChangeVenue, Venue: strings.TrimSpace(m[1])}
		}
	}

	if strings.Contains(low, "add") && strings.Contains(low, "invite") {
		if emails := emailRe.FindAllString(utter, -1); len(emails) > 0 {
			return &ai.Command{Type: IntentAddInvitees, Emails: emails}
		}
	}

	if strings.Contains(low, "remove") && strings.Contains(low, "invite") {
		if emails := emailRe.FindAllString(utter, -1); len(emails) > 0 {
			return &ai.Command{Type: IntentRemoveInvitees, Emails: emails}
		}
	}

	if provider != nil {
		if cmd, err := provider.InterpretCommand(ctx, utter); err == nil && cmd != nil {
			return cmd
		}
	}
	return &ai.Command{Type: IntentUnknown, Utterance: utter}
}

// agentKeywords route non-plan utterances to a single agent; first match
// wins, so more specific words come first
var agentKeywords = []struct {
	keyword string
	agent   string
}{
	{"traffic", planner.AgentTraffic},
	{"commute", planner.AgentTraffic},
	{"work", planner.AgentWorkLife},
	{"meeting", planner.AgentWorkLife},
	{"fitness", planner.AgentFitness},
	{"gym", planner.AgentFitness},
	{"relax", planner.AgentRelaxation},
	{"unwind", planner.AgentRelaxation},
	{"hobby", planner.AgentHobby},
	{"learn", planner.AgentLearning},
	{"study", planner.AgentLearning},
	{"nutrition", planner.AgentNutrition},
	{"diet", planner.AgentNutrition},
	{"finance", planner.AgentFinanceErrands},
	{"errand", planner.AgentFinanceErrands},
	{"evening", planner.AgentLifeAfterWork},
	{"celebration", planner.AgentCelebrations},
	{"party", planner.AgentCelebrations},
	{"start", planner.AgentGettingStarted},
	{"morning", planner.AgentGettingStarted},
}

// MatchAgent returns the agent a free-form utterance refers to, or ""
func MatchAgent(utterance string) string {
	low := strings.ToLower(utterance)
	for _, e := range agentKeywords {
		if strings.Contains(low, e.keyword) {
			return e.agent
		}
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// parseAmount reads "5000" or "5k" style amounts
func parseAmount(v string) int {
	if numberedRe.MatchString(v) {
		n, _ := strconv.Atoi(v[:len(v)-1])
		return n * 1000
	}
	n, _ := strconv.Atoi(v)
	return n
}
