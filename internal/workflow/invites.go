package workflow

import (
	"regexp"
	"strings"

	"github.com/benvon/day-planner/internal/collab"
)

// DefaultInviteTemplate is used when a plan has no template yet
const DefaultInviteTemplate = "Hi {name},\nYou're invited to {honoree}'s surprise on {date} at {venue}. RSVP: {rsvp}"

// RSVPLink is the stub RSVP target baked into invites
const RSVPLink = "https://example.com/rsvp"

// ComposeMessage fills known placeholders; unknown placeholders stay intact
// so later passes (per-guest rendering) can fill them
func ComposeMessage(template string, params map[string]string) string {
	msg := template
	for k, v := range params {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

// RenderPreview renders the template for the first invitee (or "Guest") and
// truncates to the preview length. Both {guest} and {name} are supported.
func RenderPreview(template string, invitees []string, params map[string]string) string {
	sample := "Guest"
	if len(invitees) > 0 {
		sample = invitees[0]
	}
	local := make(map[string]string, len(params)+1)
	for k, v := range params {
		local[k] = v
	}
	guestKey := "name"
	if strings.Contains(template, "{guest}") {
		guestKey = "guest"
	}
	if _, ok := local[guestKey]; !ok {
		local[guestKey] = sample
	}
	return collab.Preview(ComposeMessage(template, local))
}

var firstSentenceRe = regexp.MustCompile(`^(.+?[.!?])\s`)
var newlineRe = regexp.MustCompile(`\s*\n\s*`)

// RewriteTone applies deterministic tone and brevity tweaks to an invite
// template, preserving placeholders. Used when no LLM is configured.
func RewriteTone(style, brevity, template string) string {
	t := strings.TrimSpace(template)
	if brevity == "short" {
		t = newlineRe.ReplaceAllString(t, " ")
		if m := firstSentenceRe.FindStringSubmatch(t); m != nil {
			t = m[1]
		}
	}
	switch style {
	case "playful":
		t = strings.ReplaceAll(t, "You are invited", "You're invited")
		t = strings.ReplaceAll(t, "You are", "You're")
		t = strings.TrimSpace("🎉 " + t + " 🎂")
	case "formal":
		t = strings.ReplaceAll(t, "Hi", "Dear")
		t = strings.ReplaceAll(t, "Hey", "Dear")
		t = strings.ReplaceAll(t, "You're", "You are")
	case "romantic":
		t = strings.TrimSpace("❤️ " + t + " ❤️")
	}
	return t
}
