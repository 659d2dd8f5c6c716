// Package ai wraps the LLM used for invite rewriting, planning tips and
// natural-language interpretation. Every caller treats a nil Provider as
// "no LLM configured" and falls back to deterministic rules.
package ai

import (
	"context"
)

// Command is the structured form of a natural-language instruction
type Command struct {
	Type        string   `json:"type"`
	HonoreeName string   `json:"honoree_name,omitempty"`
	EventDate   string   `json:"event_date,omitempty"`
	Budget      int      `json:"budget,omitempty"`
	Venue       string   `json:"venue,omitempty"`
	Style       string   `json:"style,omitempty"`
	Brevity     string   `json:"brevity,omitempty"`
	Template    string   `json:"template,omitempty"`
	Emails      []string `json:"emails,omitempty"`
	Utterance   string   `json:"utterance,omitempty"`
}

// Provider is the LLM contract consumed by the planner and workflow
type Provider interface {
	// RewriteInvite revises an invite template for tone and brevity while
	// preserving placeholders
	RewriteInvite(ctx context.Context, style, brevity, template string) (string, error)

	// GenerateBullets returns up to count short planning tips
	GenerateBullets(ctx context.Context, prompt string, count int) ([]string, error)

	// InterpretCommand maps an utterance to a structured command
	InterpretCommand(ctx context.Context, utterance string) (*Command, error)
}
