package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"
)

const (
	// DefaultOpenAIModel is the default model to use
	DefaultOpenAIModel = "gpt-4o-mini"
	// DefaultOpenAIBaseURL is the default OpenAI API base URL
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	// DefaultTimeout is the default timeout for API calls
	DefaultTimeout = 30 * time.Second

	// ErrNoChoicesInResponse is returned when the API response has no choices
	ErrNoChoicesInResponse = "no choices in response"
)

const rewriteSystemPrompt = "You revise an event invite template. Keep placeholders EXACTLY unchanged: " +
	"{name}, {guest}, {honoree}, {date}, {venue}, {rsvp}. Apply the requested tone and brevity. " +
	"Return ONLY the revised template text, no code fences, no commentary."

const interpretSystemPrompt = "Decide the intent of this instruction for a day-planner/event-planner app. " +
	"Return JSON only. Keys: type: one of [start_plan, edit_invite_tone, edit_invite_text, change_date, " +
	"change_venue, adjust_budget, add_invitees, remove_invitees, unknown]. Optional keys by type: " +
	"honoree_name, event_date (YYYY-MM-DD), budget (int), venue (string), " +
	"style (one of playful,formal,romantic,friendly,professional), " +
	"brevity (one of short,medium,detailed), template (string), emails (array)."

// OpenAIProvider implements the Provider interface using OpenAI's API
type OpenAIProvider struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return NewOpenAIProviderWithLogger(apiKey, DefaultOpenAIBaseURL, model, nil, false)
}

// NewOpenAIProviderWithLogger creates a new OpenAI provider with logger support
func NewOpenAIProviderWithLogger(apiKey, baseURL, model string, logger *zap.Logger, debugMode bool) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(&http.Client{Timeout: DefaultTimeout}),
	)

	return &OpenAIProvider{
		client:    client,
		model:     model,
		logger:    logger,
		debugMode: debugMode,
	}
}

// complete sends a system+user chat request and returns the first choice
func (p *OpenAIProvider) complete(ctx context.Context, operation, system, user string, jsonMode bool) (string, error) {
	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	}
	if jsonMode {
		req.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_request",
			zap.String("operation", operation),
			zap.String("model", p.model),
			zap.Int("prompt_length", len(user)),
		)
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, req)
	latency := time.Since(start)
	if err != nil {
		if p.logger != nil && p.debugMode {
			p.logger.Debug("llm_api_error",
				zap.String("operation", operation),
				zap.String("model", p.model),
				zap.Error(err),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
		return "", fmt.Errorf("failed to complete %s: %w", operation, err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New(ErrNoChoicesInResponse)
	}

	content := resp.Choices[0].Message.Content
	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_response",
			zap.String("operation", operation),
			zap.String("model", p.model),
			zap.Int("response_length", len(content)),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}
	return content, nil
}

// RewriteInvite revises an invite template for tone and brevity
func (p *OpenAIProvider) RewriteInvite(ctx context.Context, style, brevity, template string) (string, error) {
	user := fmt.Sprintf("TONE: %s\nBREVITY: %s\n\nCurrent Template:\n%s\n\nRevised Template:", style, brevity, template)
	content, err := p.complete(ctx, "rewrite_invite", rewriteSystemPrompt, user, false)
	if err != nil {
		return "", err
	}
	revised := stripCodeFences(strings.TrimSpace(content))
	if revised == "" {
		return template, nil
	}
	return revised, nil
}

// GenerateBullets returns up to count short planning tips
func (p *OpenAIProvider) GenerateBullets(ctx context.Context, prompt string, count int) ([]string, error) {
	user := fmt.Sprintf("%s\n\nRespond with %d short, numbered bullets. Keep each under 12 words.", prompt, count)
	content, err := p.complete(ctx, "generate_bullets", "You are a pragmatic day planner.", user, false)
	if err != nil {
		return nil, err
	}
	return ParseBullets(content, count), nil
}

// InterpretCommand maps an utterance to a structured command
func (p *OpenAIProvider) InterpretCommand(ctx context.Context, utterance string) (*Command, error) {
	user := fmt.Sprintf("Instruction: %s\n\nJSON:", utterance)
	content, err := p.complete(ctx, "interpret_command", interpretSystemPrompt, user, true)
	if err != nil {
		return nil, err
	}

	raw := content
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	var cmd Command
	if err := json.Unmarshal([]byte(raw), &cmd); err != nil {
		return &Command{Type: "unknown", Utterance: utterance}, nil
	}
	if cmd.Type == "" {
		cmd.Type = "unknown"
		cmd.Utterance = utterance
	}
	return &cmd, nil
}

// ParseBullets extracts up to count deduplicated bullet lines from LLM output,
// stripping list markers and leading numbers
func ParseBullets(text string, count int) []string {
	out := make([]string, 0, count)
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		l := strings.TrimSpace(line)
		l = strings.TrimLeft(l, "-• ")
		if len(l) > 2 && l[0] >= '0' && l[0] <= '9' && (l[1] == '.' || l[1] == ')') {
			l = strings.TrimSpace(l[2:])
		}
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
		if len(out) == count {
			break
		}
	}
	return out
}

func stripCodeFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := []string{}
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) == "" || strings.HasPrefix(strings.TrimSpace(l), "```") {
			continue
		}
		lines = append(lines, l)
	}
	return strings.Trim(strings.Join(lines, "\n"), "`\n ")
}
