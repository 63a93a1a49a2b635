package icebreaker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/PratikDhanave/vibe-events/internal/breaker"
	"github.com/PratikDhanave/vibe-events/internal/metrics"
)

// DefaultInterest is used when the caller names no interest.
const DefaultInterest = "something cool"

// ErrNoAPIKey means no text-generation key is configured.
var ErrNoAPIKey = errors.New("icebreaker: API key not configured")

// Completer produces free text for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAICompleter calls the chat completions API.
type OpenAICompleter struct {
	client  *openai.Client
	model   string
	breaker *breaker.Breaker[string]
}

// NewOpenAICompleter returns nil when apiKey is empty.
func NewOpenAICompleter(apiKey, model string, log *zap.Logger) *OpenAICompleter {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAICompleter{
		client:  openai.NewClient(apiKey),
		model:   model,
		breaker: breaker.New[string]("openai", breaker.Settings{}, log),
	}
}

func (o *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if o == nil {
		return "", ErrNoAPIKey
	}
	return o.breaker.Execute(func() (string, error) {
		resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			MaxTokens:   150,
			Temperature: 0.8,
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("icebreaker: empty completion")
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	})
}

// Service builds icebreakers, falling back to canned text when generation fails.
type Service struct {
	completer Completer
	log       *zap.Logger
}

// NewService creates a service. A nil completer always uses the fallback.
func NewService(completer Completer, log *zap.Logger) *Service {
	return &Service{completer: completer, log: log}
}

// Generate returns icebreaker text for interest and whether it came from the AI.
func (s *Service) Generate(ctx context.Context, interest string) (string, bool) {
	interest = strings.TrimSpace(interest)
	if interest == "" {
		interest = DefaultInterest
	}

	if s.completer != nil {
		text, err := s.completer.Complete(ctx, Prompt(interest))
		if err == nil && text != "" {
			metrics.IcebreakersServed.WithLabelValues("ai").Inc()
			return text, true
		}
		if err != nil && !errors.Is(err, ErrNoAPIKey) {
			s.log.Warn("Icebreaker generation failed, using fallback",
				zap.String("interest", interest),
				zap.Error(err))
		}
	}

	metrics.IcebreakersServed.WithLabelValues("fallback").Inc()
	return Fallback(interest), false
}

// Prompt is the instruction sent to the text generator.
func Prompt(interest string) string {
	return fmt.Sprintf("Generate 3 short friendly icebreakers (1-2 lines each) for a small group "+
		"who share an interest in '%s'. Keep them casual and emoji-friendly.", interest)
}

// Fallback is the canned text used when no generator answers.
func Fallback(interest string) string {
	return fmt.Sprintf("1) What's a must-watch %s recommendation? 🎬\n"+
		"2) Which %s surprised you recently? 🤯\n"+
		"3) Any hidden gems around here related to %s?", interest, interest, interest)
}
