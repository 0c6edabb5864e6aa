package app

import (
	"context"
	"fmt"
	"strings"
)

// TextGenerator is the port for the external text-generation service.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AdviceService forwards prompts to the text generator.
type AdviceService struct {
	gen TextGenerator
}

// NewAdviceService creates an AdviceService. A nil generator means the
// server has no model credential configured.
func NewAdviceService(gen TextGenerator) *AdviceService {
	return &AdviceService{gen: gen}
}

// Ready returns ErrServerMisconfigured when no generator is configured.
func (s *AdviceService) Ready() error {
	if s == nil || s.gen == nil {
		return fmt.Errorf("%w: Missing API_KEY", ErrServerMisconfigured)
	}
	return nil
}

// Ask returns the generated answer to prompt.
func (s *AdviceService) Ask(ctx context.Context, prompt string) (string, error) {
	if err := s.Ready(); err != nil {
		return "", err
	}
	if strings.TrimSpace(prompt) == "" {
		return "", invalid("Prompt is required")
	}
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return text, nil
}
