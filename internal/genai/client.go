// Package genai holds the text-generation clients used to draft letters.
// Two providers are supported: the Gemini HTTP API and AWS Bedrock.
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ignite/letterdesk/internal/config"
)

// ErrAPIKeyMissing is returned when the configured provider has no
// credential. Checked before any network call is attempted.
var ErrAPIKeyMissing = errors.New("generation API key not configured")

// fallbackContent is returned when the provider answers successfully but
// carries no usable text.
const fallbackContent = "Failed to generate content"

// UpstreamError carries a non-2xx provider response. Payload holds the raw
// provider body for the error details the client surfaces.
type UpstreamError struct {
	Status  int
	Payload json.RawMessage
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation API error (status %d)", e.Status)
}

// Client generates letter text from a fully rendered prompt. Implementations
// make exactly one provider attempt per call; retry policy belongs to the
// caller, and for interactive drafting there is none.
type Client interface {
	GenerateLetter(ctx context.Context, prompt string) (string, error)
}

// New creates the provider client selected by cfg.Provider.
func New(cfg config.GenerationConfig) (Client, error) {
	switch cfg.Provider {
	case "bedrock":
		return NewBedrockClient(cfg)
	case "gemini", "":
		return NewGeminiClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}
