// Package translate drives the external natural-language translation
// service: provider selection, per-call retry with bounded backoff, a
// circuit breaker against dead services, and the per-entry driver that
// records outcomes in the progress store.
package translate

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Provider identifiers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Translator is the external translation capability: text in, translated
// text out, parameterized by the run's target language and context.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
	Name() string
}

// Config selects and parameterizes a translation provider.
type Config struct {
	Provider       string
	Model          string
	APIKey         string
	TargetLanguage string
	// Context describes the catalog's domain (e.g. "job listings") and is
	// embedded in every prompt.
	Context string
	// Timeout bounds each individual service call.
	Timeout time.Duration
}

// DefaultModel returns the provider's default model when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-2.0-flash"
	default:
		return "gpt-4o-mini"
	}
}

// New creates the configured translation provider.
func New(ctx context.Context, cfg Config) (Translator, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	switch cfg.Provider {
	case ProviderOpenAI, "":
		return newOpenAITranslator(cfg)
	case ProviderGemini:
		return newGeminiTranslator(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", cfg.Provider)
	}
}

const systemPrompt = `You are a professional translator for software localization catalogs.
Translate into %s, keeping the given context and adapting where necessary,
but never adding information that is not in the original. Preserve format
specifiers (%%s, %%d, {name}) and leading/trailing whitespace exactly.
Respond with only the translated text, nothing else.`

// buildSystemPrompt renders the instruction prompt for the run.
func buildSystemPrompt(cfg Config) string {
	prompt := fmt.Sprintf(systemPrompt, cfg.TargetLanguage)
	if cfg.Context != "" {
		prompt += fmt.Sprintf("\nContext of the texts: %s.", cfg.Context)
	}
	return prompt
}

// buildUserPrompt renders the per-call prompt, mirroring the
// "original text / translated text" framing the service responds best to.
func buildUserPrompt(text string) string {
	return fmt.Sprintf("Original text: %s\nTranslated text:", text)
}

// sanitizeResponse trims provider chatter around the translated text.
func sanitizeResponse(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "Translated text:")
	return strings.TrimSpace(text)
}
