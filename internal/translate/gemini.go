package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// geminiTranslator translates through the Gemini API.
type geminiTranslator struct {
	client *genai.Client
	cfg    Config
	system string
}

func newGeminiTranslator(ctx context.Context, cfg Config) (Translator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key not found: set GEMINI_API_KEY or translation.gemini_key in the config file")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &geminiTranslator{
		client: client,
		cfg:    cfg,
		system: buildSystemPrompt(cfg),
	}, nil
}

func (t *geminiTranslator) Name() string { return "gemini/" + t.cfg.Model }

func (t *geminiTranslator) Translate(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	resp, err := t.client.Models.GenerateContent(ctx, t.cfg.Model,
		genai.Text(buildUserPrompt(text)),
		&genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](0.3),
			SystemInstruction: genai.NewContentFromText(t.system, genai.RoleUser),
		})
	if err != nil {
		return "", classifyGeminiError(err)
	}
	out := resp.Text()
	if out == "" {
		return "", Transient(fmt.Errorf("no translation returned"))
	}
	return sanitizeResponse(out), nil
}

func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusUnauthorized,
			apiErr.Code == http.StatusForbidden,
			apiErr.Code == http.StatusBadRequest,
			apiErr.Code == http.StatusNotFound:
			return Permanent(err)
		default:
			return Transient(err)
		}
	}
	return Transient(err)
}
