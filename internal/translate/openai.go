package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// openaiTranslator translates through the OpenAI chat completions API.
type openaiTranslator struct {
	client *openai.Client
	cfg    Config
	system string
}

func newOpenAITranslator(cfg Config) (Translator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found: set OPENAI_API_KEY or translation.openai_key in the config file")
	}
	return &openaiTranslator{
		client: openai.NewClient(cfg.APIKey),
		cfg:    cfg,
		system: buildSystemPrompt(cfg),
	}, nil
}

func (t *openaiTranslator) Name() string { return "openai/" + t.cfg.Model }

func (t *openaiTranslator) Translate(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: t.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: t.system},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(text)},
		},
		MaxTokens:   512,
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", Transient(fmt.Errorf("no translation returned"))
	}
	return sanitizeResponse(resp.Choices[0].Message.Content), nil
}

// classifyOpenAIError maps API failures onto the transient/permanent
// taxonomy. Auth and request errors would fail identically for every
// entry; rate limits and server errors are worth retrying.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusUnauthorized,
			apiErr.HTTPStatusCode == http.StatusForbidden,
			apiErr.HTTPStatusCode == http.StatusNotFound,
			apiErr.HTTPStatusCode == http.StatusBadRequest:
			return Permanent(err)
		default:
			return Transient(err)
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == http.StatusUnauthorized || reqErr.HTTPStatusCode == http.StatusForbidden {
			return Permanent(err)
		}
	}
	return Transient(err)
}
