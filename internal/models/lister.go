package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/louanfontenele/LocoTranslator/internal/translate"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// ListAvailableModels lists the chat models usable for translation
func (l *Lister) ListAvailableModels() error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .locotranslator.yaml")
	}

	ctx := context.Background()
	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	chatModels := []string{}
	for _, model := range models.Models {
		modelID := model.ID
		if strings.Contains(modelID, "gpt") || strings.Contains(modelID, "chat") {
			chatModels = append(chatModels, modelID)
		}
	}
	sort.Strings(chatModels)

	defaultModel := translate.DefaultModel(translate.ProviderOpenAI)

	fmt.Println("Available OpenAI chat models for translation:")
	if len(chatModels) == 0 {
		fmt.Println("  No chat models found")
	}
	for _, model := range chatModels {
		if model == defaultModel {
			fmt.Printf("  %s (default)\n", model)
		} else {
			fmt.Printf("  %s\n", model)
		}
	}

	fmt.Printf("\nGemini models are not listed here; the default is %s.\n",
		translate.DefaultModel(translate.ProviderGemini))

	return nil
}
