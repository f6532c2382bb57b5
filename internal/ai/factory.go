package ai

import (
	"context"
	"fmt"

	"github.com/amityadav/sitefinder/internal/ai/models"
	"go.uber.org/zap"
)

// Supported values for SEARCH_PROVIDER
const (
	ProviderGemini   = "gemini"
	ProviderGroq     = "groq"
	ProviderCerebras = "cerebras"
	ProviderSerpAPI  = "serpapi"
	ProviderMulti    = "multi"
)

// Keys carries the credentials a provider may need
type Keys struct {
	Gemini      string
	GeminiModel string
	Groq        string
	Cerebras    string
	SerpAPI     string
}

// NewLLMProvider creates an OpenAI-compatible provider by name.
// Supported providers: "groq", "cerebras"
func NewLLMProvider(providerName, apiKey, modelID string, logger *zap.Logger) (*BaseProvider, error) {
	switch providerName {
	case ProviderGroq:
		if modelID == "" {
			modelID = models.ModelGroqGptOss120b
		}
		return NewBaseProvider(ProviderConfig{
			Name:    "Groq",
			BaseURL: "https://api.groq.com/openai/v1/chat/completions",
			APIKey:  apiKey,
			Model:   modelID,
		}, logger), nil
	case ProviderCerebras:
		if modelID == "" {
			modelID = models.ModelCerebrasGptOss120b
		}
		return NewBaseProvider(ProviderConfig{
			Name:    "Cerebras",
			BaseURL: "https://api.cerebras.ai/v1/chat/completions",
			APIKey:  apiKey,
			Model:   modelID,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: groq, cerebras)", providerName)
	}
}

// NewProvider builds the provider named by kind. "multi" chains every
// provider that has a key, Gemini first.
func NewProvider(ctx context.Context, kind string, keys Keys, logger *zap.Logger) (Provider, error) {
	switch kind {
	case ProviderGemini, "":
		if keys.Gemini == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for provider %q", ProviderGemini)
		}
		p, err := NewGeminiProvider(ctx, keys.Gemini, keys.GeminiModel, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderGroq:
		if keys.Groq == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required for provider %q", kind)
		}
		return newLLM(kind, keys.Groq, models.TaskFallbackSearchModel, logger)
	case ProviderCerebras:
		if keys.Cerebras == "" {
			return nil, fmt.Errorf("CEREBRAS_API_KEY is required for provider %q", kind)
		}
		return newLLM(kind, keys.Cerebras, "", logger)
	case ProviderSerpAPI:
		if keys.SerpAPI == "" {
			return nil, fmt.Errorf("SERPAPI_API_KEY is required for provider %q", kind)
		}
		return NewMapsProvider(keys.SerpAPI, logger), nil
	case ProviderMulti:
		var chain []Provider
		for _, name := range []string{ProviderGemini, ProviderSerpAPI, ProviderGroq, ProviderCerebras} {
			if !keys.has(name) {
				continue
			}
			p, err := NewProvider(ctx, name, keys, logger)
			if err != nil {
				return nil, err
			}
			chain = append(chain, p)
		}
		if len(chain) == 0 {
			return nil, fmt.Errorf("no search provider configured: set GEMINI_API_KEY, SERPAPI_API_KEY, GROQ_API_KEY or CEREBRAS_API_KEY")
		}
		return NewMultiProvider(logger, chain...), nil
	default:
		return nil, fmt.Errorf("unsupported search provider: %s", kind)
	}
}

func newLLM(kind, apiKey, modelID string, logger *zap.Logger) (Provider, error) {
	p, err := NewLLMProvider(kind, apiKey, modelID, logger)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (k Keys) has(kind string) bool {
	switch kind {
	case ProviderGemini:
		return k.Gemini != ""
	case ProviderGroq:
		return k.Groq != ""
	case ProviderCerebras:
		return k.Cerebras != ""
	case ProviderSerpAPI:
		return k.SerpAPI != ""
	}
	return false
}
