package ai

import (
	"context"
	"fmt"

	"github.com/amityadav/sitefinder/internal/ai/models"
	"github.com/amityadav/sitefinder/prompts"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// contentGenerator is the slice of *genai.Models used here
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider searches with Gemini grounded on Google Maps
type GeminiProvider struct {
	models contentGenerator
	model  string
	logger *zap.Logger
}

// NewGeminiProvider creates a Gemini API client for the given key
func NewGeminiProvider(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newGeminiProvider(client.Models, model, logger), nil
}

func newGeminiProvider(gen contentGenerator, model string, logger *zap.Logger) *GeminiProvider {
	if model == "" {
		model = models.TaskBusinessSearchModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiProvider{
		models: gen,
		model:  model,
		logger: logger.Named("gemini"),
	}
}

func (p *GeminiProvider) Name() string {
	return "Gemini"
}

// FindBusinesses runs one grounded generation and returns the reply text
func (p *GeminiProvider) FindBusinesses(ctx context.Context, req SearchRequest) (string, error) {
	prompt := prompts.RenderBusinessSearch(req.Query, req.MinResults, req.MaxResults)

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}},
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(req.Temperature)
	}

	p.logger.Debug("sending request", zap.String("model", p.model), zap.String("query", req.Query))

	resp, err := p.models.GenerateContent(ctx, p.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	p.logger.Info("search completed", zap.Int("length", len(text)))
	return text, nil
}
