package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/amityadav/sitefinder/prompts"
	"go.uber.org/zap"
)

// BaseProvider implements FindBusinesses for OpenAI-compatible chat APIs
type BaseProvider struct {
	config ProviderConfig
	client *http.Client
	logger *zap.Logger
}

// NewBaseProvider creates a new base provider
func NewBaseProvider(config ProviderConfig, logger *zap.Logger) *BaseProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BaseProvider{
		config: config,
		client: &http.Client{Timeout: 90 * time.Second},
		logger: logger.Named(strings.ToLower(config.Name)),
	}
}

func (p *BaseProvider) Name() string {
	return p.config.Name
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float32      `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// FindBusinesses asks the model for a JSON array of businesses
func (p *BaseProvider) FindBusinesses(ctx context.Context, req SearchRequest) (string, error) {
	prompt := prompts.RenderBusinessSearch(req.Query, req.MinResults, req.MaxResults)

	reqBody := chatRequest{
		Model:    p.config.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}
	if req.Temperature > 0 {
		t := req.Temperature
		reqBody.Temperature = &t
	}

	return p.sendRequest(ctx, reqBody)
}

// sendRequest handles HTTP requests to the AI provider
func (p *BaseProvider) sendRequest(ctx context.Context, reqBody chatRequest) (string, error) {
	p.logger.Debug("sending request", zap.String("model", reqBody.Model))

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	p.logger.Debug("response received", zap.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%s api error: %d %s", p.config.Name, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", nil
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	p.logger.Info("search completed", zap.Int("length", len(content)))
	return content, nil
}
