package ai

import "context"

// SearchRequest describes one business lookup
type SearchRequest struct {
	Query       string
	MinResults  int
	MaxResults  int
	Temperature float32
}

// Provider looks businesses up and returns the raw reply text, expected to
// hold a JSON array of loosely typed business objects. Interpreting the
// text is left to the caller.
type Provider interface {
	Name() string
	FindBusinesses(ctx context.Context, req SearchRequest) (string, error)
}

// ProviderConfig holds configuration for an OpenAI-compatible provider
type ProviderConfig struct {
	Name    string
	BaseURL string
	APIKey  string
	Model   string
}
