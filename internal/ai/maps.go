package ai

import (
	"context"
	"encoding/json"
	"fmt"

	g "github.com/serpapi/google-search-results-golang"
	"go.uber.org/zap"
)

// searchFunc runs one SerpApi query
type searchFunc func(ctx context.Context, params map[string]string, apiKey string) (map[string]interface{}, error)

// MapsProvider reads Google Maps listings through SerpApi and re-shapes
// them into the same JSON array a language model is asked to produce.
type MapsProvider struct {
	apiKey string
	search searchFunc
	logger *zap.Logger
}

// NewMapsProvider creates a SerpApi google_maps provider
func NewMapsProvider(apiKey string, logger *zap.Logger) *MapsProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MapsProvider{
		apiKey: apiKey,
		search: serpSearch,
		logger: logger.Named("serpapi"),
	}
}

func serpSearch(ctx context.Context, params map[string]string, apiKey string) (map[string]interface{}, error) {
	type result struct {
		data map[string]interface{}
		err  error
	}

	// The SerpApi client has no context support.
	done := make(chan result, 1)
	go func() {
		search := g.NewGoogleSearch(params, apiKey)
		data, err := search.GetJSON()
		done <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.data, r.err
	}
}

func (p *MapsProvider) Name() string {
	return "SerpApi"
}

// FindBusinesses runs a google_maps search and returns the listings as JSON text
func (p *MapsProvider) FindBusinesses(ctx context.Context, req SearchRequest) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("SerpApi API key is not set")
	}

	params := map[string]string{
		"engine": "google_maps",
		"type":   "search",
		"q":      req.Query,
		"hl":     "en",
	}

	p.logger.Debug("searching", zap.String("query", req.Query))
	results, err := p.search(ctx, params, p.apiKey)
	if err != nil {
		return "", fmt.Errorf("serpapi search failed: %w", err)
	}
	if msg, ok := results["error"].(string); ok && msg != "" {
		return "", fmt.Errorf("serpapi search failed: %s", msg)
	}

	local, ok := results["local_results"].([]interface{})
	if !ok {
		p.logger.Info("no local_results in response")
		return "[]", nil
	}

	listings := make([]map[string]interface{}, 0, len(local))
	for _, item := range local {
		res, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		listings = append(listings, listingFromLocalResult(res))
		if req.MaxResults > 0 && len(listings) >= req.MaxResults {
			break
		}
	}

	data, err := json.Marshal(listings)
	if err != nil {
		return "", fmt.Errorf("failed to encode listings: %w", err)
	}

	p.logger.Info("search completed", zap.Int("listings", len(listings)))
	return string(data), nil
}

// listingFromLocalResult renames SerpApi local_results keys to the listing schema
func listingFromLocalResult(res map[string]interface{}) map[string]interface{} {
	listing := map[string]interface{}{
		"name":        res["title"],
		"address":     res["address"],
		"phoneNumber": res["phone"],
		"website":     res["website"],
		"rating":      res["rating"],
		"reviewCount": res["reviews"],
		"category":    res["type"],
		"openStatus":  res["open_state"],
	}
	if listing["category"] == nil {
		if types, ok := res["types"].([]interface{}); ok && len(types) > 0 {
			listing["category"] = types[0]
		}
	}
	return listing
}
