package core

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/amityadav/sitefinder/internal/ai"
	"github.com/amityadav/sitefinder/internal/history"
	"github.com/amityadav/sitefinder/internal/leads"
	"github.com/amityadav/sitefinder/internal/settings"
	"go.uber.org/zap"
)

var (
	ErrEmptyQuery       = errors.New("search query is empty")
	ErrSearchInProgress = errors.New("a search is already in progress")
	ErrNotFound         = errors.New("business not found")
	ErrProviderPanic    = errors.New("search provider panicked")
)

// User-facing messages recorded in State.Error
const (
	MsgEmptyResponse = "No data received from the search provider. Please try again."
	MsgMalformed     = "Failed to process business data. Please try again."
	MsgUnexpected    = "An unexpected error occurred."
)

const maxLoggedReply = 4000

// TransportError wraps a failure of the search provider call itself
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s search failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// State is the session-level search status
type State struct {
	Query       string `json:"query"`
	IsLoading   bool   `json:"isLoading"`
	Error       string `json:"error,omitempty"`
	HasSearched bool   `json:"hasSearched"`
}

// Snapshot is a consistent view of the session
type Snapshot struct {
	State     State       `json:"state"`
	ActiveTab leads.Tab   `json:"activeTab"`
	Stats     leads.Stats `json:"stats"`
}

// TuningSource supplies the current search parameters
type TuningSource interface {
	SearchTuning() settings.SearchTuning
}

// SearchCore owns the single search session: its state, the current batch
// of businesses and the active tab. Only one search runs at a time; a second
// one is rejected instead of queued.
type SearchCore struct {
	provider   ai.Provider
	normalizer leads.Normalizer
	history    history.Store
	tuning     TuningSource
	timeout    time.Duration
	logger     *zap.Logger

	mu         sync.RWMutex
	state      State
	businesses []leads.Business
	tab        leads.Tab
}

// NewSearchCore creates the search session. timeout bounds each provider call.
func NewSearchCore(provider ai.Provider, hist history.Store, tuning TuningSource, timeout time.Duration, logger *zap.Logger) *SearchCore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &SearchCore{
		provider: provider,
		history:  hist,
		tuning:   tuning,
		timeout:  timeout,
		logger:   logger.Named("search"),
		tab:      leads.TabAll,
	}
}

// SearchResult is the session after a search together with the records
// that search published under the active tab
type SearchResult struct {
	Snapshot
	Businesses []leads.Business `json:"businesses"`
}

// Search runs one search and replaces the current batch. Results are cleared
// as soon as the search starts. On failure the batch stays empty and
// State.Error holds a message for the user; the returned error carries details.
func (c *SearchCore) Search(ctx context.Context, query string) (SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return SearchResult{Snapshot: c.Snapshot()}, ErrEmptyQuery
	}

	c.mu.Lock()
	if c.state.IsLoading {
		c.mu.Unlock()
		return SearchResult{Snapshot: c.Snapshot()}, ErrSearchInProgress
	}
	c.state = State{Query: query, IsLoading: true, HasSearched: true}
	c.businesses = nil
	c.mu.Unlock()

	if c.history != nil {
		if err := c.history.Add(ctx, query); err != nil {
			c.logger.Warn("failed to record query", zap.String("query", query), zap.Error(err))
		}
	}

	started := time.Now()
	results, err := c.fetch(ctx, query)
	if err != nil {
		return c.fail(err)
	}

	c.mu.Lock()
	c.businesses = results
	c.tab = leads.AutoTab(results)
	c.state.IsLoading = false
	res := SearchResult{
		Snapshot: Snapshot{
			State:     c.state,
			ActiveTab: c.tab,
			Stats:     leads.ComputeStats(results),
		},
		Businesses: leads.Filter(results, c.tab),
	}
	c.mu.Unlock()

	c.logger.Info("search completed",
		zap.String("query", query),
		zap.String("provider", c.provider.Name()),
		zap.Int("total", res.Stats.Total),
		zap.Int("no_website", res.Stats.NoWebsite),
		zap.Duration("took", time.Since(started)))
	return res, nil
}

// fetch calls the provider and normalizes its reply. A panic in either step
// is returned as ErrProviderPanic so the session always leaves loading.
func (c *SearchCore) fetch(ctx context.Context, query string) (results []leads.Business, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("search panicked",
				zap.String("query", query),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			results, err = nil, fmt.Errorf("%w: %v", ErrProviderPanic, r)
		}
	}()

	// The provider call is not canceled when the caller goes away, only bounded.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	req := ai.SearchRequest{Query: query}
	if c.tuning != nil {
		t := c.tuning.SearchTuning()
		req.Temperature = t.Temperature
		req.MinResults = t.MinResults
		req.MaxResults = t.MaxResults
	}

	raw, err := c.provider.FindBusinesses(callCtx, req)
	if err != nil {
		return nil, &TransportError{Provider: c.provider.Name(), Err: err}
	}

	results, err = c.normalizer.Normalize(raw)
	if err != nil {
		var malformed *leads.MalformedResponseError
		if errors.As(err, &malformed) {
			c.logger.Warn("failed to parse provider reply",
				zap.String("query", query),
				zap.String("raw", truncate(malformed.Raw, maxLoggedReply)),
				zap.Error(malformed.Err))
		}
		return nil, err
	}
	return results, nil
}

func (c *SearchCore) fail(err error) (SearchResult, error) {
	c.logger.Error("search failed", zap.Error(err))

	c.mu.Lock()
	c.state.IsLoading = false
	c.state.Error = userMessage(err)
	c.mu.Unlock()

	return SearchResult{Snapshot: c.Snapshot(), Businesses: []leads.Business{}}, err
}

func userMessage(err error) string {
	var transport *TransportError
	switch {
	case errors.Is(err, leads.ErrEmptyResponse):
		return MsgEmptyResponse
	case errors.Is(err, leads.ErrMalformedResponse):
		return MsgMalformed
	case errors.As(err, &transport):
		if transport.Err != nil && transport.Err.Error() != "" {
			return transport.Err.Error()
		}
		return MsgUnexpected
	default:
		return MsgUnexpected
	}
}

// Snapshot returns the current state, active tab and counts
func (c *SearchCore) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		State:     c.state,
		ActiveTab: c.tab,
		Stats:     leads.ComputeStats(c.businesses),
	}
}

// SetTab switches the active tab
func (c *SearchCore) SetTab(tab leads.Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tab = tab
}

// Results returns the businesses visible under the active tab
func (c *SearchCore) Results() []leads.Business {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return leads.Filter(c.businesses, c.tab)
}

// ResultsFor returns the businesses visible under tab
func (c *SearchCore) ResultsFor(tab leads.Tab) []leads.Business {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return leads.Filter(c.businesses, tab)
}

// Business looks a record of the current batch up by id
func (c *SearchCore) Business(id string) (leads.Business, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, b := range c.businesses {
		if b.ID == id {
			return b, nil
		}
	}
	return leads.Business{}, ErrNotFound
}

// ReplaceBusiness swaps in an updated record with the same id
func (c *SearchCore) ReplaceBusiness(b leads.Business) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.businesses {
		if c.businesses[i].ID == b.ID {
			c.businesses[i] = b
			return nil
		}
	}
	return ErrNotFound
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...[truncated]"
}
