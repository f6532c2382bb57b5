package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) FindBusinesses(context.Context, SearchRequest) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestMultiProviderFallsThrough(t *testing.T) {
	first := &stubProvider{name: "first", err: errors.New("503")}
	second := &stubProvider{name: "second", text: "  "}
	third := &stubProvider{name: "third", text: "[]"}

	m := NewMultiProvider(nil, first, second, third)
	require.Equal(t, "Multi[first+second+third]", m.Name())

	text, err := m.FindBusinesses(context.Background(), SearchRequest{Query: "q"})
	require.NoError(t, err)
	require.Equal(t, "[]", text)
	require.Equal(t, 1, first.calls)
	require.Equal(t, 1, second.calls)
	require.Equal(t, 1, third.calls)
}

func TestMultiProviderAllFail(t *testing.T) {
	m := NewMultiProvider(nil,
		&stubProvider{name: "a", err: errors.New("boom a")},
		&stubProvider{name: "b", err: errors.New("boom b")},
	)

	_, err := m.FindBusinesses(context.Background(), SearchRequest{Query: "q"})
	require.ErrorContains(t, err, "all providers failed")
	require.ErrorContains(t, err, "boom a")
	require.ErrorContains(t, err, "boom b")
}

func TestMultiProviderStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	second := &stubProvider{name: "b", text: "[]"}
	m := NewMultiProvider(nil, &stubProvider{name: "a", err: context.Canceled}, second)

	_, err := m.FindBusinesses(ctx, SearchRequest{Query: "q"})
	require.Error(t, err)
	require.Zero(t, second.calls)
}
