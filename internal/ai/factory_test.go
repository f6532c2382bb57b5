package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider("groq", "k", "", nil)
	require.NoError(t, err)
	require.Equal(t, "Groq", p.Name())

	p, err = NewLLMProvider("cerebras", "k", "", nil)
	require.NoError(t, err)
	require.Equal(t, "Cerebras", p.Name())

	_, err = NewLLMProvider("openai", "k", "", nil)
	require.ErrorContains(t, err, "unsupported")
}

func TestNewProviderRequiresKeys(t *testing.T) {
	for _, kind := range []string{ProviderGemini, ProviderGroq, ProviderCerebras, ProviderSerpAPI, ProviderMulti} {
		_, err := NewProvider(context.Background(), kind, Keys{}, nil)
		require.Error(t, err, kind)
	}

	_, err := NewProvider(context.Background(), "bing", Keys{Gemini: "k"}, nil)
	require.ErrorContains(t, err, "unsupported")
}

func TestNewProviderMultiSkipsMissingKeys(t *testing.T) {
	p, err := NewProvider(context.Background(), ProviderMulti, Keys{SerpAPI: "s", Groq: "g"}, nil)
	require.NoError(t, err)
	require.Equal(t, "Multi[SerpApi+Groq]", p.Name())
}
