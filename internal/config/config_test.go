package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "SEARCH_PROVIDER", "HISTORY_LIMIT", "SEARCH_TIMEOUT", "ALLOWED_ORIGINS", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, ":50051", cfg.GRPCAddr)
	require.Equal(t, "gemini", cfg.SearchProvider)
	require.Equal(t, 10, cfg.HistoryLimit)
	require.Equal(t, 90*time.Second, cfg.SearchTimeout)
	require.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	require.Empty(t, cfg.DatabaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SEARCH_PROVIDER", "SerpApi")
	t.Setenv("HISTORY_LIMIT", "25")
	t.Setenv("SEARCH_TIMEOUT", "30s")
	t.Setenv("SETTINGS_REFRESH", "bogus")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://leads.example ,")

	cfg := Load()
	require.Equal(t, "serpapi", cfg.SearchProvider)
	require.Equal(t, 25, cfg.HistoryLimit)
	require.Equal(t, 30*time.Second, cfg.SearchTimeout)
	require.Equal(t, 5*time.Minute, cfg.SettingsRefresh)
	require.Equal(t, []string{"http://localhost:3000", "https://leads.example"}, cfg.AllowedOrigins)
}
