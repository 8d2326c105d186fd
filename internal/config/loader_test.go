package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Point at a path that does not exist; defaults should apply.
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.openai.com", cfg.Provider.Endpoint)
	assert.Equal(t, "gpt-4o-mini", cfg.Provider.Model)
	assert.Equal(t, 2000, cfg.Provider.MaxTokens)
	assert.Equal(t, 50, cfg.History.MaxPlans)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.IsConfigured())
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeConfig(t, `
provider:
  api_key: sk-test-123
  endpoint: https://llm.internal.example
  model: gpt-4o
  max_tokens: 4000
  timeout: 30s

history:
  max_plans: 10

logging:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-test-123", cfg.Provider.APIKey.Value())
	assert.Equal(t, "https://llm.internal.example", cfg.Provider.Endpoint)
	assert.Equal(t, "gpt-4o", cfg.Provider.Model)
	assert.Equal(t, 4000, cfg.Provider.MaxTokens)
	assert.Equal(t, "30s", cfg.Provider.Timeout.Duration().String())
	assert.Equal(t, 10, cfg.History.MaxPlans)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.IsConfigured())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
provider:
  model: file-model
`)

	t.Setenv("PLANNERD_PROVIDER_MODEL", "env-model")
	t.Setenv("PLANNERD_PROVIDER_API_KEY", "sk-from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-model", cfg.Provider.Model)
	assert.Equal(t, "sk-from-env", cfg.Provider.APIKey.Value())
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "provider: [not a map")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_ValidationFailure(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero max_tokens", "provider:\n  max_tokens: -5\n"},
		{"bad endpoint scheme", "provider:\n  endpoint: ftp://example.com\n"},
		{"bad log level", "logging:\n  level: loud\n"},
		{"bad log format", "logging:\n  format: xml\n"},
		{"zero max_plans", "history:\n  max_plans: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.yaml)
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestSecret_Redaction(t *testing.T) {
	s := Secret("super-secret")
	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "super-secret", s.Value())

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "super-secret")

	var empty Secret
	assert.Equal(t, "", empty.String())
	assert.False(t, empty.IsSet())
}

func TestDuration_UnmarshalText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("90s")))
	assert.Equal(t, "1m30s", d.Duration().String())

	require.Error(t, d.UnmarshalText([]byte("-5s")))
	require.Error(t, d.UnmarshalText([]byte("not-a-duration")))
}
