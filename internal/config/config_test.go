package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRoutingTable_Bundled(t *testing.T) {
	table, err := LoadRoutingTable("")
	require.NoError(t, err)

	assert.Equal(t, 1, table.Version)
	assert.Equal(t, "Text Generator", table.Default)

	names := make([]string, 0, len(table.Categories))
	for _, c := range table.Categories {
		names = append(names, c.Name)
		assert.NotEmpty(t, c.Patterns)
	}
	assert.Equal(t, []string{"Image Generator", "Video Generator", "Code Generator", "Transcription", "Word Processor"}, names)
}

func TestLoadRoutingTable_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: 7
categories:
  - name: Music Generator
    patterns: ['(song|melody)']
`), 0644))

	table, err := LoadRoutingTable(path)
	require.NoError(t, err)
	assert.Equal(t, 7, table.Version)
	assert.Equal(t, "Text Generator", table.Default)
	assert.Equal(t, []RoutingCategory{{Name: "Music Generator", Patterns: []string{"(song|melody)"}}}, table.Categories)

	_, err = LoadRoutingTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseRoutingTable_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"not yaml", "categories: [", "decode routing table"},
		{"no categories", "version: 1\n", "no categories"},
		{"unnamed", "categories:\n  - patterns: ['x']\n", "has no name"},
		{"duplicate", "categories:\n  - name: A\n    patterns: ['x']\n  - name: A\n    patterns: ['y']\n", `"A" declared twice`},
		{"no patterns", "categories:\n  - name: A\n", `"A" has no patterns`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRoutingTable([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewAppConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("INSPIRE_RUNTIME_PATH", dir)
	t.Setenv("INSPIRE_ENABLE_TELEGRAM", "true")
	t.Setenv("INSPIRE_ENABLE_HTTP", "false")
	t.Setenv("INSPIRE_ROUTING_FILE", "/etc/inspire/routing.yaml")

	c := NewAppConfig(context.Background())

	assert.Equal(t, dir, c.GetRuntimePath())
	assert.Equal(t, filepath.Join(dir, "inspire.db"), c.GetDatabasePath())
	assert.Equal(t, filepath.Join(dir, "secrets.env"), c.GetSecretsFilePath())
	assert.Equal(t, filepath.Join(dir, ".env"), c.GetEnvFilePath())
	assert.True(t, c.IsTelegramSelected())
	assert.False(t, c.IsHTTPSelected())
	assert.True(t, c.SeedCatalog)
	assert.Equal(t, "/etc/inspire/routing.yaml", c.RoutingFile)
}

func TestResolveRuntimePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".inspire"), resolveRuntimePath(""))
	assert.Equal(t, filepath.Join(home, "data"), resolveRuntimePath("data"))
	assert.Equal(t, "/var/lib/inspire", resolveRuntimePath("/var/lib/inspire"))
}

func TestNewResponderConfig(t *testing.T) {
	c := NewResponderConfig(context.Background())
	assert.Equal(t, 30*time.Second, c.GetRequestTimeout())
	assert.Equal(t, time.Second, c.GetSimulationDelay())
	assert.Equal(t, "https://api.openai.com", c.GetOpenAIBaseURL())
	assert.Equal(t, "https://api-inference.huggingface.co", c.GetHuggingFaceBaseURL())
	assert.False(t, c.IsTokenCountEnabled())

	t.Setenv("INSPIRE_SIMULATION_DELAY", "0s")
	t.Setenv("INSPIRE_OPENAI_BASE_URL", "http://localhost:9999")
	t.Setenv("INSPIRE_COUNT_TOKENS", "true")

	c = NewResponderConfig(context.Background())
	assert.Zero(t, c.GetSimulationDelay())
	assert.Equal(t, "http://localhost:9999", c.GetOpenAIBaseURL())
	assert.True(t, c.IsTokenCountEnabled())
}

func TestNewTelegramConfig(t *testing.T) {
	t.Setenv("INSPIRE_TELEGRAM_TOKEN", "123:abc")

	c := NewTelegramConfig(context.Background())
	assert.Equal(t, "123:abc", c.GetTelegramToken())
	assert.Zero(t, c.GetTelegramOwnerID())
}

func TestIsDebug(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"0", false},
		{"false", false},
		{"yes", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("INSPIRE_DEBUG", tt.value)
			assert.Equal(t, tt.want, IsDebug())
		})
	}
}
