package secrets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, env map[string]string, fileContent string) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "secrets.env")
	if fileContent != "" {
		require.NoError(t, os.WriteFile(path, []byte(fileContent), 0600))
	}

	s := NewStore(context.Background(), path)
	s.getenv = func(key string) string { return env[key] }
	return s
}

func TestStore_Get(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		file    string
		key     string
		want    string
		wantHit bool
	}{
		{
			name:    "environment only",
			env:     map[string]string{OpenAIAPIKey: "sk-env"},
			key:     OpenAIAPIKey,
			want:    "sk-env",
			wantHit: true,
		},
		{
			name:    "environment wins over file",
			env:     map[string]string{OpenAIAPIKey: "sk-env"},
			file:    "OPENAI_API_KEY=sk-file\n",
			key:     OpenAIAPIKey,
			want:    "sk-env",
			wantHit: true,
		},
		{
			name:    "file fallback",
			file:    "HUGGINGFACE_API_KEY=hf-file\n",
			key:     HuggingFaceAPIKey,
			want:    "hf-file",
			wantHit: true,
		},
		{
			name: "missing everywhere",
			file: "OTHER=1\n",
			key:  OpenAIAPIKey,
		},
		{
			name: "no file",
			key:  OpenAIAPIKey,
		},
		{
			name: "empty value counts as missing",
			file: "OPENAI_API_KEY=\n",
			key:  OpenAIAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, tt.env, tt.file)

			got, ok := s.Get(tt.key)
			assert.Equal(t, tt.wantHit, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_EmptyPath(t *testing.T) {
	s := NewStore(context.Background(), "")
	s.getenv = func(string) string { return "" }

	_, ok := s.Get(OpenAIAPIKey)
	assert.False(t, ok)
}
