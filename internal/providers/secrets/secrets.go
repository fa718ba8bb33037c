package secrets

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sandevgo/inspire/pkg/log"
)

const (
	OpenAIAPIKey      = "OPENAI_API_KEY"
	HuggingFaceAPIKey = "HUGGINGFACE_API_KEY"
)

// Store resolves API keys from the environment first and from the
// legacy secrets file second. Hits in the file are logged as warnings.
type Store struct {
	filePath string
	getenv   func(string) string
	logger   *zerolog.Logger

	once sync.Once
	file map[string]string
}

func NewStore(ctx context.Context, filePath string) *Store {
	return &Store{
		filePath: filePath,
		getenv:   os.Getenv,
		logger:   log.FromCtx(ctx),
	}
}

func (s *Store) Get(key string) (string, bool) {
	if v := s.getenv(key); v != "" {
		return v, true
	}

	s.once.Do(s.loadFile)
	if v := s.file[key]; v != "" {
		s.logger.Warn().
			Str("key", key).
			Str("path", s.filePath).
			Msg("api key found in secrets file but not in environment, this is deprecated")
		return v, true
	}
	return "", false
}

func (s *Store) loadFile() {
	s.file = map[string]string{}
	if s.filePath == "" {
		return
	}

	values, err := godotenv.Read(s.filePath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error().Err(err).Str("path", s.filePath).Msg("failed to read secrets file")
		}
		return
	}
	s.file = values
}
