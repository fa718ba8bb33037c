package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sandevgo/inspire/pkg/retry"
	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v3"
)

func TestSplitHTML(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		maxLen     int
		wantChunks int
	}{
		{"fits", "hello", 10, 1},
		{"exact", strings.Repeat("a", 10), 10, 1},
		{"hard cut", strings.Repeat("a", 25), 10, 3},
		{"newline cut", "aaaaaa\nbbbbbb\ncccccc", 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := splitHTML(tt.text, tt.maxLen)
			assert.Len(t, chunks, tt.wantChunks)
			for _, c := range chunks {
				assert.LessOrEqual(t, len(c), tt.maxLen)
			}
		})
	}
}

func TestSplitHTML_PrefersNewlines(t *testing.T) {
	chunks := splitHTML("aaaaaa\nbbbbbb\ncccccc", 10)
	assert.Equal(t, []string{"aaaaaa", "bbbbbb", "cccccc"}, chunks)
}

func TestSplitHTML_KeepsRunesWhole(t *testing.T) {
	text := strings.Repeat("я", 20) // two bytes each
	chunks := splitHTML(text, 9)

	assert.Equal(t, text, strings.Join(chunks, ""))
	for _, c := range chunks {
		assert.True(t, utf8.ValidString(c))
		assert.LessOrEqual(t, len(c), 9)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		permanent bool
	}{
		{name: "nil", err: nil},
		{name: "network error", err: errors.New("connection reset")},
		{name: "flood is retried", err: &tele.Error{Code: 429, Description: "Too Many Requests"}},
		{name: "server error is retried", err: &tele.Error{Code: 502, Description: "Bad Gateway"}},
		{name: "bad request", err: &tele.Error{Code: 400, Description: "Bad Request: can't parse entities"}, permanent: true},
		{name: "blocked by user", err: &tele.Error{Code: 403, Description: "Forbidden: bot was blocked by the user"}, permanent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			_ = retry.NewRetrier(&retry.Config{MaxRetries: 2, BackoffFactor: 1}).Do(context.Background(), func() error {
				calls++
				return classify(tt.err)
			})

			switch {
			case tt.err == nil:
				assert.Equal(t, 1, calls)
			case tt.permanent:
				assert.Equal(t, 1, calls)
			default:
				assert.Equal(t, 3, calls)
			}
		})
	}
}
