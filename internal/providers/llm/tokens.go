package llm

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tkOnce sync.Once
	tk     *tiktoken.Tiktoken
	tkErr  error
)

func countTokens(text string) (int, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	if tkErr != nil {
		return 0, tkErr
	}
	return len(tk.Encode(text, nil, nil)), nil
}
