package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty input", input: "", expected: ""},
		{name: "plain text", input: "Hello world", expected: "Hello world"},
		{name: "bold", input: "**bold**", expected: "<strong>bold</strong>"},
		{name: "italic", input: "*italic*", expected: "<em>italic</em>"},
		{name: "strikethrough", input: "~~gone~~", expected: "<del>gone</del>"},
		{name: "inline code", input: "`x := 1`", expected: "<code>x := 1</code>"},
		{
			name:     "fenced code keeps language class",
			input:    "```python\nprint(42)\n```",
			expected: "<pre><code class=\"language-python\">print(42)\n</code></pre>",
		},
		{
			name:     "link keeps href only",
			input:    "[docs](https://example.com)",
			expected: "<a href=\"https://example.com\">docs</a>",
		},
		{name: "heading reduced to text", input: "# Tips", expected: "Tips"},
		{name: "script removed", input: "<script>alert('xss')</script>", expected: ""},
		{
			name:     "mixed formatting",
			input:    "**Bold** and *italic* with `code`",
			expected: "<strong>Bold</strong> and <em>italic</em> with <code>code</code>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToTelegramHTML(tt.input))
		})
	}
}

func TestToolReply(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		answer   string
		expected string
	}{
		{
			name:     "name in bold above the answer",
			tool:     "ChatGPT",
			answer:   "Hi *there*",
			expected: "<b>ChatGPT</b>\n\nHi <em>there</em>",
		},
		{
			name:     "tool name is escaped",
			tool:     "R&D <bot>",
			answer:   "ok",
			expected: "<b>R&amp;D &lt;bot&gt;</b>\n\nok",
		},
		{
			name:     "empty answer leaves only the header",
			tool:     "DALL-E",
			answer:   "  ",
			expected: "<b>DALL-E</b>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToolReply(tt.tool, tt.answer))
		})
	}
}
