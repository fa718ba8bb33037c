package conv

import (
	"html"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

const (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = mdhtml.CommonFlags | mdhtml.HrefTargetBlank
)

// https://core.telegram.org/bots/api#html-style
var telegramTags = []string{"b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote"}

var telegramPolicy = newTelegramPolicy()

func newTelegramPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(telegramTags...)
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("class").OnElements("code")
	return p
}

// ToTelegramHTML renders Markdown and keeps only the markup Telegram's HTML
// parse mode accepts. Everything else is reduced to its text.
func ToTelegramHTML(md string) string {
	p := parser.NewWithExtensions(extensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: htmlFlags})
	rendered := markdown.Render(p.Parse([]byte(md)), renderer)

	return strings.TrimSpace(string(telegramPolicy.SanitizeBytes(rendered)))
}

// ToolReply formats an AI tool answer: the tool name in bold, a blank line,
// then the rendered answer.
func ToolReply(toolName, answer string) string {
	body := ToTelegramHTML(answer)
	header := "<b>" + html.EscapeString(toolName) + "</b>"
	if body == "" {
		return header
	}
	return header + "\n\n" + body
}
