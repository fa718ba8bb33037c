package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/inspire/internal/core"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "txt"
	FormatCSV  Format = "csv"
)

const (
	textDateLayout = "2006-01-02 15:04"
	csvDateLayout  = "2006-01-02 15:04:05"
	isoLayout      = "2006-01-02T15:04:05.999999-07:00"
)

// Document is a rendered transcript ready to be written out.
type Document struct {
	Content     []byte
	ContentType string
	Extension   string
}

// Filename suggests a download name for the transcript of conv.
func (d Document) Filename(conv core.Conversation) string {
	return fmt.Sprintf("conversation-%s.%s", conv.ID, d.Extension)
}

// ParseFormat maps a user supplied name to a Format. Unknown names fall
// back to JSON.
func ParseFormat(name string) Format {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatCSV:
		return f
	default:
		return FormatJSON
	}
}

// Render formats a conversation answered by tool. Messages must be in
// chronological order.
func Render(conv core.Conversation, tool core.Tool, messages []core.Message, format Format) (Document, error) {
	switch format {
	case FormatText:
		return renderText(conv, tool, messages), nil
	case FormatCSV:
		return renderCSV(tool, messages)
	default:
		return renderJSON(conv, tool, messages)
	}
}

type jsonMessage struct {
	Content   string `json:"content"`
	IsUser    bool   `json:"is_user"`
	Timestamp string `json:"timestamp"`
}

type jsonConversation struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	AITool    string        `json:"ai_tool"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
	Messages  []jsonMessage `json:"messages"`
}

func renderJSON(conv core.Conversation, tool core.Tool, messages []core.Message) (Document, error) {
	out := jsonConversation{
		ID:        conv.ID,
		Title:     conv.Title,
		AITool:    tool.Name,
		CreatedAt: isoTime(conv.CreatedAt),
		UpdatedAt: isoTime(conv.UpdatedAt),
		Messages:  make([]jsonMessage, 0, len(messages)),
	}
	for _, m := range messages {
		out.Messages = append(out.Messages, jsonMessage{
			Content:   m.Content,
			IsUser:    m.IsUser,
			Timestamp: isoTime(m.Timestamp),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return Document{}, fmt.Errorf("failed to encode transcript: %w", err)
	}
	return Document{Content: data, ContentType: "application/json", Extension: "json"}, nil
}

func renderText(conv core.Conversation, tool core.Tool, messages []core.Message) Document {
	lines := []string{
		"Conversation: " + conv.Title,
		"AI Tool: " + tool.Name,
		"Date: " + conv.CreatedAt.Format(textDateLayout),
		strings.Repeat("-", 40),
	}
	for _, m := range messages {
		sender := tool.Name
		if m.IsUser {
			sender = "You"
		}
		lines = append(lines,
			fmt.Sprintf("%s (%s):", sender, m.Timestamp.Format(textDateLayout)),
			m.Content,
			"",
		)
	}
	return Document{
		Content:     []byte(strings.Join(lines, "\n")),
		ContentType: "text/plain",
		Extension:   "txt",
	}
}

func renderCSV(tool core.Tool, messages []core.Message) (Document, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	if err := w.Write([]string{"Timestamp", "Sender", "Message"}); err != nil {
		return Document{}, err
	}
	for _, m := range messages {
		sender := tool.Name
		if m.IsUser {
			sender = "User"
		}
		if err := w.Write([]string{m.Timestamp.Format(csvDateLayout), sender, m.Content}); err != nil {
			return Document{}, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Document{}, fmt.Errorf("failed to encode transcript: %w", err)
	}
	return Document{Content: buf.Bytes(), ContentType: "text/csv", Extension: "csv"}, nil
}

func isoTime(t time.Time) string {
	return t.Format(isoLayout)
}
