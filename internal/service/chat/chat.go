package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sandevgo/inspire/internal/core"
	"github.com/sandevgo/inspire/internal/service/router"
	"github.com/sandevgo/inspire/pkg/log"
)

const (
	minMessageChars = 2
	maxMessageChars = 5000
	titleChars      = 50
)

// Router selects a tool for the first message of a conversation.
type Router interface {
	Route(ctx context.Context, message string) (router.Decision, error)
}

type Request struct {
	UserID         string
	ConversationID string
	ToolID         string
	Message        string
}

type Reply struct {
	ConversationID string        `json:"conversation_id"`
	ToolID         string        `json:"tool_id"`
	ToolName       string        `json:"ai_tool_name"`
	Category       core.Category `json:"category"`
	Message        string        `json:"message"`
	Success        bool          `json:"success"`
	Simulated      bool          `json:"simulated"`
	Timestamp      time.Time     `json:"timestamp"`
}

// Transcript is a conversation with the tool that answers it and its
// messages, oldest first.
type Transcript struct {
	Conversation core.Conversation
	Tool         core.Tool
	Messages     []core.Message
}

type Service struct {
	tools         core.ToolRepository
	conversations core.ConversationRepository
	shares        core.ShareRepository
	router        Router
	responder     core.Responder
	now           func() time.Time
}

func NewService(
	tools core.ToolRepository,
	conversations core.ConversationRepository,
	shares core.ShareRepository,
	router Router,
	responder core.Responder,
) *Service {
	return &Service{
		tools:         tools,
		conversations: conversations,
		shares:        shares,
		router:        router,
		responder:     responder,
		now:           time.Now,
	}
}

// HandleMessage validates the message, resolves or starts the
// conversation, asks the conversation's tool for a reply and stores both
// sides of the exchange. Provider failures become the reply text; only
// validation and storage problems are returned as errors.
func (s *Service) HandleMessage(ctx context.Context, req Request) (Reply, error) {
	logger := log.FromCtx(ctx)

	text := strings.TrimSpace(req.Message)
	if err := validate(text); err != nil {
		return Reply{}, err
	}

	conv, tool, category, err := s.resolveConversation(ctx, req, text)
	if err != nil {
		return Reply{}, err
	}

	if _, err := s.conversations.AddMessage(ctx, core.Message{
		ConversationID: conv.ID,
		Content:        text,
		IsUser:         true,
	}); err != nil {
		return Reply{}, err
	}

	resp := s.responder.Send(ctx, text, tool.ServiceConfig())

	answer := resp.Data
	if !resp.Success {
		answer = resp.Error
		logger.Warn().Str("tool", tool.Name).Str("error", resp.Error).Msg("tool failed to answer")
	}

	aiMsg, err := s.conversations.AddMessage(ctx, core.Message{
		ConversationID: conv.ID,
		Content:        answer,
		IsUser:         false,
	})
	if err != nil {
		return Reply{}, err
	}

	if err := s.conversations.TouchConversation(ctx, conv.ID); err != nil {
		return Reply{}, err
	}

	if resp.Success && !resp.Simulated {
		if err := s.tools.IncrementPopularity(ctx, tool.ID); err != nil {
			logger.Warn().Err(err).Str("tool", tool.ID).Msg("failed to update popularity")
		}
	}

	return Reply{
		ConversationID: conv.ID,
		ToolID:         tool.ID,
		ToolName:       tool.Name,
		Category:       category,
		Message:        answer,
		Success:        resp.Success,
		Simulated:      resp.Simulated,
		Timestamp:      aiMsg.Timestamp,
	}, nil
}

// Transcript loads a conversation owned by userID for export.
func (s *Service) Transcript(ctx context.Context, userID, conversationID string) (Transcript, error) {
	conv, err := s.conversations.GetConversation(ctx, conversationID, userID)
	if err != nil {
		return Transcript{}, err
	}

	tool, err := s.tools.GetTool(ctx, conv.ToolID)
	if err != nil {
		return Transcript{}, err
	}

	messages, err := s.conversations.GetMessages(ctx, conv.ID)
	if err != nil {
		return Transcript{}, err
	}

	return Transcript{Conversation: conv, Tool: tool, Messages: messages}, nil
}

func (s *Service) resolveConversation(ctx context.Context, req Request, text string) (core.Conversation, core.Tool, core.Category, error) {
	logger := log.FromCtx(ctx)

	if req.ConversationID != "" {
		conv, err := s.conversations.GetConversation(ctx, req.ConversationID, req.UserID)
		switch {
		case err == nil:
			tool, err := s.tools.GetTool(ctx, conv.ToolID)
			if err != nil {
				return core.Conversation{}, core.Tool{}, "", err
			}
			return conv, tool, tool.Category, nil
		case errors.Is(err, core.ErrConversationNotFound):
			logger.Debug().Str("conversation", req.ConversationID).Msg("conversation not found, starting a new one")
		default:
			return core.Conversation{}, core.Tool{}, "", err
		}
	}

	tool, category, err := s.pickTool(ctx, req.ToolID, text)
	if err != nil {
		return core.Conversation{}, core.Tool{}, "", err
	}

	conv, err := s.conversations.CreateConversation(ctx, core.Conversation{
		UserID: req.UserID,
		ToolID: tool.ID,
		Title:  Title(text),
	})
	if err != nil {
		return core.Conversation{}, core.Tool{}, "", err
	}
	return conv, tool, category, nil
}

// pickTool honours an explicit tool id when it exists and routes the
// message otherwise.
func (s *Service) pickTool(ctx context.Context, toolID, text string) (core.Tool, core.Category, error) {
	if toolID != "" {
		tool, err := s.tools.GetTool(ctx, toolID)
		if err == nil {
			return tool, tool.Category, nil
		}
		if !errors.Is(err, core.ErrToolNotFound) {
			return core.Tool{}, "", err
		}
		log.FromCtx(ctx).Debug().Str("tool", toolID).Msg("requested tool not found, routing instead")
	}

	d, err := s.router.Route(ctx, text)
	if err != nil {
		return core.Tool{}, "", fmt.Errorf("failed to route message: %w", err)
	}
	return *d.Tool, d.Category, nil
}

// Title derives a conversation title from its first message.
func Title(message string) string {
	if utf8.RuneCountInString(message) <= titleChars {
		return message
	}
	return string([]rune(message)[:titleChars]) + "..."
}
