package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/inspire/internal/core"
	"github.com/sandevgo/inspire/internal/service/chat"
	"github.com/sandevgo/inspire/pkg/conv"
	"github.com/sandevgo/inspire/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type ChatService interface {
	HandleMessage(ctx context.Context, req chat.Request) (chat.Reply, error)
}

type ToolLister interface {
	List(ctx context.Context, category core.Category) ([]core.Tool, error)
}

type Bot struct {
	bot      *tele.Bot
	sender   *sender
	chat     ChatService
	tools    ToolLister
	sessions *sessions
	ownerID  int64
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	chatSvc ChatService,
	tools ToolLister,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		sender:   newSender(b),
		chat:     chatSvc,
		tools:    tools,
		sessions: newSessions(),
		ownerID:  cfg.GetTelegramOwnerID(),
	}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !bot.allowed(c.Sender()) {
				return nil
			}
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle("/new", bot.handleNew)
	b.Handle("/tools", bot.handleTools)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) allowed(u *tele.User) bool {
	if b.ownerID == 0 {
		return true
	}
	return u != nil && u.ID == b.ownerID
}

func (b *Bot) handleStart(c tele.Context) error {
	return c.Send("Send me a message and I'll pass it to the AI tool that fits it best.\n\n" +
		"/new starts a new conversation\n/tools lists the catalog")
}

func (b *Bot) handleNew(c tele.Context) error {
	b.sessions.reset(c.Chat().ID)
	return c.Send("Started a new conversation.")
}

func (b *Bot) handleTools(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	tools, err := b.tools.List(ctx, core.Category(strings.TrimSpace(c.Message().Payload)))
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to list tools")
		return c.Send(fmt.Sprintf("error: %v", err))
	}
	if len(tools) == 0 {
		return c.Send("No tools found.")
	}

	var sb strings.Builder
	for _, t := range tools {
		fmt.Fprintf(&sb, "- **%s** (%s), popularity %d\n", t.Name, t.Category, t.Popularity)
	}
	return b.sender.sendMarkdown(ctx, c.Chat(), sb.String(), false)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	chatID := c.Chat().ID

	_ = c.Notify(tele.Typing)

	reply, err := b.chat.HandleMessage(ctx, chat.Request{
		UserID:         userID(chatID),
		ConversationID: b.sessions.get(chatID),
		Message:        c.Text(),
	})
	if err != nil {
		var verr *chat.ValidationError
		if errors.As(err, &verr) {
			return c.Send(verr.Reason)
		}
		logger.Error().Err(err).Int64("chat", chatID).Msg("failed to handle message")
		return c.Send(fmt.Sprintf("error: %v", err))
	}

	b.sessions.set(chatID, reply.ConversationID)

	return b.sender.sendHTML(ctx, c.Chat(), conv.ToolReply(reply.ToolName, reply.Message), false)
}

func userID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

// sessions maps a chat to its current conversation.
type sessions struct {
	mu    sync.Mutex
	convs map[int64]string
}

func newSessions() *sessions {
	return &sessions{convs: make(map[int64]string)}
}

func (s *sessions) get(chatID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.convs[chatID]
}

func (s *sessions) set(chatID int64, convID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.convs[chatID] = convID
}

func (s *sessions) reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.convs, chatID)
}
