package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sandevgo/inspire/internal/core"
	"github.com/sandevgo/inspire/internal/service/router"
	"github.com/sandevgo/inspire/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResponder struct {
	resp    core.ServiceResponse
	prompts []string
	configs []core.ServiceConfig
}

func (f *fakeResponder) Send(ctx context.Context, prompt string, cfg core.ServiceConfig) core.ServiceResponse {
	f.prompts = append(f.prompts, prompt)
	f.configs = append(f.configs, cfg)
	return f.resp
}

type fixture struct {
	svc       *Service
	tools     *sqlite.ToolsRepo
	convs     *sqlite.ConversationsRepo
	responder *fakeResponder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.NewDB(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tools := sqlite.NewToolsRepo(db)
	for _, tool := range []core.Tool{
		{ID: "chatgpt", Name: "ChatGPT", Category: core.CategoryText, Popularity: 100, APIType: core.ProviderOpenAI},
		{ID: "dalle", Name: "DALL-E", Category: core.CategoryImage, Popularity: 90, APIType: core.ProviderNone},
		{ID: "copilot", Name: "GitHub Copilot", Category: core.CategoryCode, Popularity: 95, APIType: core.ProviderOpenAI, APIModel: "gpt-4o"},
	} {
		require.NoError(t, tools.SaveTool(ctx, tool))
	}

	classifier, err := router.NewDefaultClassifier()
	require.NoError(t, err)

	convs := sqlite.NewConversationsRepo(db)
	responder := &fakeResponder{resp: core.Succeeded("real answer")}

	return &fixture{
		svc:       NewService(tools, convs, sqlite.NewSharesRepo(db), router.New(classifier, tools), responder),
		tools:     tools,
		convs:     convs,
		responder: responder,
	}
}

func (f *fixture) popularity(t *testing.T, id string) int {
	t.Helper()
	tool, err := f.tools.GetTool(context.Background(), id)
	require.NoError(t, err)
	return tool.Popularity
}

func TestHandleMessage_Validation(t *testing.T) {
	tests := []struct {
		name    string
		message string
		reason  string
	}{
		{"empty", "", "Message cannot be empty."},
		{"whitespace", "   \n\t", "Message cannot be empty."},
		{"single char", " a ", "Message must be at least 2 characters long."},
		{"too long", strings.Repeat("a", 5001), "Message must be less than 5000 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.HandleMessage(context.Background(), Request{UserID: "u1", Message: tt.message})

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "message", verr.Field)
			assert.Equal(t, tt.reason, verr.Reason)
			assert.Empty(t, f.responder.prompts)
		})
	}
}

func TestHandleMessage_BoundaryLengthsAccepted(t *testing.T) {
	for _, msg := range []string{"ok", strings.Repeat("é", 5000)} {
		f := newFixture(t)
		_, err := f.svc.HandleMessage(context.Background(), Request{UserID: "u1", Message: msg})
		assert.NoError(t, err)
	}
}

func TestHandleMessage_RoutesNewConversation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	reply, err := f.svc.HandleMessage(ctx, Request{UserID: "u1", Message: "  Please draw an image of a sunset  "})
	require.NoError(t, err)

	assert.Equal(t, "dalle", reply.ToolID)
	assert.Equal(t, "DALL-E", reply.ToolName)
	assert.Equal(t, core.CategoryImage, reply.Category)
	assert.Equal(t, "real answer", reply.Message)
	assert.False(t, reply.Timestamp.IsZero())
	assert.Equal(t, []string{"Please draw an image of a sunset"}, f.responder.prompts)

	tr, err := f.svc.Transcript(ctx, "u1", reply.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, "Please draw an image of a sunset", tr.Conversation.Title)
	assert.Equal(t, "DALL-E", tr.Tool.Name)
	require.Len(t, tr.Messages, 2)
	assert.True(t, tr.Messages[0].IsUser)
	assert.Equal(t, "Please draw an image of a sunset", tr.Messages[0].Content)
	assert.False(t, tr.Messages[1].IsUser)
	assert.Equal(t, "real answer", tr.Messages[1].Content)
}

func TestHandleMessage_ExplicitTool(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	reply, err := f.svc.HandleMessage(ctx, Request{UserID: "u1", ToolID: "copilot", Message: "draw an image of a cat"})
	require.NoError(t, err)
	assert.Equal(t, "copilot", reply.ToolID)
	assert.Equal(t, core.CategoryCode, reply.Category)
	assert.Equal(t, core.ServiceConfig{APIType: core.ProviderOpenAI, APIModel: "gpt-4o"}, f.responder.configs[0])

	reply, err = f.svc.HandleMessage(ctx, Request{UserID: "u1", ToolID: "does-not-exist", Message: "draw an image of a cat"})
	require.NoError(t, err)
	assert.Equal(t, "dalle", reply.ToolID)
}

func TestHandleMessage_ContinuesConversation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.svc.HandleMessage(ctx, Request{UserID: "u1", Message: "draw an image of a cat"})
	require.NoError(t, err)

	// the conversation keeps its tool even when the topic changes
	second, err := f.svc.HandleMessage(ctx, Request{UserID: "u1", ConversationID: first.ConversationID, Message: "now write python code"})
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Equal(t, "dalle", second.ToolID)

	tr, err := f.svc.Transcript(ctx, "u1", first.ConversationID)
	require.NoError(t, err)
	assert.Len(t, tr.Messages, 4)
	assert.Equal(t, "draw an image of a cat", tr.Conversation.Title)
}

func TestHandleMessage_ForeignOrUnknownConversationStartsNew(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.svc.HandleMessage(ctx, Request{UserID: "u1", Message: "hello there"})
	require.NoError(t, err)

	for _, req := range []Request{
		{UserID: "u2", ConversationID: first.ConversationID, Message: "hello again"},
		{UserID: "u1", ConversationID: "not-a-uuid", Message: "hello again"},
	} {
		reply, err := f.svc.HandleMessage(ctx, req)
		require.NoError(t, err)
		assert.NotEqual(t, first.ConversationID, reply.ConversationID)
	}

	_, err = f.svc.Transcript(ctx, "u2", first.ConversationID)
	assert.ErrorIs(t, err, core.ErrConversationNotFound)
}

func TestHandleMessage_Popularity(t *testing.T) {
	tests := []struct {
		name      string
		resp      core.ServiceResponse
		wantText  string
		wantDelta int
	}{
		{"real success", core.Succeeded("hi"), "hi", 1},
		{"simulated success", core.ServiceResponse{Success: true, Data: "sim", Simulated: true}, "sim", 0},
		{"failure", core.Failed("API Error: quota exceeded"), "API Error: quota exceeded", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			f.responder.resp = tt.resp
			before := f.popularity(t, "chatgpt")

			reply, err := f.svc.HandleMessage(ctx, Request{UserID: "u1", Message: "hello there"})
			require.NoError(t, err)
			assert.Equal(t, "chatgpt", reply.ToolID)
			assert.Equal(t, tt.wantText, reply.Message)
			assert.Equal(t, tt.resp.Success, reply.Success)
			assert.Equal(t, before+tt.wantDelta, f.popularity(t, "chatgpt"))

			tr, err := f.svc.Transcript(ctx, "u1", reply.ConversationID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, tr.Messages[1].Content)
		})
	}
}

func TestHandleMessage_EmptyCatalog(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.NewDB(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	tools := sqlite.NewToolsRepo(db)
	classifier, err := router.NewDefaultClassifier()
	require.NoError(t, err)
	svc := NewService(tools, sqlite.NewConversationsRepo(db), sqlite.NewSharesRepo(db), router.New(classifier, tools), &fakeResponder{})

	_, err = svc.HandleMessage(ctx, Request{UserID: "u1", Message: "hello there"})
	assert.True(t, errors.Is(err, core.ErrNoToolAvailable))
}

func TestTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "short"},
		{strings.Repeat("a", 50), strings.Repeat("a", 50)},
		{strings.Repeat("a", 51), strings.Repeat("a", 50) + "..."},
		{strings.Repeat("ж", 60), strings.Repeat("ж", 50) + "..."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Title(tt.in))
	}
}
