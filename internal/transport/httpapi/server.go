package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net"
	"net/http"
	"time"

	"github.com/sandevgo/inspire/internal/config"
	"github.com/sandevgo/inspire/internal/core"
	"github.com/sandevgo/inspire/internal/service/chat"
	"github.com/sandevgo/inspire/internal/service/export"
	"github.com/sandevgo/inspire/pkg/log"
)

// UserHeader carries the caller identity. Authentication happens in
// front of this server.
const UserHeader = "X-User-ID"

const maxBodyBytes = 1 << 20

type ChatService interface {
	HandleMessage(ctx context.Context, req chat.Request) (chat.Reply, error)
	Transcript(ctx context.Context, userID, conversationID string) (chat.Transcript, error)
	Share(ctx context.Context, req chat.ShareRequest) (core.Share, error)
	SharedTranscript(ctx context.Context, token, viewerID string) (chat.Transcript, core.Share, error)
	Shares(ctx context.Context, userID string) ([]core.Share, error)
	Unshare(ctx context.Context, userID, token string) error
}

type Catalog interface {
	List(ctx context.Context, category core.Category) ([]core.Tool, error)
	ToggleFavorite(ctx context.Context, userID, toolID string) (bool, error)
	Favorites(ctx context.Context, userID string) ([]core.Tool, error)
}

type Server struct {
	cfg    *config.HTTPConfig
	chat   ChatService
	tools  Catalog
	server *http.Server
}

func NewServer(ctx context.Context, cfg *config.HTTPConfig, chatSvc ChatService, tools Catalog) *Server {
	s := &Server{
		cfg:   cfg,
		chat:  chatSvc,
		tools: tools,
	}
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/messages", s.handleMessage)
	mux.HandleFunc("POST /api/conversations/{id}/messages", s.handleMessage)
	mux.HandleFunc("GET /api/tools", s.handleTools)
	mux.HandleFunc("GET /api/conversations/{id}/export", s.handleExport)
	mux.HandleFunc("POST /api/conversations/{id}/share", s.handleShare)
	mux.HandleFunc("GET /api/shared/{token}", s.handleShared)
	mux.HandleFunc("GET /api/shares", s.handleShares)
	mux.HandleFunc("DELETE /api/shares/{token}", s.handleUnshare)
	mux.HandleFunc("POST /api/tools/{id}/favorite", s.handleFavorite)
	mux.HandleFunc("GET /api/favorites", s.handleFavorites)
	return mux
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.cfg.Addr).Msg("starting http api")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	// ctx is already cancelled when services are shut down.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

type messageRequest struct {
	Message        string `json:"message"`
	AIToolID       string `json:"ai_tool_id"`
	ConversationID string `json:"conversation_id"`
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromCtx(ctx)

	req, err := decodeMessage(w, r)
	if err != nil {
		logger.Debug().Err(err).Msg("invalid message request")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request data"})
		return
	}
	if id := r.PathValue("id"); id != "" {
		req.ConversationID = id
	}

	reply, err := s.chat.HandleMessage(ctx, chat.Request{
		UserID:         s.userID(r),
		ConversationID: req.ConversationID,
		ToolID:         req.AIToolID,
		Message:        req.Message,
	})
	if err != nil {
		var verr *chat.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"errors": map[string][]string{verr.Field: {verr.Reason}},
			})
		case errors.Is(err, core.ErrNoToolAvailable):
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		default:
			logger.Error().Err(err).Msg("failed to handle message")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

func decodeMessage(w http.ResponseWriter, r *http.Request) (messageRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return messageRequest{}, err
		}
		return messageRequest{
			Message:        r.FormValue("message"),
			AIToolID:       r.FormValue("ai_tool_id"),
			ConversationID: r.FormValue("conversation_id"),
		}, nil
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return messageRequest{}, err
	}
	return req, nil
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	tools, err := s.tools.List(r.Context(), core.Category(r.URL.Query().Get("category")))
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("failed to list tools")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if tools == nil {
		tools = []core.Tool{}
	}
	writeJSON(w, http.StatusOK, tools)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tr, err := s.chat.Transcript(ctx, s.userID(r), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, core.ErrConversationNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "conversation not found"})
			return
		}
		log.FromCtx(ctx).Error().Err(err).Msg("failed to load transcript")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeTranscript(w, r, tr)
}

// writeTranscript renders tr in the format named by the query string
// and sends it as an attachment.
func writeTranscript(w http.ResponseWriter, r *http.Request, tr chat.Transcript) {
	doc, err := export.Render(tr.Conversation, tr.Tool, tr.Messages, export.ParseFormat(r.URL.Query().Get("format")))
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("failed to render transcript")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": doc.Filename(tr.Conversation),
	}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Content)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) userID(r *http.Request) string {
	if id := r.Header.Get(UserHeader); id != "" {
		return id
	}
	return s.cfg.DefaultUserID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
