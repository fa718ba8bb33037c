package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sandevgo/inspire/internal/core"
	"github.com/sandevgo/inspire/internal/service/chat"
	"github.com/sandevgo/inspire/pkg/log"
)

type shareRequest struct {
	IsPublic       bool   `json:"is_public"`
	Recipient      string `json:"recipient_username"`
	ExpirationDays *int   `json:"expiration_days"`
}

type shareResponse struct {
	core.Share
	Success  bool   `json:"success"`
	ShareURL string `json:"share_url"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromCtx(ctx)

	var req shareRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Debug().Err(err).Msg("invalid share request")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request data"})
		return
	}
	days := chat.DefaultExpirationDays
	if req.ExpirationDays != nil {
		days = *req.ExpirationDays
	}

	share, err := s.chat.Share(ctx, chat.ShareRequest{
		UserID:         s.userID(r),
		ConversationID: r.PathValue("id"),
		IsPublic:       req.IsPublic,
		Recipient:      req.Recipient,
		ExpirationDays: days,
	})
	if err != nil {
		var verr *chat.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"errors": map[string][]string{verr.Field: {verr.Reason}},
			})
		case errors.Is(err, core.ErrConversationNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "conversation not found"})
		default:
			logger.Error().Err(err).Msg("failed to share conversation")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, shareResponse{
		Share:    share,
		Success:  true,
		ShareURL: "/api/shared/" + share.Token,
	})
}

func (s *Server) handleShared(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tr, _, err := s.chat.SharedTranscript(ctx, r.PathValue("token"), s.userID(r))
	switch {
	case err == nil:
		writeTranscript(w, r, tr)
	case errors.Is(err, core.ErrShareNotFound), errors.Is(err, core.ErrConversationNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": core.ErrShareNotFound.Error()})
	case errors.Is(err, core.ErrShareExpired):
		writeJSON(w, http.StatusGone, map[string]string{"error": err.Error()})
	case errors.Is(err, core.ErrShareForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	default:
		log.FromCtx(ctx).Error().Err(err).Msg("failed to load shared conversation")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (s *Server) handleShares(w http.ResponseWriter, r *http.Request) {
	shares, err := s.chat.Shares(r.Context(), s.userID(r))
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("failed to list shares")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if shares == nil {
		shares = []core.Share{}
	}
	writeJSON(w, http.StatusOK, shares)
}

func (s *Server) handleUnshare(w http.ResponseWriter, r *http.Request) {
	err := s.chat.Unshare(r.Context(), s.userID(r), r.PathValue("token"))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, core.ErrShareNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		log.FromCtx(r.Context()).Error().Err(err).Msg("failed to delete share")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	added, err := s.tools.ToggleFavorite(r.Context(), s.userID(r), r.PathValue("id"))
	switch {
	case err == nil:
	case errors.Is(err, core.ErrToolNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tool not found"})
		return
	default:
		log.FromCtx(r.Context()).Error().Err(err).Msg("failed to toggle favorite")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	status := "removed"
	if added {
		status = "added"
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": status})
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	tools, err := s.tools.Favorites(r.Context(), s.userID(r))
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("failed to list favorites")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if tools == nil {
		tools = []core.Tool{}
	}
	writeJSON(w, http.StatusOK, tools)
}
