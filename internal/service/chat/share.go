package chat

import (
	"context"
	"strings"

	"github.com/sandevgo/inspire/internal/core"
	"github.com/sandevgo/inspire/pkg/log"
)

const (
	DefaultExpirationDays = 7
	maxExpirationDays     = 365
)

type ShareRequest struct {
	UserID         string
	ConversationID string
	IsPublic       bool
	Recipient      string
	ExpirationDays int
}

// Share creates an access token for a conversation owned by the caller.
// A private share needs a recipient; a public one ignores it.
func (s *Service) Share(ctx context.Context, req ShareRequest) (core.Share, error) {
	recipient := strings.TrimSpace(req.Recipient)
	if req.IsPublic {
		recipient = ""
	}
	if err := validateShare(req.IsPublic, recipient, req.ExpirationDays); err != nil {
		return core.Share{}, err
	}

	conv, err := s.conversations.GetConversation(ctx, req.ConversationID, req.UserID)
	if err != nil {
		return core.Share{}, err
	}

	return s.shares.CreateShare(ctx, core.Share{
		ConversationID: conv.ID,
		SharedBy:       req.UserID,
		SharedWith:     recipient,
		IsPublic:       req.IsPublic,
		ExpirationDays: req.ExpirationDays,
	})
}

// SharedTranscript loads the conversation behind token for viewerID.
// Expired shares and private shares meant for someone else are refused.
func (s *Service) SharedTranscript(ctx context.Context, token, viewerID string) (Transcript, core.Share, error) {
	share, err := s.shares.GetShare(ctx, token)
	if err != nil {
		return Transcript{}, core.Share{}, err
	}
	if share.Expired(s.now()) {
		return Transcript{}, share, core.ErrShareExpired
	}
	if !share.CanView(viewerID) {
		log.FromCtx(ctx).Debug().Str("viewer", viewerID).Msg("shared conversation refused")
		return Transcript{}, share, core.ErrShareForbidden
	}

	tr, err := s.Transcript(ctx, share.SharedBy, share.ConversationID)
	if err != nil {
		return Transcript{}, share, err
	}
	return tr, share, nil
}

func (s *Service) Shares(ctx context.Context, userID string) ([]core.Share, error) {
	return s.shares.ListShares(ctx, userID)
}

func (s *Service) Unshare(ctx context.Context, userID, token string) error {
	return s.shares.DeleteShare(ctx, token, userID)
}
