package core

import "errors"

var (
	// ErrNoToolAvailable means the catalog holds no tools at all.
	ErrNoToolAvailable      = errors.New("no tools available")
	ErrToolNotFound         = errors.New("tool not found")
	ErrConversationNotFound = errors.New("conversation not found")

	ErrShareNotFound  = errors.New("shared conversation not found")
	ErrShareExpired   = errors.New("shared conversation has expired")
	ErrShareForbidden = errors.New("shared conversation is not shared with you")
)
