package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/inspire/internal/core"
	"github.com/sandevgo/inspire/pkg/log"
)

const shareColumns = `token, conversation_id, shared_by, shared_with, is_public, expiration_days, created_at`

type SharesRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewSharesRepo(db *sql.DB) *SharesRepo {
	return &SharesRepo{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CreateShare stores share, generating a 32 character hex token and the
// creation time when they are unset.
func (r *SharesRepo) CreateShare(ctx context.Context, share core.Share) (core.Share, error) {
	if share.Token == "" {
		share.Token = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	if share.CreatedAt.IsZero() {
		share.CreatedAt = r.now()
	}

	query := `INSERT INTO shares (` + shareColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		share.Token, share.ConversationID, share.SharedBy, share.SharedWith,
		share.IsPublic, share.ExpirationDays, share.CreatedAt,
	)
	if err != nil {
		return core.Share{}, fmt.Errorf("failed to create share: %w", err)
	}

	log.FromCtx(ctx).Debug().Str("conversation", share.ConversationID).Bool("public", share.IsPublic).Msg("conversation shared")
	return share, nil
}

func (r *SharesRepo) GetShare(ctx context.Context, token string) (core.Share, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+shareColumns+` FROM shares WHERE token = ?`, token)

	share, err := scanShare(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Share{}, core.ErrShareNotFound
	}
	if err != nil {
		return core.Share{}, fmt.Errorf("failed to load share: %w", err)
	}
	return share, nil
}

// ListShares returns the shares created by userID, newest first.
func (r *SharesRepo) ListShares(ctx context.Context, userID string) ([]core.Share, error) {
	query := `SELECT ` + shareColumns + ` FROM shares WHERE shared_by = ? ORDER BY created_at DESC, rowid DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shares: %w", err)
	}
	defer rows.Close()

	var shares []core.Share
	for rows.Next() {
		share, err := scanShare(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}
	return shares, rows.Err()
}

// DeleteShare revokes a share. Only its creator may do so; other users get
// ErrShareNotFound.
func (r *SharesRepo) DeleteShare(ctx context.Context, token, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shares WHERE token = ? AND shared_by = ?`, token, userID)
	if err != nil {
		return fmt.Errorf("failed to delete share: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrShareNotFound
	}
	return nil
}

func scanShare(s scanner) (core.Share, error) {
	var sh core.Share
	err := s.Scan(&sh.Token, &sh.ConversationID, &sh.SharedBy, &sh.SharedWith, &sh.IsPublic, &sh.ExpirationDays, &sh.CreatedAt)
	return sh, err
}
