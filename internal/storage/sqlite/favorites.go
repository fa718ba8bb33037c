package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/inspire/internal/core"
)

type FavoritesRepo struct {
	db    *sql.DB
	tools *ToolsRepo
	now   func() time.Time
}

func NewFavoritesRepo(db *sql.DB) *FavoritesRepo {
	return &FavoritesRepo{
		db:    db,
		tools: NewToolsRepo(db),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ToggleFavorite removes the tool from the user's favorites when it is
// there and adds it otherwise. It reports whether the tool is now a
// favorite.
func (r *FavoritesRepo) ToggleFavorite(ctx context.Context, userID, toolID string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ? AND tool_id = ?`, userID, toolID)
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return false, err
	} else if n > 0 {
		return false, tx.Commit()
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM tools WHERE id = ?)`, toolID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to look up tool: %w", err)
	}
	if !exists {
		return false, fmt.Errorf("%w: %s", core.ErrToolNotFound, toolID)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO favorites (user_id, tool_id, created_at) VALUES (?, ?, ?)`, userID, toolID, r.now(),
	); err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return true, tx.Commit()
}

// ListFavorites returns the user's favorite tools, most recently added
// first.
func (r *FavoritesRepo) ListFavorites(ctx context.Context, userID string) ([]core.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools
		JOIN favorites ON favorites.tool_id = tools.id
		WHERE favorites.user_id = ?
		ORDER BY favorites.created_at DESC, favorites.rowid DESC`
	return r.tools.query(ctx, query, userID)
}
