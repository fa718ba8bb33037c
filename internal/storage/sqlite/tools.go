package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/inspire/internal/core"
)

const toolColumns = `id, name, provider, endpoint, category, description, popularity, api_type, api_model, api_endpoint, is_featured`

// ToolsRepo stores the catalog. Listings are ordered by popularity with
// insertion order breaking ties.
type ToolsRepo struct {
	db *sql.DB
}

func NewToolsRepo(db *sql.DB) *ToolsRepo {
	return &ToolsRepo{db: db}
}

func (r *ToolsRepo) FindByCategory(ctx context.Context, category core.Category) ([]core.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE category = ? ORDER BY popularity DESC, rowid ASC`
	return r.query(ctx, query, string(category))
}

func (r *ToolsRepo) FindAll(ctx context.Context) ([]core.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools ORDER BY popularity DESC, rowid ASC`
	return r.query(ctx, query)
}

func (r *ToolsRepo) GetTool(ctx context.Context, id string) (core.Tool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+toolColumns+` FROM tools WHERE id = ?`, id)

	tool, err := scanTool(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Tool{}, fmt.Errorf("%w: %s", core.ErrToolNotFound, id)
	}
	if err != nil {
		return core.Tool{}, fmt.Errorf("failed to load tool %s: %w", id, err)
	}
	return tool, nil
}

// SaveTool inserts the tool or updates an existing one. The popularity of
// an existing tool is kept so re-importing the catalog never resets the
// counters routing depends on.
func (r *ToolsRepo) SaveTool(ctx context.Context, tool core.Tool) error {
	if tool.ID == "" {
		return errors.New("tool id is required")
	}
	if tool.APIType == "" {
		tool.APIType = core.ProviderNone
	}

	query := `INSERT INTO tools (` + toolColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			provider = excluded.provider,
			endpoint = excluded.endpoint,
			category = excluded.category,
			description = excluded.description,
			api_type = excluded.api_type,
			api_model = excluded.api_model,
			api_endpoint = excluded.api_endpoint,
			is_featured = excluded.is_featured`

	_, err := r.db.ExecContext(ctx, query,
		tool.ID, tool.Name, tool.Provider, tool.Endpoint, string(tool.Category), tool.Description,
		tool.Popularity, string(tool.APIType), tool.APIModel, tool.APIEndpoint, tool.IsFeatured,
	)
	if err != nil {
		return fmt.Errorf("failed to save tool %s: %w", tool.ID, err)
	}
	return nil
}

// IncrementPopularity bumps the counter in a single statement so
// concurrent conversations never lose an update.
func (r *ToolsRepo) IncrementPopularity(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tools SET popularity = popularity + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to increment popularity of %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", core.ErrToolNotFound, id)
	}
	return nil
}

func (r *ToolsRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tools`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tools: %w", err)
	}
	return n, nil
}

func (r *ToolsRepo) query(ctx context.Context, query string, args ...any) ([]core.Tool, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tools: %w", err)
	}
	defer rows.Close()

	var tools []core.Tool
	for rows.Next() {
		tool, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tool: %w", err)
		}
		tools = append(tools, tool)
	}
	return tools, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTool(s scanner) (core.Tool, error) {
	var (
		t        core.Tool
		category string
		apiType  string
	)
	err := s.Scan(
		&t.ID, &t.Name, &t.Provider, &t.Endpoint, &category, &t.Description,
		&t.Popularity, &apiType, &t.APIModel, &t.APIEndpoint, &t.IsFeatured,
	)
	t.Category = core.Category(category)
	t.APIType = core.ProviderKind(apiType)
	return t, err
}
