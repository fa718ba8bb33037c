package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/sandevgo/inspire/configs"
	"github.com/sandevgo/inspire/internal/core"
	"github.com/sandevgo/inspire/pkg/log"
)

const seedFile = "tools.json"

type Repository interface {
	core.ToolRepository
	Count(ctx context.Context) (int, error)
}

// Service manages the tool directory: seeding, bulk import and export,
// and per-user favorites.
type Service struct {
	repo      Repository
	favorites core.FavoriteRepository
}

func NewService(repo Repository, favorites core.FavoriteRepository) *Service {
	return &Service{repo: repo, favorites: favorites}
}

// SeedIfEmpty loads the bundled tools into an empty catalog and reports
// how many were added.
func (s *Service) SeedIfEmpty(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	return s.Seed(ctx)
}

// Seed upserts the bundled tools.
func (s *Service) Seed(ctx context.Context) (int, error) {
	f, err := configs.FS.Open(seedFile)
	if err != nil {
		return 0, fmt.Errorf("failed to open bundled catalog: %w", err)
	}
	defer f.Close()

	n, err := s.Import(ctx, f)
	if err != nil {
		return n, err
	}
	log.FromCtx(ctx).Info().Int("tools", n).Msg("catalog seeded")
	return n, nil
}

// Import upserts every tool of a JSON array. Tools without an id get
// one derived from their name. Nothing is written if any entry is
// invalid.
func (s *Service) Import(ctx context.Context, r io.Reader) (int, error) {
	var tools []core.Tool
	if err := json.NewDecoder(r).Decode(&tools); err != nil {
		return 0, fmt.Errorf("failed to decode tools: %w", err)
	}

	for i := range tools {
		if err := normalizeTool(&tools[i]); err != nil {
			return 0, fmt.Errorf("tool #%d: %w", i+1, err)
		}
	}

	for i, tool := range tools {
		if err := s.repo.SaveTool(ctx, tool); err != nil {
			return i, err
		}
	}
	return len(tools), nil
}

// Export writes the whole catalog as an indented JSON array, most
// popular first.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	tools, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	if tools == nil {
		tools = []core.Tool{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tools)
}

// List returns the tools of category, or every tool when category is
// empty.
func (s *Service) List(ctx context.Context, category core.Category) ([]core.Tool, error) {
	if category == "" {
		return s.repo.FindAll(ctx)
	}
	return s.repo.FindByCategory(ctx, category)
}

// ToggleFavorite flips the tool in the user's favorites and reports
// whether it is now one.
func (s *Service) ToggleFavorite(ctx context.Context, userID, toolID string) (bool, error) {
	added, err := s.favorites.ToggleFavorite(ctx, userID, toolID)
	if err != nil {
		return false, err
	}
	log.FromCtx(ctx).Debug().Str("tool", toolID).Bool("added", added).Msg("favorite toggled")
	return added, nil
}

func (s *Service) Favorites(ctx context.Context, userID string) ([]core.Tool, error) {
	return s.favorites.ListFavorites(ctx, userID)
}

func normalizeTool(t *core.Tool) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	if t.Category == "" {
		return fmt.Errorf("%s: category is required", t.Name)
	}
	if t.ID == "" {
		t.ID = Slug(t.Name)
	}

	switch t.APIType {
	case "":
		t.APIType = core.ProviderNone
	case core.ProviderOpenAI, core.ProviderHuggingFace, core.ProviderCustom, core.ProviderNone:
	default:
		return fmt.Errorf("%s: unknown api_type %q", t.Name, t.APIType)
	}
	return nil
}

// Slug turns a tool name into an identifier: lowercase letters and
// digits separated by single dashes.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
