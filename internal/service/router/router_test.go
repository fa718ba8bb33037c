package router

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/sandevgo/inspire/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCatalog struct {
	tools []core.Tool
	err   error
	calls []core.Category
}

func (m *mockCatalog) sorted(keep func(core.Tool) bool) []core.Tool {
	var out []core.Tool
	for _, t := range m.tools {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
	return out
}

func (m *mockCatalog) FindByCategory(ctx context.Context, category core.Category) ([]core.Tool, error) {
	m.calls = append(m.calls, category)
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(t core.Tool) bool { return t.Category == category }), nil
}

func (m *mockCatalog) FindAll(ctx context.Context) ([]core.Tool, error) {
	m.calls = append(m.calls, "*")
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(core.Tool) bool { return true }), nil
}

func tool(name string, category core.Category, popularity int) core.Tool {
	return core.Tool{ID: name, Name: name, Category: category, Popularity: popularity, APIType: core.ProviderNone}
}

func TestRouter_CategoryBeatsPopularity(t *testing.T) {
	catalog := &mockCatalog{tools: []core.Tool{
		tool("painter", core.CategoryImage, 10),
		tool("writer", core.CategoryText, 50),
	}}
	r := New(newTestClassifier(t), catalog)

	d, err := r.Route(context.Background(), "generate an image of a cat")
	require.NoError(t, err)
	assert.Equal(t, core.CategoryImage, d.Category)
	require.NotNil(t, d.Tool)
	assert.Equal(t, "painter", d.Tool.Name)
}

func TestRouter_PicksMostPopularInCategory(t *testing.T) {
	catalog := &mockCatalog{tools: []core.Tool{
		tool("low", core.CategoryCode, 5),
		tool("high", core.CategoryCode, 70),
		tool("mid", core.CategoryCode, 30),
	}}
	r := New(newTestClassifier(t), catalog)

	got, err := r.ClassifyAndSelect(context.Background(), "write a function in python")
	require.NoError(t, err)
	assert.Equal(t, "high", got.Name)
}

func TestRouter_FallbackChain(t *testing.T) {
	tests := []struct {
		name     string
		tools    []core.Tool
		wantTool string
		wantErr  error
	}{
		{
			name: "falls back to most popular text generator",
			tools: []core.Tool{
				tool("coder", core.CategoryCode, 99),
				tool("writer-a", core.CategoryText, 20),
				tool("writer-b", core.CategoryText, 40),
			},
			wantTool: "writer-b",
		},
		{
			name: "falls back to most popular tool overall",
			tools: []core.Tool{
				tool("coder", core.CategoryCode, 99),
				tool("scribe", core.CategoryTranscription, 120),
			},
			wantTool: "scribe",
		},
		{
			name:    "empty catalog",
			wantErr: core.ErrNoToolAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(newTestClassifier(t), &mockCatalog{tools: tt.tools})

			// classifies as Image Generator, which has no tools here
			d, err := r.Route(context.Background(), "draw a picture of a mountain")
			assert.Equal(t, core.CategoryImage, d.Category)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, d.Tool)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTool, d.Tool.Name)
		})
	}
}

func TestRouter_DefaultCategoryQueriedOnce(t *testing.T) {
	catalog := &mockCatalog{tools: []core.Tool{tool("coder", core.CategoryCode, 1)}}
	r := New(newTestClassifier(t), catalog)

	got, err := r.ClassifyAndSelect(context.Background(), "xyzzy plugh")
	require.NoError(t, err)
	assert.Equal(t, "coder", got.Name)
	assert.Equal(t, []core.Category{core.CategoryText, "*"}, catalog.calls)
}

func TestRouter_CatalogError(t *testing.T) {
	boom := errors.New("database is locked")
	r := New(newTestClassifier(t), &mockCatalog{err: boom})

	_, err := r.ClassifyAndSelect(context.Background(), "hello")
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, core.ErrNoToolAvailable)
}
