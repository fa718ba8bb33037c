package router

import (
	"context"
	"fmt"

	"github.com/sandevgo/inspire/internal/core"
	"github.com/sandevgo/inspire/pkg/log"
)

// Decision is the outcome of routing a single message.
type Decision struct {
	Category core.Category
	Tool     *core.Tool
}

type Router struct {
	classifier *Classifier
	catalog    core.Catalog
}

func New(classifier *Classifier, catalog core.Catalog) *Router {
	return &Router{
		classifier: classifier,
		catalog:    catalog,
	}
}

// ClassifyAndSelect picks the tool that should answer message.
func (r *Router) ClassifyAndSelect(ctx context.Context, message string) (*core.Tool, error) {
	d, err := r.Route(ctx, message)
	if err != nil {
		return nil, err
	}
	return d.Tool, nil
}

// Route classifies message and selects the most popular tool for the
// winning category, falling back to the default category and then to
// the whole catalog. An empty catalog yields core.ErrNoToolAvailable.
func (r *Router) Route(ctx context.Context, message string) (Decision, error) {
	logger := log.FromCtx(ctx)

	category := r.classifier.Classify(message)
	d := Decision{Category: category}

	tool, err := r.selectTool(ctx, category)
	if err != nil {
		return d, err
	}
	d.Tool = tool

	logger.Debug().
		Str("category", string(category)).
		Str("tool", tool.Name).
		Str("tool_category", string(tool.Category)).
		Msg("message routed")
	return d, nil
}

func (r *Router) selectTool(ctx context.Context, category core.Category) (*core.Tool, error) {
	tools, err := r.catalog.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("find %s tools: %w", category, err)
	}
	if len(tools) > 0 {
		return &tools[0], nil
	}

	fallback := r.classifier.Fallback()
	if category != fallback {
		tools, err = r.catalog.FindByCategory(ctx, fallback)
		if err != nil {
			return nil, fmt.Errorf("find %s tools: %w", fallback, err)
		}
		if len(tools) > 0 {
			return &tools[0], nil
		}
	}

	tools, err = r.catalog.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find tools: %w", err)
	}
	if len(tools) > 0 {
		return &tools[0], nil
	}
	return nil, core.ErrNoToolAvailable
}
