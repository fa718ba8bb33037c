package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sandevgo/inspire/internal/config"
	"github.com/sandevgo/inspire/internal/core"
)

type rule struct {
	category core.Category
	patterns []*regexp.Regexp
}

// Classifier maps free text to a category by counting pattern matches.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules    []rule
	fallback core.Category
	version  int
}

// Score is the number of pattern matches a category collected.
type Score struct {
	Category core.Category
	Matches  int
}

func NewClassifier(table *config.RoutingTable) (*Classifier, error) {
	c := &Classifier{
		rules:    make([]rule, 0, len(table.Categories)),
		fallback: core.Category(table.Default),
		version:  table.Version,
	}

	for _, cat := range table.Categories {
		r := rule{category: core.Category(cat.Name)}
		for _, p := range cat.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("compile pattern %q for %s: %w", p, cat.Name, err)
			}
			r.patterns = append(r.patterns, re)
		}
		c.rules = append(c.rules, r)
	}
	return c, nil
}

// NewDefaultClassifier builds a classifier from the bundled routing table.
func NewDefaultClassifier() (*Classifier, error) {
	table, err := config.LoadRoutingTable("")
	if err != nil {
		return nil, err
	}
	return NewClassifier(table)
}

// Classify returns the category with the most matches. Equal scores
// keep the category declared first; no matches at all yield the
// fallback category.
func (c *Classifier) Classify(message string) core.Category {
	best := c.fallback
	highest := 0
	for _, s := range c.Scores(message) {
		if s.Matches > highest {
			highest = s.Matches
			best = s.Category
		}
	}
	return best
}

// Scores reports the match count of every category in declaration order.
func (c *Classifier) Scores(message string) []Score {
	content := strings.ToLower(message)
	scores := make([]Score, 0, len(c.rules))
	for _, r := range c.rules {
		n := 0
		for _, re := range r.patterns {
			n += len(re.FindAllStringIndex(content, -1))
		}
		scores = append(scores, Score{Category: r.category, Matches: n})
	}
	return scores
}

func (c *Classifier) Version() int {
	return c.version
}

func (c *Classifier) Fallback() core.Category {
	return c.fallback
}
