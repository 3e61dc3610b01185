// Package search provides shared skill search types and logic. It is used by
// both the REST API endpoints and the MCP server tools.
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/rocksolid/rocksolid/pkg/catalog"
	"github.com/rocksolid/rocksolid/pkg/logger"
	"github.com/rocksolid/rocksolid/pkg/search"
	"github.com/rocksolid/rocksolid/pkg/skill"
)

// Input represents the input arguments for a skill search request.
type Input struct {
	Query      string `json:"query,omitempty" jsonschema:"free text matched against name, muscles, equipment, category, difficulty and type"`
	Type       string `json:"type,omitempty" jsonschema:"exercise or yoga"`
	Category   string `json:"category,omitempty" jsonschema:"Strength, Cardio or Stretching"`
	Difficulty string `json:"difficulty,omitempty" jsonschema:"Beginner, Intermediate, Advanced or Unknown"`
	Muscle     string `json:"muscle,omitempty" jsonschema:"muscle name or group (legs, core)"`
	Kind       string `json:"kind,omitempty" jsonschema:"strength, flexibility or balance"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of skills to return"`
}

// Filters converts the facet fields of the input.
func (in Input) Filters() search.Filters {
	return search.Filters{
		Type:       strings.TrimSpace(in.Type),
		Category:   strings.TrimSpace(in.Category),
		Difficulty: strings.TrimSpace(in.Difficulty),
		Muscle:     strings.TrimSpace(in.Muscle),
		Kind:       strings.TrimSpace(in.Kind),
	}
}

// Output represents the output of a skill search.
type Output struct {
	Query     string        `json:"query"`
	Skills    []skill.Skill `json:"skills"`
	Total     int           `json:"total"`
	Shown     int           `json:"shown"`
	Truncated bool          `json:"truncated"`
}

// Resolver looks up a single skill by reference.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (skill.Skill, error)
}

// Searcher answers search and lookup requests over a Catalog, building it on
// first use.
type Searcher struct {
	catalog  *catalog.Catalog
	engine   *search.Engine
	resolver Resolver
	logger   *zap.Logger

	// buildMu serialises lazy builds so concurrent first requests fetch once.
	buildMu sync.Mutex
}

// NewSearcher creates a Searcher. resolver may be nil, in which case lookups
// are answered from the catalog only.
func NewSearcher(cat *catalog.Catalog, resolver Resolver, cfg search.Config, log *zap.Logger) *Searcher {
	return &Searcher{
		catalog:  cat,
		engine:   search.NewEngine(cat, cfg),
		resolver: resolver,
		logger:   logger.OrNop(log),
	}
}

// Search ranks and filters the catalog.
func (s *Searcher) Search(ctx context.Context, input Input) (*Output, error) {
	if input.Limit < 0 {
		return nil, skill.ValidationError{Field: "limit", Reason: "must not be negative"}
	}

	s.logger.Debug("search request",
		zap.String("query", input.Query),
		zap.Int("limit", input.Limit),
	)

	if err := s.ensureBuilt(ctx); err != nil {
		return nil, err
	}

	result, err := s.engine.Search(input.Query, input.Filters(), input.Limit)
	if err != nil {
		return nil, err
	}

	return &Output{
		Query:     input.Query,
		Skills:    result.Skills,
		Total:     result.Total,
		Shown:     result.Shown,
		Truncated: result.Truncated,
	}, nil
}

// Lookup returns the skill a reference points at. Skill ids are served from
// the catalog when it is built; every other reference goes to the resolver.
func (s *Searcher) Lookup(ctx context.Context, ref string) (skill.Skill, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return skill.Skill{}, skill.ValidationError{Field: "ref", Reason: "must not be empty"}
	}

	if s.catalog.Built() {
		found, err := s.catalog.Get(ref)
		if err == nil {
			return found, nil
		}
		if !skill.IsNotFound(err) {
			return skill.Skill{}, err
		}
	}

	if s.resolver == nil {
		return skill.Skill{}, skill.NotFoundError{Ref: ref}
	}
	return s.resolver.Resolve(ctx, ref)
}

// Refresh drops the catalog so the next request rebuilds it.
func (s *Searcher) Refresh() {
	s.catalog.Invalidate()
}

func (s *Searcher) ensureBuilt(ctx context.Context) error {
	if s.catalog.Built() {
		return nil
	}

	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	if !s.catalog.Built() {
		if err := s.catalog.Build(ctx); err != nil {
			return fmt.Errorf("failed to build catalog: %w", err)
		}
	}
	return nil
}
