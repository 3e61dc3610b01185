// Package search ranks and filters catalog Skills: weighted fuzzy matching of
// a free-text query, then exact facet post-filters, a stable ordering and a
// display cap.
package search

import (
	"sort"
	"strings"

	"github.com/rocksolid/rocksolid/pkg/skill"
)

const (
	// DefaultLimit caps the number of skills shown.
	DefaultLimit = 200

	// DefaultThreshold is the minimum relevance a ranked skill needs.
	DefaultThreshold = 0.3
)

// Weights sets the relative importance of each matched field. Only the
// ordering name > muscles > equipment = category > difficulty = type is
// meaningful; the magnitudes are tunable.
type Weights struct {
	Name       float64
	Muscles    float64
	Equipment  float64
	Category   float64
	Difficulty float64
	Type       float64
}

// DefaultWeights returns the standard field weights.
func DefaultWeights() Weights {
	return Weights{
		Name:       3.0,
		Muscles:    2.0,
		Equipment:  1.0,
		Category:   1.0,
		Difficulty: 0.5,
		Type:       0.5,
	}
}

// Source supplies the skills to search. *catalog.Catalog satisfies it.
type Source interface {
	Skills() ([]skill.Skill, error)
}

// Config tunes an Engine. Zero values fall back to the defaults.
type Config struct {
	Limit     int
	Threshold float64
	Weights   *Weights
}

// Engine searches the skills of a Source.
type Engine struct {
	source    Source
	limit     int
	threshold float64
	weights   Weights
}

// NewEngine creates an Engine over source.
func NewEngine(source Source, cfg Config) *Engine {
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	weights := DefaultWeights()
	if cfg.Weights != nil {
		weights = *cfg.Weights
	}

	return &Engine{
		source:    source,
		limit:     limit,
		threshold: threshold,
		weights:   weights,
	}
}

// Result is one page of search output.
type Result struct {
	// Skills holds at most the display limit of matching skills, in order.
	Skills []skill.Skill `json:"skills"`

	// Total counts every match before the display cap.
	Total int `json:"total"`

	// Shown is len(Skills).
	Shown int `json:"shown"`

	// Truncated is true when Total > Shown.
	Truncated bool `json:"truncated"`
}

// Search runs query and filters against the current skills of the source.
// limit overrides the display cap when positive.
func (e *Engine) Search(query string, filters Filters, limit int) (Result, error) {
	skills, err := e.source.Skills()
	if err != nil {
		return Result{}, err
	}
	return e.Run(skills, query, filters, limit), nil
}

// Run searches skills directly. limit overrides the engine's display cap
// when positive.
//
// With an empty query every skill is a candidate and the output is ordered
// by name, then id. With a query, candidates are ranked by relevance and only
// those at or above the threshold are kept; ties are broken by name, then
// id. Filters are applied after ranking.
func (e *Engine) Run(skills []skill.Skill, query string, filters Filters, limit int) Result {
	if limit <= 0 {
		limit = e.limit
	}

	tokens := tokenize(query)

	type candidate struct {
		skill skill.Skill
		score float64
	}
	candidates := make([]candidate, 0, len(skills))

	for _, s := range skills {
		score := 0.0
		if len(tokens) > 0 {
			var ok bool
			score, ok = e.score(s, tokens)
			if !ok || score < e.threshold {
				continue
			}
		}
		candidates = append(candidates, candidate{skill: s, score: score})
	}

	filtered := candidates
	if !filters.IsZero() {
		filtered = candidates[:0]
		for _, c := range candidates {
			if filters.Match(c.skill) {
				filtered = append(filtered, c)
			}
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].score != filtered[j].score {
			return filtered[i].score > filtered[j].score
		}
		return lessByName(filtered[i].skill, filtered[j].skill)
	})

	shown := len(filtered)
	if shown > limit {
		shown = limit
	}

	out := make([]skill.Skill, 0, shown)
	for _, c := range filtered[:shown] {
		out = append(out, c.skill)
	}

	return Result{
		Skills:    out,
		Total:     len(filtered),
		Shown:     shown,
		Truncated: len(filtered) > shown,
	}
}

func lessByName(a, b skill.Skill) bool {
	an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if an != bn {
		return an < bn
	}
	return a.ID < b.ID
}
