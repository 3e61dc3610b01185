// Package resolver turns persisted skill references back into full Skills by
// looking them up in the upstream sources.
package resolver

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"

	"github.com/rocksolid/rocksolid/pkg/logger"
	"github.com/rocksolid/rocksolid/pkg/skill"
	"github.com/rocksolid/rocksolid/pkg/source"
)

// PrefixExerciseName marks a reference that is resolved by exercise name.
const PrefixExerciseName = "exname"

// DefaultConcurrency bounds the number of lookups ResolveAll runs at once.
const DefaultConcurrency = 8

// Resolver resolves references against an exercise source and a yoga
// source. The exercise catalog is fetched once and cached until Invalidate.
type Resolver struct {
	exercises   source.ExerciseSource
	yoga        source.YogaSource
	concurrency int
	logger      *zap.Logger

	mu    sync.Mutex
	cache []skill.RawExercise
}

// Config holds the Resolver dependencies.
type Config struct {
	Exercises source.ExerciseSource
	Yoga      source.YogaSource

	// Concurrency bounds ResolveAll. Defaults to DefaultConcurrency.
	Concurrency int

	Logger *zap.Logger
}

// New creates a Resolver.
func New(cfg Config) *Resolver {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Resolver{
		exercises:   cfg.Exercises,
		yoga:        cfg.Yoga,
		concurrency: concurrency,
		logger:      logger.OrNop(cfg.Logger),
	}
}

// Resolve looks up a single reference:
//
//   - ex:<id> matches the exercise id exactly, falling back to a name search
//     when id contains a letter
//   - yoga:<id> asks the yoga source for that pose
//   - exname:<name> searches exercise names, exact match first, then the
//     first name containing it
//   - anything else is tried as an exercise id, then as a yoga id
//
// A reference with no match returns skill.NotFoundError.
func (r *Resolver) Resolve(ctx context.Context, ref string) (skill.Skill, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return skill.Skill{}, skill.ValidationError{Field: "reference", Reason: "empty"}
	}

	prefix, rest, _ := strings.Cut(ref, ":")
	switch prefix {
	case skill.PrefixExercise:
		return r.exerciseByID(ctx, ref, rest, true)
	case skill.PrefixYoga:
		return r.yogaByID(ctx, ref, rest)
	case PrefixExerciseName:
		return r.exerciseByName(ctx, ref, rest)
	}

	s, err := r.exerciseByID(ctx, ref, ref, false)
	if err == nil || !skill.IsNotFound(err) {
		return s, err
	}
	return r.yogaByID(ctx, ref, ref)
}

// Invalidate drops the cached exercise catalog. The next exercise lookup
// fetches it again.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.cache = nil
	r.mu.Unlock()
}

func (r *Resolver) exerciseByID(ctx context.Context, ref, id string, nameFallback bool) (skill.Skill, error) {
	id = strings.TrimSpace(id)

	exercises, err := r.loadExercises(ctx)
	if err != nil {
		return skill.Skill{}, err
	}

	for _, raw := range exercises {
		if strings.TrimSpace(raw.ID) != id {
			continue
		}
		if s, ok := skill.NormalizeExercise(raw); ok {
			return s, nil
		}
		return skill.Skill{}, skill.NotFoundError{Ref: ref}
	}

	if nameFallback && containsLetter(id) {
		if raw, ok := findByName(exercises, id); ok {
			if s, ok := skill.NormalizeExercise(raw); ok {
				return s, nil
			}
		}
	}

	return skill.Skill{}, skill.NotFoundError{Ref: ref}
}

func (r *Resolver) exerciseByName(ctx context.Context, ref, name string) (skill.Skill, error) {
	exercises, err := r.loadExercises(ctx)
	if err != nil {
		return skill.Skill{}, err
	}

	raw, ok := findByName(exercises, name)
	if !ok {
		return skill.Skill{}, skill.NotFoundError{Ref: ref}
	}

	s, ok := skill.NormalizeExercise(raw)
	if !ok {
		return skill.Skill{}, skill.NotFoundError{Ref: ref}
	}
	return s, nil
}

func (r *Resolver) yogaByID(ctx context.Context, ref, id string) (skill.Skill, error) {
	id = strings.TrimSpace(id)
	if id == "" || r.yoga == nil {
		return skill.Skill{}, skill.NotFoundError{Ref: ref}
	}

	raw, err := r.yoga.Pose(ctx, id)
	if err != nil {
		var nf skill.NotFoundError
		if errors.As(err, &nf) {
			return skill.Skill{}, skill.NotFoundError{Ref: ref}
		}
		return skill.Skill{}, err
	}

	s, ok := skill.NormalizeYoga(raw, "")
	if !ok {
		return skill.Skill{}, skill.NotFoundError{Ref: ref}
	}
	return s, nil
}

// loadExercises returns the cached catalog, fetching it on first use. Two
// concurrent first calls may both fetch; the last one to finish wins.
func (r *Resolver) loadExercises(ctx context.Context) ([]skill.RawExercise, error) {
	r.mu.Lock()
	cached := r.cache
	r.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	if r.exercises == nil {
		return nil, &skill.UpstreamError{Source: "exercise catalog", Err: errors.New("not configured")}
	}

	exercises, err := r.exercises.Exercises(ctx)
	if err != nil {
		return nil, err
	}
	if exercises == nil {
		exercises = []skill.RawExercise{}
	}

	r.logger.Debug("exercise catalog cached", zap.Int("records", len(exercises)))

	r.mu.Lock()
	r.cache = exercises
	r.mu.Unlock()

	return exercises, nil
}

func findByName(exercises []skill.RawExercise, name string) (skill.RawExercise, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return skill.RawExercise{}, false
	}

	for _, raw := range exercises {
		if strings.ToLower(strings.TrimSpace(raw.Name)) == q {
			return raw, true
		}
	}
	for _, raw := range exercises {
		if strings.Contains(strings.ToLower(raw.Name), q) {
			return raw, true
		}
	}
	return skill.RawExercise{}, false
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
