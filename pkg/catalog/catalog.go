// Package catalog builds and holds the in-memory aggregate of every
// normalized Skill for a session.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rocksolid/rocksolid/pkg/logger"
	"github.com/rocksolid/rocksolid/pkg/skill"
	"github.com/rocksolid/rocksolid/pkg/source"
)

// ErrNotBuilt is returned by lookups on a Catalog that has not been built or
// was invalidated.
var ErrNotBuilt = errors.New("catalog not built")

// Catalog is an explicit session object: Build populates it, Invalidate
// clears it. All methods are safe for concurrent use.
type Catalog struct {
	exercises source.ExerciseSource
	yoga      source.YogaSource
	logger    *zap.Logger

	mu     sync.RWMutex
	built  bool
	skills []skill.Skill
	byID   map[string]int
	stats  BuildStats
}

// BuildStats summarizes the last Build.
type BuildStats struct {
	Exercises        int
	DroppedExercises int
	Yoga             int
	DroppedPoses     int

	// FailedYogaLevels lists the yoga levels whose request failed. Their
	// poses are missing from the catalog.
	FailedYogaLevels []string
}

// Config holds the Catalog dependencies. Yoga may be nil to build an
// exercise-only catalog.
type Config struct {
	Exercises source.ExerciseSource
	Yoga      source.YogaSource
	Logger    *zap.Logger
}

// New creates an empty Catalog.
func New(cfg Config) *Catalog {
	return &Catalog{
		exercises: cfg.Exercises,
		yoga:      cfg.Yoga,
		logger:    logger.OrNop(cfg.Logger),
	}
}

// Build fetches and normalizes every exercise and yoga pose, replacing any
// previous content. The yoga levels are fetched in parallel; a failed level
// is logged and recorded in BuildStats but does not fail the build. A failed
// exercise fetch fails the build and leaves the previous content in place.
func (c *Catalog) Build(ctx context.Context) error {
	if c.exercises == nil {
		return errors.New("catalog has no exercise source")
	}

	rawExercises, err := c.exercises.Exercises(ctx)
	if err != nil {
		return fmt.Errorf("loading exercises: %w", err)
	}

	stats := BuildStats{}
	skills := make([]skill.Skill, 0, len(rawExercises))
	for _, raw := range rawExercises {
		s, ok := skill.NormalizeExercise(raw)
		if !ok {
			stats.DroppedExercises++
			continue
		}
		skills = append(skills, s)
	}
	stats.Exercises = len(skills)

	poses, yogaStats := c.buildYoga(ctx)
	stats.Yoga = len(poses)
	stats.DroppedPoses = yogaStats.DroppedPoses
	stats.FailedYogaLevels = yogaStats.FailedYogaLevels
	skills = append(skills, poses...)

	byID := make(map[string]int, len(skills))
	for i, s := range skills {
		byID[s.ID] = i
	}

	c.mu.Lock()
	c.skills = skills
	c.byID = byID
	c.stats = stats
	c.built = true
	c.mu.Unlock()

	c.logger.Info("catalog built",
		zap.Int("exercises", stats.Exercises),
		zap.Int("yoga", stats.Yoga),
		zap.Int("dropped", stats.DroppedExercises+stats.DroppedPoses),
		zap.Strings("failed_yoga_levels", stats.FailedYogaLevels),
	)

	return nil
}

// buildYoga fetches every level, normalizes each pose with its level as the
// fallback difficulty, and dedupes by id with the last write winning. Output
// order is first-seen order across levels.
func (c *Catalog) buildYoga(ctx context.Context) ([]skill.Skill, BuildStats) {
	stats := BuildStats{}
	if c.yoga == nil {
		return nil, stats
	}

	levels := source.YogaLevels
	results := make([][]skill.RawPose, len(levels))
	errs := make([]error, len(levels))

	g, gctx := errgroup.WithContext(ctx)
	for i, level := range levels {
		g.Go(func() error {
			results[i], errs[i] = c.yoga.Poses(gctx, level)
			return nil
		})
	}
	_ = g.Wait()

	var order []string
	byID := map[string]skill.Skill{}
	for i, level := range levels {
		if errs[i] != nil {
			stats.FailedYogaLevels = append(stats.FailedYogaLevels, level)
			c.logger.Warn("loading yoga poses", zap.String("level", level), zap.Error(errs[i]))
			continue
		}

		for _, raw := range results[i] {
			s, ok := skill.NormalizeYoga(raw, level)
			if !ok {
				stats.DroppedPoses++
				continue
			}
			if _, seen := byID[s.ID]; !seen {
				order = append(order, s.ID)
			}
			byID[s.ID] = s
		}
	}

	poses := make([]skill.Skill, 0, len(order))
	for _, id := range order {
		poses = append(poses, byID[id])
	}
	return poses, stats
}

// Invalidate clears the catalog. Lookups fail with ErrNotBuilt until the
// next Build.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.skills = nil
	c.byID = nil
	c.stats = BuildStats{}
	c.built = false
	c.mu.Unlock()
}

// Built reports whether the catalog currently holds a build.
func (c *Catalog) Built() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.built
}

// Skills returns a copy of every Skill, exercises first then yoga poses.
func (c *Catalog) Skills() ([]skill.Skill, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.built {
		return nil, ErrNotBuilt
	}

	out := make([]skill.Skill, len(c.skills))
	copy(out, c.skills)
	return out, nil
}

// Get returns the Skill with the given id, or a skill.NotFoundError.
func (c *Catalog) Get(id string) (skill.Skill, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.built {
		return skill.Skill{}, ErrNotBuilt
	}

	i, ok := c.byID[id]
	if !ok {
		return skill.Skill{}, skill.NotFoundError{Ref: id}
	}
	return c.skills[i], nil
}

// Len returns the number of Skills in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.skills)
}

// Stats returns the summary of the last Build.
func (c *Catalog) Stats() BuildStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
