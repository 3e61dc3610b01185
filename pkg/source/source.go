// Package source fetches raw records from the upstream exercise catalog and
// the yoga pose provider. Records are decoded into the typed raw schemas of
// pkg/skill and are never normalized here.
package source

import (
	"context"

	"github.com/rocksolid/rocksolid/pkg/skill"
)

// Yoga difficulty levels understood by the pose provider.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelExpert       = "expert"
)

// YogaLevels lists every level the provider can be queried with.
var YogaLevels = []string{LevelBeginner, LevelIntermediate, LevelExpert}

// ExerciseSource returns the full static exercise catalog.
type ExerciseSource interface {
	Exercises(ctx context.Context) ([]skill.RawExercise, error)
}

// YogaSource queries the yoga pose provider.
type YogaSource interface {
	// Poses lists poses, optionally restricted to one difficulty level.
	// An empty level lists every pose.
	Poses(ctx context.Context, level string) ([]skill.RawPose, error)

	// Pose looks up a single pose by its provider id. A missing pose is a
	// skill.NotFoundError.
	Pose(ctx context.Context, id string) (skill.RawPose, error)
}
