// Package testutils holds in-memory stand-ins for the upstream skill sources.
package testutils

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocksolid/rocksolid/pkg/skill"
	"github.com/rocksolid/rocksolid/pkg/source"
)

// MockExerciseSource serves a fixed exercise catalog.
type MockExerciseSource struct {
	Records []skill.RawExercise

	// Fail causes Exercises to return an upstream error
	Fail bool
}

var _ source.ExerciseSource = (*MockExerciseSource)(nil)

func NewMockExerciseSource(records ...skill.RawExercise) *MockExerciseSource {
	return &MockExerciseSource{Records: records}
}

func (m *MockExerciseSource) Exercises(_ context.Context) ([]skill.RawExercise, error) {
	if m.Fail {
		return nil, &skill.UpstreamError{Source: "exercise catalog", StatusCode: 503}
	}
	return append([]skill.RawExercise{}, m.Records...), nil
}

// MockYogaSource serves poses grouped by level.
type MockYogaSource struct {
	mu     sync.Mutex
	levels map[string][]skill.RawPose

	// FailLevels makes Poses fail for the listed levels
	FailLevels map[string]bool
}

var _ source.YogaSource = (*MockYogaSource)(nil)

func NewMockYogaSource() *MockYogaSource {
	return &MockYogaSource{
		levels:     make(map[string][]skill.RawPose),
		FailLevels: make(map[string]bool),
	}
}

// Add registers poses under level.
func (m *MockYogaSource) Add(level string, poses ...skill.RawPose) *MockYogaSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels[level] = append(m.levels[level], poses...)
	return m
}

func (m *MockYogaSource) Poses(_ context.Context, level string) ([]skill.RawPose, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailLevels[level] {
		return nil, &skill.UpstreamError{Source: "yoga provider", Err: fmt.Errorf("level %s unavailable", level)}
	}
	return append([]skill.RawPose{}, m.levels[level]...), nil
}

func (m *MockYogaSource) Pose(_ context.Context, id string) (skill.RawPose, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, poses := range m.levels {
		for _, p := range poses {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return skill.RawPose{}, skill.NotFoundError{Ref: "yoga:" + id}
}

// Fixtures returns a small exercise catalog and yoga provider covering every
// category and both source types.
func Fixtures() (*MockExerciseSource, *MockYogaSource) {
	exercises := NewMockExerciseSource(
		skill.RawExercise{ID: "1", Name: "Barbell Squat", Level: "intermediate", Category: "strength", Equipment: "barbell", PrimaryMuscles: []string{"quadriceps"}, SecondaryMuscles: []string{"glutes"}},
		skill.RawExercise{ID: "2", Name: "Goblet Squat", Level: "beginner", Category: "strength", Equipment: "kettlebell", PrimaryMuscles: []string{"quadriceps"}},
		skill.RawExercise{ID: "3", Name: "Push Up", Level: "beginner", Category: "strength", PrimaryMuscles: []string{"chest"}, SecondaryMuscles: []string{"triceps"}},
		skill.RawExercise{ID: "4", Name: "Treadmill Run", Level: "beginner", Category: "cardio", PrimaryMuscles: []string{"quadriceps", "calves"}},
		skill.RawExercise{ID: "5", Name: "Hamstring Stretch", Level: "beginner", Category: "stretching", PrimaryMuscles: []string{"hamstrings"}},
	)

	yoga := NewMockYogaSource().
		Add(source.LevelBeginner,
			skill.RawPose{ID: "12", EnglishName: "Downward Dog", CategoryName: "Hip Opener", DifficultyLevel: "Beginner"},
			skill.RawPose{ID: "20", EnglishName: "Tree Pose", CategoryName: "Standing Balance", DifficultyLevel: "Beginner"},
		).
		Add(source.LevelExpert,
			skill.RawPose{ID: "31", EnglishName: "Crow", CategoryName: "Arm Balance Core"},
		)

	return exercises, yoga
}
