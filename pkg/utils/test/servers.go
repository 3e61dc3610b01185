package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
)

// FixtureExercisesJSON is the exercise catalog of Fixtures in upstream
// wire format.
const FixtureExercisesJSON = `[
  {"id": "1", "name": "Barbell Squat", "level": "intermediate", "category": "strength", "equipment": "barbell", "primaryMuscles": ["quadriceps"], "secondaryMuscles": ["glutes"], "instructions": ["Brace.", "Squat down.", "Stand up."]},
  {"id": "2", "name": "Goblet Squat", "level": "beginner", "category": "strength", "equipment": "kettlebell", "primaryMuscles": ["quadriceps"]},
  {"id": "3", "name": "Push Up", "level": "beginner", "category": "strength", "primaryMuscles": ["chest"], "secondaryMuscles": ["triceps"]},
  {"id": "4", "name": "Treadmill Run", "level": "beginner", "category": "cardio", "primaryMuscles": ["quadriceps", "calves"]},
  {"id": "5", "name": "Hamstring Stretch", "level": "beginner", "category": "stretching", "primaryMuscles": ["hamstrings"]}
]`

var fixturePoses = map[string][]map[string]any{
	"beginner": {
		{"id": 12, "english_name": "Downward Dog", "category_name": "Hip Opener", "difficulty_level": "Beginner"},
		{"id": 20, "english_name": "Tree Pose", "category_name": "Standing Balance", "difficulty_level": "Beginner"},
	},
	"expert": {
		{"id": 31, "english_name": "Crow", "category_name": "Arm Balance Core"},
	},
}

// WriteExerciseCatalog writes FixtureExercisesJSON into dir and returns the
// file path, usable as an exercise catalog location.
func WriteExerciseCatalog(dir string) (string, error) {
	path := filepath.Join(dir, "exercises.json")
	if err := os.WriteFile(path, []byte(FixtureExercisesJSON), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// NewYogaServer serves the yoga poses of Fixtures on /poses, by level or by
// id. Unknown ids answer 404.
func NewYogaServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/poses") {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		query := r.URL.Query()

		if id := query.Get("id"); id != "" {
			for _, poses := range fixturePoses {
				for _, pose := range poses {
					if jsonID(pose["id"]) == id {
						_ = json.NewEncoder(w).Encode(pose)
						return
					}
				}
			}
			http.NotFound(w, r)
			return
		}

		level := query.Get("level")
		poses := fixturePoses[level]
		if poses == nil {
			poses = []map[string]any{}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"difficulty_level": level,
			"poses":            poses,
		})
	}))
}

func jsonID(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
