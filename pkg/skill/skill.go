// Package skill defines the universal Skill record shared by every RockSolid
// component, the typed raw schemas of the upstream sources, and the pure
// normalizers that map one onto the other.
package skill

import "strings"

// Type is the upstream family a Skill was normalized from.
type Type string

const (
	TypeExercise Type = "exercise"
	TypeYoga     Type = "yoga"
)

// Category is the broad, inferred bucket of a Skill.
type Category string

const (
	CategoryStrength   Category = "Strength"
	CategoryCardio     Category = "Cardio"
	CategoryStretching Category = "Stretching"
)

// Difficulty is the canonical level of a Skill. Title case is the only
// casing ever produced.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
	DifficultyUnknown      Difficulty = "Unknown"
)

// Source prefixes used in Skill IDs and typed references.
const (
	PrefixExercise = "ex"
	PrefixYoga     = "yoga"
)

const (
	defaultExerciseEquipment = "Unknown"
	yogaEquipment            = "None"
)

// Skill is the normalized record for either an exercise or a yoga pose.
// A Skill is rebuilt from its source on every read and never mutated.
type Skill struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         Type       `json:"type"`
	Category     Category   `json:"category"`
	Difficulty   Difficulty `json:"difficulty"`
	Muscles      []string   `json:"muscles"`
	Equipment    string     `json:"equipment"`
	Instructions []string   `json:"instructions,omitempty"`
}

// NewID builds the composite "<source>:<sourceLocalId>" key.
func NewID(prefix, localID string) string {
	return prefix + ":" + localID
}

// SplitID returns the source prefix and local id of a Skill ID. ok is false
// when id does not carry one of the known source prefixes.
func SplitID(id string) (prefix, localID string, ok bool) {
	prefix, localID, found := strings.Cut(id, ":")
	if !found {
		return "", "", false
	}

	switch prefix {
	case PrefixExercise, PrefixYoga:
		return prefix, localID, true
	default:
		return "", "", false
	}
}

// SourceOf reports the Type a Skill ID belongs to, derived from the prefix
// alone.
func SourceOf(id string) (Type, bool) {
	prefix, _, ok := SplitID(id)
	if !ok {
		return "", false
	}
	if prefix == PrefixYoga {
		return TypeYoga, true
	}
	return TypeExercise, true
}

// ParseDifficulty canonicalizes a loose difficulty string ("beginner",
// "ADVANCED", "Beginner") to a Difficulty. Unrecognized input returns false.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return DifficultyBeginner, true
	case "intermediate":
		return DifficultyIntermediate, true
	case "advanced":
		return DifficultyAdvanced, true
	case "unknown":
		return DifficultyUnknown, true
	default:
		return "", false
	}
}

// ParseCategory canonicalizes a loose category string.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strength":
		return CategoryStrength, true
	case "cardio":
		return CategoryCardio, true
	case "stretching":
		return CategoryStretching, true
	default:
		return "", false
	}
}

// ParseType canonicalizes a loose type string.
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exercise":
		return TypeExercise, true
	case "yoga":
		return TypeYoga, true
	default:
		return "", false
	}
}
