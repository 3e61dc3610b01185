package skill

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// RawExercise is one record of the static exercise catalog, decoded with the
// fallback rules below. It carries no normalization.
//
// Field decoding:
//   - id: JSON string or number; a number is rendered without a fraction when
//     it is integral. Missing, null or empty means "no id".
//   - name, level, category, equipment: JSON string, number or bool rendered
//     as text; null and other shapes decode to "".
//   - primaryMuscles, secondaryMuscles: array of scalars, or a single scalar.
//   - target, bodyPart: same as the muscle lists (extended catalog variant).
//   - instructions: array of scalars, or a single string.
type RawExercise struct {
	ID               string
	Name             string
	Level            string
	Category         string
	Equipment        string
	PrimaryMuscles   []string
	SecondaryMuscles []string
	Target           []string
	BodyPart         []string
	Instructions     RawInstructions
}

// RawInstructions preserves the upstream shape of the instructions field:
// either a list of steps or one block of text.
type RawInstructions struct {
	Steps  []string
	Text   string
	IsList bool
}

type rawExerciseWire struct {
	ID               looseString     `json:"id"`
	Name             looseString     `json:"name"`
	Level            looseString     `json:"level"`
	Category         looseString     `json:"category"`
	Equipment        looseString     `json:"equipment"`
	PrimaryMuscles   looseStringList `json:"primaryMuscles"`
	SecondaryMuscles looseStringList `json:"secondaryMuscles"`
	Target           looseStringList `json:"target"`
	BodyPart         looseStringList `json:"bodyPart"`
	Instructions     json.RawMessage `json:"instructions"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RawExercise) UnmarshalJSON(data []byte) error {
	var w rawExerciseWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*r = RawExercise{
		ID:               string(w.ID),
		Name:             string(w.Name),
		Level:            string(w.Level),
		Category:         string(w.Category),
		Equipment:        string(w.Equipment),
		PrimaryMuscles:   []string(w.PrimaryMuscles),
		SecondaryMuscles: []string(w.SecondaryMuscles),
		Target:           []string(w.Target),
		BodyPart:         []string(w.BodyPart),
		Instructions:     decodeInstructions(w.Instructions),
	}
	return nil
}

// RawPose is one record of the yoga pose provider.
//
// Field fallback chains, applied by NormalizeYoga:
//   - display name: english_name, then name
//   - difficulty: difficulty_level, then level, then the caller's fallback
type RawPose struct {
	ID              string
	EnglishName     string
	Name            string
	DifficultyLevel string
	Level           string
	CategoryName    string
}

type rawPoseWire struct {
	ID              looseString `json:"id"`
	EnglishName     looseString `json:"english_name"`
	Name            looseString `json:"name"`
	DifficultyLevel looseString `json:"difficulty_level"`
	Level           looseString `json:"level"`
	CategoryName    looseString `json:"category_name"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *RawPose) UnmarshalJSON(data []byte) error {
	var w rawPoseWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*p = RawPose{
		ID:              string(w.ID),
		EnglishName:     string(w.EnglishName),
		Name:            string(w.Name),
		DifficultyLevel: string(w.DifficultyLevel),
		Level:           string(w.Level),
		CategoryName:    string(w.CategoryName),
	}
	return nil
}

// looseString decodes any JSON scalar as text and everything else as "".
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	*s = looseString(scalarText(data))
	return nil
}

// looseStringList decodes an array of scalars, or a lone scalar, as text.
type looseStringList []string

func (l *looseStringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		if text := scalarText(data); text != "" {
			*l = []string{text}
		} else {
			*l = nil
		}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		*l = nil
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, scalarText(item))
	}
	*l = out
	return nil
}

func decodeInstructions(data json.RawMessage) RawInstructions {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return RawInstructions{}
	}

	if data[0] == '[' {
		var list looseStringList
		_ = list.UnmarshalJSON(data)
		return RawInstructions{Steps: list, IsList: true}
	}

	return RawInstructions{Text: scalarText(data)}
}

// scalarText renders a JSON scalar the way it reads: strings unquoted,
// integral numbers without a fraction, booleans as true/false.
func scalarText(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ""
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ""
		}
		return s
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return ""
		}
		return strconv.FormatBool(b)
	case 'n', '{', '[':
		return ""
	default:
		literal := string(data)
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return ""
		}
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return strconv.FormatInt(int64(f), 10)
		}
		return literal
	}
}
