package skill

import (
	"regexp"
	"strings"
)

var (
	cardioHints  = []string{"run", "sprint", "jump rope", "burpee", "row", "bike", "cycling", "cardio"}
	stretchHints = []string{"stretch", "mobility", "flexibility"}

	lineBreaks       = regexp.MustCompile(`\r?\n+`)
	sentenceBoundary = regexp.MustCompile(`\. +`)
)

// yogaMuscleRules is evaluated top to bottom; the resulting muscle list keeps
// first-insertion order across rules.
var yogaMuscleRules = []struct {
	keywords []string
	muscles  []string
}{
	{keywords: []string{"core"}, muscles: []string{"abdominals", "obliques"}},
	{keywords: []string{"hip"}, muscles: []string{"hip flexors", "glutes"}},
	{keywords: []string{"hamstring"}, muscles: []string{"hamstrings"}},
	{keywords: []string{"backbend", "back"}, muscles: []string{"lower back", "spinal erectors"}},
	{keywords: []string{"chest"}, muscles: []string{"chest", "shoulders"}},
	{keywords: []string{"shoulder"}, muscles: []string{"shoulders"}},
	{keywords: []string{"twist"}, muscles: []string{"obliques", "spine"}},
	{keywords: []string{"balance"}, muscles: []string{"core", "feet"}},
}

// NormalizeExercise maps a catalog exercise onto a Skill. It returns false
// when the record has no id or no name.
func NormalizeExercise(raw RawExercise) (Skill, bool) {
	id := strings.TrimSpace(raw.ID)
	name := strings.TrimSpace(raw.Name)
	if id == "" || name == "" {
		return Skill{}, false
	}

	muscles := cleanMuscles(raw.PrimaryMuscles, raw.SecondaryMuscles, raw.Target, raw.BodyPart)

	equipment := strings.TrimSpace(raw.Equipment)
	if equipment == "" {
		equipment = defaultExerciseEquipment
	}

	return Skill{
		ID:           NewID(PrefixExercise, id),
		Name:         name,
		Type:         TypeExercise,
		Category:     InferExerciseCategory(name, raw.Category),
		Difficulty:   exerciseDifficulty(raw.Level),
		Muscles:      muscles,
		Equipment:    equipment,
		Instructions: SplitInstructions(raw.Instructions),
	}, true
}

// NormalizeYoga maps a yoga pose onto a Skill. fallbackDifficulty is the
// level of the query that produced the pose and is used only when the pose
// carries no level of its own. It returns false when the pose has no id or
// no name.
func NormalizeYoga(raw RawPose, fallbackDifficulty string) (Skill, bool) {
	id := strings.TrimSpace(raw.ID)
	name := firstNonBlank(raw.EnglishName, raw.Name)
	if id == "" || name == "" {
		return Skill{}, false
	}

	level := firstNonBlank(raw.DifficultyLevel, raw.Level, fallbackDifficulty)

	return Skill{
		ID:         NewID(PrefixYoga, id),
		Name:       name,
		Type:       TypeYoga,
		Category:   CategoryStretching,
		Difficulty: yogaDifficulty(level),
		Muscles:    InferYogaMuscles(raw.CategoryName),
		Equipment:  yogaEquipment,
	}, true
}

// InferExerciseCategory picks a broad category from keyword hints in the
// exercise name and upstream category. Cardio hints win over stretch hints;
// everything else is Strength.
func InferExerciseCategory(name, category string) Category {
	n := strings.ToLower(name)
	c := strings.ToLower(category)

	if containsAny(n, cardioHints) || containsAny(c, cardioHints) {
		return CategoryCardio
	}
	if containsAny(n, stretchHints) || containsAny(c, stretchHints) {
		return CategoryStretching
	}
	return CategoryStrength
}

// InferYogaMuscles derives a muscle list from a yoga category name. The
// result is best-effort and never authoritative.
func InferYogaMuscles(categoryName string) []string {
	c := strings.ToLower(categoryName)

	muscles := []string{}
	seen := map[string]bool{}
	for _, rule := range yogaMuscleRules {
		if !containsAny(c, rule.keywords) {
			continue
		}
		for _, m := range rule.muscles {
			if seen[m] {
				continue
			}
			seen[m] = true
			muscles = append(muscles, m)
		}
	}
	return muscles
}

// SplitInstructions turns upstream instructions into one step per entry.
// A single block of text is split on line breaks first and, only when that
// yields one segment or fewer, on ". " sentence boundaries.
func SplitInstructions(in RawInstructions) []string {
	if in.IsList {
		return trimAll(in.Steps)
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return []string{}
	}

	if byLines := trimAll(lineBreaks.Split(text, -1)); len(byLines) > 1 {
		return byLines
	}

	if bySentences := trimAll(sentenceBoundary.Split(text, -1)); len(bySentences) > 1 {
		return bySentences
	}

	return []string{text}
}

func exerciseDifficulty(level string) Difficulty {
	v := strings.ToLower(level)
	switch {
	case v == "":
		return DifficultyUnknown
	case strings.Contains(v, "begin"):
		return DifficultyBeginner
	case strings.Contains(v, "inter"):
		return DifficultyIntermediate
	case strings.Contains(v, "adv"):
		return DifficultyAdvanced
	default:
		return DifficultyUnknown
	}
}

func yogaDifficulty(level string) Difficulty {
	v := strings.ToLower(strings.TrimSpace(level))
	switch {
	case v == "":
		return DifficultyUnknown
	case strings.Contains(v, "begin"):
		return DifficultyBeginner
	case strings.Contains(v, "inter"):
		return DifficultyIntermediate
	case strings.Contains(v, "expert"), strings.Contains(v, "adv"):
		return DifficultyAdvanced
	default:
		return DifficultyUnknown
	}
}

// cleanMuscles concatenates the given lists in order, lowercased and
// trimmed, dropping empty entries.
func cleanMuscles(lists ...[]string) []string {
	out := []string{}
	for _, list := range lists {
		for _, m := range list {
			m = strings.ToLower(strings.TrimSpace(m))
			if m != "" {
				out = append(out, m)
			}
		}
	}
	return out
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
