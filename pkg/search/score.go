package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agext/levenshtein"

	"github.com/rocksolid/rocksolid/pkg/skill"
)

const (
	prefixMatch    = 1.0
	substringMatch = 0.9

	// minSimilarity is the lowest edit-distance similarity counted as a
	// fuzzy match.
	minSimilarity = 0.75

	// minFuzzyRunes keeps very short tokens from fuzzy-matching everything.
	minFuzzyRunes = 4
)

type field struct {
	weight float64
	text   string
	words  []string
}

// score returns the relevance of s for tokens. Each token contributes its
// best weighted field match, where a field of weight w scales a match by
// w/(w+1). The score is the mean over tokens. ok is false when some token
// matches no field at all.
func (e *Engine) score(s skill.Skill, tokens []string) (float64, bool) {
	fields := e.fields(s)

	total := 0.0
	for _, token := range tokens {
		best := 0.0
		for _, f := range fields {
			m := matchField(f, token)
			if m == 0 {
				continue
			}
			if v := m * f.weight / (f.weight + 1); v > best {
				best = v
			}
		}
		if best == 0 {
			return 0, false
		}
		total += best
	}

	return total / float64(len(tokens)), true
}

func (e *Engine) fields(s skill.Skill) []field {
	w := e.weights
	return []field{
		newField(w.Name, s.Name),
		newField(w.Muscles, strings.Join(s.Muscles, " ")),
		newField(w.Equipment, s.Equipment),
		newField(w.Category, string(s.Category)),
		newField(w.Difficulty, string(s.Difficulty)),
		newField(w.Type, string(s.Type)),
	}
}

func newField(weight float64, text string) field {
	text = strings.ToLower(text)
	return field{weight: weight, text: text, words: tokenize(text)}
}

// matchField scores one token against one field: 1.0 when a field word
// starts with the token, 0.9 when the field contains it elsewhere, otherwise
// the best edit-distance similarity to a field word if at least
// minSimilarity.
func matchField(f field, token string) float64 {
	if f.weight <= 0 || f.text == "" {
		return 0
	}

	for _, word := range f.words {
		if strings.HasPrefix(word, token) {
			return prefixMatch
		}
	}
	if strings.Contains(f.text, token) {
		return substringMatch
	}

	if utf8.RuneCountInString(token) < minFuzzyRunes {
		return 0
	}

	best := 0.0
	for _, word := range f.words {
		if sim := levenshtein.Similarity(token, word, nil); sim > best {
			best = sim
		}
	}
	if best < minSimilarity {
		return 0
	}
	return best
}

// tokenize lowercases s and splits it on anything that is not a letter or
// a digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
