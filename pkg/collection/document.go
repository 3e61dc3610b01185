package collection

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rocksolid/rocksolid/pkg/skill"
)

// Export signatures. They are format-version tags compared by string
// equality, nothing more.
const (
	SignatureMySkills = "RockSolid/MySkills/v1"
	SignatureRoutine  = "RockSolid/Routine/v1"
	SignatureRoutines = "RockSolid/Routines/v1"
)

// exportedAtLayout renders ISO-8601 UTC timestamps with millisecond
// precision.
const exportedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Document is the export file envelope shared by every collection.
type Document struct {
	Signature  string          `json:"signature"`
	ExportedAt string          `json:"exportedAt"`
	Data       json.RawMessage `json:"data"`
}

// ImportResult counts the entries of an imported document.
type ImportResult struct {
	// Imported is the number of valid entries merged into the collection.
	// Entries already present are merged without creating duplicates.
	Imported int `json:"imported"`

	// Skipped is the number of entries dropped as invalid. For routines it
	// also counts the items dropped from otherwise valid routines.
	Skipped int `json:"skipped"`

	// Total is the number of entries in the document.
	Total int `json:"total"`
}

// NewDocument wraps data in an envelope with the given signature.
func NewDocument(signature string, exportedAt time.Time, data any) (Document, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Document{}, fmt.Errorf("encoding %s: %w", signature, err)
	}

	return Document{
		Signature:  signature,
		ExportedAt: exportedAt.UTC().Format(exportedAtLayout),
		Data:       raw,
	}, nil
}

// ParseDocument decodes an export file. Malformed JSON is a
// skill.ValidationError; the signature is checked by the importer.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, skill.ValidationError{Field: "document", Reason: err.Error()}
	}
	return doc, nil
}

// Marshal encodes the document as indented JSON.
func (d Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

func (d Document) checkSignature(expected string) error {
	if d.Signature != expected {
		return fmt.Errorf("%w: expected %q, got %q", skill.ErrSignatureMismatch, expected, d.Signature)
	}
	return nil
}

// MySkillsFileName returns the export file name for My Skills on day t.
func MySkillsFileName(t time.Time) string {
	return "my-skills-" + t.Format("2006-01-02") + ".json"
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name, collapses every run of other characters into a
// dash and trims dashes, capped at 60 characters. An empty result becomes
// "routine".
func Slugify(name string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 60 {
		slug = slug[:60]
	}
	if slug == "" {
		return "routine"
	}
	return slug
}

// RoutineFileName returns the export file name for a routine.
func RoutineFileName(name string) string {
	return Slugify(name) + ".json"
}
