package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rocksolid/rocksolid/pkg/skill"
	"github.com/rocksolid/rocksolid/pkg/utils"
)

const (
	// DefaultExerciseURL is the published free exercise database.
	DefaultExerciseURL = "https://raw.githubusercontent.com/yuhonas/free-exercise-db/main/dist/exercises.json"

	exerciseSourceName = "exercise catalog"
)

// ExerciseCatalog reads the static exercise catalog from an HTTP(S) URL or a
// local file.
type ExerciseCatalog struct {
	location   string
	httpClient *http.Client
}

// ExerciseCatalogConfig holds configuration for the exercise catalog.
type ExerciseCatalogConfig struct {
	// Location is an http(s) URL or a filesystem path.
	// Defaults to DefaultExerciseURL if empty.
	Location string

	// HTTPClient is used for URL locations. Defaults to a client without a
	// timeout; the caller's context bounds the request.
	HTTPClient *http.Client
}

// NewExerciseCatalog creates an ExerciseCatalog.
func NewExerciseCatalog(cfg ExerciseCatalogConfig) *ExerciseCatalog {
	location := strings.TrimSpace(cfg.Location)
	if location == "" {
		location = DefaultExerciseURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &ExerciseCatalog{
		location:   location,
		httpClient: client,
	}
}

// Location returns where the catalog is read from.
func (c *ExerciseCatalog) Location() string {
	return c.location
}

// Exercises fetches and decodes the whole catalog. A non-2xx response or a
// body that is not a JSON array is an *skill.UpstreamError. Array elements
// that are not objects are skipped.
func (c *ExerciseCatalog) Exercises(ctx context.Context) ([]skill.RawExercise, error) {
	body, err := c.read(ctx)
	if err != nil {
		return nil, err
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(body, &elements); err != nil {
		return nil, &skill.UpstreamError{
			Source: exerciseSourceName,
			Err:    errors.New("catalog must be a JSON array"),
		}
	}

	exercises := make([]skill.RawExercise, 0, len(elements))
	for _, element := range elements {
		var raw skill.RawExercise
		if err := json.Unmarshal(element, &raw); err != nil {
			continue
		}
		exercises = append(exercises, raw)
	}

	return exercises, nil
}

func (c *ExerciseCatalog) read(ctx context.Context) ([]byte, error) {
	if !isURL(c.location) {
		body, err := os.ReadFile(c.location)
		if err != nil {
			return nil, &skill.UpstreamError{Source: exerciseSourceName, Err: err}
		}
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.location, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", utils.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &skill.UpstreamError{Source: exerciseSourceName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &skill.UpstreamError{Source: exerciseSourceName, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &skill.UpstreamError{Source: exerciseSourceName, Err: err}
	}
	return body, nil
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Ensure ExerciseCatalog implements ExerciseSource
var _ ExerciseSource = (*ExerciseCatalog)(nil)
