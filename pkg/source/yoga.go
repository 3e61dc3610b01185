package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rocksolid/rocksolid/pkg/skill"
	"github.com/rocksolid/rocksolid/pkg/utils"
)

const (
	// DefaultYogaBaseURL is the public yoga pose API.
	DefaultYogaBaseURL = "https://yoga-api-nzy4.onrender.com/v1"

	yogaSourceName = "yoga provider"
)

// ErrUnknownRoute is returned by Forward for routes the provider proxy does
// not expose.
var ErrUnknownRoute = errors.New("invalid route: use poses or categories")

// forwardedRoutes are the provider routes Forward may call.
var forwardedRoutes = map[string]bool{
	"poses":      true,
	"categories": true,
}

// ForwardedParams are the query parameters Forward passes through.
var ForwardedParams = []string{"name", "level", "id", "category"}

// YogaClient talks to the yoga pose provider.
type YogaClient struct {
	baseURL    string
	httpClient *http.Client
}

// YogaClientConfig holds configuration for the yoga client.
type YogaClientConfig struct {
	// BaseURL is the provider root including its version segment.
	// Defaults to DefaultYogaBaseURL if empty.
	BaseURL string

	// HTTPClient defaults to a client without a timeout.
	HTTPClient *http.Client
}

// NewYogaClient creates a YogaClient.
func NewYogaClient(cfg YogaClientConfig) *YogaClient {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultYogaBaseURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &YogaClient{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// Poses lists poses for a difficulty level, or every pose when level is
// empty. The provider answers either with a bare array or with a
// {difficulty_level, poses} wrapper; both are accepted.
func (c *YogaClient) Poses(ctx context.Context, level string) ([]skill.RawPose, error) {
	query := url.Values{}
	if level != "" {
		query.Set("level", level)
	}

	body, status, err := c.get(ctx, "poses", query)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &skill.UpstreamError{Source: yogaSourceName, StatusCode: status}
	}

	poses, err := decodePoses(body)
	if err != nil {
		return nil, &skill.UpstreamError{Source: yogaSourceName, Err: err}
	}
	return poses, nil
}

// Pose looks up one pose by id.
func (c *YogaClient) Pose(ctx context.Context, id string) (skill.RawPose, error) {
	ref := skill.NewID(skill.PrefixYoga, id)

	body, status, err := c.get(ctx, "poses", url.Values{"id": []string{id}})
	if err != nil {
		return skill.RawPose{}, err
	}
	if status == http.StatusNotFound {
		return skill.RawPose{}, skill.NotFoundError{Ref: ref}
	}
	if status < 200 || status > 299 {
		return skill.RawPose{}, &skill.UpstreamError{Source: yogaSourceName, StatusCode: status}
	}

	poses, err := decodePoses(body)
	if err != nil {
		return skill.RawPose{}, &skill.UpstreamError{Source: yogaSourceName, Err: err}
	}

	for _, p := range poses {
		if strings.TrimSpace(p.ID) == id {
			return p, nil
		}
	}

	// Some deployments omit the id on single-pose answers.
	if len(poses) == 1 && strings.TrimSpace(poses[0].ID) == "" {
		p := poses[0]
		p.ID = id
		return p, nil
	}

	return skill.RawPose{}, skill.NotFoundError{Ref: ref}
}

// Forward performs a raw GET against an allowed provider route, passing
// through only ForwardedParams, and returns the body untouched.
func (c *YogaClient) Forward(ctx context.Context, route string, params url.Values) (json.RawMessage, error) {
	route = strings.ToLower(strings.TrimSpace(route))
	if route == "" {
		route = "poses"
	}
	if !forwardedRoutes[route] {
		return nil, ErrUnknownRoute
	}

	query := url.Values{}
	for _, key := range ForwardedParams {
		if v := params.Get(key); v != "" {
			query.Set(key, v)
		}
	}

	body, status, err := c.get(ctx, route, query)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &skill.UpstreamError{Source: yogaSourceName, StatusCode: status}
	}
	if !json.Valid(body) {
		return nil, &skill.UpstreamError{Source: yogaSourceName, Err: errors.New("response is not JSON")}
	}

	return json.RawMessage(body), nil
}

func (c *YogaClient) get(ctx context.Context, route string, query url.Values) ([]byte, int, error) {
	endpoint := c.baseURL + "/" + route
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", utils.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &skill.UpstreamError{Source: yogaSourceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &skill.UpstreamError{Source: yogaSourceName, Err: err}
	}
	return body, resp.StatusCode, nil
}

// decodePoses accepts a bare array of poses, a {difficulty_level, poses}
// wrapper or a single pose object. A wrapper's difficulty_level is copied
// onto poses that carry no level of their own. null decodes to no poses.
func decodePoses(body []byte) ([]skill.RawPose, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("empty response")
	}

	switch body[0] {
	case '[':
		var elements []json.RawMessage
		if err := json.Unmarshal(body, &elements); err != nil {
			return nil, fmt.Errorf("decoding poses: %w", err)
		}

		poses := make([]skill.RawPose, 0, len(elements))
		for _, element := range elements {
			var p skill.RawPose
			if err := json.Unmarshal(element, &p); err != nil {
				continue
			}
			poses = append(poses, p)
		}
		return poses, nil

	case '{':
		var wrapper struct {
			DifficultyLevel string          `json:"difficulty_level"`
			Poses           json.RawMessage `json:"poses"`
		}
		if err := json.Unmarshal(body, &wrapper); err == nil {
			if inner := bytes.TrimSpace(wrapper.Poses); len(inner) > 0 && inner[0] == '[' {
				poses, err := decodePoses(inner)
				if err != nil {
					return nil, err
				}
				for i := range poses {
					if poses[i].DifficultyLevel == "" && poses[i].Level == "" {
						poses[i].DifficultyLevel = wrapper.DifficultyLevel
					}
				}
				return poses, nil
			}
		}

		var p skill.RawPose
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("decoding pose: %w", err)
		}
		return []skill.RawPose{p}, nil

	case 'n':
		return nil, nil

	default:
		return nil, errors.New("unexpected response shape")
	}
}

// Ensure YogaClient implements YogaSource
var _ YogaSource = (*YogaClient)(nil)
