// Package api provides the HTTP server for the routine backend and the skill
// search endpoints.
package api

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	apisearch "github.com/rocksolid/rocksolid/api/search"
	"github.com/rocksolid/rocksolid/pkg/eventstream"
)

// YogaForwarder passes raw requests through to the yoga pose provider.
// *source.YogaClient satisfies it.
type YogaForwarder interface {
	Forward(ctx context.Context, route string, params url.Values) (json.RawMessage, error)
}

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8081")
	ListenAddr string

	// Searcher serves /v1/skills and the MCP tools. Skill endpoints answer
	// 503 when it is nil.
	Searcher *apisearch.Searcher

	// Yoga serves /v1/yoga. The pass-through answers 503 when it is nil.
	Yoga YogaForwarder

	// Publisher receives routine lifecycle events. Defaults to a no-op.
	Publisher eventstream.Publisher

	// Now stamps new routines. Defaults to time.Now.
	Now func() time.Time
}
