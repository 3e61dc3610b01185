package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	apisearch "github.com/rocksolid/rocksolid/api/search"
)

var (
	searchToolName    = "search_skills"
	searchDescription = "Search the exercise and yoga skill catalog. Ranks skills by fuzzy match on name, muscles, equipment, category, difficulty and type, then narrows by the optional facets."
)

// handleSearchSkills processes a search_skills request.
func (s *Server) handleSearchSkills(ctx context.Context, _ *mcp.CallToolRequest, input apisearch.Input) (*mcp.CallToolResult, apisearch.Output, error) {
	logger := s.config.Logger

	logger.Debug("MCP search request",
		zap.String("query", input.Query),
		zap.Int("limit", input.Limit),
	)

	output, err := s.config.Searcher.Search(ctx, input)
	if err != nil {
		logger.Error("failed to search skills", zap.Error(err))
		return errorResult(fmt.Sprintf("Failed to search skills: %v", err)), apisearch.Output{}, nil
	}

	// Tools returning structured content also return the serialized JSON in
	// a TextContent block for older clients.
	jsonBytes, err := json.Marshal(output)
	if err != nil {
		logger.Error("failed to marshal search output", zap.Error(err))
		return errorResult(fmt.Sprintf("Failed to serialize results: %v", err)), apisearch.Output{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, *output, nil
}
