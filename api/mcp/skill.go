package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/rocksolid/rocksolid/pkg/skill"
)

var (
	getSkillToolName    = "get_skill"
	getSkillDescription = "Look up one skill by reference: a skill id (ex:5, yoga:12), exname:<exercise name>, or a bare id."
)

// GetSkillInput represents the input arguments for the get_skill tool.
type GetSkillInput struct {
	Ref string `json:"ref" jsonschema:"skill reference such as ex:5, yoga:12 or exname:push up"`
}

// GetSkillOutput wraps the resolved skill.
type GetSkillOutput struct {
	Skill skill.Skill `json:"skill"`
}

// handleGetSkill processes a get_skill request.
func (s *Server) handleGetSkill(ctx context.Context, _ *mcp.CallToolRequest, input GetSkillInput) (*mcp.CallToolResult, GetSkillOutput, error) {
	logger := s.config.Logger

	found, err := s.config.Searcher.Lookup(ctx, input.Ref)
	if err != nil {
		if skill.IsNotFound(err) {
			return errorResult(fmt.Sprintf("No skill matches %q", input.Ref)), GetSkillOutput{}, nil
		}
		logger.Error("failed to look up skill", zap.String("ref", input.Ref), zap.Error(err))
		return errorResult(fmt.Sprintf("Failed to look up skill: %v", err)), GetSkillOutput{}, nil
	}

	output := GetSkillOutput{Skill: found}
	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to serialize skill: %v", err)), GetSkillOutput{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
