package api

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apisearch "github.com/rocksolid/rocksolid/api/search"
	"github.com/rocksolid/rocksolid/pkg/skill"
)

// handleSearchSkills handles GET /v1/skills requests.
// Query parameters:
//   - query (optional): free text; empty lists every skill by name
//   - type, category, difficulty, muscle, kind (optional): facet filters
//   - limit (optional): display cap, defaults to the engine's limit
func (s *Server) handleSearchSkills(c *fiber.Ctx) error {
	if s.config.Searcher == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "skill search is not configured",
		})
	}

	input := apisearch.Input{
		Query:      c.Query("query"),
		Type:       c.Query("type"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Muscle:     c.Query("muscle"),
		Kind:       c.Query("kind"),
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "limit must be a positive integer",
			})
		}
		input.Limit = parsed
	}

	output, err := s.config.Searcher.Search(c.Context(), input)
	if err != nil {
		return s.skillError(c, err)
	}

	return c.JSON(output)
}

// handleGetSkill handles GET /v1/skills/:ref requests.
func (s *Server) handleGetSkill(c *fiber.Ctx) error {
	if s.config.Searcher == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "skill search is not configured",
		})
	}

	ref, err := url.PathUnescape(c.Params("ref"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "malformed reference"})
	}

	found, err := s.config.Searcher.Lookup(c.Context(), ref)
	if err != nil {
		return s.skillError(c, err)
	}

	return c.JSON(found)
}

// skillError maps the skill error taxonomy onto HTTP status codes.
func (s *Server) skillError(c *fiber.Ctx, err error) error {
	var validation skill.ValidationError

	switch {
	case skill.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	case skill.IsUpstream(err):
		s.logger.Warn("upstream skill source failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: err.Error()})
	default:
		s.logger.Error("skill request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}
}
