package api

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rocksolid/rocksolid/pkg/skill"
	"github.com/rocksolid/rocksolid/pkg/source"
)

// handleYoga passes a request through to the yoga pose provider. The route
// defaults to poses; only name, level, id and category are forwarded.
func (s *Server) handleYoga(c *fiber.Ctx) error {
	if s.config.Yoga == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "yoga provider is not configured",
		})
	}

	route := c.Params("route")
	if route == "" {
		route = c.Query("route")
	}

	params := url.Values{}
	for _, key := range source.ForwardedParams {
		if v := c.Query(key); v != "" {
			params.Set(key, v)
		}
	}

	body, err := s.config.Yoga.Forward(c.Context(), route, params)
	switch {
	case errors.Is(err, source.ErrUnknownRoute):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid route. Use poses or categories."})
	case skill.IsUpstream(err):
		s.logger.Warn("yoga provider request failed", zap.String("route", route), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "Yoga API request failed"})
	case err != nil:
		s.logger.Error("yoga pass-through failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Server error"})
	}

	c.Set(fiber.HeaderCacheControl, "s-maxage=600, stale-while-revalidate=600")
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
