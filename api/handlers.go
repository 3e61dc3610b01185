package api

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rocksolid/rocksolid/pkg/eventstream"
	"github.com/rocksolid/rocksolid/pkg/storage"
)

// CreateRoutineRequest is the body of POST /routines.
type CreateRoutineRequest struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

const badRoutineBody = "Body must be { name: string, items: array }"

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleListRoutines returns every stored routine, newest first.
func (s *Server) handleListRoutines(c *fiber.Ctx) error {
	routines, err := s.storer.List(c.Context())
	if err != nil {
		s.logger.Error("failed to list routines", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(routines)
}

// handleCreateRoutine stores a routine and returns it with its assigned id
// and creation time.
func (s *Server) handleCreateRoutine(c *fiber.Ctx) error {
	var req CreateRoutineRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: badRoutineBody})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || req.Items == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: badRoutineBody})
	}

	routine := storage.Routine{
		ID:        uuid.NewString(),
		Name:      name,
		Items:     req.Items,
		CreatedAt: s.config.Now().UTC(),
	}

	if err := s.storer.Create(c.Context(), routine); err != nil {
		s.logger.Error("failed to create routine", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}

	s.logger.Info("routine created",
		zap.String("id", routine.ID),
		zap.Int("items", len(routine.Items)),
	)
	s.publish(c.Context(), eventstream.EventTypeRoutineCreated, routine)

	return c.JSON(routine)
}

// handleGetRoutine returns a single routine by id.
func (s *Server) handleGetRoutine(c *fiber.Ctx) error {
	routine, err := s.storer.Get(c.Context(), c.Params("id"))
	if err != nil {
		return s.storageError(c, err)
	}

	return c.JSON(routine)
}

// handleDeleteRoutine removes a routine by id.
func (s *Server) handleDeleteRoutine(c *fiber.Ctx) error {
	id := c.Params("id")

	routine, err := s.storer.Get(c.Context(), id)
	if err != nil {
		return s.storageError(c, err)
	}

	if err := s.storer.Delete(c.Context(), id); err != nil {
		return s.storageError(c, err)
	}

	s.publish(c.Context(), eventstream.EventTypeRoutineDeleted, *routine)
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) storageError(c *fiber.Ctx, err error) error {
	var nf storage.NotFoundError
	if errors.As(err, &nf) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "routine not found"})
	}

	s.logger.Error("storage failure", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
}

// publish emits a routine event. Failures are logged; the request has
// already succeeded.
func (s *Server) publish(ctx context.Context, eventType string, routine storage.Routine) {
	event := eventstream.NewRoutineEvent(eventType, routine, s.config.Now())
	if err := s.config.Publisher.PublishRoutine(ctx, event); err != nil {
		s.logger.Warn("failed to publish routine event",
			zap.String("event_type", eventType),
			zap.String("id", routine.ID),
			zap.Error(err),
		)
	}
}
