package server

import (
	"penaura/internal/models"
	"penaura/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSettings handles GET /settings
func (s *Server) GetSettings(c *fiber.Ctx) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	settings, err := s.settingsService.GetSettings(ctx, currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if settings == nil {
		// The row is created with the user, so this only happens for
		// accounts seeded out of band. An empty object keeps the
		// response shape predictable for clients.
		return c.JSON(fiber.Map{})
	}

	return c.JSON(settings)
}

// UpdateSettings handles PUT /settings
func (s *Server) UpdateSettings(c *fiber.Ctx) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	var req struct {
		DefaultCategory *string `json:"default_category"`
		Theme           *string `json:"theme"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := currentUserID(c)
	if err := s.settingsService.UpdateSettings(ctx, userID, service.UpdateSettingsInput{
		DefaultCategory: req.DefaultCategory,
		Theme:           req.Theme,
	}); err != nil {
		return models.RespondWithAppError(c, err)
	}

	settings, err := s.settingsService.GetSettings(ctx, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(settings)
}
