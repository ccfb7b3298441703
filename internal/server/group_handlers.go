package server

import (
	"quill/internal/forms"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// NewGroupForm handles GET /new_group/ — describes the group form for
// clients.
func (s *Server) NewGroupForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"fields": []string{"title", "slug", "description"},
	})
}

// CreateGroup handles POST /new_group/. A valid submission lands the caller
// on the new group's feed.
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title" form:"title"`
		Slug        string `json:"slug" form:"slug"`
		Description string `json:"description" form:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	delta, errs := forms.ValidateGroup(c.Context(), s.groupRepo, forms.GroupInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if errs != nil {
		return respondFormErrors(c, errs)
	}

	group, err := s.groupService.CreateGroup(c.Context(), delta)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect("/group/"+group.Slug+"/", fiber.StatusFound)
}
