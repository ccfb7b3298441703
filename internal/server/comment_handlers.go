package server

import (
	"quill/internal/forms"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /:username/:postID/comment/. A valid submission
// lands the caller back on the post page, where the new comment is visible.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postID")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if post.Author.Username != c.Params("username") {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", postID))
	}

	var req struct {
		Text string `json:"text" form:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	delta, errs := forms.ValidateComment(forms.CommentInput{Text: req.Text})
	if errs != nil {
		return respondFormErrors(c, errs)
	}

	if _, err := s.commentService.AddComment(c.Context(), currentUserID(c), postID, delta); err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect(postPath(c.Params("username"), postID), fiber.StatusFound)
}
