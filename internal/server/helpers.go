package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"quill/internal/forms"
	"quill/internal/models"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// currentUserID returns the authenticated caller's id, or zero for anonymous
// requests.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// parsePage extracts the requested page number from the "page" query
// parameter. Garbage and out-of-range values degrade to page one; the feed
// service clamps against the real page count.
func parsePage(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 404 JSON response and returns errResponseWritten;
// callers should check: if err != nil { return nil }.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", c.Params(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// postPath is the canonical URL of a post's detail page.
func postPath(username string, postID uint) string {
	return fmt.Sprintf("/%s/%d/", username, postID)
}

// profilePath is the canonical URL of an author's feed page.
func profilePath(username string) string {
	return "/" + username + "/"
}

// readFormImage pulls the uploaded image out of the multipart form, if any.
// Oversized uploads fail here before the payload is sniffed.
func readFormImage(c *fiber.Ctx, field string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		// No file part in the form.
		return nil, "", nil
	}
	if fileHeader.Size > validation.MaxImageBytes {
		return nil, "", models.NewValidationError(
			fmt.Sprintf("Image exceeds the %d byte limit", validation.MaxImageBytes))
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, validation.MaxImageBytes+1))
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	if int64(len(data)) > validation.MaxImageBytes {
		return nil, "", models.NewValidationError(
			fmt.Sprintf("Image exceeds the %d byte limit", validation.MaxImageBytes))
	}
	return data, fileHeader.Filename, nil
}

// saveImage writes a validated image payload to the media directory under a
// random name and returns its public URL path. An empty payload stores
// nothing and returns "".
func (s *Server) saveImage(data []byte, ext string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if s.config.MediaDir == "" {
		return "", models.NewInternalError(errors.New("media directory not configured"))
	}
	if err := os.MkdirAll(s.config.MediaDir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}
	name := uuid.NewString() + "." + ext
	if err := os.WriteFile(filepath.Join(s.config.MediaDir, name), data, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}
	return "/media/" + name, nil
}

// respondFormErrors writes the standard 400 payload for a failed form
// validation.
func respondFormErrors(c *fiber.Ctx, errs forms.Errors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed",
		"fields": errs,
	})
}

// statusForError maps an application error to its HTTP status.
func statusForError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		case "UNAUTHORIZED":
			return fiber.StatusUnauthorized
		}
	}
	return fiber.StatusInternalServerError
}

// respondServiceError writes the JSON error response for a service failure.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}
