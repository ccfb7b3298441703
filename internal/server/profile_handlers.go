package server

import (
	"quill/internal/forms"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseProfileForm reads the profile form fields from either a multipart
// form or a JSON body.
func (s *Server) parseProfileForm(c *fiber.Ctx) (forms.ProfileInput, error) {
	var in forms.ProfileInput
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if v := form.Value["bio"]; len(v) > 0 {
			in.Bio = v[0]
		}
		data, _, err := readFormImage(c, "image")
		if err != nil {
			return in, err
		}
		in.Image = data
		return in, nil
	}

	var req struct {
		Bio string `json:"bio" form:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return in, models.NewValidationError("Invalid request body")
	}
	in.Bio = req.Bio
	return in, nil
}

// ProfileCreateForm handles GET /auth/profile_create/. A caller who already
// has a profile is sent to the edit form instead; the two routes are
// complementary and always land the caller on the right one.
func (s *Server) ProfileCreateForm(c *fiber.Ctx) error {
	if _, err := s.profileService.GetProfile(c.Context(), currentUserID(c)); err == nil {
		return c.Redirect("/auth/profile_edit/", fiber.StatusFound)
	} else if !models.IsNotFound(err) {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"fields": []string{"bio", "image"},
	})
}

// CreateProfile handles POST /auth/profile_create/.
func (s *Server) CreateProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if _, err := s.profileService.GetProfile(c.Context(), userID); err == nil {
		return c.Redirect("/auth/profile_edit/", fiber.StatusFound)
	} else if !models.IsNotFound(err) {
		return respondServiceError(c, err)
	}

	in, err := s.parseProfileForm(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	delta, errs := forms.ValidateProfile(in)
	if errs != nil {
		return respondFormErrors(c, errs)
	}

	imageURL, err := s.saveImage(delta.Image, delta.ImageExt)
	if err != nil {
		return respondServiceError(c, err)
	}

	if _, err := s.profileService.CreateProfile(c.Context(), userID, delta, imageURL); err != nil {
		return respondServiceError(c, err)
	}

	user, err := s.userService.GetByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect(profilePath(user.Username), fiber.StatusFound)
}

// ProfileEditForm handles GET /auth/profile_edit/. A caller with no profile
// yet is sent to the create form.
func (s *Server) ProfileEditForm(c *fiber.Ctx) error {
	profile, err := s.profileService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		if models.IsNotFound(err) {
			return c.Redirect("/auth/profile_create/", fiber.StatusFound)
		}
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"profile": profile,
		"fields":  []string{"bio", "image"},
	})
}

// EditProfile handles POST /auth/profile_edit/.
func (s *Server) EditProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)
	profile, err := s.profileService.GetProfile(c.Context(), userID)
	if err != nil {
		if models.IsNotFound(err) {
			return c.Redirect("/auth/profile_create/", fiber.StatusFound)
		}
		return respondServiceError(c, err)
	}

	in, err := s.parseProfileForm(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	delta, errs := forms.ValidateProfile(in)
	if errs != nil {
		return respondFormErrors(c, errs)
	}

	imageURL, err := s.saveImage(delta.Image, delta.ImageExt)
	if err != nil {
		return respondServiceError(c, err)
	}

	if _, err := s.profileService.UpdateProfile(c.Context(), profile, delta, imageURL); err != nil {
		return respondServiceError(c, err)
	}

	user, err := s.userService.GetByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect(profilePath(user.Username), fiber.StatusFound)
}
