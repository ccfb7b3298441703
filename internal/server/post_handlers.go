package server

import (
	"quill/internal/forms"
	"quill/internal/models"
	"quill/internal/policy"

	"github.com/gofiber/fiber/v2"
)

// NewPostForm handles GET /new/ — describes the post form for clients.
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	groups, err := s.groupService.ListGroups(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"fields": []string{"text", "group", "image"},
		"groups": groups,
	})
}

// parsePostForm reads the post form fields from either a multipart form or a
// JSON body.
func (s *Server) parsePostForm(c *fiber.Ctx) (forms.PostInput, error) {
	var in forms.PostInput
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if v := form.Value["text"]; len(v) > 0 {
			in.Text = v[0]
		}
		if v := form.Value["group"]; len(v) > 0 {
			in.Group = v[0]
		}
		data, name, err := readFormImage(c, "image")
		if err != nil {
			return in, err
		}
		in.Image = data
		in.ImageName = name
		return in, nil
	}

	var req struct {
		Text  string `json:"text" form:"text"`
		Group string `json:"group" form:"group"`
	}
	if err := c.BodyParser(&req); err != nil {
		return in, models.NewValidationError("Invalid request body")
	}
	in.Text = req.Text
	in.Group = req.Group
	return in, nil
}

// CreatePost handles POST /new/. A valid submission lands the caller back on
// the global feed.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	in, err := s.parsePostForm(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	delta, errs := forms.ValidatePost(c.Context(), s.groupRepo, in)
	if errs != nil {
		return respondFormErrors(c, errs)
	}

	imageURL, err := s.saveImage(delta.Image, delta.ImageExt)
	if err != nil {
		return respondServiceError(c, err)
	}

	if _, err := s.postService.CreatePost(c.Context(), currentUserID(c), delta, imageURL); err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect("/", fiber.StatusFound)
}

// PostDetail handles GET /:username/:postID/ — one post with its comments.
// The username segment is cosmetic; the post id alone identifies the post,
// but a mismatched username is a 404 so every post has one canonical URL.
func (s *Server) PostDetail(c *fiber.Ctx) error {
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

	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	total, err := s.postRepo.CountByAuthor(c.Context(), post.AuthorID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":         post,
		"comments":     comments,
		"author_posts": total,
		"can_edit":     policy.CanEditPost(currentUserID(c), post).Allowed,
		"comment_form": fiber.Map{"fields": []string{"text"}},
	})
}

// loadPostForEdit resolves the post behind an edit route and applies the
// owner policy. A denial is answered with the spec's redirect (login flow for
// anonymous callers, the post page for non-owners) and errResponseWritten.
func (s *Server) loadPostForEdit(c *fiber.Ctx) (*models.Post, error) {
	postID, err := s.parseID(c, "postID")
	if err != nil {
		return nil, errResponseWritten
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		_ = respondServiceError(c, err)
		return nil, errResponseWritten
	}
	if post.Author.Username != c.Params("username") {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", postID))
		return nil, errResponseWritten
	}

	decision := policy.CanEditPost(currentUserID(c), post)
	if !decision.Allowed {
		_ = c.Redirect(postPath(post.Author.Username, post.ID), fiber.StatusFound)
		return nil, errResponseWritten
	}
	return post, nil
}

// EditPostForm handles GET /:username/:postID/edit/ — the pre-filled edit
// form, owner only.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	post, err := s.loadPostForEdit(c)
	if err != nil {
		return nil
	}

	groups, err := s.groupService.ListGroups(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"post":   post,
		"fields": []string{"text", "group", "image"},
		"groups": groups,
	})
}

// EditPost handles POST /:username/:postID/edit/. Only the author gets this
// far; everyone else was already bounced to the post page unchanged.
func (s *Server) EditPost(c *fiber.Ctx) error {
	post, err := s.loadPostForEdit(c)
	if err != nil {
		return nil
	}

	in, err := s.parsePostForm(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	delta, errs := forms.ValidatePost(c.Context(), s.groupRepo, in)
	if errs != nil {
		return respondFormErrors(c, errs)
	}

	imageURL, err := s.saveImage(delta.Image, delta.ImageExt)
	if err != nil {
		return respondServiceError(c, err)
	}

	if _, err := s.postService.UpdatePost(c.Context(), post, delta, imageURL); err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect(postPath(c.Params("username"), post.ID), fiber.StatusFound)
}
