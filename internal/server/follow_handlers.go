package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowAuthor handles GET /:username/follow/. Whatever happens — edge
// created, self-follow refused, already following — the caller ends up back
// on the author's profile page; a denial simply changes nothing.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	username := c.Params("username")
	author, err := s.userService.GetByUsername(c.Context(), username)
	if err != nil {
		return respondServiceError(c, err)
	}

	if _, err := s.followService.Follow(c.Context(), currentUserID(c), author.ID); err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect(profilePath(username), fiber.StatusFound)
}

// UnfollowAuthor handles GET /:username/unfollow/. Same redirect contract as
// FollowAuthor.
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	username := c.Params("username")
	author, err := s.userService.GetByUsername(c.Context(), username)
	if err != nil {
		return respondServiceError(c, err)
	}

	if _, err := s.followService.Unfollow(c.Context(), currentUserID(c), author.ID); err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect(profilePath(username), fiber.StatusFound)
}
