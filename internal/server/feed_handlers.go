package server

import (
	"context"
	"time"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET / — the global feed. The route is wrapped in the page
// cache middleware, so a page rendered here may be served as-is for the cache
// TTL; new posts appear once the entry expires.
func (s *Server) Index(c *fiber.Ctx) error {
	page, err := s.feedService.Global(c.Context(), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"page": page})
}

// GroupFeed handles GET /group/:slug/ — the feed of one group.
func (s *Server) GroupFeed(c *fiber.Ctx) error {
	group, err := s.groupService.GetGroupBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}
	page, err := s.feedService.Group(c.Context(), group.ID, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"group": group,
		"page":  page,
	})
}

// AuthorFeed handles GET /:username/ — an author's profile page: their posts,
// profile, follower counts, and whether the caller follows them.
func (s *Server) AuthorFeed(c *fiber.Ctx) error {
	author, err := s.userService.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	page, err := s.feedService.Author(c.Context(), author.ID, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	followers, following, err := s.followService.FollowerCounts(c.Context(), author.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	callerFollows, err := s.followService.IsFollowing(c.Context(), currentUserID(c), author.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Authors without a profile still have a profile page.
	var profile *models.Profile
	if p, err := s.profileService.GetProfile(c.Context(), author.ID); err == nil {
		profile = p
	} else if !models.IsNotFound(err) {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"author":          author,
		"profile":         profile,
		"page":            page,
		"followers_count": followers,
		"following_count": following,
		"following":       callerFollows,
	})
}

// FollowingFeed handles GET /follow/ — posts by every author the caller
// follows.
func (s *Server) FollowingFeed(c *fiber.Ctx) error {
	page, err := s.feedService.Following(c.Context(), currentUserID(c), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"page": page})
}

// LivenessCheck handles GET /health/live
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck handles GET /health/ready. Verifies the database and, when
// configured, Redis are reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  "database unreachable",
		})
	}

	redisStatus := "disabled"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unreachable"
		} else {
			redisStatus = "ok"
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"redis":  redisStatus,
	})
}
