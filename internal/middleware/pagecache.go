package middleware

import (
	"quill/internal/cache"
	"quill/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// CachePage serves GET responses from the page cache, keyed by the full
// request URL including the page query parameter. Only successful JSON
// responses are stored.
func CachePage(pc *cache.PageCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !pc.Enabled() || c.Method() != fiber.MethodGet {
			return c.Next()
		}

		key := cache.FeedPageKey(c.OriginalURL())
		if body, ok := pc.Get(c.UserContext(), key); ok {
			observability.FeedPageCacheHits.WithLabelValues("hit").Inc()
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.Send(body)
		}
		observability.FeedPageCacheHits.WithLabelValues("miss").Inc()

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			// The response buffer is reused by fasthttp; copy before storing.
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			pc.Set(c.UserContext(), key, body)
		}
		return nil
	}
}
