// Package middleware provides authentication, logging, metrics and rate
// limiting middleware for the application.
package middleware

import (
	"net/url"
	"strconv"
	"strings"

	"quill/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthCookieName is the cookie carrying the session token for browser clients.
const AuthCookieName = "quill_token"

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// tokenFromRequest extracts the raw token from the Authorization header or
// the auth cookie. Returns "" when neither is present.
func tokenFromRequest(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Cookies(AuthCookieName)
}

// parseUserID validates the token and extracts the user id from the "sub"
// claim (subject claim per RFC 7519).
func parseUserID(tokenString string) (uint, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}

	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil || userID == 0 {
		return 0, false
	}
	return uint(userID), true
}

// OptionalUser resolves the caller's identity when a valid token is present
// and stores it in c.Locals("userID"). Anonymous requests pass through.
func OptionalUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := tokenFromRequest(c); token != "" {
			if userID, ok := parseUserID(token); ok {
				c.Locals("userID", userID)
			}
		}
		return c.Next()
	}
}

// LoginRequired enforces authentication for protected routes. Anonymous
// callers are redirected to the login flow with the original URL as the
// return target; they are never shown a raw error.
func LoginRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uid, ok := c.Locals("userID").(uint); ok && uid != 0 {
			return c.Next()
		}
		target := "/auth/login/?next=" + url.QueryEscape(c.OriginalURL())
		return c.Redirect(target, fiber.StatusFound)
	}
}
