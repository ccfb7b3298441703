package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"quill/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-not-for-production"

func testToken(t *testing.T, userID uint, secret string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()
	InitMiddleware(&config.Config{JWTSecret: testSecret})

	app := fiber.New()
	app.Use(OptionalUser())
	app.Get("/open", func(c *fiber.Ctx) error {
		uid, _ := c.Locals("userID").(uint)
		return c.JSON(fiber.Map{"user_id": uid})
	})
	app.Get("/protected", LoginRequired(), func(c *fiber.Ctx) error {
		return c.SendString("in")
	})
	return app
}

func TestLoginRequiredRedirectsAnonymous(t *testing.T) {
	app := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected?page=3", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	// The full original URL, query included, rides along as the return target.
	want := "/auth/login/?next=%2Fprotected%3Fpage%3D3"
	if location := resp.Header.Get("Location"); location != want {
		t.Fatalf("expected %q, got %q", want, location)
	}
}

func TestLoginRequiredAcceptsCookie(t *testing.T) {
	app := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: testToken(t, 42, testSecret)})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with valid cookie, got %d", resp.StatusCode)
	}
}

func TestLoginRequiredAcceptsBearerHeader(t *testing.T) {
	app := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, 42, testSecret))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d", resp.StatusCode)
	}
}

func TestOptionalUserIgnoresForgedToken(t *testing.T) {
	app := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: testToken(t, 42, "wrong-secret")})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	// A forged token is the same as no token: redirect, not error.
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 for forged token, got %d", resp.StatusCode)
	}
}
