package server

import (
	"context"
	"net/http"
	"os"
	"testing"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	// Disables the Redis-backed per-route rate limits.
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWTSecret:       "test-secret-not-for-production",
		Port:            "0",
		Env:             "test",
		MediaDir:        t.TempDir(),
		PostsPerPage:    10,
		CachedTimeIndex: 0,
	}
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// newTestApp wires a full application over an in-memory database. Redis is
// absent unless a test injects one, so the page cache and rate limits stay
// out of the way.
func newTestApp(t *testing.T, redisClient *redis.Client) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()
	cfg := testConfig(t)
	if redisClient != nil {
		cfg.CachedTimeIndex = 20
	}
	db := setupHandlerTestDB(t)

	srv, err := NewServerWithDeps(cfg, db, redisClient)
	if err != nil {
		t.Fatalf("NewServerWithDeps: %v", err)
	}

	app := fiber.New()
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)
	return app, srv, db
}

// registerUser creates an account directly through the service layer and
// returns the user with a valid session token.
func registerUser(t *testing.T, srv *Server, username string) (*models.User, string) {
	t.Helper()
	user, err := srv.userService.Register(context.Background(), username, username+"@example.com", "CorrectHorse1Battery")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	token, err := srv.generateToken(user.ID, user.Username)
	if err != nil {
		t.Fatalf("token for %s: %v", username, err)
	}
	return user, token
}

func withAuth(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: "quill_token", Value: token})
	return req
}
