// Package server contains the HTTP handlers for the application's routes.
package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/middleware"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	pageCache      *cache.PageCache

	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	groupRepo   repository.GroupRepository
	followRepo  repository.FollowRepository
	profileRepo repository.ProfileRepository

	userService    *service.UserService
	postService    *service.PostService
	commentService *service.CommentService
	groupService   *service.GroupService
	followService  *service.FollowService
	profileService *service.ProfileService
	feedService    *service.FeedService
}

// The fiberprometheus collectors register on the default Prometheus registry,
// so they are created once per process no matter how many Server instances
// exist.
var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

func promMiddlewareInstance() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = middleware.InitMetrics("quill-api")
	})
	return promInstance
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: promMiddlewareInstance(),
		pageCache:      cache.NewPageCache(redisClient, time.Duration(cfg.CachedTimeIndex)*time.Second),
		userRepo:       repository.NewUserRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		groupRepo:      repository.NewGroupRepository(db),
		followRepo:     repository.NewFollowRepository(db),
		profileRepo:    repository.NewProfileRepository(db),
	}

	server.userService = service.NewUserService(server.userRepo)
	server.postService = service.NewPostService(server.postRepo)
	server.commentService = service.NewCommentService(server.commentRepo, server.postRepo)
	server.groupService = service.NewGroupService(server.groupRepo)
	server.followService = service.NewFollowService(server.followRepo, server.userRepo)
	server.profileService = service.NewProfileService(server.profileRepo)
	server.feedService = service.NewFeedService(server.postRepo, server.followRepo, cfg.PostsPerPage)

	return server, nil
}

// Shutdown releases server-held resources. The Fiber app itself is shut down
// by the caller.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	// Resolve the caller's identity for every route; enforcement is per-route.
	app.Use(middleware.OptionalUser())
}

// SetupRoutes configures all routes for the application. Fixed path segments
// are registered before the /:username routes so they always win; reserved
// names are additionally rejected at signup.
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded images
	if s.config.MediaDir != "" {
		app.Static("/media", s.config.MediaDir)
	}

	// Auth routes
	auth := app.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Get("/login", s.LoginForm)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)
	auth.Post("/delete", middleware.LoginRequired(), s.DeleteAccount)
	auth.Get("/profile_create", middleware.LoginRequired(), s.ProfileCreateForm)
	auth.Post("/profile_create", middleware.LoginRequired(), s.CreateProfile)
	auth.Get("/profile_edit", middleware.LoginRequired(), s.ProfileEditForm)
	auth.Post("/profile_edit", middleware.LoginRequired(), s.EditProfile)

	// Global feed, served through the page cache
	app.Get("/", middleware.CachePage(s.pageCache), s.Index)

	// Following feed
	app.Get("/follow", middleware.LoginRequired(), s.FollowingFeed)

	// Group routes
	app.Get("/group/:slug", s.GroupFeed)

	// Post creation
	app.Get("/new", middleware.LoginRequired(), s.NewPostForm)
	app.Post("/new", middleware.LoginRequired(), middleware.RateLimit(
		s.redis, 30, time.Minute, "create_post"), s.CreatePost)

	// Group creation
	app.Get("/new_group", middleware.LoginRequired(), s.NewGroupForm)
	app.Post("/new_group", middleware.LoginRequired(), s.CreateGroup)

	// Author routes; specific /:username/:sub routes before the generic ones
	app.Get("/:username/follow", middleware.LoginRequired(), s.FollowAuthor)
	app.Get("/:username/unfollow", middleware.LoginRequired(), s.UnfollowAuthor)
	app.Get("/:username/:postID/edit", middleware.LoginRequired(), s.EditPostForm)
	app.Post("/:username/:postID/edit", middleware.LoginRequired(), s.EditPost)
	app.Post("/:username/:postID/comment", middleware.LoginRequired(), middleware.RateLimit(
		s.redis, 30, time.Minute, "create_comment"), s.AddComment)
	app.Get("/:username/:postID", s.PostDetail)
	app.Get("/:username", s.AuthorFeed)
}
