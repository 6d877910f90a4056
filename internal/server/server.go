// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"medlex/internal/cache"
	"medlex/internal/config"
	"medlex/internal/database"
	"medlex/internal/middleware"
	"medlex/internal/models"
	"medlex/internal/policy"
	"medlex/internal/repository"
	"medlex/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	entryRepo      repository.EntryRepository
	entryReqRepo   repository.EntryRequestRepository
	roleReqRepo    repository.RoleRequestRepository
	dictService    *service.DictionaryService
	userService    *service.UserService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	srv := newServerWith(cfg, db, cache.GetClient())
	srv.promMiddleware = middleware.InitMetrics("medlex-api")
	return srv, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and by bootstrap layers that establish DB/Redis themselves.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	return newServerWith(cfg, db, redisClient), nil
}

func newServerWith(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	entryReqRepo := repository.NewEntryRequestRepository(db)
	roleReqRepo := repository.NewRoleRequestRepository(db)

	return &Server{
		config:       cfg,
		db:           db,
		redis:        redisClient,
		userRepo:     userRepo,
		entryRepo:    entryRepo,
		entryReqRepo: entryReqRepo,
		roleReqRepo:  roleReqRepo,
		dictService:  service.NewDictionaryService(entryRepo, entryReqRepo),
		userService:  service.NewUserService(userRepo, roleReqRepo, cfg.BcryptCost),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(middleware.TracingMiddleware())

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := app.Group("/auth")
	auth.Post("/signup", s.Signup)
	auth.Post("/login", s.Login)
	auth.Post("/logout", s.Logout)

	// Dictionary routes; public reads, authenticated writes, reviewer listings
	dict := app.Group("/medical-dictionary")
	dict.Get("/", s.LookupWord)
	dict.Get("/get-matching-words", s.GetMatchingWords)
	dict.Post("/add", s.AuthRequired(), s.AddWord)
	dict.Patch("/update", s.AuthRequired(), s.UpdateWord)
	dict.Delete("/", s.AuthRequired(), s.DeleteWord)
	dict.Get("/add-update-word-requests", s.AuthRequired(), s.ContentReviewerRequired(), s.GetAddUpdateWordRequests)
	dict.Get("/delete-word-requests", s.AuthRequired(), s.ContentReviewerRequired(), s.GetDeleteWordRequests)

	// User routes
	user := app.Group("/user", s.AuthRequired())
	user.Get("/", s.GetMyProfile)
	user.Patch("/", s.UpdateMyProfile)
	user.Delete("/", s.DeleteMyAccount)
	user.Patch("/update-password", s.UpdateMyPassword)
	user.Get("/user-type-update-requests", s.AdminRequired(), s.GetRoleChangeRequests)
	user.Patch("/user-type-update", s.AdminRequired(), s.ResolveRoleChange)
}

// HealthCheck handles GET /health
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Shutdown releases server-owned resources. The Fiber app itself is shut down
// by the caller before this runs.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	return nil
}

// AuthRequired returns the authentication middleware. The credential is read
// from the "token" cookie first, then from the Authorization header.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies("token")
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					tokenString = parts[1]
				}
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Please login first"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		subClaim, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token subject"))
		}
		userIDVal, err := strconv.ParseUint(subClaim, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		roleClaim, ok := claims["role"].(string)
		if !ok || !policy.Valid(models.Role(roleClaim)) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid role in token"))
		}

		c.Locals("userID", uint(userIDVal))
		c.Locals("role", models.Role(roleClaim))

		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userIDVal))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// ContentReviewerRequired gates routes to tiers allowed to review pending
// dictionary change requests.
func (s *Server) ContentReviewerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := c.Locals("role").(models.Role)
		if !policy.CanReviewContent(role) {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("You are not authorized to perform this action"))
		}
		return c.Next()
	}
}

// AdminRequired gates routes to tiers allowed to review role-change requests.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := c.Locals("role").(models.Role)
		if !policy.CanReviewRoles(role) {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("You are not authorized to perform this action"))
		}
		return c.Next()
	}
}
