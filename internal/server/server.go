package server

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "recipebox/docs" // swagger docs
	"recipebox/internal/bootstrap"
	"recipebox/internal/cache"
	"recipebox/internal/config"
	"recipebox/internal/database"
	"recipebox/internal/featureflags"
	"recipebox/internal/middleware"
	"recipebox/internal/models"
	"recipebox/internal/notifications"
	"recipebox/internal/repository"
	"recipebox/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	notifier       *notifications.Notifier
	hub            *notifications.Hub
	featureFlags   *featureflags.Manager
	accounts       *service.AccountService
	recipes        *service.RecipeService
	ledger         *service.RatingLedger
	points         *service.PointsAccount
	leaderboard    *service.Leaderboard
	favourites     *service.FavouriteService
	shoppingList   *service.ShoppingListService
}

var (
	promOnce sync.Once
	promMW   *fiberprometheus.FiberPrometheus
)

// httpMetrics registers the HTTP collectors once per process.
func httpMetrics() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMW = fiberprometheus.New("recipebox-api")
	})
	return promMW
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, rdb, err := bootstrap.InitRuntime(context.Background(), cfg, bootstrap.Options{
		ApplySchema: true,
		SeedCurated: cfg.SeedCurated,
	})
	if err != nil {
		return nil, fmt.Errorf("runtime init failed: %w", err)
	}
	return NewServerWithDeps(cfg, db, rdb)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	txRunner := repository.NewTxRunner(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: httpMetrics(),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		hub:            notifications.NewHub(),
		notifier:       notifications.NewNotifier(redisClient),
	}
	if redisClient == nil {
		// Single-node mode: deliver straight to local sockets.
		server.notifier.SetLocalFallback(func(username, payload string) {
			server.hub.Broadcast(username, payload)
		})
	}

	server.accounts = service.NewAccountService(userRepo)
	server.recipes = service.NewRecipeService(recipeRepo, redisClient)
	server.ledger = service.NewRatingLedger(txRunner, redisClient, server.notifier, server.featureFlags)
	server.points = service.NewPointsAccount(userRepo, voucherRepo, txRunner, service.NewVoucherIssuer())
	server.leaderboard = service.NewLeaderboard(recipeRepo, reviewRepo, redisClient, server.featureFlags)
	server.favourites = service.NewFavouriteService(repository.NewFavouriteRepository(db))
	server.shoppingList = service.NewShoppingListService(repository.NewShoppingListRepository(db))

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context Middleware to propagate request ID and trace ID
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected browser requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
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
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/", s.HealthCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api.Get("/swagger/*", swagger.HandlerDefault)

	// Static catalogue and flags
	api.Get("/valid-health-labels", s.GetHealthLabels)
	api.Get("/valid-diet-labels", s.GetDietLabels)
	api.Get("/feature-flags", s.GetFeatureFlags)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.AuthRequired(), s.Logout)

	// Public user routes
	api.Get("/users/check/:username", s.CheckUsername)

	// Public recipe routes; specific paths before /:id
	recipes := api.Group("/recipes")
	recipes.Get("/", s.GetRecipes)
	recipes.Get("/top-rated", s.GetTopRated)
	recipes.Get("/:id/reviews", s.GetRecipeReviews)
	recipes.Get("/:id", s.GetRecipe)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	users := protected.Group("/users/me")
	users.Get("/dietary", s.GetDietary)
	users.Put("/dietary", s.UpdateDietary)
	users.Get("/allergies", s.GetAllergies)
	users.Put("/allergies", s.UpdateAllergies)

	protectedRecipes := protected.Group("/recipes")
	protectedRecipes.Post("/", s.CreateRecipe)
	protectedRecipes.Post("/:id/reviews", middleware.RateLimit(
		s.redis, 10, time.Minute, "rating"), s.SubmitReview)
	protectedRecipes.Put("/:id", s.UpdateRecipe)
	protectedRecipes.Delete("/:id", s.DeleteRecipe)

	me := protected.Group("/me")
	me.Get("/recipes", s.GetMyRecipes)
	me.Get("/favourites", s.GetFavourites)
	me.Post("/favourites", s.AddFavourite)
	me.Delete("/favourites/:recipeId", s.RemoveFavourite)
	me.Get("/shopping-list", s.GetShoppingList)
	me.Post("/shopping-list", s.AddShoppingItem)
	me.Delete("/shopping-list/:id", s.RemoveShoppingItem)
	me.Get("/points", s.GetMyPoints)
	me.Post("/points/redeem", middleware.RateLimit(
		s.redis, 5, time.Minute, "redeem"), s.RedeemPoints)
	me.Get("/vouchers", s.GetMyVouchers)

	// WebSocket ticket issuance and upgrade
	api.Post("/ws/ticket", s.AuthRequired(), s.IssueWSTicket)
	api.Get("/ws", s.AuthRequired(), s.WebsocketHandler())
}

// HealthCheck is a legacy/simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional, so
// only the database decides readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	dbStatus := "healthy"
	if s.db == nil {
		dbStatus = "unhealthy"
	} else if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "recipebox",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. WebSocket upgrades must
// present a single-use ticket; every other route takes a Bearer token.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Already authenticated by the group middleware.
		if currentUsername(c) != "" {
			return c.Next()
		}

		isWSPath := strings.HasPrefix(c.Path(), "/api/ws") && c.Path() != "/api/ws/ticket"

		if isWSPath {
			ticket := c.Query("ticket")
			if ticket == "" || s.redis == nil {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("WebSocket ticket required"))
			}
			username, err := s.redis.GetDel(c.UserContext(), cache.WSTicketKey(ticket)).Result()
			if err != nil || username == "" {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Invalid or expired WebSocket ticket"))
			}
			s.authenticate(c, username)
			return c.Next()
		}

		tokenString := ""
		if parts := strings.Split(c.Get("Authorization"), " "); len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		},
			jwt.WithIssuer(tokenIssuer),
			jwt.WithAudience(tokenAudience),
		)
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		username, err := claims.GetSubject()
		if err != nil || username == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}

		// Check JTI for revocation
		if jti, exists := claims["jti"].(string); exists && jti != "" {
			if s.redis != nil {
				revoked, err := s.redis.Exists(c.UserContext(), cache.TokenBlacklistKey(jti)).Result()
				if err == nil && revoked > 0 {
					return models.RespondWithError(c, fiber.StatusUnauthorized,
						models.NewUnauthorizedError("Token has been revoked"))
				}
			}
			c.Locals("jti", jti)
		}
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			c.Locals("tokenExp", exp.Time)
		}

		s.authenticate(c, username)
		return c.Next()
	}
}

// authenticate stores the caller for handlers, rate limiting and logging.
func (s *Server) authenticate(c *fiber.Ctx, username string) {
	c.Locals("username", username)
	c.SetUserContext(middleware.WithUsername(c.UserContext(), username))
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "recipebox API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return models.RespondWithError(c, fe.Code, err)
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err.Error())
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	if s.redis != nil {
		go func() {
			if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
				middleware.Logger.Error("failed to start hub wiring", "hub", s.hub.Name(), "error", err.Error())
			}
		}()
	}

	middleware.Logger.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err.Error())
		}
	}

	if err := s.hub.Shutdown(ctx); err != nil {
		middleware.Logger.Error("error shutting down hub", "hub", s.hub.Name(), "error", err.Error())
	}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				middleware.Logger.Error("error closing sql DB", "error", cerr.Error())
			}
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr.Error())
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
