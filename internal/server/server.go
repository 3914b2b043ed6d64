// Package server contains the HTTP and WebSocket handlers of the Rawabit API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "rawabit/docs" // swagger docs
	"rawabit/internal/authz"
	"rawabit/internal/bootstrap"
	"rawabit/internal/config"
	"rawabit/internal/featureflags"
	"rawabit/internal/i18n"
	"rawabit/internal/middleware"
	"rawabit/internal/models"
	"rawabit/internal/notifications"
	"rawabit/internal/repository"
	"rawabit/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
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

	userRepo repository.UserRepository

	notifier     *notifications.Notifier
	hub          *notifications.Hub
	events       *notifications.Publisher
	featureFlags *featureflags.Manager

	userService         *service.UserService
	contentService      *service.ContentService
	lexiconService      *service.LexiconService
	commentService      *service.CommentService
	reactionService     *service.ReactionService
	friendService       *service.FriendService
	chatService         *service.ChatService
	notificationService *service.NotificationService

	now func() time.Time
}

// NewServer connects to the database and Redis described by cfg and builds
// a Server over them.
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{SeedDemo: cfg.DevSeedDemo})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil; caching, revocation and cross-instance fan-out are
// then disabled.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	flags, err := featureflags.Load(cfg.FeatureFlagsFile, cfg.FeatureFlags)
	if err != nil {
		return nil, fmt.Errorf("feature flags: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)
	lexiconRepo := repository.NewLexiconRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	shareRepo := repository.NewShareRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	chatRepo := repository.NewChatRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationService := service.NewNotificationService(notificationRepo)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("rawabit-api"),
		userRepo:       userRepo,
		notifier:       notifications.NewNotifier(redisClient),
		hub:            notifications.NewHub(),
		featureFlags:   flags,

		userService:         service.NewUserService(userRepo),
		contentService:      service.NewContentService(contentRepo),
		lexiconService:      service.NewLexiconService(lexiconRepo),
		commentService:      service.NewCommentService(commentRepo, shareRepo, contentRepo, lexiconRepo, userRepo, notificationService),
		reactionService:     service.NewReactionService(reactionRepo, contentRepo, lexiconRepo, userRepo, notificationService, flags),
		friendService:       service.NewFriendService(friendRepo, userRepo),
		chatService:         service.NewChatService(chatRepo, userRepo, notificationService, cfg.GroupChatTitle),
		notificationService: notificationService,
		now:                 time.Now,
	}
	s.events = notifications.NewPublisher(s.hub, s.notifier)
	return s, nil
}

// App builds a Fiber app with the full middleware chain and routes.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Rawabit API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok && fe.Code < fiber.StatusInternalServerError {
				if fe.Code == fiber.StatusNotFound {
					return models.RespondWithError(c, fe.Code, models.NewNotFoundError("route", c.Path()))
				}
				return models.RespondWithError(c, fe.Code, models.NewValidationError(i18n.InvalidBody))
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.Tracing())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.Locale())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so throttled responses still carry CORS headers.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Accept-Language, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: s.config.AllowedOrigins != "*",
		MaxAge:           86400,
	}))

	perMinute := s.config.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 100
	}
	app.Use(limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return models.Respond(c, models.NewRateLimitError())
		},
	}))

	app.Use(middleware.Timeout(time.Duration(s.config.RequestTimeoutSeconds) * time.Second))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	api := app.Group("/api")
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{Title: "Rawabit Metrics"}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 5, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)

	protected := api.Group("/main", s.AuthRequired())
	protected.Get("/feature-flags", s.GetFeatureFlags)
	protected.Get("/ws", s.WebsocketHandler())

	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Patch("/me", s.UpdateMyProfile)
	users.Get("/:id", s.GetUserProfile)

	content := protected.Group("/content")
	content.Get("/:kind", s.ListContent)
	content.Post("/:kind", middleware.RateLimit(s.redis, 30, time.Minute, "create_content"), s.CreateContent)
	// Specific /:id/:resource routes before the generic /:id routes.
	content.Get("/:kind/:id/comments", s.ListComments)
	content.Post("/:kind/:id/comments", middleware.RateLimit(s.redis, 20, time.Minute, "create_comment"), s.CreateComment)
	content.Post("/:kind/:id/shares", s.ShareContent)
	content.Get("/:kind/:id", s.GetContent)
	content.Patch("/:kind/:id", s.requireCapability(authz.Edit, s.loadContent), s.UpdateContent)
	content.Delete("/:kind/:id", s.requireCapability(authz.Delete, s.loadContent), s.DeleteContent)

	comments := protected.Group("/comments")
	comments.Patch("/:id", s.requireCapability(authz.Edit, s.loadComment), s.UpdateComment)
	comments.Delete("/:id", s.requireCapability(authz.Delete, s.loadComment), s.DeleteComment)

	lexicon := protected.Group("/lexicon")
	lexicon.Get("/:entryKind", s.ListLexicon)
	lexicon.Post("/:entryKind", s.CreateLexicon)
	lexicon.Get("/:entryKind/:id", s.GetLexicon)
	lexicon.Patch("/:entryKind/:id", s.requireCapability(authz.Edit, s.loadLexicon), s.UpdateLexicon)
	lexicon.Delete("/:entryKind/:id", s.requireCapability(authz.Delete, s.loadLexicon), s.DeleteLexicon)

	reactions := protected.Group("/reactions")
	reactions.Get("/:targetKind", s.SummarizeReactions)
	reactions.Get("/:targetKind/:id", s.GetReactions)
	reactions.Post("/:targetKind/:id", middleware.RateLimit(s.redis, 60, time.Minute, "react"), s.React)
	reactions.Delete("/:targetKind/:id", s.Unreact)

	friends := protected.Group("/friends")
	friends.Get("/", s.GetFriends)
	friends.Get("/pending", s.GetPendingRequests)
	friends.Get("/sent", s.GetSentRequests)
	friends.Get("/suggestions", s.GetSuggestions)
	friends.Get("/status/:userId", s.GetFriendshipStatus)
	friends.Post("/request", middleware.RateLimit(s.redis, 20, 5*time.Minute, "friend_request"), s.SendFriendRequest)
	friends.Post("/accept", s.AcceptFriendRequest)
	friends.Post("/decline", s.DeclineFriendRequest)
	friends.Post("/cancel", s.CancelFriendRequest)
	friends.Post("/remove", s.RemoveFriend)

	messages := protected.Group("/messages")
	messages.Get("/", s.GetGroupMessages)
	messages.Post("/", middleware.RateLimit(s.redis, 30, time.Minute, "send_message"), s.PostGroupMessage)
	messages.Post("/direct", middleware.RateLimit(s.redis, 30, time.Minute, "send_message"), s.SendDirectMessage)

	conversations := protected.Group("/conversations")
	conversations.Get("/", s.ListConversations)
	conversations.Post("/", s.OpenConversation)
	conversations.Get("/:id/messages", s.GetConversationMessages)
	conversations.Post("/:id/messages", middleware.RateLimit(s.redis, 30, time.Minute, "send_message"), s.SendConversationMessage)
	conversations.Post("/:id/read", s.MarkConversationRead)

	notes := protected.Group("/notifications")
	notes.Get("/", s.GetNotifications)
	notes.Get("/unread-count", s.GetUnreadCount)
	notes.Post("/read-all", s.MarkAllNotificationsRead)
	notes.Patch("/:id/read", s.requireCapability(authz.Edit, s.loadNotification), s.SetNotificationRead)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "up",
		"time":   s.now().UTC(),
	})
}

// ReadinessCheck reports database and Redis health. Redis is optional:
// without it the server runs with caching and fan-out disabled.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if sqlDB, err := s.db.DB(); err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"connections": s.hub.Connections(),
		"time":        s.now().UTC(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	s.app = s.App()

	if s.notifier.Enabled() {
		if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
			middleware.Logger.Error("failed to start realtime wiring", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if err := s.hub.Shutdown(ctx); err != nil {
		middleware.Logger.Error("error shutting down realtime hub", slog.String("error", err.Error()))
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
