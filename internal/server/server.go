package server

import (
	"go-gudang/internal/config"
	"go-gudang/internal/handler"
	"go-gudang/internal/middleware"
	"go-gudang/internal/model"
	"go-gudang/internal/repository"
	"go-gudang/internal/service"
	"go-gudang/pkg/jwt"
	"go-gudang/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Options carries everything the HTTP layer is built from.
type Options struct {
	Config *config.Config
	DB     *gorm.DB
	Log    zerolog.Logger
	// Publisher is optional; leave it nil to disable activity events.
	Publisher service.EventPublisher
}

// New wires repositories, services and handlers and returns the routed app.
func New(opts Options) *fiber.App {
	cfg := opts.Config
	db := opts.DB
	log := opts.Log

	tokens := jwt.NewManager(cfg.SecretKey, cfg.TokenTTL)

	// Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	itemRepo := repository.NewItemRepo(db)
	logRepo := repository.NewActivityLogRepo(db)

	authService := service.NewAuthService(userRepo, tokens, cfg.OwnerSecret, log)
	userService := service.NewUserService(db, userRepo, itemRepo, logRepo, cfg.ResetSecret, log)
	itemService := service.NewItemService(db, itemRepo, logRepo, opts.Publisher, log)
	activityService := service.NewActivityService(logRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	itemHandler := handler.NewItemHandler(itemService)
	logHandler := handler.NewLogHandler(activityService)
	healthHandler := handler.NewHealthHandler(db)

	app := fiber.New(fiber.Config{
		AppName:      "Gudang API",
		ErrorHandler: handler.NewErrorHandler(log),
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.Metrics())
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// ============ PUBLIC ROUTES ============
	auth := app.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)

	requireAuth := middleware.RequireAuth(tokens)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// ============ ADMIN ROUTES ============
	// Middleware is attached per route: reset-password lives under /admin
	// but is authorized by the reset secret alone.
	admin := app.Group("/admin")
	admin.Put("/reset-password", userHandler.ResetPassword)
	admin.Get("/users", requireAuth, adminOnly, userHandler.GetAllUsers)
	admin.Put("/users/:id", requireAuth, adminOnly, userHandler.UpdateUser)
	admin.Delete("/users/:id", requireAuth, adminOnly, userHandler.DeleteUser)

	// ============ PROTECTED ROUTES ============
	items := app.Group("/items", requireAuth)
	items.Get("/", itemHandler.GetItems)
	items.Post("/", itemHandler.CreateItem)
	items.Put("/:id", itemHandler.UpdateItem)
	items.Delete("/:id", itemHandler.DeleteItem)

	app.Get("/logs", requireAuth, logHandler.GetLogs)

	return app
}
