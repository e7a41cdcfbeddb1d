package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/xaabbigautam/Work-Tracker/internal/config"
	"github.com/xaabbigautam/Work-Tracker/internal/handlers"
	"github.com/xaabbigautam/Work-Tracker/internal/middleware"
	"github.com/xaabbigautam/Work-Tracker/internal/models"
	"github.com/xaabbigautam/Work-Tracker/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	taskHandler *handlers.TaskHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Login gets a stricter limit than the rest of the API: 10 req/min per IP
	api.Post("/login", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), authHandler.Login)
	api.Post("/logout", authHandler.Logout)
	api.Get("/session", authHandler.Session)

	tasks := api.Group("/tasks", middleware.SessionProtected(authService))

	// Static paths before the :id routes so fiber matches them first.
	tasks.Get("/stats", taskHandler.Stats)
	tasks.Get("/users", authHandler.ListUsers)
	tasks.Get("/export/excel", taskHandler.ExportExcel)

	tasks.Get("/", taskHandler.List)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/:id/logs", taskHandler.Logs)
	tasks.Post("/:id/approve",
		middleware.RequireRole("Only admins can approve tasks", models.RoleAdmin, models.RoleSystemAdmin),
		taskHandler.Approve)
	tasks.Post("/:id/assign",
		middleware.RequireRole("Only admins can assign tasks", models.RoleAdmin, models.RoleSystemAdmin),
		taskHandler.Assign)
	tasks.Post("/:id/complete", taskHandler.Complete)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id",
		middleware.RequireRole("Only system admin can delete tasks", models.RoleSystemAdmin),
		taskHandler.Delete)
}
