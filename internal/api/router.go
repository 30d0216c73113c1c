package api

import (
	"errors"
	"time"

	"fintrack/docs"
	"fintrack/internal/api/handlers"
	"fintrack/pkg/auth"
	"fintrack/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Transaction *handlers.TransactionHandler
	Summary     *handlers.SummaryHandler
	Category    *handlers.CategoryHandler
	User        *handlers.UserHandler
	Health      *handlers.HealthHandler
}

type Options struct {
	CORSOrigins  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// AuthRequired rejects /api/v1 requests without a valid bearer token.
	AuthRequired bool
}

func SetupRouter(h Handlers, jwtManager *auth.JWTManager, opts Options, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			} else {
				appLogger.Error("Unhandled error", zap.Error(err), zap.String("path", c.Path()))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// importing docs registers the OpenAPI document with swag
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/healthz", h.Health.Live)
	app.Get("/readyz", h.Health.Ready)

	v1 := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, opts.AuthRequired, appLogger))

	transactions := v1.Group("/transactions")
	transactions.Get("", h.Transaction.ListTransactions)
	transactions.Post("", h.Transaction.CreateTransaction)
	transactions.Get("/:id", h.Transaction.GetTransaction)
	transactions.Put("/:id", h.Transaction.UpdateTransaction)
	transactions.Delete("/:id", h.Transaction.DeleteTransaction)

	v1.Get("/summary/:userId", h.Summary.GetBalanceSummary)
	v1.Get("/category-total/:categoryId/:userId", h.Summary.GetCategoryTotal)
	v1.Get("/reports/:userId", h.Summary.GetReport)

	categories := v1.Group("/categories")
	categories.Get("", h.Category.ListCategories)
	categories.Post("", h.Category.CreateCategory)
	categories.Get("/:id", h.Category.GetCategory)
	categories.Put("/:id", h.Category.UpdateCategory)
	categories.Delete("/:id", h.Category.DeleteCategory)

	users := v1.Group("/users")
	users.Get("", h.User.ListUsers)
	users.Post("", h.User.CreateUser)
	users.Get("/:id", h.User.GetUser)
	users.Put("/:id", h.User.UpdateUser)

	v1.Get("/me", h.User.GetCurrentUser)

	return app
}
