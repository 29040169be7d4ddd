// Package app assembles the Fiber application from its services.
package app

import (
	"context"
	"errors"

	"starwars/internal/cache"
	"starwars/internal/database"
	"starwars/internal/events"
	"starwars/internal/handlers"
	"starwars/internal/identity"
	"starwars/internal/metrics"
	"starwars/internal/middleware"
	"starwars/internal/repositories"
	"starwars/internal/services"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps is everything New needs to serve requests.
type Deps struct {
	Catalog   *services.CatalogService
	Users     *services.UserService
	Favorites *services.FavoriteService
	Resolver  identity.Resolver
	Metrics   *metrics.Metrics
	Ping      func(ctx context.Context) error
	Log       *logrus.Logger
}

// NewDeps wires the GORM repositories and services over db. c and publisher
// may be nil.
func NewDeps(db *gorm.DB, c cache.Cache, publisher events.Publisher, resolver identity.Resolver, log *logrus.Logger) Deps {
	userRepo := repositories.NewGORMUserRepository(db)
	planetRepo := repositories.NewGORMPlanetRepository(db)
	characterRepo := repositories.NewGORMCharacterRepository(db)
	favoriteRepo := repositories.NewGORMFavoriteRepository(db)

	return Deps{
		Catalog:   services.NewCatalogService(planetRepo, characterRepo, c, log),
		Users:     services.NewUserService(userRepo),
		Favorites: services.NewFavoriteService(userRepo, planetRepo, characterRepo, favoriteRepo, publisher, log),
		Resolver:  resolver,
		Metrics:   metrics.New(),
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
		Log: log,
	}
}

// New builds the Fiber app with middleware and every route registered.
func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "starwars",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(deps.Log),
	})

	logWriter := deps.Log.Writer()
	app.Hooks().OnShutdown(func() error {
		return logWriter.Close()
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Output: logWriter,
		Format: "${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}

	currentUser := middleware.CurrentUser(deps.Resolver, deps.Log)

	// --- Routes ---
	handlers.NewSystemHandler(deps.Ping, deps.Log).RegisterRoutes(app)
	handlers.NewCatalogHandler(deps.Catalog, deps.Log).RegisterRoutes(app)
	handlers.NewUserHandler(deps.Users, deps.Favorites, deps.Log).RegisterRoutes(app, currentUser)
	handlers.NewFavoriteHandler(deps.Favorites, deps.Metrics, deps.Log).RegisterRoutes(app, currentUser)

	return app
}

// errorHandler renders errors no handler answered, including unknown routes
// and recovered panics.
func errorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("Unhandled request error")
		}
		return c.Status(code).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
}
