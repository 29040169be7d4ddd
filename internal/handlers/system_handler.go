package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const healthTimeout = 2 * time.Second

// SystemHandler serves the route sitemap and the health check.
type SystemHandler struct {
	ping func(ctx context.Context) error
	log  *logrus.Logger
}

// NewSystemHandler creates a new SystemHandler. ping checks the store.
func NewSystemHandler(ping func(ctx context.Context) error, log *logrus.Logger) *SystemHandler {
	return &SystemHandler{
		ping: ping,
		log:  log,
	}
}

// RegisterRoutes registers the sitemap and health routes with the Fiber app.
func (h *SystemHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleSitemap)
	router.Get("/health", h.HandleHealth)
}

type routeEntry struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// HandleSitemap lists every registered route.
func (h *SystemHandler) HandleSitemap(c *fiber.Ctx) error {
	seen := make(map[routeEntry]bool)
	routes := make([]routeEntry, 0)
	for _, r := range c.App().GetRoutes(true) {
		// HEAD is registered implicitly for every GET.
		if r.Method == fiber.MethodHead {
			continue
		}
		entry := routeEntry{Method: r.Method, Path: r.Path}
		if seen[entry] {
			continue
		}
		seen[entry] = true
		routes = append(routes, entry)
	}
	return c.JSON(fiber.Map{
		"routes": routes,
	})
}

// HandleHealth reports whether the store answers.
func (h *SystemHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	if h.ping != nil {
		if err := h.ping(ctx); err != nil {
			h.log.WithError(err).Warn("Health check failed")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
