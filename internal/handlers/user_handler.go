package handlers

import (
	"starwars/internal/middleware"
	"starwars/internal/serializers"
	"starwars/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// UserHandler handles HTTP requests for users and the current user's
// favorites.
type UserHandler struct {
	users     *services.UserService
	favorites *services.FavoriteService
	log       *logrus.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *services.UserService, favorites *services.FavoriteService, log *logrus.Logger) *UserHandler {
	return &UserHandler{
		users:     users,
		favorites: favorites,
		log:       log,
	}
}

// RegisterRoutes registers the user routes. currentUser must populate the
// user id read by HandleGetFavorites.
func (h *UserHandler) RegisterRoutes(router fiber.Router, currentUser fiber.Handler) {
	router.Get("/users", h.HandleGetUsers)
	router.Get("/users/favorites", currentUser, h.HandleGetFavorites)
}

// HandleGetUsers lists every user as {id, username}.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "Could not retrieve users")
	}
	return c.JSON(serializers.UserSummaries(users))
}

// HandleGetFavorites lists the current user's favorites with their targets.
func (h *UserHandler) HandleGetFavorites(c *fiber.Ctx) error {
	favorites, err := h.favorites.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err, "Could not retrieve favorites")
	}
	return c.JSON(fiber.Map{
		"favorites": serializers.Favorites(favorites),
	})
}
