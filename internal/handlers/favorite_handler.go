package handlers

import (
	"errors"

	"starwars/internal/metrics"
	"starwars/internal/middleware"
	"starwars/internal/models"
	"starwars/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// FavoriteHandler handles adding and removing the current user's favorites.
type FavoriteHandler struct {
	service  *services.FavoriteService
	metrics  *metrics.Metrics
	validate *validator.Validate
	log      *logrus.Logger
}

// NewFavoriteHandler creates a new FavoriteHandler. m may be nil.
func NewFavoriteHandler(service *services.FavoriteService, m *metrics.Metrics, log *logrus.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service:  service,
		metrics:  m,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterRoutes registers the favorite routes behind currentUser.
func (h *FavoriteHandler) RegisterRoutes(router fiber.Router, currentUser fiber.Handler) {
	favoriteRoutes := router.Group("/favorite", currentUser)
	favoriteRoutes.Post("/planet/:planetId", h.HandleAddPlanet)
	favoriteRoutes.Delete("/planet/:planetId", h.HandleRemovePlanet)
	favoriteRoutes.Post("/people/:peopleId", h.HandleAddCharacter)
	favoriteRoutes.Delete("/people/:peopleId", h.HandleRemoveCharacter)
}

// HandleAddPlanet favorites a planet. 201 when added, 200 when it already was.
func (h *FavoriteHandler) HandleAddPlanet(c *fiber.Ctx) error {
	var params planetParams
	if ok, err := bindParams(c, h.validate, &params); !ok {
		return err
	}
	result, err := h.service.AddPlanet(c.UserContext(), middleware.UserID(c), params.PlanetID)
	return h.added(c, models.TargetPlanet, "Planet", result, err)
}

// HandleAddCharacter favorites a character. 201 when added, 200 when it already was.
func (h *FavoriteHandler) HandleAddCharacter(c *fiber.Ctx) error {
	var params peopleParams
	if ok, err := bindParams(c, h.validate, &params); !ok {
		return err
	}
	result, err := h.service.AddCharacter(c.UserContext(), middleware.UserID(c), params.PeopleID)
	return h.added(c, models.TargetCharacter, "Character", result, err)
}

// HandleRemovePlanet removes a favorite planet, 404 if it was not a favorite.
func (h *FavoriteHandler) HandleRemovePlanet(c *fiber.Ctx) error {
	var params planetParams
	if ok, err := bindParams(c, h.validate, &params); !ok {
		return err
	}
	err := h.service.RemovePlanet(c.UserContext(), middleware.UserID(c), params.PlanetID)
	return h.removed(c, models.TargetPlanet, "Planet", err)
}

// HandleRemoveCharacter removes a favorite character, 404 if it was not a favorite.
func (h *FavoriteHandler) HandleRemoveCharacter(c *fiber.Ctx) error {
	var params peopleParams
	if ok, err := bindParams(c, h.validate, &params); !ok {
		return err
	}
	err := h.service.RemoveCharacter(c.UserContext(), middleware.UserID(c), params.PeopleID)
	return h.removed(c, models.TargetCharacter, "Character", err)
}

func (h *FavoriteHandler) added(c *fiber.Ctx, kind models.TargetKind, label string, result services.AddResult, err error) error {
	if err != nil {
		if errors.Is(err, services.ErrTargetNotFound) || errors.Is(err, services.ErrUserNotFound) {
			h.metrics.RecordFavoriteChange(string(kind), metrics.OutcomeMissing)
		}
		return respondError(c, h.log, err, "Could not add favorite")
	}
	if !result.Created {
		h.metrics.RecordFavoriteChange(string(kind), metrics.OutcomeAlready)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": label + " is already a favorite",
		})
	}
	h.metrics.RecordFavoriteChange(string(kind), metrics.OutcomeAdded)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": label + " added to favorites",
	})
}

func (h *FavoriteHandler) removed(c *fiber.Ctx, kind models.TargetKind, label string, err error) error {
	if err != nil {
		if _, missing := notFoundMessage(err); missing {
			h.metrics.RecordFavoriteChange(string(kind), metrics.OutcomeMissing)
		}
		return respondError(c, h.log, err, "Could not remove favorite")
	}
	h.metrics.RecordFavoriteChange(string(kind), metrics.OutcomeRemoved)
	return c.JSON(fiber.Map{
		"message": label + " removed from favorites",
	})
}
