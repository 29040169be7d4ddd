package handlers

import (
	"starwars/internal/serializers"
	"starwars/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CatalogHandler handles HTTP requests for planets and characters.
type CatalogHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
	log      *logrus.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, log *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/people", h.HandleGetCharacters)
	router.Get("/people/:id", h.HandleGetCharacterByID)
	router.Get("/planets", h.HandleGetPlanets)
	router.Get("/planets/:id", h.HandleGetPlanetByID)
}

// HandleGetCharacters retrieves all characters.
func (h *CatalogHandler) HandleGetCharacters(c *fiber.Ctx) error {
	characters, err := h.service.ListCharacters(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "Could not retrieve characters")
	}
	return c.JSON(serializers.Characters(characters))
}

// HandleGetCharacterByID retrieves a single character by its ID.
func (h *CatalogHandler) HandleGetCharacterByID(c *fiber.Ctx) error {
	var params idParams
	if ok, err := bindParams(c, h.validate, &params); !ok {
		return err
	}
	character, err := h.service.GetCharacter(c.UserContext(), params.ID)
	if err != nil {
		return respondError(c, h.log, err, "Could not retrieve character")
	}
	return c.JSON(serializers.Character(*character))
}

// HandleGetPlanets retrieves all planets.
func (h *CatalogHandler) HandleGetPlanets(c *fiber.Ctx) error {
	planets, err := h.service.ListPlanets(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "Could not retrieve planets")
	}
	return c.JSON(serializers.Planets(planets))
}

// HandleGetPlanetByID retrieves a single planet by its ID.
func (h *CatalogHandler) HandleGetPlanetByID(c *fiber.Ctx) error {
	var params idParams
	if ok, err := bindParams(c, h.validate, &params); !ok {
		return err
	}
	planet, err := h.service.GetPlanet(c.UserContext(), params.ID)
	if err != nil {
		return respondError(c, h.log, err, "Could not retrieve planet")
	}
	return c.JSON(serializers.Planet(*planet))
}
