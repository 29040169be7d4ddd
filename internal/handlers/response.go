package handlers

import (
	"errors"
	"fmt"

	"starwars/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Path parameters. Each struct names the route parameter it binds.
type idParams struct {
	ID uint `params:"id" validate:"required,gt=0"`
}

type planetParams struct {
	PlanetID uint `params:"planetId" validate:"required,gt=0"`
}

type peopleParams struct {
	PeopleID uint `params:"peopleId" validate:"required,gt=0"`
}

// bindParams parses route parameters into out and validates them. It writes
// the 400 response itself and reports whether the handler may continue.
func bindParams(c *fiber.Ctx, validate *validator.Validate, out interface{}) (bool, error) {
	if err := c.ParamsParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid path parameter",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(out); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return true, nil
}

// notFoundMessage maps service not-found errors to their response message.
func notFoundMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, services.ErrPlanetNotFound):
		return "Planet not found", true
	case errors.Is(err, services.ErrCharacterNotFound):
		return "Character not found", true
	case errors.Is(err, services.ErrFavoriteNotFound):
		return "Favorite not found", true
	case errors.Is(err, services.ErrUserNotFound):
		return "User not found", true
	}
	return "", false
}

// respondError renders a service error: 404 for missing records, 400 for
// invalid input and 500 with the error text for anything else.
func respondError(c *fiber.Ctx, log *logrus.Logger, err error, fallback string) error {
	if msg, ok := notFoundMessage(err); ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": msg,
		})
	}
	if errors.Is(err, services.ErrInvalidTarget) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	log.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error(fallback)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fallback,
		"error":   err.Error(),
	})
}
