package repositories

import (
	"context"

	"starwars/internal/models"
)

// PlanetRepository defines the interface for planet data access.
// Planets are never updated or deleted through the API.
type PlanetRepository interface {
	GetAll(ctx context.Context) ([]models.Planet, error)
	GetByID(ctx context.Context, id uint) (*models.Planet, error)
	Create(ctx context.Context, planet *models.Planet) error
}

// CharacterRepository defines the interface for character data access.
type CharacterRepository interface {
	GetAll(ctx context.Context) ([]models.Character, error)
	GetByID(ctx context.Context, id uint) (*models.Character, error)
	Create(ctx context.Context, character *models.Character) error
}
