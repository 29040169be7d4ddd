package repositories

import (
	"context"

	"starwars/internal/models"
)

// FavoriteRepository defines the interface for favorite data access.
type FavoriteRepository interface {
	// ListByUser returns the user's favorites in insertion order with their
	// planet or character loaded.
	ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error)
	Find(ctx context.Context, userID uint, target models.FavoriteTarget) (*models.Favorite, error)
	// CreateIfAbsent inserts fav unless the user already has the same target.
	// created is false when the row already existed.
	CreateIfAbsent(ctx context.Context, fav *models.Favorite) (created bool, err error)
	Delete(ctx context.Context, userID uint, target models.FavoriteTarget) error
}
