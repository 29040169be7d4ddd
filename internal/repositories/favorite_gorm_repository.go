package repositories

import (
	"context"
	"errors"
	"fmt"

	"starwars/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMFavoriteRepository is a GORM implementation of FavoriteRepository.
type GORMFavoriteRepository struct {
	db *gorm.DB
}

// NewGORMFavoriteRepository creates a new instance of GORMFavoriteRepository.
func NewGORMFavoriteRepository(db *gorm.DB) *GORMFavoriteRepository {
	return &GORMFavoriteRepository{
		db: db,
	}
}

// ListByUser retrieves the user's favorites with their targets preloaded.
func (r *GORMFavoriteRepository) ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.WithContext(ctx).
		Preload("Planet").
		Preload("Character").
		Where("user_id = ?", userID).
		Order("id").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites for user %d: %w", userID, err)
	}
	return favorites, nil
}

// Find retrieves the favorite linking userID to target, or ErrNotFound.
func (r *GORMFavoriteRepository) Find(ctx context.Context, userID uint, target models.FavoriteTarget) (*models.Favorite, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	var favorite models.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(target.Column()+" = ?", target.ID).
		First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("favorite %s for user %d: %w", target, userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find favorite %s for user %d: %w", target, userID, err)
	}
	return &favorite, nil
}

// CreateIfAbsent issues a single INSERT ... ON CONFLICT DO NOTHING, so two
// concurrent adds of the same pair leave exactly one row. A unique violation
// that still slips through is reported as "already present".
func (r *GORMFavoriteRepository) CreateIfAbsent(ctx context.Context, fav *models.Favorite) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(fav)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create favorite: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the favorite linking userID to target, or returns ErrNotFound.
func (r *GORMFavoriteRepository) Delete(ctx context.Context, userID uint, target models.FavoriteTarget) error {
	if err := target.Validate(); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(target.Column()+" = ?", target.ID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete favorite: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("favorite %s for user %d: %w", target, userID, ErrNotFound)
	}
	return nil
}
