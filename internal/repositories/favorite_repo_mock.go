package repositories

import (
	"context"
	"fmt"
	"sync"

	"starwars/internal/models"
)

type favoriteKey struct {
	userID uint
	target models.FavoriteTarget
}

// MockFavoriteRepository is an in-memory implementation of FavoriteRepository.
// When catalog repositories are given, ListByUser fills in the targets the
// way the GORM preload does.
type MockFavoriteRepository struct {
	favorites  map[favoriteKey]models.Favorite
	order      []favoriteKey
	nextID     uint
	planets    PlanetRepository
	characters CharacterRepository
	mu         sync.RWMutex
}

// NewMockFavoriteRepository creates a new instance of MockFavoriteRepository.
// Either repository may be nil.
func NewMockFavoriteRepository(planets PlanetRepository, characters CharacterRepository) *MockFavoriteRepository {
	return &MockFavoriteRepository{
		favorites:  make(map[favoriteKey]models.Favorite),
		nextID:     1,
		planets:    planets,
		characters: characters,
	}
}

// ListByUser returns the user's favorites in insertion order.
func (r *MockFavoriteRepository) ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	r.mu.RLock()
	var favoriteList []models.Favorite
	for _, key := range r.order {
		if key.userID == userID {
			favoriteList = append(favoriteList, r.favorites[key])
		}
	}
	r.mu.RUnlock()

	for i := range favoriteList {
		if err := r.expand(ctx, &favoriteList[i]); err != nil {
			return nil, err
		}
	}
	return favoriteList, nil
}

func (r *MockFavoriteRepository) expand(ctx context.Context, fav *models.Favorite) error {
	if fav.PlanetID != nil && r.planets != nil {
		planet, err := r.planets.GetByID(ctx, *fav.PlanetID)
		if err != nil {
			return err
		}
		fav.Planet = planet
	}
	if fav.PeopleID != nil && r.characters != nil {
		character, err := r.characters.GetByID(ctx, *fav.PeopleID)
		if err != nil {
			return err
		}
		fav.Character = character
	}
	return nil
}

// Find returns the favorite linking userID to target.
func (r *MockFavoriteRepository) Find(ctx context.Context, userID uint, target models.FavoriteTarget) (*models.Favorite, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	fav, ok := r.favorites[favoriteKey{userID: userID, target: target}]
	if !ok {
		return nil, fmt.Errorf("favorite %s for user %d: %w", target, userID, ErrNotFound)
	}
	return &fav, nil
}

// CreateIfAbsent checks and inserts under one lock, matching the single
// conditional insert of the SQL implementation.
func (r *MockFavoriteRepository) CreateIfAbsent(ctx context.Context, fav *models.Favorite) (bool, error) {
	if err := fav.BeforeSave(nil); err != nil {
		return false, fmt.Errorf("failed to create favorite: %w", err)
	}
	target, _ := fav.Target()

	r.mu.Lock()
	defer r.mu.Unlock()

	key := favoriteKey{userID: fav.UserID, target: target}
	if _, exists := r.favorites[key]; exists {
		return false, nil
	}
	fav.ID = r.nextID
	r.nextID++
	r.favorites[key] = *fav
	r.order = append(r.order, key)
	return true, nil
}

// Delete removes the favorite linking userID to target.
func (r *MockFavoriteRepository) Delete(ctx context.Context, userID uint, target models.FavoriteTarget) error {
	if err := target.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := favoriteKey{userID: userID, target: target}
	if _, ok := r.favorites[key]; !ok {
		return fmt.Errorf("favorite %s for user %d: %w", target, userID, ErrNotFound)
	}
	delete(r.favorites, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored favorites.
func (r *MockFavoriteRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.favorites)
}
