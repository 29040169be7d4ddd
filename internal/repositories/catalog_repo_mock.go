package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"starwars/internal/models"
)

// MockPlanetRepository is an in-memory implementation of PlanetRepository.
type MockPlanetRepository struct {
	planets map[uint]models.Planet
	nextID  uint
	mu      sync.RWMutex
}

// NewMockPlanetRepository creates a new instance of MockPlanetRepository.
func NewMockPlanetRepository() *MockPlanetRepository {
	return &MockPlanetRepository{
		planets: make(map[uint]models.Planet),
		nextID:  1,
	}
}

// GetAll returns all planets ordered by id.
func (r *MockPlanetRepository) GetAll(ctx context.Context) ([]models.Planet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	planetList := make([]models.Planet, 0, len(r.planets))
	for _, p := range r.planets {
		planetList = append(planetList, p)
	}
	sort.Slice(planetList, func(i, j int) bool { return planetList[i].ID < planetList[j].ID })
	return planetList, nil
}

// GetByID returns a planet by its ID.
func (r *MockPlanetRepository) GetByID(ctx context.Context, id uint) (*models.Planet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	planet, ok := r.planets[id]
	if !ok {
		return nil, fmt.Errorf("planet with ID %d: %w", id, ErrNotFound)
	}
	return &planet, nil
}

// Create adds a new planet, assigning an id when none is set.
func (r *MockPlanetRepository) Create(ctx context.Context, planet *models.Planet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if planet.ID == 0 {
		planet.ID = r.nextID
	}
	if planet.ID >= r.nextID {
		r.nextID = planet.ID + 1
	}
	r.planets[planet.ID] = *planet
	return nil
}

// MockCharacterRepository is an in-memory implementation of CharacterRepository.
type MockCharacterRepository struct {
	characters map[uint]models.Character
	nextID     uint
	mu         sync.RWMutex
}

// NewMockCharacterRepository creates a new instance of MockCharacterRepository.
func NewMockCharacterRepository() *MockCharacterRepository {
	return &MockCharacterRepository{
		characters: make(map[uint]models.Character),
		nextID:     1,
	}
}

// GetAll returns all characters ordered by id.
func (r *MockCharacterRepository) GetAll(ctx context.Context) ([]models.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	characterList := make([]models.Character, 0, len(r.characters))
	for _, c := range r.characters {
		characterList = append(characterList, c)
	}
	sort.Slice(characterList, func(i, j int) bool { return characterList[i].ID < characterList[j].ID })
	return characterList, nil
}

// GetByID returns a character by its ID.
func (r *MockCharacterRepository) GetByID(ctx context.Context, id uint) (*models.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	character, ok := r.characters[id]
	if !ok {
		return nil, fmt.Errorf("character with ID %d: %w", id, ErrNotFound)
	}
	return &character, nil
}

// Create adds a new character, assigning an id when none is set.
func (r *MockCharacterRepository) Create(ctx context.Context, character *models.Character) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if character.ID == 0 {
		character.ID = r.nextID
	}
	if character.ID >= r.nextID {
		r.nextID = character.ID + 1
	}
	r.characters[character.ID] = *character
	return nil
}
