package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"starwars/internal/cache"
	"starwars/internal/models"
	"starwars/internal/repositories"

	"github.com/sirupsen/logrus"
)

// CatalogService serves planets and characters. Both are immutable through
// the API, so reads go through the cache when one is configured.
type CatalogService struct {
	planets    repositories.PlanetRepository
	characters repositories.CharacterRepository
	cache      cache.Cache
	log        *logrus.Logger
}

// NewCatalogService creates a new CatalogService. c may be nil.
func NewCatalogService(planets repositories.PlanetRepository, characters repositories.CharacterRepository, c cache.Cache, log *logrus.Logger) *CatalogService {
	return &CatalogService{
		planets:    planets,
		characters: characters,
		cache:      c,
		log:        log,
	}
}

// ListPlanets retrieves all planets.
func (s *CatalogService) ListPlanets(ctx context.Context) ([]models.Planet, error) {
	var planets []models.Planet
	if s.fromCache(ctx, cache.PlanetsKey, &planets) {
		return planets, nil
	}
	planets, err := s.planets.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, cache.PlanetsKey, planets)
	return planets, nil
}

// GetPlanet retrieves a planet by id, or ErrPlanetNotFound.
func (s *CatalogService) GetPlanet(ctx context.Context, id uint) (*models.Planet, error) {
	key := cache.PlanetPrefix + strconv.FormatUint(uint64(id), 10)
	var cached models.Planet
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}
	planet, err := s.planets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrPlanetNotFound, err)
		}
		return nil, err
	}
	s.toCache(ctx, key, planet)
	return planet, nil
}

// ListCharacters retrieves all characters.
func (s *CatalogService) ListCharacters(ctx context.Context) ([]models.Character, error) {
	var characters []models.Character
	if s.fromCache(ctx, cache.CharactersKey, &characters) {
		return characters, nil
	}
	characters, err := s.characters.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, cache.CharactersKey, characters)
	return characters, nil
}

// GetCharacter retrieves a character by id, or ErrCharacterNotFound.
func (s *CatalogService) GetCharacter(ctx context.Context, id uint) (*models.Character, error) {
	key := cache.CharacterPrefix + strconv.FormatUint(uint64(id), 10)
	var cached models.Character
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}
	character, err := s.characters.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrCharacterNotFound, err)
		}
		return nil, err
	}
	s.toCache(ctx, key, character)
	return character, nil
}

// fromCache reports whether key was found and decoded into dest. Cache
// failures only cost a trip to the store.
func (s *CatalogService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) && !errors.Is(err, cache.ErrCacheDisabled) {
		s.log.WithError(err).WithField("key", key).Warn("Catalog cache read failed")
	}
	return false
}

func (s *CatalogService) toCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
		s.log.WithError(err).WithField("key", key).Warn("Catalog cache write failed")
	}
}
