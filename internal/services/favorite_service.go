package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"starwars/internal/events"
	"starwars/internal/models"
	"starwars/internal/repositories"

	"github.com/sirupsen/logrus"
)

const publishTimeout = 2 * time.Second

// AddResult reports whether an add created a row or found it already there.
type AddResult struct {
	Created bool
}

// FavoriteService handles business logic for a user's favorite planets and
// characters. Every operation is scoped to the user id it is given.
//
// Per (user, target) pair: absent -add-> favorited -remove-> absent. Adding
// again is a no-op reporting Created=false; removing an absent pair returns
// ErrFavoriteNotFound.
type FavoriteService struct {
	users      repositories.UserRepository
	planets    repositories.PlanetRepository
	characters repositories.CharacterRepository
	favorites  repositories.FavoriteRepository
	publisher  events.Publisher
	log        *logrus.Logger
}

// NewFavoriteService creates a new FavoriteService. publisher may be nil.
func NewFavoriteService(
	users repositories.UserRepository,
	planets repositories.PlanetRepository,
	characters repositories.CharacterRepository,
	favorites repositories.FavoriteRepository,
	publisher events.Publisher,
	log *logrus.Logger,
) *FavoriteService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &FavoriteService{
		users:      users,
		planets:    planets,
		characters: characters,
		favorites:  favorites,
		publisher:  publisher,
		log:        log,
	}
}

// List returns the user's favorites in insertion order. A user with no
// favorites gets an empty slice.
func (s *FavoriteService) List(ctx context.Context, userID uint) ([]models.Favorite, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	return favorites, nil
}

func (s *FavoriteService) AddPlanet(ctx context.Context, userID, planetID uint) (AddResult, error) {
	return s.add(ctx, userID, models.PlanetTarget(planetID))
}

func (s *FavoriteService) AddCharacter(ctx context.Context, userID, peopleID uint) (AddResult, error) {
	return s.add(ctx, userID, models.CharacterTarget(peopleID))
}

func (s *FavoriteService) RemovePlanet(ctx context.Context, userID, planetID uint) error {
	return s.remove(ctx, userID, models.PlanetTarget(planetID))
}

func (s *FavoriteService) RemoveCharacter(ctx context.Context, userID, peopleID uint) error {
	return s.remove(ctx, userID, models.CharacterTarget(peopleID))
}

func (s *FavoriteService) add(ctx context.Context, userID uint, target models.FavoriteTarget) (AddResult, error) {
	fav, err := models.NewFavorite(userID, target)
	if err != nil {
		return AddResult{}, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return AddResult{}, err
	}
	if err := s.ensureTarget(ctx, target); err != nil {
		return AddResult{}, err
	}

	created, err := s.favorites.CreateIfAbsent(ctx, fav)
	if err != nil {
		return AddResult{}, err
	}

	fields := logrus.Fields{"user_id": userID, "target": target.String()}
	if !created {
		s.log.WithFields(fields).Debug("Favorite already present")
		return AddResult{Created: false}, nil
	}
	s.log.WithFields(fields).Info("Favorite added")
	s.publish(ctx, events.NewFavoriteEvent(events.FavoriteAdded, userID, target))
	return AddResult{Created: true}, nil
}

func (s *FavoriteService) remove(ctx context.Context, userID uint, target models.FavoriteTarget) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	if err := s.favorites.Delete(ctx, userID, target); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrFavoriteNotFound, err)
		}
		return err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "target": target.String()}).Info("Favorite removed")
	s.publish(ctx, events.NewFavoriteEvent(events.FavoriteRemoved, userID, target))
	return nil
}

func (s *FavoriteService) ensureUser(ctx context.Context, userID uint) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrUserNotFound, err)
		}
		return err
	}
	return nil
}

func (s *FavoriteService) ensureTarget(ctx context.Context, target models.FavoriteTarget) error {
	var err error
	var missing error
	switch target.Kind {
	case models.TargetPlanet:
		_, err = s.planets.GetByID(ctx, target.ID)
		missing = ErrPlanetNotFound
	case models.TargetCharacter:
		_, err = s.characters.GetByID(ctx, target.ID)
		missing = ErrCharacterNotFound
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: %w", ErrTargetNotFound, missing)
		}
		return err
	}
	return nil
}

// publish is best effort: the favorite is already stored, so a broker
// failure is logged and never returned to the caller.
func (s *FavoriteService) publish(ctx context.Context, event events.FavoriteEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"type":    event.Type,
			"user_id": event.UserID,
		}).Warn("Failed to publish favorite event")
	}
}
