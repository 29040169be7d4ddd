package database

import (
	"context"
	"fmt"

	"starwars/internal/models"
	"starwars/internal/repositories"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// SeedUserPassword is the plain password of the seeded user.
const SeedUserPassword = "maytheforce"

func strPtr(s string) *string { return &s }

// Seed populates empty tables with a default user and a small catalog.
// Tables that already hold rows are left alone.
func Seed(ctx context.Context, users repositories.UserRepository, planets repositories.PlanetRepository, characters repositories.CharacterRepository, log *logrus.Logger) error {
	existingUsers, err := users.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existingUsers) == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte(SeedUserPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user := &models.User{
			Email:            "luke@rebellion.org",
			Username:         "luke",
			Password:         string(hashed),
			SubscriptionDate: strPtr("1977-05-25"),
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		log.WithField("user_id", user.ID).Info("Seeded user")
	}

	existingPlanets, err := planets.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existingPlanets) == 0 {
		for _, p := range []models.Planet{
			{Name: "Tatooine", Description: strPtr("Desert world orbiting twin suns")},
			{Name: "Alderaan", Description: strPtr("Peaceful mountainous world")},
			{Name: "Hoth", Description: strPtr("Frozen planet, site of Echo Base")},
			{Name: "Dagobah", Description: strPtr("Swamp world in the Sluis sector")},
			{Name: "Endor"},
		} {
			planet := p
			if err := planets.Create(ctx, &planet); err != nil {
				return err
			}
		}
		log.Info("Seeded planets")
	}

	existingCharacters, err := characters.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existingCharacters) == 0 {
		for _, c := range []models.Character{
			{Name: "Luke Skywalker", Description: strPtr("Jedi Knight from Tatooine")},
			{Name: "Leia Organa", Description: strPtr("Princess of Alderaan")},
			{Name: "Han Solo", Description: strPtr("Smuggler, captain of the Millennium Falcon")},
			{Name: "Yoda", Description: strPtr("Jedi Master")},
		} {
			character := c
			if err := characters.Create(ctx, &character); err != nil {
				return err
			}
		}
		log.Info("Seeded characters")
	}
	return nil
}
