package models_test

import (
	"testing"

	"starwars/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFavorite_SetsExactlyOneColumn(t *testing.T) {
	fav, err := models.NewFavorite(1, models.PlanetTarget(7))
	require.NoError(t, err)
	require.NotNil(t, fav.PlanetID)
	assert.Equal(t, uint(7), *fav.PlanetID)
	assert.Nil(t, fav.PeopleID)

	fav, err = models.NewFavorite(1, models.CharacterTarget(3))
	require.NoError(t, err)
	require.NotNil(t, fav.PeopleID)
	assert.Equal(t, uint(3), *fav.PeopleID)
	assert.Nil(t, fav.PlanetID)

	target, err := fav.Target()
	require.NoError(t, err)
	assert.Equal(t, models.CharacterTarget(3), target)
	assert.Equal(t, "people_id", target.Column())
}

func TestNewFavorite_RejectsInvalidTargets(t *testing.T) {
	_, err := models.NewFavorite(1, models.PlanetTarget(0))
	assert.ErrorIs(t, err, models.ErrInvalidTarget)

	_, err = models.NewFavorite(1, models.FavoriteTarget{Kind: "starship", ID: 4})
	assert.ErrorIs(t, err, models.ErrInvalidTarget)
}

func TestFavoriteTarget_RequiresExactlyOne(t *testing.T) {
	one, two := uint(1), uint(2)

	_, err := (&models.Favorite{UserID: 1}).Target()
	assert.ErrorIs(t, err, models.ErrInvalidTarget)

	_, err = (&models.Favorite{UserID: 1, PlanetID: &one, PeopleID: &two}).Target()
	assert.ErrorIs(t, err, models.ErrInvalidTarget)

	assert.ErrorIs(t, (&models.Favorite{PlanetID: &one}).BeforeSave(nil), models.ErrInvalidTarget)
	assert.NoError(t, (&models.Favorite{UserID: 1, PlanetID: &one}).BeforeSave(nil))
}
