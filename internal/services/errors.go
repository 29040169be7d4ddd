package services

import (
	"errors"

	"starwars/internal/models"
)

var (
	ErrPlanetNotFound    = errors.New("planet not found")
	ErrCharacterNotFound = errors.New("character not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrFavoriteNotFound  = errors.New("favorite not found")
	// ErrTargetNotFound wraps ErrPlanetNotFound or ErrCharacterNotFound
	// when a favorite points at a missing catalog entry.
	ErrTargetNotFound = errors.New("favorite target not found")
	ErrInvalidTarget  = models.ErrInvalidTarget
)
