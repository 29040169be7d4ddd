package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrInvalidTarget is returned for a favorite that does not point at exactly
// one planet or character.
var ErrInvalidTarget = errors.New("invalid favorite target")

// TargetKind names the entity type a favorite points at.
type TargetKind string

const (
	TargetPlanet    TargetKind = "planet"
	TargetCharacter TargetKind = "character"
)

// FavoriteTarget identifies the planet or character a favorite points at.
type FavoriteTarget struct {
	Kind TargetKind
	ID   uint
}

func PlanetTarget(id uint) FavoriteTarget {
	return FavoriteTarget{Kind: TargetPlanet, ID: id}
}

func CharacterTarget(id uint) FavoriteTarget {
	return FavoriteTarget{Kind: TargetCharacter, ID: id}
}

// Validate checks that the target has a known kind and a positive id.
func (t FavoriteTarget) Validate() error {
	if t.Kind != TargetPlanet && t.Kind != TargetCharacter {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidTarget, t.Kind)
	}
	if t.ID == 0 {
		return fmt.Errorf("%w: %s id must be positive", ErrInvalidTarget, t.Kind)
	}
	return nil
}

// Column returns the favorito column holding this kind of target.
func (t FavoriteTarget) Column() string {
	if t.Kind == TargetCharacter {
		return "people_id"
	}
	return "planet_id"
}

func (t FavoriteTarget) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}

// Favorite links a user to exactly one planet or character. The target is
// stored as two nullable columns; exactly one of them is set.
type Favorite struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"not null;index;uniqueIndex:idx_favorito_user_planet,priority:1;uniqueIndex:idx_favorito_user_people,priority:1"`
	PlanetID  *uint      `json:"planet_id" gorm:"uniqueIndex:idx_favorito_user_planet,priority:2"`
	PeopleID  *uint      `json:"people_id" gorm:"uniqueIndex:idx_favorito_user_people,priority:2"`
	CreatedAt time.Time  `json:"created_at"`
	Planet    *Planet    `json:"planet,omitempty" gorm:"foreignKey:PlanetID"`
	Character *Character `json:"personaje,omitempty" gorm:"foreignKey:PeopleID"`
}

func (Favorite) TableName() string {
	return "favorito"
}

// NewFavorite builds an unsaved favorite for userID pointing at target.
func NewFavorite(userID uint, target FavoriteTarget) (*Favorite, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	id := target.ID
	fav := &Favorite{UserID: userID}
	switch target.Kind {
	case TargetPlanet:
		fav.PlanetID = &id
	case TargetCharacter:
		fav.PeopleID = &id
	}
	return fav, nil
}

// Target returns the planet or character this favorite points at.
func (f *Favorite) Target() (FavoriteTarget, error) {
	switch {
	case f.PlanetID != nil && f.PeopleID != nil:
		return FavoriteTarget{}, fmt.Errorf("%w: both planet and character set", ErrInvalidTarget)
	case f.PlanetID != nil:
		return PlanetTarget(*f.PlanetID), nil
	case f.PeopleID != nil:
		return CharacterTarget(*f.PeopleID), nil
	default:
		return FavoriteTarget{}, fmt.Errorf("%w: neither planet nor character set", ErrInvalidTarget)
	}
}

// BeforeSave rejects rows that would break the exactly-one-target rule.
func (f *Favorite) BeforeSave(tx *gorm.DB) error {
	if f.UserID == 0 {
		return fmt.Errorf("%w: user id must be positive", ErrInvalidTarget)
	}
	_, err := f.Target()
	return err
}
