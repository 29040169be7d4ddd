// Package serializers maps models to the flat JSON shapes returned by the API.
// The functions are pure; nothing here touches the store.
package serializers

import "starwars/internal/models"

type PlanetResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type CharacterResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UserResponse has no password field, so no call site can leak it.
type UserResponse struct {
	ID               uint    `json:"id"`
	Email            string  `json:"email"`
	Username         string  `json:"username"`
	SubscriptionDate *string `json:"subscription_date"`
}

type UserSummaryResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// FavoriteResponse expands the target into its full representation.
// Exactly one of Planet and Personaje is non-nil for a valid favorite.
type FavoriteResponse struct {
	ID        uint               `json:"id"`
	UserID    uint               `json:"user_id"`
	Planet    *PlanetResponse    `json:"planet"`
	Personaje *CharacterResponse `json:"personaje"`
}

func Planet(p models.Planet) PlanetResponse {
	return PlanetResponse{ID: p.ID, Name: p.Name, Description: p.Description}
}

func Character(c models.Character) CharacterResponse {
	return CharacterResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

func User(u models.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Username:         u.Username,
		SubscriptionDate: u.SubscriptionDate,
	}
}

func UserSummary(u models.User) UserSummaryResponse {
	return UserSummaryResponse{ID: u.ID, Username: u.Username}
}

func Favorite(f models.Favorite) FavoriteResponse {
	out := FavoriteResponse{ID: f.ID, UserID: f.UserID}
	if f.Planet != nil {
		p := Planet(*f.Planet)
		out.Planet = &p
	}
	if f.Character != nil {
		c := Character(*f.Character)
		out.Personaje = &c
	}
	return out
}

func Planets(in []models.Planet) []PlanetResponse {
	out := make([]PlanetResponse, 0, len(in))
	for _, p := range in {
		out = append(out, Planet(p))
	}
	return out
}

func Characters(in []models.Character) []CharacterResponse {
	out := make([]CharacterResponse, 0, len(in))
	for _, c := range in {
		out = append(out, Character(c))
	}
	return out
}

func UserSummaries(in []models.User) []UserSummaryResponse {
	out := make([]UserSummaryResponse, 0, len(in))
	for _, u := range in {
		out = append(out, UserSummary(u))
	}
	return out
}

func Favorites(in []models.Favorite) []FavoriteResponse {
	out := make([]FavoriteResponse, 0, len(in))
	for _, f := range in {
		out = append(out, Favorite(f))
	}
	return out
}
