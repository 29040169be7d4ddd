// Package events publishes favorite state changes to a message broker.
package events

import (
	"context"
	"time"

	"starwars/internal/models"
)

type EventType string

const (
	FavoriteAdded   EventType = "favorite.added"
	FavoriteRemoved EventType = "favorite.removed"
)

// FavoriteEvent is the JSON payload sent for every favorite change.
type FavoriteEvent struct {
	Type       EventType `json:"type"`
	UserID     uint      `json:"user_id"`
	TargetKind string    `json:"target_kind"`
	TargetID   uint      `json:"target_id"`
	Timestamp  string    `json:"timestamp"`
}

func NewFavoriteEvent(eventType EventType, userID uint, target models.FavoriteTarget) FavoriteEvent {
	return FavoriteEvent{
		Type:       eventType,
		UserID:     userID,
		TargetKind: string(target.Kind),
		TargetID:   target.ID,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

// Publisher delivers favorite events.
type Publisher interface {
	Publish(ctx context.Context, event FavoriteEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, FavoriteEvent) error { return nil }
func (NopPublisher) Close() error                                { return nil }
