package main

import (
	"testing"

	"starwars/internal/config"
	"starwars/internal/events"
	"starwars/internal/identity"
	"starwars/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolver(t *testing.T) {
	log := logger.Discard()

	fixed := newResolver(config.Config{IdentityMode: config.IdentityFixed, CurrentUserID: 5}, log)
	assert.Equal(t, identity.FixedResolver{UserID: 5}, fixed)

	token := newResolver(config.Config{IdentityMode: config.IdentityToken, JWTSecret: "s"}, log)
	assert.IsType(t, &identity.TokenResolver{}, token)
}

func TestNewPublisher(t *testing.T) {
	log := logger.Discard()

	none := newPublisher(config.Config{EventsBroker: config.BrokerNone}, log)
	assert.Equal(t, events.NopPublisher{}, none)

	// The Kafka writer connects lazily, so no broker is needed here.
	kafka := newPublisher(config.Config{
		EventsBroker: config.BrokerKafka,
		KafkaBrokers: []string{"localhost:9092"},
		KafkaTopic:   "favorite-events",
	}, log)
	require.IsType(t, &events.BreakerPublisher{}, kafka)
	assert.NoError(t, kafka.Close())
}
