package config_test

import (
	"testing"
	"time"

	"starwars/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.ListenAddr())
	assert.False(t, cfg.UsesPostgres())
	assert.Equal(t, "/tmp/test.db", cfg.SQLitePath)
	assert.Equal(t, config.IdentityFixed, cfg.IdentityMode)
	assert.Equal(t, uint(1), cfg.CurrentUserID)
	assert.Equal(t, config.BrokerNone, cfg.EventsBroker)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.SeedData)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("PORT", ":8081")
	v.Set("DATABASE_URL", "postgres://u:p@localhost:5432/db")
	v.Set("IDENTITY_MODE", "TOKEN")
	v.Set("EVENTS_BROKER", "kafka")
	v.Set("KAFKA_BROKERS", "k1:9092, k2:9092,")
	v.Set("REDIS_ADDR", "localhost:6379")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.ListenAddr())
	assert.True(t, cfg.UsesPostgres())
	assert.Equal(t, config.IdentityToken, cfg.IdentityMode)
	assert.Equal(t, config.BrokerKafka, cfg.EventsBroker)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.CacheEnabled())
}

func TestFromViper_Rejects(t *testing.T) {
	cases := map[string]map[string]interface{}{
		"identity mode":   {"IDENTITY_MODE": "cookie"},
		"events broker":   {"EVENTS_BROKER": "nats"},
		"fixed user zero": {"CURRENT_USER_ID": 0},
	}
	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			config.SetDefaults(v)
			for k, val := range overrides {
				v.Set(k, val)
			}
			_, err := config.FromViper(v)
			assert.Error(t, err)
		})
	}
}
