package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"starwars/internal/app"
	"starwars/internal/cache"
	"starwars/internal/config"
	"starwars/internal/database"
	"starwars/internal/events"
	"starwars/internal/identity"
	"starwars/internal/logger"
	"starwars/internal/repositories"
	"starwars/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
)

const breakerOpenFor = 30 * time.Second

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.Environment)

	// --- Database ---
	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if cfg.SeedData {
		err := database.Seed(context.Background(),
			repositories.NewGORMUserRepository(db),
			repositories.NewGORMPlanetRepository(db),
			repositories.NewGORMCharacterRepository(db),
			log,
		)
		if err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// --- Catalog cache ---
	catalogCache, err := cache.NewRedisCache(cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.CacheTTL,
	}, log)
	if err != nil {
		// The catalog is served from the store when Redis is unavailable.
		log.WithError(err).Warn("Continuing without catalog cache")
		catalogCache = cache.Disabled(log)
	}

	// --- Favorite events ---
	publisher := newPublisher(cfg, log)

	// --- Fiber app ---
	server := app.New(app.NewDeps(db, catalogCache, publisher, newResolver(cfg, log), log))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithField("addr", cfg.ListenAddr()).Info("Starting server")
		if err := server.Listen(cfg.ListenAddr()); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Info("Shutting down server...")

	if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}
	if err := publisher.Close(); err != nil {
		log.WithError(err).Error("Error closing event publisher")
	}
	if err := catalogCache.Close(); err != nil {
		log.WithError(err).Error("Error closing catalog cache")
	}
	if err := database.Close(db); err != nil {
		log.WithError(err).Error("Error closing database")
	}
	log.Info("Server gracefully stopped")
}

func newResolver(cfg config.Config, log *logrus.Logger) identity.Resolver {
	if cfg.IdentityMode == config.IdentityToken {
		log.Info("Resolving the current user from bearer tokens")
		return identity.NewTokenResolver(cfg.JWTSecret)
	}
	log.WithField("user_id", cfg.CurrentUserID).Info("Resolving every request to a fixed user")
	return identity.FixedResolver{UserID: cfg.CurrentUserID}
}

// newPublisher connects the configured broker. Favorites keep working without
// one, so a broker that cannot be reached only disables events.
func newPublisher(cfg config.Config, log *logrus.Logger) events.Publisher {
	var next events.Publisher
	switch cfg.EventsBroker {
	case config.BrokerAMQP:
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			log.WithError(err).Error("Failed to initialize RabbitMQ client, favorite events disabled")
			return events.NopPublisher{}
		}
		// Consume our own queue so published events show up in the logs.
		if err := mqClient.Consume(events.LogHandler(log)); err != nil {
			log.WithError(err).Error("Failed to start RabbitMQ consumer")
		}
		next = events.NewAMQPPublisher(mqClient)
	case config.BrokerKafka:
		log.WithFields(logrus.Fields{
			"brokers": cfg.KafkaBrokers,
			"topic":   cfg.KafkaTopic,
		}).Info("Publishing favorite events to Kafka")
		next = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	default:
		return events.NopPublisher{}
	}
	return events.NewBreakerPublisher(cfg.EventsBroker, next, breakerOpenFor, log)
}
