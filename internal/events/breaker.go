package events

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// BreakerPublisher stops calling a failing broker for a while so favorite
// requests are not slowed down by publish timeouts.
type BreakerPublisher struct {
	next    Publisher
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerPublisher wraps next. The breaker opens once at least three
// calls were made in the current interval and 60% of them failed.
func NewBreakerPublisher(name string, next Publisher, openFor time.Duration, log *logrus.Logger) *BreakerPublisher {
	return &BreakerPublisher{
		next: next,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     openFor,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.WithFields(logrus.Fields{
					"circuit_breaker": name,
					"from_state":      from.String(),
					"to_state":        to.String(),
				}).Warn("Circuit breaker state changed")
			},
		}),
	}
}

func (p *BreakerPublisher) Publish(ctx context.Context, event FavoriteEvent) error {
	_, err := p.breaker.Execute(func() (interface{}, error) {
		return nil, p.next.Publish(ctx, event)
	})
	return err
}

func (p *BreakerPublisher) Close() error {
	return p.next.Close()
}

// State reports the breaker state, mostly for tests and health output.
func (p *BreakerPublisher) State() gobreaker.State {
	return p.breaker.State()
}
