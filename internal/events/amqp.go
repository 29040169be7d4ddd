package events

import (
	"context"
	"encoding/json"
	"fmt"

	"starwars/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// AMQPPublisher sends favorite events to a RabbitMQ queue.
type AMQPPublisher struct {
	client *rabbitmq.Client
}

func NewAMQPPublisher(client *rabbitmq.Client) *AMQPPublisher {
	return &AMQPPublisher{client: client}
}

func (p *AMQPPublisher) Publish(ctx context.Context, event FavoriteEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal favorite event: %w", err)
	}
	return p.client.PublishJSON(body)
}

func (p *AMQPPublisher) Close() error {
	return p.client.Close()
}

// LogHandler returns a consumer handler that decodes favorite events and
// logs them. Undecodable messages are logged and acked so they are not
// redelivered forever.
func LogHandler(log *logrus.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event FavoriteEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			log.WithError(err).WithField("delivery_tag", msg.DeliveryTag).Warn("Dropping malformed favorite event")
			return nil
		}
		log.WithFields(logrus.Fields{
			"type":        event.Type,
			"user_id":     event.UserID,
			"target_kind": event.TargetKind,
			"target_id":   event.TargetID,
		}).Info("Received favorite event")
		return nil
	}
}
