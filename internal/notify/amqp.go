package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const routingKey = "invalidation"

// AMQPPublisher forwards invalidations to a fanout exchange so other
// processes can refresh their views.
type AMQPPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

// Publish is a SubscriberFunc.
func (p *AMQPPublisher) Publish(ctx context.Context, inv Invalidation) error {
	msg, err := encodeInvalidation(inv)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("publish invalidation: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"exchange": p.exchange,
		"sequence": inv.Sequence,
		"kinds":    inv.Kinds,
	}).Debug("Notify.AMQP.published")
	return nil
}

func encodeInvalidation(inv Invalidation) (amqp091.Publishing, error) {
	body, err := json.Marshal(inv)
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("marshal invalidation: %w", err)
	}
	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Transient,
		Timestamp:    inv.At,
		MessageId:    fmt.Sprintf("%d", inv.Sequence),
		Body:         body,
	}, nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
