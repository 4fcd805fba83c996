package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/eastlinkgh/connect/internal/config"
	"github.com/eastlinkgh/connect/internal/messaging/payloads"
)

// Client представляет собой клиент RabbitMQ: и publisher, и consumer
// для очереди update.posted.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient создает и инициализирует новый клиент RabbitMQ.
// Объявление очереди идемпотентно.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.QueueName,
		true,  // durable — очередь переживает перезапуск брокера
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}

	logger.Info("rabbitmq queue declared", "queue", q.Name, "messages", q.Messages)

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   q,
		logger:  logger,
	}, nil
}

// Close закрывает соединение и канал RabbitMQ.
func (c *Client) Close() {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("error closing RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("error closing RabbitMQ connection", "error", err)
		}
	}
}

// PublishUpdatePosted публикует событие о новой новости в очередь.
// Соответствует интерфейсу ports.UpdatePostedPublisher.
func (c *Client) PublishUpdatePosted(ctx context.Context, payload payloads.UpdatePostedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload to JSON: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}

	c.logger.Info("update.posted published", "queue", c.queue.Name, "update_id", payload.UpdateID)
	return nil
}

// StartConsumingUpdatePosted начинает потребление событий из очереди.
// Реализует интерфейс ports.UpdatePostedConsumer.
func (c *Client) StartConsumingUpdatePosted(ctx context.Context, handler func(context.Context, payloads.UpdatePostedPayload) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name,
		"",    // consumer
		false, // auto-ack — подтверждаем вручную
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.logger.Info("consumer registered, waiting for messages", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Info("rabbitmq channel closed, stopping consumer")
					return
				}

				var payload payloads.UpdatePostedPayload
				if err := json.Unmarshal(msg.Body, &payload); err != nil {
					c.logger.Error("failed to unmarshal message, dropping", "error", err)
					// Битый формат — отклоняем без requeue, иначе
					// застрянем в бесконечном цикле ошибок.
					if err := msg.Nack(false, false); err != nil {
						c.logger.Error("failed to nack message", "error", err)
					}
					continue
				}

				if err := handler(ctx, payload); err != nil {
					c.logger.Error("failed to process message, requeueing", "update_id", payload.UpdateID, "error", err)
					if err := msg.Nack(false, true); err != nil {
						c.logger.Error("failed to nack message", "error", err)
					}
				} else {
					if err := msg.Ack(false); err != nil {
						c.logger.Error("failed to ack message", "error", err)
					}
				}
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping rabbitmq consumer")
				return
			}
		}
	}()

	return nil
}
