package mq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// HandlerFunc processes one message body. A returned error drops the
// message (Nack without requeue); nothing is retried automatically.
type HandlerFunc func(ctx context.Context, body []byte) error

// Consumer runs one goroutine per registered queue.
type Consumer struct {
	rabbit   *RabbitMQ
	handlers map[string]HandlerFunc
	cancel   context.CancelFunc
}

func NewConsumer(rabbit *RabbitMQ) *Consumer {
	return &Consumer{
		rabbit:   rabbit,
		handlers: make(map[string]HandlerFunc),
	}
}

func (c *Consumer) Handle(queue string, fn HandlerFunc) {
	c.handlers[queue] = fn
}

func (c *Consumer) Start() {
	if c.rabbit == nil {
		zap.L().Warn("rabbitmq is nil, consumers not started")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	for queue, fn := range c.handlers {
		go c.consume(ctx, queue, fn)
	}
}

func (c *Consumer) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Consumer) consume(ctx context.Context, queue string, fn HandlerFunc) {
	msgs, err := c.rabbit.Consume(queue)
	if err != nil {
		zap.L().Error("failed to start consumer", zap.String("queue", queue), zap.Error(err))
		return
	}

	zap.L().Info("waiting for messages", zap.String("queue", queue))
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-msgs:
			if !ok {
				zap.L().Warn("consumer channel closed", zap.String("queue", queue))
				return
			}
			dispatch(ctx, queue, fn, d)
		}
	}
}

func dispatch(ctx context.Context, queue string, fn HandlerFunc, d amqp.Delivery) {
	if err := fn(ctx, d.Body); err != nil {
		zap.L().Error("message handling failed", zap.String("queue", queue), zap.Error(err))
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}
