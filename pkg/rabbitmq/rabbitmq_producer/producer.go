package rabbitmq_producer

import (
	"context"
	"fmt"
	"sync"

	"estate-agent-service/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublisherConfig конфигурация для производителя
type PublisherConfig struct {
	ExchangeName       string // пустая строка - default exchange
	ExchangeType       string // direct, fanout, topic, headers
	DurableExchange    bool
	AutoDeleteExchange bool
	ExchangeArgs       amqp.Table

	// Если false, обменник должен уже существовать
	DeclareExchangeIfMissing bool

	Logger rabbitmq_common.Logger
}

func (c PublisherConfig) Validate() error {
	if !c.DeclareExchangeIfMissing {
		return nil
	}
	if c.ExchangeName == "" {
		return fmt.Errorf("producer: exchange name is required when DeclareExchangeIfMissing is true")
	}
	switch c.ExchangeType {
	case amqp.ExchangeDirect, amqp.ExchangeFanout, amqp.ExchangeTopic, amqp.ExchangeHeaders:
		return nil
	default:
		return fmt.Errorf("producer: unsupported exchange type %q", c.ExchangeType)
	}
}

// ChannelSource - откуда производитель берет каналы. Обычно *rabbitmq_common.ConnectionManager.
type ChannelSource interface {
	GetChannel() (*amqp.Connection, *amqp.Channel, error)
}

// Publisher держит собственный канал и открывает новый, если старый закрылся.
type Publisher struct {
	config  PublisherConfig
	source  ChannelSource
	mu      sync.Mutex
	channel *amqp.Channel

	Logger rabbitmq_common.Logger
}

func NewPublisher(cfg PublisherConfig, source ChannelSource) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("producer: channel source cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	p := &Publisher{config: cfg, source: source, Logger: logger}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.ensureChannel(); err != nil {
		return nil, err
	}

	p.Logger.Debug("Producer ready", "exchange", cfg.ExchangeName)
	return p, nil
}

// ensureChannel вызывается под p.mu.
func (p *Publisher) ensureChannel() (*amqp.Channel, error) {
	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}

	_, ch, err := p.source.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("producer: failed to get channel: %w", err)
	}

	if p.config.DeclareExchangeIfMissing {
		p.Logger.Debug("Declaring exchange", "name", p.config.ExchangeName, "type", p.config.ExchangeType)
		err = ch.ExchangeDeclare(
			p.config.ExchangeName,
			p.config.ExchangeType,
			p.config.DurableExchange,
			p.config.AutoDeleteExchange,
			false, // internal
			false, // no-wait
			p.config.ExchangeArgs,
		)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("producer: failed to declare exchange '%s': %w", p.config.ExchangeName, err)
		}
	}

	p.channel = ch
	return ch, nil
}

// Publish публикует сообщение в обменник из конфигурации.
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.ensureChannel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, p.config.ExchangeName, routingKey, false, false, msg)
	if err != nil {
		return fmt.Errorf("producer: failed to publish message: %w", err)
	}
	return nil
}

// Close закрывает только канал, соединение принадлежит ConnectionManager.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	if err != nil {
		p.Logger.Error(err, "Error closing channel")
		return err
	}
	p.Logger.Info("Producer closed.")
	return nil
}
