package publisher

import (
	"context"
	"time"

	"github.com/Astemirdum/bookhub/pkg/circuit_breaker"
	"github.com/Astemirdum/bookhub/pkg/kafka"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=publisher.go -destination=mocks/mock.go

type Publisher interface {
	Publish(ctx context.Context, event kafka.CatalogEvent) error
}

func New(producer sarama.SyncProducer, topic string, log *zap.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		topic:    topic,
		cb:       circuit_breaker.New(20, 30*time.Second, 0.5, 3),
		log:      log.Named("publisher"),
	}
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
	log      *zap.Logger
}

func (p *kafkaPublisher) Publish(ctx context.Context, event kafka.CatalogEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := event.Message(p.topic)
	if err != nil {
		return err
	}
	return p.cb.Call(func() error {
		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			return err
		}
		p.log.Debug("event sent",
			zap.String("event_id", event.EventID),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset))
		return nil
	})
}

// Nop drops events. Used when no kafka brokers are configured.
func Nop() Publisher {
	return nopPublisher{}
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, kafka.CatalogEvent) error { return nil }
