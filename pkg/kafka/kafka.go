package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
)

const CatalogTopic = "library.catalog"

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS"`
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

func NewSyncProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Retry.Max = 3

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

type EventType string

const (
	EventCreated EventType = "CREATED"
	EventUpdated EventType = "UPDATED"
	EventDeleted EventType = "DELETED"
)

type Entity string

const (
	EntityUser Entity = "USER"
	EntityBook Entity = "BOOK"
)

// CatalogEvent is published after every successful write to users or books.
type CatalogEvent struct {
	EventID   string    `json:"eventId"`
	Type      EventType `json:"type"`
	Entity    Entity    `json:"entity"`
	EntityID  int64     `json:"entityId"`
	Label     string    `json:"label,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e CatalogEvent) Message(topic string) (*sarama.ProducerMessage, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(fmt.Sprintf("%s:%d", e.Entity, e.EntityID)),
		Value:     sarama.ByteEncoder(data),
		Timestamp: e.Timestamp,
	}, nil
}
