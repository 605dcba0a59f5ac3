package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

// NewProducerConfig is the sarama config used for acknowledgment delivery.
// SyncProducer requires Return.Successes.
func NewProducerConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Version = sarama.V2_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Retry.Backoff = 100 * time.Millisecond
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Net.DialTimeout = 5 * time.Second
	return cfg
}

func NewSyncProducer(brokers []string, clientID string) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(brokers, NewProducerConfig(clientID))
}
