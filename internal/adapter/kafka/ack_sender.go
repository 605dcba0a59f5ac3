package kafka

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/aq2208/gorder-workflow/internal/logging"
	"github.com/aq2208/gorder-workflow/internal/usecase"
)

// acknowledgmentMsg is what the mailer service consumes.
type acknowledgmentMsg struct {
	EmailAddress string `json:"emailAddress"`
	Letter       string `json:"letter"`
}

// AckSender hands acknowledgment letters to the mailer through a kafka topic.
// Delivery to the topic counts as Sent.
type AckSender struct {
	producer sarama.SyncProducer
	topic    string
}

func NewAckSender(producer sarama.SyncProducer, topic string) *AckSender {
	return &AckSender{producer: producer, topic: topic}
}

func (s *AckSender) SendAcknowledgment(ctx context.Context, ack usecase.OrderAcknowledgment) usecase.SendResult {
	l := logging.FromCtx(ctx)
	if err := ctx.Err(); err != nil {
		l.WarnContext(ctx, "acknowledgment skipped", "error", err)
		return usecase.NotSent
	}

	value, err := json.Marshal(acknowledgmentMsg{
		EmailAddress: ack.EmailAddress.String(),
		Letter:       string(ack.Letter),
	})
	if err != nil {
		l.ErrorContext(ctx, "acknowledgment marshal failed", "error", err)
		return usecase.NotSent
	}

	partition, offset, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(ack.EmailAddress.String()),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		l.ErrorContext(ctx, "acknowledgment send failed", "topic", s.topic, "error", err)
		return usecase.NotSent
	}
	l.DebugContext(ctx, "acknowledgment sent", "topic", s.topic, "partition", partition, "offset", offset)
	return usecase.Sent
}

var _ usecase.AcknowledgmentSender = (*AckSender)(nil)
