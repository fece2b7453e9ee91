package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
)

// OutboundMessage is the payload published for the mail/SMS gateway to deliver.
type OutboundMessage struct {
	Channel   domain.Channel `json:"channel"`
	To        string         `json:"to"`
	Subject   string         `json:"subject,omitempty"`
	Body      string         `json:"body"`
	CreatedAt time.Time      `json:"createdAt"`
}

// KafkaTransport publishes outbound messages to a topic. A message counts as delivered
// once the brokers acknowledge it.
type KafkaTransport struct {
	producer  sarama.SyncProducer
	topic     string
	log       *slog.Logger
	closeOnce sync.Once
}

// NewKafkaTransport wraps an existing producer.
func NewKafkaTransport(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaTransport{producer: producer, topic: topic, log: logger}
}

// NewSaramaSyncProducer builds a producer that waits for all in-sync replicas.
func NewSaramaSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll // Acks from all replicas
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Return.Successes = true // Required by SyncProducer
	saramaConfig.ClientID = "plan-approval-notifier"

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create sarama producer: %w", err)
	}
	return producer, nil
}

var _ portssvc.MessageTransport = (*KafkaTransport)(nil)

func (t *KafkaTransport) SendEmail(ctx context.Context, address, subject, body string) error {
	return t.publish(ctx, OutboundMessage{Channel: domain.ChannelEmail, To: address, Subject: subject, Body: body})
}

func (t *KafkaTransport) SendSMS(ctx context.Context, number, body string) error {
	return t.publish(ctx, OutboundMessage{Channel: domain.ChannelSMS, To: number, Body: body})
}

func (t *KafkaTransport) publish(ctx context.Context, m OutboundMessage) error {
	m.CreatedAt = time.Now()
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal outbound message: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     t.topic,
		Key:       sarama.StringEncoder(m.To),
		Value:     sarama.ByteEncoder(data),
		Timestamp: m.CreatedAt,
	}

	// SendMessage has no context; run it aside so the caller's deadline still bounds the wait.
	type result struct {
		partition int32
		offset    int64
		err       error
	}
	done := make(chan result, 1)
	go func() {
		partition, offset, err := t.producer.SendMessage(msg)
		done <- result{partition, offset, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			t.log.ErrorContext(ctx, "Kafka publish failed", slog.String("topic", t.topic), slog.String("channel", string(m.Channel)), slog.Any("error", r.err))
			return fmt.Errorf("failed to publish %s message: %w", m.Channel, r.err)
		}
		t.log.DebugContext(ctx, "Message published",
			slog.String("topic", t.topic),
			slog.Int("partition", int(r.partition)),
			slog.Int64("offset", r.offset))
		return nil
	case <-ctx.Done():
		t.log.WarnContext(ctx, "Publish abandoned by context", slog.String("channel", string(m.Channel)))
		return ctx.Err()
	}
}

// Close shuts down the producer.
func (t *KafkaTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.log.Info("Closing Kafka producer...")
		err = t.producer.Close()
	})
	return err
}
