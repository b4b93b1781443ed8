package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/phone-temp-checker/internal/config"
	"github.com/couchcryptid/phone-temp-checker/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// NoticeWriter publishes user-facing notices to a Kafka topic.
// It implements checker.Notifier.
type NoticeWriter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewNoticeWriter creates a Kafka producer for the configured notice topic.
func NewNoticeWriter(cfg *config.Config, logger *slog.Logger) *NoticeWriter {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaNoticeTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
	return &NoticeWriter{writer: w, logger: logger}
}

// Notify serializes and publishes a single notice.
func (w *NoticeWriter) Notify(ctx context.Context, notice domain.Notice) error {
	msg, err := serializeToMessage(notice)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish notice %s: %w", notice.ID, err)
	}
	w.logger.Debug("notice published", "notice_id", notice.ID, "topic", w.writer.Topic)
	return nil
}

func (w *NoticeWriter) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Notice into a Kafka message keyed by notice ID.
func serializeToMessage(notice domain.Notice) (kafkago.Message, error) {
	data, err := json.Marshal(notice)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize notice: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(notice.ID.String()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "severity", Value: []byte(notice.Severity)},
			{Key: "emitted_at", Value: []byte(notice.EmittedAt.Format(time.RFC3339))},
		},
	}, nil
}
