package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"

	"fyyur/internal/logger"
	"fyyur/internal/models"
)

type Consumer struct {
	reader *kafka.Reader
	logger *logger.Logger
}

// NewConsumer joins groupID and reads every given topic.
func NewConsumer(brokers, topics []string, groupID string, log *logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupTopics: topics,
		GroupID:     groupID,
		MinBytes:    1,
		MaxBytes:    10e6, // 10MB
	})
	return &Consumer{reader: reader, logger: log}
}

// DecodeEvent turns a message produced by Producer back into its event.
func DecodeEvent(msg kafka.Message) (models.BookingEvent, error) {
	var event models.BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return event, fmt.Errorf("decode message on %s at offset %d: %w", msg.Topic, msg.Offset, err)
	}
	if event.Type == "" {
		return event, fmt.Errorf("message on %s at offset %d has no event type", msg.Topic, msg.Offset)
	}
	return event, nil
}

// Start reads until ctx is cancelled. Undecodable messages are logged and
// skipped.
func (c *Consumer) Start(ctx context.Context, handler func(topic string, event models.BookingEvent)) error {
	c.logger.Info("KAFKA", "consumer started")
	defer c.reader.Close()

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("KAFKA", "consumer stopped")
				return nil
			}
			c.logger.Error("KAFKA", fmt.Sprintf("error reading message: %v", err))
			return err
		}

		event, err := DecodeEvent(msg)
		if err != nil {
			c.logger.Warn("KAFKA", err.Error())
			continue
		}
		handler(msg.Topic, event)
	}
}
