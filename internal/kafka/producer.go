package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"

	"fyyur/internal/config"
	"fyyur/internal/logger"
	"fyyur/internal/models"
)

// MessageWriter is the part of *kafka.Writer the producer uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	Writer MessageWriter
	Topics config.TopicConfig
	Logger *logger.Logger
}

// NewProducer returns a producer whose writer picks the topic per message,
// so one connection pool serves every booking topic.
func NewProducer(cfg config.KafkaConfig, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &Producer{Writer: writer, Topics: cfg.Topics, Logger: log}
}

// Publish writes one JSON event keyed by the record id.
func (p *Producer) Publish(ctx context.Context, topic string, event models.BookingEvent) error {
	if p == nil {
		return nil
	}
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(strconv.FormatInt(event.ID, 10)),
		Value: msgBytes,
	})
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.Type, topic, err)
	}
	p.Logger.LogKafka("PUBLISH", topic, string(msgBytes))
	return nil
}

func (p *Producer) PublishVenueCreated(ctx context.Context, venue models.Venue) error {
	if p == nil {
		return nil
	}
	return p.Publish(ctx, p.Topics.VenueCreated, models.NewVenueCreatedEvent(venue))
}

func (p *Producer) PublishVenueDeleted(ctx context.Context, id int64) error {
	if p == nil {
		return nil
	}
	return p.Publish(ctx, p.Topics.VenueDeleted, models.NewVenueDeletedEvent(id))
}

func (p *Producer) PublishArtistCreated(ctx context.Context, artist models.Artist) error {
	if p == nil {
		return nil
	}
	return p.Publish(ctx, p.Topics.ArtistCreated, models.NewArtistCreatedEvent(artist))
}

func (p *Producer) PublishShowCreated(ctx context.Context, show models.Show) error {
	if p == nil {
		return nil
	}
	return p.Publish(ctx, p.Topics.ShowCreated, models.NewShowCreatedEvent(show))
}

func (p *Producer) Close() error {
	if p == nil || p.Writer == nil {
		return nil
	}
	return p.Writer.Close()
}
