package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/config"
	"fyyur/internal/logger"
	"fyyur/internal/models"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testTopics() config.TopicConfig {
	return config.TopicConfig{
		VenueCreated:  "fyyur.venues.created",
		VenueDeleted:  "fyyur.venues.deleted",
		ArtistCreated: "fyyur.artists.created",
		ShowCreated:   "fyyur.shows.created",
	}
}

func TestProducerPublishesToTypedTopics(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{Writer: w, Topics: testTopics(), Logger: logger.Discard()}
	ctx := context.Background()
	start := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)

	require.NoError(t, p.PublishVenueCreated(ctx, models.Venue{ID: 1, Name: "The Musical Hop"}))
	require.NoError(t, p.PublishVenueDeleted(ctx, 2))
	require.NoError(t, p.PublishArtistCreated(ctx, models.Artist{ID: 4, Name: "Guns N Petals"}))
	require.NoError(t, p.PublishShowCreated(ctx, models.Show{ID: 9, ArtistID: 4, VenueID: 1, StartTime: start}))

	require.Len(t, w.messages, 4)
	assert.Equal(t, "fyyur.venues.created", w.messages[0].Topic)
	assert.Equal(t, "1", string(w.messages[0].Key))
	assert.Equal(t, "fyyur.venues.deleted", w.messages[1].Topic)
	assert.Equal(t, "fyyur.artists.created", w.messages[2].Topic)
	assert.Equal(t, "fyyur.shows.created", w.messages[3].Topic)
	assert.Equal(t, "9", string(w.messages[3].Key))

	var event models.BookingEvent
	require.NoError(t, json.Unmarshal(w.messages[3].Value, &event))
	assert.Equal(t, models.EventShowCreated, event.Type)
	assert.Equal(t, int64(4), event.ArtistID)
	require.NotNil(t, event.StartTime)
	assert.True(t, start.Equal(*event.StartTime))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducerWrapsWriteErrors(t *testing.T) {
	p := &Producer{Writer: &fakeWriter{err: errors.New("leader not available")}, Topics: testTopics(), Logger: logger.Discard()}
	err := p.PublishVenueDeleted(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fyyur.venues.deleted")
}

func TestNilProducerIsNoop(t *testing.T) {
	var p *Producer
	assert.NoError(t, p.PublishVenueCreated(context.Background(), models.Venue{ID: 1}))
	assert.NoError(t, p.Close())
}

func TestDecodeEvent(t *testing.T) {
	value, err := json.Marshal(models.NewArtistCreatedEvent(models.Artist{ID: 7, Name: "Matt Quevado"}))
	require.NoError(t, err)

	event, err := DecodeEvent(kafka.Message{Topic: "fyyur.artists.created", Value: value})
	require.NoError(t, err)
	assert.Equal(t, models.EventArtistCreated, event.Type)
	assert.Equal(t, "Matt Quevado", event.Name)

	_, err = DecodeEvent(kafka.Message{Topic: "t", Value: []byte("{not json")})
	assert.Error(t, err)

	_, err = DecodeEvent(kafka.Message{Topic: "t", Value: []byte(`{"id": 1}`)})
	assert.Error(t, err)
}

func TestEnsureTopicsExistNeedsBrokers(t *testing.T) {
	assert.Error(t, EnsureTopicsExist(context.Background(), nil, []string{"x"}, logger.Discard()))
	_, err := ListTopics(context.Background(), nil)
	assert.Error(t, err)
}
