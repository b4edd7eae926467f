package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

func TestPublisherSendsCatalogEvent(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewProducerConfig())
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicCatalogEvents {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "cocktail_7" {
			return errors.New("unexpected key " + string(key))
		}

		var headerType string
		for _, h := range msg.Headers {
			if string(h.Key) == HeaderEventType {
				headerType = string(h.Value)
			}
		}
		if headerType != domain.EventCocktailUpdated {
			return errors.New("missing event_type header")
		}

		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var decoded CatalogMessage
		if err := json.Unmarshal(value, &decoded); err != nil {
			return err
		}
		if decoded.EventID == "" || decoded.CocktailID != 7 || decoded.Name != "Negroni" {
			return errors.New("unexpected payload " + string(value))
		}
		return nil
	})

	publisher := NewPublisherWithProducer(producer)
	err := publisher.Publish(context.Background(), domain.CatalogEvent{
		Type:       domain.EventCocktailUpdated,
		CocktailID: 7,
		Name:       "Negroni",
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Close())
}

func TestPublisherReturnsSendErrors(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewProducerConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewPublisherWithProducer(producer)
	err := publisher.Publish(context.Background(), domain.CatalogEvent{Type: domain.EventColorDeleted, ColorID: 2})
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
	require.NoError(t, publisher.Close())
}

type evictions struct {
	domain.NopCache
	ids []uint
}

func (e *evictions) Invalidate(_ context.Context, ids ...uint) error {
	e.ids = append(e.ids, ids...)
	return nil
}

func catalogMessage(t *testing.T, event domain.CatalogEvent) *sarama.ConsumerMessage {
	t.Helper()
	value, err := json.Marshal(CatalogMessage{EventID: "evt-1", CatalogEvent: event})
	require.NoError(t, err)
	return &sarama.ConsumerMessage{
		Topic: TopicCatalogEvents,
		Value: value,
		Headers: []*sarama.RecordHeader{
			{Key: []byte(HeaderEventType), Value: []byte(event.Type)},
			{Key: []byte(HeaderEventID), Value: []byte("evt-1")},
		},
	}
}

func TestConsumerInvalidatesCachedCocktails(t *testing.T) {
	cache := &evictions{}
	consumer := newConsumer(nil, "catalog", []string{TopicCatalogEvents})
	consumer.RegisterCacheInvalidation(cache)
	handler := &consumerGroupHandler{consumer: consumer}
	ctx := context.Background()

	assert.True(t, handler.handleMessage(ctx, catalogMessage(t, domain.CatalogEvent{Type: domain.EventCocktailDeleted, CocktailID: 4})))
	assert.True(t, handler.handleMessage(ctx, catalogMessage(t, domain.CatalogEvent{Type: domain.EventCocktailUpdated, CocktailID: 9})))
	assert.Equal(t, []uint{4, 9}, cache.ids)

	// no handler for favorites
	assert.False(t, handler.handleMessage(ctx, catalogMessage(t, domain.CatalogEvent{Type: domain.EventFavoriteAdded, CocktailID: 4})))

	assert.False(t, handler.handleMessage(ctx, &sarama.ConsumerMessage{Value: []byte("{}")}))

	broken := catalogMessage(t, domain.CatalogEvent{Type: domain.EventCocktailDeleted})
	broken.Value = []byte("not json")
	assert.False(t, handler.handleMessage(ctx, broken))

	assert.Equal(t, []uint{4, 9}, cache.ids)
}

func TestConsumerReportsHandlerFailures(t *testing.T) {
	consumer := newConsumer(nil, "catalog", nil)
	consumer.RegisterHandler(domain.EventCocktailCreated, func(context.Context, domain.CatalogEvent) error {
		return errors.New("boom")
	})
	handler := &consumerGroupHandler{consumer: consumer}

	ok := handler.handleMessage(context.Background(), catalogMessage(t, domain.CatalogEvent{Type: domain.EventCocktailCreated, CocktailID: 1}))
	assert.False(t, ok)
	assert.NoError(t, consumer.Close())
}
