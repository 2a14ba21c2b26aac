package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"asset-selector-be/internal/entity"
	"asset-selector-be/internal/pkg/logger"
	"asset-selector-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "asset_selected_test"

type captureForwarder struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (f *captureForwarder) Publish(ctx context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

func (f *captureForwarder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func (f *captureForwarder) first() events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[0]
}

func newBus(t *testing.T) *gochannel.GoChannel {
	t.Helper()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })
	return pubSub
}

func selectedEvent() events.BaseEvent {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return events.NewAssetSelected("Stocks rally", entity.SentimentBullish, "keyword", entity.SelectedAsset{
		URL:      "https://cdn.test/moon.jpg",
		Metadata: entity.AssetMetadata{Category: "to_the_moon"},
	}, at)
}

func TestConsumerService_ForwardsEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := newBus(t)
	fwd := &captureForwarder{}
	require.NoError(t, NewConsumerService(bus, testTopic, fwd, logger.NewNopLogger()).Consume(ctx))

	evt := selectedEvent()
	require.NoError(t, NewPublisherService(testTopic, bus).Publish(ctx, evt))

	assert.Eventually(t, func() bool { return fwd.count() == 1 }, time.Second, 10*time.Millisecond)

	got := fwd.first()
	assert.Equal(t, evt.EventID(), got.EventID())
	assert.Equal(t, events.TypeAssetSelected, got.EventType())
	assert.True(t, evt.Timestamp().Equal(got.Timestamp()))
	assert.Equal(t, "https://cdn.test/moon.jpg", got.Payload()["url"])
	assert.Equal(t, "to_the_moon", got.Payload()["category"])
}

func TestConsumerService_SurvivesBadPayloadAndForwardErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := newBus(t)
	fwd := &captureForwarder{err: errors.New("nats down")}
	require.NoError(t, NewConsumerService(bus, testTopic, fwd, logger.NewNopLogger()).Consume(ctx))

	require.NoError(t, bus.Publish(testTopic, message.NewMessage(watermill.NewUUID(), []byte("not json"))))

	pub := NewPublisherService(testTopic, bus)
	require.NoError(t, pub.Publish(ctx, selectedEvent()))
	require.NoError(t, pub.Publish(ctx, selectedEvent()))

	assert.Eventually(t, func() bool { return fwd.count() == 2 }, time.Second, 10*time.Millisecond)
}

func TestConsumerService_NilForwarder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := newBus(t)
	require.NoError(t, NewConsumerService(bus, testTopic, nil, logger.NewNopLogger()).Consume(ctx))
	assert.NoError(t, NewPublisherService(testTopic, bus).Publish(ctx, selectedEvent()))
}
