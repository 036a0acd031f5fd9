package services

import (
	"testing"
	"time"

	"yatrojana/internal/events"
	"yatrojana/internal/models/request_models"
	"yatrojana/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendingDefaultsToCurrentMonthInIndia(t *testing.T) {
	ai := &fakeAI{reply: `["Hampi"]`}
	svc := NewDiscoveryService(newGateway(ai), events.NewBus(nil), nil).(*DiscoveryService)
	svc.now = func() time.Time { return time.Date(2026, time.October, 31, 20, 0, 0, 0, time.UTC) }

	got := svc.Trending(ctx, "", nil)
	assert.Equal(t, "November", got.Month)
	assert.Equal(t, []string{"Hampi"}, got.Cities)
	assert.Contains(t, ai.calls()[0].Prompt, "month of November")

	got = svc.Trending(ctx, "May", nil)
	assert.Equal(t, "May", got.Month)
}

func TestTrendingNeverEmpty(t *testing.T) {
	svc := NewDiscoveryService(newGateway(&fakeAI{err: utils.ErrAIUnavailable}), events.NewBus(nil), nil)
	assert.Equal(t, TrendingFallback, svc.Trending(ctx, "May", nil).Cities)
}

func TestSelectDestinationPublishes(t *testing.T) {
	bus := events.NewBus(nil)
	ch, cancel := bus.Subscribe(events.TopicSetDestination)
	defer cancel()

	svc := NewDiscoveryService(newGateway(&fakeAI{}), bus, nil)
	require.NoError(t, svc.SelectDestination(ctx, " Munnar "))

	ev := <-ch
	assert.Equal(t, events.TopicSetDestination, ev.Topic)
	assert.Equal(t, "Munnar", ev.Payload)

	assert.ErrorIs(t, svc.SelectDestination(ctx, ""), utils.ErrMissingDestination)
}

func TestRequestInsightPublishesOpenChat(t *testing.T) {
	bus := events.NewBus(nil)
	ch, cancel := bus.Subscribe(events.TopicOpenChat)
	defer cancel()

	svc := NewDiscoveryService(newGateway(&fakeAI{}), bus, nil)
	prompt := svc.RequestInsight(ctx, request_models.SuggestionPrefs{Budget: "Budget", Interests: "temples"})

	assert.Equal(t, "Explain how Yatro AI finds the best travel recommendations based on budget levels like Budget and interests like temples, specifically for locations in India.", prompt)
	ev := <-ch
	assert.Equal(t, prompt, ev.Payload)
}

func TestDestinationDetailsRequiresName(t *testing.T) {
	ai := &fakeAI{reply: "garbage"}
	svc := NewDiscoveryService(newGateway(ai), events.NewBus(nil), nil)

	_, err := svc.DestinationDetails(ctx, " ")
	assert.ErrorIs(t, err, utils.ErrMissingDestination)
	assert.Empty(t, ai.calls())

	details, err := svc.DestinationDetails(ctx, "Ooty")
	require.NoError(t, err)
	assert.Nil(t, details)
}
