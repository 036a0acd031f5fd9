package events

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type Topic string

const (
	// TopicSetDestination carries a destination name for the booking form.
	TopicSetDestination Topic = "set-destination"
	// TopicOpenChat carries a prompt the chat widget should open with.
	TopicOpenChat Topic = "open-chat"
)

var KnownTopics = []Topic{TopicSetDestination, TopicOpenChat}

func (t Topic) Known() bool {
	for _, k := range KnownTopics {
		if t == k {
			return true
		}
	}
	return false
}

type Event struct {
	Topic   Topic     `json:"topic"`
	Payload string    `json:"payload"`
	At      time.Time `json:"at"`
}

const subscriberBuffer = 16

type subscriber struct {
	topics map[Topic]bool
	ch     chan Event
}

// Bus is an in-process publish/subscribe hub keyed by topic. Publish never
// blocks: a subscriber whose buffer is full misses the event.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]*subscriber
	logger *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{subs: make(map[int]*subscriber), logger: logger.Named("events")}
}

// Subscribe returns a channel receiving events for the given topics (all
// topics when none are given) and a cancel func that closes it.
func (b *Bus) Subscribe(topics ...Topic) (<-chan Event, func()) {
	sub := &subscriber{topics: make(map[Topic]bool, len(topics)), ch: make(chan Event, subscriberBuffer)}
	for _, t := range topics {
		sub.topics[t] = true
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// Publish delivers payload to every subscriber of topic and returns how many received it.
func (b *Bus) Publish(topic Topic, payload string) int {
	ev := Event{Topic: topic, Payload: payload, At: time.Now()}

	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for _, sub := range b.subs {
		if len(sub.topics) > 0 && !sub.topics[topic] {
			continue
		}
		select {
		case sub.ch <- ev:
			delivered++
		default:
			b.logger.Warn("subscriber buffer full, dropping event", zap.String("topic", string(topic)))
		}
	}
	return delivered
}
