// Package bus is the in-process publish/subscribe channel decoupling the
// writers of change history from the stream hub and other listeners. Topics
// carry an enumerated set of payload types so subscribers can type-switch
// exhaustively; unknown payloads never occur by construction.
package bus

import (
	"sync"

	"go.uber.org/zap"
)

// Topic identifies an ordered stream of events.
type Topic string

const (
	// TopicChange carries ChangeRecorded events.
	TopicChange Topic = "change-history"
	// TopicSession carries SessionRevoked events.
	TopicSession Topic = "session"
)

// Event is implemented by every payload variant; the variants live in
// events.go and subscribers type-switch over them.
type Event interface {
	EventTopic() Topic
}

// Handler consumes events for one topic. Handlers run synchronously on the
// publisher's goroutine in subscription order and must not block.
type Handler func(Event)

// Bus is a topic-keyed registry of ordered subscribers.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Topic][]subscription
	logger *zap.Logger
}

type subscription struct {
	id      int
	handler Handler
}

// New builds an empty bus.
func New(logger *zap.Logger) *Bus {
	return &Bus{
		subs:   make(map[Topic][]subscription),
		logger: logger,
	}
}

// Subscribe registers a handler for a topic and returns its unsubscribe
// function. Unsubscribing is idempotent.
func (b *Bus) Subscribe(topic Topic, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: h})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[topic]
		for i, s := range list {
			if s.id == id {
				b.subs[topic] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers an event to every subscriber of its topic, in
// subscription order. A panicking handler is logged and skipped so one bad
// listener cannot take the publisher down.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	list := make([]subscription, len(b.subs[e.EventTopic()]))
	copy(list, b.subs[e.EventTopic()])
	b.mu.RUnlock()

	for _, s := range list {
		b.deliver(s, e)
	}
}

func (b *Bus) deliver(s subscription, e Event) {
	defer func() {
		if r := recover(); r != nil && b.logger != nil {
			b.logger.Error("bus handler panicked",
				zap.String("topic", string(e.EventTopic())),
				zap.Any("panic", r),
			)
		}
	}()
	s.handler(e)
}
