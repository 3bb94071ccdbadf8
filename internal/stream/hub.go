// Package stream implements the change-history push pipeline: a hub fanning
// persisted change records out to SSE subscribers, the newest-first per-key
// cache, and the client-side subscription state machine.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/bus"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
)

// SSE event names shared by hub and client.
const (
	EventChange    = "change"
	EventHeartbeat = "heartbeat"
)

// Message is one outbound SSE frame. Team-scoped channels use an empty Event
// (the default message type) and discriminate via the JSON envelope instead.
type Message struct {
	Event string
	Data  []byte
}

type entityKey struct {
	entityType string
	entityID   int64
}

// Subscriber is one attached stream consumer. The hub owns the channel;
// consumers range over Events() until it closes.
type Subscriber struct {
	hub    *Hub
	key    entityKey
	teamID int64
	types  map[string]bool // team-scoped filter, nil means all
	team   bool
	userID int64
	ch     chan Message

	closeOnce sync.Once
}

// Events returns the outbound frame channel.
func (s *Subscriber) Events() <-chan Message { return s.ch }

// Close detaches the subscriber and closes its channel. Safe to call twice;
// the hub also calls it when a session is revoked.
func (s *Subscriber) Close() {
	s.closeOnce.Do(func() {
		s.hub.detach(s)
		close(s.ch)
	})
}

// Hub routes change records and heartbeats to attached subscribers.
type Hub struct {
	mu       sync.RWMutex
	byEntity map[entityKey]map[*Subscriber]struct{}
	byTeam   map[int64]map[*Subscriber]struct{}

	heartbeatInterval time.Duration
	buffer            int
	logger            *zap.Logger
}

// NewHub builds a hub and attaches it to the bus topics it consumes:
// recorded changes for fan-out and revoked sessions for forced detach.
func NewHub(b *bus.Bus, heartbeatInterval time.Duration, buffer int, logger *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	h := &Hub{
		byEntity:          make(map[entityKey]map[*Subscriber]struct{}),
		byTeam:            make(map[int64]map[*Subscriber]struct{}),
		heartbeatInterval: heartbeatInterval,
		buffer:            buffer,
		logger:            logger,
	}

	b.Subscribe(bus.TopicChange, func(e bus.Event) {
		if ev, ok := e.(bus.ChangeRecorded); ok {
			h.Broadcast(&ev.Change)
		}
	})
	b.Subscribe(bus.TopicSession, func(e bus.Event) {
		if ev, ok := e.(bus.SessionRevoked); ok {
			h.closeUser(ev.UserID)
		}
	})

	return h
}

// Run emits heartbeats on the configured interval until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			h.heartbeat(now)
		}
	}
}

// SubscribeEntity attaches a consumer to one (entityType, id) channel.
func (h *Hub) SubscribeEntity(entityType string, entityID, userID int64) *Subscriber {
	s := &Subscriber{
		hub:    h,
		key:    entityKey{entityType: entityType, entityID: entityID},
		userID: userID,
		ch:     make(chan Message, h.buffer),
	}

	h.mu.Lock()
	set, ok := h.byEntity[s.key]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.byEntity[s.key] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()

	return s
}

// SubscribeTeam attaches a consumer to a team-wide channel, optionally
// filtered to a set of entity types.
func (h *Hub) SubscribeTeam(teamID, userID int64, types []string) *Subscriber {
	var filter map[string]bool
	if len(types) > 0 {
		filter = make(map[string]bool, len(types))
		for _, t := range types {
			filter[t] = true
		}
	}

	s := &Subscriber{
		hub:    h,
		teamID: teamID,
		types:  filter,
		team:   true,
		userID: userID,
		ch:     make(chan Message, h.buffer),
	}

	h.mu.Lock()
	set, ok := h.byTeam[teamID]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.byTeam[teamID] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()

	return s
}

// Broadcast routes one change record to every matching subscriber.
func (h *Hub) Broadcast(change *model.ChangeHistory) {
	item := dto.ToChangeHistoryItem(change)

	entityData, err := json.Marshal(item)
	if err != nil {
		h.logger.Error("marshal change item", zap.Error(err))
		return
	}

	envelope := dto.TeamStreamEvent{
		Type:       EventChange,
		EntityType: change.EntityType,
		EntityID:   change.EntityID,
		Item:       &item,
	}
	teamData, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("marshal team envelope", zap.Error(err))
		return
	}

	key := entityKey{entityType: change.EntityType, entityID: change.EntityID}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.byEntity[key] {
		h.send(s, Message{Event: EventChange, Data: entityData})
	}
	for s := range h.byTeam[change.TeamID] {
		if s.types != nil && !s.types[change.EntityType] {
			continue
		}
		h.send(s, Message{Data: teamData})
	}
}

func (h *Hub) heartbeat(now time.Time) {
	ts := now.UTC()
	entityData := []byte(fmt.Sprintf(`{"timestamp":%q}`, ts.Format(time.RFC3339)))

	envelope := dto.TeamStreamEvent{Type: EventHeartbeat, Timestamp: &ts}
	teamData, err := json.Marshal(envelope)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, set := range h.byEntity {
		for s := range set {
			h.send(s, Message{Event: EventHeartbeat, Data: entityData})
		}
	}
	for _, set := range h.byTeam {
		for s := range set {
			h.send(s, Message{Data: teamData})
		}
	}
}

// send is non-blocking: a consumer that stopped draining loses frames rather
// than stalling the hub.
func (h *Hub) send(s *Subscriber, m Message) {
	select {
	case s.ch <- m:
	default:
		h.logger.Warn("dropping frame for slow stream subscriber",
			zap.Int64("user_id", s.userID),
		)
	}
}

func (h *Hub) detach(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s.team {
		if set, ok := h.byTeam[s.teamID]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(h.byTeam, s.teamID)
			}
		}
		return
	}
	if set, ok := h.byEntity[s.key]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.byEntity, s.key)
		}
	}
}

// closeUser force-closes every subscriber owned by a user whose session was
// revoked.
func (h *Hub) closeUser(userID int64) {
	h.mu.RLock()
	var victims []*Subscriber
	for _, set := range h.byEntity {
		for s := range set {
			if s.userID == userID {
				victims = append(victims, s)
			}
		}
	}
	for _, set := range h.byTeam {
		for s := range set {
			if s.userID == userID {
				victims = append(victims, s)
			}
		}
	}
	h.mu.RUnlock()

	for _, s := range victims {
		s.Close()
	}
}

// SubscriberCount reports attached consumers, for health reporting.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, set := range h.byEntity {
		n += len(set)
	}
	for _, set := range h.byTeam {
		n += len(set)
	}
	return n
}
