// Package messaging implements the inter-tab message bus: pub/sub
// delivery with standing filters, a bounded message history, a
// per-tab shared state store and a dependency graph between tabs.
package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
	"github.com/tabdeck/tabdeck/internal/logging"
)

// DefaultHistoryLimit caps the retained message history; the oldest
// messages are evicted first.
const DefaultHistoryLimit = 100

// maxDeliveryDepth bounds synchronous re-entrant sends. A handler may
// send from inside its own callback; two tabs echoing each other would
// otherwise recurse without bound. Sends past this depth are dropped
// and logged.
const maxDeliveryDepth = 8

// Bus routes messages between tabs. Construct one per independent
// manager; there is no package-level instance.
type Bus struct {
	mu           sync.RWMutex
	historyLimit int
	history      []entity.Message
	subs         []*entity.Subscription
	states       map[entity.TabID]map[string]any
	deps         map[entity.DependencyKey]entity.Dependency
	depOrder     []entity.DependencyKey
	idGen        entity.IDGenerator
	now          func() time.Time
	depth        int
}

// Option configures a Bus.
type Option func(*Bus)

// WithHistoryLimit overrides the retained-history cap.
func WithHistoryLimit(limit int) Option {
	return func(b *Bus) {
		if limit > 0 {
			b.historyLimit = limit
		}
	}
}

// WithIDGenerator overrides the message ID generator.
func WithIDGenerator(gen entity.IDGenerator) Option {
	return func(b *Bus) {
		if gen != nil {
			b.idGen = gen
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(b *Bus) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		historyLimit: DefaultHistoryLimit,
		states:       make(map[entity.TabID]map[string]any),
		deps:         make(map[entity.DependencyKey]entity.Dependency),
		idGen:        entity.UUIDGenerator(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SendInput describes an outgoing message. An empty TargetID makes the
// message a broadcast.
type SendInput struct {
	Type     entity.MessageType
	SenderID entity.TabID
	TargetID entity.TabID
	Payload  map[string]any
}

// Send assigns an ID and timestamp, appends the message to the bounded
// history and synchronously notifies every matching subscription.
// Handler errors and panics are logged and never abort delivery to the
// remaining subscribers.
func (b *Bus) Send(ctx context.Context, input SendInput) (entity.Message, error) {
	if !input.Type.Valid() {
		return entity.Message{}, &entity.InvalidArgumentError{
			Reason: fmt.Sprintf("unknown message type %q", string(input.Type)),
		}
	}

	msg := entity.Message{
		ID:        entity.MessageID(b.idGen()),
		Type:      input.Type,
		SenderID:  input.SenderID,
		TargetID:  input.TargetID,
		Timestamp: b.now(),
		Payload:   input.Payload,
	}

	b.mu.Lock()
	if b.depth >= maxDeliveryDepth {
		b.mu.Unlock()
		logging.FromContext(ctx).Warn().
			Str("type", string(msg.Type)).
			Str("sender_id", string(msg.SenderID)).
			Int("depth", maxDeliveryDepth).
			Msg("dropping message: delivery depth exceeded")
		return entity.Message{}, nil
	}
	b.depth++
	b.history = append(b.history, msg)
	if overflow := len(b.history) - b.historyLimit; overflow > 0 {
		b.history = append(b.history[:0:0], b.history[overflow:]...)
	}
	matched := make([]*entity.Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.Matches(msg) {
			matched = append(matched, sub)
		}
	}
	b.mu.Unlock()

	for _, sub := range matched {
		b.deliver(ctx, sub, msg)
	}

	b.mu.Lock()
	b.depth--
	b.mu.Unlock()

	return msg, nil
}

func (b *Bus) deliver(ctx context.Context, sub *entity.Subscription, msg entity.Message) {
	log := logging.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("subscription_id", string(sub.ID)).
				Str("type", string(msg.Type)).
				Interface("panic", r).
				Msg("subscriber panicked handling message")
		}
	}()
	if err := sub.Handler(msg); err != nil {
		log.Error().Err(err).
			Str("subscription_id", string(sub.ID)).
			Str("tab_id", string(sub.TabID)).
			Str("type", string(msg.Type)).
			Msg("subscriber failed to handle message")
	}
}

// SubscribeInput describes a standing filter. Empty MessageType and
// SenderID match all messages addressed to (or broadcast past) TabID.
type SubscribeInput struct {
	TabID       entity.TabID
	MessageType entity.MessageType
	SenderID    entity.TabID
	Handler     entity.MessageHandler
}

// Subscribe registers a subscription and returns its ID.
func (b *Bus) Subscribe(ctx context.Context, input SubscribeInput) (entity.SubscriptionID, error) {
	if input.Handler == nil {
		return "", &entity.InvalidArgumentError{Reason: "subscription handler is required"}
	}
	sub := &entity.Subscription{
		ID:          entity.SubscriptionID(b.idGen()),
		TabID:       input.TabID,
		MessageType: input.MessageType,
		SenderID:    input.SenderID,
		Handler:     input.Handler,
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	count := len(b.subs)
	b.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Str("subscription_id", string(sub.ID)).
		Str("tab_id", string(sub.TabID)).
		Int("total", count).
		Msg("subscription registered")
	return sub.ID, nil
}

// Unsubscribe removes a subscription. Unknown IDs are ignored.
func (b *Bus) Unsubscribe(_ context.Context, id entity.SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.ID == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// SubscriptionCount returns the number of live subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// History returns a copy of the retained message history, oldest first.
func (b *Bus) History() []entity.Message {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]entity.Message, len(b.history))
	copy(out, b.history)
	return out
}
