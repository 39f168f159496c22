// Package binding adapts the manager's imperative API to component
// lifecycles: a binding subscribes when constructed and unsubscribes
// exactly once when closed, so a subscription never outlives the
// component that owns it.
package binding

import (
	"context"
	"sync"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
	"github.com/tabdeck/tabdeck/internal/messaging"
	"github.com/tabdeck/tabdeck/internal/tabs"
)

// Messaging accumulates messages delivered to one tab and exposes
// sending conveniences. Construct with NewMessaging, release with
// Close.
type Messaging struct {
	mgr   *tabs.Manager
	tabID entity.TabID

	mu     sync.Mutex
	msgs   []entity.Message
	latest *entity.Message

	subID     entity.SubscriptionID
	closeOnce sync.Once
}

// MessagingOption narrows the binding's subscription filter.
type MessagingOption func(*messaging.SubscribeInput)

// WithMessageType restricts the binding to one message type.
func WithMessageType(t entity.MessageType) MessagingOption {
	return func(in *messaging.SubscribeInput) {
		in.MessageType = t
	}
}

// WithSender restricts the binding to messages from one sender.
func WithSender(id entity.TabID) MessagingOption {
	return func(in *messaging.SubscribeInput) {
		in.SenderID = id
	}
}

// NewMessaging subscribes the binding for tabID and starts
// accumulating matching messages.
func NewMessaging(ctx context.Context, mgr *tabs.Manager, tabID entity.TabID, opts ...MessagingOption) (*Messaging, error) {
	b := &Messaging{
		mgr:   mgr,
		tabID: tabID,
		msgs:  make([]entity.Message, 0),
	}

	input := messaging.SubscribeInput{
		TabID:   tabID,
		Handler: b.receive,
	}
	for _, opt := range opts {
		opt(&input)
	}

	subID, err := mgr.SubscribeToTabMessages(ctx, input)
	if err != nil {
		return nil, err
	}
	b.subID = subID
	return b, nil
}

func (b *Messaging) receive(msg entity.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, msg)
	b.latest = &msg
	return nil
}

// Messages returns a copy of the accumulated messages, oldest first.
func (b *Messaging) Messages() []entity.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entity.Message, len(b.msgs))
	copy(out, b.msgs)
	return out
}

// Latest returns the most recently received message.
func (b *Messaging) Latest() (entity.Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latest == nil {
		return entity.Message{}, false
	}
	return *b.latest, true
}

// ClearMessages drops the accumulated messages and the latest pointer.
func (b *Messaging) ClearMessages() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = b.msgs[:0]
	b.latest = nil
}

// Send publishes a message from the bound tab.
func (b *Messaging) Send(ctx context.Context, msgType entity.MessageType, targetID entity.TabID, payload map[string]any) error {
	_, err := b.mgr.SendTabMessage(ctx, messaging.SendInput{
		Type:     msgType,
		SenderID: b.tabID,
		TargetID: targetID,
		Payload:  payload,
	})
	return err
}

// SendEvent publishes a CUSTOM_EVENT carrying {eventName, data}.
func (b *Messaging) SendEvent(ctx context.Context, targetID entity.TabID, eventName string, data any) error {
	return b.Send(ctx, entity.MessageTypeCustomEvent, targetID, map[string]any{
		"eventName": eventName,
		"data":      data,
	})
}

// UpdateState stores and broadcasts shared state for the bound tab.
func (b *Messaging) UpdateState(ctx context.Context, state map[string]any) error {
	return b.mgr.UpdateTabState(ctx, b.tabID, state, true)
}

// RequestState asks another tab to publish its current state.
func (b *Messaging) RequestState(ctx context.Context, targetID entity.TabID) error {
	return b.Send(ctx, entity.MessageTypeRequestState, targetID, nil)
}

// Close unsubscribes the binding. Safe to call more than once; the
// subscription is removed exactly once.
func (b *Messaging) Close(ctx context.Context) {
	b.closeOnce.Do(func() {
		b.mgr.UnsubscribeFromTabMessages(ctx, b.subID)
	})
}
