package entity

import "time"

// MessageID uniquely identifies a message.
type MessageID string

// MessageType is the closed set of message kinds carried by the bus.
// The dispatcher matches exhaustively on these; adding a kind means
// extending the switch there.
type MessageType string

const (
	// MessageTypeStateUpdate announces that a tab's shared state changed.
	MessageTypeStateUpdate MessageType = "STATE_UPDATE"
	// MessageTypeDependencyUpdate carries a provider's state to a dependent.
	MessageTypeDependencyUpdate MessageType = "DEPENDENCY_UPDATE"
	// MessageTypeRequestState asks a tab to publish its current state.
	MessageTypeRequestState MessageType = "REQUEST_STATE"
	// MessageTypeCustomEvent wraps an application-defined event.
	MessageTypeCustomEvent MessageType = "CUSTOM_EVENT"
	// MessageTypeTabOpened announces a newly created tab.
	MessageTypeTabOpened MessageType = "TAB_OPENED"
	// MessageTypeTabClosed announces a removed tab.
	MessageTypeTabClosed MessageType = "TAB_CLOSED"
	// MessageTypeTabActivated announces an active-tab change.
	MessageTypeTabActivated MessageType = "TAB_ACTIVATED"
)

// Valid reports whether t is a known message type.
func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeStateUpdate,
		MessageTypeDependencyUpdate,
		MessageTypeRequestState,
		MessageTypeCustomEvent,
		MessageTypeTabOpened,
		MessageTypeTabClosed,
		MessageTypeTabActivated:
		return true
	}
	return false
}

// Message is one bus message. TargetID empty means broadcast.
type Message struct {
	ID        MessageID      `json:"id"`
	Type      MessageType    `json:"type"`
	SenderID  TabID          `json:"senderId"`
	TargetID  TabID          `json:"targetId,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// Broadcast reports whether the message has no specific target.
func (m Message) Broadcast() bool {
	return m.TargetID == ""
}

// MessageHandler consumes a delivered message. A returned error is
// logged by the bus and never aborts delivery to other subscribers.
type MessageHandler func(Message) error

// SubscriptionID uniquely identifies a subscription.
type SubscriptionID string

// Subscription is a standing filter on the bus. An empty MessageType
// or SenderID matches everything.
type Subscription struct {
	ID          SubscriptionID
	TabID       TabID
	MessageType MessageType
	SenderID    TabID
	Handler     MessageHandler
}

// Matches reports whether msg should be delivered to this subscription.
func (s *Subscription) Matches(msg Message) bool {
	if msg.TargetID != "" && msg.TargetID != s.TabID {
		return false
	}
	if s.MessageType != "" && s.MessageType != msg.Type {
		return false
	}
	if s.SenderID != "" && s.SenderID != msg.SenderID {
		return false
	}
	return true
}
