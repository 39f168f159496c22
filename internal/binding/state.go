package binding

import (
	"context"
	"sync"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
	"github.com/tabdeck/tabdeck/internal/messaging"
	"github.com/tabdeck/tabdeck/internal/tabs"
)

// State mirrors one tab's shared state and dependency projections,
// refreshing whenever a STATE_UPDATE or DEPENDENCY_UPDATE reaches the
// tab. Construct with NewState, release with Close.
type State struct {
	mgr   *tabs.Manager
	tabID entity.TabID

	mu         sync.Mutex
	state      map[string]any
	deps       []entity.Dependency
	dependents []entity.Dependency

	subID     entity.SubscriptionID
	closeOnce sync.Once
}

// NewState loads the tab's current state, subscribes for refreshes and
// snapshots the dependency projections.
func NewState(ctx context.Context, mgr *tabs.Manager, tabID entity.TabID) (*State, error) {
	b := &State{
		mgr:   mgr,
		tabID: tabID,
	}
	b.state = mgr.TabState(tabID)
	b.refreshProjections()

	// No type filter: the handler cares about two message kinds and
	// the subscription filter can only express one.
	subID, err := mgr.SubscribeToTabMessages(ctx, messaging.SubscribeInput{
		TabID:   tabID,
		Handler: b.receive,
	})
	if err != nil {
		return nil, err
	}
	b.subID = subID
	return b, nil
}

func (b *State) receive(msg entity.Message) error {
	switch msg.Type {
	case entity.MessageTypeStateUpdate:
		if msg.SenderID != b.tabID {
			return nil
		}
		fresh := b.mgr.TabState(b.tabID)
		b.mu.Lock()
		b.state = fresh
		b.mu.Unlock()
	case entity.MessageTypeDependencyUpdate:
		// The provider's state arrives in the payload; merge it into
		// the local mirror only. Writing it back through the manager
		// would feed the dependency graph its own output.
		incoming, _ := msg.Payload["state"].(map[string]any)
		if incoming == nil {
			return nil
		}
		b.mu.Lock()
		if b.state == nil {
			b.state = make(map[string]any, len(incoming))
		}
		for k, v := range incoming {
			b.state[k] = v
		}
		b.mu.Unlock()
	case entity.MessageTypeRequestState,
		entity.MessageTypeCustomEvent,
		entity.MessageTypeTabOpened,
		entity.MessageTypeTabClosed,
		entity.MessageTypeTabActivated:
		return nil
	}
	return nil
}

// Value returns a copy of the mirrored state.
func (b *State) Value() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == nil {
		return nil
	}
	out := make(map[string]any, len(b.state))
	for k, v := range b.state {
		out[k] = v
	}
	return out
}

// UpdateState shallow-merges patch into the current state and stores
// the result via the manager, broadcasting the change.
func (b *State) UpdateState(ctx context.Context, patch map[string]any) error {
	b.mu.Lock()
	merged := make(map[string]any, len(b.state)+len(patch))
	for k, v := range b.state {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	b.state = merged
	b.mu.Unlock()

	return b.mgr.UpdateTabState(ctx, b.tabID, merged, true)
}

// Dependencies returns the cached list of edges where this tab is the
// dependent.
func (b *State) Dependencies() []entity.Dependency {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entity.Dependency, len(b.deps))
	copy(out, b.deps)
	return out
}

// Dependents returns the cached list of edges where this tab is the
// provider.
func (b *State) Dependents() []entity.Dependency {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entity.Dependency, len(b.dependents))
	copy(out, b.dependents)
	return out
}

// AddDependency declares that this tab derives state of the given kind
// from providerID, then refreshes the cached projections.
func (b *State) AddDependency(ctx context.Context, providerID entity.TabID, depType entity.DependencyType, metadata map[string]any) error {
	err := b.mgr.AddTabDependency(ctx, entity.Dependency{
		DependentID: b.tabID,
		ProviderID:  providerID,
		Type:        depType,
		Metadata:    metadata,
	})
	if err != nil {
		return err
	}
	b.refreshProjections()
	return nil
}

// RemoveDependency removes every edge between this tab and providerID,
// then refreshes the cached projections.
func (b *State) RemoveDependency(ctx context.Context, providerID entity.TabID) {
	b.mgr.RemoveTabDependency(ctx, b.tabID, providerID)
	b.refreshProjections()
}

func (b *State) refreshProjections() {
	deps := b.mgr.TabDependencies(b.tabID)
	dependents := b.mgr.TabDependents(b.tabID)
	b.mu.Lock()
	b.deps = deps
	b.dependents = dependents
	b.mu.Unlock()
}

// Close unsubscribes the binding exactly once.
func (b *State) Close(ctx context.Context) {
	b.closeOnce.Do(func() {
		b.mgr.UnsubscribeFromTabMessages(ctx, b.subID)
	})
}
