package tabs

import (
	"context"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
	"github.com/tabdeck/tabdeck/internal/messaging"
)

// The messaging surface consumed by UI adapters. These delegate to the
// composed bus so consumers hold a single manager reference.

// SendTabMessage publishes a message on the bus.
func (m *Manager) SendTabMessage(ctx context.Context, input messaging.SendInput) (entity.Message, error) {
	return m.bus.Send(ctx, input)
}

// SubscribeToTabMessages registers a standing filter on the bus.
func (m *Manager) SubscribeToTabMessages(ctx context.Context, input messaging.SubscribeInput) (entity.SubscriptionID, error) {
	return m.bus.Subscribe(ctx, input)
}

// UnsubscribeFromTabMessages removes a subscription; unknown IDs are
// ignored.
func (m *Manager) UnsubscribeFromTabMessages(ctx context.Context, id entity.SubscriptionID) {
	m.bus.Unsubscribe(ctx, id)
}

// TabState returns a copy of the shared state stored for a tab.
func (m *Manager) TabState(tabID entity.TabID) map[string]any {
	return m.bus.State(tabID)
}

// UpdateTabState stores shared state for a tab, optionally
// broadcasting a STATE_UPDATE. Dependents are notified either way.
func (m *Manager) UpdateTabState(ctx context.Context, tabID entity.TabID, state map[string]any, broadcast bool) error {
	return m.bus.UpdateState(ctx, tabID, state, broadcast)
}

// AddTabDependency wires a dependent tab to a provider's state.
func (m *Manager) AddTabDependency(ctx context.Context, dep entity.Dependency) error {
	return m.bus.AddDependency(ctx, dep)
}

// RemoveTabDependency removes every dependency between the pair.
func (m *Manager) RemoveTabDependency(ctx context.Context, dependentID, providerID entity.TabID) {
	m.bus.RemoveDependency(ctx, dependentID, providerID)
}

// TabDependencies returns the dependencies where the tab is the
// dependent.
func (m *Manager) TabDependencies(tabID entity.TabID) []entity.Dependency {
	return m.bus.DependenciesOf(tabID)
}

// TabDependents returns the dependencies where the tab is the
// provider.
func (m *Manager) TabDependents(tabID entity.TabID) []entity.Dependency {
	return m.bus.DependentsOf(tabID)
}

// MessageHistory returns a copy of the bus's retained history.
func (m *Manager) MessageHistory() []entity.Message {
	return m.bus.History()
}
