package messaging

import (
	"context"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
	"github.com/tabdeck/tabdeck/internal/logging"
)

// UpdateState stores state under tabID. When broadcast is true a
// STATE_UPDATE message is emitted from the tab. Dependents of tabID are
// always sent a targeted DEPENDENCY_UPDATE regardless of broadcast:
// the dependency link is an explicit subscription distinct from the
// general broadcast channel.
func (b *Bus) UpdateState(ctx context.Context, tabID entity.TabID, state map[string]any, broadcast bool) error {
	b.mu.Lock()
	b.states[tabID] = copyState(state)
	b.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Str("tab_id", string(tabID)).
		Bool("broadcast", broadcast).
		Msg("tab state updated")

	if broadcast {
		if _, err := b.Send(ctx, SendInput{
			Type:     entity.MessageTypeStateUpdate,
			SenderID: tabID,
			Payload:  map[string]any{"state": copyState(state)},
		}); err != nil {
			return err
		}
	}

	return b.notifyDependents(ctx, tabID, state)
}

// State returns a copy of the stored state for tabID, or nil when the
// tab has none.
func (b *Bus) State(tabID entity.TabID) map[string]any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	state, ok := b.states[tabID]
	if !ok {
		return nil
	}
	return copyState(state)
}

// ClearState drops the stored state for tabID.
func (b *Bus) ClearState(tabID entity.TabID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.states, tabID)
}

func (b *Bus) notifyDependents(ctx context.Context, providerID entity.TabID, state map[string]any) error {
	for _, dep := range b.DependentsOf(providerID) {
		if _, err := b.Send(ctx, SendInput{
			Type:     entity.MessageTypeDependencyUpdate,
			SenderID: providerID,
			TargetID: dep.DependentID,
			Payload: map[string]any{
				"dependencyType": string(dep.Type),
				"state":          copyState(state),
			},
		}); err != nil {
			return err
		}
	}
	return nil
}

// AddDependency upserts a dependency keyed by (dependent, provider,
// type). If the provider already has state, it is pushed to the
// dependent immediately so a freshly wired dependent does not wait for
// the next provider update.
func (b *Bus) AddDependency(ctx context.Context, dep entity.Dependency) error {
	if dep.DependentID == "" || dep.ProviderID == "" {
		return &entity.InvalidArgumentError{Reason: "dependency requires both dependent and provider ids"}
	}
	if dep.Type == "" {
		dep.Type = entity.DependencyTypeData
	}

	key := dep.Key()
	b.mu.Lock()
	if _, exists := b.deps[key]; !exists {
		b.depOrder = append(b.depOrder, key)
	}
	b.deps[key] = dep
	state, hasState := b.states[dep.ProviderID]
	if hasState {
		state = copyState(state)
	}
	b.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Str("dependent_id", string(dep.DependentID)).
		Str("provider_id", string(dep.ProviderID)).
		Str("type", string(dep.Type)).
		Msg("dependency registered")

	if !hasState {
		return nil
	}
	_, err := b.Send(ctx, SendInput{
		Type:     entity.MessageTypeDependencyUpdate,
		SenderID: dep.ProviderID,
		TargetID: dep.DependentID,
		Payload: map[string]any{
			"dependencyType": string(dep.Type),
			"state":          state,
		},
	})
	return err
}

// RemoveDependency removes every dependency between the pair,
// regardless of type.
func (b *Bus) RemoveDependency(_ context.Context, dependentID, providerID entity.TabID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.depOrder[:0]
	for _, key := range b.depOrder {
		if key.DependentID == dependentID && key.ProviderID == providerID {
			delete(b.deps, key)
			continue
		}
		kept = append(kept, key)
	}
	b.depOrder = kept
}

// DependenciesOf returns the dependencies where tabID is the dependent.
func (b *Bus) DependenciesOf(tabID entity.TabID) []entity.Dependency {
	return b.filterDeps(func(d entity.Dependency) bool { return d.DependentID == tabID })
}

// DependentsOf returns the dependencies where tabID is the provider.
func (b *Bus) DependentsOf(tabID entity.TabID) []entity.Dependency {
	return b.filterDeps(func(d entity.Dependency) bool { return d.ProviderID == tabID })
}

func (b *Bus) filterDeps(keep func(entity.Dependency) bool) []entity.Dependency {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]entity.Dependency, 0)
	for _, key := range b.depOrder {
		dep := b.deps[key]
		if keep(dep) {
			out = append(out, dep)
		}
	}
	return out
}

func copyState(state map[string]any) map[string]any {
	if state == nil {
		return nil
	}
	out := make(map[string]any, len(state))
	for k, v := range state {
		out[k] = v
	}
	return out
}
