// Package tabs implements the tab manager: the ordered collections of
// tabs and groups, their lifecycle operations, and the composition of
// the storage adapter and the message bus.
package tabs

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
	"github.com/tabdeck/tabdeck/internal/domain/repository"
	"github.com/tabdeck/tabdeck/internal/logging"
	"github.com/tabdeck/tabdeck/internal/messaging"
)

// Manager owns the tab and group collections. In-memory state is the
// authoritative source for reads and is mutated before the persistence
// call resolves; a failed save is logged, never rolled back.
//
// Managers are constructed explicitly and injected into consumers so
// independent instances can coexist. There is no package-level default.
type Manager struct {
	mu     sync.RWMutex
	tabs   *entity.TabList
	groups *entity.GroupList
	store  repository.TabStore
	bus    *messaging.Bus
	idGen  entity.IDGenerator
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithIDGenerator overrides the tab/group ID generator.
func WithIDGenerator(gen entity.IDGenerator) Option {
	return func(m *Manager) {
		if gen != nil {
			m.idGen = gen
		}
	}
}

// WithClock overrides the creation-timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a manager over the given store and bus, starting from
// empty collections. Call Load to hydrate persisted state.
func New(store repository.TabStore, bus *messaging.Bus, opts ...Option) *Manager {
	m := &Manager{
		tabs:   entity.NewTabList(),
		groups: entity.NewGroupList(),
		store:  store,
		bus:    bus,
		idGen:  entity.UUIDGenerator(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load replaces the in-memory collections with the persisted snapshot.
// Stored data is re-normalized on the way in: orders are re-densified
// in their stored sequence and the single-active invariant is repaired.
func (m *Manager) Load(ctx context.Context) error {
	data, err := m.store.Load(ctx)
	if err != nil {
		return err
	}

	tl := data.TabListFrom()
	sort.SliceStable(tl.Tabs, func(i, j int) bool { return tl.Tabs[i].Order < tl.Tabs[j].Order })
	activeSeen := false
	for i, tab := range tl.Tabs {
		tab.Order = i
		if tab.IsActive {
			if activeSeen {
				tab.IsActive = false
			}
			activeSeen = true
		}
	}
	if !activeSeen && len(tl.Tabs) > 0 {
		tl.Tabs[0].IsActive = true
	}

	gl := data.GroupListFrom()
	sort.SliceStable(gl.Groups, func(i, j int) bool { return gl.Groups[i].Order < gl.Groups[j].Order })
	for i := range gl.Groups {
		gl.Groups[i].Order = i
	}

	m.mu.Lock()
	m.tabs = tl
	m.groups = gl
	m.mu.Unlock()

	logging.FromContext(ctx).Info().
		Int("tab_count", tl.Count()).
		Int("group_count", gl.Count()).
		Msg("tab state loaded")
	return nil
}

// Clear removes every tab and group, in memory and from storage.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.tabs = entity.NewTabList()
	m.groups = entity.NewGroupList()
	m.mu.Unlock()
	return m.store.Clear(ctx)
}

// persist writes the current snapshot. Write failures are logged and
// swallowed: the in-memory mutation already succeeded and UI
// responsiveness wins over strict durability here.
func (m *Manager) persist(ctx context.Context) {
	data := entity.NewStoredTabData(m.tabs, m.groups)
	if err := m.store.Save(ctx, data); err != nil {
		logging.FromContext(ctx).Error().Err(err).
			Msg("failed to persist tab data, in-memory state retained")
	}
}

// announce raises a lifecycle message on the bus. Delivery failures of
// individual subscribers are already handled inside the bus.
func (m *Manager) announce(ctx context.Context, msgType entity.MessageType, senderID entity.TabID, payload map[string]any) {
	if m.bus == nil {
		return
	}
	if _, err := m.bus.Send(ctx, messaging.SendInput{
		Type:     msgType,
		SenderID: senderID,
		Payload:  payload,
	}); err != nil {
		logging.FromContext(ctx).Warn().Err(err).
			Str("type", string(msgType)).
			Msg("failed to announce tab lifecycle message")
	}
}

// Tabs returns a defensive copy of all tabs in strip order.
func (m *Manager) Tabs() []entity.Tab {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]entity.Tab, 0, m.tabs.Count())
	for _, tab := range m.tabs.Tabs {
		out = append(out, *tab)
	}
	return out
}

// ActiveTab returns the active tab, if any.
func (m *Manager) ActiveTab() (entity.Tab, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if tab := m.tabs.ActiveTab(); tab != nil {
		return *tab, true
	}
	return entity.Tab{}, false
}

// Tab returns a single tab by id.
func (m *Manager) Tab(id entity.TabID) (entity.Tab, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if tab := m.tabs.Find(id); tab != nil {
		return *tab, nil
	}
	return entity.Tab{}, entity.NewTabNotFound(id)
}

// TabCount returns the number of tabs.
func (m *Manager) TabCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tabs.Count()
}
