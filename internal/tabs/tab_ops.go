package tabs

import (
	"context"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
	"github.com/tabdeck/tabdeck/internal/logging"
)

// AddTabInput contains parameters for creating a new tab.
type AddTabInput struct {
	Title    string
	Content  string
	IsPinned bool
	GroupID  entity.GroupID // Optional; must resolve when set
}

// AddTab creates a tab at the end of the strip. The first tab in an
// empty collection becomes active.
func (m *Manager) AddTab(ctx context.Context, input AddTabInput) (entity.Tab, error) {
	m.mu.Lock()
	if input.GroupID != "" && m.groups.Find(input.GroupID) == nil {
		m.mu.Unlock()
		return entity.Tab{}, entity.NewGroupNotFound(input.GroupID)
	}

	tab := &entity.Tab{
		ID:        entity.TabID(m.idGen()),
		Title:     input.Title,
		Content:   input.Content,
		IsPinned:  input.IsPinned,
		GroupID:   input.GroupID,
		CreatedAt: m.now(),
	}
	m.tabs.Add(tab)
	created := *tab
	m.persist(ctx)
	m.mu.Unlock()

	logging.FromContext(ctx).Info().
		Str("tab_id", string(created.ID)).
		Str("title", created.Title).
		Int("order", created.Order).
		Bool("is_active", created.IsActive).
		Msg("tab added")

	m.announce(ctx, entity.MessageTypeTabOpened, created.ID, map[string]any{"title": created.Title})
	return created, nil
}

// RemoveTab removes a tab and re-densifies the remaining orders. If
// the removed tab was active and tabs remain, the tab sliding into its
// old index becomes active (the last tab when the removed one was last).
func (m *Manager) RemoveTab(ctx context.Context, id entity.TabID) error {
	m.mu.Lock()
	if !m.tabs.Remove(id) {
		m.mu.Unlock()
		return entity.NewTabNotFound(id)
	}
	remaining := m.tabs.Count()
	m.persist(ctx)
	m.mu.Unlock()

	logging.FromContext(ctx).Info().
		Str("tab_id", string(id)).
		Int("remaining", remaining).
		Msg("tab removed")

	m.announce(ctx, entity.MessageTypeTabClosed, id, nil)
	return nil
}

// ActivateTab makes the given tab the single active one. Activating
// the already-active tab succeeds without effect.
func (m *Manager) ActivateTab(ctx context.Context, id entity.TabID) error {
	m.mu.Lock()
	previous := m.tabs.ActiveTab()
	if previous != nil && previous.ID == id {
		m.mu.Unlock()
		return nil
	}
	if !m.tabs.Activate(id) {
		m.mu.Unlock()
		return entity.NewTabNotFound(id)
	}
	m.persist(ctx)
	m.mu.Unlock()

	log := logging.FromContext(ctx)
	if previous != nil {
		log.Debug().Str("from", string(previous.ID)).Str("to", string(id)).Msg("active tab switched")
	} else {
		log.Debug().Str("to", string(id)).Msg("active tab set")
	}

	m.announce(ctx, entity.MessageTypeTabActivated, id, nil)
	return nil
}

// ActivateNext activates the tab after the active one, wrapping around.
func (m *Manager) ActivateNext(ctx context.Context) error {
	return m.activateAdjacent(ctx, 1)
}

// ActivatePrevious activates the tab before the active one, wrapping
// around.
func (m *Manager) ActivatePrevious(ctx context.Context) error {
	return m.activateAdjacent(ctx, -1)
}

func (m *Manager) activateAdjacent(ctx context.Context, direction int) error {
	m.mu.RLock()
	id := m.tabs.Next(direction)
	m.mu.RUnlock()
	if id == "" {
		return nil
	}
	return m.ActivateTab(ctx, id)
}

// TabUpdate carries the mergeable tab fields. Nil fields are left
// untouched; ID, Order and IsActive are not reachable through updates.
type TabUpdate struct {
	Title    *string
	Content  *string
	IsPinned *bool
}

// UpdateTab merges the given fields into an existing tab.
func (m *Manager) UpdateTab(ctx context.Context, id entity.TabID, update TabUpdate) (entity.Tab, error) {
	m.mu.Lock()
	tab := m.tabs.Find(id)
	if tab == nil {
		m.mu.Unlock()
		return entity.Tab{}, entity.NewTabNotFound(id)
	}
	if update.Title != nil {
		tab.Title = *update.Title
	}
	if update.Content != nil {
		tab.Content = *update.Content
	}
	if update.IsPinned != nil {
		tab.IsPinned = *update.IsPinned
	}
	updated := *tab
	m.persist(ctx)
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Str("tab_id", string(id)).
		Msg("tab updated")
	return updated, nil
}

// ReorderTabs rearranges the strip to match ids. The id set must
// exactly match the existing tabs; the collection is left unmutated on
// a mismatch.
func (m *Manager) ReorderTabs(ctx context.Context, ids []entity.TabID) error {
	m.mu.Lock()
	if err := m.tabs.Reorder(ids); err != nil {
		m.mu.Unlock()
		return err
	}
	m.persist(ctx)
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Int("tab_count", len(ids)).
		Msg("tabs reordered")
	return nil
}

// MoveTab removes the tab from its current position and reinserts it
// at newIndex, re-densifying every order.
func (m *Manager) MoveTab(ctx context.Context, id entity.TabID, newIndex int) error {
	m.mu.Lock()
	if newIndex < 0 || newIndex >= m.tabs.Count() {
		m.mu.Unlock()
		return &entity.InvalidArgumentError{Reason: "move index out of range"}
	}
	if m.tabs.Find(id) == nil {
		m.mu.Unlock()
		return entity.NewTabNotFound(id)
	}
	m.tabs.Move(id, newIndex)
	m.persist(ctx)
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Str("tab_id", string(id)).
		Int("index", newIndex).
		Msg("tab moved")
	return nil
}
