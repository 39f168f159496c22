package tabs

import (
	"context"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
	"github.com/tabdeck/tabdeck/internal/logging"
)

// CreateGroupInput contains parameters for creating a group.
type CreateGroupInput struct {
	Title string
	Icon  string
	Color string
}

// CreateGroup creates a group at the end of the group order.
func (m *Manager) CreateGroup(ctx context.Context, input CreateGroupInput) (entity.Group, error) {
	m.mu.Lock()
	group := &entity.Group{
		ID:    entity.GroupID(m.idGen()),
		Title: input.Title,
		Icon:  input.Icon,
		Color: input.Color,
	}
	m.groups.Add(group)
	created := *group
	m.persist(ctx)
	m.mu.Unlock()

	logging.FromContext(ctx).Info().
		Str("group_id", string(created.ID)).
		Str("title", created.Title).
		Msg("group created")
	return created, nil
}

// RemoveGroup removes a group. With keepTabs, member tabs survive
// ungrouped; without it they are removed one by one, each removal
// following the normal tab-removal invariants.
func (m *Manager) RemoveGroup(ctx context.Context, id entity.GroupID, keepTabs bool) error {
	m.mu.Lock()
	if m.groups.Find(id) == nil {
		m.mu.Unlock()
		return entity.NewGroupNotFound(id)
	}

	members := make([]entity.TabID, 0)
	for _, tab := range m.tabs.Tabs {
		if tab.GroupID == id {
			members = append(members, tab.ID)
		}
	}

	if keepTabs {
		for _, tab := range m.tabs.Tabs {
			if tab.GroupID == id {
				tab.GroupID = ""
			}
		}
	} else {
		for _, tabID := range members {
			m.tabs.Remove(tabID)
		}
	}
	m.groups.Remove(id)
	m.persist(ctx)
	m.mu.Unlock()

	logging.FromContext(ctx).Info().
		Str("group_id", string(id)).
		Bool("keep_tabs", keepTabs).
		Int("member_count", len(members)).
		Msg("group removed")

	if !keepTabs {
		for _, tabID := range members {
			m.announce(ctx, entity.MessageTypeTabClosed, tabID, nil)
		}
	}
	return nil
}

// GroupUpdate carries the mergeable group fields.
type GroupUpdate struct {
	Title *string
	Icon  *string
	Color *string
}

// UpdateGroup merges the given fields into an existing group.
func (m *Manager) UpdateGroup(ctx context.Context, id entity.GroupID, update GroupUpdate) (entity.Group, error) {
	m.mu.Lock()
	group := m.groups.Find(id)
	if group == nil {
		m.mu.Unlock()
		return entity.Group{}, entity.NewGroupNotFound(id)
	}
	if update.Title != nil {
		group.Title = *update.Title
	}
	if update.Icon != nil {
		group.Icon = *update.Icon
	}
	if update.Color != nil {
		group.Color = *update.Color
	}
	updated := *group
	m.persist(ctx)
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Str("group_id", string(id)).
		Msg("group updated")
	return updated, nil
}

// ReorderGroups rearranges groups to match ids, with the same
// exact-set validation as ReorderTabs.
func (m *Manager) ReorderGroups(ctx context.Context, ids []entity.GroupID) error {
	m.mu.Lock()
	if err := m.groups.Reorder(ids); err != nil {
		m.mu.Unlock()
		return err
	}
	m.persist(ctx)
	m.mu.Unlock()
	return nil
}

// MoveGroup repositions a group within the group order.
func (m *Manager) MoveGroup(ctx context.Context, id entity.GroupID, newIndex int) error {
	m.mu.Lock()
	if newIndex < 0 || newIndex >= m.groups.Count() {
		m.mu.Unlock()
		return &entity.InvalidArgumentError{Reason: "move index out of range"}
	}
	if m.groups.Find(id) == nil {
		m.mu.Unlock()
		return entity.NewGroupNotFound(id)
	}
	m.groups.Move(id, newIndex)
	m.persist(ctx)
	m.mu.Unlock()
	return nil
}

// ToggleGroupCollapse flips a group's collapsed flag.
func (m *Manager) ToggleGroupCollapse(ctx context.Context, id entity.GroupID) (entity.Group, error) {
	m.mu.Lock()
	group := m.groups.Find(id)
	if group == nil {
		m.mu.Unlock()
		return entity.Group{}, entity.NewGroupNotFound(id)
	}
	group.IsCollapsed = !group.IsCollapsed
	updated := *group
	m.persist(ctx)
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Str("group_id", string(id)).
		Bool("is_collapsed", updated.IsCollapsed).
		Msg("group collapse toggled")
	return updated, nil
}

// AddTabToGroup sets a tab's group membership.
func (m *Manager) AddTabToGroup(ctx context.Context, tabID entity.TabID, groupID entity.GroupID) error {
	m.mu.Lock()
	tab := m.tabs.Find(tabID)
	if tab == nil {
		m.mu.Unlock()
		return entity.NewTabNotFound(tabID)
	}
	if m.groups.Find(groupID) == nil {
		m.mu.Unlock()
		return entity.NewGroupNotFound(groupID)
	}
	tab.GroupID = groupID
	m.persist(ctx)
	m.mu.Unlock()
	return nil
}

// RemoveTabFromGroup clears a tab's group membership.
func (m *Manager) RemoveTabFromGroup(ctx context.Context, tabID entity.TabID) error {
	m.mu.Lock()
	tab := m.tabs.Find(tabID)
	if tab == nil {
		m.mu.Unlock()
		return entity.NewTabNotFound(tabID)
	}
	tab.GroupID = ""
	m.persist(ctx)
	m.mu.Unlock()
	return nil
}

// Groups returns a defensive copy of all groups in order.
func (m *Manager) Groups() []entity.Group {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]entity.Group, 0, m.groups.Count())
	for _, group := range m.groups.Groups {
		out = append(out, *group)
	}
	return out
}

// Group returns a single group by id.
func (m *Manager) Group(id entity.GroupID) (entity.Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if group := m.groups.Find(id); group != nil {
		return *group, nil
	}
	return entity.Group{}, entity.NewGroupNotFound(id)
}

// GroupTabs returns the member tabs of a group in strip order.
// Membership is derived by scanning tabs; groups own no tab list.
func (m *Manager) GroupTabs(id entity.GroupID) ([]entity.Tab, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.groups.Find(id) == nil {
		return nil, entity.NewGroupNotFound(id)
	}
	out := make([]entity.Tab, 0)
	for _, tab := range m.tabs.Tabs {
		if tab.GroupID == id {
			out = append(out, *tab)
		}
	}
	return out, nil
}
