package entity

import "time"

// TabID uniquely identifies a tab.
type TabID string

// Tab represents a unit of UI workspace state: a title, a content
// reference, an activation flag and a position in the tab strip.
type Tab struct {
	ID        TabID     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsActive  bool      `json:"isActive"`
	Order     int       `json:"order"` // Dense 0-based index in the strip
	IsPinned  bool      `json:"isPinned,omitempty"`
	GroupID   GroupID   `json:"groupId,omitempty"` // Empty means ungrouped
	CreatedAt time.Time `json:"createdAt"`
}

// TabList manages an ordered collection of tabs. Order values stay
// dense (0..N-1) across every mutation, and at most one tab is active.
type TabList struct {
	Tabs []*Tab
}

// NewTabList creates an empty tab list.
func NewTabList() *TabList {
	return &TabList{
		Tabs: make([]*Tab, 0),
	}
}

// Add appends a tab to the list. The first tab added becomes active.
func (tl *TabList) Add(tab *Tab) {
	tab.Order = len(tl.Tabs)
	tab.IsActive = len(tl.Tabs) == 0
	tl.Tabs = append(tl.Tabs, tab)
}

// Remove removes a tab by ID and reindexes the remaining orders.
// If the removed tab was active, the tab that slides into its old
// index becomes active (the last tab when the removed one was last).
func (tl *TabList) Remove(id TabID) bool {
	for i, tab := range tl.Tabs {
		if tab.ID != id {
			continue
		}
		wasActive := tab.IsActive
		tl.Tabs = append(tl.Tabs[:i], tl.Tabs[i+1:]...)
		for j := range tl.Tabs {
			tl.Tabs[j].Order = j
		}
		if wasActive && len(tl.Tabs) > 0 {
			next := i
			if next >= len(tl.Tabs) {
				next = len(tl.Tabs) - 1
			}
			tl.Tabs[next].IsActive = true
		}
		return true
	}
	return false
}

// Find returns a tab by ID, or nil.
func (tl *TabList) Find(id TabID) *Tab {
	for _, tab := range tl.Tabs {
		if tab.ID == id {
			return tab
		}
	}
	return nil
}

// ActiveTab returns the currently active tab, or nil when the list is
// empty (an empty list has no active tab).
func (tl *TabList) ActiveTab() *Tab {
	for _, tab := range tl.Tabs {
		if tab.IsActive {
			return tab
		}
	}
	return nil
}

// Activate marks the given tab active and deactivates the previous
// one. Activating the already-active tab is a no-op.
func (tl *TabList) Activate(id TabID) bool {
	target := tl.Find(id)
	if target == nil {
		return false
	}
	for _, tab := range tl.Tabs {
		tab.IsActive = tab.ID == id
	}
	return true
}

// Count returns the number of tabs.
func (tl *TabList) Count() int {
	return len(tl.Tabs)
}

// Move moves a tab to a new position and reindexes all orders.
func (tl *TabList) Move(id TabID, newPos int) bool {
	if newPos < 0 || newPos >= len(tl.Tabs) {
		return false
	}
	var tab *Tab
	var oldPos int
	for i, t := range tl.Tabs {
		if t.ID == id {
			tab = t
			oldPos = i
			break
		}
	}
	if tab == nil {
		return false
	}
	tl.Tabs = append(tl.Tabs[:oldPos], tl.Tabs[oldPos+1:]...)
	tl.Tabs = append(tl.Tabs[:newPos], append([]*Tab{tab}, tl.Tabs[newPos:]...)...)
	for i := range tl.Tabs {
		tl.Tabs[i].Order = i
	}
	return true
}

// Reorder rearranges the list to match ids. The id set must exactly
// match the existing tabs: same cardinality, same membership, no
// duplicates. The list is left untouched on a mismatch.
func (tl *TabList) Reorder(ids []TabID) error {
	if len(ids) != len(tl.Tabs) {
		return &InvalidArgumentError{Reason: "new order must include all existing tabs"}
	}
	byID := make(map[TabID]*Tab, len(tl.Tabs))
	for _, tab := range tl.Tabs {
		byID[tab.ID] = tab
	}
	reordered := make([]*Tab, 0, len(ids))
	seen := make(map[TabID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return &InvalidArgumentError{Reason: "new order must include all existing tabs"}
		}
		tab, ok := byID[id]
		if !ok {
			return &InvalidArgumentError{Reason: "new order must include all existing tabs"}
		}
		seen[id] = struct{}{}
		reordered = append(reordered, tab)
	}
	tl.Tabs = reordered
	for i := range tl.Tabs {
		tl.Tabs[i].Order = i
	}
	return nil
}

// Next returns the ID of the tab offset by direction from the active
// tab, wrapping around. direction is 1 for next, -1 for previous.
func (tl *TabList) Next(direction int) TabID {
	if len(tl.Tabs) == 0 {
		return ""
	}
	active := tl.ActiveTab()
	if active == nil {
		return tl.Tabs[0].ID
	}
	pos := active.Order + direction
	if pos < 0 {
		pos = len(tl.Tabs) - 1
	} else if pos >= len(tl.Tabs) {
		pos = 0
	}
	return tl.Tabs[pos].ID
}
