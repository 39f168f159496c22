package entity

// GroupID uniquely identifies a tab group.
type GroupID string

// Group is a named, orderable, collapsible container of tabs. A group
// does not own a tab list: membership is derived by scanning tabs for
// a matching GroupID.
type Group struct {
	ID          GroupID `json:"id"`
	Title       string  `json:"title"`
	Icon        string  `json:"icon,omitempty"`
	Color       string  `json:"color,omitempty"`
	IsCollapsed bool    `json:"isCollapsed"`
	Order       int     `json:"order"` // Dense 0-based, independent of tab order
}

// GroupList manages an ordered collection of groups with the same
// dense-order discipline as TabList.
type GroupList struct {
	Groups []*Group
}

// NewGroupList creates an empty group list.
func NewGroupList() *GroupList {
	return &GroupList{
		Groups: make([]*Group, 0),
	}
}

// Add appends a group to the list.
func (gl *GroupList) Add(group *Group) {
	group.Order = len(gl.Groups)
	gl.Groups = append(gl.Groups, group)
}

// Remove removes a group by ID and reindexes the remaining orders.
func (gl *GroupList) Remove(id GroupID) bool {
	for i, group := range gl.Groups {
		if group.ID != id {
			continue
		}
		gl.Groups = append(gl.Groups[:i], gl.Groups[i+1:]...)
		for j := range gl.Groups {
			gl.Groups[j].Order = j
		}
		return true
	}
	return false
}

// Find returns a group by ID, or nil.
func (gl *GroupList) Find(id GroupID) *Group {
	for _, group := range gl.Groups {
		if group.ID == id {
			return group
		}
	}
	return nil
}

// Count returns the number of groups.
func (gl *GroupList) Count() int {
	return len(gl.Groups)
}

// Move moves a group to a new position and reindexes all orders.
func (gl *GroupList) Move(id GroupID, newPos int) bool {
	if newPos < 0 || newPos >= len(gl.Groups) {
		return false
	}
	var group *Group
	var oldPos int
	for i, g := range gl.Groups {
		if g.ID == id {
			group = g
			oldPos = i
			break
		}
	}
	if group == nil {
		return false
	}
	gl.Groups = append(gl.Groups[:oldPos], gl.Groups[oldPos+1:]...)
	gl.Groups = append(gl.Groups[:newPos], append([]*Group{group}, gl.Groups[newPos:]...)...)
	for i := range gl.Groups {
		gl.Groups[i].Order = i
	}
	return true
}

// Reorder rearranges the list to match ids, with the same exact-set
// validation as TabList.Reorder.
func (gl *GroupList) Reorder(ids []GroupID) error {
	if len(ids) != len(gl.Groups) {
		return &InvalidArgumentError{Reason: "new order must include all existing groups"}
	}
	byID := make(map[GroupID]*Group, len(gl.Groups))
	for _, group := range gl.Groups {
		byID[group.ID] = group
	}
	reordered := make([]*Group, 0, len(ids))
	seen := make(map[GroupID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return &InvalidArgumentError{Reason: "new order must include all existing groups"}
		}
		group, ok := byID[id]
		if !ok {
			return &InvalidArgumentError{Reason: "new order must include all existing groups"}
		}
		seen[id] = struct{}{}
		reordered = append(reordered, group)
	}
	gl.Groups = reordered
	for i := range gl.Groups {
		gl.Groups[i].Order = i
	}
	return nil
}
