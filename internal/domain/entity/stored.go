package entity

// StoredDataVersion is the current schema version for persisted tab
// data. Increment when making breaking changes to the serialization
// format. Version 0 is the legacy bare-Tab[] layout.
const StoredDataVersion = 1

// StoredTabData is the atomic persisted unit: tabs and groups are
// always written and read together so the two collections cannot get
// out of step on disk.
type StoredTabData struct {
	Version int     `json:"version"`
	Tabs    []Tab   `json:"tabs"`
	Groups  []Group `json:"groups"`
}

// NewStoredTabData builds a current-version snapshot from live
// collections, copying every entity by value.
func NewStoredTabData(tabs *TabList, groups *GroupList) *StoredTabData {
	data := &StoredTabData{
		Version: StoredDataVersion,
		Tabs:    make([]Tab, 0),
		Groups:  make([]Group, 0),
	}
	if tabs != nil {
		for _, tab := range tabs.Tabs {
			data.Tabs = append(data.Tabs, *tab)
		}
	}
	if groups != nil {
		for _, group := range groups.Groups {
			data.Groups = append(data.Groups, *group)
		}
	}
	return data
}

// TabListFrom rebuilds a live TabList from persisted data.
func (d *StoredTabData) TabListFrom() *TabList {
	tl := NewTabList()
	for i := range d.Tabs {
		tab := d.Tabs[i]
		tl.Tabs = append(tl.Tabs, &tab)
	}
	return tl
}

// GroupListFrom rebuilds a live GroupList from persisted data.
func (d *StoredTabData) GroupListFrom() *GroupList {
	gl := NewGroupList()
	for i := range d.Groups {
		group := d.Groups[i]
		gl.Groups = append(gl.Groups, &group)
	}
	return gl
}
