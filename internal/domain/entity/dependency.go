package entity

// DependencyType names the kind of state a dependent derives from its
// provider. Multiple dependencies with different types may exist
// between the same pair of tabs.
type DependencyType string

// DependencyTypeData is the common "raw shared state" dependency kind.
const DependencyTypeData DependencyType = "data"

// Dependency is a directed edge meaning "DependentID's displayed state
// derives from ProviderID's state of kind Type". A dependency is
// uniquely keyed by (DependentID, ProviderID, Type).
type Dependency struct {
	DependentID TabID          `json:"dependentId"`
	ProviderID  TabID          `json:"providerId"`
	Type        DependencyType `json:"type"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Key identifies a dependency for upsert and removal.
func (d Dependency) Key() DependencyKey {
	return DependencyKey{
		DependentID: d.DependentID,
		ProviderID:  d.ProviderID,
		Type:        d.Type,
	}
}

// DependencyKey is the unique identity of a dependency edge.
type DependencyKey struct {
	DependentID TabID
	ProviderID  TabID
	Type        DependencyType
}
