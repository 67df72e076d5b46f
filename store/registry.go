package store

// Registry holds the child sort-key prefixes registered under each root
// entity type. The table has no cascading-delete primitive, so deleting a
// root requires enumerating every registered child prefix and batch-deleting
// the results alongside the root item.
type Registry struct {
	byRoot map[string][]string
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{byRoot: make(map[string][]string)}
}

// Register adds child entity types under a root type.
func (r *Registry) Register(rootType string, childTypes ...string) {
	r.byRoot[rootType] = append(r.byRoot[rootType], childTypes...)
}

// ChildrenOf returns the child entity types registered under a root type.
func (r *Registry) ChildrenOf(rootType string) []string {
	return r.byRoot[rootType]
}

// DefaultRegistry returns the registry for the event-planning layout. The
// POLL, BUDGET and VENDOR prefixes are swept on delete even though those
// entities normally live embedded in the event root item, matching the
// write-side convention wherever historical items exist.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TypeEvent,
		TypeAttendee,
		TypePoll,
		TypeMedia,
		TypeMessage,
		TypeBudget,
		TypeVendor,
	)
	return r
}
