package components

// Tag labels an entity for gameplay code, scenes and snapshots
type Tag struct {
	Name string
}
