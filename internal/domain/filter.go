package domain

// FilterState is the current user selection. The zero value means no filter
// is active. Text is stored lower-cased and trimmed; Levels is multi-valued,
// the remaining facets hold at most one value each.
type FilterState struct {
	Text       string
	Levels     []string
	Collection string
	Duration   string
	Lang       string
	Ages       string
}

// Active reports whether any facet constrains the catalog. An idle state
// deliberately renders nothing: the storefront shows no cards until the
// visitor engages at least one filter.
func (s FilterState) Active() bool {
	return s.Text != "" ||
		len(s.Levels) > 0 ||
		s.Collection != "" ||
		s.Duration != "" ||
		s.Lang != "" ||
		s.Ages != ""
}

// Evaluation is the outcome of applying a FilterState to a CatalogIndex.
type Evaluation struct {
	// Visible maps title ID to its computed visibility.
	Visible map[string]bool
	// AnyVisible is the OR over all title visibilities.
	AnyVisible bool
	// LevelGroups maps each level label to whether its group contains at
	// least one visible title, so empty per-level sections can be hidden.
	LevelGroups map[string]bool
}
