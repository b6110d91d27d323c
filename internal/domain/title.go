// Package domain defines the catalog data model: titles, the immutable
// catalog index, the filter state, and the evaluation result.
package domain

// Title is one catalog entry, normalized. Optional facet fields hold the
// empty string (or an empty slice) when absent; an absent value is never a
// match target.
type Title struct {
	ID          string   `json:"id"`
	MachineName string   `json:"machine_name"`
	HumanName   string   `json:"human_name"`
	Description string   `json:"description,omitempty"`
	Collection  string   `json:"collection,omitempty"`
	Levels      []string `json:"levels,omitempty"`
	Ages        string   `json:"ages,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Languages   []string `json:"languages,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// FacetOptions are the distinct non-empty facet values observed across the
// catalog, sorted for display. They populate the filter controls.
type FacetOptions struct {
	Collections []string `json:"collections"`
	Levels      []string `json:"levels"`
	Durations   []string `json:"durations"`
	Languages   []string `json:"languages"`
	Ages        []string `json:"ages_list"`
}

// CatalogIndex is the immutable, normalized catalog: titles in source order
// plus the derived facet option sets. Build it once and never mutate it;
// reloads construct a fresh index.
type CatalogIndex struct {
	Titles []Title
	Facets FacetOptions
}

// ByMachineName returns the title with the given slug, if present.
func (idx *CatalogIndex) ByMachineName(slug string) (Title, bool) {
	for _, t := range idx.Titles {
		if t.MachineName == slug {
			return t, true
		}
	}
	return Title{}, false
}
