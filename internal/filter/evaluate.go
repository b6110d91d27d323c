package filter

import (
	"strings"

	"github.com/jaumet/avook-catalog/internal/domain"
)

// Evaluate computes visibility for every title in the index under the given
// state. It is a total recompute with no retained state: the index is small
// and stale visibility bits cost more than the scan.
//
// Rules: with no facet active nothing is visible; active facets AND
// together; the level facet ORs the selected levels against the title's
// level set; collection, duration, and ages need exact case-insensitive
// equality; lang needs membership of the upper-cased code in the title's
// language set; only the free-text facet uses substring matching, over the
// title's concatenated searchable text. Absent title fields never match an
// active facet.
func Evaluate(idx *domain.CatalogIndex, state domain.FilterState) domain.Evaluation {
	eval := domain.Evaluation{
		Visible:     make(map[string]bool, len(idx.Titles)),
		LevelGroups: make(map[string]bool),
	}
	for _, level := range idx.Facets.Levels {
		eval.LevelGroups[level] = false
	}

	active := state.Active()
	wantLang := strings.ToUpper(state.Lang)

	for _, t := range idx.Titles {
		visible := active &&
			matchesText(t, state.Text) &&
			matchesLevels(t.Levels, state.Levels) &&
			matchesExact(t.Collection, state.Collection) &&
			matchesExact(t.Duration, state.Duration) &&
			matchesExact(t.Ages, state.Ages) &&
			matchesLang(t.Languages, wantLang)

		eval.Visible[t.ID] = visible
		if visible {
			eval.AnyVisible = true
			for _, level := range t.Levels {
				eval.LevelGroups[level] = true
			}
		}
	}

	return eval
}

// searchableText concatenates every displayed field, lower-cased, the way
// the rendered card reads.
func searchableText(t domain.Title) string {
	var b strings.Builder
	b.WriteString(t.HumanName)
	b.WriteByte(' ')
	b.WriteString(t.Description)
	b.WriteByte(' ')
	b.WriteString(t.Collection)
	b.WriteByte(' ')
	b.WriteString(t.Duration)
	b.WriteByte(' ')
	b.WriteString(t.Ages)
	for _, l := range t.Levels {
		b.WriteByte(' ')
		b.WriteString(l)
	}
	for _, l := range t.Languages {
		b.WriteByte(' ')
		b.WriteString(l)
	}
	return strings.ToLower(b.String())
}

func matchesText(t domain.Title, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(searchableText(t), query)
}

// matchesLevels ORs the selected levels against the title's levels,
// case-insensitively. The level facet is the one facet multi-valued on
// both sides.
func matchesLevels(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

// matchesExact requires case-insensitive equality when the facet is set.
// An absent title value fails any active selection.
func matchesExact(have, want string) bool {
	if want == "" {
		return true
	}
	if have == "" {
		return false
	}
	return strings.EqualFold(have, want)
}

func matchesLang(have []string, wantUpper string) bool {
	if wantUpper == "" {
		return true
	}
	for _, h := range have {
		if h == wantUpper {
			return true
		}
	}
	return false
}
