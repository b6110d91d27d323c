// Package catalog builds the immutable CatalogIndex from a source payload
// and defines the sources a deployment can load it from.
package catalog

import (
	"sort"
	"strings"

	apperrors "github.com/jaumet/avook-catalog/pkg/errors"

	"github.com/jaumet/avook-catalog/internal/domain"
)

// Build normalizes raw titles into a CatalogIndex, deriving the facet
// option sets from the titles themselves.
//
// Normalization: every string facet is trimmed and empty-after-trim means
// absent; language codes are split on commas, trimmed, upper-cased, and
// deduplicated per title. Title order is preserved for rendering.
//
// Build fails when a record has no machine_name or when two records share
// one: slugs are navigation targets, so last-write-wins would silently
// repoint a card.
func Build(titles []domain.RawTitle) (*domain.CatalogIndex, error) {
	return build(titles, nil)
}

// BuildFromPayload is Build for a full source document. Facet lists the
// server already provides win over derivation, matching the remote
// endpoint's contract.
func BuildFromPayload(p *domain.Payload) (*domain.CatalogIndex, error) {
	return build(p.Titles, p)
}

func build(raw []domain.RawTitle, payload *domain.Payload) (*domain.CatalogIndex, error) {
	titles := make([]domain.Title, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	collections := newFacetSet()
	levels := newFacetSet()
	durations := newFacetSet()
	languages := newFacetSet()
	ages := newFacetSet()

	for _, r := range raw {
		slug := strings.TrimSpace(r.MachineName)
		if slug == "" {
			return nil, apperrors.Validation("catalog record missing machine_name")
		}
		if _, dup := seen[slug]; dup {
			return nil, apperrors.DuplicateSlug(slug)
		}
		seen[slug] = struct{}{}

		t := domain.Title{
			ID:          strings.TrimSpace(r.ID),
			MachineName: slug,
			HumanName:   strings.TrimSpace(r.HumanName),
			Description: strings.TrimSpace(r.Description),
			Collection:  strings.TrimSpace(r.Collection),
			Ages:        strings.TrimSpace(r.Ages),
			Duration:    strings.TrimSpace(r.Duration),
			ImageURL:    strings.TrimSpace(r.ImageURL),
			Levels:      cleanList(r.Levels, strings.TrimSpace),
			Languages:   cleanList(r.LanguageCodes(), normalizeLang),
		}
		if t.HumanName == "" {
			t.HumanName = slug
		}
		if t.ID == "" {
			t.ID = slug
		}

		collections.add(t.Collection)
		durations.add(t.Duration)
		ages.add(t.Ages)
		for _, l := range t.Levels {
			levels.add(l)
		}
		for _, l := range t.Languages {
			languages.add(l)
		}

		titles = append(titles, t)
	}

	facets := domain.FacetOptions{
		Collections: collections.sorted(),
		Levels:      levels.sorted(),
		Durations:   durations.sorted(),
		Languages:   languages.sorted(),
		Ages:        ages.sorted(),
	}
	if payload != nil {
		facets = mergeServerFacets(facets, payload)
	}

	return &domain.CatalogIndex{Titles: titles, Facets: facets}, nil
}

// mergeServerFacets prefers server-provided facet lists, cleaned and sorted
// the same way as derived ones.
func mergeServerFacets(derived domain.FacetOptions, p *domain.Payload) domain.FacetOptions {
	if opts := cleanFacetList(p.Collections, strings.TrimSpace); opts != nil {
		derived.Collections = opts
	}
	if opts := cleanFacetList(p.Levels, strings.TrimSpace); opts != nil {
		derived.Levels = opts
	}
	if opts := cleanFacetList(p.Durations, strings.TrimSpace); opts != nil {
		derived.Durations = opts
	}
	if opts := cleanFacetList(p.Languages, normalizeLang); opts != nil {
		derived.Languages = opts
	}
	if opts := cleanFacetList(p.Ages, strings.TrimSpace); opts != nil {
		derived.Ages = opts
	}
	return derived
}

func normalizeLang(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// cleanList trims each value with norm, drops empties, and deduplicates
// while keeping first-seen order.
func cleanList(values []string, norm func(string) string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = norm(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// cleanFacetList is cleanList plus the display sort.
func cleanFacetList(values []string, norm func(string) string) []string {
	out := cleanList(values, norm)
	if out == nil {
		return nil
	}
	sort.Strings(out)
	return out
}

type facetSet map[string]struct{}

func newFacetSet() facetSet { return make(facetSet) }

func (s facetSet) add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

func (s facetSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
