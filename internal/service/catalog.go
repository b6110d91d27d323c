// Package service owns the current catalog index and fronts the filter
// engine for the HTTP layer.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	apperrors "github.com/jaumet/avook-catalog/pkg/errors"

	"github.com/jaumet/avook-catalog/internal/catalog"
	"github.com/jaumet/avook-catalog/internal/domain"
	"github.com/jaumet/avook-catalog/internal/filter"
)

// Catalog loads the index from its source and answers evaluation requests.
// The published index is immutable; a reload builds a fresh one and swaps
// the pointer, so readers never observe a partial update.
type Catalog struct {
	source catalog.Source
	logger *slog.Logger
	index  atomic.Pointer[domain.CatalogIndex]
}

// NewCatalog builds the service. Call Load before serving.
func NewCatalog(source catalog.Source, logger *slog.Logger) *Catalog {
	return &Catalog{source: source, logger: logger}
}

// Load fetches the payload and builds a fresh index. On failure the
// previous index (if any) stays published: the catalog renders stale rather
// than partial, and never half-built.
func (c *Catalog) Load(ctx context.Context) error {
	payload, err := c.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog payload: %w", err)
	}

	idx, err := catalog.BuildFromPayload(payload)
	if err != nil {
		return fmt.Errorf("build catalog index: %w", err)
	}

	c.index.Store(idx)
	c.logger.InfoContext(ctx, "catalog index loaded",
		slog.Int("titles", len(idx.Titles)),
		slog.Int("collections", len(idx.Facets.Collections)),
		slog.Int("levels", len(idx.Facets.Levels)),
		slog.Int("languages", len(idx.Facets.Languages)),
	)
	return nil
}

// Index returns the current index, or an unavailable error when the initial
// load never succeeded.
func (c *Catalog) Index() (*domain.CatalogIndex, error) {
	idx := c.index.Load()
	if idx == nil {
		return nil, apperrors.Unavailable("catalog", nil)
	}
	return idx, nil
}

// Evaluate runs the visibility evaluator for state over the current index.
func (c *Catalog) Evaluate(state domain.FilterState) (domain.Evaluation, error) {
	idx, err := c.Index()
	if err != nil {
		return domain.Evaluation{}, err
	}
	return filter.Evaluate(idx, state), nil
}

// Title looks up one title by its machine name.
func (c *Catalog) Title(slug string) (domain.Title, error) {
	idx, err := c.Index()
	if err != nil {
		return domain.Title{}, err
	}
	t, ok := idx.ByMachineName(slug)
	if !ok {
		return domain.Title{}, apperrors.NotFound("title", slug)
	}
	return t, nil
}

// Payload renders the current index back into the wire document, letting a
// remote-mode instance chain off this one.
func (c *Catalog) Payload() (*domain.Payload, error) {
	idx, err := c.Index()
	if err != nil {
		return nil, err
	}

	titles := make([]domain.RawTitle, 0, len(idx.Titles))
	for _, t := range idx.Titles {
		titles = append(titles, domain.RawTitle{
			ID:          t.ID,
			MachineName: t.MachineName,
			HumanName:   t.HumanName,
			Description: t.Description,
			Levels:      domain.StringOrList(t.Levels),
			Ages:        t.Ages,
			Duration:    t.Duration,
			Collection:  t.Collection,
			Languages:   domain.LanguageList(t.Languages),
			ImageURL:    t.ImageURL,
		})
	}

	return &domain.Payload{
		Titles:      titles,
		Collections: idx.Facets.Collections,
		Levels:      idx.Facets.Levels,
		Durations:   idx.Facets.Durations,
		Languages:   idx.Facets.Languages,
		Ages:        idx.Facets.Ages,
	}, nil
}
