// Package http exposes the catalog, visibility, and collaborator endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jaumet/avook-catalog/pkg/httputil"

	"github.com/jaumet/avook-catalog/internal/domain"
	"github.com/jaumet/avook-catalog/internal/filter"
	"github.com/jaumet/avook-catalog/internal/service"
)

// CatalogHandler serves the rendered catalog surface.
type CatalogHandler struct {
	catalog *service.Catalog
	logger  *slog.Logger
}

// NewCatalogHandler builds the handler.
func NewCatalogHandler(catalog *service.Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// Card is the view model for one rendered title card.
type Card struct {
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
	DetailPath  string   `json:"detail_path"`
}

// CatalogResponse is the card list plus the facet option sets that populate
// the filter controls.
type CatalogResponse struct {
	Cards  []Card              `json:"cards"`
	Facets domain.FacetOptions `json:"facets"`
}

// Catalog handles GET /api/v1/catalog.
func (h *CatalogHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	idx, err := h.catalog.Index()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cards := make([]Card, 0, len(idx.Titles))
	for _, t := range idx.Titles {
		cards = append(cards, cardFor(t))
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: CatalogResponse{Cards: cards, Facets: idx.Facets},
	})
}

func cardFor(t domain.Title) Card {
	return Card{
		ID:          t.ID,
		MachineName: t.MachineName,
		HumanName:   t.HumanName,
		Description: t.Description,
		Collection:  t.Collection,
		Levels:      t.Levels,
		Ages:        t.Ages,
		Duration:    t.Duration,
		Languages:   t.Languages,
		ImageURL:    t.ImageURL,
		DetailPath:  "/products/player/" + t.MachineName + "/",
	}
}

// VisibilityResponse is the evaluation of one filter selection.
type VisibilityResponse struct {
	Visible       map[string]bool `json:"visible"`
	AnyVisible    bool            `json:"any_visible"`
	FilterActive  bool            `json:"filter_active"`
	ShowNoResults bool            `json:"show_no_results"`
	LevelGroups   map[string]bool `json:"level_groups"`
}

// Visibility handles GET /api/v1/catalog/visibility. Query parameters are
// applied through the filter-state mutators: `q`, repeated `level`,
// `collection`, `duration`, `lang`, `ages`. Omitted parameters leave their
// facet inactive.
func (h *CatalogHandler) Visibility(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var state domain.FilterState
	state = filter.SetText(state, q.Get("q"))
	for _, level := range q["level"] {
		state = filter.ToggleLevel(state, level)
	}
	state = filter.SetCollection(state, q.Get("collection"))
	state = filter.SetDuration(state, q.Get("duration"))
	state = filter.SetLang(state, q.Get("lang"))
	state = filter.SetAges(state, q.Get("ages"))

	eval, err := h.catalog.Evaluate(state)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	active := state.Active()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: VisibilityResponse{
			Visible:       eval.Visible,
			AnyVisible:    eval.AnyVisible,
			FilterActive:  active,
			ShowNoResults: active && !eval.AnyVisible,
			LevelGroups:   eval.LevelGroups,
		},
	})
}

// Payload handles GET /catalog/json, the original storefront document shape.
func (h *CatalogHandler) Payload(w http.ResponseWriter, r *http.Request) {
	payload, err := h.catalog.Payload()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, payload)
}

// Reload handles POST /api/v1/catalog/reload: a fire-and-forget rebuild
// from the configured source.
func (h *CatalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	go func() {
		ctx := context.Background()
		if err := h.catalog.Load(ctx); err != nil {
			h.logger.ErrorContext(ctx, "background catalog reload failed", "error", err)
		}
	}()

	httputil.WriteJSON(w, http.StatusAccepted, httputil.Response{
		Data: map[string]string{"status": "reload started"},
	})
}
