package catalog

import (
	"context"
	"fmt"

	"github.com/jaumet/avook-catalog/internal/domain"
	"github.com/jaumet/avook-catalog/internal/repository"
)

// RepositorySource loads the catalog from the relational store that the
// storefront CMS maintains.
type RepositorySource struct {
	titles repository.TitleRepository
}

// NewRepositorySource builds a source over the title repository.
func NewRepositorySource(titles repository.TitleRepository) *RepositorySource {
	return &RepositorySource{titles: titles}
}

// Load reads every title. Facet lists are left empty so the builder derives
// them, same as the embedded deployment.
func (s *RepositorySource) Load(ctx context.Context) (*domain.Payload, error) {
	titles, err := s.titles.ListTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load titles from repository: %w", err)
	}
	return &domain.Payload{Titles: titles}, nil
}
