// Package repository defines the storage interface for catalog titles.
package repository

import (
	"context"

	"github.com/jaumet/avook-catalog/internal/domain"
)

// TitleRepository reads catalog titles from the backing store. The catalog
// service only reads; title administration stays with the CMS that owns the
// schema.
type TitleRepository interface {
	// ListTitles returns every title with its language codes, in stable
	// insertion order.
	ListTitles(ctx context.Context) ([]domain.RawTitle, error)
}
