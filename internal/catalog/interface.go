// Package catalog manages the category and website collections: thin CRUD,
// visit tracking, and the category reconciliation used by the analyzer to
// land AI-proposed category names on real rows.
package catalog

import (
	"context"

	"navhub/pkg/domain"
	"navhub/pkg/storage"
)

// WebsiteInput carries the fields accepted when creating a website.
type WebsiteInput struct {
	URL         string
	Title       string
	Description string
	CategoryID  domain.CategoryID
	Tags        []string
	Favicon     string
}

// Catalog exposes category and website management.
type Catalog interface {
	// Categories lists all categories ordered by sort order, with website counts.
	Categories(ctx context.Context) ([]domain.Category, error)
	// CreateCategory creates a category with the next sort order. The icon is
	// normalized; when empty one is derived from the name. Returns a Conflict
	// error when a category with the same name already exists.
	CreateCategory(ctx context.Context, name, icon string) (*domain.Category, error)
	// UpdateCategory renames a category or changes its icon. Returns NotFound
	// when the category does not exist and Conflict when renaming collides.
	UpdateCategory(ctx context.Context, ID domain.CategoryID, updates storage.CategoryUpdates) (*domain.Category, error)
	// DeleteCategory removes the category and its websites.
	DeleteCategory(ctx context.Context, ID domain.CategoryID) error
	// ReorderCategories rewrites the sort order of all categories to match the
	// given ID order, inside one transaction.
	ReorderCategories(ctx context.Context, ids []domain.CategoryID) error
	// FindOrCreateCategory returns the category with the given name
	// (case-insensitive) or creates it. A duplicate-name race during create
	// resolves by reading back the existing row.
	FindOrCreateCategory(ctx context.Context, name, suggestedIcon string) (*domain.Category, error)
	// SuggestSimilar returns up to three existing category names whose
	// similarity to name falls in the open interval (threshold, 1.0).
	SuggestSimilar(ctx context.Context, name string) ([]string, error)

	// Websites lists websites matching the filter, newest first.
	Websites(ctx context.Context, filter storage.WebsiteFilter) ([]domain.Website, error)
	// Website returns a single website by ID.
	Website(ctx context.Context, ID domain.WebsiteID) (*domain.Website, error)
	// CreateWebsite stores a new website. Returns Conflict for a duplicate URL
	// and BadRequest when the category does not exist.
	CreateWebsite(ctx context.Context, input WebsiteInput) (*domain.Website, error)
	// UpdateWebsite applies a partial update.
	UpdateWebsite(ctx context.Context, ID domain.WebsiteID, updates storage.WebsiteUpdates) (*domain.Website, error)
	// DeleteWebsite removes a website.
	DeleteWebsite(ctx context.Context, ID domain.WebsiteID) error
	// RecordVisit increments the visit counter and stamps the visit time.
	RecordVisit(ctx context.Context, ID domain.WebsiteID) (*domain.Website, error)
}
