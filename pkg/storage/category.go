package storage

import (
	"context"

	"navhub/pkg/domain"
)

// CategoryUpdates describes a set of optional fields that can be applied to an
// existing category during an update. Only non-nil fields will be updated.
type CategoryUpdates struct {
	// Name, when provided, renames the category.
	Name *string
	// Icon, when provided, replaces the category icon.
	Icon *string
	// SortOrder, when provided, moves the category to the given position.
	SortOrder *int
}

// CategoryStorage defines CRUD and query operations related to categories.
type CategoryStorage interface {
	// Categories returns all categories ordered by sort order, each with the
	// number of websites currently assigned to it.
	Categories(ctx context.Context) ([]domain.Category, error)
	// CategoryByID fetches a category by its ID. Returns nil when not found.
	CategoryByID(ctx context.Context, ID domain.CategoryID) (*domain.Category, error)
	// CategoryByName fetches a category by name using a case-insensitive exact
	// match. Returns nil when not found.
	CategoryByName(ctx context.Context, name string) (*domain.Category, error)
	// MaxCategorySortOrder returns the highest sort order currently in use,
	// or 0 when no categories exist.
	MaxCategorySortOrder(ctx context.Context) (int, error)
	// StoreCategory inserts a category and returns the stored row as it exists
	// in the database (including generated fields).
	StoreCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	// UpdateCategory updates a single category identified by its ID and returns
	// the updated row, or nil if it was not found. Only provided fields are changed.
	UpdateCategory(ctx context.Context, ID domain.CategoryID, updates CategoryUpdates) (*domain.Category, error)
	// DeleteCategory removes the category and, through the schema's cascade,
	// its websites. Returns the deleted category, or nil if it was not found.
	DeleteCategory(ctx context.Context, ID domain.CategoryID) (*domain.Category, error)
	// SetCategorySortOrder assigns an explicit sort order to one category.
	// Callers reordering the whole list should run the updates inside a
	// transaction via WithTx.
	SetCategorySortOrder(ctx context.Context, ID domain.CategoryID, sortOrder int) error
}
