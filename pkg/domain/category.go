package domain

import (
	"time"

	"github.com/google/uuid"
)

// CategoryID uniquely identifies a category.
type CategoryID = uuid.UUID

// Category is a user-defined group of websites. Name is unique with
// case-insensitive matching on lookup. Count is derived from the websites
// referencing the category and is never stored; the storage layer computes
// it on every read.
type Category struct {
	// ID is the unique identifier of the category.
	ID CategoryID `json:"id"`
	// Name is the display name, unique across categories.
	Name string `json:"name"`
	// Icon is the canonical icon identifier rendered for this category.
	Icon string `json:"icon"`
	// SortOrder controls the position of the category in listings. New
	// categories are appended after the current maximum.
	SortOrder int `json:"sortOrder"`
	// Count is the number of websites currently assigned to this category.
	Count int64 `json:"count"`

	// CreatedAt is when the category row was created.
	CreatedAt time.Time `json:"createdAt"`
}
