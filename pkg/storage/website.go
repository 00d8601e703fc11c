package storage

import (
	"context"

	"navhub/pkg/domain"
)

// WebsiteUpdates describes a set of optional fields that can be applied to an
// existing website during an update. Only non-nil fields will be updated.
type WebsiteUpdates struct {
	// URL, when provided, replaces the stored URL.
	URL *string
	// Title, when provided, replaces the title.
	Title *string
	// Description, when provided, replaces the description. An empty string
	// clears it.
	Description *string
	// CategoryID, when provided, moves the website to another category.
	CategoryID *domain.CategoryID
	// Tags, when provided, replaces the tag list.
	Tags *[]string
	// Favicon, when provided, replaces the favicon URL.
	Favicon *string
}

// WebsiteFilter narrows Websites listings. The zero value matches everything.
type WebsiteFilter struct {
	// CategoryID, when provided, restricts results to one category.
	CategoryID *domain.CategoryID
	// Search, when non-empty, matches title, URL and description
	// case-insensitively.
	Search string
}

// WebsiteStorage defines CRUD and query operations related to websites.
type WebsiteStorage interface {
	// Websites returns websites matching the filter, newest first, each with
	// its category name filled in.
	Websites(ctx context.Context, filter WebsiteFilter) ([]domain.Website, error)
	// WebsiteByID fetches a website by its ID. Returns nil when not found.
	WebsiteByID(ctx context.Context, ID domain.WebsiteID) (*domain.Website, error)
	// WebsiteByURL fetches a website by exact URL match. Returns nil when not
	// found.
	WebsiteByURL(ctx context.Context, URL string) (*domain.Website, error)
	// StoreWebsite inserts a website and returns the stored row as it exists in
	// the database (including generated fields).
	StoreWebsite(ctx context.Context, website domain.Website) (*domain.Website, error)
	// UpdateWebsite updates a single website identified by its ID and returns
	// the updated row, or nil if it was not found. Only provided fields are
	// changed; updated_at is set automatically.
	UpdateWebsite(ctx context.Context, ID domain.WebsiteID, updates WebsiteUpdates) (*domain.Website, error)
	// DeleteWebsite removes the website and returns the deleted row, or nil if
	// it was not found.
	DeleteWebsite(ctx context.Context, ID domain.WebsiteID) (*domain.Website, error)
	// RecordVisit increments the website's visit counter and stamps the visit
	// time, returning the updated row, or nil if it was not found.
	RecordVisit(ctx context.Context, ID domain.WebsiteID) (*domain.Website, error)
}
