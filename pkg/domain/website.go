// Package domain holds the core entity types shared by the storage layer,
// the analysis pipeline and the HTTP handlers.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// WebsiteID uniquely identifies a stored website.
type WebsiteID = uuid.UUID

// Website is a single bookmarked site. URL is unique; Tags is a free-form
// list produced by the analysis pipeline or edited by the user.
type Website struct {
	// ID is the unique identifier of the website.
	ID WebsiteID `json:"id"`
	// URL is the bookmarked address, unique across websites.
	URL string `json:"url"`
	// Title is the display title, usually extracted from the page.
	Title string `json:"title"`
	// Description is a short summary of the site.
	Description string `json:"description"`
	// CategoryID references the category this website belongs to.
	CategoryID CategoryID `json:"categoryId"`
	// CategoryName is the resolved category name, filled on reads.
	CategoryName string `json:"categoryName,omitempty"`
	// Tags are short descriptive labels.
	Tags []string `json:"tags"`
	// Favicon is the icon URL shown next to the title.
	Favicon string `json:"favicon"`
	// VisitCount is how many times the user opened this website.
	VisitCount int64 `json:"visitCount"`

	// CreatedAt is when the website was bookmarked.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is when the website row was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
	// LastVisited is when the user last opened this website; nil when never.
	LastVisited *time.Time `json:"lastVisited"`
}
