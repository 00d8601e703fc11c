// Package analyzer turns a URL into a categorized bookmark suggestion: it
// extracts page metadata, asks the model for a classification, falls back to
// keyword rules when the model is unavailable, and reconciles the proposed
// category against the stored ones.
package analyzer

import (
	"context"

	"navhub/pkg/domain"
)

// Classification is the category proposal produced for one website, either
// by the model or by the rule fallback.
type Classification struct {
	// Category is the proposed category name.
	Category string
	// Tags are 3-5 content tags.
	Tags []string
	// Description is a rewritten site description (30-80 chars).
	Description string
	// SuggestedIcon is a Lucide-style icon identifier for the category.
	SuggestedIcon string
}

// Analysis is the full analyze-URL result returned to clients.
type Analysis struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Favicon     string `json:"favicon"`

	CategoryID   domain.CategoryID `json:"categoryId"`
	CategoryName string            `json:"categoryName"`
	Tags         []string          `json:"tags"`

	ExtractedKeywords []string `json:"extractedKeywords"`
	OGImage           string   `json:"ogImage,omitempty"`
	SiteName          string   `json:"siteName,omitempty"`

	SuggestedIcon     string   `json:"suggestedCategoryIcon,omitempty"`
	SimilarCategories []string `json:"similarCategories"`
	IsNewCategory     bool     `json:"isNewCategory"`

	// Degraded is set when the page fetch failed and the classification came
	// from the rule fallback, i.e. nothing about the result saw real page
	// content. Advisory only.
	Degraded bool `json:"degraded,omitempty"`
}

// Analyzer analyzes URLs into categorized bookmark suggestions.
type Analyzer interface {
	Analyze(ctx context.Context, url string) (*Analysis, error)
}
