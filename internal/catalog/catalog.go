package catalog

import (
	"context"
	"fmt"
	"strings"

	"navhub/internal/config"
	"navhub/pkg/domain"
	"navhub/pkg/icons"
	"navhub/pkg/logger"
	"navhub/pkg/serrors"
	"navhub/pkg/storage"

	"go.uber.org/zap"
)

// Options configure the catalog service.
type Options struct {
	// SimilarityThreshold is the lower bound of the open interval used by
	// SuggestSimilar.
	SimilarityThreshold float64
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SimilarityThreshold: cfg.Analyzer.SimilarityThreshold,
	}
}

// catalog is the concrete implementation of the Catalog interface.
type catalog struct {
	options Options
	storage storage.Storage
}

// New creates a Catalog backed by the given storage.
func New(s storage.Storage, options Options) Catalog {
	if options.SimilarityThreshold <= 0 {
		options.SimilarityThreshold = 0.6
	}

	return catalog{options: options, storage: s}
}

func (c catalog) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := c.storage.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list categories: %w", err)
	}

	return categories, nil
}

func (c catalog) CreateCategory(ctx context.Context, name, icon string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "category name is required")
	}
	if icon == "" {
		icon = icons.ForCategory(name)
	} else {
		icon = icons.Normalize(icon)
	}

	var created *domain.Category
	if err := c.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		existing, err := tx.CategoryByName(ctx, name)
		if err != nil {
			return fmt.Errorf("could not check category name: %w", err)
		}
		if existing != nil {
			return serrors.With(serrors.ErrConflict, "category %q already exists", existing.Name)
		}

		max, err := tx.MaxCategorySortOrder(ctx)
		if err != nil {
			return fmt.Errorf("could not get max sort order: %w", err)
		}

		created, err = tx.StoreCategory(ctx, domain.Category{
			Name:      name,
			Icon:      icon,
			SortOrder: max + 1,
		})
		if err != nil {
			return fmt.Errorf("could not store category: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

func (c catalog) UpdateCategory(ctx context.Context,
	id domain.CategoryID,
	updates storage.CategoryUpdates) (*domain.Category, error) {
	if updates.Name != nil {
		name := strings.TrimSpace(*updates.Name)
		if name == "" {
			return nil, serrors.With(serrors.ErrBadRequest, "category name cannot be empty")
		}
		updates.Name = &name

		existing, err := c.storage.CategoryByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("could not check category name: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, serrors.With(serrors.ErrConflict, "category %q already exists", existing.Name)
		}
	}
	if updates.Icon != nil {
		icon := icons.Normalize(*updates.Icon)
		updates.Icon = &icon
	}

	updated, err := c.storage.UpdateCategory(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("could not update category: %w", err)
	}
	if updated == nil {
		return nil, serrors.With(serrors.ErrNotFound, "category not found")
	}

	return updated, nil
}

func (c catalog) DeleteCategory(ctx context.Context, id domain.CategoryID) error {
	deleted, err := c.storage.DeleteCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("could not delete category: %w", err)
	}
	if deleted == nil {
		return serrors.With(serrors.ErrNotFound, "category not found")
	}

	return nil
}

func (c catalog) ReorderCategories(ctx context.Context, ids []domain.CategoryID) error {
	if len(ids) == 0 {
		return serrors.With(serrors.ErrBadRequest, "no category ids provided")
	}

	return c.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		for i, id := range ids {
			if err := tx.SetCategorySortOrder(ctx, id, i); err != nil {
				return fmt.Errorf("could not set sort order for category: %w", err)
			}
		}

		return nil
	})
}

// FindOrCreateCategory lands an analyzer-proposed category name on a real
// row. Lookups are case-insensitive; a lost duplicate-name race resolves by
// reading back the winner.
func (c catalog) FindOrCreateCategory(ctx context.Context, name, suggestedIcon string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "category name is required")
	}

	existing, err := c.storage.CategoryByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not look up category: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	created, err := c.CreateCategory(ctx, name, suggestedIcon)
	if err == nil {
		return created, nil
	}

	// a concurrent analyze may have created the same category first
	winner, lookupErr := c.storage.CategoryByName(ctx, name)
	if lookupErr == nil && winner != nil {
		logger.Debug(ctx, "category created concurrently, reusing",
			zap.String("name", winner.Name))

		return winner, nil
	}

	return nil, err
}

func (c catalog) SuggestSimilar(ctx context.Context, name string) ([]string, error) {
	categories, err := c.storage.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list categories: %w", err)
	}

	var suggestions []string
	for _, cat := range categories {
		s := similarity(name, cat.Name)
		if s > c.options.SimilarityThreshold && s < 1.0 {
			suggestions = append(suggestions, cat.Name)
			if len(suggestions) == maxSuggestions {
				break
			}
		}
	}

	return suggestions, nil
}

const maxSuggestions = 3

func (c catalog) Websites(ctx context.Context, filter storage.WebsiteFilter) ([]domain.Website, error) {
	websites, err := c.storage.Websites(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("could not list websites: %w", err)
	}

	return websites, nil
}

func (c catalog) Website(ctx context.Context, id domain.WebsiteID) (*domain.Website, error) {
	website, err := c.storage.WebsiteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not fetch website: %w", err)
	}
	if website == nil {
		return nil, serrors.With(serrors.ErrNotFound, "website not found")
	}

	return website, nil
}

func (c catalog) CreateWebsite(ctx context.Context, input WebsiteInput) (*domain.Website, error) {
	input.URL = strings.TrimSpace(input.URL)
	if input.URL == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "website url is required")
	}
	if input.Title == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "website title is required")
	}

	existing, err := c.storage.WebsiteByURL(ctx, input.URL)
	if err != nil {
		return nil, fmt.Errorf("could not check website url: %w", err)
	}
	if existing != nil {
		return nil, serrors.With(serrors.ErrConflict, "website with this url already exists")
	}

	category, err := c.storage.CategoryByID(ctx, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("could not check category: %w", err)
	}
	if category == nil {
		return nil, serrors.With(serrors.ErrBadRequest, "category does not exist")
	}

	created, err := c.storage.StoreWebsite(ctx, domain.Website{
		URL:         input.URL,
		Title:       input.Title,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Tags:        input.Tags,
		Favicon:     input.Favicon,
	})
	if err != nil {
		return nil, fmt.Errorf("could not store website: %w", err)
	}
	created.CategoryName = category.Name

	return created, nil
}

func (c catalog) UpdateWebsite(ctx context.Context,
	id domain.WebsiteID,
	updates storage.WebsiteUpdates) (*domain.Website, error) {
	if updates.CategoryID != nil {
		category, err := c.storage.CategoryByID(ctx, *updates.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("could not check category: %w", err)
		}
		if category == nil {
			return nil, serrors.With(serrors.ErrBadRequest, "category does not exist")
		}
	}

	updated, err := c.storage.UpdateWebsite(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("could not update website: %w", err)
	}
	if updated == nil {
		return nil, serrors.With(serrors.ErrNotFound, "website not found")
	}

	return updated, nil
}

func (c catalog) DeleteWebsite(ctx context.Context, id domain.WebsiteID) error {
	deleted, err := c.storage.DeleteWebsite(ctx, id)
	if err != nil {
		return fmt.Errorf("could not delete website: %w", err)
	}
	if deleted == nil {
		return serrors.With(serrors.ErrNotFound, "website not found")
	}

	return nil
}

func (c catalog) RecordVisit(ctx context.Context, id domain.WebsiteID) (*domain.Website, error) {
	updated, err := c.storage.RecordVisit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not record visit: %w", err)
	}
	if updated == nil {
		return nil, serrors.With(serrors.ErrNotFound, "website not found")
	}

	return updated, nil
}
