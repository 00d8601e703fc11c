package postgres

import (
	"context"
	"fmt"

	"navhub/pkg/domain"
	"navhub/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	categoriesTable = "categories"
	websitesTable   = "websites"
)

// Categories returns all categories ordered by sort order, each with the
// number of websites currently assigned to it.
func (p *PgSQL) Categories(ctx context.Context) ([]domain.Category, error) {
	var rows []categoryRow
	err := p.Builder.From(categoriesTable).
		Select(
			goqu.I("categories.id"),
			goqu.I("categories.name"),
			goqu.I("categories.icon"),
			goqu.I("categories.sort_order"),
			goqu.I("categories.created_at"),
			goqu.COUNT(goqu.I("websites.id")).As("website_count"),
		).
		LeftJoin(goqu.T(websitesTable),
			goqu.On(goqu.I("websites.category_id").Eq(goqu.I("categories.id")))).
		GroupBy(goqu.I("categories.id")).
		Order(goqu.I("categories.sort_order").Asc(), goqu.I("categories.created_at").Asc()).
		Executor().ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("could not fetch categories from pg: %w", err)
	}

	out := make([]domain.Category, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}

	return out, nil
}

// CategoryByID returns a category by its ID, or nil when not found.
func (p *PgSQL) CategoryByID(ctx context.Context, id domain.CategoryID) (*domain.Category, error) {
	var row PgCategory
	found, err := p.Builder.From(categoriesTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch category by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// CategoryByName returns a category by case-insensitive exact name match,
// or nil when not found.
func (p *PgSQL) CategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	var row PgCategory
	found, err := p.Builder.From(categoriesTable).
		Where(goqu.L("LOWER(name)").Eq(goqu.L("LOWER(?)", name))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch category by name: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// MaxCategorySortOrder returns the highest sort order in use, or 0 when the
// table is empty.
func (p *PgSQL) MaxCategorySortOrder(ctx context.Context) (int, error) {
	var max int
	_, err := p.Builder.From(categoriesTable).
		Select(goqu.L("COALESCE(MAX(sort_order), 0)")).
		Executor().ScanValContext(ctx, &max)
	if err != nil {
		return 0, fmt.Errorf("could not fetch max category sort order: %w", err)
	}

	return max, nil
}

// StoreCategory inserts a category and returns the stored row.
func (p *PgSQL) StoreCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	var pgCategory PgCategory
	pgCategory.FromDomain(category)

	var row PgCategory
	found, err := p.Builder.Insert(categoriesTable).
		Rows(pgCategory).
		Returning(&PgCategory{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not store category into pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("insert returned no row")
	}

	return row.ToDomain(), nil
}

// UpdateCategory applies the provided field set to a category and returns the
// updated row, or nil when the category does not exist.
func (p *PgSQL) UpdateCategory(ctx context.Context,
	id domain.CategoryID,
	updates storage.CategoryUpdates) (*domain.Category, error) {
	rec := goqu.Record{}
	if updates.Name != nil {
		rec["name"] = *updates.Name
	}
	if updates.Icon != nil {
		rec["icon"] = *updates.Icon
	}
	if updates.SortOrder != nil {
		rec["sort_order"] = *updates.SortOrder
	}
	if len(rec) == 0 {
		return p.CategoryByID(ctx, id)
	}

	var row PgCategory
	found, err := p.Builder.Update(categoriesTable).
		Set(rec).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgCategory{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update category in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// DeleteCategory removes the category; its websites go with it through the
// schema's ON DELETE CASCADE. Returns the deleted row, or nil when not found.
func (p *PgSQL) DeleteCategory(ctx context.Context, id domain.CategoryID) (*domain.Category, error) {
	var row PgCategory
	found, err := p.Builder.Delete(categoriesTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgCategory{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete category in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// SetCategorySortOrder assigns an explicit sort order to one category.
func (p *PgSQL) SetCategorySortOrder(ctx context.Context, id domain.CategoryID, sortOrder int) error {
	_, err := p.Builder.Update(categoriesTable).
		Set(goqu.Record{"sort_order": sortOrder}).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not set category sort order in pg: %w", err)
	}

	return nil
}
