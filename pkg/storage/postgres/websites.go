package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"navhub/pkg/domain"
	"navhub/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// websiteSelect is the base listing query: websites joined with their
// category name, newest first.
func (p *PgSQL) websiteSelect() *goqu.SelectDataset {
	return p.Builder.From(websitesTable).
		Select(
			goqu.I("websites.id"),
			goqu.I("websites.url"),
			goqu.I("websites.title"),
			goqu.I("websites.description"),
			goqu.I("websites.category_id"),
			goqu.I("websites.tags"),
			goqu.I("websites.favicon"),
			goqu.I("websites.visit_count"),
			goqu.I("websites.last_visited"),
			goqu.I("websites.created_at"),
			goqu.I("websites.updated_at"),
			goqu.I("categories.name").As("category_name"),
		).
		LeftJoin(goqu.T(categoriesTable),
			goqu.On(goqu.I("categories.id").Eq(goqu.I("websites.category_id")))).
		Order(goqu.I("websites.created_at").Desc(), goqu.I("websites.id").Desc())
}

// Websites returns websites matching the filter, newest first.
func (p *PgSQL) Websites(ctx context.Context, filter storage.WebsiteFilter) ([]domain.Website, error) {
	ds := p.websiteSelect()
	if filter.CategoryID != nil {
		ds = ds.Where(goqu.I("websites.category_id").Eq(uuid.UUID(*filter.CategoryID)))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		ds = ds.Where(goqu.Or(
			goqu.I("websites.title").ILike(pattern),
			goqu.I("websites.url").ILike(pattern),
			goqu.I("websites.description").ILike(pattern),
		))
	}

	var rows []websiteRow
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch websites from pg: %w", err)
	}

	return websiteRowsToDomain(rows)
}

// WebsiteByID returns a website by its ID, or nil when not found.
func (p *PgSQL) WebsiteByID(ctx context.Context, id domain.WebsiteID) (*domain.Website, error) {
	var row websiteRow
	found, err := p.websiteSelect().
		Where(goqu.I("websites.id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch website by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// WebsiteByURL returns a website by exact URL, or nil when not found.
func (p *PgSQL) WebsiteByURL(ctx context.Context, URL string) (*domain.Website, error) {
	var row websiteRow
	found, err := p.websiteSelect().
		Where(goqu.I("websites.url").Eq(URL)).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch website by url: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// StoreWebsite inserts a website and returns the stored row.
func (p *PgSQL) StoreWebsite(ctx context.Context, website domain.Website) (*domain.Website, error) {
	var pgWebsite PgWebsite
	if err := pgWebsite.FromDomain(website); err != nil {
		return nil, err
	}

	var row PgWebsite
	found, err := p.Builder.Insert(websitesTable).
		Rows(pgWebsite).
		Returning(&PgWebsite{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not store website into pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("insert returned no row")
	}

	return row.ToDomain()
}

// UpdateWebsite applies the provided field set to a website and returns the
// updated row, or nil when the website does not exist. updated_at is set
// automatically.
func (p *PgSQL) UpdateWebsite(ctx context.Context,
	id domain.WebsiteID,
	updates storage.WebsiteUpdates) (*domain.Website, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
	}
	if updates.URL != nil {
		rec["url"] = *updates.URL
	}
	if updates.Title != nil {
		rec["title"] = *updates.Title
	}
	if updates.Description != nil {
		if *updates.Description == "" {
			// set to NULL when empty string provided
			rec["description"] = goqu.L("NULL")
		} else {
			rec["description"] = *updates.Description
		}
	}
	if updates.CategoryID != nil {
		rec["category_id"] = uuid.UUID(*updates.CategoryID)
	}
	if updates.Tags != nil {
		b, err := json.Marshal(*updates.Tags)
		if err != nil {
			return nil, fmt.Errorf("could not marshal tags: %w", err)
		}

		rec["tags"] = b
	}
	if updates.Favicon != nil {
		rec["favicon"] = *updates.Favicon
	}

	var row PgWebsite
	found, err := p.Builder.Update(websitesTable).
		Set(rec).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgWebsite{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update website in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// DeleteWebsite removes the website and returns the deleted row, or nil when
// not found.
func (p *PgSQL) DeleteWebsite(ctx context.Context, id domain.WebsiteID) (*domain.Website, error) {
	var row PgWebsite
	found, err := p.Builder.Delete(websitesTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgWebsite{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete website in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// RecordVisit increments the visit counter and stamps the visit time.
func (p *PgSQL) RecordVisit(ctx context.Context, id domain.WebsiteID) (*domain.Website, error) {
	var row PgWebsite
	found, err := p.Builder.Update(websitesTable).
		Set(goqu.Record{
			"visit_count":  goqu.L("visit_count + 1"),
			"last_visited": goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgWebsite{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not record website visit in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
