package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"navhub/pkg/domain"

	"github.com/google/uuid"
)

type PgCategory struct {
	ID        uuid.UUID `db:"id"         goqu:"skipinsert"`
	Name      string    `db:"name"`
	Icon      string    `db:"icon"`
	SortOrder int       `db:"sort_order"`
	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgCategory) ToDomain() *domain.Category {
	return &domain.Category{
		ID:        domain.CategoryID(p.ID),
		Name:      p.Name,
		Icon:      p.Icon,
		SortOrder: p.SortOrder,
		CreatedAt: p.CreatedAt,
	}
}

func (p *PgCategory) FromDomain(category domain.Category) {
	*p = PgCategory{
		ID:        uuid.UUID(category.ID),
		Name:      category.Name,
		Icon:      category.Icon,
		SortOrder: category.SortOrder,
		CreatedAt: category.CreatedAt,
	}
}

// categoryRow carries a category joined with its website count.
type categoryRow struct {
	PgCategory
	WebsiteCount int64 `db:"website_count"`
}

func (r *categoryRow) ToDomain() *domain.Category {
	out := r.PgCategory.ToDomain()
	out.Count = r.WebsiteCount

	return out
}

type PgWebsite struct {
	ID         uuid.UUID `db:"id"          goqu:"skipinsert"`
	URL        string    `db:"url"`
	Title      string    `db:"title"`
	CategoryID uuid.UUID `db:"category_id"`

	Description sql.NullString  `db:"description"`
	Tags        json.RawMessage `db:"tags"`
	Favicon     sql.NullString  `db:"favicon"`

	VisitCount  int64        `db:"visit_count"  goqu:"skipinsert"`
	LastVisited sql.NullTime `db:"last_visited" goqu:"skipinsert"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgWebsite) ToDomain() (*domain.Website, error) {
	var tags []string
	if len(p.Tags) > 0 {
		if err := json.Unmarshal(p.Tags, &tags); err != nil {
			return nil, fmt.Errorf("could not unmarshal website tags: %w", err)
		}
	}
	if tags == nil {
		tags = []string{}
	}

	out := &domain.Website{
		ID:          domain.WebsiteID(p.ID),
		URL:         p.URL,
		Title:       p.Title,
		Description: p.Description.String,
		CategoryID:  domain.CategoryID(p.CategoryID),
		Tags:        tags,
		Favicon:     p.Favicon.String,
		VisitCount:  p.VisitCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt.Time,
	}
	if p.LastVisited.Valid {
		t := p.LastVisited.Time
		out.LastVisited = &t
	}

	return out, nil
}

func (p *PgWebsite) FromDomain(website domain.Website) error {
	tags := website.Tags
	if tags == nil {
		tags = []string{}
	}
	tagBytes, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("could not marshal website tags: %w", err)
	}

	*p = PgWebsite{
		ID:         uuid.UUID(website.ID),
		URL:        website.URL,
		Title:      website.Title,
		CategoryID: uuid.UUID(website.CategoryID),
		Description: sql.NullString{
			String: website.Description,
			Valid:  website.Description != "",
		},
		Tags: tagBytes,
		Favicon: sql.NullString{
			String: website.Favicon,
			Valid:  website.Favicon != "",
		},
		VisitCount: website.VisitCount,
		CreatedAt:  website.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  website.UpdatedAt,
			Valid: !website.UpdatedAt.IsZero(),
		},
	}
	if website.LastVisited != nil {
		p.LastVisited = sql.NullTime{Time: *website.LastVisited, Valid: true}
	}

	return nil
}

// websiteRow carries a website joined with its category name.
type websiteRow struct {
	PgWebsite
	CategoryName sql.NullString `db:"category_name"`
}

func (r *websiteRow) ToDomain() (*domain.Website, error) {
	out, err := r.PgWebsite.ToDomain()
	if err != nil {
		return nil, err
	}
	out.CategoryName = r.CategoryName.String

	return out, nil
}

func websiteRowsToDomain(rows []websiteRow) ([]domain.Website, error) {
	out := make([]domain.Website, 0, len(rows))
	for i := range rows {
		d, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
