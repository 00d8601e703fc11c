package catalog_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"navhub/pkg/domain"
	"navhub/pkg/storage"

	"github.com/google/uuid"
)

// fakeStorage is an in-memory storage.Storage used by the service tests.
// It is not safe for concurrent use; tests are sequential.
type fakeStorage struct {
	categories []domain.Category
	websites   []domain.Website
}

func (f *fakeStorage) Close() error { return nil }

func (f *fakeStorage) Begin(context.Context) (storage.TxStorage, error) {
	return &fakeTx{f}, nil
}

func (f *fakeStorage) WithTx(ctx context.Context, cb func(storage.AllStorage) error) error {
	return cb(f)
}

type fakeTx struct{ *fakeStorage }

func (t *fakeTx) Commit() error   { return nil }
func (t *fakeTx) Rollback() error { return nil }

func (f *fakeStorage) Categories(context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(f.categories))
	copy(out, f.categories)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	for i := range out {
		var count int64
		for _, w := range f.websites {
			if w.CategoryID == out[i].ID {
				count++
			}
		}
		out[i].Count = count
	}

	return out, nil
}

func (f *fakeStorage) CategoryByID(_ context.Context, id domain.CategoryID) (*domain.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			c := f.categories[i]

			return &c, nil
		}
	}

	return nil, nil
}

func (f *fakeStorage) CategoryByName(_ context.Context, name string) (*domain.Category, error) {
	for i := range f.categories {
		if strings.EqualFold(f.categories[i].Name, name) {
			c := f.categories[i]

			return &c, nil
		}
	}

	return nil, nil
}

func (f *fakeStorage) MaxCategorySortOrder(context.Context) (int, error) {
	max := 0
	for _, c := range f.categories {
		if c.SortOrder > max {
			max = c.SortOrder
		}
	}

	return max, nil
}

func (f *fakeStorage) StoreCategory(_ context.Context, category domain.Category) (*domain.Category, error) {
	category.ID = domain.CategoryID(uuid.New())
	category.CreatedAt = time.Now()
	f.categories = append(f.categories, category)

	return &category, nil
}

func (f *fakeStorage) UpdateCategory(_ context.Context,
	id domain.CategoryID,
	updates storage.CategoryUpdates) (*domain.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID != id {
			continue
		}
		if updates.Name != nil {
			f.categories[i].Name = *updates.Name
		}
		if updates.Icon != nil {
			f.categories[i].Icon = *updates.Icon
		}
		if updates.SortOrder != nil {
			f.categories[i].SortOrder = *updates.SortOrder
		}
		c := f.categories[i]

		return &c, nil
	}

	return nil, nil
}

func (f *fakeStorage) DeleteCategory(_ context.Context, id domain.CategoryID) (*domain.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID != id {
			continue
		}
		deleted := f.categories[i]
		f.categories = append(f.categories[:i], f.categories[i+1:]...)

		kept := f.websites[:0]
		for _, w := range f.websites {
			if w.CategoryID != id {
				kept = append(kept, w)
			}
		}
		f.websites = kept

		return &deleted, nil
	}

	return nil, nil
}

func (f *fakeStorage) SetCategorySortOrder(_ context.Context, id domain.CategoryID, sortOrder int) error {
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories[i].SortOrder = sortOrder
		}
	}

	return nil
}

func (f *fakeStorage) Websites(_ context.Context, filter storage.WebsiteFilter) ([]domain.Website, error) {
	var out []domain.Website
	for _, w := range f.websites {
		if filter.CategoryID != nil && w.CategoryID != *filter.CategoryID {
			continue
		}
		out = append(out, w)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (f *fakeStorage) WebsiteByID(_ context.Context, id domain.WebsiteID) (*domain.Website, error) {
	for i := range f.websites {
		if f.websites[i].ID == id {
			w := f.websites[i]

			return &w, nil
		}
	}

	return nil, nil
}

func (f *fakeStorage) WebsiteByURL(_ context.Context, url string) (*domain.Website, error) {
	for i := range f.websites {
		if f.websites[i].URL == url {
			w := f.websites[i]

			return &w, nil
		}
	}

	return nil, nil
}

func (f *fakeStorage) StoreWebsite(_ context.Context, website domain.Website) (*domain.Website, error) {
	website.ID = domain.WebsiteID(uuid.New())
	website.CreatedAt = time.Now()
	f.websites = append(f.websites, website)

	return &website, nil
}

func (f *fakeStorage) UpdateWebsite(_ context.Context,
	id domain.WebsiteID,
	updates storage.WebsiteUpdates) (*domain.Website, error) {
	for i := range f.websites {
		if f.websites[i].ID != id {
			continue
		}
		if updates.URL != nil {
			f.websites[i].URL = *updates.URL
		}
		if updates.Title != nil {
			f.websites[i].Title = *updates.Title
		}
		if updates.Description != nil {
			f.websites[i].Description = *updates.Description
		}
		if updates.CategoryID != nil {
			f.websites[i].CategoryID = *updates.CategoryID
		}
		if updates.Tags != nil {
			f.websites[i].Tags = *updates.Tags
		}
		if updates.Favicon != nil {
			f.websites[i].Favicon = *updates.Favicon
		}
		f.websites[i].UpdatedAt = time.Now()
		w := f.websites[i]

		return &w, nil
	}

	return nil, nil
}

func (f *fakeStorage) DeleteWebsite(_ context.Context, id domain.WebsiteID) (*domain.Website, error) {
	for i := range f.websites {
		if f.websites[i].ID != id {
			continue
		}
		deleted := f.websites[i]
		f.websites = append(f.websites[:i], f.websites[i+1:]...)

		return &deleted, nil
	}

	return nil, nil
}

func (f *fakeStorage) RecordVisit(_ context.Context, id domain.WebsiteID) (*domain.Website, error) {
	for i := range f.websites {
		if f.websites[i].ID != id {
			continue
		}
		f.websites[i].VisitCount++
		now := time.Now()
		f.websites[i].LastVisited = &now
		w := f.websites[i]

		return &w, nil
	}

	return nil, nil
}

var _ storage.Storage = (*fakeStorage)(nil)
