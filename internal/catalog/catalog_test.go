package catalog_test

import (
	"context"
	"testing"

	"navhub/internal/catalog"
	"navhub/pkg/domain"
	"navhub/pkg/serrors"
	"navhub/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(f *fakeStorage) catalog.Catalog {
	return catalog.New(f, catalog.Options{SimilarityThreshold: 0.6})
}

func seedCategory(f *fakeStorage, name, icon string, sortOrder int) domain.Category {
	c := domain.Category{
		ID:        domain.CategoryID(uuid.New()),
		Name:      name,
		Icon:      icon,
		SortOrder: sortOrder,
	}
	f.categories = append(f.categories, c)

	return c
}

func TestCatalog_CreateCategory_assignsSortOrderAndIcon(t *testing.T) {
	f := &fakeStorage{}
	seedCategory(f, "开发工具", "Code", 4)
	c := newTestCatalog(f)

	created, err := c.CreateCategory(context.Background(), "代码托管", "")
	require.NoError(t, err)
	require.Equal(t, 5, created.SortOrder, "sort order should be max+1")
	require.Equal(t, "GitBranch", created.Icon, "icon derived from the name")
}

func TestCatalog_CreateCategory_normalizesIcon(t *testing.T) {
	f := &fakeStorage{}
	c := newTestCatalog(f)

	created, err := c.CreateCategory(context.Background(), "游戏", "gamepad")
	require.NoError(t, err)
	require.Equal(t, "Gamepad2", created.Icon)
}

func TestCatalog_CreateCategory_duplicateName(t *testing.T) {
	f := &fakeStorage{}
	seedCategory(f, "设计资源", "Palette", 1)
	c := newTestCatalog(f)

	_, err := c.CreateCategory(context.Background(), "设计资源", "")
	require.ErrorIs(t, err, serrors.ErrConflict)

	// case-insensitive for latin names
	seedCategory(f, "Design", "Palette", 2)
	_, err = c.CreateCategory(context.Background(), "design", "")
	require.ErrorIs(t, err, serrors.ErrConflict)
}

func TestCatalog_FindOrCreateCategory_existing(t *testing.T) {
	f := &fakeStorage{}
	want := seedCategory(f, "开发工具", "Code", 1)
	c := newTestCatalog(f)

	got, err := c.FindOrCreateCategory(context.Background(), "开发工具", "Wrench")
	require.NoError(t, err)
	require.Equal(t, want.ID, got.ID, "existing category must be reused")
	require.Equal(t, "Code", got.Icon, "existing icon must not be overwritten")
	require.Len(t, f.categories, 1)
}

func TestCatalog_FindOrCreateCategory_creates(t *testing.T) {
	f := &fakeStorage{}
	c := newTestCatalog(f)

	got, err := c.FindOrCreateCategory(context.Background(), "金融理财", "")
	require.NoError(t, err)
	require.Equal(t, "金融理财", got.Name)
	require.Equal(t, "TrendingUp", got.Icon)
	require.Equal(t, 1, got.SortOrder)
}

func TestCatalog_SuggestSimilar(t *testing.T) {
	f := &fakeStorage{}
	seedCategory(f, "开发工具", "Code", 1)
	seedCategory(f, "设计资源", "Palette", 2)
	seedCategory(f, "社交媒体", "Share2", 3)
	c := newTestCatalog(f)

	got, err := c.SuggestSimilar(context.Background(), "开发工具箱")
	require.NoError(t, err)
	require.Equal(t, []string{"开发工具"}, got)

	// an exact match is not a suggestion
	got, err = c.SuggestSimilar(context.Background(), "设计资源")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCatalog_SuggestSimilar_capped(t *testing.T) {
	f := &fakeStorage{}
	seedCategory(f, "工具A", "Wrench", 1)
	seedCategory(f, "工具B", "Wrench", 2)
	seedCategory(f, "工具C", "Wrench", 3)
	seedCategory(f, "工具D", "Wrench", 4)
	c := newTestCatalog(f)

	got, err := c.SuggestSimilar(context.Background(), "工具X")
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestCatalog_ReorderCategories(t *testing.T) {
	f := &fakeStorage{}
	a := seedCategory(f, "A", "Code", 0)
	b := seedCategory(f, "B", "Code", 1)
	cc := seedCategory(f, "C", "Code", 2)
	c := newTestCatalog(f)

	require.NoError(t, c.ReorderCategories(context.Background(),
		[]domain.CategoryID{cc.ID, a.ID, b.ID}))

	got, err := c.Categories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"C", "A", "B"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestCatalog_DeleteCategory_notFound(t *testing.T) {
	c := newTestCatalog(&fakeStorage{})
	err := c.DeleteCategory(context.Background(), domain.CategoryID(uuid.New()))
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestCatalog_CreateWebsite(t *testing.T) {
	f := &fakeStorage{}
	cat := seedCategory(f, "开发工具", "Code", 1)
	c := newTestCatalog(f)

	created, err := c.CreateWebsite(context.Background(), catalog.WebsiteInput{
		URL:        "https://github.com",
		Title:      "GitHub",
		CategoryID: cat.ID,
		Tags:       []string{"代码", "开源"},
	})
	require.NoError(t, err)
	require.Equal(t, "开发工具", created.CategoryName)

	// duplicate URL
	_, err = c.CreateWebsite(context.Background(), catalog.WebsiteInput{
		URL:        "https://github.com",
		Title:      "GitHub again",
		CategoryID: cat.ID,
	})
	require.ErrorIs(t, err, serrors.ErrConflict)

	// unknown category
	_, err = c.CreateWebsite(context.Background(), catalog.WebsiteInput{
		URL:        "https://example.com",
		Title:      "Example",
		CategoryID: domain.CategoryID(uuid.New()),
	})
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestCatalog_UpdateWebsite_checksCategory(t *testing.T) {
	f := &fakeStorage{}
	cat := seedCategory(f, "开发工具", "Code", 1)
	c := newTestCatalog(f)

	created, err := c.CreateWebsite(context.Background(), catalog.WebsiteInput{
		URL:        "https://github.com",
		Title:      "GitHub",
		CategoryID: cat.ID,
	})
	require.NoError(t, err)

	missing := domain.CategoryID(uuid.New())
	_, err = c.UpdateWebsite(context.Background(), created.ID,
		storage.WebsiteUpdates{CategoryID: &missing})
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	title := "GitHub - Code Hosting"
	updated, err := c.UpdateWebsite(context.Background(), created.ID,
		storage.WebsiteUpdates{Title: &title})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)
}

func TestCatalog_RecordVisit(t *testing.T) {
	f := &fakeStorage{}
	cat := seedCategory(f, "开发工具", "Code", 1)
	c := newTestCatalog(f)

	created, err := c.CreateWebsite(context.Background(), catalog.WebsiteInput{
		URL:        "https://github.com",
		Title:      "GitHub",
		CategoryID: cat.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), created.VisitCount)
	require.Nil(t, created.LastVisited)

	visited, err := c.RecordVisit(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), visited.VisitCount)
	require.NotNil(t, visited.LastVisited)

	_, err = c.RecordVisit(context.Background(), domain.WebsiteID(uuid.New()))
	require.ErrorIs(t, err, serrors.ErrNotFound)
}
