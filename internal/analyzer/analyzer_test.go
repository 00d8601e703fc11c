package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"navhub/internal/catalog"
	"navhub/pkg/domain"
	"navhub/pkg/storage"
	"navhub/pkg/webmeta"
)

var errNotImplemented = errors.New("not implemented")

type fakeCatalog struct {
	categories    []domain.Category
	categoriesErr error
	found         *domain.Category
	findErr       error
	similar       []string

	foundName string
	foundIcon string
}

func (f *fakeCatalog) Categories(context.Context) ([]domain.Category, error) {
	return append([]domain.Category{}, f.categories...), f.categoriesErr
}

func (f *fakeCatalog) FindOrCreateCategory(_ context.Context, name, suggestedIcon string) (*domain.Category, error) {
	f.foundName, f.foundIcon = name, suggestedIcon
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.found != nil {
		return f.found, nil
	}

	return &domain.Category{ID: uuid.New(), Name: name, Icon: suggestedIcon}, nil
}

func (f *fakeCatalog) SuggestSimilar(context.Context, string) ([]string, error) {
	return f.similar, nil
}

func (f *fakeCatalog) CreateCategory(context.Context, string, string) (*domain.Category, error) {
	return nil, errNotImplemented
}

func (f *fakeCatalog) UpdateCategory(context.Context, domain.CategoryID, storage.CategoryUpdates) (*domain.Category, error) {
	return nil, errNotImplemented
}

func (f *fakeCatalog) DeleteCategory(context.Context, domain.CategoryID) error {
	return errNotImplemented
}

func (f *fakeCatalog) ReorderCategories(context.Context, []domain.CategoryID) error {
	return errNotImplemented
}

func (f *fakeCatalog) Websites(context.Context, storage.WebsiteFilter) ([]domain.Website, error) {
	return nil, errNotImplemented
}

func (f *fakeCatalog) Website(context.Context, domain.WebsiteID) (*domain.Website, error) {
	return nil, errNotImplemented
}

func (f *fakeCatalog) CreateWebsite(context.Context, catalog.WebsiteInput) (*domain.Website, error) {
	return nil, errNotImplemented
}

func (f *fakeCatalog) UpdateWebsite(context.Context, domain.WebsiteID, storage.WebsiteUpdates) (*domain.Website, error) {
	return nil, errNotImplemented
}

func (f *fakeCatalog) DeleteWebsite(context.Context, domain.WebsiteID) error {
	return errNotImplemented
}

func (f *fakeCatalog) RecordVisit(context.Context, domain.WebsiteID) (*domain.Website, error) {
	return nil, errNotImplemented
}

// Ensure fakeCatalog conforms to the Catalog interface at compile time.
var _ catalog.Catalog = (*fakeCatalog)(nil)

type fakeExtractor struct {
	info    webmeta.ExtractedInfo
	favicon string

	extractedURL string
	probed       bool
}

func (f *fakeExtractor) Extract(_ context.Context, rawURL string) webmeta.ExtractedInfo {
	f.extractedURL = rawURL

	return f.info
}

func (f *fakeExtractor) ResolveHighQualityFavicon(context.Context, string) string {
	f.probed = true

	return f.favicon
}

const devToolsReply = `{"category": "开发工具", "tags": ["代码托管", "开源"], ` +
	`"description": "全球最大的代码托管平台", "suggestedCategoryIcon": "GitBranch"}`

func githubInfo() webmeta.ExtractedInfo {
	return webmeta.ExtractedInfo{
		Title:       "GitHub",
		Description: "Where the world builds software",
		Favicon:     "https://github.com/favicon.ico",
		Keywords:    []string{"git", "code"},
		OGImage:     "https://github.com/og.png",
		SiteName:    "GitHub",
	}
}

func TestAnalyze(t *testing.T) {
	devToolsID := uuid.New()

	t.Run("modelPath", func(t *testing.T) {
		ai := &fakeAI{reply: devToolsReply}
		cat := &fakeCatalog{
			categories: []domain.Category{{ID: devToolsID, Name: "开发工具", Icon: "Code", Count: 12}},
			found:      &domain.Category{ID: devToolsID, Name: "开发工具", Icon: "Code", Count: 12},
			similar:    []string{"实用工具"},
		}
		extractor := &fakeExtractor{info: githubInfo()}

		got, err := New(ai, cat, extractor, nil, Options{}).Analyze(context.Background(), "github.com")

		require.NoError(t, err)
		require.Equal(t, "https://github.com", got.URL)
		require.Equal(t, "https://github.com", extractor.extractedURL)
		require.Equal(t, "GitHub", got.Title)
		require.Equal(t, "全球最大的代码托管平台", got.Description)
		require.Equal(t, "https://github.com/favicon.ico", got.Favicon)
		require.False(t, extractor.probed)
		require.Equal(t, devToolsID, got.CategoryID)
		require.Equal(t, "开发工具", got.CategoryName)
		require.Equal(t, []string{"代码托管", "开源"}, got.Tags)
		require.Equal(t, []string{"git", "code"}, got.ExtractedKeywords)
		require.Equal(t, "https://github.com/og.png", got.OGImage)
		require.Equal(t, "GitHub", got.SiteName)
		require.Equal(t, "Code", got.SuggestedIcon)
		require.Equal(t, []string{"实用工具"}, got.SimilarCategories)
		require.False(t, got.IsNewCategory)
		require.False(t, got.Degraded)

		require.Equal(t, "开发工具", cat.foundName)
		require.Equal(t, "GitBranch", cat.foundIcon)
	})

	t.Run("ranksCategoriesByUsageInPrompt", func(t *testing.T) {
		ai := &fakeAI{reply: devToolsReply}
		cat := &fakeCatalog{categories: []domain.Category{
			{ID: uuid.New(), Name: "设计工具", Count: 2},
			{ID: devToolsID, Name: "开发工具", Count: 9},
		}}
		extractor := &fakeExtractor{info: githubInfo()}

		_, err := New(ai, cat, extractor, nil, Options{}).Analyze(context.Background(), "https://github.com")

		require.NoError(t, err)
		require.Contains(t, ai.messages[0].Content, `1. "开发工具" (9个网站)`)
		require.Contains(t, ai.messages[0].Content, `2. "设计工具" (2个网站)`)
	})

	t.Run("newCategory", func(t *testing.T) {
		ai := &fakeAI{reply: `{"category": "天气预报", "tags": ["天气"], "description": "d", ` +
			`"suggestedCategoryIcon": "Globe"}`}
		cat := &fakeCatalog{categories: []domain.Category{{ID: devToolsID, Name: "开发工具", Count: 12}}}
		extractor := &fakeExtractor{info: webmeta.ExtractedInfo{Title: "Weather", Favicon: "https://w.example/favicon.ico"}}

		got, err := New(ai, cat, extractor, nil, Options{}).Analyze(context.Background(), "https://weather.example")

		require.NoError(t, err)
		require.Equal(t, "天气预报", got.CategoryName)
		require.True(t, got.IsNewCategory)
	})

	t.Run("rulesFallbackOnModelError", func(t *testing.T) {
		ai := &fakeAI{err: errors.New("model down")}
		cat := &fakeCatalog{}
		extractor := &fakeExtractor{info: githubInfo()}

		got, err := New(ai, cat, extractor, nil, Options{}).Analyze(context.Background(), "https://github.com")

		require.NoError(t, err)
		require.Equal(t, "代码托管", got.CategoryName)
		require.Equal(t, "GitBranch", cat.foundIcon)
		// The page fetch worked, only the model was unavailable.
		require.False(t, got.Degraded)
	})

	t.Run("degradedWhenFetchAndModelFail", func(t *testing.T) {
		ai := &fakeAI{err: errors.New("model down")}
		cat := &fakeCatalog{}
		extractor := &fakeExtractor{
			info:    webmeta.ExtractedInfo{Title: "Github", Favicon: webmeta.PlaceholderFavicon, Degraded: true},
			favicon: "https://www.google.com/s2/favicons?domain=github.com&sz=64",
		}

		got, err := New(ai, cat, extractor, nil, Options{}).Analyze(context.Background(), "https://github.com")

		require.NoError(t, err)
		require.True(t, got.Degraded)
		require.True(t, extractor.probed)
		require.Equal(t, "https://www.google.com/s2/favicons?domain=github.com&sz=64", got.Favicon)
	})

	t.Run("upgradesEmptyFavicon", func(t *testing.T) {
		ai := &fakeAI{reply: devToolsReply}
		cat := &fakeCatalog{}
		info := githubInfo()
		info.Favicon = ""
		extractor := &fakeExtractor{info: info, favicon: "https://icons.duckduckgo.com/ip3/github.com.ico"}

		got, err := New(ai, cat, extractor, nil, Options{}).Analyze(context.Background(), "https://github.com")

		require.NoError(t, err)
		require.True(t, extractor.probed)
		require.Equal(t, "https://icons.duckduckgo.com/ip3/github.com.ico", got.Favicon)
	})

	t.Run("categoriesError", func(t *testing.T) {
		cat := &fakeCatalog{categoriesErr: errors.New("db down")}

		_, err := New(&fakeAI{}, cat, &fakeExtractor{}, nil, Options{}).Analyze(context.Background(), "https://github.com")

		require.Error(t, err)
	})

	t.Run("findOrCreateError", func(t *testing.T) {
		cat := &fakeCatalog{findErr: errors.New("db down")}
		extractor := &fakeExtractor{info: githubInfo()}

		_, err := New(&fakeAI{reply: devToolsReply}, cat, extractor, nil, Options{}).Analyze(context.Background(), "https://github.com")

		require.Error(t, err)
	})
}
