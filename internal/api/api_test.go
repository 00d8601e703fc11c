package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"navhub/internal/analyzer"
	"navhub/internal/assistant"
	"navhub/internal/catalog"
	"navhub/pkg/aiclient"
	"navhub/pkg/domain"
	"navhub/pkg/storage"
)

var errNotImplemented = errors.New("not implemented")

// fakeCatalog dispatches to per-test function fields; endpoints a test does
// not configure fail loudly.
type fakeCatalog struct {
	categoriesFn        func(context.Context) ([]domain.Category, error)
	createCategoryFn    func(context.Context, string, string) (*domain.Category, error)
	updateCategoryFn    func(context.Context, domain.CategoryID, storage.CategoryUpdates) (*domain.Category, error)
	deleteCategoryFn    func(context.Context, domain.CategoryID) error
	reorderCategoriesFn func(context.Context, []domain.CategoryID) error
	websitesFn          func(context.Context, storage.WebsiteFilter) ([]domain.Website, error)
	websiteFn           func(context.Context, domain.WebsiteID) (*domain.Website, error)
	createWebsiteFn     func(context.Context, catalog.WebsiteInput) (*domain.Website, error)
	updateWebsiteFn     func(context.Context, domain.WebsiteID, storage.WebsiteUpdates) (*domain.Website, error)
	deleteWebsiteFn     func(context.Context, domain.WebsiteID) error
	recordVisitFn       func(context.Context, domain.WebsiteID) (*domain.Website, error)
}

func (f *fakeCatalog) Categories(ctx context.Context) ([]domain.Category, error) {
	if f.categoriesFn == nil {
		return nil, errNotImplemented
	}

	return f.categoriesFn(ctx)
}

func (f *fakeCatalog) CreateCategory(ctx context.Context, name, icon string) (*domain.Category, error) {
	if f.createCategoryFn == nil {
		return nil, errNotImplemented
	}

	return f.createCategoryFn(ctx, name, icon)
}

func (f *fakeCatalog) UpdateCategory(ctx context.Context, id domain.CategoryID, updates storage.CategoryUpdates) (*domain.Category, error) {
	if f.updateCategoryFn == nil {
		return nil, errNotImplemented
	}

	return f.updateCategoryFn(ctx, id, updates)
}

func (f *fakeCatalog) DeleteCategory(ctx context.Context, id domain.CategoryID) error {
	if f.deleteCategoryFn == nil {
		return errNotImplemented
	}

	return f.deleteCategoryFn(ctx, id)
}

func (f *fakeCatalog) ReorderCategories(ctx context.Context, ids []domain.CategoryID) error {
	if f.reorderCategoriesFn == nil {
		return errNotImplemented
	}

	return f.reorderCategoriesFn(ctx, ids)
}

func (f *fakeCatalog) FindOrCreateCategory(context.Context, string, string) (*domain.Category, error) {
	return nil, errNotImplemented
}

func (f *fakeCatalog) SuggestSimilar(context.Context, string) ([]string, error) {
	return nil, errNotImplemented
}

func (f *fakeCatalog) Websites(ctx context.Context, filter storage.WebsiteFilter) ([]domain.Website, error) {
	if f.websitesFn == nil {
		return nil, errNotImplemented
	}

	return f.websitesFn(ctx, filter)
}

func (f *fakeCatalog) Website(ctx context.Context, id domain.WebsiteID) (*domain.Website, error) {
	if f.websiteFn == nil {
		return nil, errNotImplemented
	}

	return f.websiteFn(ctx, id)
}

func (f *fakeCatalog) CreateWebsite(ctx context.Context, input catalog.WebsiteInput) (*domain.Website, error) {
	if f.createWebsiteFn == nil {
		return nil, errNotImplemented
	}

	return f.createWebsiteFn(ctx, input)
}

func (f *fakeCatalog) UpdateWebsite(ctx context.Context, id domain.WebsiteID, updates storage.WebsiteUpdates) (*domain.Website, error) {
	if f.updateWebsiteFn == nil {
		return nil, errNotImplemented
	}

	return f.updateWebsiteFn(ctx, id, updates)
}

func (f *fakeCatalog) DeleteWebsite(ctx context.Context, id domain.WebsiteID) error {
	if f.deleteWebsiteFn == nil {
		return errNotImplemented
	}

	return f.deleteWebsiteFn(ctx, id)
}

func (f *fakeCatalog) RecordVisit(ctx context.Context, id domain.WebsiteID) (*domain.Website, error) {
	if f.recordVisitFn == nil {
		return nil, errNotImplemented
	}

	return f.recordVisitFn(ctx, id)
}

// Ensure fakeCatalog conforms to the Catalog interface at compile time.
var _ catalog.Catalog = (*fakeCatalog)(nil)

type fakeAnalyzer struct {
	analyzeFn func(context.Context, string) (*analyzer.Analysis, error)
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, url string) (*analyzer.Analysis, error) {
	if f.analyzeFn == nil {
		return nil, errNotImplemented
	}

	return f.analyzeFn(ctx, url)
}

// Ensure fakeAnalyzer conforms to the Analyzer interface at compile time.
var _ analyzer.Analyzer = (*fakeAnalyzer)(nil)

type fakeAssistant struct {
	chatFn func(context.Context, []aiclient.Message, func(assistant.Event) error) error
}

func (f *fakeAssistant) Chat(ctx context.Context, messages []aiclient.Message, emit func(assistant.Event) error) error {
	if f.chatFn == nil {
		return errNotImplemented
	}

	return f.chatFn(ctx, messages, emit)
}

// Ensure fakeAssistant conforms to the Assistant interface at compile time.
var _ assistant.Assistant = (*fakeAssistant)(nil)

func serve(t *testing.T, deps Deps, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newRouter(deps, "test").ServeHTTP(rec, req)

	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	return out
}
