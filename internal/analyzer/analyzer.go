package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"navhub/internal/catalog"
	"navhub/internal/config"
	"navhub/pkg/aiclient"
	"navhub/pkg/domain"
	"navhub/pkg/icons"
	"navhub/pkg/logger"
	"navhub/pkg/metrics"
	"navhub/pkg/webmeta"
)

// extractCacheKeyPrefix namespaces cached extraction results in redis.
const extractCacheKeyPrefix = "navhub:extract:"

// MetadataExtractor is the page metadata surface the analyzer needs.
// *webmeta.Extractor satisfies it.
type MetadataExtractor interface {
	Extract(ctx context.Context, rawURL string) webmeta.ExtractedInfo
	ResolveHighQualityFavicon(ctx context.Context, rawURL string) string
}

// Ensure Extractor conforms to the MetadataExtractor interface at compile time.
var _ MetadataExtractor = (*webmeta.Extractor)(nil)

// Options represents the configuration options for the analyzer.
type Options struct {
	// CategoryMatchThreshold is the minimum keyword overlap for snapping an
	// unknown model category onto an existing one.
	CategoryMatchThreshold float64
	// MaxTags caps the number of tags kept per analysis.
	MaxTags int
	// ExtractCacheTTL is how long extraction results stay cached. Only used
	// when a cache client is configured.
	ExtractCacheTTL time.Duration
}

// NewOptions creates an Options based on the given Config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		CategoryMatchThreshold: cfg.Analyzer.CategoryMatchThreshold,
		MaxTags:                cfg.Analyzer.MaxTags,
		ExtractCacheTTL:        cfg.Redis.ExtractTTL,
	}
}

type service struct {
	ai        aiclient.Client
	catalog   catalog.Catalog
	extractor MetadataExtractor
	// cache is optional; nil disables extraction caching.
	cache   redis.UniversalClient
	options Options
}

// New returns an Analyzer backed by the given model client, catalog and
// metadata extractor. cache may be nil.
func New(
	ai aiclient.Client,
	cat catalog.Catalog,
	extractor MetadataExtractor,
	cache redis.UniversalClient,
	options Options,
) Analyzer {
	if options.CategoryMatchThreshold <= 0 {
		options.CategoryMatchThreshold = 0.3
	}
	if options.MaxTags <= 0 {
		options.MaxTags = 5
	}

	return &service{ai: ai, catalog: cat, extractor: extractor, cache: cache, options: options}
}

// Ensure service conforms to the Analyzer interface at compile time.
var _ Analyzer = (*service)(nil)

// Analyze runs the full pipeline for one URL: extract metadata, classify
// (model first, keyword rules as fallback), land the category on a real row
// and assemble the suggestion. It only fails on storage errors; unreachable
// pages and model outages degrade the result instead.
func (s *service) Analyze(ctx context.Context, rawURL string) (*Analysis, error) {
	timer := prometheus.NewTimer(metrics.AnalyzeDuration)
	defer timer.ObserveDuration()

	rawURL = webmeta.NormalizeURL(strings.TrimSpace(rawURL))

	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		metrics.AnalyzeTotal.WithLabelValues(metrics.SourceError).Inc()

		return nil, err
	}
	// Most used first, so the classifier prompt leads with the categories most
	// likely to fit.
	sort.SliceStable(categories, func(i, j int) bool { return categories[i].Count > categories[j].Count })

	info := s.extract(ctx, rawURL)

	classification, err := s.classify(ctx, rawURL, &info, categories)
	usedRules := err != nil
	if usedRules {
		logger.Warn(ctx, "model classification failed, falling back to rules",
			zap.String("url", rawURL), zap.Error(err))
		classification = classifyByRules(rawURL, &info)
		metrics.AnalyzeTotal.WithLabelValues(metrics.SourceRules).Inc()
	} else {
		metrics.AnalyzeTotal.WithLabelValues(metrics.SourceAI).Inc()
	}

	category, err := s.catalog.FindOrCreateCategory(ctx, classification.Category, icons.Normalize(classification.SuggestedIcon))
	if err != nil {
		return nil, err
	}

	favicon := info.Favicon
	if favicon == "" || strings.Contains(favicon, "placeholder") {
		favicon = s.extractor.ResolveHighQualityFavicon(ctx, rawURL)
	}

	similar, err := s.catalog.SuggestSimilar(ctx, category.Name)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		URL:               rawURL,
		Title:             info.Title,
		Description:       classification.Description,
		Favicon:           favicon,
		CategoryID:        category.ID,
		CategoryName:      category.Name,
		Tags:              classification.Tags,
		ExtractedKeywords: info.Keywords,
		OGImage:           info.OGImage,
		SiteName:          info.SiteName,
		SuggestedIcon:     category.Icon,
		SimilarCategories: similar,
		IsNewCategory:     isNewCategory(category.Name, categories),
		Degraded:          info.Degraded && usedRules,
	}, nil
}

// isNewCategory reports whether the landed category did not exist before this
// analysis.
func isNewCategory(name string, existing []domain.Category) bool {
	for _, category := range existing {
		if strings.EqualFold(category.Name, name) {
			return false
		}
	}

	return true
}

// extract fetches page metadata, going through the redis cache when one is
// configured. Cache failures are logged and ignored.
func (s *service) extract(ctx context.Context, rawURL string) webmeta.ExtractedInfo {
	if s.cache == nil {
		return s.extractor.Extract(ctx, rawURL)
	}

	key := extractCacheKeyPrefix + rawURL
	if payload, err := s.cache.Get(ctx, key).Bytes(); err == nil {
		var cached webmeta.ExtractedInfo
		if err := json.Unmarshal(payload, &cached); err == nil {
			metrics.ExtractCacheHits.Inc()

			return cached
		}
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn(ctx, "could not read extraction cache", zap.String("url", rawURL), zap.Error(err))
	}

	info := s.extractor.Extract(ctx, rawURL)
	// Degraded extractions are not cached, a retry may succeed.
	if info.Degraded {
		return info
	}

	if payload, err := json.Marshal(info); err == nil {
		if err := s.cache.Set(ctx, key, payload, s.options.ExtractCacheTTL).Err(); err != nil {
			logger.Warn(ctx, "could not write extraction cache", zap.String("url", rawURL), zap.Error(err))
		}
	}

	return info
}
