// Package webmeta fetches web pages and extracts the metadata used for
// bookmarking: title, description, favicon, keywords, open-graph fields and
// a cleaned slice of the page text. Extraction never fails outward; when the
// page cannot be fetched or parsed the result degrades to values derived
// from the URL alone.
package webmeta

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"navhub/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	defaultFetchTimeout = 10 * time.Second
	defaultProbeTimeout = 5 * time.Second

	// maxContentLength caps ExtractedInfo.PageContent, in runes.
	maxContentLength = 2000

	// minContainerLength is the minimum trimmed text length for a content
	// container to be considered the main content of the page.
	minContainerLength = 100
)

// PlaceholderFavicon marks a favicon that could not be determined. Callers
// treat it the same as an empty favicon and may upgrade it through
// ResolveHighQualityFavicon.
const PlaceholderFavicon = "/placeholder.svg"

// ExtractedInfo is the metadata extracted from a single page. It is a
// transient, per-request value; nothing in it is persisted directly.
type ExtractedInfo struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Favicon     string   `json:"favicon"`
	Keywords    []string `json:"keywords"`
	OGImage     string   `json:"ogImage,omitempty"`
	SiteName    string   `json:"siteName,omitempty"`
	PageContent string   `json:"pageContent,omitempty"`

	// Degraded is set when the page could not be fetched and all fields were
	// derived from the URL alone.
	Degraded bool `json:"degraded,omitempty"`
}

// Options configure an Extractor.
type Options struct {
	// Client performs HTTP requests. A default client is used when nil; the
	// per-request timeout is applied through the context either way.
	Client *http.Client
	// UserAgent is sent with every fetch. Some sites serve stripped-down
	// pages to unknown agents, so a browser-like default is used.
	UserAgent string
	// FetchTimeout bounds the page fetch (default 10s).
	FetchTimeout time.Duration
	// ProbeTimeout bounds each favicon existence probe (default 5s).
	ProbeTimeout time.Duration
}

// Extractor fetches pages and extracts metadata. It is safe for concurrent
// use; it holds no per-request state.
type Extractor struct {
	client       *http.Client
	userAgent    string
	fetchTimeout time.Duration
	probeTimeout time.Duration
}

// New creates an Extractor with the provided options, applying defaults for
// any zero values.
func New(opts Options) *Extractor {
	e := &Extractor{
		client:       opts.Client,
		userAgent:    opts.UserAgent,
		fetchTimeout: opts.FetchTimeout,
		probeTimeout: opts.ProbeTimeout,
	}
	if e.client == nil {
		e.client = &http.Client{}
	}
	if e.userAgent == "" {
		e.userAgent = defaultUserAgent
	}
	if e.fetchTimeout <= 0 {
		e.fetchTimeout = defaultFetchTimeout
	}
	if e.probeTimeout <= 0 {
		e.probeTimeout = defaultProbeTimeout
	}

	return e
}

// NormalizeURL prepends https:// when the input has no scheme.
func NormalizeURL(raw string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}

	return raw
}

// Extract fetches the page at rawURL and extracts its metadata. It never
// returns an error: on any network failure, timeout, non-2xx status or parse
// failure the result is derived from the URL alone and marked Degraded.
func (e *Extractor) Extract(ctx context.Context, rawURL string) ExtractedInfo {
	pageURL := NormalizeURL(rawURL)

	ctx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	doc, err := e.fetch(ctx, pageURL)
	if err != nil {
		logger.Warn(ctx, "could not fetch page, falling back to URL-derived info",
			zap.String("url", pageURL), zap.Error(err))

		return degradedInfo(pageURL)
	}

	return ExtractedInfo{
		Title:       extractTitle(doc, pageURL),
		Description: extractDescription(doc),
		Favicon:     extractFavicon(doc, pageURL),
		Keywords:    extractKeywords(doc),
		OGImage:     extractOGImage(doc, pageURL),
		SiteName:    metaContent(doc, `meta[property="og:site_name"]`),
		PageContent: extractPageContent(doc),
	}
}

// fetch retrieves the page and parses it into a goquery document.
func (e *Extractor) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode}
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// statusError reports a non-2xx fetch status.
type statusError struct{ code int }

func (e *statusError) Error() string { return "unexpected status " + http.StatusText(e.code) }

// degradedInfo builds the URL-derived fallback result.
func degradedInfo(pageURL string) ExtractedInfo {
	return ExtractedInfo{
		Title:    TitleFromURL(pageURL),
		Favicon:  DefaultFavicon(pageURL),
		Keywords: []string{},
		Degraded: true,
	}
}

// metaContent returns the trimmed content attribute of the first element
// matching the selector, or "".
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")

	return strings.TrimSpace(content)
}

// extractTitle tries og:title, twitter:title, <title> and the first <h1>, in
// that order, falling back to a title derived from the URL.
func extractTitle(doc *goquery.Document, pageURL string) string {
	if t := metaContent(doc, `meta[property="og:title"]`); t != "" {
		return t
	}
	if t := metaContent(doc, `meta[name="twitter:title"]`); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}

	return TitleFromURL(pageURL)
}

// extractDescription tries the description metas in priority order, then
// falls back to the first paragraph when it carries enough text.
func extractDescription(doc *goquery.Document) string {
	selectors := []string{
		`meta[name="description"]`,
		`meta[property="og:description"]`,
		`meta[name="twitter:description"]`,
		`meta[itemprop="description"]`,
	}
	for _, sel := range selectors {
		if d := metaContent(doc, sel); d != "" {
			return d
		}
	}

	text := strings.TrimSpace(doc.Find("p").First().Text())
	if len([]rune(text)) > 20 {
		return truncateRunes(text, 200)
	}

	return ""
}

// extractFavicon tries the icon links and og:image in priority order and
// resolves relative references against the page URL.
func extractFavicon(doc *goquery.Document, pageURL string) string {
	selectors := []string{
		`link[rel="icon"]`,
		`link[rel="shortcut icon"]`,
		`link[rel="apple-touch-icon"]`,
		`link[rel="apple-touch-icon-precomposed"]`,
	}
	for _, sel := range selectors {
		if href, ok := doc.Find(sel).First().Attr("href"); ok && strings.TrimSpace(href) != "" {
			return resolveURL(strings.TrimSpace(href), pageURL)
		}
	}
	if img := metaContent(doc, `meta[property="og:image"]`); img != "" {
		return resolveURL(img, pageURL)
	}

	return DefaultFavicon(pageURL)
}

// extractKeywords splits the keywords meta on commas, trimming and dropping
// empty entries. An absent meta yields an empty slice, not nil.
func extractKeywords(doc *goquery.Document) []string {
	keywords := []string{}
	for _, k := range strings.Split(metaContent(doc, `meta[name="keywords"]`), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}

	return keywords
}

func extractOGImage(doc *goquery.Document, pageURL string) string {
	if img := metaContent(doc, `meta[property="og:image"]`); img != "" {
		return resolveURL(img, pageURL)
	}

	return ""
}

// strippedSelectors are removed from the document before the main content is
// located: scripts, chrome, ads and cookie banners.
const strippedSelectors = "script, style, nav, header, footer, aside, " +
	".advertisement, .ads, .sidebar, .navigation, .menu, .cookie, .popup"

// contentSelectors are tried in order; the first container with more than
// minContainerLength characters of text wins.
var contentSelectors = []string{
	"main", "article", ".content", ".main-content",
	".post-content", ".entry-content", ".article-content",
	".page-content", "section", ".container",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// extractPageContent returns a cleaned, whitespace-collapsed slice of the
// page's main text, capped at maxContentLength runes.
func extractPageContent(doc *goquery.Document) string {
	doc.Find(strippedSelectors).Remove()

	var content string
	for _, sel := range contentSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if len([]rune(text)) > minContainerLength {
			content = text

			break
		}
	}
	if content == "" {
		content = doc.Find("body").Text()
	}

	content = strings.TrimSpace(whitespaceRe.ReplaceAllString(content, " "))

	return truncateRunes(content, maxContentLength)
}

// truncateRunes caps s at limit runes and appends an ellipsis marker when
// truncation happened.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit]) + "..."
}

// resolveURL resolves an absolute, protocol-relative, absolute-path or
// relative-path reference against the page URL. Unresolvable references are
// returned unchanged.
func resolveURL(ref, pageURL string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return ref
	}

	if strings.HasPrefix(ref, "//") {
		return base.Scheme + ":" + ref
	}

	resolved, err := base.Parse(ref)
	if err != nil {
		return ref
	}

	return resolved.String()
}

// TitleFromURL derives a display title from the URL's second-level domain
// label: "https://www.example.com/x" becomes "Example".
func TitleFromURL(rawURL string) string {
	u, err := url.Parse(NormalizeURL(rawURL))
	if err != nil || u.Hostname() == "" {
		return "Unknown Website"
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	parts := strings.Split(host, ".")
	name := host
	if len(parts) >= 2 {
		name = parts[len(parts)-2]
	}
	if name == "" {
		return "Unknown Website"
	}

	return strings.ToUpper(name[:1]) + name[1:]
}

// DefaultFavicon returns {origin}/favicon.ico for the URL, or the
// placeholder marker when the URL cannot be parsed.
func DefaultFavicon(rawURL string) string {
	u, err := url.Parse(NormalizeURL(rawURL))
	if err != nil || u.Host == "" {
		return PlaceholderFavicon
	}

	return u.Scheme + "://" + u.Host + "/favicon.ico"
}
