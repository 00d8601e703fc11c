package webmeta

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"navhub/pkg/logger"

	"go.uber.org/zap"
)

// faviconServices build candidate icon URLs for a domain, tried in order.
// The external services render higher-quality icons than most sites' own
// favicon.ico; the site's own paths come last.
var faviconServices = []func(domain string) string{
	func(d string) string {
		return fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=64", url.QueryEscape(d))
	},
	func(d string) string {
		return fmt.Sprintf("https://favicon.yandex.net/favicon/%s", d)
	},
	func(d string) string {
		return fmt.Sprintf("https://icons.duckduckgo.com/ip3/%s.ico", d)
	},
	func(d string) string {
		return fmt.Sprintf("https://%s/apple-touch-icon.png", d)
	},
	func(d string) string {
		return fmt.Sprintf("https://%s/favicon.ico", d)
	},
}

// ResolveHighQualityFavicon probes favicon services for the URL's domain and
// returns the first candidate that answers a HEAD request with an image
// content type. It never fails: when every probe misses it falls back to
// DefaultFavicon.
func (e *Extractor) ResolveHighQualityFavicon(ctx context.Context, rawURL string) string {
	u, err := url.Parse(NormalizeURL(rawURL))
	if err != nil || u.Hostname() == "" {
		return PlaceholderFavicon
	}
	domain := u.Hostname()

	for _, service := range faviconServices {
		candidate := service(domain)
		if e.probeImage(ctx, candidate) {
			return candidate
		}
	}

	logger.Debug(ctx, "no favicon candidate answered, using default",
		zap.String("domain", domain))

	return DefaultFavicon(rawURL)
}

// probeImage sends a HEAD request and reports whether the response is a
// 2xx with an image content type.
func (e *Extractor) probeImage(ctx context.Context, candidate string) bool {
	ctx, cancel := context.WithTimeout(ctx, e.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, candidate, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false
	}

	return strings.Contains(resp.Header.Get("Content-Type"), "image")
}
