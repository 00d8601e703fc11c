package assistant

import (
	"regexp"

	"navhub/pkg/domain"
)

// maxRecommendations caps how many websites one reply may recommend.
const maxRecommendations = 3

var recommendMarkerRe = regexp.MustCompile(`\[RECOMMEND:(https?://[^\]]+)\]`)

// extractRecommendations resolves the recommendation markers of a complete
// reply against the website pool. Markers pointing outside the pool are
// dropped silently; order of appearance is kept and at most three websites
// are returned.
func extractRecommendations(reply string, pool []domain.Website) []domain.Website {
	byURL := make(map[string]domain.Website, len(pool))
	for _, website := range pool {
		byURL[website.URL] = website
	}

	var recommendations []domain.Website
	for _, match := range recommendMarkerRe.FindAllStringSubmatch(reply, -1) {
		website, ok := byURL[match[1]]
		if !ok {
			continue
		}

		recommendations = append(recommendations, website)
		if len(recommendations) == maxRecommendations {
			break
		}
	}

	return recommendations
}
