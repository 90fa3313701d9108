package chatbotControllers

import (
	"sort"
	"strings"

	"github.com/gy-putra/tamago/models"
)

// Product selection is rule-based keyword matching over the lowercased
// message; it never depends on the LLM call, so the shortlist survives an
// LLM outage. English and Indonesian terms are matched alike.
var (
	popularKeywords   = []string{"popular", "bestseller", "best selling", "best seller", "terlaris", "populer"}
	ratingKeywords    = []string{"rated", "rating", "review", "terbaik", "bagus", "berkualitas"}
	newestKeywords    = []string{"new", "latest", "recent", "baru", "terbaru"}
	recommendKeywords = []string{"recommend", "suggest", "help me find", "rekomen", "sarankan", "bantu cari"}
	genericKeywords   = []string{"produk", "sepatu", "shoe", "product"}
)

func matchesAny(message string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

// MatchesPopular reports whether the message asks for popular products; the
// fallback path uses it to still return a shortlist when the LLM is down.
func MatchesPopular(message string) bool {
	return matchesAny(strings.ToLower(message), popularKeywords)
}

func topBySoldCount(catalog []models.ProductWithStats, n int) []models.ProductWithStats {
	out := append([]models.ProductWithStats(nil), catalog...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SoldCount > out[j].SoldCount })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func topByRating(catalog []models.ProductWithStats, n int) []models.ProductWithStats {
	out := append([]models.ProductWithStats(nil), catalog...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].AverageRating > out[j].AverageRating })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func topByNewest(catalog []models.ProductWithStats, n int) []models.ProductWithStats {
	out := append([]models.ProductWithStats(nil), catalog...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// RouteProducts picks the 0-3 products to display next to the reply.
func RouteProducts(message string, catalog []models.ProductWithStats) []models.ProductWithStats {
	lower := strings.ToLower(message)

	switch {
	case matchesAny(lower, popularKeywords):
		return topBySoldCount(catalog, 3)
	case matchesAny(lower, ratingKeywords):
		return topByRating(catalog, 3)
	case matchesAny(lower, newestKeywords):
		return topByNewest(catalog, 3)
	case matchesAny(lower, recommendKeywords):
		// Blend: two crowd favourites plus the top-rated pick.
		picks := topBySoldCount(catalog, 2)
		seen := make(map[string]struct{}, len(picks))
		for _, p := range picks {
			seen[p.ID] = struct{}{}
		}
		for _, p := range topByRating(catalog, len(catalog)) {
			if _, dup := seen[p.ID]; !dup {
				picks = append(picks, p)
				break
			}
		}
		return picks
	case matchesAny(lower, genericKeywords):
		return topBySoldCount(catalog, 2)
	default:
		return []models.ProductWithStats{}
	}
}
