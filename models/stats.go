package models

import "math"

const (
	bestsellerRating    = 4.5
	bestsellerSoldCount = 50
)

// ProductStats is derived from review rows on every read. Nothing here is
// stored, so it can never drift out of sync with the reviews table.
type ProductStats struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
	IsBestseller  bool    `json:"isBestseller"`
}

// ProductWithStats is the catalog read shape: the raw product plus its
// computed rating summary.
type ProductWithStats struct {
	Product
	ProductStats
}

// ComputeStats aggregates review ratings for one product. The average is
// rounded to one decimal and defined as 0 when there are no reviews.
// A product is a bestseller when averageRating >= 4.5 or soldCount >= 50.
func ComputeStats(ratings []int, soldCount int) ProductStats {
	var avg float64
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		avg = math.Round(float64(sum)/float64(len(ratings))*10) / 10
	}
	return ProductStats{
		AverageRating: avg,
		TotalReviews:  len(ratings),
		IsBestseller:  avg >= bestsellerRating || soldCount >= bestsellerSoldCount,
	}
}

// WithStats decorates a product using its preloaded reviews.
func WithStats(p Product) ProductWithStats {
	ratings := make([]int, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		ratings = append(ratings, r.Rating)
	}
	stats := ComputeStats(ratings, p.SoldCount)
	p.Reviews = nil // reviews are served by their own endpoint
	return ProductWithStats{Product: p, ProductStats: stats}
}
