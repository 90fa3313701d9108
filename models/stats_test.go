package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name       string
		ratings    []int
		soldCount  int
		wantAvg    float64
		wantTotal  int
		bestseller bool
	}{
		{
			name:      "no reviews",
			ratings:   nil,
			soldCount: 0,
			wantAvg:   0,
			wantTotal: 0,
		},
		{
			name:      "single rating",
			ratings:   []int{3},
			soldCount: 0,
			wantAvg:   3,
			wantTotal: 1,
		},
		{
			name:      "mean rounded to one decimal",
			ratings:   []int{1, 2, 2},
			soldCount: 0,
			wantAvg:   1.7, // 5/3 = 1.666...
			wantTotal: 3,
		},
		{
			name:       "rating exactly at bestseller threshold",
			ratings:    []int{4, 5},
			soldCount:  0,
			wantAvg:    4.5,
			wantTotal:  2,
			bestseller: true,
		},
		{
			name:      "rating just below threshold",
			ratings:   []int{4, 4, 5}, // 4.333 -> 4.3
			soldCount: 0,
			wantAvg:   4.3,
			wantTotal: 3,
		},
		{
			name:      "sold count just below threshold",
			ratings:   nil,
			soldCount: 49,
			wantAvg:   0,
			wantTotal: 0,
		},
		{
			name:       "sold count at threshold",
			ratings:    nil,
			soldCount:  50,
			wantAvg:    0,
			wantTotal:  0,
			bestseller: true,
		},
		{
			name:       "low rating but high sales",
			ratings:    []int{2, 2},
			soldCount:  120,
			wantAvg:    2,
			wantTotal:  2,
			bestseller: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStats(tt.ratings, tt.soldCount)
			assert.Equal(t, tt.wantAvg, stats.AverageRating)
			assert.Equal(t, tt.wantTotal, stats.TotalReviews)
			assert.Equal(t, tt.bestseller, stats.IsBestseller)
		})
	}
}

func TestWithStatsClearsReviews(t *testing.T) {
	p := Product{
		Name:      "Test Shoe",
		SoldCount: 10,
		Reviews: []Review{
			{Rating: 5},
			{Rating: 4},
		},
	}

	ps := WithStats(p)

	assert.Equal(t, 4.5, ps.AverageRating)
	assert.Equal(t, 2, ps.TotalReviews)
	assert.True(t, ps.IsBestseller)
	assert.Nil(t, ps.Reviews, "reviews should not be duplicated into the catalog payload")
}
