package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ratingsWithScores(scores ...int) []*Rating {
	storeID := uuid.New()
	ratings := make([]*Rating, 0, len(scores))
	for _, score := range scores {
		ratings = append(ratings, &Rating{
			ID:        uuid.New(),
			AccountID: uuid.New(),
			StoreID:   storeID,
			Score:     score,
		})
	}

	return ratings
}

func TestSummarizeRatings_Empty(t *testing.T) {
	summary := SummarizeRatings(nil)

	assert.Equal(t, int64(0), summary.Count)
	assert.Equal(t, 0.0, summary.Average)
}

func TestSummarizeRatings_SingleRating(t *testing.T) {
	summary := SummarizeRatings(ratingsWithScores(4))

	assert.Equal(t, int64(1), summary.Count)
	assert.Equal(t, 4.0, summary.Average)
}

func TestSummarizeRatings_MeanRoundedToOneDecimal(t *testing.T) {
	tests := []struct {
		name    string
		scores  []int
		average float64
		count   int64
	}{
		{name: "three distinct raters", scores: []int{4, 3, 5}, average: 4.0, count: 3},
		{name: "fourth rater shifts mean", scores: []int{4, 3, 5, 2}, average: 3.5, count: 4},
		{name: "repeating third rounds down", scores: []int{4, 4, 5}, average: 4.3, count: 3},
		{name: "repeating two thirds rounds up", scores: []int{4, 5, 5}, average: 4.7, count: 3},
		{name: "half rounds away from zero", scores: []int{1, 2}, average: 1.5, count: 2},
		{name: "all maximum", scores: []int{5, 5, 5, 5}, average: 5.0, count: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := SummarizeRatings(ratingsWithScores(tt.scores...))

			assert.Equal(t, tt.count, summary.Count)
			assert.InDelta(t, tt.average, summary.Average, 1e-9)
		})
	}
}

func TestSummarizeRatings_AverageWithinScoreBounds(t *testing.T) {
	for _, scores := range [][]int{{1}, {1, 5}, {2, 3, 4}, {5, 5, 1, 1, 3}} {
		summary := SummarizeRatings(ratingsWithScores(scores...))

		assert.GreaterOrEqual(t, summary.Average, float64(MinScore))
		assert.LessOrEqual(t, summary.Average, float64(MaxScore))
	}
}

func TestSummarizeRatings_Idempotent(t *testing.T) {
	ratings := ratingsWithScores(2, 4, 4, 5)

	first := SummarizeRatings(ratings)
	second := SummarizeRatings(ratings)

	assert.Equal(t, first, second)
}

func TestValidScore(t *testing.T) {
	assert.False(t, ValidScore(0))
	assert.True(t, ValidScore(1))
	assert.True(t, ValidScore(5))
	assert.False(t, ValidScore(6))
	assert.False(t, ValidScore(-3))
}
