package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats_PositivePercent(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  float64
	}{
		{
			name:  "no feedback yields zero, not a division by zero",
			stats: Stats{TotalQuestions: 12},
			want:  0,
		},
		{
			name:  "three of four positive",
			stats: Stats{TotalFeedback: 4, PositiveFeedback: 3, NegativeFeedback: 1},
			want:  75.0,
		},
		{
			name:  "all positive",
			stats: Stats{TotalFeedback: 5, PositiveFeedback: 5},
			want:  100.0,
		},
		{
			name:  "rounds to one decimal",
			stats: Stats{TotalFeedback: 3, PositiveFeedback: 1, NegativeFeedback: 2},
			want:  33.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.stats.PositivePercent(), 0.0001)
		})
	}
}

func TestStats_PositivePercentString(t *testing.T) {
	s := Stats{TotalFeedback: 4, PositiveFeedback: 3, NegativeFeedback: 1}
	assert.Equal(t, "75.0", s.PositivePercentString())

	assert.Equal(t, "0.0", Stats{}.PositivePercentString())
}

func TestRating_IsValid(t *testing.T) {
	assert.True(t, RatingPositive.IsValid())
	assert.True(t, RatingNegative.IsValid())
	assert.False(t, Rating(0).IsValid())
	assert.False(t, Rating(2).IsValid())
}
