package domain

import (
	"math"
	"strconv"
)

// Stats is a read-only snapshot of corpus-wide usage counters.
// Invariant: PositiveFeedback + NegativeFeedback <= TotalFeedback.
type Stats struct {
	// TotalQuestions counts every chat question asked.
	TotalQuestions int

	// TotalFeedback counts every feedback record submitted.
	TotalFeedback int

	// PositiveFeedback counts records with a +1 rating.
	PositiveFeedback int

	// NegativeFeedback counts records with a -1 rating.
	NegativeFeedback int
}

// PositivePercent returns the share of positive feedback as a percentage
// rounded to one decimal place. It is 0 when no feedback exists.
func (s Stats) PositivePercent() float64 {
	if s.TotalFeedback == 0 {
		return 0
	}
	pct := float64(s.PositiveFeedback) / float64(s.TotalFeedback) * 100
	return math.Round(pct*10) / 10
}

// PositivePercentString formats PositivePercent with exactly one decimal,
// e.g. "75.0".
func (s Stats) PositivePercentString() string {
	return strconv.FormatFloat(s.PositivePercent(), 'f', 1, 64)
}
