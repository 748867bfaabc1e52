package domain

// Rating is a relevance signal for an answered question.
type Rating int

const (
	// RatingPositive marks an answer as helpful.
	RatingPositive Rating = 1

	// RatingNegative marks an answer as not helpful.
	RatingNegative Rating = -1
)

// IsValid reports whether the rating is one of the two accepted values.
func (r Rating) IsValid() bool {
	return r == RatingPositive || r == RatingNegative
}

// FeedbackRecord ties a relevance signal to the exact question/answer
// pair that produced it. The pairing is by value copy, not by identifier:
// the record is only meaningful for the turn it was taken from.
type FeedbackRecord struct {
	// Question is the question text of the answered turn.
	Question string

	// Answer is the answer text of the answered turn.
	Answer string

	// Rating is +1 or -1.
	Rating Rating

	// Comment is optional free-text context for the rating.
	Comment string
}
