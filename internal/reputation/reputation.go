// Package reputation computes trust scores, rating points, and achievement
// badges. Everything here is a pure function over user stats so the feedback
// pipeline stays deterministic and testable.
package reputation

import "math"

const (
	// MinTrustScore and MaxTrustScore bound the 0-100 trust metric.
	MinTrustScore = 0
	MaxTrustScore = 100

	// currentWeight and ratingWeight blend the prior score against a new
	// rating. The 70/30 split dampens the effect of any single rating so
	// one bad or good actor cannot swing the score, while a multi-rating
	// trend still moves it.
	currentWeight = 0.7
	ratingWeight  = 0.3

	// ratingScale converts a 1-5 star rating onto the 0-100 score scale.
	ratingScale = 20
)

// NextTrustScore blends a new 1-5 rating into the current 0-100 trust score
// and returns the recomputed value. Scores are recomputed on every feedback
// submission, never incremented directly. Valid inputs keep the result in
// range by construction; the clamp guards against malformed stored data.
func NextTrustScore(current, rating int) int {
	next := int(math.Round(float64(current)*currentWeight + float64(rating)*ratingScale*ratingWeight))
	if next < MinTrustScore {
		return MinTrustScore
	}
	if next > MaxTrustScore {
		return MaxTrustScore
	}
	return next
}

// pointsByRating is a deliberately front-loaded reward curve: the top rating
// is disproportionately rewarded rather than scaling linearly.
var pointsByRating = map[int]int{
	5: 10,
	4: 8,
	3: 5,
	2: 2,
	1: 1,
}

// PointsForRating returns the points awarded for a 1-5 rating, or 0 for any
// out-of-range input.
func PointsForRating(rating int) int {
	return pointsByRating[rating]
}
