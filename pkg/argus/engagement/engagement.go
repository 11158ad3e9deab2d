// Package engagement computes the weighted popularity score for a post
// from its raw interaction counts.
package engagement

// Fixed scoring weights. Reposts and quotes indicate active
// amplification and are weighted above passive likes.
const (
	LikeWeight   = 1.0
	RepostWeight = 2.0
	ReplyWeight  = 1.5
	QuoteWeight  = 3.0
)

// Counts holds the four raw interaction counts for one post.
type Counts struct {
	Likes   int64
	Reposts int64
	Replies int64
	Quotes  int64
}

// Score computes the weighted engagement score:
//
//	score = likes·1 + reposts·2 + replies·1.5 + quotes·3
func Score(c Counts) float64 {
	return float64(c.Likes)*LikeWeight +
		float64(c.Reposts)*RepostWeight +
		float64(c.Replies)*ReplyWeight +
		float64(c.Quotes)*QuoteWeight
}
