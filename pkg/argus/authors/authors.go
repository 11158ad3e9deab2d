// Package authors computes per-author aggregate metrics and joins them
// back onto every post by that author. The join is two-phase: one pass
// builds the author→metrics map, a second pass applies it, so the
// output row count always equals the input row count.
package authors

import (
	"fmt"

	"github.com/cognicore/argus/pkg/argus/internalerr"
	"github.com/cognicore/argus/pkg/argus/post"
	"github.com/cognicore/argus/pkg/argus/sentiment"
)

// Metrics is the aggregate view of one author, denormalized onto each
// of their posts.
type Metrics struct {
	TweetCount      int64
	TotalEngagement float64
	HostileCount    int64
	HostilityScore  float64 // 100 · hostile / total
}

// Aggregate groups posts by author and computes per-author totals.
// Every post must already carry engagement_score and sentiment_label.
// A post without an author id is an error: it cannot be grouped.
func Aggregate(posts []post.Post) (map[string]Metrics, error) {
	agg := make(map[string]Metrics)

	for i := range posts {
		p := &posts[i]
		if p.AuthorID == "" {
			return nil, fmt.Errorf("post %s: %w", p.ID, internalerr.ErrMissingAuthor)
		}

		m := agg[p.AuthorID]
		m.TweetCount++
		m.TotalEngagement += p.EngagementScore
		if p.SentimentLabel == string(sentiment.Hostile) {
			m.HostileCount++
		}
		agg[p.AuthorID] = m
	}

	for id, m := range agg {
		if m.TweetCount > 0 {
			m.HostilityScore = 100 * float64(m.HostileCount) / float64(m.TweetCount)
		}
		agg[id] = m
	}

	return agg, nil
}

// Apply writes each author's metrics onto all of that author's posts,
// in place. Posts whose author is absent from the map are left
// untouched; Aggregate over the same slice never produces that case.
func Apply(posts []post.Post, metrics map[string]Metrics) {
	for i := range posts {
		m, ok := metrics[posts[i].AuthorID]
		if !ok {
			continue
		}
		posts[i].TweetCount = m.TweetCount
		posts[i].TotalEngagement = m.TotalEngagement
		posts[i].HostileCount = m.HostileCount
		posts[i].HostilityScore = m.HostilityScore
	}
}
