package post

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Post is one analyzed social-media message. Raw fields come from the
// collector; derived fields are filled in stage by stage as the pipeline
// runs. Optional author fields are pointers so "absent" survives a
// JSON round trip.
type Post struct {
	ID        string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`

	LikeCount   int64 `json:"like_count"`
	RepostCount int64 `json:"repost_count"`
	ReplyCount  int64 `json:"reply_count"`
	QuoteCount  int64 `json:"quote_count"`

	// Optional author metadata
	AuthorCreatedAt *string `json:"author_created_at,omitempty"`
	AuthorFollowers *int64  `json:"author_followers_count,omitempty"`
	AuthorLocation  string  `json:"author_location,omitempty"`

	// Derived: core enrichment
	EngagementScore   float64  `json:"engagement_score"`
	SentimentPolarity float64  `json:"sentiment_polarity"`
	SentimentLabel    string   `json:"sentiment_label"`
	Tags              []string `json:"hashtags"`
	Mentions          []string `json:"mentions"`
	Links             []string `json:"urls"`

	// Derived: author aggregates (identical across an author's posts)
	TweetCount      int64   `json:"tweet_count"`
	TotalEngagement float64 `json:"total_engagement"`
	HostileCount    int64   `json:"hostile_tweet_count"`
	HostilityScore  float64 `json:"author_hostility_score"`

	// Derived: optional stages
	BotScore  *float64 `json:"bot_score,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// HasAuthorMeta reports whether the optional bot-heuristic inputs are
// present on this post.
func (p *Post) HasAuthorMeta() bool {
	return p.AuthorCreatedAt != nil && p.AuthorFollowers != nil
}

// LoadJSONL loads posts from a JSONL file, skipping malformed lines.
func LoadJSONL(path string) ([]Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var posts []Post
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var p Post
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		posts = append(posts, p)
	}

	if len(posts) == 0 {
		return nil, fmt.Errorf("no valid posts found in %s", path)
	}

	return posts, nil
}

// SaveJSONL writes posts to a JSONL file, one record per line.
func SaveJSONL(path string, posts []Post) error {
	var b strings.Builder
	for _, p := range posts {
		line, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal post %s: %w", p.ID, err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write file %s: %w", path, err)
	}
	return nil
}
