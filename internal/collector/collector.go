// Package collector fetches raw posts from a recent-search API. It is
// glue at the engine boundary: it owns retry/backoff against the
// remote service and hands the engine an already-deduplicated record
// set.
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/cognicore/argus/pkg/argus/post"
)

// MaxQueryLength is the remote API's query budget. Keyword lists
// longer than this are split into multiple queries.
const MaxQueryLength = 480

// querySuffix narrows every search to original English-language posts.
const querySuffix = " lang:en -is:retweet"

// Client talks to a recent-post search endpoint.
type Client struct {
	base   string
	bearer string
	client *retryablehttp.Client
	logger *slog.Logger
}

type leveledSlog struct {
	inner *slog.Logger
}

func (l leveledSlog) Error(msg string, keysAndValues ...any) { l.inner.Warn(msg, keysAndValues...) }
func (l leveledSlog) Warn(msg string, keysAndValues ...any)  { l.inner.Warn(msg, keysAndValues...) }
func (l leveledSlog) Info(msg string, keysAndValues ...any)  { l.inner.Info(msg, keysAndValues...) }
func (l leveledSlog) Debug(msg string, keysAndValues ...any) { l.inner.Debug(msg, keysAndValues...) }

// New creates a collector client for the given API base URL and bearer
// token. Rate-limit responses are retried with exponential backoff.
func New(base, bearer string, logger *slog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 5
	rc.RetryWaitMin = 1 * time.Second
	rc.RetryWaitMax = 60 * time.Second
	rc.Logger = retryablehttp.LeveledLogger(leveledSlog{inner: logger})

	return &Client{base: base, bearer: bearer, client: rc, logger: logger}
}

// ChunkKeywords splits keywords into groups whose OR-joined query
// stays within budget. Every keyword lands in exactly one chunk.
func ChunkKeywords(keywords []string, budget int) [][]string {
	var chunks [][]string
	var current []string
	length := 0

	for _, kw := range keywords {
		// " OR " joiner plus the keyword itself
		if len(current) > 0 && length+len(kw)+4 > budget {
			chunks = append(chunks, current)
			current = nil
			length = 0
		}
		current = append(current, kw)
		length += len(kw) + 4
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}

// BuildQuery renders one chunk as a search query.
func BuildQuery(chunk []string) string {
	return "(" + strings.Join(chunk, " OR ") + ")" + querySuffix
}

// Wire types for the search response: posts under data, author
// expansions under includes.
type searchResponse struct {
	Data     []apiPost   `json:"data"`
	Includes apiIncludes `json:"includes"`
}

type apiPost struct {
	ID            string     `json:"id"`
	AuthorID      string     `json:"author_id"`
	Text          string     `json:"text"`
	CreatedAt     time.Time  `json:"created_at"`
	PublicMetrics apiMetrics `json:"public_metrics"`
}

type apiMetrics struct {
	LikeCount    int64 `json:"like_count"`
	RetweetCount int64 `json:"retweet_count"`
	ReplyCount   int64 `json:"reply_count"`
	QuoteCount   int64 `json:"quote_count"`
}

type apiIncludes struct {
	Users []apiUser `json:"users"`
}

type apiUser struct {
	ID            string `json:"id"`
	CreatedAt     string `json:"created_at"`
	Location      string `json:"location"`
	PublicMetrics struct {
		FollowersCount int64 `json:"followers_count"`
	} `json:"public_metrics"`
}

// Search runs one query and maps the response to posts, joining author
// metadata from the expansion block.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]post.Post, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("max_results", fmt.Sprintf("%d", limit))
	q.Set("tweet.fields", "created_at,public_metrics,author_id")
	q.Set("expansions", "author_id")
	q.Set("user.fields", "created_at,location,public_metrics")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet,
		c.base+"/2/tweets/search/recent?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearer)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("search: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	users := make(map[string]apiUser, len(sr.Includes.Users))
	for _, u := range sr.Includes.Users {
		users[u.ID] = u
	}

	posts := make([]post.Post, 0, len(sr.Data))
	for _, d := range sr.Data {
		p := post.Post{
			ID:          d.ID,
			AuthorID:    d.AuthorID,
			Text:        d.Text,
			CreatedAt:   d.CreatedAt,
			LikeCount:   d.PublicMetrics.LikeCount,
			RepostCount: d.PublicMetrics.RetweetCount,
			ReplyCount:  d.PublicMetrics.ReplyCount,
			QuoteCount:  d.PublicMetrics.QuoteCount,
		}
		if u, ok := users[d.AuthorID]; ok {
			if u.CreatedAt != "" {
				created := u.CreatedAt
				p.AuthorCreatedAt = &created
			}
			followers := u.PublicMetrics.FollowersCount
			p.AuthorFollowers = &followers
			p.AuthorLocation = u.Location
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// Collect chunks the keyword list, searches every chunk, and merges
// the results deduplicated by post id. A chunk that fails after
// retries is logged and skipped; the remaining chunks still run.
func (c *Client) Collect(ctx context.Context, keywords []string, limitPerChunk int) ([]post.Post, error) {
	chunks := ChunkKeywords(keywords, MaxQueryLength)
	c.logger.Info("collecting posts", "keywords", len(keywords), "chunks", len(chunks))

	var all []post.Post
	seen := make(map[string]struct{})

	for i, chunk := range chunks {
		posts, err := c.Search(ctx, BuildQuery(chunk), limitPerChunk)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			c.logger.Warn("chunk failed, skipping", "chunk", i+1, "err", err)
			continue
		}
		for _, p := range posts {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			all = append(all, p)
		}
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("no posts collected from %d chunks", len(chunks))
	}
	return all, nil
}
