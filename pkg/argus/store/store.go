package store

import (
	"context"
	"time"

	"github.com/cognicore/argus/pkg/argus/post"
)

// Store persists the raw input record set, the enriched output record
// set, and run metadata.
type Store interface {
	Close() error

	// Raw posts (collector output)
	UpsertRawPosts(ctx context.Context, posts []post.Post) error
	GetRawPosts(ctx context.Context) ([]post.Post, error)

	// Analyzed posts, keyed by run; order is the engine's output order
	PutAnalyzedPosts(ctx context.Context, runID string, posts []post.Post) error
	GetAnalyzedPosts(ctx context.Context, runID string) ([]post.Post, error)

	// Runs
	PutRun(ctx context.Context, r Run) error
	LatestRun(ctx context.Context) (Run, bool, error)
}

// Run records one pipeline invocation.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	PostCount    int
	HostileCount int
	BotStageRan  bool
	GeoStageRan  bool
}
