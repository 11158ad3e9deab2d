package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/argus/pkg/argus/post"
	"github.com/cognicore/argus/pkg/argus/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "argus.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }

func TestRawPostsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	posts := []post.Post{
		{
			ID: "100", AuthorID: "a", Text: "hello", CreatedAt: created,
			LikeCount: 3, RepostCount: 1,
			AuthorCreatedAt: strPtr("2024-01-01T00:00:00Z"),
			AuthorFollowers: i64Ptr(42),
			AuthorLocation:  "Lahore",
		},
		{ID: "101", AuthorID: "b", Text: "no metadata", CreatedAt: created.Add(time.Minute)},
	}

	if err := s.UpsertRawPosts(ctx, posts); err != nil {
		t.Fatalf("UpsertRawPosts failed: %v", err)
	}

	got, err := s.GetRawPosts(ctx)
	if err != nil {
		t.Fatalf("GetRawPosts failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d posts, want 2", len(got))
	}

	p := got[0]
	if p.ID != "100" || p.LikeCount != 3 || p.AuthorLocation != "Lahore" {
		t.Errorf("post mismatch: %+v", p)
	}
	if p.AuthorFollowers == nil || *p.AuthorFollowers != 42 {
		t.Errorf("AuthorFollowers = %v, want 42", p.AuthorFollowers)
	}
	if !p.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", p.CreatedAt, created)
	}

	// Optional fields absent stay absent
	if got[1].AuthorCreatedAt != nil || got[1].AuthorFollowers != nil {
		t.Error("absent author metadata should round-trip as nil")
	}
}

func TestUpsertRawPostsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := post.Post{ID: "1", AuthorID: "a", Text: "v1", CreatedAt: time.Now().UTC()}
	s.UpsertRawPosts(ctx, []post.Post{p})
	p.Text = "v2"
	s.UpsertRawPosts(ctx, []post.Post{p})

	got, _ := s.GetRawPosts(ctx)
	if len(got) != 1 {
		t.Fatalf("got %d posts, want 1", len(got))
	}
	if got[0].Text != "v2" {
		t.Errorf("Text = %q, want v2", got[0].Text)
	}
}

func TestAnalyzedPostsPreserveOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	lat := 24.86
	posts := []post.Post{
		{ID: "high", EngagementScore: 99, SentimentLabel: "Hostile", Latitude: &lat},
		{ID: "low", EngagementScore: 1, SentimentLabel: "Neutral"},
	}

	if err := s.PutAnalyzedPosts(ctx, "run-1", posts); err != nil {
		t.Fatalf("PutAnalyzedPosts failed: %v", err)
	}

	got, err := s.GetAnalyzedPosts(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetAnalyzedPosts failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "high" || got[1].ID != "low" {
		t.Fatalf("order lost: %+v", got)
	}
	if got[0].Latitude == nil || *got[0].Latitude != 24.86 {
		t.Errorf("derived fields should round-trip, Latitude = %v", got[0].Latitude)
	}
}

func TestRunsLatest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, found, err := s.LatestRun(ctx); err != nil || found {
		t.Fatalf("fresh store: found=%v err=%v", found, err)
	}

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s.PutRun(ctx, store.Run{ID: "old", StartedAt: base, FinishedAt: base.Add(time.Second), PostCount: 10})
	s.PutRun(ctx, store.Run{ID: "new", StartedAt: base.Add(time.Hour), FinishedAt: base.Add(time.Hour + time.Second), PostCount: 20, BotStageRan: true})

	r, found, err := s.LatestRun(ctx)
	if err != nil || !found {
		t.Fatalf("LatestRun: found=%v err=%v", found, err)
	}
	if r.ID != "new" || r.PostCount != 20 || !r.BotStageRan {
		t.Errorf("latest run = %+v", r)
	}
}
