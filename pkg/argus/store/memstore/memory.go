package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/argus/pkg/argus/post"
	"github.com/cognicore/argus/pkg/argus/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu       sync.RWMutex
	raw      map[string]post.Post
	rawOrder []string
	analyzed map[string][]post.Post
	runs     []store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		raw:      make(map[string]post.Post),
		analyzed: make(map[string][]post.Post),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertRawPosts inserts or replaces raw posts, keyed by post id.
func (s *Store) UpsertRawPosts(_ context.Context, posts []post.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range posts {
		if _, ok := s.raw[p.ID]; !ok {
			s.rawOrder = append(s.rawOrder, p.ID)
		}
		s.raw[p.ID] = p
	}
	return nil
}

// GetRawPosts returns raw posts in insertion order.
func (s *Store) GetRawPosts(context.Context) ([]post.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]post.Post, 0, len(s.rawOrder))
	for _, id := range s.rawOrder {
		out = append(out, s.raw[id])
	}
	return out, nil
}

// PutAnalyzedPosts stores one run's output.
func (s *Store) PutAnalyzedPosts(_ context.Context, runID string, posts []post.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]post.Post, len(posts))
	copy(cp, posts)
	s.analyzed[runID] = cp
	return nil
}

// GetAnalyzedPosts returns one run's output in stored order.
func (s *Store) GetAnalyzedPosts(_ context.Context, runID string) ([]post.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := s.analyzed[runID]
	out := make([]post.Post, len(posts))
	copy(out, posts)
	return out, nil
}

// PutRun records run metadata.
func (s *Store) PutRun(_ context.Context, r store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.runs {
		if s.runs[i].ID == r.ID {
			s.runs[i] = r
			return nil
		}
	}
	s.runs = append(s.runs, r)
	return nil
}

// LatestRun returns the most recently started run, if any.
func (s *Store) LatestRun(context.Context) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return store.Run{}, false, nil
	}
	latest := s.runs[0]
	for _, r := range s.runs[1:] {
		if r.StartedAt.After(latest.StartedAt) {
			latest = r
		}
	}
	return latest, true, nil
}
