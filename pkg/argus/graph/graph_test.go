package graph

import (
	"testing"

	"github.com/cognicore/argus/pkg/argus/post"
)

func TestBuildBasic(t *testing.T) {
	posts := []post.Post{
		{ID: "1", AuthorID: "a", Mentions: []string{"b", "c"}},
		{ID: "2", AuthorID: "b", Mentions: []string{"a"}},
		{ID: "3", AuthorID: "x", Mentions: nil}, // no mentions, no edges
	}

	g := Build(posts)

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", g.EdgeCount())
	}
	if !g.Node("a").Author {
		t.Error("node a should be marked as an author")
	}
	if g.Node("c").Author {
		t.Error("node c was only mentioned, not an author")
	}
	// b is both mentioned and an author
	if !g.Node("b").Author {
		t.Error("node b authored a post and should be marked as an author")
	}
}

func TestBuildNoMentionsShortCircuit(t *testing.T) {
	posts := []post.Post{
		{ID: "1", AuthorID: "a"},
		{ID: "2", AuthorID: "b"},
	}

	g := Build(posts)
	if !g.Empty() {
		t.Errorf("graph should be empty, has %d nodes", g.NodeCount())
	}
}

func TestBuildRepeatedMentionsAccumulateWeight(t *testing.T) {
	posts := []post.Post{
		{ID: "1", AuthorID: "a", Mentions: []string{"b", "b"}},
		{ID: "2", AuthorID: "a", Mentions: []string{"b"}},
	}

	g := Build(posts)
	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount = %d, want 1 coalesced edge", g.EdgeCount())
	}
	if w := g.Edges()[0].Weight; w != 3 {
		t.Errorf("edge weight = %d, want 3 occurrences", w)
	}
}

func TestBuildSelfLoop(t *testing.T) {
	posts := []post.Post{{ID: "1", AuthorID: "a", Mentions: []string{"a"}}}

	g := Build(posts)
	if g.NodeCount() != 1 || g.EdgeCount() != 1 {
		t.Fatalf("nodes=%d edges=%d, want 1 and 1", g.NodeCount(), g.EdgeCount())
	}
	e := g.Edges()[0]
	if e.From != "a" || e.To != "a" {
		t.Errorf("self-loop edge = %+v", e)
	}
}

func TestCommunityTriangle(t *testing.T) {
	posts := []post.Post{
		{ID: "1", AuthorID: "a", Mentions: []string{"b"}},
		{ID: "2", AuthorID: "b", Mentions: []string{"c"}},
		{ID: "3", AuthorID: "c", Mentions: []string{"a"}},
	}

	g := Build(posts)
	if g.NodeCount() != 3 {
		t.Fatalf("NodeCount = %d, want 3", g.NodeCount())
	}
	if err := DetectCommunities(g, 42); err != nil {
		t.Fatalf("DetectCommunities failed: %v", err)
	}

	// A fully connected triangle forms a single community
	ca, cb, cc := g.Node("a").Community, g.Node("b").Community, g.Node("c").Community
	if ca != cb || cb != cc {
		t.Errorf("triangle split into communities %d/%d/%d", ca, cb, cc)
	}
	if ca != 0 {
		t.Errorf("single community should be renumbered to 0, got %d", ca)
	}
}

func TestCommunityTwoClusters(t *testing.T) {
	// Two triangles joined by nothing
	posts := []post.Post{
		{ID: "1", AuthorID: "a", Mentions: []string{"b"}},
		{ID: "2", AuthorID: "b", Mentions: []string{"c"}},
		{ID: "3", AuthorID: "c", Mentions: []string{"a"}},
		{ID: "4", AuthorID: "x", Mentions: []string{"y"}},
		{ID: "5", AuthorID: "y", Mentions: []string{"z"}},
		{ID: "6", AuthorID: "z", Mentions: []string{"x"}},
	}

	g := Build(posts)
	if err := DetectCommunities(g, 42); err != nil {
		t.Fatalf("DetectCommunities failed: %v", err)
	}

	if g.Node("a").Community == g.Node("x").Community {
		t.Error("disconnected triangles should land in different communities")
	}
	if g.Node("x").Community != g.Node("y").Community || g.Node("y").Community != g.Node("z").Community {
		t.Error("second triangle should share one community")
	}
}

func TestCommunityDeterministicForSeed(t *testing.T) {
	build := func() *Graph {
		posts := []post.Post{
			{ID: "1", AuthorID: "a", Mentions: []string{"b", "c"}},
			{ID: "2", AuthorID: "b", Mentions: []string{"c", "d"}},
			{ID: "3", AuthorID: "d", Mentions: []string{"e"}},
			{ID: "4", AuthorID: "e", Mentions: []string{"d", "f"}},
			{ID: "5", AuthorID: "f", Mentions: []string{"e"}},
		}
		return Build(posts)
	}

	g1, g2 := build(), build()
	if err := DetectCommunities(g1, 7); err != nil {
		t.Fatalf("run 1 failed: %v", err)
	}
	if err := DetectCommunities(g2, 7); err != nil {
		t.Fatalf("run 2 failed: %v", err)
	}

	for _, n := range g1.Nodes() {
		if other := g2.Node(n.ID).Community; other != n.Community {
			t.Errorf("node %s: community %d vs %d across identical seeded runs", n.ID, n.Community, other)
		}
	}
}

func TestCommunityEmptyGraph(t *testing.T) {
	if err := DetectCommunities(New(), 42); err == nil {
		t.Error("empty graph should return an error for the caller to log")
	}
}
