// Package graph builds the directed author→mention graph from enriched
// posts, detects communities over its undirected projection, and
// serializes the result for external analysis tools and an embedded
// viewer.
package graph

import (
	"sort"

	"github.com/cognicore/argus/pkg/argus/post"
)

// Unassigned is the community value of a node before (or without)
// community detection.
const Unassigned = -1

// Node is one identifier in the mention graph: an author, a mentioned
// handle, or both.
type Node struct {
	ID        string
	Author    bool // appeared as a post author
	Community int
}

// Edge is a directed author→mention edge. Weight counts mention
// occurrences: repeated mentions accumulate weight rather than
// producing parallel edges.
type Edge struct {
	From   string
	To     string
	Weight int
}

// Graph is a directed weighted mention graph. Nodes keep insertion
// order so output is deterministic for a given input.
type Graph struct {
	nodes map[string]*Node
	order []string
	edges map[[2]string]int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		edges: make(map[[2]string]int),
	}
}

// Build constructs the mention graph from posts: one weighted edge per
// (author, mentioned handle) pair, self-loops allowed. Posts with no
// mentions contribute nothing; if no post has any mention the result
// is an empty graph.
func Build(posts []post.Post) *Graph {
	g := New()
	for i := range posts {
		p := &posts[i]
		if len(p.Mentions) == 0 {
			continue
		}
		g.addNode(p.AuthorID, true)
		for _, m := range p.Mentions {
			g.addNode(m, false)
			g.edges[[2]string{p.AuthorID, m}]++
		}
	}
	return g
}

func (g *Graph) addNode(id string, author bool) {
	if n, ok := g.nodes[id]; ok {
		if author {
			n.Author = true
		}
		return
	}
	g.nodes[id] = &Node{ID: id, Author: author, Community: Unassigned}
	g.order = append(g.order, id)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct directed edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Empty reports whether the graph has no nodes.
func (g *Graph) Empty() bool { return len(g.nodes) == 0 }

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node { return g.nodes[id] }

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns all edges sorted by (from, to).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for k, w := range g.edges {
		out = append(out, Edge{From: k[0], To: k[1], Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// undirected returns the weighted undirected projection as adjacency
// maps keyed by node id. Opposing directed edges sum their weights;
// self-loops are preserved.
func (g *Graph) undirected() map[string]map[string]float64 {
	adj := make(map[string]map[string]float64, len(g.nodes))
	for id := range g.nodes {
		adj[id] = make(map[string]float64)
	}
	for k, w := range g.edges {
		from, to := k[0], k[1]
		adj[from][to] += float64(w)
		if from != to {
			adj[to][from] += float64(w)
		}
	}
	return adj
}
