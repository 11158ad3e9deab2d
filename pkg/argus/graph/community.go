package graph

import (
	"fmt"
	"math/rand"
)

// maxPasses bounds the local-move phase; real mention graphs converge
// in a handful of passes.
const maxPasses = 20

// DetectCommunities assigns every node a small non-negative community
// index by greedy modularity maximization (Louvain-style local moves)
// over the undirected projection of the graph. The seed drives the
// node visiting order and is part of the contract: the same graph and
// seed always produce the same assignment.
//
// A graph with no edges cannot be partitioned by modularity; the error
// is returned for the caller to log, leaving nodes unassigned.
func DetectCommunities(g *Graph, seed int64) error {
	if g.Empty() {
		return fmt.Errorf("community detection: graph is empty")
	}
	if g.EdgeCount() == 0 {
		return fmt.Errorf("community detection: graph has no edges")
	}

	adj := g.undirected()
	ids := make([]string, len(g.order))
	copy(ids, g.order)

	// Weighted degree per node; self-loops count twice by convention.
	k := make(map[string]float64, len(ids))
	var twoM float64
	for _, id := range ids {
		var deg float64
		for other, w := range adj[id] {
			if other == id {
				deg += 2 * w
			} else {
				deg += w
			}
		}
		k[id] = deg
		twoM += deg
	}

	// Each node starts in its own community.
	comm := make(map[string]int, len(ids))
	sigmaTot := make(map[int]float64, len(ids))
	for i, id := range ids {
		comm[id] = i
		sigmaTot[i] = k[id]
	}

	rng := rand.New(rand.NewSource(seed))

	for pass := 0; pass < maxPasses; pass++ {
		order := make([]string, len(ids))
		copy(order, ids)
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		moved := false
		for _, id := range order {
			cur := comm[id]
			sigmaTot[cur] -= k[id]

			// Weight from id into each neighboring community,
			// self-loops excluded.
			kIn := make(map[int]float64)
			for other, w := range adj[id] {
				if other == id {
					continue
				}
				kIn[comm[other]] += w
			}

			// Staying put is the baseline.
			best := cur
			bestGain := kIn[cur] - sigmaTot[cur]*k[id]/twoM
			for c, w := range kIn {
				if c == cur {
					continue
				}
				gain := w - sigmaTot[c]*k[id]/twoM
				if gain > bestGain || (gain == bestGain && c < best) {
					best = c
					bestGain = gain
				}
			}

			comm[id] = best
			sigmaTot[best] += k[id]
			if best != cur {
				moved = true
			}
		}
		if !moved {
			break
		}
	}

	// Renumber communities densely by first appearance in node
	// insertion order.
	next := 0
	renumber := make(map[int]int)
	for _, id := range g.order {
		c := comm[id]
		if _, ok := renumber[c]; !ok {
			renumber[c] = next
			next++
		}
		g.nodes[id].Community = renumber[c]
	}

	return nil
}
