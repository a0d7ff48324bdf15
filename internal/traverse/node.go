// Package traverse implements the interval-memoized best-path search over
// the positional de Bruijn graph: for every (k-mer, sub-interval) it keeps
// only the highest-scoring path reaching it, orders unexpanded paths in a
// frontier heap, and materializes concrete paths with a depth-first builder.
package traverse

import (
	"fmt"

	"github.com/mbosio85/gridss/internal/graph"
)

// Node is the best known path terminating at a (k-mer, sub-interval) cell:
// a subnode, the best predecessor reaching it, and the accumulated score.
// A Node is alive while it remains in the memoizer's index; supplanted
// nodes stay on the frontier until lazily discarded.
type Node struct {
	// Sub is the graph subnode this path terminates at
	Sub graph.Subnode

	// Prev is the best predecessor, nil for a seed
	Prev *Node

	// Score is the total path weight up to and including Sub's node
	Score int

	// PathLen is the number of path nodes from the seed
	PathLen int

	// RootStart is the first k-mer start position of the path's seed,
	// carried forward to bound subgraph width
	RootStart int

	// Terminal is the set of positions within Sub at which the path has no
	// admissible successor and may emit an assembly
	Terminal graph.Ranges

	// TerminalAnchor is the subset of Terminal at which the terminating
	// node is reference-anchored
	TerminalAnchor graph.Ranges
}

// Seed starts a path at the given subnode
func Seed(sn graph.Subnode) *Node {
	return &Node{
		Sub:       sn,
		Score:     sn.Node.Weight,
		PathLen:   1,
		RootStart: sn.Start,
	}
}

// Extend continues prev's path into the successor subnode
func Extend(prev *Node, sn graph.Subnode) *Node {
	return &Node{
		Sub:       sn,
		Prev:      prev,
		Score:     prev.Score + sn.Node.Weight,
		PathLen:   prev.PathLen + 1,
		RootStart: prev.RootStart,
	}
}

// slice narrows the node to [start,end], preserving predecessor and score.
// Used by the memoizer to carve the surviving regions after an overlap is
// resolved.
func (n *Node) slice(start, end int) *Node {
	if start < n.Sub.Start || end > n.Sub.End || start > end {
		panic(fmt.Sprintf("slice [%d,%d] outside %s", start, end, n.Sub))
	}
	return &Node{
		Sub:            graph.Subnode{Node: n.Sub.Node, Start: start, End: end},
		Prev:           n.Prev,
		Score:          n.Score,
		PathLen:        n.PathLen,
		RootStart:      n.RootStart,
		Terminal:       n.Terminal.Intersect(start, end),
		TerminalAnchor: n.TerminalAnchor.Intersect(start, end),
	}
}

// Priority is the frontier ordering key: the earliest position at which
// work downstream of this node becomes unblocked
func (n *Node) Priority() int {
	return n.Sub.End + n.Sub.Node.Length
}

func (n *Node) String() string {
	return fmt.Sprintf("%s score=%d len=%d", n.Sub, n.Score, n.PathLen)
}
