package graph

import (
	"fmt"
	"sort"
)

// Provider answers successor and predecessor queries for subnodes. The
// returned subnodes cover exactly the sub-interval of the neighbour
// reachable from the queried subnode. Implementations must keep results
// stable across calls: traversal restarts re-query the same subnode and
// expect the same order back.
type Provider interface {
	Successors(sn Subnode) ([]Subnode, error)
	Predecessors(sn Subnode) ([]Subnode, error)
}

// Adjacency is an in-memory Provider over explicit edge lists.
//
// An edge u -> v means v's first k-mer follows u's path: a placement of u at
// position p puts v at position p + u.Length. The reachable sub-interval of
// v from u[s,e] is therefore [s+u.Length, e+u.Length] clipped to v's own
// interval. Because Length >= 1, successor positions are strictly greater
// than the positions that reach them and the graph is acyclic in position
// space.
type Adjacency struct {
	nodes []*Node
	out   map[*Node][]*Node
	in    map[*Node][]*Node
}

// NewAdjacency indexes the given nodes, which must be in non-decreasing
// start-position order
func NewAdjacency(nodes []*Node) (*Adjacency, error) {
	if err := SanityCheck(nodes); err != nil {
		return nil, err
	}
	a := &Adjacency{
		nodes: nodes,
		out:   make(map[*Node][]*Node),
		in:    make(map[*Node][]*Node),
	}
	return a, nil
}

// Nodes returns the indexed nodes in start-position order
func (a *Adjacency) Nodes() []*Node {
	return a.nodes
}

// Connect adds the edge from -> to, validating that the edge can be
// realized somewhere within both intervals
func (a *Adjacency) Connect(from, to *Node) error {
	if from == to {
		return &FaultError{Kmer: from.Kmer, Start: from.Start, End: from.End, Reason: "self edge"}
	}
	shiftStart := from.Start + from.Length
	shiftEnd := from.End + from.Length
	if !overlapsClosed(shiftStart, shiftEnd, to.Start, to.End) {
		return &FaultError{
			Kmer:   to.Kmer,
			Start:  to.Start,
			End:    to.End,
			Reason: fmt.Sprintf("unreachable from kmer %d [%d,%d]", from.Kmer, from.Start, from.End),
		}
	}
	a.out[from] = append(a.out[from], to)
	a.in[to] = append(a.in[to], from)
	return nil
}

// Successors returns the subnodes reachable from sn by a single edge
func (a *Adjacency) Successors(sn Subnode) ([]Subnode, error) {
	return a.neighbours(sn, true)
}

// Predecessors returns the subnodes from which sn is reachable by a
// single edge
func (a *Adjacency) Predecessors(sn Subnode) ([]Subnode, error) {
	return a.neighbours(sn, false)
}

func (a *Adjacency) neighbours(sn Subnode, forward bool) ([]Subnode, error) {
	if sn.Start > sn.End || sn.Start < sn.Node.Start || sn.End > sn.Node.End {
		return nil, &FaultError{Kmer: sn.Node.Kmer, Start: sn.Start, End: sn.End, Reason: "sub-interval outside node interval"}
	}
	var adj []*Node
	if forward {
		adj = a.out[sn.Node]
	} else {
		adj = a.in[sn.Node]
	}
	var out []Subnode
	for _, n := range adj {
		var s, e int
		if forward {
			// shift down the edge by this node's k-mer span
			s = sn.Start + sn.Node.Length
			e = sn.End + sn.Node.Length
		} else {
			s = sn.Start - n.Length
			e = sn.End - n.Length
		}
		if s < n.Start {
			s = n.Start
		}
		if e > n.End {
			e = n.End
		}
		if s > e {
			continue
		}
		out = append(out, Subnode{Node: n, Start: s, End: e})
	}
	// stable order for deterministic traversal
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Node.Kmer < out[j].Node.Kmer
	})
	return out, nil
}
