package traverse

import (
	"github.com/mbosio85/gridss/internal/graph"
)

// Path is a depth-first traversal over already-memoized best predecessors:
// a deque of traversal nodes plus, parallel to it, a restartable cursor
// into each element's neighbour list. The head is the traversal end, the
// last node pushed; with a reverse path the head extends toward smaller
// positions through predecessor edges.
type Path struct {
	provider graph.Provider
	forward  bool

	// maxNodes caps the total nodes pushed over the path's lifetime,
	// 0 means unbounded
	maxNodes int

	// branching caps the children visited per element, 0 means unbounded
	branching int

	nodes    []*Node
	children [][]graph.Subnode
	cursor   []int

	visited int
}

// NewPath roots a traversal at the given node
func NewPath(root *Node, provider graph.Provider, forward bool, maxNodes, branching int) (*Path, error) {
	p := &Path{
		provider:  provider,
		forward:   forward,
		maxNodes:  maxNodes,
		branching: branching,
	}
	if err := p.Push(root); err != nil {
		return nil, err
	}
	return p, nil
}

// Head is the traversal head: the node whose children are visited next
func (p *Path) Head() *Node {
	return p.nodes[len(p.nodes)-1]
}

// Len is the number of nodes currently on the path
func (p *Path) Len() int {
	return len(p.nodes)
}

// Visited is the total number of nodes pushed over the path's lifetime
func (p *Path) Visited() int {
	return p.visited
}

// Push appends tn at the traversal head and fetches its neighbour list
func (p *Path) Push(tn *Node) error {
	if p.maxNodes > 0 && p.visited >= p.maxNodes {
		return ErrBudgetExhausted
	}
	var next []graph.Subnode
	var err error
	if p.forward {
		next, err = p.provider.Successors(tn.Sub)
	} else {
		next, err = p.provider.Predecessors(tn.Sub)
	}
	if err != nil {
		return err
	}
	p.nodes = append(p.nodes, tn)
	p.children = append(p.children, next)
	p.cursor = append(p.cursor, 0)
	p.visited++
	return nil
}

// Pop removes the traversal head. Removing the root is a programming error.
func (p *Path) Pop() {
	if len(p.nodes) == 1 {
		panic("cannot remove root node from traversal path")
	}
	p.popUnchecked()
}

func (p *Path) popUnchecked() {
	n := len(p.nodes) - 1
	p.nodes[n] = nil
	p.nodes = p.nodes[:n]
	p.children = p.children[:n]
	p.cursor = p.cursor[:n]
}

// NextChild pushes the head's next unvisited child, honouring the
// branching cap, and reports whether one existed
func (p *Path) NextChild() (bool, error) {
	i := len(p.nodes) - 1
	if p.branching > 0 && p.cursor[i] >= p.branching {
		return false, nil
	}
	if p.cursor[i] >= len(p.children[i]) {
		return false, nil
	}
	sn := p.children[i][p.cursor[i]]
	p.cursor[i]++
	if err := p.Push(Extend(p.nodes[i], sn)); err != nil {
		return false, err
	}
	return true, nil
}

// ResetChildren returns the head's children to an unvisited state so
// traversal can be retried from the original branch point
func (p *Path) ResetChildren() {
	p.cursor[len(p.nodes)-1] = 0
}

// GreedyTraverse repeatedly pushes the highest-weight admissible child of
// the head until none remains. Each round consumes the head's remaining
// children; ties keep the first encountered.
func (p *Path) GreedyTraverse(allowReference, allowNonReference bool) error {
	for {
		i := len(p.nodes) - 1
		var best *graph.Subnode
		for p.cursor[i] < len(p.children[i]) {
			sn := p.children[i][p.cursor[i]]
			p.cursor[i]++
			isRef := sn.Node.Reference
			if (isRef && allowReference) || (!isRef && allowNonReference) {
				if best == nil || sn.Node.Weight > best.Node.Weight {
					c := sn
					best = &c
				}
			}
		}
		if best == nil {
			return nil
		}
		if err := p.Push(Extend(p.nodes[i], *best)); err != nil {
			return err
		}
	}
}

// PathWeight sums the node weights along the path
func (p *Path) PathWeight() int {
	weight := 0
	for _, tn := range p.nodes {
		weight += tn.Sub.Node.Weight
	}
	return weight
}

// PathLength is the path length of the head node
func (p *Path) PathLength() int {
	return p.Head().PathLen
}

// TerminalRanges are the positions at which the head may emit an assembly
func (p *Path) TerminalRanges() graph.Ranges {
	return p.Head().Terminal
}

// TerminalLeafRanges are the terminal positions with a reference anchor
func (p *Path) TerminalLeafRanges() graph.Ranges {
	return p.Head().TerminalAnchor
}

// Nodes returns the path's graph nodes in genomic order
func (p *Path) Nodes() []*graph.Node {
	out := make([]*graph.Node, len(p.nodes))
	if p.forward {
		for i, tn := range p.nodes {
			out[i] = tn.Sub.Node
		}
	} else {
		for i, tn := range p.nodes {
			out[len(out)-1-i] = tn.Sub.Node
		}
	}
	return out
}
