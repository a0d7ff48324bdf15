package traverse

import (
	"container/heap"
	"fmt"
	"sort"
)

// Memo tracks the best-scoring path for every (k-mer, sub-interval) cell
// seen so far. Entries for a single k-mer are kept disjoint: memoizing a
// candidate that overlaps existing entries slices the loser into its
// surviving sub-intervals and replaces the rest atomically.
//
// A secondary min-heap orders unexpanded entries by the earliest position
// at which downstream work becomes unblocked. The heap uses lazy
// invalidation: supplanted entries are discarded when they reach the head
// rather than being removed eagerly.
type Memo struct {
	byKmer map[uint64][]*Node
	front  frontier
	count  int

	compactions int
}

// minimum frontier size before compaction is considered
const compactFloor = 64

// NewMemo returns an empty memoizer
func NewMemo() *Memo {
	return &Memo{byKmer: make(map[uint64][]*Node)}
}

// Len is the number of alive memoized entries
func (m *Memo) Len() int {
	return m.count
}

// FrontierLen is the number of heap entries, alive or not
func (m *Memo) FrontierLen() int {
	return len(m.front)
}

// Compactions is the number of frontier compactions performed
func (m *Memo) Compactions() int {
	return m.compactions
}

// Memoize offers a candidate path. Among stored entries with the same
// k-mer whose sub-intervals overlap the candidate's, only the strictly
// higher score survives at each position; ties keep the existing entry.
// All index mutations are staged and applied together, so no partial
// state is observable between Memoize and the next frontier poll.
func (m *Memo) Memoize(cand *Node) {
	kmer := cand.Sub.Node.Kmer
	entries := m.byKmer[kmer]

	var toAdd []*Node
	var toRemove map[*Node]bool

	// entries are disjoint and sorted by start, so also sorted by end:
	// the first entry that could overlap is the first ending at or after
	// the candidate's start
	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].Sub.End >= cand.Sub.Start
	})
	for ; i < len(entries) && cand != nil && entries[i].Sub.Start <= cand.Sub.End; i++ {
		existing := entries[i]
		if cand.Score > existing.Score {
			// candidate wins this overlap: drop the existing entry and
			// keep whatever of it lies outside the candidate
			if toRemove == nil {
				toRemove = make(map[*Node]bool, 4)
			}
			toRemove[existing] = true
			if existing.Sub.Start < cand.Sub.Start {
				toAdd = append(toAdd, existing.slice(existing.Sub.Start, cand.Sub.Start-1))
			}
			if existing.Sub.End > cand.Sub.End {
				toAdd = append(toAdd, existing.slice(cand.Sub.End+1, existing.Sub.End))
			}
		} else {
			// existing wins (ties are stable): keep the candidate's
			// prefix before the existing entry, then resume past it
			if cand.Sub.Start < existing.Sub.Start {
				toAdd = append(toAdd, cand.slice(cand.Sub.Start, existing.Sub.Start-1))
			}
			next := existing.Sub.End + 1
			if next > cand.Sub.End {
				cand = nil
			} else {
				cand = cand.slice(next, cand.Sub.End)
			}
		}
	}
	if cand != nil {
		toAdd = append(toAdd, cand)
	}

	if len(toRemove) == 0 && len(toAdd) == 0 {
		return
	}

	// apply staged removals and additions in one step
	next := entries[:0:0]
	for _, e := range entries {
		if !toRemove[e] {
			next = append(next, e)
		}
	}
	next = append(next, toAdd...)
	sort.Slice(next, func(i, j int) bool { return next[i].Sub.Start < next[j].Sub.Start })
	m.byKmer[kmer] = next
	m.count += len(toAdd) - len(toRemove)

	for _, tn := range toAdd {
		m.front.push(tn)
	}
	m.maybeCompact()
}

// Alive reports whether tn is still the memoized best path over its
// sub-interval
func (m *Memo) Alive(tn *Node) bool {
	entries := m.byKmer[tn.Sub.Node.Kmer]
	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].Sub.Start >= tn.Sub.Start
	})
	return i < len(entries) && entries[i] == tn
}

// PollFrontier removes and returns the next node for expansion, or nil if
// the frontier is drained. The returned node is always alive.
func (m *Memo) PollFrontier() *Node {
	m.flushInvalidHead()
	return m.front.pop()
}

// PeekFrontier returns the next node for expansion without removing it
func (m *Memo) PeekFrontier() *Node {
	m.flushInvalidHead()
	return m.front.peek()
}

func (m *Memo) flushInvalidHead() {
	for len(m.front) > 0 && !m.Alive(m.front.peek()) {
		m.front.pop()
	}
}

// maybeCompact rebuilds the heap from alive entries once lazy invalidation
// has let it grow past twice the memoized size
func (m *Memo) maybeCompact() {
	if len(m.front) <= compactFloor || len(m.front) <= 2*m.count {
		return
	}
	alive := m.front[:0:0]
	for _, tn := range m.front {
		if m.Alive(tn) {
			alive = append(alive, tn)
		}
	}
	m.front = alive
	heap.Init(&m.front)
	m.compactions++
}

// SanityCheck verifies the per-k-mer disjointness invariant
func (m *Memo) SanityCheck() error {
	for kmer, entries := range m.byKmer {
		var last *Node
		for _, n := range entries {
			if last != nil && last.Sub.End >= n.Sub.Start {
				return fmt.Errorf("kmer %d: %s and %s: %w", kmer, last.Sub, n.Sub, ErrOverlap)
			}
			last = n
		}
	}
	return nil
}

func (m *Memo) String() string {
	return fmt.Sprintf("%d nodes memoized, %d in frontier", m.count, len(m.front))
}
