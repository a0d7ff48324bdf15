// Package assemble drives contig assembly over a positional de Bruijn
// graph: it seeds and polls the memoized traversal, reconstructs best
// paths, aggregates their read support, and applies the acceptance
// filters to the resulting candidates.
package assemble

import (
	"github.com/mbosio85/gridss/internal/graph"
	"github.com/mbosio85/gridss/internal/traverse"
)

// Candidate is one assembled contig: the path's graph nodes in genomic
// order plus the observables the acceptance filter and downstream callers
// need
type Candidate struct {
	// Nodes is the assembled path in genomic order
	Nodes []*graph.Node

	// Score is the memoized best-path score at the terminal node
	Score int

	// Weight is the summed node weight over the whole built path,
	// including any greedy extension
	Weight int

	// PathLength is the number of path nodes
	PathLength int

	// Terminal is the position set at which this path may terminate
	Terminal graph.Ranges

	// TerminalAnchor is the subset of Terminal with a reference anchor
	TerminalAnchor graph.Ranges

	// BreakendLength is the assembled breakend sequence length in bases
	BreakendLength int

	// AnchorLength is the reference-anchored sequence length in bases
	AnchorLength int

	// ReadPairs, SoftClips and Remote count distinct unconsumed
	// supporting reads by evidence category
	ReadPairs int
	SoftClips int
	Remote    int

	// MaxReadPairLength is the longest read among read-pair support
	MaxReadPairLength int

	// Fingerprints identifies the distinct supporting reads
	Fingerprints []uint64

	// Reasons is the acceptance-filter outcome, empty for a pass
	Reasons []Reason
}

// newCandidate aggregates a built path into a candidate. Evidence whose
// fingerprint is already consumed does not count toward support.
func newCandidate(p *traverse.Path, terminal *traverse.Node, k int, consumed map[uint64]bool) *Candidate {
	c := &Candidate{
		Nodes:          p.Nodes(),
		Score:          terminal.Score,
		Weight:         p.PathWeight(),
		PathLength:     p.Len(),
		Terminal:       terminal.Terminal,
		TerminalAnchor: terminal.TerminalAnchor,
	}

	refKmers, breakKmers := 0, 0
	seen := make(map[uint64]bool)
	for _, n := range c.Nodes {
		if n.Reference {
			refKmers += n.Length
		} else {
			breakKmers += n.Length
		}
		for _, s := range n.Support {
			if consumed[s.Fingerprint] || seen[s.Fingerprint] {
				continue
			}
			seen[s.Fingerprint] = true
			c.Fingerprints = append(c.Fingerprints, s.Fingerprint)
			switch s.Kind {
			case graph.SupportReadPair:
				c.ReadPairs++
				if s.ReadLength > c.MaxReadPairLength {
					c.MaxReadPairLength = s.ReadLength
				}
			case graph.SupportSoftClip:
				c.SoftClips++
			case graph.SupportRemote:
				c.Remote++
			}
		}
	}

	// a run of n k-mers assembles n+k-1 bases
	if refKmers > 0 {
		c.AnchorLength = refKmers + k - 1
	}
	if breakKmers > 0 {
		c.BreakendLength = breakKmers + k - 1
	}
	return c
}

// BreakPosition reports whether the candidate defines a structural-variant
// break position: some breakend sequence terminating within the path's
// terminal range
func (c *Candidate) BreakPosition() bool {
	return c.BreakendLength > 0 && !c.Terminal.Empty()
}
