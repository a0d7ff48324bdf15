package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction and validation.
var (
	// ErrEmptyInterval indicates a node with start past end
	ErrEmptyInterval = errors.New("empty position interval")

	// ErrBadLength indicates a node spanning fewer than one k-mer
	ErrBadLength = errors.New("node length below 1")

	// ErrNegativeWeight indicates a node with negative evidence weight
	ErrNegativeWeight = errors.New("negative node weight")

	// ErrUnordered indicates nodes delivered out of start-position order
	ErrUnordered = errors.New("nodes out of start-position order")

	// ErrUnknownNode indicates an edge naming a node outside the graph
	ErrUnknownNode = errors.New("edge references unknown node")
)

// FaultError is a graph-provider fault: an ill-formed edge or an edge whose
// geometry implies a cycle in position space. It carries the identity of the
// offending node so the caller can report it.
type FaultError struct {
	Kmer   uint64
	Start  int
	End    int
	Reason string
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("graph provider fault at kmer %d [%d,%d]: %s", e.Kmer, e.Start, e.End, e.Reason)
}
