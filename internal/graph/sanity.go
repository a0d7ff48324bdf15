package graph

import "fmt"

// SanityCheck validates a node collection before traversal: every interval
// must be non-empty, lengths positive, weights non-negative, and nodes must
// arrive in non-decreasing start-position order
func SanityCheck(nodes []*Node) error {
	var last *Node
	for _, n := range nodes {
		if n.Start > n.End {
			return fmt.Errorf("kmer %d [%d,%d]: %w", n.Kmer, n.Start, n.End, ErrEmptyInterval)
		}
		if n.Length < 1 {
			return fmt.Errorf("kmer %d length %d: %w", n.Kmer, n.Length, ErrBadLength)
		}
		if n.Weight < 0 {
			return fmt.Errorf("kmer %d weight %d: %w", n.Kmer, n.Weight, ErrNegativeWeight)
		}
		if last != nil && n.Start < last.Start {
			return fmt.Errorf("kmer %d at %d after kmer %d at %d: %w", n.Kmer, n.Start, last.Kmer, last.Start, ErrUnordered)
		}
		last = n
	}
	return nil
}
