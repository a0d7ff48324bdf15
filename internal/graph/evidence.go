package graph

import "github.com/cespare/xxhash/v2"

// SupportKind is the category of read evidence backing a node
type SupportKind int

const (
	// SupportReadPair is evidence from a discordantly mapped read pair
	SupportReadPair SupportKind = iota

	// SupportSoftClip is evidence from a soft-clipped read mapped locally
	SupportSoftClip

	// SupportRemote is evidence from a read mapped elsewhere whose mate or
	// clipped tail implicates this locus
	SupportRemote
)

// Support is a single piece of read evidence: a fingerprint identifying the
// originating read, the evidence category, and the read's length
type Support struct {
	Fingerprint uint64
	Kind        SupportKind
	ReadLength  int
}

// Fingerprint hashes a read name into the evidence fingerprint used for
// support de-duplication and consumed-evidence tracking
func Fingerprint(readName string) uint64 {
	return xxhash.Sum64String(readName)
}
