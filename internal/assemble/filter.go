package assemble

// Reason is a named cause for rejecting an assembled candidate
type Reason string

const (
	// ReasonReferenceAllele rejects assemblies with no breakend sequence
	// or no defined break position
	ReasonReferenceAllele Reason = "REFERENCE_ALLELE"

	// ReasonTooFewReads rejects assemblies with fewer locally mapped
	// supporting reads than the configured minimum
	ReasonTooFewReads Reason = "ASSEMBLY_TOO_FEW_READ"

	// ReasonTooShort rejects unanchored assemblies no longer than a
	// single read
	ReasonTooShort Reason = "ASSEMBLY_TOO_SHORT"

	// ReasonRemote rejects assemblies with remote support whose remote
	// read count equals their combined read-pair and soft-clip count
	ReasonRemote Reason = "ASSEMBLY_REMOTE"
)

// Filter applies the assembly acceptance criteria. Each rule contributes
// its reason independently; a candidate passes iff no rule triggers.
type Filter struct {
	// MinReads is the minimum read-pair plus soft-clip support
	MinReads int
}

// Apply evaluates every rule against the candidate and returns the
// accumulated rejection reasons, nil for a pass. Applying the filter twice
// to the same candidate yields the same reasons.
func (f Filter) Apply(c *Candidate) []Reason {
	var reasons []Reason
	if c.BreakendLength == 0 || !c.BreakPosition() {
		reasons = append(reasons, ReasonReferenceAllele)
	}
	if c.ReadPairs+c.SoftClips < f.MinReads {
		reasons = append(reasons, ReasonTooFewReads)
	}
	if c.AnchorLength == 0 && c.BreakendLength <= c.MaxReadPairLength {
		// just assembled a single read
		reasons = append(reasons, ReasonTooShort)
	}
	if c.Remote > 0 && c.Remote == c.SoftClips+c.ReadPairs {
		reasons = append(reasons, ReasonRemote)
	}
	return reasons
}
