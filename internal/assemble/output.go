package assemble

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Contig is the JSON form of a single assembled candidate
type Contig struct {
	// Score is the memoized best-path score
	Score int `json:"score"`

	// Weight is the summed node weight of the built path
	Weight int `json:"weight"`

	// PathLength is the number of path nodes
	PathLength int `json:"pathLength"`

	// AnchorLength and BreakendLength in bases
	AnchorLength   int `json:"anchorLength"`
	BreakendLength int `json:"breakendLength"`

	// Support counts by evidence category
	ReadPairs int `json:"readPairs"`
	SoftClips int `json:"softClips"`
	Remote    int `json:"remote"`

	// Fingerprints of the distinct supporting reads
	Fingerprints []uint64 `json:"fingerprints"`

	// Filters names the acceptance filters the contig failed, if any
	Filters []string `json:"filters,omitempty"`
}

// OutputRegion is one region's assembled contigs
type OutputRegion struct {
	Label   string   `json:"label"`
	Contigs []Contig `json:"contigs"`
}

// Output is the root of the result document written after assembly
type Output struct {
	// Time, ex: "2018-01-01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to assemble
	Execution float64 `json:"execution"`

	Regions []OutputRegion `json:"regions"`
}

// WriteJSON converts region results into an Output document and writes it
// to the filename requested
func WriteJSON(filename string, results []RegionResult, started time.Time) error {
	out := Output{
		Time:      started.Format("2006-01-02 15:04:05"),
		Execution: time.Since(started).Seconds(),
	}
	for _, r := range results {
		contigs := make([]Contig, 0, len(r.Contigs))
		for _, c := range r.Contigs {
			filters := make([]string, 0, len(c.Reasons))
			for _, reason := range c.Reasons {
				filters = append(filters, string(reason))
			}
			contigs = append(contigs, Contig{
				Score:          c.Score,
				Weight:         c.Weight,
				PathLength:     c.PathLength,
				AnchorLength:   c.AnchorLength,
				BreakendLength: c.BreakendLength,
				ReadPairs:      c.ReadPairs,
				SoftClips:      c.SoftClips,
				Remote:         c.Remote,
				Fingerprints:   c.Fingerprints,
				Filters:        filters,
			})
		}
		out.Regions = append(out.Regions, OutputRegion{Label: r.Label, Contigs: contigs})
	}

	contents, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize assembly output: %w", err)
	}
	if err := os.WriteFile(filename, contents, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
