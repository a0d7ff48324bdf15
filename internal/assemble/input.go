package assemble

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mbosio85/gridss/internal/graph"
)

// inputGraph is the on-disk JSON form of a positional de Bruijn graph
// dump: one entry per region, nodes in start-position order, edges as
// indices into the region's node list
type inputGraph struct {
	Regions []inputRegion `json:"regions"`
}

type inputRegion struct {
	// Label names the region, ex: "chr1:10000-12000"
	Label string `json:"label"`

	Nodes []inputNode `json:"nodes"`
}

type inputNode struct {
	// Kmer is the packed first k-mer identity
	Kmer uint64 `json:"kmer"`

	// Start and End bound the first k-mer position, inclusive
	Start int `json:"start"`
	End   int `json:"end"`

	// Length is the number of k-mers spanned
	Length int `json:"length"`

	// Weight is the total evidence weight
	Weight int `json:"weight"`

	// Reference marks reference-supported nodes
	Reference bool `json:"reference"`

	// Support lists the evidence backing the node
	Support []inputSupport `json:"support"`

	// Edges are indices of successor nodes within this region
	Edges []int `json:"edges"`
}

type inputSupport struct {
	// Read is the originating read name, hashed into the fingerprint
	Read string `json:"read"`

	// Kind is one of "read-pair", "soft-clip", "remote"
	Kind string `json:"kind"`

	ReadLength int `json:"readLength"`
}

// ReadGraph loads a JSON graph dump and builds one assembly region per
// entry, wiring the adjacency provider for each
func ReadGraph(path string) ([]Region, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file %s: %w", path, err)
	}

	var in inputGraph
	if err := json.Unmarshal(contents, &in); err != nil {
		return nil, fmt.Errorf("failed to parse graph file %s: %w", path, err)
	}

	regions := make([]Region, 0, len(in.Regions))
	for _, reg := range in.Regions {
		nodes := make([]*graph.Node, len(reg.Nodes))
		for i, n := range reg.Nodes {
			support := make([]graph.Support, 0, len(n.Support))
			for _, s := range n.Support {
				kind, err := parseKind(s.Kind)
				if err != nil {
					return nil, fmt.Errorf("region %s node %d: %w", reg.Label, i, err)
				}
				support = append(support, graph.Support{
					Fingerprint: graph.Fingerprint(s.Read),
					Kind:        kind,
					ReadLength:  s.ReadLength,
				})
			}
			nodes[i] = &graph.Node{
				Kmer:      n.Kmer,
				Start:     n.Start,
				End:       n.End,
				Length:    n.Length,
				Weight:    n.Weight,
				Reference: n.Reference,
				Support:   support,
			}
		}

		adj, err := graph.NewAdjacency(nodes)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", reg.Label, err)
		}
		for i, n := range reg.Nodes {
			for _, e := range n.Edges {
				if e < 0 || e >= len(nodes) {
					return nil, fmt.Errorf("region %s node %d edge %d: %w", reg.Label, i, e, graph.ErrUnknownNode)
				}
				if err := adj.Connect(nodes[i], nodes[e]); err != nil {
					return nil, fmt.Errorf("region %s: %w", reg.Label, err)
				}
			}
		}

		regions = append(regions, Region{Label: reg.Label, Provider: adj, Nodes: nodes})
	}
	return regions, nil
}

func parseKind(kind string) (graph.SupportKind, error) {
	switch kind {
	case "read-pair":
		return graph.SupportReadPair, nil
	case "soft-clip":
		return graph.SupportSoftClip, nil
	case "remote":
		return graph.SupportRemote, nil
	}
	return 0, fmt.Errorf("unknown support kind %q", kind)
}
