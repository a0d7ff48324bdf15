package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbosio85/gridss/config"
	"github.com/mbosio85/gridss/internal/graph"
)

func testConfig() config.AssemblyConfig {
	return config.AssemblyConfig{
		K:                 25,
		MaxContigs:        1024,
		AllowRefKmerReuse: true,
		AssemblyMargin:    2.5,
		FragmentSize:      500,
		MinReads:          3,
	}
}

func sc(read string) graph.Support {
	return graph.Support{Fingerprint: graph.Fingerprint(read), Kind: graph.SupportSoftClip, ReadLength: 100}
}

func rp(read string) graph.Support {
	return graph.Support{Fingerprint: graph.Fingerprint(read), Kind: graph.SupportReadPair, ReadLength: 100}
}

// linearRegion is the three node chain a -> b -> c with weights 1, 2, 3
// and enough soft-clip support to pass the filters
func linearRegion(t *testing.T) (*graph.Adjacency, []*graph.Node) {
	t.Helper()

	a := graph.NewNode(1, 10, 10, 1, 1, false, []graph.Support{sc("r1")})
	b := graph.NewNode(2, 11, 11, 1, 2, false, []graph.Support{sc("r2"), sc("r3")})
	c := graph.NewNode(3, 12, 12, 1, 3, false, []graph.Support{sc("r4")})

	nodes := []*graph.Node{a, b, c}
	adj, err := graph.NewAdjacency(nodes)
	require.NoError(t, err)
	require.NoError(t, adj.Connect(a, b))
	require.NoError(t, adj.Connect(b, c))
	return adj, nodes
}

func TestDriver_linearChain(t *testing.T) {
	adj, nodes := linearRegion(t)

	d, err := NewDriver(testConfig(), adj, nodes, nil)
	require.NoError(t, err)
	assert.Equal(t, Idle, d.State())

	cand, err := d.Next()
	require.NoError(t, err)
	require.NotNil(t, cand)

	assert.Equal(t, 6, cand.Score)
	assert.Equal(t, 6, cand.Weight)
	assert.Equal(t, 3, cand.PathLength)
	assert.Equal(t, nodes, cand.Nodes)
	assert.Equal(t, 4, cand.SoftClips)
	assert.Empty(t, cand.Reasons)
	assert.Equal(t, Emitting, d.State())

	next, err := d.Next()
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, Drained, d.State())
}

func TestDriver_deterministic(t *testing.T) {
	type emitted struct {
		score   int
		pathLen int
		kmers   []uint64
	}

	run := func() []emitted {
		adj, nodes := linearRegion(t)
		d, err := NewDriver(testConfig(), adj, nodes, nil)
		require.NoError(t, err)

		var out []emitted
		require.NoError(t, d.Run(func(c *Candidate) {
			e := emitted{score: c.Score, pathLen: c.PathLength}
			for _, n := range c.Nodes {
				e.kmers = append(e.kmers, n.Kmer)
			}
			out = append(out, e)
		}))
		return out
	}

	assert.Equal(t, run(), run())
}

func TestDriver_consumedEvidenceNotDoubleCounted(t *testing.T) {
	// a branches into b and c; both branches are backed by the same reads,
	// so whichever assembles second has no unconsumed support left
	shared := []graph.Support{sc("r1"), sc("r2"), sc("r3")}
	a := graph.NewNode(1, 10, 10, 1, 1, false, shared)
	b := graph.NewNode(2, 11, 11, 1, 9, false, shared)
	c := graph.NewNode(3, 11, 11, 1, 2, false, shared)

	nodes := []*graph.Node{a, b, c}
	adj, err := graph.NewAdjacency(nodes)
	require.NoError(t, err)
	require.NoError(t, adj.Connect(a, b))
	require.NoError(t, adj.Connect(a, c))

	d, err := NewDriver(testConfig(), adj, nodes, nil)
	require.NoError(t, err)

	var contigs []*Candidate
	require.NoError(t, d.Run(func(c *Candidate) { contigs = append(contigs, c) }))

	require.Len(t, contigs, 1)
	assert.Equal(t, 3, contigs[0].SoftClips)
}

func TestDriver_referenceReusePolicy(t *testing.T) {
	// the shared anchor is a reference node; with reuse allowed its reads
	// keep supporting later contigs
	anchorReads := []graph.Support{sc("r1"), sc("r2"), sc("r3")}
	a := graph.NewNode(1, 10, 10, 1, 1, true, anchorReads)
	b := graph.NewNode(2, 11, 11, 1, 9, false, []graph.Support{sc("r4"), sc("r5"), sc("r6")})
	c := graph.NewNode(3, 11, 11, 1, 2, false, []graph.Support{sc("r7"), sc("r8"), sc("r9")})

	build := func(reuse bool) []*Candidate {
		nodes := []*graph.Node{a, b, c}
		adj, err := graph.NewAdjacency(nodes)
		require.NoError(t, err)
		require.NoError(t, adj.Connect(a, b))
		require.NoError(t, adj.Connect(a, c))

		cfg := testConfig()
		cfg.AllowRefKmerReuse = reuse
		cfg.MinReads = 4

		d, err := NewDriver(cfg, adj, nodes, nil)
		require.NoError(t, err)
		var contigs []*Candidate
		require.NoError(t, d.Run(func(c *Candidate) { contigs = append(contigs, c) }))
		return contigs
	}

	// with reuse both branches keep the anchor's three reads: 6 and 6
	assert.Len(t, build(true), 2)

	// without reuse the anchor reads are consumed by the first contig and
	// the second falls below min-reads
	assert.Len(t, build(false), 1)
}

func TestDriver_contigCap(t *testing.T) {
	a := graph.NewNode(1, 10, 10, 1, 1, false, []graph.Support{sc("r1"), sc("r2"), sc("r3")})
	b := graph.NewNode(2, 11, 11, 1, 9, false, []graph.Support{sc("r4"), sc("r5"), sc("r6")})
	c := graph.NewNode(3, 11, 11, 1, 2, false, []graph.Support{sc("r7"), sc("r8"), sc("r9")})

	nodes := []*graph.Node{a, b, c}
	adj, err := graph.NewAdjacency(nodes)
	require.NoError(t, err)
	require.NoError(t, adj.Connect(a, b))
	require.NoError(t, adj.Connect(a, c))

	cfg := testConfig()
	cfg.MaxContigs = 1

	d, err := NewDriver(cfg, adj, nodes, nil)
	require.NoError(t, err)

	var contigs []*Candidate
	require.NoError(t, d.Run(func(c *Candidate) { contigs = append(contigs, c) }))

	assert.Len(t, contigs, 1)
	assert.Equal(t, Capped, d.State())
}

func TestDriver_pathBudgetAbandonsQuietly(t *testing.T) {
	adj, nodes := linearRegion(t)

	cfg := testConfig()
	cfg.MaxPathNodes = 1

	d, err := NewDriver(cfg, adj, nodes, nil)
	require.NoError(t, err)

	var contigs []*Candidate
	require.NoError(t, d.Run(func(c *Candidate) { contigs = append(contigs, c) }))

	assert.Empty(t, contigs)
	assert.Equal(t, Drained, d.State())
}

func TestDriver_writeFiltered(t *testing.T) {
	// a lone single-read node assembles to a contig failing min-reads
	a := graph.NewNode(1, 10, 10, 1, 1, false, []graph.Support{rp("r1")})
	nodes := []*graph.Node{a}
	adj, err := graph.NewAdjacency(nodes)
	require.NoError(t, err)

	run := func(writeFiltered bool) []*Candidate {
		cfg := testConfig()
		cfg.WriteFiltered = writeFiltered
		d, err := NewDriver(cfg, adj, nodes, nil)
		require.NoError(t, err)
		var contigs []*Candidate
		require.NoError(t, d.Run(func(c *Candidate) { contigs = append(contigs, c) }))
		return contigs
	}

	assert.Empty(t, run(false))

	rejected := run(true)
	require.Len(t, rejected, 1)
	assert.Contains(t, rejected[0].Reasons, ReasonTooFewReads)
	assert.Contains(t, rejected[0].Reasons, ReasonTooShort)
}

// cyclicProvider produces a successor that does not advance in position
// space, as a buggy graph producer would
type cyclicProvider struct {
	*graph.Adjacency
}

func (p cyclicProvider) Successors(sn graph.Subnode) ([]graph.Subnode, error) {
	return []graph.Subnode{{Node: sn.Node, Start: sn.Start, End: sn.End}}, nil
}

func TestDriver_providerFaultHalts(t *testing.T) {
	a := graph.NewNode(1, 10, 10, 1, 1, false, nil)
	nodes := []*graph.Node{a}
	adj, err := graph.NewAdjacency(nodes)
	require.NoError(t, err)

	d, err := NewDriver(testConfig(), cyclicProvider{adj}, nodes, nil)
	require.NoError(t, err)

	_, err = d.Next()
	var fault *graph.FaultError
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, uint64(1), fault.Kmer)
}

func TestDriver_sanityCheckRejectsUnorderedNodes(t *testing.T) {
	a := graph.NewNode(1, 20, 25, 1, 1, false, nil)
	b := graph.NewNode(2, 10, 15, 1, 1, false, nil)
	adj, err := graph.NewAdjacency([]*graph.Node{b, a})
	require.NoError(t, err)

	_, err = NewDriver(testConfig(), adj, []*graph.Node{a, b}, nil)
	assert.ErrorIs(t, err, graph.ErrUnordered)
}
