package assemble

import (
	"errors"
	"log/slog"

	"github.com/mbosio85/gridss/config"
	"github.com/mbosio85/gridss/internal/graph"
	"github.com/mbosio85/gridss/internal/traverse"
)

// State is the driver's position in its iteration protocol
type State int

const (
	// Idle is a driver that has not yet polled
	Idle State = iota

	// Polling is a driver selecting the next frontier candidate
	Polling

	// Building is a driver materializing a best path
	Building

	// Emitting is a driver that has just produced a candidate
	Emitting

	// Drained is a driver whose frontier is exhausted
	Drained

	// Capped is a driver that hit the per-iteration contig cap
	Capped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Polling:
		return "polling"
	case Building:
		return "building"
	case Emitting:
		return "emitting"
	case Drained:
		return "drained"
	case Capped:
		return "capped"
	}
	return "unknown"
}

// Driver produces assembled contigs one at a time from a positional de
// Bruijn graph. Each Next call polls the traversal frontier until a
// terminal best path is found, builds it, accounts its evidence, and
// filters it. A driver owns its memoizer and is not safe for concurrent
// use; run one driver per genomic region.
type Driver struct {
	cfg      config.AssemblyConfig
	provider graph.Provider
	memo     *traverse.Memo
	filter   Filter
	log      *slog.Logger

	// pending nodes not yet offered to the memoizer, in start order
	pending []*graph.Node
	next    int

	// consumed fingerprints no longer counting toward support
	consumed map[uint64]bool

	emitted int
	state   State
}

// NewDriver validates the node collection and prepares a driver over it.
// Nodes must be in non-decreasing start-position order; they are seeded
// into the traversal lazily as the frontier advances.
func NewDriver(cfg config.AssemblyConfig, provider graph.Provider, nodes []*graph.Node, logger *slog.Logger) (*Driver, error) {
	if err := graph.SanityCheck(nodes); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		cfg:      cfg,
		provider: provider,
		memo:     traverse.NewMemo(),
		filter:   Filter{MinReads: cfg.MinReads},
		log:      logger,
		pending:  nodes,
		consumed: make(map[uint64]bool),
	}, nil
}

// State reports where the driver is in its iteration protocol
func (d *Driver) State() State {
	return d.state
}

// Emitted is the number of candidates produced so far
func (d *Driver) Emitted() int {
	return d.emitted
}

// Next produces the next assembled candidate, or (nil, nil) once the
// frontier is drained or the contig cap is reached. Budget exhaustion
// abandons the current attempt and moves on; graph-provider faults halt
// the driver.
func (d *Driver) Next() (*Candidate, error) {
	for {
		if d.emitted >= d.cfg.MaxContigs {
			d.state = Capped
			return nil, nil
		}
		d.state = Polling
		d.seedReady()
		tn := d.memo.PollFrontier()
		if tn == nil {
			d.state = Drained
			return nil, nil
		}
		if err := d.expand(tn); err != nil {
			d.state = Drained
			return nil, err
		}
		if tn.Terminal.Empty() {
			continue
		}

		d.state = Building
		cand, err := d.build(tn)
		if errors.Is(err, traverse.ErrBudgetExhausted) {
			budgetAbandoned.Inc()
			d.log.Debug("assembly abandoned, path budget exhausted",
				"kmer", tn.Sub.Node.Kmer, "position", tn.Sub.Start, "budget", d.cfg.MaxPathNodes)
			continue
		}
		if err != nil {
			d.state = Drained
			return nil, err
		}

		d.consume(cand)
		cand.Reasons = d.filter.Apply(cand)
		if len(cand.Reasons) > 0 {
			for _, r := range cand.Reasons {
				contigsFiltered.WithLabelValues(string(r)).Inc()
			}
			if !d.cfg.WriteFiltered {
				continue
			}
		} else {
			contigsEmitted.Inc()
		}
		d.emitted++
		d.state = Emitting
		return cand, nil
	}
}

// Run drains the driver, passing every candidate to emit
func (d *Driver) Run(emit func(*Candidate)) error {
	for {
		cand, err := d.Next()
		if err != nil {
			return err
		}
		if cand == nil {
			return nil
		}
		emit(cand)
	}
}

// seedReady offers pending nodes to the memoizer up to the assembly
// margin past the current frontier head, so a path is never committed
// before the evidence that could still out-score it has been seen
func (d *Driver) seedReady() {
	margin := int(d.cfg.AssemblyMargin * float64(d.cfg.FragmentSize))
	for d.next < len(d.pending) {
		head := d.memo.PeekFrontier()
		if head != nil && d.pending[d.next].Start > head.Priority()+margin {
			break
		}
		d.memo.Memoize(traverse.Seed(graph.Whole(d.pending[d.next])))
		d.next++
	}
}

// expand memoizes tn's successor extensions and computes its terminal
// ranges: the positions within tn's sub-interval that no extension covers
func (d *Driver) expand(tn *traverse.Node) error {
	succs, err := d.provider.Successors(tn.Sub)
	if err != nil {
		return err
	}
	length := tn.Sub.Node.Length
	maxWidth := int(d.cfg.MaxWidth * float64(d.cfg.FragmentSize))

	var covered graph.Ranges
	for _, sn := range succs {
		if sn.Start < tn.Sub.Start+length {
			// successor positions must strictly follow the positions
			// that reach them; anything else implies a cycle
			return &graph.FaultError{Kmer: sn.Node.Kmer, Start: sn.Start, End: sn.End, Reason: "successor does not advance in position space"}
		}
		if sn.Start < sn.Node.Start || sn.End > sn.Node.End || sn.Start > sn.End {
			return &graph.FaultError{Kmer: sn.Node.Kmer, Start: sn.Start, End: sn.End, Reason: "sub-interval outside successor interval"}
		}
		if maxWidth > 0 && sn.End+sn.Node.Length-tn.RootStart > maxWidth {
			// subgraph has grown too wide, terminate the path here
			continue
		}
		covered = covered.Add(sn.Start-length, sn.End-length)
		d.memo.Memoize(traverse.Extend(tn, sn))
	}

	term := graph.Ranges{}.Add(tn.Sub.Start, tn.Sub.End)
	for _, iv := range covered {
		term = term.Subtract(iv.Start, iv.End)
	}
	tn.Terminal = term
	if tn.Sub.Node.Reference {
		tn.TerminalAnchor = term
	}
	return nil
}

// build reconstructs the best path ending at tn by walking predecessor
// pointers, then greedily extends past the memoized terminus
func (d *Driver) build(tn *traverse.Node) (*Candidate, error) {
	var chain []*traverse.Node
	for n := tn; n != nil; n = n.Prev {
		chain = append(chain, n)
	}

	path, err := traverse.NewPath(chain[len(chain)-1], d.provider, true, d.cfg.MaxPathNodes, d.cfg.BranchingFactor)
	if err != nil {
		return nil, err
	}
	for i := len(chain) - 2; i >= 0; i-- {
		if err := path.Push(chain[i]); err != nil {
			return nil, err
		}
	}
	if err := path.GreedyTraverse(true, true); err != nil {
		return nil, err
	}
	return newCandidate(path, tn, d.cfg.K, d.consumed), nil
}

// consume marks the candidate's supporting evidence so later iterations
// do not double-count it. Reference nodes are exempt when reference k-mer
// reuse is allowed.
func (d *Driver) consume(c *Candidate) {
	for _, n := range c.Nodes {
		if n.Reference && d.cfg.AllowRefKmerReuse {
			continue
		}
		for _, s := range n.Support {
			d.consumed[s.Fingerprint] = true
		}
	}
}
