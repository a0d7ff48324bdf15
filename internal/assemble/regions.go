package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mbosio85/gridss/config"
	"github.com/mbosio85/gridss/internal/graph"
)

// Region is an independent assembly unit: a disjoint stretch of the genome
// with its own nodes and graph provider. Regions share nothing, so they
// can be assembled in parallel.
type Region struct {
	Label    string
	Provider graph.Provider
	Nodes    []*graph.Node
}

// RegionResult is the assembled output of one region
type RegionResult struct {
	Label   string
	Contigs []*Candidate
}

// AssembleRegions runs one driver per region across the available CPUs and
// returns per-region results in input order. The first region error cancels
// the remaining work.
func AssembleRegions(ctx context.Context, cfg config.AssemblyConfig, regions []Region, logger *slog.Logger, progress func()) ([]RegionResult, error) {
	results := make([]RegionResult, len(regions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range regions {
		i := i
		r := regions[i]
		g.Go(func() error {
			driver, err := NewDriver(cfg, r.Provider, r.Nodes, logger)
			if err != nil {
				return fmt.Errorf("region %s: %w", r.Label, err)
			}
			contigs := []*Candidate{}
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				cand, err := driver.Next()
				if err != nil {
					return fmt.Errorf("region %s: %w", r.Label, err)
				}
				if cand == nil {
					break
				}
				contigs = append(contigs, cand)
			}
			frontierCompactions.Add(float64(driver.memo.Compactions()))
			logger.Info("region assembled",
				"region", r.Label, "contigs", len(contigs), "state", driver.State().String())
			results[i] = RegionResult{Label: r.Label, Contigs: contigs}
			if progress != nil {
				progress()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
