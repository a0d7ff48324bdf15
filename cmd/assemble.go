package cmd

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mbosio85/gridss/config"
	"github.com/mbosio85/gridss/internal/assemble"
)

var graphPath string
var outputPath string

// assembleCmd represents the assemble command
var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble contigs from a positional k-mer graph dump",
	Long: `Assemble contigs from a positional k-mer graph dump.

"gridss assemble" reads a JSON dump of positionally annotated k-mer path
nodes, one collection per genomic region, and assembles each region
independently:

1. Memoizing the best-scoring path reaching every (k-mer, position
   interval) cell of the graph
2. Polling the traversal frontier for terminal best paths and rebuilding
   each into a candidate contig
3. Applying the acceptance filters (minimum read support, anchor length,
   remote-only evidence) and writing the surviving contigs with their
   supporting-read fingerprints`,
	Run: func(cmd *cobra.Command, args []string) {
		conf := config.New()

		regions, err := assemble.ReadGraph(graphPath)
		if err != nil {
			log.Fatalf("%v", err)
		}

		started := time.Now()
		bar := pb.StartNew(len(regions))
		results, err := assemble.AssembleRegions(context.Background(), conf.Assembly, regions, slog.Default(), func() {
			bar.Increment()
		})
		bar.Finish()
		if err != nil {
			log.Fatalf("%v", err)
		}

		if err := assemble.WriteJSON(outputPath, results, started); err != nil {
			log.Fatalf("%v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(assembleCmd)

	// Flags for specifying the paths to the input graph dump and output file
	assembleCmd.Flags().StringVarP(&graphPath, "graph", "g", "", "path to a JSON dump of positional k-mer path nodes")
	assembleCmd.Flags().StringVarP(&outputPath, "out", "o", "contigs.json", "path to write assembled contigs to")

	assembleCmd.Flags().Int("kmer", 25, "k-mer size used to build the graph")
	assembleCmd.Flags().Int("max-contigs", 1024, "maximum contigs per assembly iteration")
	assembleCmd.Flags().Int("min-reads", 3, "minimum supporting reads for an assembly")
	assembleCmd.Flags().Bool("write-filtered", false, "write rejected assemblies with their filter reasons")

	assembleCmd.MarkFlagRequired("graph")

	// Bind the parameters to viper
	viper.BindPFlag("assembly.k", assembleCmd.Flags().Lookup("kmer"))
	viper.BindPFlag("assembly.max-contigs", assembleCmd.Flags().Lookup("max-contigs"))
	viper.BindPFlag("assembly.min-reads", assembleCmd.Flags().Lookup("min-reads"))
	viper.BindPFlag("assembly.write-filtered", assembleCmd.Flags().Lookup("write-filtered"))
}
