package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/aweris/svo"
)

var neighborsCmd = &cobra.Command{
	Use:   "neighbors <id>...",
	Short: "List the neighbours of octant ids",
	Long:  "List the 26 same-depth neighbours of each octant id. Neighbours outside the grid are printed as '-'.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNeighbors,
}

func init() {
	neighborsCmd.Flags().Bool("facing", false, "only list the six face neighbours")
	rootCmd.AddCommand(neighborsCmd)
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	facing, _ := cmd.Flags().GetBool("facing")

	results := make([][]svo.NeighborResult, len(ids))
	p := pool.New().WithMaxGoroutines(getConcurrency()).WithContext(cmd.Context()).WithCancelOnError()
	for i, id := range ids {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if facing {
				n := id.FacingNeighbors()
				results[i] = n[:]
			} else {
				n := id.AllNeighbors()
				results[i] = n[:]
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return fmt.Errorf("compute neighbours: %w", err)
	}

	out := cmd.OutOrStdout()
	for i, id := range ids {
		missing := 0
		for _, n := range results[i] {
			if n.Err != nil {
				missing++
				fmt.Fprintf(out, "%d\t%s\t-\n", id.Morton(), n.Direction)
				continue
			}
			fmt.Fprintf(out, "%d\t%s\t%d\n", id.Morton(), n.Direction, n.ID.Morton())
		}
		log.Debug().Uint64("id", id.Morton()).Int("outside", missing).Msg("neighbours computed")
	}
	return nil
}
