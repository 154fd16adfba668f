package cmd

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aweris/svo"
	"github.com/aweris/svo/internal/logger"
	"github.com/aweris/svo/spatial"
)

// maxWalkDepth keeps a fully subdivided tree printable.
const maxWalkDepth = 6

var walkCmd = &cobra.Command{
	Use:   "walk",
	Short: "Build a full octree and print its traversal",
	Long:  "Subdivide a cube centred on the origin down to --depth and print every octant in depth-first or breadth-first order.",
	Args:  cobra.NoArgs,
	RunE:  runWalk,
}

func init() {
	walkCmd.Flags().Int("depth", 2, "subdivision depth")
	walkCmd.Flags().String("order", "bfs", "traversal order: dfs or bfs")
	walkCmd.Flags().Float64("extent", 1, "half edge length of the root cube")

	viper.BindPFlag("walk.depth", walkCmd.Flags().Lookup("depth"))
	viper.BindPFlag("walk.order", walkCmd.Flags().Lookup("order"))
	viper.BindPFlag("walk.extent", walkCmd.Flags().Lookup("extent"))

	rootCmd.AddCommand(walkCmd)
}

func runWalk(cmd *cobra.Command, args []string) error {
	depth := viper.GetInt("walk.depth")
	if depth < 0 || depth > maxWalkDepth {
		return fmt.Errorf("depth %d out of range [0, %d]", depth, maxWalkDepth)
	}
	extent := viper.GetFloat64("walk.extent")
	if extent <= 0 {
		return fmt.Errorf("extent must be positive, got %g", extent)
	}
	limit := svo.Depth(depth)

	tree, err := spatial.New[int](spatial.NewCube(r3.Vector{}, extent), spatial.WithLogger(logger.Logger()))
	if err != nil {
		return err
	}
	defer tree.Close()

	_, err = tree.SubdivideIfFromRoot(func(d svo.Depth, _ svo.OctantID, _ spatial.Cube, _ svo.AccessorMut[int]) svo.Subdivision[int] {
		if d >= limit {
			return svo.Subdivision[int]{Flow: svo.Skip}
		}
		return svo.SubdivideWith(func(p svo.OctantPlacement) int { return int(p) })
	})
	if err != nil {
		return fmt.Errorf("build tree: %w", err)
	}

	out := cmd.OutOrStdout()
	count := 0
	visit := func(d svo.Depth, id svo.OctantID, region spatial.Cube) svo.SearchControlFlow {
		fmt.Fprintf(out, "%s%d\t%s\n", strings.Repeat("  ", int(d)), id.Morton(), region)
		count++
		if d >= limit {
			return svo.Skip
		}
		return svo.Continue
	}

	switch order := strings.ToLower(viper.GetString("walk.order")); order {
	case "dfs":
		_, err = tree.DepthFirstSearchFromRoot(visit)
	case "bfs":
		_, err = tree.BreadthFirstSearchFromRoot(visit)
	default:
		return fmt.Errorf("unknown order %q, want dfs or bfs", order)
	}
	if err != nil {
		return fmt.Errorf("walk tree: %w", err)
	}

	log.Info().Int("octants", count).Int("depth", depth).Msg("walk done")
	return nil
}
