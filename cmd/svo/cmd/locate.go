package cmd

import (
	"fmt"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/spf13/cobra"

	"github.com/aweris/svo"
	"github.com/aweris/svo/internal/logger"
	"github.com/aweris/svo/spatial"
)

var locateCmd = &cobra.Command{
	Use:   "locate <x> <y> <z>",
	Short: "Find the octant holding a point",
	Long:  "Drill from the root cube toward a point and print the octant that holds it at --depth.",
	Args:  cobra.ExactArgs(3),
	RunE:  runLocate,
}

func init() {
	locateCmd.Flags().Int("depth", int(svo.MaxDepth), "target depth")
	locateCmd.Flags().Float64("extent", 1, "half edge length of the root cube")
	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
	var point [3]float64
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", svo.Axis(i), err)
		}
		point[i] = v
	}
	depth, _ := cmd.Flags().GetInt("depth")
	if depth < 0 || depth > int(svo.MaxDepth) {
		return fmt.Errorf("depth %d out of range [0, %d]", depth, svo.MaxDepth)
	}
	extent, _ := cmd.Flags().GetFloat64("extent")
	limit := svo.Depth(depth)

	tree, err := spatial.New[struct{}](spatial.NewCube(r3.Vector{}, extent), spatial.WithLogger(logger.Logger()))
	if err != nil {
		return err
	}
	defer tree.Close()

	target := r3.Vector{X: point[0], Y: point[1], Z: point[2]}
	if !tree.RootRegion().Contains(target) {
		return spatial.ErrOutsideRegion
	}

	_, err = tree.DrillFromRoot(func(d svo.Depth, _ svo.OctantID, region spatial.Cube, _ svo.AccessorMut[struct{}]) *svo.Assignment[struct{}] {
		if d >= limit {
			return nil
		}
		return svo.AssignNextWhenNew(region.Octant(target), struct{}{})
	})
	if err != nil {
		return fmt.Errorf("drill: %w", err)
	}

	id, cube, err := spatial.Locate(tree, target)
	if err != nil {
		return err
	}
	xyz := id.XYZ()
	fmt.Fprintf(cmd.OutOrStdout(), "%d\tdepth=%d\txyz=%d,%d,%d\t%s\n", id.Morton(), id.Depth(), xyz[0], xyz[1], xyz[2], cube)
	return nil
}
