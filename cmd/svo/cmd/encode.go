package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aweris/svo"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <x> <y> <z> <depth>",
	Short: "Encode grid coordinates into an octant id",
	Long:  "Encode the grid coordinates of an octant at the given depth into its Morton-coded id.",
	Args:  cobra.ExactArgs(4),
	RunE:  runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	var xyz [3]int32
	for i, arg := range args[:3] {
		v, err := strconv.ParseInt(arg, 10, 32)
		if err != nil {
			return fmt.Errorf("parse %s: %w", svo.Axis(i), err)
		}
		xyz[i] = int32(v)
	}
	depth, err := strconv.ParseUint(args[3], 10, 8)
	if err != nil {
		return fmt.Errorf("parse depth: %w", err)
	}

	valid, err := svo.ValidateXYZ(xyz, svo.Depth(depth))
	if err != nil {
		return err
	}
	id, err := svo.FromXYZArray(valid, svo.Depth(depth))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), id.Morton())
	return nil
}
