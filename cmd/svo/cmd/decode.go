package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aweris/svo"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <id>...",
	Short: "Decode octant ids",
	Long:  "Print the depth, grid coordinates, parent and placement of each octant id.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, id := range ids {
		xyz := id.XYZ()
		placement := "-"
		if p, ok := id.Placement(); ok {
			placement = p.String()
		}
		fmt.Fprintf(out, "%d\tdepth=%d\txyz=%d,%d,%d\tparent=%d\tplacement=%s\n",
			id.Morton(), id.Depth(), xyz[0], xyz[1], xyz[2], id.Parent().Morton(), placement)
	}
	return nil
}

func parseIDs(args []string) ([]svo.OctantID, error) {
	ids := make([]svo.OctantID, 0, len(args))
	for _, arg := range args {
		code, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse id %q: %w", arg, err)
		}
		id := svo.FromMortonCode(code)
		if !id.IsValid() || id.Depth() > svo.MaxDepth {
			return nil, fmt.Errorf("id %q: %w", arg, svo.ErrInvalidOctantID)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
