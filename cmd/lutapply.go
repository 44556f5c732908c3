package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sugi-cho/EXR-Tool/internal/colorcore"
)

var lutapplyCmd = &cobra.Command{
	Use:   "lutapply <in.cube> <r> <g> <b>",
	Short: "Sample a parsed .cube LUT at one RGB triplet",
	Long:  `Debug aid: parses in.cube and prints the output of applying its shaper/cube to one input triplet in [0,1].`,
	Args:  cobra.ExactArgs(4),
	RunE:  runLutapply,
}

func init() {
	rootCmd.AddCommand(lutapplyCmd)
}

func runLutapply(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	lut, err := colorcore.ParseCube(f)
	if err != nil {
		return fmt.Errorf("parse cube: %w", err)
	}

	var rgb [3]float32
	for i, s := range args[1:4] {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return fmt.Errorf("parse channel %d (%q): %w", i, s, err)
		}
		rgb[i] = float32(v)
	}

	out := lut.Apply(rgb)
	fmt.Printf("shaper=%d cube=%d\n", lut.ShaperSize(), lut.CubeSize())
	fmt.Printf("%.6f %.6f %.6f -> %.6f %.6f %.6f\n", rgb[0], rgb[1], rgb[2], out[0], out[1], out[2])
	return nil
}
