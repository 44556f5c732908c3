package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sugi-cho/EXR-Tool/internal/colorcore"
)

var validateCmd = &cobra.Command{
	Use:   "validate <in.cube>",
	Short: "Parse a .cube file and report its shaper/cube sizes",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	lut, err := colorcore.ParseCube(f)
	if err != nil {
		fmt.Printf("  ✗ %s is invalid: %v\n", path, err)
		return err
	}

	fmt.Printf("  ✓ %s is valid\n", path)
	if lut.ShaperSize() > 0 {
		fmt.Printf("  ✓ 1D shaper: %d entries\n", lut.ShaperSize())
	}
	if lut.CubeSize() > 0 {
		n := lut.CubeSize()
		fmt.Printf("  ✓ 3D cube: %d^3 = %d entries\n", n, n*n*n)
	}
	return nil
}
