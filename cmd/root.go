package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "exrtool",
	Short: "Linear-to-display color pipeline for HDR image sequences",
	Long: `exrtool turns scene-referred linear RGBA32F frames into display-ready
8-bit previews: exposure, an optional 3D LUT, gamma, and sRGB encoding in
one pass, plus .cube LUT generation/parsing/sampling and a batch driver
for running the pipeline over a whole directory of frames.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"exrtool %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[exrtool] "+format+"\n", args...)
	}
}
