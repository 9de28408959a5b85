// bitcorr decodes hardware RNG logs and analyzes the resulting bitstreams.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sartorproj/bitcorr/log"
)

// app carries state shared by all subcommands.
type app struct {
	verbose bool
	log     *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "bitcorr",
		Short: "Analyze bitstreams from a hardware random number source",
		Long: `bitcorr turns RNG logs into bitstreams and checks their statistical quality.

Lines of the form "Items: 0" or "Items: 1" each contribute one bit; all other
lines are ignored. Decoded bits are written as an ASCII file and as a packed
binary file (MSB first), which external suites such as ent and dieharder read.

Commands:
  decode     Decode logs into ASCII and packed binary files
  autocorr   Normalized autocorrelation of an ASCII bit file
  basic      Bias, entropy and lag correlation of a packed file
  run        Full pipeline over an input directory`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = log.New(cmd.OutOrStdout(), a.verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log with timestamps, levels and fields")

	rootCmd.AddCommand(
		newDecodeCmd(a),
		newAutocorrCmd(a),
		newBasicCmd(a),
		newRunCmd(a),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
