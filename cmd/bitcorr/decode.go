package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/sartorproj/bitcorr/bitstream"
)

func newDecodeCmd(a *app) *cobra.Command {
	var (
		inputDir  string
		asciiDir  string
		binaryDir string
		field     string
	)

	cmd := &cobra.Command{
		Use:   "decode [log files...]",
		Short: "Decode RNG logs into ASCII and packed binary files",
		Long: `Decode RNG logs into ASCII and packed binary files.

Without arguments every *.txt file in --input-dir is decoded. Logs without a
single bit line are reported and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := args
			if len(inputs) == 0 {
				matches, err := filepath.Glob(filepath.Join(inputDir, "*.txt"))
				if err != nil {
					return err
				}
				sort.Strings(matches)
				inputs = matches
			}
			a.log.Infof("Input files: %s", strings.Join(inputs, ", "))

			for _, dir := range []string{asciiDir, binaryDir} {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return errors.Wrapf(err, "creating %s", dir)
				}
			}

			opts := bitstream.DefaultOptions()
			opts.Field = field
			for _, input := range inputs {
				d, err := bitstream.LoadLog(input, opts)
				if err != nil {
					return err
				}
				if d.Len() == 0 {
					a.log.WithField("input", input).Warnf("No bits found in %s", input)
					continue
				}

				asciiPath, binaryPath := bitstream.OutputPaths(input, asciiDir, binaryDir, opts)
				if err := bitstream.SaveASCII(asciiPath, d.Bits); err != nil {
					return err
				}
				if err := bitstream.SavePacked(binaryPath, d.Packed); err != nil {
					return err
				}

				a.log.WithField("bits", d.Len()).Infof("Processed %s", input)
				a.log.Infof("  ASCII output: %s", asciiPath)
				a.log.Infof("  Binary output: %s", binaryPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inputDir, "input-dir", "data/input", "directory searched for *.txt logs when no files are given")
	cmd.Flags().StringVar(&asciiDir, "ascii-dir", "data/output/ascii", "directory for ASCII bit files")
	cmd.Flags().StringVar(&binaryDir, "binary-dir", "data/output/binary", "directory for packed binary files")
	cmd.Flags().StringVar(&field, "field", bitstream.DefaultField, "log key carrying the bit")
	return cmd
}
