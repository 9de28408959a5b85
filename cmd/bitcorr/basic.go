package main

import (
	"github.com/spf13/cobra"

	"github.com/sartorproj/bitcorr/bitstream"
	"github.com/sartorproj/bitcorr/stats"
)

func newBasicCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "basic <binary file>",
		Short: "Print bias, entropy and max lag correlation of a packed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			packed, err := bitstream.LoadPacked(path)
			if err != nil {
				return err
			}
			basic, err := stats.Analyze(packed)
			if err != nil {
				return err
			}

			a.log.Infof("File: %s", path)
			a.log.Infof("bias: %v", basic.Bias)
			a.log.Infof("entropy: %v", basic.Entropy)
			a.log.Infof("max autocorr: %v", basic.MaxAbsAutocorr)
			return nil
		},
	}
}
