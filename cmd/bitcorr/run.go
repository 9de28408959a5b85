package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sartorproj/bitcorr/analysis"
	"github.com/sartorproj/bitcorr/render"
	"github.com/sartorproj/bitcorr/suite"
)

const banner = "####################"

func newRunCmd(a *app) *cobra.Command {
	cfg := analysis.DefaultConfig()
	var suiteNames []string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Decode every log in the input directory and analyze it",
		Long: `Decode every log in the input directory, write ASCII and packed outputs,
compute basic parameters and autocorrelation, draw plots when --plot-dir is
set, and run the external test suites on each packed file.

Suite output is shown unmodified. With more than one worker it is printed
once each file is done instead of as it arrives.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			suites, err := suite.ByName(suiteNames)
			if err != nil {
				return err
			}
			cfg.Suites = suites

			// A single worker streams suite output as it arrives.
			streaming := cfg.Workers <= 1
			var runner suite.Runner = &suite.ExecRunner{}
			if streaming {
				runner = announcingRunner{
					Runner: &suite.ExecRunner{Stream: cmd.OutOrStdout()},
					app:    a,
				}
			}
			var renderer render.Renderer
			if cfg.PlotDir != "" {
				renderer = render.NewPlot(cfg.PlotFormat)
			}

			analyzer := analysis.New(cfg, runner, renderer, a.log)
			inputs, err := analyzer.Inputs()
			if err != nil {
				return err
			}
			a.log.Infof("\n%s Input files: %s\n%s\n", banner, banner, strings.Join(inputs, ", "))

			results, err := analyzer.Run(cmd.Context(), inputs)
			if err != nil {
				return err
			}
			for _, res := range results {
				printResult(a, res, !streaming)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.InputDir, "input-dir", cfg.InputDir, "directory holding RNG logs")
	flags.StringVar(&cfg.InputGlob, "glob", cfg.InputGlob, "pattern selecting logs in the input directory")
	flags.StringVar(&cfg.ASCIIDir, "ascii-dir", cfg.ASCIIDir, "directory for ASCII bit files")
	flags.StringVar(&cfg.BinaryDir, "binary-dir", cfg.BinaryDir, "directory for packed binary files")
	flags.StringVar(&cfg.PlotDir, "plot-dir", cfg.PlotDir, "directory for autocorrelation plots (disabled when empty)")
	flags.StringVar(&cfg.PlotFormat, "plot-format", cfg.PlotFormat, "plot image format: png, svg or pdf")
	flags.StringVar(&cfg.Field, "field", cfg.Field, "log key carrying the bit")
	flags.IntVarP(&cfg.MaxLag, "max-lag", "m", cfg.MaxLag, "maximum autocorrelation lag (<= 0 picks one from the stream length)")
	flags.Float64Var(&cfg.ClockMHz, "clock-mhz", cfg.ClockMHz, "RNG clock in MHz for the time axis (disabled when 0)")
	flags.BoolVar(&cfg.UseFFT, "fft", cfg.UseFFT, "compute autocorrelation with the FFT")
	flags.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "files processed concurrently")
	flags.BoolVar(&cfg.KeepGoing, "keep-going", cfg.KeepGoing, "continue with the next file when one fails")
	flags.StringSliceVar(&suiteNames, "suites", []string{"ent", "dieharder"}, "external test suites to run (empty for none)")
	return cmd
}

func printResult(a *app, res *analysis.Result, withReports bool) {
	logger := a.log.WithField("input", res.Input)
	if res.Err != nil {
		logger.WithError(res.Err).Errorf("%s failed", res.Input)
		return
	}

	logger.Infof("\n%s %s %s", banner, res.Input, banner)
	logger.Infof("bits: %d", res.Bits)
	logger.Infof("bias: %v", res.Basic.Bias)
	logger.Infof("entropy: %v", res.Basic.Entropy)
	logger.Infof("max autocorr: %v", res.Basic.MaxAbsAutocorr)
	if len(res.ACF) > 1 {
		logger.Infof("autocorrelation r[1]: %v (max_lag=%d)", res.ACF[1], len(res.ACF)-1)
	}
	if res.LjungBox != nil {
		logger.Infof("Ljung-Box Q(%d): %.4f (p = %.4g)", res.LjungBox.Lags, res.LjungBox.Statistic, res.LjungBox.PValue)
		logger.Infof("Box-Pierce Q(%d): %.4f (p = %.4g)", res.BoxPierce.Lags, res.BoxPierce.Statistic, res.BoxPierce.PValue)
	}
	if res.PlotPath != "" {
		logger.Infof("plot: %s", res.PlotPath)
	}

	if !withReports {
		return
	}
	for _, r := range res.Reports {
		command := r.Suite.Command(r.Input)
		logger.Infof("\n%s RUNNING TEST %s %s\n", banner, command, banner)
		logger.Info(r.Output)
		logger.Infof("\n%s %s TEST %s %s\n", banner, status(r.Err), command, banner)
	}
}

func status(err error) string {
	if err != nil {
		return "FAILED"
	}
	return "FINISHED"
}

// announcingRunner prints a banner around each streamed suite run.
type announcingRunner struct {
	suite.Runner
	app *app
}

func (r announcingRunner) Run(ctx context.Context, executable string, args []string, inputPath string) (string, error) {
	command := suite.Suite{Executable: executable, Args: args}.Command(inputPath)
	r.app.log.Infof("\n%s RUNNING TEST %s %s\n", banner, command, banner)
	out, err := r.Runner.Run(ctx, executable, args, inputPath)
	r.app.log.Infof("\n%s %s TEST %s %s\n", banner, status(err), command, banner)
	return out, err
}
