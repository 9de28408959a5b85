package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/sartorproj/bitcorr/analysis"
	"github.com/sartorproj/bitcorr/bitstream"
	"github.com/sartorproj/bitcorr/render"
	"github.com/sartorproj/bitcorr/stats"
	"github.com/sartorproj/bitcorr/timeaxis"
)

func newAutocorrCmd(a *app) *cobra.Command {
	var (
		input    string
		maxLag   int
		clockMHz float64
		output   string
		useFFT   bool
	)

	cmd := &cobra.Command{
		Use:   "autocorr",
		Short: "Compute the normalized autocorrelation of an ASCII bit file",
		Long: `Compute the normalized autocorrelation of an ASCII bit file for lags
0..max-lag and optionally plot it. Lags outside the 95% white-noise bound are
listed for both the autocorrelation and the partial autocorrelation, followed
by a Ljung-Box test over the first 10 lags.

The RNG clock sets the time axis: each lag is one clock period. A max-lag of
0 or less picks a tenth of the stream length, capped at 1024.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := bitstream.LoadASCII(input)
			if err != nil {
				return err
			}

			if maxLag <= 0 {
				maxLag = stats.DefaultMaxLag(bs.Len())
			}
			autocorrelate := stats.Autocorrelate
			if useFFT {
				autocorrelate = stats.AutocorrelateFFT
			}
			result, err := stats.ACFWithConfidence(bs, maxLag, autocorrelate)
			if err != nil {
				return err
			}
			acf := result.Values
			axis, err := timeaxis.FromClockMHz(len(acf)-1, clockMHz)
			if err != nil {
				return err
			}

			a.log.Infof("n=%d max_lag=%d time unit=%s", bs.Len(), len(acf)-1, axis.Unit.Label)
			reportLags(a, "autocorrelation", result, axis)

			pacf, err := stats.PACFWithConfidence(bs, maxLag)
			if err != nil {
				return err
			}
			reportLags(a, "partial autocorrelation", &pacf.ACFResult, axis)

			if lb, err := stats.LjungBox(bs, stats.WhitenessLags, 0); err == nil {
				a.log.Infof("Ljung-Box Q(%d) = %.4f, p = %.4g", lb.Lags, lb.Statistic, lb.PValue)
			} else {
				a.log.WithError(err).Debug("Ljung-Box skipped")
			}

			if output == "" {
				for k, v := range acf {
					a.log.Debugf("r[%d] = %f", k, v)
				}
				return nil
			}

			format := strings.TrimPrefix(filepath.Ext(output), ".")
			file, err := os.Create(output)
			if err != nil {
				return errors.Wrapf(err, "creating %s", output)
			}
			defer file.Close()

			title := analysis.Title(input, bs.Len(), len(acf)-1, clockMHz)
			if err := render.NewPlot(format).Render(file, acf, axis, title); err != nil {
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			a.log.Infof("Saved autocorrelation plot to: %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "data/output/ascii/1.txt", "ASCII bit file")
	cmd.Flags().IntVarP(&maxLag, "max-lag", "m", 512, "maximum lag for autocorrelation")
	cmd.Flags().Float64Var(&clockMHz, "clock-mhz", 0, "clock frequency that clocks the RNG, in MHz")
	cmd.Flags().StringVarP(&output, "output", "o", "", "plot path; the extension selects png, svg or pdf")
	cmd.Flags().BoolVar(&useFFT, "fft", false, "compute with the FFT")
	cmd.MarkFlagRequired("clock-mhz")
	return cmd
}

// reportLags prints the lags of result outside its confidence bounds.
func reportLags(a *app, name string, result *stats.ACFResult, axis *timeaxis.Axis) {
	significant := result.Significant()
	a.log.Infof("%s lags outside ±%.4f: %d", name, result.ConfBounds, len(significant))
	for _, k := range significant {
		a.log.Infof("  lag %d (%.4g %s): %+.4f", k, axis.LagToTime(float64(k)), axis.Unit.Label, result.Values[k])
	}
}
