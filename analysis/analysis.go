// Package analysis runs the decode-and-analyze pipeline over RNG log files.
package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sartorproj/bitcorr/bitstream"
	"github.com/sartorproj/bitcorr/render"
	"github.com/sartorproj/bitcorr/stats"
	"github.com/sartorproj/bitcorr/suite"
	"github.com/sartorproj/bitcorr/timeaxis"
)

// Result holds everything produced for one input log.
type Result struct {
	Input      string
	ASCIIPath  string
	BinaryPath string
	PlotPath   string // empty when no plot was drawn
	Bits       int
	Basic      *stats.Basic
	ACF        []float64
	LjungBox   *stats.LjungBoxResult  // nil for streams too short to test
	BoxPierce  *stats.BoxPierceResult // nil for streams too short to test
	Axis       *timeaxis.Axis // nil without a clock
	Reports    []suite.Report
	Err        error // set only in KeepGoing batches
}

// Analyzer runs the pipeline with its collaborators.
// runner and renderer may be nil to skip suites or plotting.
type Analyzer struct {
	cfg      *Config
	runner   suite.Runner
	renderer render.Renderer
	log      logrus.FieldLogger
}

// New creates an analyzer. A nil config uses DefaultConfig.
func New(cfg *Config, runner suite.Runner, renderer render.Renderer, logger logrus.FieldLogger) *Analyzer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Analyzer{
		cfg:      cfg,
		runner:   runner,
		renderer: renderer,
		log:      logger,
	}
}

// Inputs lists the logs matching InputGlob in InputDir, sorted by name.
func (a *Analyzer) Inputs() ([]string, error) {
	pattern := filepath.Join(a.cfg.InputDir, a.cfg.InputGlob)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

// Run processes inputs with up to Workers files in flight. Results are
// returned in input order. Without KeepGoing the first failure cancels the
// remaining work and is returned; with it, failures are stored per Result.
func (a *Analyzer) Run(ctx context.Context, inputs []string) ([]*Result, error) {
	results := make([]*Result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, a.cfg.Workers))

	for i, input := range inputs {
		g.Go(func() error {
			res, err := a.Process(ctx, input)
			if err != nil {
				if !a.cfg.KeepGoing {
					return err
				}
				a.log.WithField("input", input).WithError(err).Warn("analysis failed")
				res = &Result{Input: input, Err: err}
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Process runs the whole pipeline for a single log file.
func (a *Analyzer) Process(ctx context.Context, input string) (*Result, error) {
	logger := a.log.WithField("input", input)
	opts := a.cfg.fileOptions()

	d, err := bitstream.LoadLog(input, opts)
	if err != nil {
		return nil, err
	}
	bs, err := d.Bitstream()
	if err != nil {
		return nil, errors.Wrapf(err, "%s", input)
	}
	bs.Name = input

	res := &Result{Input: input, Bits: bs.Len()}
	res.ASCIIPath, res.BinaryPath = bitstream.OutputPaths(input, a.cfg.ASCIIDir, a.cfg.BinaryDir, opts)
	if err := a.write(res, d); err != nil {
		return nil, err
	}
	logger.WithField("bits", res.Bits).Infof("Processed %s", input)
	logger.Infof("  ASCII output: %s", res.ASCIIPath)
	logger.Infof("  Binary output: %s", res.BinaryPath)

	if res.Basic, err = stats.Analyze(d.Packed); err != nil {
		return nil, errors.Wrapf(err, "basic parameters of %s", input)
	}

	maxLag := a.cfg.MaxLag
	if maxLag <= 0 {
		maxLag = stats.DefaultMaxLag(bs.Len())
	}
	autocorrelate := stats.Autocorrelate
	if a.cfg.UseFFT {
		autocorrelate = stats.AutocorrelateFFT
	}
	if res.ACF, err = autocorrelate(bs, maxLag); err != nil {
		return nil, errors.Wrapf(err, "autocorrelation of %s", input)
	}

	if err := a.whiteness(res, bs); err != nil {
		return nil, errors.Wrapf(err, "whiteness tests of %s", input)
	}

	if a.cfg.ClockMHz > 0 {
		if res.Axis, err = timeaxis.FromClockMHz(len(res.ACF)-1, a.cfg.ClockMHz); err != nil {
			return nil, err
		}
	}

	if a.renderer != nil && a.cfg.PlotDir != "" {
		if err := a.plot(res); err != nil {
			return nil, err
		}
		logger.Infof("Saved autocorrelation plot to: %s", res.PlotPath)
	}

	if a.runner != nil && len(a.cfg.Suites) > 0 {
		res.Reports = suite.RunAll(ctx, a.runner, a.cfg.Suites, res.BinaryPath)
		for _, r := range res.Reports {
			if r.Err != nil {
				logger.WithField("suite", r.Suite.Name).WithError(r.Err).Warn("test suite failed")
			}
		}
	}

	return res, nil
}

func (a *Analyzer) whiteness(res *Result, bs *bitstream.Bitstream) error {
	var err error
	res.LjungBox, err = stats.LjungBox(bs, stats.WhitenessLags, 0)
	if errors.Is(err, stats.ErrTooShort) {
		a.log.WithField("input", res.Input).Debug("stream too short for whiteness tests")
		return nil
	}
	if err != nil {
		return err
	}
	res.BoxPierce, err = stats.BoxPierce(bs, stats.WhitenessLags, 0)
	return err
}

func (a *Analyzer) write(res *Result, d *bitstream.Decoded) error {
	for _, dir := range []string{a.cfg.ASCIIDir, a.cfg.BinaryDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}
	if err := bitstream.SaveASCII(res.ASCIIPath, d.Bits); err != nil {
		return err
	}
	return bitstream.SavePacked(res.BinaryPath, d.Packed)
}

func (a *Analyzer) plot(res *Result) error {
	if err := os.MkdirAll(a.cfg.PlotDir, 0755); err != nil {
		return errors.Wrapf(err, "creating %s", a.cfg.PlotDir)
	}

	base := strings.TrimSuffix(filepath.Base(res.Input), filepath.Ext(res.Input))
	res.PlotPath = filepath.Join(a.cfg.PlotDir, base+"."+render.FormatOrDefault(a.cfg.PlotFormat))

	file, err := os.Create(res.PlotPath)
	if err != nil {
		return errors.Wrapf(err, "creating %s", res.PlotPath)
	}
	defer file.Close()

	if err := a.renderer.Render(file, res.ACF, res.Axis, Title(res.ASCIIPath, res.Bits, len(res.ACF)-1, a.cfg.ClockMHz)); err != nil {
		return errors.Wrapf(err, "rendering %s", res.PlotPath)
	}
	return file.Close()
}

// Title builds the plot title for an autocorrelation of n bits from input.
func Title(input string, n, maxLag int, clockMHz float64) string {
	title := fmt.Sprintf("Autocorrelation: %s (n=%d, max_lag=%d", input, n, maxLag)
	if clockMHz > 0 {
		title += fmt.Sprintf(", f_clk=%g MHz", clockMHz)
	}
	return title + ")"
}
