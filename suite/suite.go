// Package suite runs external statistical test suites on packed bit files.
//
// The suites themselves (ent, dieharder, ...) are opaque processes: they
// receive the path of a packed binary file and print a report. This package
// only launches them and captures what they print.
package suite

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// Runner produces a report by running executable with args and inputPath.
type Runner interface {
	Run(ctx context.Context, executable string, args []string, inputPath string) (string, error)
}

// Suite describes one external test program.
type Suite struct {
	Name       string
	Executable string
	Args       []string // passed before the input path
}

// Command returns the command line for inputPath, for display.
func (s Suite) Command(inputPath string) string {
	parts := append([]string{s.Executable}, s.Args...)
	return strings.Join(append(parts, inputPath), " ")
}

// Defaults returns ent for basic statistical parameters and the full
// dieharder battery reading from a file.
func Defaults() []Suite {
	return []Suite{
		{Name: "ent", Executable: "ent"},
		{Name: "dieharder", Executable: "dieharder", Args: []string{"-a", "-f"}},
	}
}

// ByName selects suites from Defaults by name.
func ByName(names []string) ([]Suite, error) {
	known := make(map[string]Suite)
	for _, s := range Defaults() {
		known[s.Name] = s
	}

	suites := make([]Suite, 0, len(names))
	for _, name := range names {
		s, ok := known[name]
		if !ok {
			return nil, errors.Newf("suite: unknown suite %q", name)
		}
		suites = append(suites, s)
	}
	return suites, nil
}

// Report is the captured output of one suite run.
type Report struct {
	Suite  Suite
	Input  string
	Output string
	Err    error
}

// RunAll runs every suite on inputPath. A failing suite is recorded in its
// report and does not stop the rest; only context cancellation ends early.
func RunAll(ctx context.Context, runner Runner, suites []Suite, inputPath string) []Report {
	reports := make([]Report, 0, len(suites))
	for _, s := range suites {
		if ctx.Err() != nil {
			reports = append(reports, Report{Suite: s, Input: inputPath, Err: ctx.Err()})
			continue
		}
		out, err := runner.Run(ctx, s.Executable, s.Args, inputPath)
		reports = append(reports, Report{
			Suite:  s,
			Input:  inputPath,
			Output: out,
			Err:    err,
		})
	}
	return reports
}

// ExecRunner runs suites as child processes. Stdout and stderr are merged
// and returned unmodified. When Stream is set, output is also copied to it
// as it arrives.
type ExecRunner struct {
	Stream io.Writer
}

var _ Runner = (*ExecRunner)(nil)

func (r *ExecRunner) Run(ctx context.Context, executable string, args []string, inputPath string) (string, error) {
	argv := append(append([]string{}, args...), inputPath)
	cmd := exec.CommandContext(ctx, executable, argv...)

	var captured bytes.Buffer
	var out io.Writer = &captured
	if r.Stream != nil {
		out = io.MultiWriter(&captured, r.Stream)
	}
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Run(); err != nil {
		return captured.String(), errors.Wrapf(err, "running %s", executable)
	}
	return captured.String(), nil
}
