package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sartorproj/bitcorr/bitstream"
	"github.com/sartorproj/bitcorr/log"
	"github.com/sartorproj/bitcorr/suite"
	"github.com/sartorproj/bitcorr/timeaxis"
)

type stubRunner struct {
	mu    sync.Mutex
	calls []string
}

func (s *stubRunner) Run(_ context.Context, executable string, args []string, inputPath string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, executable+" "+inputPath)
	if executable == "dieharder" {
		return "", errors.New("dieharder: not installed")
	}
	return "report of " + inputPath, nil
}

type stubRenderer struct {
	mu     sync.Mutex
	titles []string
	axes   []*timeaxis.Axis
}

func (s *stubRenderer) Render(w io.Writer, acf []float64, axis *timeaxis.Axis, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles = append(s.titles, title)
	s.axes = append(s.axes, axis)
	_, err := fmt.Fprintf(w, "%d values", len(acf))
	return err
}

func writeLog(t *testing.T, dir, name string, bits string) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("RNG capture\n")
	for i, c := range bits {
		fmt.Fprintf(&sb, "[%d] sample Items: %c\n", i, c)
		if i%3 == 0 {
			sb.WriteString("status ok\n")
		}
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.InputDir = filepath.Join(root, "input")
	cfg.ASCIIDir = filepath.Join(root, "ascii")
	cfg.BinaryDir = filepath.Join(root, "binary")
	if err := os.MkdirAll(cfg.InputDir, 0755); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestProcess(t *testing.T) {
	cfg := testConfig(t)
	cfg.PlotDir = filepath.Join(filepath.Dir(cfg.InputDir), "plots")
	cfg.ClockMHz = 1
	cfg.MaxLag = 4
	input := writeLog(t, cfg.InputDir, "1.txt", "1011")

	runner := &stubRunner{}
	renderer := &stubRenderer{}
	a := New(cfg, runner, renderer, log.NewTestLogger(t))

	res, err := a.Process(context.Background(), input)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	ascii, err := os.ReadFile(res.ASCIIPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(ascii) != "1011" {
		t.Errorf("Expected ASCII 1011, got %q", ascii)
	}
	packed, err := os.ReadFile(res.BinaryPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(packed, []byte{0xB0}) {
		t.Errorf("Expected packed b0, got %x", packed)
	}

	if res.Bits != 4 {
		t.Errorf("Expected 4 bits, got %d", res.Bits)
	}
	// maxLag 4 clamps to n-1 = 3
	if len(res.ACF) != 4 || math.Abs(res.ACF[0]-1) > 1e-9 {
		t.Errorf("Unexpected ACF %v", res.ACF)
	}
	if res.Basic == nil || res.Basic.Bits != 8 {
		t.Errorf("Expected basic parameters over 8 unpacked bits, got %+v", res.Basic)
	}
	if res.LjungBox != nil || res.BoxPierce != nil {
		t.Errorf("Expected no whiteness tests on 4 bits, got %+v %+v", res.LjungBox, res.BoxPierce)
	}
	if res.Axis == nil || res.Axis.Unit.Label != "µs" {
		t.Errorf("Expected µs axis for 3 lags at 1 MHz, got %+v", res.Axis)
	}

	plot, err := os.ReadFile(res.PlotPath)
	if err != nil {
		t.Fatalf("Expected plot file: %v", err)
	}
	if string(plot) != "4 values" {
		t.Errorf("Unexpected plot content %q", plot)
	}
	expectedTitle := "Autocorrelation: " + res.ASCIIPath + " (n=4, max_lag=3, f_clk=1 MHz)"
	if diff := cmp.Diff([]string{expectedTitle}, renderer.titles); diff != "" {
		t.Errorf("title mismatch (-want +got):\n%s", diff)
	}

	if len(res.Reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(res.Reports))
	}
	if res.Reports[0].Output != "report of "+res.BinaryPath || res.Reports[0].Err != nil {
		t.Errorf("Unexpected ent report %+v", res.Reports[0])
	}
	if res.Reports[1].Err == nil {
		t.Error("Expected dieharder failure to be recorded")
	}
}

func TestProcessEmptyLog(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(cfg.InputDir, "empty.txt")
	if err := os.WriteFile(path, []byte("nothing\nItems: 9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	runner := &stubRunner{}
	a := New(cfg, runner, nil, log.NewTestLogger(t))

	if _, err := a.Process(context.Background(), path); !errors.Is(err, bitstream.ErrEmptyInput) {
		t.Fatalf("Expected ErrEmptyInput, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("Suites must not run on empty input, got %v", runner.calls)
	}
}

func TestProcessNoCollaborators(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxLag = 0
	cfg.UseFFT = true
	input := writeLog(t, cfg.InputDir, "long.txt", strings.Repeat("0110100110010110", 20))

	res, err := New(cfg, nil, nil, log.Discard()).Process(context.Background(), input)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	// 320 bits -> default max lag 32
	if len(res.ACF) != 33 {
		t.Errorf("Expected 33 ACF values, got %d", len(res.ACF))
	}
	if res.Axis != nil || res.PlotPath != "" || res.Reports != nil {
		t.Errorf("Expected no axis, plot or reports, got %+v", res)
	}
	if res.LjungBox == nil || res.BoxPierce == nil {
		t.Fatal("Expected whiteness tests on 320 bits")
	}
	if res.LjungBox.Lags != 10 || res.LjungBox.Statistic < res.BoxPierce.Statistic {
		t.Errorf("Unexpected whiteness results %+v %+v", res.LjungBox, res.BoxPierce)
	}
	// A repeated 16-bit block is far from white.
	if res.LjungBox.PValue > 0.05 {
		t.Errorf("Expected a periodic stream to fail Ljung-Box, p = %f", res.LjungBox.PValue)
	}
}

func TestProcessDefaultPlotFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.PlotDir = filepath.Join(filepath.Dir(cfg.InputDir), "plots")
	cfg.PlotFormat = ""
	input := writeLog(t, cfg.InputDir, "7.txt", "10110010")

	res, err := New(cfg, nil, &stubRenderer{}, log.NewTestLogger(t)).Process(context.Background(), input)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if expected := filepath.Join(cfg.PlotDir, "7.png"); res.PlotPath != expected {
		t.Errorf("Expected plot at %s, got %s", expected, res.PlotPath)
	}
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.Workers = 3
	cfg.Suites = nil
	for i := 0; i < 5; i++ {
		writeLog(t, cfg.InputDir, fmt.Sprintf("%d.txt", i), strings.Repeat("10", i+2))
	}
	// Not selected by the glob.
	if err := os.WriteFile(filepath.Join(cfg.InputDir, "notes.md"), []byte("Items: 1"), 0644); err != nil {
		t.Fatal(err)
	}

	a := New(cfg, nil, nil, log.NewTestLogger(t))
	inputs, err := a.Inputs()
	if err != nil {
		t.Fatal(err)
	}
	if len(inputs) != 5 {
		t.Fatalf("Expected 5 inputs, got %v", inputs)
	}

	results, err := a.Run(context.Background(), inputs)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for i, res := range results {
		if res.Input != inputs[i] {
			t.Errorf("Result %d is for %s, expected %s", i, res.Input, inputs[i])
		}
		if res.Bits != 2*(i+2) {
			t.Errorf("Result %d: expected %d bits, got %d", i, 2*(i+2), res.Bits)
		}
	}
}

func TestRunFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Suites = nil
	good := writeLog(t, cfg.InputDir, "good.txt", "1100")
	bad := filepath.Join(cfg.InputDir, "bad.txt")
	if err := os.WriteFile(bad, []byte("no bits\n"), 0644); err != nil {
		t.Fatal(err)
	}
	inputs := []string{bad, good}

	a := New(cfg, nil, nil, log.NewTestLogger(t))
	if _, err := a.Run(context.Background(), inputs); !errors.Is(err, bitstream.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}

	cfg.KeepGoing = true
	results, err := a.Run(context.Background(), inputs)
	if err != nil {
		t.Fatalf("KeepGoing run failed: %v", err)
	}
	if !errors.Is(results[0].Err, bitstream.ErrEmptyInput) {
		t.Errorf("Expected recorded ErrEmptyInput, got %v", results[0].Err)
	}
	if results[1].Err != nil || results[1].Bits != 4 {
		t.Errorf("Expected good result, got %+v", results[1])
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		clock    float64
		expected string
	}{
		{0, "Autocorrelation: a.txt (n=100, max_lag=10)"},
		{1.5, "Autocorrelation: a.txt (n=100, max_lag=10, f_clk=1.5 MHz)"},
	}
	for _, tt := range tests {
		if got := Title("a.txt", 100, 10, tt.clock); got != tt.expected {
			t.Errorf("Title = %q, expected %q", got, tt.expected)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Field != "Items" || cfg.MaxLag != 512 || cfg.Workers != 1 {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if len(cfg.Suites) != len(suite.Defaults()) {
		t.Errorf("Expected default suites, got %v", cfg.Suites)
	}
}
