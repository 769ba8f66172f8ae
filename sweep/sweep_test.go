package sweep

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/radian/config"
	"github.com/pthm-cable/radian/telemetry"
	"github.com/pthm-cable/radian/unit"
)

func smallConfig(t *testing.T) *config.Config {
	t.Helper()
	config.MustInit("")
	cfg := *config.Cfg()
	cfg.Sweep.Steps = 101
	cfg.Sweep.Random = 200
	cfg.Scale.Factors = []float64{-1, 0.5, 2}
	return &cfg
}

func TestGrid(t *testing.T) {
	g := Grid(-1, 1, 5, unit.MinRadian)
	want := []float64{-1, -0.5, 0, 0.5, 1}

	if len(g) != len(want) {
		t.Fatalf("len = %d, want %d", len(g), len(want))
	}
	for i := range want {
		if math.Abs(g[i]-want[i]) > 1e-12 {
			t.Errorf("g[%d] = %v, want %v", i, g[i], want[i])
		}
	}

	if Grid(0, 1, 1, unit.MinRadian) != nil {
		t.Error("expected nil grid for fewer than 2 steps")
	}
}

func TestGridOffset(t *testing.T) {
	g := Grid(0, 1, 2, unit.FromFloat(0.25))
	if g[0] != 0.25 || g[1] != 1.25 {
		t.Errorf("grid = %v, want [0.25 1.25]", g)
	}
}

func TestRandomBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, x := range Random(rng, 1000, 10) {
		if x < -10 || x >= 10 {
			t.Fatalf("random input %v outside [-10, 10)", x)
		}
	}
}

func TestRandomDeterministic(t *testing.T) {
	a := Random(rand.New(rand.NewSource(5)), 10, 1)
	b := Random(rand.New(rand.NewSource(5)), 10, 1)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed gave different inputs at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestCheckBoundaries(t *testing.T) {
	for _, x := range Boundaries() {
		s := Check(telemetry.KindBoundary, x)
		if !s.OK() {
			t.Errorf("boundary %v failed: %+v", x, s)
		}
	}
}

func TestCheckTurns(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{math.Pi, 0},
		{unit.Tau + 1, 1},
		{-1, -1},
		{-unit.Tau - 1, -2},
	}

	for _, tt := range tests {
		if got := Check(telemetry.KindGrid, tt.input).Turns; got != tt.want {
			t.Errorf("turns(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCheckScale(t *testing.T) {
	start := unit.FromFloat(math.Pi / 2)
	s := CheckScale(start, -1)

	if !s.OK() {
		t.Errorf("scale sample failed: %+v", s)
	}
	if s.Radians.Float() != unit.Tau-math.Pi/2 {
		t.Errorf("radians = %v, want %v", s.Radians.Float(), unit.Tau-math.Pi/2)
	}
	// start is passed by value and stays untouched
	if start.Float() != math.Pi/2 {
		t.Errorf("start changed to %v", start.Float())
	}
}

func TestRun(t *testing.T) {
	cfg := smallConfig(t)

	res, err := Run(cfg, rand.New(rand.NewSource(42)), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !res.OK() {
		t.Fatalf("violations: %d, first failures: %+v", res.Summary.Violations, res.Failed)
	}

	s := res.Summary
	if s.GridCount != 101 || s.RandomCount != 200 || s.BoundaryCount != len(Boundaries()) {
		t.Errorf("counts grid %d random %d boundary %d", s.GridCount, s.RandomCount, s.BoundaryCount)
	}
	if s.ScaleCount != 101*3 {
		t.Errorf("scale count = %d, want %d", s.ScaleCount, 101*3)
	}
	if s.Min < 0 || s.Max >= unit.Tau {
		t.Errorf("range [%v, %v] outside [0, Tau)", s.Min, s.Max)
	}
}

func TestRunRejectedConfigNeverReachesQuantile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("telemetry:\n  percentiles: [.nan]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected NaN percentile to be rejected")
	}

	// Summaries stay panic-free even if a config is built by hand.
	cfg := smallConfig(t)
	cfg.Telemetry.Percentiles = []float64{math.NaN()}
	res, err := Run(cfg, rand.New(rand.NewSource(3)), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Summary.Quantiles[0] != res.Summary.Min {
		t.Errorf("NaN percentile = %v, want min %v", res.Summary.Quantiles[0], res.Summary.Min)
	}
}

func TestRunWritesSamples(t *testing.T) {
	cfg := smallConfig(t)
	dir := t.TempDir()

	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	res, err := Run(cfg, rand.New(rand.NewSource(1)), om)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "samples.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Count(string(data), "\n")
	// header plus one line per sample
	if lines != res.Summary.Samples+1 {
		t.Errorf("samples.csv has %d lines, want %d", lines, res.Summary.Samples+1)
	}
}
