// Package sweep drives unit.Radian over generated inputs and checks its
// normalization properties on every sample.
package sweep

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/pthm-cable/radian/config"
	"github.com/pthm-cable/radian/telemetry"
	"github.com/pthm-cable/radian/unit"
)

// Result is the outcome of a sweep.
type Result struct {
	Summary telemetry.Summary
	Failed  []telemetry.Sample
}

// OK reports whether no sample violated a property.
func (r Result) OK() bool {
	return r.Summary.Violations == 0
}

// Boundaries returns the edge inputs every sweep checks.
func Boundaries() []float64 {
	return []float64{
		0,
		math.Copysign(0, -1),
		math.Pi, -math.Pi,
		unit.Tau, -unit.Tau,
		unit.MaxRadian.Float(), -unit.MaxRadian.Float(),
		unit.MinPositive, -unit.MinPositive,
		math.SmallestNonzeroFloat64, -math.SmallestNonzeroFloat64,
		math.MaxFloat64, -math.MaxFloat64,
		math.Inf(1), math.Inf(-1),
		math.NaN(),
	}
}

// Grid returns steps evenly spaced inputs from lo to hi, each shifted by offset.
func Grid(lo, hi float64, steps int, offset unit.Radian) []float64 {
	if steps < 2 {
		return nil
	}
	out := make([]float64, steps)
	span := hi - lo
	for i := range out {
		out[i] = lo + span*float64(i)/float64(steps-1) + offset.Float()
	}
	return out
}

// Random returns n inputs drawn uniformly from [-scale, scale).
func Random(rng *rand.Rand, n int, scale float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * scale
	}
	return out
}

// Check normalizes x and records which properties held.
func Check(kind telemetry.SampleKind, x float64) telemetry.Sample {
	r := unit.FromFloat(x)
	v := r.Float()

	exact := true
	switch {
	case math.IsNaN(x) || math.IsInf(x, 0):
		exact = v == 0
	case x >= 0 && x < unit.Tau:
		exact = v == x
	}

	return telemetry.Sample{
		Kind:       kind,
		Input:      x,
		Radians:    r,
		Turns:      turns(x),
		InRange:    inRange(v),
		Idempotent: unit.FromFloat(v) == r,
		Exact:      exact,
	}
}

// CheckScale scales start by f and records which properties held.
func CheckScale(start unit.Radian, f float64) telemetry.Sample {
	before := start.Float()
	r := start
	r.Scale(f)
	v := r.Float()

	return telemetry.Sample{
		Kind:       telemetry.KindScale,
		Input:      before,
		Factor:     f,
		Radians:    r,
		Turns:      turns(before * f),
		InRange:    inRange(v),
		Idempotent: unit.FromFloat(v) == r,
		Exact:      r == unit.FromFloat(before*f),
	}
}

// Run checks grid, random, boundary and scaled inputs as configured.
// Samples are streamed to om when it is non-nil.
func Run(cfg *config.Config, rng *rand.Rand, om *telemetry.OutputManager) (Result, error) {
	c := telemetry.NewCollector(cfg.Telemetry.Percentiles, cfg.Telemetry.LogSamples)

	grid := Grid(cfg.Sweep.Min, cfg.Sweep.Max, cfg.Sweep.Steps, cfg.Sweep.Offset)

	phases := []struct {
		kind   telemetry.SampleKind
		inputs []float64
	}{
		{telemetry.KindGrid, grid},
		{telemetry.KindRandom, Random(rng, cfg.Sweep.Random, cfg.Sweep.RandomScale)},
		{telemetry.KindBoundary, Boundaries()},
	}

	for _, ph := range phases {
		batch := make([]telemetry.Sample, 0, len(ph.inputs))
		for _, x := range ph.inputs {
			s := Check(ph.kind, x)
			c.Record(s)
			batch = append(batch, s)
		}
		if err := om.WriteSamples(batch); err != nil {
			return Result{}, fmt.Errorf("%s phase: %w", ph.kind, err)
		}
		slog.Debug("phase complete", "kind", ph.kind, "samples", len(batch))
	}

	for _, f := range cfg.Scale.Factors {
		batch := make([]telemetry.Sample, 0, len(grid))
		for _, x := range grid {
			s := CheckScale(unit.FromFloat(x), f)
			c.Record(s)
			batch = append(batch, s)
		}
		if err := om.WriteSamples(batch); err != nil {
			return Result{}, fmt.Errorf("scale phase (factor %v): %w", f, err)
		}
		slog.Debug("scale factor complete", "factor", f, "samples", len(batch))
	}

	return Result{Summary: c.Summary(), Failed: c.Failed()}, nil
}

// inRange rejects negative zero as well as values outside [0, Tau).
func inRange(v float64) bool {
	return v >= 0 && v < unit.Tau && !math.Signbit(v)
}

func turns(x float64) float64 {
	return math.Floor(x / unit.Tau)
}
