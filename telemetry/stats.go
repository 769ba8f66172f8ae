package telemetry

import (
	"fmt"
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds aggregated statistics for an audit run.
type Summary struct {
	Samples    int `csv:"samples" json:"samples"`
	Violations int `csv:"violations" json:"violations"`

	// Per-kind counts
	GridCount     int `csv:"grid" json:"grid"`
	RandomCount   int `csv:"random" json:"random"`
	BoundaryCount int `csv:"boundary" json:"boundary"`
	ScaleCount    int `csv:"scale" json:"scale"`

	// Distribution of normalized values
	Min  float64 `csv:"min" json:"min"`
	Max  float64 `csv:"max" json:"max"`
	Mean float64 `csv:"mean" json:"mean"`
	Std  float64 `csv:"std" json:"std"`

	Percentiles []float64 `csv:"-" json:"percentiles"`
	Quantiles   []float64 `csv:"-" json:"quantiles"` // Quantiles[i] is the value at Percentiles[i]
}

// Quantile returns the empirical p-quantile of sorted.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	switch {
	case !(p > 0): // NaN included
		p = 0
	case p > 1:
		p = 1
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Summarize calculates range, mean, standard deviation and quantiles of values.
func Summarize(values []float64, percentiles []float64) Summary {
	s := Summary{
		Samples:     len(values),
		Percentiles: percentiles,
		Quantiles:   make([]float64, len(percentiles)),
	}
	if len(values) == 0 {
		return s
	}

	s.Min = floats.Min(values)
	s.Max = floats.Max(values)

	if len(values) > 1 {
		s.Mean, s.Std = stat.MeanStdDev(values, nil)
	} else {
		s.Mean = values[0]
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	for i, p := range percentiles {
		s.Quantiles[i] = Quantile(sorted, p)
	}

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("samples", s.Samples),
		slog.Int("violations", s.Violations),
		slog.Int("grid", s.GridCount),
		slog.Int("random", s.RandomCount),
		slog.Int("boundary", s.BoundaryCount),
		slog.Int("scale", s.ScaleCount),
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
	}
	for i, p := range s.Percentiles {
		attrs = append(attrs, slog.Float64(percentileKey(p), s.Quantiles[i]))
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the summary using slog.
func (s Summary) LogStats() {
	slog.Info("summary", "stats", s)
}

func percentileKey(p float64) string {
	return fmt.Sprintf("p%g", p*100)
}
