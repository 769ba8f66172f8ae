package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/radian/unit"
)

// SampleKind identifies how a sample input was produced.
type SampleKind string

const (
	KindGrid     SampleKind = "grid"
	KindRandom   SampleKind = "random"
	KindBoundary SampleKind = "boundary"
	KindScale    SampleKind = "scale"
)

// Sample is one checked normalization.
// For scale samples, Input is the angle before scaling and Factor the multiplier.
type Sample struct {
	Kind    SampleKind  `csv:"kind"`
	Input   float64     `csv:"input"`
	Factor  float64     `csv:"factor"`
	Radians unit.Radian `csv:"radians"`
	Turns   float64     `csv:"turns"` // whole turns removed by normalization

	InRange    bool `csv:"in_range"`
	Idempotent bool `csv:"idempotent"`
	Exact      bool `csv:"exact"` // identity on canonical input, or agreement with FromFloat after scaling
}

// OK reports whether every property held.
func (s Sample) OK() bool {
	return s.InRange && s.Idempotent && s.Exact
}

// LogValue implements slog.LogValuer for structured logging.
func (s Sample) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(s.Kind)),
		slog.Float64("input", s.Input),
		slog.Float64("factor", s.Factor),
		slog.Float64("radians", s.Radians.Float()),
		slog.Float64("turns", s.Turns),
		slog.Bool("in_range", s.InRange),
		slog.Bool("idempotent", s.Idempotent),
		slog.Bool("exact", s.Exact),
	)
}
