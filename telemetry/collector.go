package telemetry

import "log/slog"

// Collector accumulates samples and produces a Summary.
type Collector struct {
	percentiles []float64
	logSamples  bool

	values     []float64
	counts     map[SampleKind]int
	violations int
	failed     []Sample
}

// maxFailed bounds how many failing samples are kept for reporting.
const maxFailed = 32

// NewCollector creates a new sample collector.
// percentiles: quantiles to report, each in [0, 1]
// logSamples: log every recorded sample via slog
func NewCollector(percentiles []float64, logSamples bool) *Collector {
	return &Collector{
		percentiles: percentiles,
		logSamples:  logSamples,
		counts:      make(map[SampleKind]int),
	}
}

// Record adds a sample.
func (c *Collector) Record(s Sample) {
	c.values = append(c.values, s.Radians.Float())
	c.counts[s.Kind]++

	if !s.OK() {
		c.violations++
		if len(c.failed) < maxFailed {
			c.failed = append(c.failed, s)
		}
		slog.Warn("property violated", "sample", s)
	} else if c.logSamples {
		slog.Info("sample", "sample", s)
	}
}

// Count returns the number of samples recorded for kind.
func (c *Collector) Count(kind SampleKind) int {
	return c.counts[kind]
}

// Violations returns the number of samples that broke a property.
func (c *Collector) Violations() int {
	return c.violations
}

// Failed returns up to maxFailed failing samples, in recording order.
func (c *Collector) Failed() []Sample {
	return c.failed
}

// Summary computes statistics over everything recorded so far.
func (c *Collector) Summary() Summary {
	s := Summarize(c.values, c.percentiles)
	s.Violations = c.violations
	s.GridCount = c.counts[KindGrid]
	s.RandomCount = c.counts[KindRandom]
	s.BoundaryCount = c.counts[KindBoundary]
	s.ScaleCount = c.counts[KindScale]
	return s
}
