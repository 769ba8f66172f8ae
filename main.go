package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pthm-cable/radian/config"
	"github.com/pthm-cable/radian/sweep"
	"github.com/pthm-cable/radian/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, report and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logSamples := flag.Bool("log-samples", false, "Log every sample via slog")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *logSamples {
		cfg.Telemetry.LogSamples = true
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	slog.Info("starting sweep",
		"seed", rngSeed,
		"steps", cfg.Sweep.Steps,
		"random", cfg.Sweep.Random,
		"factors", cfg.Scale.Factors,
		"output_dir", om.Dir(),
	)

	res, err := sweep.Run(cfg, rand.New(rand.NewSource(rngSeed)), om)
	if err != nil {
		slog.Error("sweep failed", "error", err)
		if err := om.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
		os.Exit(1)
	}

	res.Summary.LogStats()
	if err := om.WriteSummary(res.Summary); err != nil {
		slog.Error("failed to write summary", "error", err)
	}
	if err := om.WriteReport(telemetry.Report{Seed: rngSeed, Summary: res.Summary}); err != nil {
		slog.Error("failed to write report", "error", err)
	}
	if err := om.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}

	if !res.OK() {
		for _, s := range res.Failed {
			slog.Error("violation", "sample", s)
		}
		os.Exit(1)
	}
}
