package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/radian/config"
)

// Report is the final JSON record of an audit run.
type Report struct {
	Seed    int64   `json:"seed"`
	Summary Summary `json:"summary"`
}

// OutputManager handles structured audit output with CSV logging.
type OutputManager struct {
	dir         string
	samplesFile *os.File
	summaryFile *os.File

	// Track if headers have been written
	samplesHeaderWritten bool
	summaryHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	samplesPath := filepath.Join(dir, "samples.csv")
	f, err := os.Create(samplesPath)
	if err != nil {
		return nil, fmt.Errorf("creating samples.csv: %w", err)
	}
	om.samplesFile = f

	summaryPath := filepath.Join(dir, "summary.csv")
	f, err = os.Create(summaryPath)
	if err != nil {
		om.samplesFile.Close()
		return nil, fmt.Errorf("creating summary.csv: %w", err)
	}
	om.summaryFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteSamples appends sample records to samples.csv.
func (om *OutputManager) WriteSamples(samples []Sample) error {
	if om == nil || len(samples) == 0 {
		return nil
	}

	if !om.samplesHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(samples, om.samplesFile); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
		om.samplesHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(samples, om.samplesFile); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
	}

	return nil
}

// WriteSummary writes a summary record to summary.csv.
func (om *OutputManager) WriteSummary(s Summary) error {
	if om == nil {
		return nil
	}

	records := []Summary{s}

	if !om.summaryHeaderWritten {
		if err := gocsv.Marshal(records, om.summaryFile); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		om.summaryHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.summaryFile); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	return nil
}

// WriteReport saves the run report as JSON.
func (om *OutputManager) WriteReport(r Report) error {
	if om == nil {
		return nil
	}

	reportPath := filepath.Join(om.dir, "report.json")
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	if err := os.WriteFile(reportPath, data, 0644); err != nil {
		return fmt.Errorf("writing report.json: %w", err)
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.samplesFile != nil {
		if err := om.samplesFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.summaryFile != nil {
		if err := om.summaryFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
