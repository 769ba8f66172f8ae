// Package unit provides constrained float types for angular quantities.
//
// Values can only be obtained through constructors or decoders, so every
// PositiveFloat is non-negative and every Radian lies in [0, Tau).
package unit

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNegative is returned when decoding a negative value into a PositiveFloat.
	ErrNegative = errors.New("value is negative")
	// ErrNotFinite is returned for NaN or infinite input where a finite value is required.
	ErrNotFinite = errors.New("value is not finite")
)

// MinPositive is the smallest positive normal float64.
const MinPositive = 0x1p-1022

// PositiveFloat is a float64 that is never negative.
type PositiveFloat struct {
	v float64
}

// PositiveMin is the smallest PositiveFloat.
var PositiveMin = PositiveFloat{}

// NewPositiveFloat stores f as-is. Callers must pass f >= 0.
func NewPositiveFloat(f float64) PositiveFloat {
	return PositiveFloat{v: f}
}

// Float returns the stored value.
func (p PositiveFloat) Float() float64 {
	return p.v
}

func parsePositive(f float64) (PositiveFloat, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return PositiveFloat{}, fmt.Errorf("positive float %v: %w", f, ErrNotFinite)
	}
	if f < 0 {
		return PositiveFloat{}, fmt.Errorf("positive float %v: %w", f, ErrNegative)
	}
	return PositiveFloat{v: f}, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// MarshalJSON implements json.Marshaler.
func (p PositiveFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PositiveFloat) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	v, err := parsePositive(f)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p PositiveFloat) MarshalYAML() (interface{}, error) {
	return p.v, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PositiveFloat) UnmarshalYAML(value *yaml.Node) error {
	var f float64
	if err := value.Decode(&f); err != nil {
		return err
	}
	v, err := parsePositive(f)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (p PositiveFloat) MarshalCSV() (string, error) {
	return formatFloat(p.v), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (p *PositiveFloat) UnmarshalCSV(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing positive float: %w", err)
	}
	v, err := parsePositive(f)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
