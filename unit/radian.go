package unit

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Tau is one full turn in radians.
const Tau = 2 * math.Pi

// Radian is an angle in radians, always within [0, Tau).
type Radian struct {
	p PositiveFloat
}

var (
	// MinRadian is the smallest radian value (zero).
	MinRadian = Radian{p: PositiveMin}
	// MaxRadian is the largest float64 strictly below Tau.
	MaxRadian = Radian{p: NewPositiveFloat(math.Nextafter(Tau, 0))}
)

// FromFloat normalizes x into [0, Tau).
// Values already in range are kept exactly. NaN and infinities map to zero.
func FromFloat(x float64) Radian {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return MinRadian
	}
	if x == 0 {
		// drops the sign of -0
		return MinRadian
	}
	if x > 0 && x < Tau {
		return Radian{p: NewPositiveFloat(x)}
	}

	m := math.Mod(x, Tau)
	if x < 0 {
		m = math.Mod(m+Tau, Tau)
	}
	return Radian{p: NewPositiveFloat(m)}
}

// NewRadian is like FromFloat but rejects NaN and infinities.
func NewRadian(x float64) (Radian, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Radian{}, fmt.Errorf("radian %v: %w", x, ErrNotFinite)
	}
	return FromFloat(x), nil
}

// Scale multiplies the angle by f and normalizes the product.
func (r *Radian) Scale(f float64) {
	*r = FromFloat(r.Float() * f)
}

// Scaled returns a copy of r scaled by f.
func (r Radian) Scaled(f float64) Radian {
	r.Scale(f)
	return r
}

// Float returns the angle in radians.
func (r Radian) Float() float64 {
	return r.p.Float()
}

// Positive returns the underlying non-negative value.
func (r Radian) Positive() PositiveFloat {
	return r.p
}

func (r Radian) String() string {
	return formatFloat(r.Float()) + "rad"
}

// MarshalJSON implements json.Marshaler.
func (r Radian) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Float())
}

// UnmarshalJSON implements json.Unmarshaler. The decoded value is normalized.
func (r *Radian) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	v, err := NewRadian(f)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r Radian) MarshalYAML() (interface{}, error) {
	return r.Float(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. The decoded value is normalized.
func (r *Radian) UnmarshalYAML(value *yaml.Node) error {
	var f float64
	if err := value.Decode(&f); err != nil {
		return err
	}
	v, err := NewRadian(f)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (r Radian) MarshalCSV() (string, error) {
	return formatFloat(r.Float()), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller. The decoded value is normalized.
func (r *Radian) UnmarshalCSV(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing radian: %w", err)
	}
	v, err := NewRadian(f)
	if err != nil {
		return err
	}
	*r = v
	return nil
}
