package retopo

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultPrecision is the tolerance divisor used when none is given.
	DefaultPrecision = 40.0
	// DefaultJoinAngle is the largest bend, in degrees, allowed when two
	// strokes are joined into one spline.
	DefaultJoinAngle = 25.0
	// DefaultBoxMargin widens the bounding-box pre-filter by this fraction
	// of the average box extent.
	DefaultBoxMargin = 0.1
	// DefaultHashPlaces is the number of decimal places endpoint keys are
	// rounded to when remembering rejected joins.
	DefaultHashPlaces = 8
)

var (
	// ErrNoHostContext is returned when no stroke collection was supplied
	// at all. An empty collection is not an error.
	ErrNoHostContext = errors.New("retopo: no stroke data supplied")

	// ErrInvalidPrecision is returned for a precision that is not a
	// positive finite number.
	ErrInvalidPrecision = errors.New("retopo: precision must be a positive finite number")
)

// Options tune the reconstruction. The zero value is not usable; start
// from DefaultOptions.
type Options struct {
	Precision  float64 `toml:"precision"`      // tolerance divisor, larger is stricter
	JoinAngle  float64 `toml:"join_angle"`     // degrees
	BoxMargin  float64 `toml:"box_margin"`     // fraction of average box extent
	HashPlaces int     `toml:"hash_precision"` // decimal places for endpoint keys
	Join       bool    `toml:"join"`           // join collinear stroke breaks
}

// DefaultOptions returns the standard settings.
func DefaultOptions() Options {
	return Options{
		Precision:  DefaultPrecision,
		JoinAngle:  DefaultJoinAngle,
		BoxMargin:  DefaultBoxMargin,
		HashPlaces: DefaultHashPlaces,
		Join:       true,
	}
}

// Validate reports whether the options can drive a run.
func (o Options) Validate() error {
	if !(o.Precision > 0) || math.IsInf(o.Precision, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidPrecision, o.Precision)
	}
	if o.JoinAngle < 0 || o.JoinAngle > 180 {
		return fmt.Errorf("retopo: join angle %v outside [0, 180] degrees", o.JoinAngle)
	}
	if o.BoxMargin < 0 {
		return fmt.Errorf("retopo: box margin %v is negative", o.BoxMargin)
	}
	if o.HashPlaces < 0 || o.HashPlaces > 15 {
		return fmt.Errorf("retopo: hash precision %d outside [0, 15]", o.HashPlaces)
	}
	return nil
}
