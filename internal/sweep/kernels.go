package sweep

import (
	"fmt"
	"math"

	"github.com/san-kum/iqmath/iq"
)

// Bounded is implemented by kernels whose inputs must stay inside a range
// narrower than int64.
type Bounded interface {
	Bounds() (lo, hi int64)
}

const fullTurn = float64(iq.One)

func toRadians(theta int64) float64 {
	return float64(theta) / fullTurn * 2 * math.Pi
}

// angleError folds out-ref onto [-One/2, One/2).
func angleError(out int64, ref float64) float64 {
	d := math.Mod(float64(out)-ref, fullTurn)
	if d >= fullTurn/2 {
		d -= fullTurn
	} else if d < -fullTurn/2 {
		d += fullTurn
	}
	return d
}

const (
	// MaxAtan2Radius keeps the CORDIC gain of 1.65 inside int32.
	MaxAtan2Radius = 1 << 29
	// MaxMagnitudeRadius keeps x*x + y*y inside the uint32 Sqrt input.
	MaxMagnitudeRadius = 32768
)

// Validator is implemented by kernels with parameters that can be out of
// range. Sweeper.Run refuses to sweep a kernel whose Validate fails.
type Validator interface {
	Validate() error
}

// CheckRadius reports whether radius is usable by the named kernel. Kernels
// without a radius accept any value.
func CheckRadius(kernel string, radius int32) error {
	var hi int32
	switch kernel {
	case "atan2":
		hi = MaxAtan2Radius
	case "magnitude":
		hi = MaxMagnitudeRadius
	default:
		return nil
	}
	if radius <= 0 || radius > hi {
		return fmt.Errorf("%w: %s radius %d not in [1, %d]", ErrOutOfDomain, kernel, radius, hi)
	}
	return nil
}

type int32Domain struct{}

func (int32Domain) Bounds() (lo, hi int64) { return math.MinInt32, math.MaxInt32 }

// SinKernel compares iq.Sin with math.Sin scaled to Q15.
type SinKernel struct{ int32Domain }

func (SinKernel) Name() string   { return "sin" }
func (SinKernel) Domain() Config { return Config{Start: 0, Stop: int64(iq.One) - 1, Step: 1} }

func (SinKernel) Eval(in int64) Sample {
	out := int64(iq.Sin(int32(in)))
	ref := math.Sin(toRadians(in)) * fullTurn
	return Sample{Input: in, Output: out, Reference: ref, Error: float64(out) - ref}
}

// CosKernel compares iq.Cos with math.Cos scaled to Q15.
type CosKernel struct{ int32Domain }

func (CosKernel) Name() string   { return "cos" }
func (CosKernel) Domain() Config { return Config{Start: 0, Stop: int64(iq.One) - 1, Step: 1} }

func (CosKernel) Eval(in int64) Sample {
	out := int64(iq.Cos(int32(in)))
	ref := math.Cos(toRadians(in)) * fullTurn
	return Sample{Input: in, Output: out, Reference: ref, Error: float64(out) - ref}
}

// Atan2Kernel feeds iq.Atan2 a vector of the given radius pointing at the
// input angle and reports the angular error.
type Atan2Kernel struct {
	int32Domain
	Radius int32
}

func NewAtan2Kernel(radius int32) Atan2Kernel {
	return Atan2Kernel{Radius: radius}
}

func (k Atan2Kernel) Validate() error { return CheckRadius("atan2", k.Radius) }

func (Atan2Kernel) Name() string   { return "atan2" }
func (Atan2Kernel) Domain() Config { return Config{Start: 0, Stop: int64(iq.One) - 1, Step: 1} }

func (k Atan2Kernel) Eval(in int64) Sample {
	rad := toRadians(in)
	r := float64(k.Radius)
	y := int32(math.Round(r * math.Sin(rad)))
	x := int32(math.Round(r * math.Cos(rad)))
	out := int64(iq.Atan2(y, x))
	ref := float64(in & int64(iq.ThetaMask))
	return Sample{Input: in, Output: out, Reference: ref, Error: angleError(out, ref)}
}

// RoundTripKernel reports how far Atan2(Sin(t), Cos(t)) lands from t.
type RoundTripKernel struct{ int32Domain }

func (RoundTripKernel) Name() string   { return "roundtrip" }
func (RoundTripKernel) Domain() Config { return Config{Start: 0, Stop: int64(iq.One) - 1, Step: 1} }

func (RoundTripKernel) Eval(in int64) Sample {
	s, c := iq.SinCos(int32(in))
	out := int64(iq.Atan2(s, c))
	ref := float64(in & int64(iq.ThetaMask))
	return Sample{Input: in, Output: out, Reference: ref, Error: angleError(out, ref)}
}

// SqrtKernel compares iq.Sqrt with the floor of math.Sqrt.
type SqrtKernel struct{}

func (SqrtKernel) Name() string   { return "sqrt" }
func (SqrtKernel) Domain() Config { return Config{Start: 0, Stop: math.MaxUint32, Step: 4099} }

func (SqrtKernel) Bounds() (lo, hi int64) { return 0, math.MaxUint32 }

func (SqrtKernel) Eval(in int64) Sample {
	out := int64(iq.Sqrt(uint32(in)))
	ref := math.Floor(math.Sqrt(float64(in)))
	return Sample{Input: in, Output: out, Reference: ref, Error: float64(out) - ref}
}

// MagnitudeKernel measures iq.Magnitude on a vector of the given radius
// pointing at the input angle.
type MagnitudeKernel struct {
	int32Domain
	Radius int32
}

func NewMagnitudeKernel(radius int32) MagnitudeKernel {
	return MagnitudeKernel{Radius: radius}
}

func (k MagnitudeKernel) Validate() error { return CheckRadius("magnitude", k.Radius) }

func (MagnitudeKernel) Name() string   { return "magnitude" }
func (MagnitudeKernel) Domain() Config { return Config{Start: 0, Stop: int64(iq.One) - 1, Step: 7} }

func (k MagnitudeKernel) Eval(in int64) Sample {
	rad := toRadians(in)
	r := float64(k.Radius)
	x := int32(math.Round(r * math.Cos(rad)))
	y := int32(math.Round(r * math.Sin(rad)))
	out := int64(iq.Magnitude(x, y))
	sq := int64(x)*int64(x) + int64(y)*int64(y)
	ref := math.Floor(math.Sqrt(float64(sq)))
	return Sample{Input: in, Output: out, Reference: ref, Error: float64(out) - ref}
}
