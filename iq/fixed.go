package iq

// Signed is the set of integer types the scalar helpers accept.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

const (
	// Q is the number of fractional bits used throughout the package.
	Q = 15

	// One is 1.0 in Q15 and also one full turn (2*pi) in the angle domain.
	One int32 = 1 << Q

	// Half is 0.5 in Q15, half a turn.
	Half int32 = One / 2

	// Quarter is 0.25 in Q15, a quarter turn.
	Quarter int32 = One / 4

	// ThetaMask keeps an angle inside one full turn.
	ThetaMask int32 = One - 1
)

// Real-valued constants from motor-control practice.
const (
	OnePi      = 3.141592654
	TwoPi      = 6.283185307
	Sqrt3      = 1.732050808
	OneMinute  = 60.0
	oneBySqrt3 = 0.577350269
	sqrt3By2   = 0.866025404
)

// Q15 forms of the frame-transform constants.
var (
	OneBySqrt3 = Q15(oneBySqrt3)
	Sqrt3By2   = Q15(sqrt3By2)
)

// Abs returns |a|. The most negative value of T maps to itself.
func Abs[T Signed](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// Sign returns -1 for negative a and 1 otherwise; zero counts as positive.
func Sign[T Signed](a T) T {
	if a < 0 {
		return -1
	}
	return 1
}

func Min[T Signed](a, b T) T {
	if a > b {
		return b
	}
	return a
}

func Max[T Signed](a, b T) T {
	if a < b {
		return b
	}
	return a
}

// Sat clamps a into [lo, hi]. The upper bound is tested first, so with
// lo > hi the result is hi for a > hi and lo otherwise.
func Sat[T Signed](a, hi, lo T) T {
	if a > hi {
		return hi
	}
	if a < lo {
		return lo
	}
	return a
}

// IQ encodes f with q fractional bits, truncating toward zero.
func IQ(f float64, q uint) int32 {
	return int32(f * float64(int64(1)<<q))
}

// IQToFloat decodes a value with q fractional bits.
func IQToFloat(a int32, q uint) float64 {
	return float64(a) / float64(int64(1)<<q)
}

// Q15 encodes f in Q15, truncating toward zero.
func Q15(f float64) int32 { return IQ(f, Q) }

// Q15ToFloat decodes a Q15 value.
func Q15ToFloat(a int32) float64 { return IQToFloat(a, Q) }

// Mpy multiplies two values sharing c fractional bits and rescales the
// product back to c bits. The product is formed in 64 bits; only the final
// narrowing to int32 can wrap.
func Mpy(a, b int32, c uint) int32 {
	return int32((int64(a) * int64(b)) >> c)
}

// Div divides two values sharing c fractional bits, keeping c bits in the
// quotient. The dividend is pre-scaled in 64 bits. b == 0 panics, as Go
// integer division does.
func Div(a, b int32, c uint) int32 {
	return int32((int64(a) << c) / int64(b))
}

// Q15Mpy is Mpy with c = 15.
func Q15Mpy(a, b int32) int32 { return Mpy(a, b, Q) }

// Q15Div is Div with c = 15.
func Q15Div(a, b int32) int32 { return Div(a, b, Q) }

// Mpy2 doubles a.
func Mpy2(a int32) int32 { return a << 1 }

// Div2 halves a, rounding toward negative infinity.
func Div2(a int32) int32 { return a >> 1 }

// WrapTheta reduces theta into [0, One).
func WrapTheta(theta int32) int32 { return theta & ThetaMask }
