package iq

const (
	tableSize = 256

	// indexShift turns a Q15 angle into one of 1024 table steps per turn.
	indexShift = 5
	indexMask  = tableSize - 1
)

// Quadrant is a quarter of the circle: 0 covers [0, 90) degrees, 3 covers
// [270, 360).
type Quadrant uint8

const (
	Quadrant0 Quadrant = iota
	Quadrant1
	Quadrant2
	Quadrant3
)

// Phasor is a sine/cosine pair computed for one angle.
type Phasor struct {
	Sine   int32
	Cosine int32
}

// NewPhasor evaluates SinCos(theta).
func NewPhasor(theta int32) Phasor {
	s, c := SinCos(theta)
	return Phasor{Sine: s, Cosine: c}
}

// split returns the quadrant and the position within it for theta.
//
// The shift is arithmetic, so negative angles step backwards through the
// same 1024-entry cycle and every int32 input is reduced modulo one turn.
func split(theta int32) (Quadrant, uint8) {
	h := theta >> indexShift
	return Quadrant((h >> 8) & 3), uint8(h & indexMask)
}

func lookup(i uint8) int32 { return int32(sinCosTable[i]) }

// SinCos returns sin(theta) and cos(theta) in Q15 for an angle where One is
// a full turn. Results lie in [-32767, 32767].
func SinCos(theta int32) (sine, cosine int32) {
	q, i := split(theta)
	c := indexMask - i
	switch q {
	case Quadrant0:
		return lookup(i), lookup(c)
	case Quadrant1:
		return lookup(c), -lookup(i)
	case Quadrant2:
		return -lookup(i), -lookup(c)
	default:
		return -lookup(c), lookup(i)
	}
}

// Sin returns sin(theta) in Q15.
func Sin(theta int32) int32 {
	q, i := split(theta)
	switch q {
	case Quadrant0:
		return lookup(i)
	case Quadrant1:
		return lookup(indexMask - i)
	case Quadrant2:
		return -lookup(i)
	default:
		return -lookup(indexMask - i)
	}
}

// Cos returns cos(theta) in Q15.
func Cos(theta int32) int32 {
	q, i := split(theta)
	switch q {
	case Quadrant0:
		return lookup(indexMask - i)
	case Quadrant1:
		return -lookup(i)
	case Quadrant2:
		return -lookup(indexMask - i)
	default:
		return lookup(i)
	}
}

// QuadrantOf reports which quarter of the circle theta falls in.
func QuadrantOf(theta int32) Quadrant {
	q, _ := split(theta)
	return q
}
