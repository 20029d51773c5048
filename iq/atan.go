package iq

const atanIterations = 13

// Atan2 returns the angle of the vector (x, y) in the full-turn Q15 domain,
// nominally [0, One). Convergence error is a few LSB for vectors of
// Q15-sized magnitude, and results within that error of 0 or One are not
// re-wrapped, so -1 and One+1 are possible outputs.
//
// The origin has no direction; Atan2(0, 0) returns 0.
//
// Components must satisfy |x|, |y| < 2^30 / 1.65 so the rotation gain does
// not overflow int32.
func Atan2(y, x int32) int32 {
	if x == 0 && y == 0 {
		return 0
	}

	var q Quadrant
	switch {
	case x >= 0 && y >= 0:
		q = Quadrant0
	case x < 0 && y >= 0:
		q = Quadrant1
		x = -x
	case x < 0 && y < 0:
		q = Quadrant2
		x, y = -x, -y
	default:
		q = Quadrant3
		y = -y
	}

	var angle int32
	for i := 0; i < atanIterations; i++ {
		if y < 0 {
			nx := x - (y >> i)
			y += x >> i
			x = nx
			angle += atanDiv[i]
		} else {
			nx := x + (y >> i)
			y -= x >> i
			x = nx
			angle -= atanDiv[i]
		}
	}

	switch q {
	case Quadrant0:
		return -angle
	case Quadrant1:
		return Half + angle
	case Quadrant2:
		return Half - angle
	default:
		return One + angle
	}
}

// Magnitude returns floor(sqrt(x*x + y*y)). Components are limited to
// |x|, |y| <= 32768 so the sum of squares fits a uint32.
func Magnitude(x, y int32) int32 {
	ax, ay := uint32(Abs(x)), uint32(Abs(y))
	return int32(Sqrt(ax*ax + ay*ay))
}
