package iq

import (
	"math"
	"testing"
)

// angleDist is the circular distance between two angles, in LSB.
func angleDist(a, b int32) int32 {
	d := WrapTheta(a - b)
	if d > Half {
		d = One - d
	}
	return d
}

func TestAtan2Origin(t *testing.T) {
	if got := Atan2(0, 0); got != 0 {
		t.Errorf("Atan2(0, 0) = %d, want 0", got)
	}
}

func TestAtan2Axes(t *testing.T) {
	for _, r := range []int32{10000, 32767, 1 << 20} {
		if d := angleDist(Atan2(0, r), 0); d > 4 {
			t.Errorf("Atan2(0, %d) = %d, expected ~0", r, Atan2(0, r))
		}
		if d := angleDist(Atan2(r, 0), Quarter); d > 4 {
			t.Errorf("Atan2(%d, 0) = %d, expected ~%d", r, Atan2(r, 0), Quarter)
		}
		if d := angleDist(Atan2(0, -r), Half); d > 4 {
			t.Errorf("Atan2(0, %d) = %d, expected ~%d", -r, Atan2(0, -r), Half)
		}
		if d := angleDist(Atan2(-r, 0), Half+Quarter); d > 4 {
			t.Errorf("Atan2(%d, 0) = %d, expected ~%d", -r, Atan2(-r, 0), Half+Quarter)
		}
	}
}

func TestAtan2Exact(t *testing.T) {
	// Bit-exact outputs of the rotation and correction table, including the
	// small overshoots past 0 and One that are not re-wrapped.
	tests := []struct {
		y, x, want int32
	}{
		{0, 10000, -1},
		{10000, 0, 8193},
		{1, 1, 3937},
		{1, -1, 12447},
		{-1, -1, 20321},
		{-1, 1, 28831},
		{32767, -32767, 12289},
		{0, -32767, 16385},
		{-32767, 0, 24575},
		{-1, 32767, 32769},
	}

	for _, tt := range tests {
		if got := Atan2(tt.y, tt.x); got != tt.want {
			t.Errorf("Atan2(%d, %d) = %d, want %d", tt.y, tt.x, got, tt.want)
		}
	}
}

func TestAtan2AgainstFloat(t *testing.T) {
	const radius = 32767
	for k := int32(0); k < One; k += 3 {
		rad := float64(k) / float64(One) * 2 * math.Pi
		y := int32(math.Round(radius * math.Sin(rad)))
		x := int32(math.Round(radius * math.Cos(rad)))
		if d := angleDist(Atan2(y, x), k); d > 5 {
			t.Fatalf("Atan2 at angle %d returned %d", k, Atan2(y, x))
		}
	}
}

func TestAtan2RoundTrip(t *testing.T) {
	for theta := int32(0); theta < One; theta++ {
		s, c := SinCos(theta)
		if d := angleDist(Atan2(s, c), theta); d > 40 {
			t.Fatalf("round trip of %d gave %d", theta, Atan2(s, c))
		}
	}
}

func TestAtanDivTable(t *testing.T) {
	tab := AtanDiv()
	for i, v := range tab {
		want := math.Atan(math.Ldexp(1, -i)) / (2 * math.Pi) * 32768
		if math.Abs(float64(v)-want) > 1 {
			t.Errorf("AtanDiv[%d] = %d, want ~%.2f", i, v, want)
		}
	}
	if tab[0] != One/8 {
		t.Errorf("first step should be 45 degrees, got %d", tab[0])
	}
}

func TestMagnitude(t *testing.T) {
	tests := []struct {
		x, y, want int32
	}{
		{3, 4, 5},
		{-30000, 0, 30000},
		{0, -1, 1},
		{32768, 32768, 46340},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := Magnitude(tt.x, tt.y); got != tt.want {
			t.Errorf("Magnitude(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}
