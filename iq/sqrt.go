package iq

// Sqrt returns floor(sqrt(n)). It settles one base-4 digit per iteration,
// 16 iterations in all, and is exact for every uint32 including 0 and
// 0xFFFFFFFF.
func Sqrt(n uint32) uint32 {
	rem := n
	var root uint32
	for i := 30; i >= 0; i -= 2 {
		bit := uint32(1) << i
		trial := root + bit
		root >>= 1
		if trial <= rem {
			rem -= trial
			root += bit
		}
	}
	return root
}
