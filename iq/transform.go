package iq

// Clarke maps balanced three-phase quantities, given as phases a and b, onto
// the stationary alpha/beta plane. Phase c is implied by a + b + c = 0.
func Clarke(a, b int32) (alpha, beta int32) {
	return a, Q15Mpy(a+Mpy2(b), OneBySqrt3)
}

// InvClarke maps alpha/beta back to three phase quantities.
func InvClarke(alpha, beta int32) (a, b, c int32) {
	h := Div2(-alpha)
	k := Q15Mpy(beta, Sqrt3By2)
	return alpha, h + k, h - k
}

// Park rotates alpha/beta into the d/q frame aligned with p.
func Park(alpha, beta int32, p Phasor) (d, q int32) {
	d = Q15Mpy(alpha, p.Cosine) + Q15Mpy(beta, p.Sine)
	q = Q15Mpy(beta, p.Cosine) - Q15Mpy(alpha, p.Sine)
	return d, q
}

// InvPark rotates d/q back into the stationary frame.
func InvPark(d, q int32, p Phasor) (alpha, beta int32) {
	alpha = Q15Mpy(d, p.Cosine) - Q15Mpy(q, p.Sine)
	beta = Q15Mpy(d, p.Sine) + Q15Mpy(q, p.Cosine)
	return alpha, beta
}
