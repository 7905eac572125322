package core

// Clamp limits a value to the range [min, max]
func Clamp(v, minVal, maxVal float64) float64 {
	return max(minVal, min(maxVal, v))
}

// Clamp01 limits a value to the range [0, 1]
func Clamp01(v float64) float64 {
	return max(0.0, min(1.0, v))
}

// LerpFloat returns the linear interpolation between a and b at parameter t
func LerpFloat(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep returns the smooth Hermite interpolation of v between edge0 and edge1.
// The edges are assumed distinct; callers clamp degenerate spans before use.
func Smoothstep(edge0, edge1, v float64) float64 {
	t := Clamp01((v - edge0) / (edge1 - edge0))
	return t * t * (3.0 - 2.0*t)
}
