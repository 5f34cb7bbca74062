package reconcile

// CubicInOut is symmetric cubic easing: slow start, fast middle, slow end.
func CubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// Linear is the identity easing.
func Linear(t float64) float64 { return t }
