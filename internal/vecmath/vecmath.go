// Package vecmath provides the small float64 vector helpers the plotting
// commands share: finite filtering, element-wise arithmetic, and the linear
// least-squares fit behind the mass-scaling trend lines.
package vecmath

import "math"

// Sub returns a-b element-wise. Mismatched or empty inputs return nil.
func Sub(a, b []float64) []float64 {
	if len(a) == 0 || len(a) != len(b) {
		return nil
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// Scale returns v*s element-wise.
func Scale(v []float64, s float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] * s
	}
	return out
}

// Div returns a/b element-wise; division by zero yields NaN.
func Div(a, b []float64) []float64 {
	if len(a) == 0 || len(a) != len(b) {
		return nil
	}
	out := make([]float64, len(a))
	for i := range a {
		if b[i] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = a[i] / b[i]
	}
	return out
}

// Finite returns the indices of x where both x and y are finite. A nil y
// checks x alone.
func Finite(x, y []float64) []int {
	var idx []int
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if y != nil {
			if i >= len(y) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
				continue
			}
		}
		idx = append(idx, i)
	}
	return idx
}

// MinMax returns the smallest and largest finite values in v.
// It reports false when v holds no finite value.
func MinMax(v []float64) (min, max float64, ok bool) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}

// LinearFit computes the least-squares line y = slope*x + intercept over
// the finite pairs of x and y. It reports false with fewer than two
// distinct finite x values.
func LinearFit(x, y []float64) (slope, intercept float64, ok bool) {
	if len(x) != len(y) {
		return 0, 0, false
	}
	var n, sx, sy, sxx, sxy float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		n++
		sx += x[i]
		sy += y[i]
		sxx += x[i] * x[i]
		sxy += x[i] * y[i]
	}
	if n < 2 {
		return 0, 0, false
	}
	denom := n*sxx - sx*sx
	if denom == 0 {
		return 0, 0, false
	}
	slope = (n*sxy - sx*sy) / denom
	intercept = (sy - slope*sx) / n
	return slope, intercept, true
}

// Pearson computes the Pearson correlation coefficient over the finite
// pairs of x and y. It reports false when either side has zero variance or
// fewer than two pairs remain.
func Pearson(x, y []float64) (r float64, ok bool) {
	if len(x) != len(y) {
		return 0, false
	}
	var n, sx, sy float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		n++
		sx += x[i]
		sy += y[i]
	}
	if n < 2 {
		return 0, false
	}
	mx, my := sx/n, sy/n
	var sxy, sxx, syy float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		dx, dy := x[i]-mx, y[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, false
	}
	return sxy / math.Sqrt(sxx*syy), true
}
