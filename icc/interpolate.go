package icc

import "math"

// sampled_value linearly interpolates into a table of normalized samples,
// clamping the input at both ends.
func sampled_value(samples []unit_float, max_idx unit_float, x unit_float) unit_float {
	idx := clamp01(x) * max_idx
	lof := unit_float(math.Trunc(float64(idx)))
	lo := int(lof)
	if lof == idx {
		return samples[lo]
	}
	p := idx - unit_float(lo)
	vhi := samples[lo+1]
	vlo := samples[lo]
	return vlo + p*(vhi-vlo)
}

// get_interval finds the first sample interval bracketing y. Returns -1 when
// no interval contains it.
func get_interval(lookup []unit_float, y unit_float) int {
	if len(lookup) < 2 {
		return -1
	}
	for i := range len(lookup) - 1 {
		y0, y1 := lookup[i], lookup[i+1]
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		if y0 <= y && y <= y1 {
			return i
		}
	}
	return -1
}
