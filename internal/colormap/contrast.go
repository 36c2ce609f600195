package colormap

// NeutralScaling leaves values untouched.
const NeutralScaling = 50

// Contrast remaps x in [0,1] through a sigmoid tuned by scaling in [0,100].
// Values above 50 steepen the curve around 0.5, values below flatten it, and
// 50 is the identity. The curve is symmetric about (0.5, 0.5).
func Contrast(x float64, scaling int) float64 {
	scaling = min(max(scaling, 0), 100)
	k := float64(scaling-NeutralScaling) / 50.1
	offset := 0.0
	if x > 0.5 {
		x -= 0.5
		k = -k
		offset = 0.5
	}
	return (k*x-x)/(4*k*x-k-1) + offset
}

// ApplyContrast writes Contrast(src[i]) into dst. With neutral scaling it is a
// plain copy.
func ApplyContrast(dst, src []float64, scaling int) {
	if scaling == NeutralScaling {
		copy(dst, src)
		return
	}
	for i, v := range src {
		dst[i] = Contrast(v, scaling)
	}
}
