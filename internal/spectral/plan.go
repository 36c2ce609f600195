// Package spectral provides the 2D real-to-complex Fourier transforms used for
// frequency-domain convolution on a toroidal field.
//
// Spectra use the half-complex layout: H rows of W/2+1 coefficients each,
// exploiting the conjugate symmetry of real input. Transforms are
// unnormalized; a forward transform followed by an inverse one scales the
// input by W*H.
package spectral

import "gonum.org/v1/gonum/dsp/fourier"

// Plan holds the 1D transforms and scratch space for one W*H geometry. A Plan
// is not safe for concurrent use; callers running transforms in parallel need
// one Plan per goroutine.
type Plan struct {
	w, h, half int
	rows       *fourier.FFT
	cols       *fourier.CmplxFFT
	col        []complex128
}

// NewPlan prepares transforms for a w*h field. Both dimensions must be positive.
func NewPlan(w, h int) *Plan {
	return &Plan{
		w:    w,
		h:    h,
		half: w/2 + 1,
		rows: fourier.NewFFT(w),
		cols: fourier.NewCmplxFFT(h),
		col:  make([]complex128, h),
	}
}

// Dims reports the real-domain dimensions.
func (p *Plan) Dims() (int, int) { return p.w, p.h }

// Len returns the number of real samples, W*H. It is also the scale factor an
// inverse transform introduces.
func (p *Plan) Len() int { return p.w * p.h }

// SpectrumLen returns the number of complex coefficients in a spectrum.
func (p *Plan) SpectrumLen() int { return p.h * p.half }

// NewSpectrum allocates a zeroed spectrum buffer.
func (p *Plan) NewSpectrum() []complex128 { return make([]complex128, p.SpectrumLen()) }

// Forward transforms the real field src into dst. When dst is nil or too short
// a new buffer is allocated. src is not modified.
func (p *Plan) Forward(dst []complex128, src []float64) []complex128 {
	if len(dst) < p.SpectrumLen() {
		dst = p.NewSpectrum()
	}
	for y := 0; y < p.h; y++ {
		p.rows.Coefficients(dst[y*p.half:(y+1)*p.half], src[y*p.w:(y+1)*p.w])
	}
	p.columns(dst, p.cols.Coefficients)
	return dst
}

// Inverse transforms the spectrum src back into the real buffer dst. src is
// used as scratch and holds intermediate values afterwards, so it must not
// alias any buffer the caller still needs.
func (p *Plan) Inverse(dst []float64, src []complex128) []float64 {
	if len(dst) < p.Len() {
		dst = make([]float64, p.Len())
	}
	p.columns(src, p.cols.Sequence)
	for y := 0; y < p.h; y++ {
		p.rows.Sequence(dst[y*p.w:(y+1)*p.w], src[y*p.half:(y+1)*p.half])
	}
	return dst
}

func (p *Plan) columns(spec []complex128, transform func(dst, seq []complex128) []complex128) {
	for x := 0; x < p.half; x++ {
		for y := 0; y < p.h; y++ {
			p.col[y] = spec[y*p.half+x]
		}
		transform(p.col, p.col)
		for y := 0; y < p.h; y++ {
			spec[y*p.half+x] = p.col[y]
		}
	}
}

// MulScaled stores a[i]*b[i]*scale into dst for every coefficient.
func MulScaled(dst, a, b []complex128, scale float64) {
	s := complex(scale, 0)
	for i := range dst {
		dst[i] = a[i] * b[i] * s
	}
}
