package saliency

import (
	"image"
	"math"
	"math/cmplx"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/dsp/fourier"
)

// workSize is the square working resolution for the spectral transform.
// Saliency is a coarse property; computing it at 64×64 keeps the FFT
// cheap and the result stable across input resolutions.
const workSize = 64

// smoothSigma is the Gaussian sigma applied to the raw residual map
// before normalization.
const smoothSigma = 2.5

// logEps keeps the log-amplitude finite for zero spectral bins, which
// occur on flat synthetic inputs.
const logEps = 1e-9

// Spectral computes a saliency map for img using the spectral residual
// method: the image is reduced to a small grayscale grid, transformed to
// the frequency domain, and the difference between its log-amplitude
// spectrum and a locally averaged copy is transformed back. Regions whose
// spectral signature deviates from the image-wide trend come out bright.
//
// The result has the same dimensions as img with values stretched to span
// [0,255]. A perfectly uniform image yields an all-zero map. A zero-area
// image yields an empty map.
func Spectral(img image.Image) (*Map, error) {
	if img == nil {
		return nil, ErrInvalidInput
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return &Map{}, nil
	}

	small := imaging.Resize(img, workSize, workSize, imaging.Linear)
	gray := FromImage(small)

	// A flat image has an empty residual; the transform would only
	// amplify floating point noise into a corner artifact.
	if flat(gray.pix) {
		return &Map{w: w, h: h, pix: make([]uint8, w*h)}, nil
	}

	data := make([]complex128, workSize*workSize)
	for i, p := range gray.pix {
		data[i] = complex(float64(p), 0)
	}
	fft2(data, workSize, workSize)

	logAmp := make([]float64, len(data))
	phase := make([]float64, len(data))
	for i, c := range data {
		logAmp[i] = math.Log(cmplx.Abs(c) + logEps)
		phase[i] = cmplx.Phase(c)
	}

	residual := spectralResidual(logAmp, workSize, workSize)
	for i := range data {
		data[i] = cmplx.Rect(math.Exp(residual[i]), phase[i])
	}
	ifft2(data, workSize, workSize)

	sal := make([]float64, len(data))
	for i, c := range data {
		re, im := real(c), imag(c)
		sal[i] = re*re + im*im
	}

	smallMap := normalize(sal, workSize, workSize)
	blurred := imaging.Blur(smallMap.Gray(), smoothSigma)
	stretched := normalize(grayFloats(blurred), workSize, workSize)

	if w == workSize && h == workSize {
		return stretched, nil
	}
	full := imaging.Resize(stretched.Gray(), w, h, imaging.Linear)
	return FromImage(full), nil
}

// spectralResidual subtracts a 3×3 box-averaged copy of the log-amplitude
// spectrum from the original. Windows are clipped at the grid edges and
// averaged over the cells actually covered.
func spectralResidual(logAmp []float64, w, h int) []float64 {
	res := make([]float64, len(logAmp))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			var n int
			for dy := -1; dy <= 1; dy++ {
				yy := y + dy
				if yy < 0 || yy >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					xx := x + dx
					if xx < 0 || xx >= w {
						continue
					}
					sum += logAmp[yy*w+xx]
					n++
				}
			}
			res[y*w+x] = logAmp[y*w+x] - sum/float64(n)
		}
	}
	return res
}

// normalize min-max stretches vals onto [0,255] and returns them as a
// map. A constant input maps to all zeros.
func normalize(vals []float64, w, h int) *Map {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	m := &Map{w: w, h: h, pix: make([]uint8, len(vals))}
	if hi <= lo {
		return m
	}
	scale := 255 / (hi - lo)
	for i, v := range vals {
		m.pix[i] = uint8(math.Round((v - lo) * scale))
	}
	return m
}

func grayFloats(img image.Image) []float64 {
	gray := FromImage(img)
	out := make([]float64, len(gray.pix))
	for i, p := range gray.pix {
		out[i] = float64(p)
	}
	return out
}

func flat(pix []uint8) bool {
	for _, p := range pix[1:] {
		if p != pix[0] {
			return false
		}
	}
	return true
}

// fft2 applies an in-place 2D forward Fourier transform to row-major
// data.
func fft2(data []complex128, w, h int) {
	rowFFT := fourier.NewCmplxFFT(w)
	colFFT := fourier.NewCmplxFFT(h)
	scratch := make([]complex128, w)
	for y := 0; y < h; y++ {
		row := data[y*w : (y+1)*w]
		copy(scratch, row)
		rowFFT.Coefficients(row, scratch)
	}
	col := make([]complex128, h)
	out := make([]complex128, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = data[y*w+x]
		}
		colFFT.Coefficients(out, col)
		for y := 0; y < h; y++ {
			data[y*w+x] = out[y]
		}
	}
}

// ifft2 applies an in-place 2D inverse Fourier transform, including the
// 1/(w·h) normalization gonum's Sequence leaves to the caller.
func ifft2(data []complex128, w, h int) {
	rowFFT := fourier.NewCmplxFFT(w)
	colFFT := fourier.NewCmplxFFT(h)
	col := make([]complex128, h)
	out := make([]complex128, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = data[y*w+x]
		}
		colFFT.Sequence(out, col)
		for y := 0; y < h; y++ {
			data[y*w+x] = out[y]
		}
	}
	scratch := make([]complex128, w)
	norm := complex(float64(w*h), 0)
	for y := 0; y < h; y++ {
		row := data[y*w : (y+1)*w]
		copy(scratch, row)
		rowFFT.Sequence(row, scratch)
		for x := range row {
			row[x] /= norm
		}
	}
}
