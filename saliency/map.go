// Package saliency models per-pixel visual attention maps and computes
// them from images with the spectral residual method.
//
// A [Map] is a rectangular grid of 8-bit intensities where higher values
// mark regions more likely to draw a viewer's attention. Maps are
// typically produced by [Spectral] and consumed read-only by the analysis
// code in the parent package.
package saliency

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrInvalidInput is returned when input data violates the Map shape
// constraints (rectangular grid, non-negative dimensions).
var ErrInvalidInput = errors.New("saliency: invalid input")

// Map is a width×height grid of attention intensities in [0,255].
//
// Coordinates follow the image convention: x is the column index, y the
// row index, origin at the top-left. The zero value is an empty map.
type Map struct {
	w, h int
	pix  []uint8
}

// NewMap returns an all-zero map of the given dimensions. Either
// dimension may be zero (a zero-area map is valid input everywhere in
// this module); negative dimensions fail with [ErrInvalidInput].
func NewMap(w, h int) (*Map, error) {
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("saliency: dimensions %dx%d: %w", w, h, ErrInvalidInput)
	}
	return &Map{w: w, h: h, pix: make([]uint8, w*h)}, nil
}

// FromRows builds a map from row-major rows. Every row must have the same
// length; ragged input fails fast with [ErrInvalidInput] naming the first
// offending row.
func FromRows(rows [][]uint8) (*Map, error) {
	if len(rows) == 0 {
		return &Map{}, nil
	}
	w := len(rows[0])
	for i, r := range rows {
		if len(r) != w {
			return nil, fmt.Errorf("saliency: row %d has %d columns, want %d: %w", i, len(r), w, ErrInvalidInput)
		}
	}
	m := &Map{w: w, h: len(rows), pix: make([]uint8, w*len(rows))}
	for y, r := range rows {
		copy(m.pix[y*w:(y+1)*w], r)
	}
	return m, nil
}

// FromImage converts an arbitrary image into a map using BT.601 luma
// weights, the same grayscale convention used throughout this module.
func FromImage(img image.Image) *Map {
	if g, ok := img.(*image.Gray); ok {
		return FromGray(g)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	m := &Map{w: w, h: h, pix: make([]uint8, w*h)}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			lum := (299*r + 587*g + 114*bl) / 1000
			m.pix[i] = uint8(lum >> 8)
			i++
		}
	}
	return m
}

// FromGray copies a grayscale image into a map.
func FromGray(img *image.Gray) *Map {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	m := &Map{w: w, h: h, pix: make([]uint8, w*h)}
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w]
		copy(m.pix[y*w:(y+1)*w], src)
	}
	return m
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.w }

// Height returns the number of rows.
func (m *Map) Height() int { return m.h }

// Bounds returns the map extent as an image rectangle anchored at the
// origin.
func (m *Map) Bounds() image.Rectangle { return image.Rect(0, 0, m.w, m.h) }

// Empty reports whether the map has zero area.
func (m *Map) Empty() bool { return m.w == 0 || m.h == 0 }

// At returns the intensity at column x, row y. Out-of-range coordinates
// return 0.
func (m *Map) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return 0
	}
	return m.pix[y*m.w+x]
}

// Set stores an intensity at column x, row y. Out-of-range coordinates
// are ignored.
func (m *Map) Set(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return
	}
	m.pix[y*m.w+x] = v
}

// Clone returns an independent copy of the map.
func (m *Map) Clone() *Map {
	pix := make([]uint8, len(m.pix))
	copy(pix, m.pix)
	return &Map{w: m.w, h: m.h, pix: pix}
}

// Gray returns the map as a grayscale image. The returned image holds its
// own pixel copy; mutating it does not affect the map.
func (m *Map) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.w, m.h))
	copy(img.Pix, m.pix)
	return img
}

// Max returns the location and value of the maximum intensity, scanning
// rows top to bottom and columns left to right so the first cell
// attaining the maximum wins. On an empty map it returns (0, 0, 0).
func (m *Map) Max() (x, y int, v uint8) {
	if m.Empty() {
		return 0, 0, 0
	}
	v = m.pix[0]
	for i, p := range m.pix {
		if p > v {
			v = p
			x = i % m.w
			y = i / m.w
		}
	}
	return x, y, v
}

// MaxValue returns the maximum intensity in the map.
func (m *Map) MaxValue() uint8 {
	_, _, v := m.Max()
	return v
}

// Sum returns the total intensity over the whole map.
func (m *Map) Sum() int64 {
	var s int64
	for _, p := range m.pix {
		s += int64(p)
	}
	return s
}

// Mean returns the mean intensity, or 0 for an empty map.
func (m *Map) Mean() float64 {
	if m.Empty() {
		return 0
	}
	return float64(m.Sum()) / float64(len(m.pix))
}

// RegionSum returns the total intensity inside r, clipped to the map
// bounds.
func (m *Map) RegionSum(r image.Rectangle) int64 {
	r = r.Intersect(m.Bounds())
	var s int64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := m.pix[y*m.w+r.Min.X : y*m.w+r.Max.X]
		for _, p := range row {
			s += int64(p)
		}
	}
	return s
}

// RegionMean returns the mean intensity inside r, clipped to the map
// bounds, or 0 when the clipped region is empty.
func (m *Map) RegionMean(r image.Rectangle) float64 {
	r = r.Intersect(m.Bounds())
	n := r.Dx() * r.Dy()
	if n <= 0 {
		return 0
	}
	return float64(m.RegionSum(r)) / float64(n)
}

// Diagonal returns the length of the map diagonal in pixels.
func (m *Map) Diagonal() float64 {
	return math.Hypot(float64(m.w), float64(m.h))
}
