// Package imgproc implements the small set of pixel operations the
// analysis pipeline needs: grayscale conversion, thresholding, binary
// morphology, connected components, HSV color masks and edge maps.
//
// Binary masks are represented as *image.Gray with pixel values 0 or
// 255. All operations treat images as anchored at the origin and ignore
// the source rectangle offset.
package imgproc

import (
	"fmt"
	"image"
)

// Luma converts an image to grayscale using BT.601 weights.
func Luma(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < b.Dy(); y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], g.Pix[y*g.Stride:y*g.Stride+b.Dx()])
		}
		return out
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			lum := (299*r + 587*g + 114*bl) / 1000
			out.Pix[i] = uint8(lum >> 8)
			i++
		}
	}
	return out
}

// AbsDiff returns the per-pixel absolute difference of two equally sized
// grayscale images.
func AbsDiff(a, b *image.Gray) (*image.Gray, error) {
	if a.Bounds().Size() != b.Bounds().Size() {
		return nil, fmt.Errorf("imgproc: size mismatch %v vs %v", a.Bounds().Size(), b.Bounds().Size())
	}
	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+w]
		rb := b.Pix[y*b.Stride : y*b.Stride+w]
		ro := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := 0; x < w; x++ {
			d := int(ra[x]) - int(rb[x])
			if d < 0 {
				d = -d
			}
			ro[x] = uint8(d)
		}
	}
	return out, nil
}

// Threshold returns a binary mask selecting pixels strictly above t.
func Threshold(img *image.Gray, t uint8) *image.Gray {
	return mapPixels(img, func(v uint8) uint8 {
		if v > t {
			return 255
		}
		return 0
	})
}

// InRange returns a binary mask selecting pixels in [lo, hi] inclusive.
func InRange(img *image.Gray, lo, hi uint8) *image.Gray {
	return mapPixels(img, func(v uint8) uint8 {
		if v >= lo && v <= hi {
			return 255
		}
		return 0
	})
}

// Or returns the union of two equally sized binary masks.
func Or(a, b *image.Gray) (*image.Gray, error) {
	if a.Bounds().Size() != b.Bounds().Size() {
		return nil, fmt.Errorf("imgproc: size mismatch %v vs %v", a.Bounds().Size(), b.Bounds().Size())
	}
	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+w]
		rb := b.Pix[y*b.Stride : y*b.Stride+w]
		ro := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := 0; x < w; x++ {
			ro[x] = ra[x] | rb[x]
		}
	}
	return out, nil
}

func mapPixels(img *image.Gray, f func(uint8) uint8) *image.Gray {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := 0; x < w; x++ {
			dst[x] = f(src[x])
		}
	}
	return out
}
