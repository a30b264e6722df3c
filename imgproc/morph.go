package imgproc

import "image"

// Dilate replaces each pixel with the maximum over a k×k window. On a
// binary mask this is the morphological dilation; on grayscale input it
// is a sliding window maximum. k must be odd; even values are rounded
// up.
func Dilate(mask *image.Gray, k int) *image.Gray {
	return morph(mask, k, true)
}

// Erode replaces each pixel with the minimum over a k×k window. k must
// be odd; even values are rounded up.
func Erode(mask *image.Gray, k int) *image.Gray {
	return morph(mask, k, false)
}

// Close fills small holes: dilation followed by erosion.
func Close(mask *image.Gray, k int) *image.Gray {
	return Erode(Dilate(mask, k), k)
}

// Open removes small specks: erosion followed by dilation.
func Open(mask *image.Gray, k int) *image.Gray {
	return Dilate(Erode(mask, k), k)
}

// morph runs a separable min or max filter over the mask. Windows are
// clipped at the image border, which for binary masks matches replicated
// edge handling.
func morph(mask *image.Gray, k int, dilate bool) *image.Gray {
	if k < 1 {
		k = 1
	}
	r := k / 2
	w, h := mask.Bounds().Dx(), mask.Bounds().Dy()

	// Horizontal pass.
	tmp := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		dst := tmp.Pix[y*tmp.Stride : y*tmp.Stride+w]
		for x := 0; x < w; x++ {
			dst[x] = windowReduce(src, x-r, x+r, dilate)
		}
	}

	// Vertical pass.
	out := image.NewGray(image.Rect(0, 0, w, h))
	col := make([]uint8, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = tmp.Pix[y*tmp.Stride+x]
		}
		for y := 0; y < h; y++ {
			out.Pix[y*out.Stride+x] = windowReduce(col, y-r, y+r, dilate)
		}
	}
	return out
}

func windowReduce(row []uint8, lo, hi int, max bool) uint8 {
	if lo < 0 {
		lo = 0
	}
	if hi > len(row)-1 {
		hi = len(row) - 1
	}
	v := row[lo]
	for i := lo + 1; i <= hi; i++ {
		if max {
			if row[i] > v {
				v = row[i]
			}
		} else if row[i] < v {
			v = row[i]
		}
	}
	return v
}
