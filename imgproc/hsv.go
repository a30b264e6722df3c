package imgproc

import "image"

// HSVRange selects a volume of HSV space. Hue uses the half-degree
// convention (0–180 covers the full circle); saturation and value use the
// full 0–255 range. All bounds are inclusive.
type HSVRange struct {
	HMin, HMax uint8
	SMin, SMax uint8
	VMin, VMax uint8
}

// HSVMask returns a binary mask of the pixels whose HSV representation
// falls inside any of the given ranges.
func HSVMask(img image.Image, ranges ...HSVRange) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			hv, sv, vv := rgbToHSV(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
			for _, rg := range ranges {
				if hv >= rg.HMin && hv <= rg.HMax &&
					sv >= rg.SMin && sv <= rg.SMax &&
					vv >= rg.VMin && vv <= rg.VMax {
					out.Pix[y*out.Stride+x] = 255
					break
				}
			}
		}
	}
	return out
}

// rgbToHSV converts an 8-bit RGB triple to HSV with hue in [0,180) and
// saturation and value in [0,255].
func rgbToHSV(r, g, b uint8) (hv, sv, vv uint8) {
	max := r
	if g > max {
		max = g
	}
	if b > max {
		max = b
	}
	min := r
	if g < min {
		min = g
	}
	if b < min {
		min = b
	}
	vv = max
	delta := int(max) - int(min)
	if max > 0 {
		sv = uint8(255 * delta / int(max))
	}
	if delta == 0 {
		return 0, sv, vv
	}
	var hue float64
	switch max {
	case r:
		hue = 60 * float64(int(g)-int(b)) / float64(delta)
	case g:
		hue = 120 + 60*float64(int(b)-int(r))/float64(delta)
	default:
		hue = 240 + 60*float64(int(r)-int(g))/float64(delta)
	}
	if hue < 0 {
		hue += 360
	}
	return uint8(hue / 2), sv, vv
}
