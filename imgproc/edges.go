package imgproc

import (
	"image"
	"math"
)

// Edges returns a binary edge mask computed from the Sobel gradient
// magnitude with hysteresis thresholding: pixels at or above hi seed
// edges, and pixels at or above lo extend them through 8-connectivity.
func Edges(gray *image.Gray, lo, hi float64) *image.Gray {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if w < 3 || h < 3 {
		return out
	}

	mag := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			p := func(dx, dy int) int {
				return int(gray.Pix[(y+dy)*gray.Stride+x+dx])
			}
			gx := -p(-1, -1) - 2*p(-1, 0) - p(-1, 1) +
				p(1, -1) + 2*p(1, 0) + p(1, 1)
			gy := -p(-1, -1) - 2*p(0, -1) - p(1, -1) +
				p(-1, 1) + 2*p(0, 1) + p(1, 1)
			mag[y*w+x] = math.Hypot(float64(gx), float64(gy))
		}
	}

	// Strong pixels seed the mask, weak pixels join by flood fill.
	const (
		weak   = 1
		strong = 2
	)
	grade := make([]uint8, w*h)
	var queue []image.Point
	for i, m := range mag {
		switch {
		case m >= hi:
			grade[i] = strong
			queue = append(queue, image.Pt(i%w, i/w))
		case m >= lo:
			grade[i] = weak
		}
	}
	for len(queue) > 0 {
		p := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		out.Pix[p.Y*out.Stride+p.X] = 255
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				i := ny*w + nx
				if grade[i] == weak && out.Pix[ny*out.Stride+nx] == 0 {
					grade[i] = strong
					queue = append(queue, image.Pt(nx, ny))
				}
			}
		}
	}
	return out
}
