package imgproc

import "image"

// Component is one 8-connected region of set pixels in a binary mask.
type Component struct {
	// Area is the number of pixels in the region, not the bounding box
	// area.
	Area int
	// Bounds is the tight bounding box around the region.
	Bounds image.Rectangle
}

// Components labels the 8-connected regions of set pixels in a binary
// mask. Any nonzero pixel counts as set. Regions are returned in
// scanline order of their first pixel.
func Components(mask *image.Gray) []Component {
	w, h := mask.Bounds().Dx(), mask.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil
	}
	visited := make([]bool, w*h)
	var comps []Component
	var queue []image.Point

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] || mask.Pix[y*mask.Stride+x] == 0 {
				continue
			}
			visited[idx] = true
			queue = append(queue[:0], image.Pt(x, y))
			comp := Component{Bounds: image.Rect(x, y, x+1, y+1)}
			for len(queue) > 0 {
				p := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				comp.Area++
				comp.Bounds = comp.Bounds.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						nidx := ny*w + nx
						if visited[nidx] || mask.Pix[ny*mask.Stride+nx] == 0 {
							continue
						}
						visited[nidx] = true
						queue = append(queue, image.Pt(nx, ny))
					}
				}
			}
			comps = append(comps, comp)
		}
	}
	return comps
}
