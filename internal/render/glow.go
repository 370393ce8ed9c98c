package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Glow returns a soft halo of src's coverage: the alpha channel is box
// blurred by radius and tinted with col. The result shares src's bounds so it
// can be composited directly underneath the shape that produced it, keeping
// annotations legible on any background.
func Glow(src *image.RGBA, radius int, col color.RGBA) *image.RGBA {
	if src == nil || src.Bounds().Empty() || col.A == 0 {
		return nil
	}
	if radius < 0 {
		radius = 0
	}

	bounds := src.Bounds()
	mask := image.NewGray(bounds.Sub(bounds.Min))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := src.RGBAAt(x, y).A
			if a == 0 {
				continue
			}
			mask.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: a})
		}
	}

	blurred := blurGray(mask, radius)

	dst := image.NewRGBA(bounds.Sub(bounds.Min))
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(col), image.Point{}, blurred, blurred.Bounds().Min, draw.Over)
	return dst
}

// blurGray applies a two-pass box blur using prefix sums per row and column.
func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	for y := 0; y < h; y++ {
		rowStart := y * src.Stride
		tmpStart := y * tmp.Stride
		prefix := make([]int, w+1)
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[rowStart+x])
		}
		for x := 0; x < w; x++ {
			x0 := x - radius
			if x0 < 0 {
				x0 = 0
			}
			x1 := x + radius
			if x1 >= w {
				x1 = w - 1
			}
			sum := prefix[x1+1] - prefix[x0]
			count := x1 - x0 + 1
			tmp.Pix[tmpStart+x] = uint8(sum / count)
		}
	}

	for x := 0; x < w; x++ {
		prefix := make([]int, h+1)
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := y - radius
			if y0 < 0 {
				y0 = 0
			}
			y1 := y + radius
			if y1 >= h {
				y1 = h - 1
			}
			sum := prefix[y1+1] - prefix[y0]
			count := y1 - y0 + 1
			dst.Pix[y*dst.Stride+x] = uint8(sum / count)
		}
	}

	return dst
}
