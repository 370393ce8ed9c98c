//go:build linux || freebsd || openbsd || netbsd

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb/xproto"
)

// zPixmapToRGBA converts raw ZPixmap bytes to an RGBA image. X servers
// deliver little-endian BGRx (or BGR for 24 bits per pixel) rows padded
// to the scanline unit of the matching pixmap format.
func zPixmapToRGBA(data []byte, width, height int, depth byte, formats []xproto.Format) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("capture: empty image %dx%d", width, height)
	}
	bpp, pad := 32, 32
	for _, f := range formats {
		if f.Depth == depth {
			bpp, pad = int(f.BitsPerPixel), int(f.ScanlinePad)
			break
		}
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("capture: unsupported pixel depth %d (%d bpp)", depth, bpp)
	}
	stride := (width*bpp + pad - 1) / pad * (pad / 8)
	if len(data) < stride*height {
		return nil, fmt.Errorf("capture: short image data: %d bytes for %dx%d", len(data), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bytesPerPixel := bpp / 8
	for y := 0; y < height; y++ {
		row := data[y*stride:]
		out := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			src := row[x*bytesPerPixel:]
			dst := out[x*4:]
			dst[0] = src[2]
			dst[1] = src[1]
			dst[2] = src[0]
			dst[3] = 0xff
		}
	}
	return img, nil
}
