// Package export writes annotated screenshots out as PNG files, PDF
// reports or clipboard images.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/lucasdeeiroz/robotshot/internal/clipboard"
)

// DefaultName builds a timestamped filename such as
// "robotshot-20260831-154210.png".
func DefaultName(ext string) string {
	return fmt.Sprintf("robotshot-%s.%s", time.Now().Format("20060102-150405"), ext)
}

// SavePNG writes img to path, creating parent directories as needed.
func SavePNG(path string, img image.Image) error {
	if img == nil {
		return fmt.Errorf("export: no image to save")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

// CopyImage places img on the system clipboard.
func CopyImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("export: no image to copy")
	}
	return clipboard.WriteImage(img)
}

// A4 content box in millimetres, inside a 10mm margin.
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
	pageMarginMM = 10.0
)

// SavePDF writes each image onto its own A4 page, scaled to fit while
// keeping the aspect ratio. Device screenshots are portrait-heavy, so
// pages are portrait.
func SavePDF(path string, images []image.Image) error {
	if len(images) == 0 {
		return fmt.Errorf("export: no images for PDF")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	for i, img := range images {
		if img == nil {
			return fmt.Errorf("export: page %d is empty", i+1)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("export: encode page %d: %w", i+1, err)
		}
		name := fmt.Sprintf("page-%d", i+1)
		pdf.RegisterImageOptionsReader(name, opts, &buf)

		bounds := img.Bounds()
		w, h := fitPage(float64(bounds.Dx()), float64(bounds.Dy()))
		pdf.AddPage()
		pdf.ImageOptions(name, pageMarginMM, pageMarginMM, w, h, false, opts, 0, "")
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("export: build PDF: %w", err)
	}
	return pdf.OutputFileAndClose(path)
}

func fitPage(w, h float64) (float64, float64) {
	maxW := pageWidthMM - 2*pageMarginMM
	maxH := pageHeightMM - 2*pageMarginMM
	scale := maxW / w
	if s := maxH / h; s < scale {
		scale = s
	}
	return w * scale, h * scale
}
