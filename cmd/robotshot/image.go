package main

import (
	"bufio"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
)

// loadImage reads a PNG file and normalizes it to RGBA.
func loadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	src, err := png.Decode(f)
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing %q: %v", path, cerr)
		}
		return nil, err
	}
	if err := f.Close(); err != nil {
		log.Printf("error closing %q: %v", path, err)
	}
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(src.Bounds())
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
	return rgba, nil
}

func writePNGStdout(img image.Image) error {
	w := bufio.NewWriter(os.Stdout)
	if err := png.Encode(w, img); err != nil {
		return err
	}
	return w.Flush()
}
