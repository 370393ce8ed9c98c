//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import (
	"fmt"
	"image"
	"runtime"
)

func WriteImage(image.Image) error {
	return fmt.Errorf("clipboard is not supported on %s", runtime.GOOS)
}

func ReadImage() (image.Image, error) {
	return nil, fmt.Errorf("clipboard is not supported on %s", runtime.GOOS)
}

func WriteText(string) error {
	return fmt.Errorf("clipboard is not supported on %s", runtime.GOOS)
}
