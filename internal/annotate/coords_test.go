package annotate

import (
	"math"
	"testing"
)

func TestToSurfaceCoordsIdentityScale(t *testing.T) {
	disp := DisplayRect{Left: 17, Top: 31, Width: 1080, Height: 1920}
	got := ToSurfaceCoords(1080, 1920, disp, 117, 131)
	if got.X != 100 || got.Y != 100 {
		t.Fatalf("1:1 mapping = %v, want (100,100)", got)
	}
}

func TestToSurfaceCoordsScaled(t *testing.T) {
	tests := []struct {
		name             string
		sw, sh           int
		disp             DisplayRect
		clientX, clientY float64
		want             Point
	}{
		{
			name: "downscaled display",
			sw:   2160, sh: 3840,
			disp:    DisplayRect{Left: 0, Top: 0, Width: 540, Height: 960},
			clientX: 270, clientY: 480,
			want: Point{1080, 1920},
		},
		{
			name: "anisotropic scale",
			sw:   1000, sh: 500,
			disp:    DisplayRect{Left: 10, Top: 20, Width: 500, Height: 500},
			clientX: 260, clientY: 270,
			want: Point{500, 250},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToSurfaceCoords(tt.sw, tt.sh, tt.disp, tt.clientX, tt.clientY)
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToSurfaceCoordsDegenerateLayout(t *testing.T) {
	// Zero displayed size is a documented caller-guarded case: the mapper
	// returns non-finite values rather than panicking.
	got := ToSurfaceCoords(1080, 1920, DisplayRect{}, 10, 10)
	if !math.IsInf(got.X, 1) && !math.IsNaN(got.X) {
		t.Fatalf("expected non-finite X, got %v", got.X)
	}
}
