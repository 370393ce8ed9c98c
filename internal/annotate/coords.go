package annotate

// DisplayRect is the on-screen bounding rectangle of the surface as shown to
// the user. Displayed size may differ from the backing pixel size when the
// viewport scales the surface, so callers must read it fresh on every pointer
// event rather than caching it across events.
type DisplayRect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// ToSurfaceCoords converts viewport-relative client coordinates into surface
// pixel coordinates. Horizontal and vertical scale are computed independently.
//
// If the displayed width or height is zero the scale factors are not finite;
// callers are expected to ignore pointer events before the surface has been
// laid out.
func ToSurfaceCoords(surfaceW, surfaceH int, disp DisplayRect, clientX, clientY float64) Point {
	scaleX := float64(surfaceW) / disp.Width
	scaleY := float64(surfaceH) / disp.Height
	return Point{
		X: (clientX - disp.Left) * scaleX,
		Y: (clientY - disp.Top) * scaleY,
	}
}
