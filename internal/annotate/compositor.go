package annotate

// Redraw clears the full surface and paints every element in list order.
// There is no dirty-rect optimisation: screenshot canvases repaint on user
// edits, not per frame, so a full clear keeps the compositor trivially
// correct. A fault in one element never stops the remaining elements from
// being painted.
func (r *Renderer) Redraw(s Surface, elements []Element) {
	s.Clear()
	for _, e := range elements {
		r.Render(s, e)
	}
}

var defaultRenderer Renderer

// Redraw composites elements onto s using the default renderer.
func Redraw(s Surface, elements []Element) {
	defaultRenderer.Redraw(s, elements)
}

// Render paints a single element using the default renderer.
func Render(s Surface, e Element) {
	defaultRenderer.Render(s, e)
}
