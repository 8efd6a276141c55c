package viewport

import "math"

const (
	MinZoom  = 1.0
	MaxZoom  = 3.0
	ZoomStep = 0.2
)

// Mode is the drag state of a Controller.
type Mode int

const (
	Idle Mode = iota
	Dragging
)

func (m Mode) String() string {
	if m == Dragging {
		return "dragging"
	}
	return "idle"
}

// State is the zoom and pan applied to the page image. Offset is in display
// pixels at the current zoom.
type State struct {
	Zoom   float64
	Offset Point
}

// drag exists only while a drag is in progress.
type drag struct {
	anchor  Point
	touch   int64
	byTouch bool
}

// Controller owns the viewport state. The zero value is not ready for use;
// call NewController.
type Controller struct {
	zoom   float64
	offset Point
	drag   *drag
}

func NewController() *Controller {
	return &Controller{zoom: MinZoom}
}

func (c *Controller) State() State { return State{Zoom: c.zoom, Offset: c.offset} }

func (c *Controller) Mode() Mode {
	if c.drag != nil {
		return Dragging
	}
	return Idle
}

// ZoomIn steps the zoom up, never past MaxZoom. The offset is kept.
func (c *Controller) ZoomIn() {
	c.zoom = math.Min(c.zoom+ZoomStep, MaxZoom)
}

// ZoomOut steps the zoom down, never below MinZoom. The offset is kept.
func (c *Controller) ZoomOut() {
	c.zoom = math.Max(c.zoom-ZoomStep, MinZoom)
}

// ResetZoom returns to the base zoom with no pan and abandons any drag.
func (c *Controller) ResetZoom() {
	c.zoom = MinZoom
	c.offset = Point{}
	c.drag = nil
}

// BeginDrag starts panning from pos. It does nothing at the base zoom or
// while a drag is already in progress.
func (c *Controller) BeginDrag(pos Point) {
	if c.zoom <= MinZoom || c.drag != nil {
		return
	}
	c.drag = &drag{anchor: pos.Sub(c.offset)}
}

// UpdateDrag pans so the anchor stays under pos. Outside a drag it does
// nothing.
func (c *Controller) UpdateDrag(pos Point) {
	if c.drag == nil {
		return
	}
	c.offset = pos.Sub(c.drag.anchor)
}

// EndDrag returns to Idle. Pointer leave and touch cancel end a drag the
// same way.
func (c *Controller) EndDrag() {
	c.drag = nil
}

// TouchStart begins a drag for the first touch point. Further touch points
// are ignored until it ends.
func (c *Controller) TouchStart(id int64, pos Point) {
	if c.drag != nil {
		return
	}
	c.BeginDrag(pos)
	if c.drag != nil {
		c.drag.touch = id
		c.drag.byTouch = true
	}
}

func (c *Controller) TouchMove(id int64, pos Point) {
	if c.drag == nil || !c.drag.byTouch || c.drag.touch != id {
		return
	}
	c.UpdateDrag(pos)
}

// TouchEnd ends the drag owned by touch id. It also serves touch cancel.
func (c *Controller) TouchEnd(id int64) {
	if c.drag == nil || !c.drag.byTouch || c.drag.touch != id {
		return
	}
	c.drag = nil
}

// Transform returns the image transform for the current state.
func (c *Controller) Transform() Transform {
	return TransformOf(c.State())
}

// Transform scales the image by Scale about the origin and then translates
// it by Translate in scaled units, so a display point p maps to
// p*Scale + Translate*Scale. Translate is Offset/Zoom, which keeps dragging
// 1:1 with the pointer at every zoom.
type Transform struct {
	Scale     float64
	Translate Point
}

func TransformOf(s State) Transform {
	return Transform{Scale: s.Zoom, Translate: s.Offset.Scale(1 / s.Zoom)}
}

// Apply maps an unzoomed display point to where it is drawn.
func (t Transform) Apply(p Point) Point {
	return p.Add(t.Translate).Scale(t.Scale)
}

// Invert maps a drawn point back to unzoomed display space.
func (t Transform) Invert(p Point) Point {
	return p.Scale(1 / t.Scale).Sub(t.Translate)
}

// ApplyRect maps r through the transform.
func (t Transform) ApplyRect(r Rect) Rect {
	tl := t.Apply(Point{r.Left, r.Top})
	return Rect{Left: tl.X, Top: tl.Y, Width: r.Width * t.Scale, Height: r.Height * t.Scale}
}
