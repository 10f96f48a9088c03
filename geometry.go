package ggscript

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// Rect is an axis-aligned rectangle given by its four edges.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// NewRect returns the rectangle with the given edges.
func NewRect(left, top, right, bottom float64) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// RectFromImage converts an integer image rectangle.
func RectFromImage(r image.Rectangle) Rect {
	return Rect{
		Left:   float64(r.Min.X),
		Top:    float64(r.Min.Y),
		Right:  float64(r.Max.X),
		Bottom: float64(r.Max.Y),
	}
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Empty reports whether r encloses no area.
func (r Rect) Empty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Sorted returns r with Left <= Right and Top <= Bottom.
func (r Rect) Sorted() Rect {
	return Rect{
		Left:   math.Min(r.Left, r.Right),
		Top:    math.Min(r.Top, r.Bottom),
		Right:  math.Max(r.Left, r.Right),
		Bottom: math.Max(r.Top, r.Bottom),
	}
}

// RectPath returns a closed rectangle outline.
func RectPath(r Rect) *gg.Path {
	p := gg.NewPath()
	p.Rectangle(r.Left, r.Top, r.Width(), r.Height())
	return p
}

// CirclePath returns a closed circle outline.
func CirclePath(cx, cy, radius float64) *gg.Path {
	p := gg.NewPath()
	p.Circle(cx, cy, radius)
	return p
}

// OvalPath returns the ellipse inscribed in r.
func OvalPath(r Rect) *gg.Path {
	p := gg.NewPath()
	p.Ellipse(r.CenterX(), r.CenterY(), r.Width()/2, r.Height()/2)
	return p
}

// RoundRectPath returns a rectangle whose corners are elliptical arcs with
// radii rx and ry. Radii are clamped to half the rectangle size.
func RoundRectPath(r Rect, rx, ry float64) *gg.Path {
	r = r.Sorted()
	rx = math.Min(math.Max(rx, 0), r.Width()/2)
	ry = math.Min(math.Max(ry, 0), r.Height()/2)
	if rx == 0 || ry == 0 {
		return RectPath(r)
	}

	p := gg.NewPath()
	p.MoveTo(r.Left+rx, r.Top)
	p.LineTo(r.Right-rx, r.Top)
	appendArc(p, r.Right-rx, r.Top+ry, rx, ry, -math.Pi/2, math.Pi/2)
	p.LineTo(r.Right, r.Bottom-ry)
	appendArc(p, r.Right-rx, r.Bottom-ry, rx, ry, 0, math.Pi/2)
	p.LineTo(r.Left+rx, r.Bottom)
	appendArc(p, r.Left+rx, r.Bottom-ry, rx, ry, math.Pi/2, math.Pi/2)
	p.LineTo(r.Left, r.Top+ry)
	appendArc(p, r.Left+rx, r.Top+ry, rx, ry, math.Pi, math.Pi/2)
	p.Close()
	return p
}

// ArcPath returns the arc of the ellipse inscribed in bounds, starting at
// startDeg and sweeping sweepDeg degrees clockwise. With useCenter the arc is
// closed through the center as a wedge. A sweep of 360 degrees or more
// yields the full oval.
func ArcPath(bounds Rect, startDeg, sweepDeg float64, useCenter bool) *gg.Path {
	if math.Abs(sweepDeg) >= 360 && !useCenter {
		return OvalPath(bounds)
	}
	sweepDeg = math.Max(-360, math.Min(360, sweepDeg))

	cx, cy := bounds.CenterX(), bounds.CenterY()
	rx, ry := bounds.Width()/2, bounds.Height()/2
	a0 := startDeg * math.Pi / 180
	sweep := sweepDeg * math.Pi / 180

	p := gg.NewPath()
	sx, sy := cx+rx*math.Cos(a0), cy+ry*math.Sin(a0)
	if useCenter {
		p.MoveTo(cx, cy)
		p.LineTo(sx, sy)
	} else {
		p.MoveTo(sx, sy)
	}
	appendArc(p, cx, cy, rx, ry, a0, sweep)
	if useCenter {
		p.Close()
	}
	return p
}

// appendArc adds cubic segments approximating an elliptical arc. The current
// point must already be at the arc start.
func appendArc(p *gg.Path, cx, cy, rx, ry, a0, sweep float64) {
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if n == 0 {
		return
	}
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := 0; i < n; i++ {
		a1 := a0 + step
		cos0, sin0 := math.Cos(a0), math.Sin(a0)
		cos1, sin1 := math.Cos(a1), math.Sin(a1)
		p.CubicTo(
			cx+rx*(cos0-k*sin0), cy+ry*(sin0+k*cos0),
			cx+rx*(cos1+k*sin1), cy+ry*(sin1-k*cos1),
			cx+rx*cos1, cy+ry*sin1,
		)
		a0 = a1
	}
}

// PointsPath returns one mark per point of pts, two values per point: a
// square of side size, or a circle of diameter size when round is set.
func PointsPath(pts []float64, size float64, round bool) *gg.Path {
	size = math.Max(size, 1)
	p := gg.NewPath()
	for i := 0; i+1 < len(pts); i += 2 {
		x, y := pts[i], pts[i+1]
		if round {
			p.Circle(x, y, size/2)
		} else {
			p.Rectangle(x-size/2, y-size/2, size, size)
		}
	}
	return p
}

// LinesPath returns independent segments from pts, four values per segment.
// A trailing partial segment is ignored.
func LinesPath(pts []float64) *gg.Path {
	p := gg.NewPath()
	for i := 0; i+3 < len(pts); i += 4 {
		p.MoveTo(pts[i], pts[i+1])
		p.LineTo(pts[i+2], pts[i+3])
	}
	return p
}
