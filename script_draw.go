package ggscript

import (
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/gogpu/gg"
)

// Draw calls come in two forms. The plain form captures a copy of the
// current paint and fails with ErrInvalidState when there is none. The
// With form takes its paint explicitly and leaves the current paint alone.

// Circle queues a circle centered at (cx, cy).
func (s *Script) Circle(cx, cy, radius float64) *Script {
	if p, ok := s.implicitPaint("Circle"); ok {
		s.add(CircleCommand{CX: cx, CY: cy, Radius: radius, Paint: p})
	}
	return s
}

// CircleWith is Circle with an explicit paint.
func (s *Script) CircleWith(cx, cy, radius float64, paint *Paint) *Script {
	if p, ok := s.explicitPaint("CircleWith", paint); ok {
		s.add(CircleCommand{CX: cx, CY: cy, Radius: radius, Paint: p})
	}
	return s
}

// Line queues a single segment from (x0, y0) to (x1, y1).
func (s *Script) Line(x0, y0, x1, y1 float64) *Script {
	if p, ok := s.implicitPaint("Line"); ok {
		s.add(LinesCommand{Points: []float64{x0, y0, x1, y1}, Paint: p})
	}
	return s
}

// LineWith is Line with an explicit paint.
func (s *Script) LineWith(x0, y0, x1, y1 float64, paint *Paint) *Script {
	if p, ok := s.explicitPaint("LineWith", paint); ok {
		s.add(LinesCommand{Points: []float64{x0, y0, x1, y1}, Paint: p})
	}
	return s
}

// Lines queues independent segments, four values (x0, y0, x1, y1) per
// segment. pts is copied.
func (s *Script) Lines(pts []float64) *Script {
	return s.LinesRange(pts, 0, len(pts))
}

// LinesWith is Lines with an explicit paint.
func (s *Script) LinesWith(pts []float64, paint *Paint) *Script {
	return s.LinesRangeWith(pts, 0, len(pts), paint)
}

// LinesRange queues the segments in pts[offset : offset+count].
func (s *Script) LinesRange(pts []float64, offset, count int) *Script {
	win, ok := s.window("LinesRange", pts, offset, count)
	if !ok {
		return s
	}
	if p, ok := s.implicitPaint("LinesRange"); ok {
		s.add(LinesCommand{Points: win, Paint: p})
	}
	return s
}

// LinesRangeWith is LinesRange with an explicit paint.
func (s *Script) LinesRangeWith(pts []float64, offset, count int, paint *Paint) *Script {
	win, ok := s.window("LinesRangeWith", pts, offset, count)
	if !ok {
		return s
	}
	if p, ok := s.explicitPaint("LinesRangeWith", paint); ok {
		s.add(LinesCommand{Points: win, Paint: p})
	}
	return s
}

// Point queues a single point.
func (s *Script) Point(x, y float64) *Script {
	if p, ok := s.implicitPaint("Point"); ok {
		s.add(PointsCommand{Points: []float64{x, y}, Paint: p})
	}
	return s
}

// PointWith is Point with an explicit paint.
func (s *Script) PointWith(x, y float64, paint *Paint) *Script {
	if p, ok := s.explicitPaint("PointWith", paint); ok {
		s.add(PointsCommand{Points: []float64{x, y}, Paint: p})
	}
	return s
}

// Points queues points, two values (x, y) per point. pts is copied.
func (s *Script) Points(pts []float64) *Script {
	return s.PointsRange(pts, 0, len(pts))
}

// PointsWith is Points with an explicit paint.
func (s *Script) PointsWith(pts []float64, paint *Paint) *Script {
	return s.PointsRangeWith(pts, 0, len(pts), paint)
}

// PointsRange queues the points in pts[offset : offset+count].
func (s *Script) PointsRange(pts []float64, offset, count int) *Script {
	win, ok := s.window("PointsRange", pts, offset, count)
	if !ok {
		return s
	}
	if p, ok := s.implicitPaint("PointsRange"); ok {
		s.add(PointsCommand{Points: win, Paint: p})
	}
	return s
}

// PointsRangeWith is PointsRange with an explicit paint.
func (s *Script) PointsRangeWith(pts []float64, offset, count int, paint *Paint) *Script {
	win, ok := s.window("PointsRangeWith", pts, offset, count)
	if !ok {
		return s
	}
	if p, ok := s.explicitPaint("PointsRangeWith", paint); ok {
		s.add(PointsCommand{Points: win, Paint: p})
	}
	return s
}

// window returns a copy of pts[offset : offset+count], recording
// ErrInvalidArgument when the window is out of range.
func (s *Script) window(op string, pts []float64, offset, count int) ([]float64, bool) {
	if offset < 0 || count < 0 || offset+count > len(pts) {
		s.fail(ErrInvalidArgument, fmt.Sprintf("%s window [%d:%d] of %d values", op, offset, offset+count, len(pts)))
		return nil, false
	}
	return slices.Clone(pts[offset : offset+count]), true
}

// Oval queues the ellipse inscribed in the given bounds.
func (s *Script) Oval(left, top, right, bottom float64) *Script {
	return s.OvalRect(NewRect(left, top, right, bottom))
}

// OvalWith is Oval with an explicit paint.
func (s *Script) OvalWith(left, top, right, bottom float64, paint *Paint) *Script {
	return s.OvalRectWith(NewRect(left, top, right, bottom), paint)
}

// OvalRect queues the ellipse inscribed in r.
func (s *Script) OvalRect(r Rect) *Script {
	if p, ok := s.implicitPaint("Oval"); ok {
		s.add(OvalCommand{Bounds: r, Paint: p})
	}
	return s
}

// OvalRectWith is OvalRect with an explicit paint.
func (s *Script) OvalRectWith(r Rect, paint *Paint) *Script {
	if p, ok := s.explicitPaint("OvalWith", paint); ok {
		s.add(OvalCommand{Bounds: r, Paint: p})
	}
	return s
}

// Rect queues a rectangle.
func (s *Script) Rect(left, top, right, bottom float64) *Script {
	return s.RectR(NewRect(left, top, right, bottom))
}

// RectWith is Rect with an explicit paint.
func (s *Script) RectWith(left, top, right, bottom float64, paint *Paint) *Script {
	return s.RectRWith(NewRect(left, top, right, bottom), paint)
}

// RectR queues the rectangle r.
func (s *Script) RectR(r Rect) *Script {
	if p, ok := s.implicitPaint("Rect"); ok {
		s.add(RectCommand{Bounds: r, Paint: p})
	}
	return s
}

// RectRWith is RectR with an explicit paint.
func (s *Script) RectRWith(r Rect, paint *Paint) *Script {
	if p, ok := s.explicitPaint("RectWith", paint); ok {
		s.add(RectCommand{Bounds: r, Paint: p})
	}
	return s
}

// RectImage queues an integer rectangle.
func (s *Script) RectImage(r image.Rectangle) *Script {
	return s.RectR(RectFromImage(r))
}

// RectImageWith is RectImage with an explicit paint.
func (s *Script) RectImageWith(r image.Rectangle, paint *Paint) *Script {
	return s.RectRWith(RectFromImage(r), paint)
}

// RoundRect queues a rectangle with elliptical corners of radii rx and ry.
func (s *Script) RoundRect(left, top, right, bottom, rx, ry float64) *Script {
	return s.RoundRectR(NewRect(left, top, right, bottom), rx, ry)
}

// RoundRectWith is RoundRect with an explicit paint.
func (s *Script) RoundRectWith(left, top, right, bottom, rx, ry float64, paint *Paint) *Script {
	return s.RoundRectRWith(NewRect(left, top, right, bottom), rx, ry, paint)
}

// RoundRectR queues r with elliptical corners of radii rx and ry.
func (s *Script) RoundRectR(r Rect, rx, ry float64) *Script {
	if p, ok := s.implicitPaint("RoundRect"); ok {
		s.add(RoundRectCommand{Bounds: r, RX: rx, RY: ry, Paint: p})
	}
	return s
}

// RoundRectRWith is RoundRectR with an explicit paint.
func (s *Script) RoundRectRWith(r Rect, rx, ry float64, paint *Paint) *Script {
	if p, ok := s.explicitPaint("RoundRectWith", paint); ok {
		s.add(RoundRectCommand{Bounds: r, RX: rx, RY: ry, Paint: p})
	}
	return s
}

// RoundRectRadius queues r with circular corners of the given radius.
func (s *Script) RoundRectRadius(r Rect, radius float64) *Script {
	return s.RoundRectR(r, radius, radius)
}

// RoundRectRadiusWith is RoundRectRadius with an explicit paint.
func (s *Script) RoundRectRadiusWith(r Rect, radius float64, paint *Paint) *Script {
	return s.RoundRectRWith(r, radius, radius, paint)
}

// Arc queues an arc of the oval inscribed in bounds. Angles are in degrees,
// 0 pointing right and positive sweeping clockwise. With useCenter the arc
// is drawn as a wedge.
func (s *Script) Arc(bounds Rect, startAngle, sweepAngle float64, useCenter bool) *Script {
	if p, ok := s.implicitPaint("Arc"); ok {
		s.add(ArcCommand{Bounds: bounds, StartAngle: startAngle, SweepAngle: sweepAngle, UseCenter: useCenter, Paint: p})
	}
	return s
}

// ArcWith is Arc with an explicit paint.
func (s *Script) ArcWith(bounds Rect, startAngle, sweepAngle float64, useCenter bool, paint *Paint) *Script {
	if p, ok := s.explicitPaint("ArcWith", paint); ok {
		s.add(ArcCommand{Bounds: bounds, StartAngle: startAngle, SweepAngle: sweepAngle, UseCenter: useCenter, Paint: p})
	}
	return s
}

// Path queues a copy of path.
func (s *Script) Path(path *gg.Path) *Script {
	if path == nil {
		return s.fail(ErrInvalidArgument, "Path with nil path")
	}
	if p, ok := s.implicitPaint("Path"); ok {
		s.add(PathCommand{Path: path.Clone(), Paint: p})
	}
	return s
}

// PathWith is Path with an explicit paint.
func (s *Script) PathWith(path *gg.Path, paint *Paint) *Script {
	if path == nil {
		return s.fail(ErrInvalidArgument, "PathWith with nil path")
	}
	if p, ok := s.explicitPaint("PathWith", paint); ok {
		s.add(PathCommand{Path: path.Clone(), Paint: p})
	}
	return s
}

// Text queues str with its baseline origin at (x, y), adjusted by the
// paint's text alignment.
func (s *Script) Text(str string, x, y float64) *Script {
	if p, ok := s.implicitPaint("Text"); ok {
		s.add(TextCommand{Text: str, X: x, Y: y, Paint: p})
	}
	return s
}

// TextWith is Text with an explicit paint.
func (s *Script) TextWith(str string, x, y float64, paint *Paint) *Script {
	if p, ok := s.explicitPaint("TextWith", paint); ok {
		s.add(TextCommand{Text: str, X: x, Y: y, Paint: p})
	}
	return s
}

// Bitmap methods accept an optional paint. The plain forms use a copy of
// the current paint when there is one and never fail for lack of it. The
// image is referenced, not copied, and must not change before Draw.

// Bitmap queues img at the origin.
func (s *Script) Bitmap(img image.Image) *Script {
	return s.BitmapAtWith(img, 0, 0, s.paint)
}

// BitmapWith is Bitmap with an explicit, possibly nil, paint.
func (s *Script) BitmapWith(img image.Image, paint *Paint) *Script {
	return s.BitmapAtWith(img, 0, 0, paint)
}

// BitmapAt queues img with its top-left corner at (left, top).
func (s *Script) BitmapAt(img image.Image, left, top float64) *Script {
	return s.BitmapAtWith(img, left, top, s.paint)
}

// BitmapAtWith is BitmapAt with an explicit, possibly nil, paint.
func (s *Script) BitmapAtWith(img image.Image, left, top float64, paint *Paint) *Script {
	if img == nil {
		return s.fail(ErrInvalidArgument, "Bitmap with nil image")
	}
	b := img.Bounds()
	dst := Rect{Left: left, Top: top, Right: left + float64(b.Dx()), Bottom: top + float64(b.Dy())}
	return s.BitmapRectWith(img, nil, dst, paint)
}

// BitmapSize queues img scaled to width x height at the origin.
func (s *Script) BitmapSize(img image.Image, width, height float64) *Script {
	return s.BitmapRectWith(img, nil, Rect{Right: width, Bottom: height}, s.paint)
}

// BitmapSizeWith is BitmapSize with an explicit, possibly nil, paint.
func (s *Script) BitmapSizeWith(img image.Image, width, height float64, paint *Paint) *Script {
	return s.BitmapRectWith(img, nil, Rect{Right: width, Bottom: height}, paint)
}

// BitmapRect queues the src region of img (all of it when src is nil)
// scaled into dst.
func (s *Script) BitmapRect(img image.Image, src *image.Rectangle, dst Rect) *Script {
	return s.BitmapRectWith(img, src, dst, s.paint)
}

// BitmapRectWith is BitmapRect with an explicit, possibly nil, paint.
func (s *Script) BitmapRectWith(img image.Image, src *image.Rectangle, dst Rect, paint *Paint) *Script {
	if img == nil {
		return s.fail(ErrInvalidArgument, "Bitmap with nil image")
	}
	cmd := BitmapCommand{Image: img, Dst: dst, Paint: paint.Clone()}
	if src != nil {
		r := *src
		cmd.Src = &r
	}
	return s.add(cmd)
}

// BitmapMatrix queues img mapped through m.
func (s *Script) BitmapMatrix(img image.Image, m gg.Matrix) *Script {
	return s.BitmapMatrixWith(img, m, s.paint)
}

// BitmapMatrixWith is BitmapMatrix with an explicit, possibly nil, paint.
func (s *Script) BitmapMatrixWith(img image.Image, m gg.Matrix, paint *Paint) *Script {
	if img == nil {
		return s.fail(ErrInvalidArgument, "BitmapMatrix with nil image")
	}
	return s.add(BitmapMatrixCommand{Image: img, Matrix: m, Paint: paint.Clone()})
}

// Picture queues a replay of pic.
func (s *Script) Picture(pic *Picture) *Script {
	if pic == nil {
		return s.fail(ErrInvalidArgument, "Picture with nil picture")
	}
	return s.add(PictureCommand{Picture: pic})
}

// PictureRect queues a replay of pic clipped and scaled to dst.
func (s *Script) PictureRect(pic *Picture, dst Rect) *Script {
	if pic == nil {
		return s.fail(ErrInvalidArgument, "PictureRect with nil picture")
	}
	return s.add(PictureCommand{Picture: pic, Dst: &dst})
}

// DrawColor fills the clip with c, composited source-over.
func (s *Script) DrawColor(c color.Color) *Script {
	return s.DrawColorMode(c, BlendSrcOver)
}

// DrawColorMode fills the clip with c using mode.
func (s *Script) DrawColorMode(c color.Color, mode BlendMode) *Script {
	return s.add(ColorCommand{Color: rgbaOf(c), Mode: mode})
}

// DrawPaint fills the clip with paint.
func (s *Script) DrawPaint(paint *Paint) *Script {
	if p, ok := s.explicitPaint("DrawPaint", paint); ok {
		s.add(PaintCommand{Paint: p})
	}
	return s
}
