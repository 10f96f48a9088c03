package ggscript

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// RasterSurface draws into pixels using a gg.Context.
//
// gg's Push and Pop save the matrix, clip and mask; RasterSurface layers a
// frame stack on top of them so that save counts and offscreen layers can
// be tracked and unwound together.
//
// # Limitations
//
//   - Shadow blur is not rendered; shadows are drawn as hard offset copies.
//   - BlendClear and BlendSrc only apply to DrawColor. On shapes they fall
//     back to source-over.
//   - Text ignores the rotation and scale of the matrix; only its origin is
//     transformed.
type RasterSurface struct {
	ctx    *gg.Context
	frames []rasterFrame
}

type rasterFrame struct {
	layer bool
}

var (
	_ Surface       = (*RasterSurface)(nil)
	_ WriterSurface = (*RasterSurface)(nil)
	_ ImageSurface  = (*RasterSurface)(nil)
	_ PivotRotator  = (*RasterSurface)(nil)
)

// NewRasterSurface returns a transparent surface of the given size.
func NewRasterSurface(width, height int) *RasterSurface {
	return &RasterSurface{ctx: gg.NewContext(width, height)}
}

// NewRasterSurfaceForImage returns a surface initialized with the pixels of img.
func NewRasterSurfaceForImage(img image.Image) *RasterSurface {
	return &RasterSurface{ctx: gg.NewContextForImage(img)}
}

// Context returns the underlying gg context.
func (s *RasterSurface) Context() *gg.Context { return s.ctx }

// Width returns the surface width.
func (s *RasterSurface) Width() int { return s.ctx.Width() }

// Height returns the surface height.
func (s *RasterSurface) Height() int { return s.ctx.Height() }

// Image returns a copy of the current pixels.
func (s *RasterSurface) Image() image.Image { return s.ctx.Image() }

// WriteTo encodes the current pixels as PNG.
func (s *RasterSurface) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := s.ctx.EncodePNG(cw)
	return cw.n, err
}

// --------------------------------------------------------------------------
// State
// --------------------------------------------------------------------------

// SaveCount returns 1 plus the number of outstanding saves.
func (s *RasterSurface) SaveCount() int { return len(s.frames) + 1 }

// Save pushes the matrix and clip. Flags are ignored; gg always saves both.
func (s *RasterSurface) Save(SaveFlags) int {
	n := s.SaveCount()
	s.ctx.Push()
	s.frames = append(s.frames, rasterFrame{})
	return n
}

// SaveLayer pushes state and starts an offscreen layer composited with
// the alpha and blend mode of p.
func (s *RasterSurface) SaveLayer(bounds *Rect, p *Paint, _ SaveFlags) int {
	opacity, mode := 1.0, gg.BlendNormal
	if p != nil {
		opacity = p.Color.A
		mode = s.layerMode(p.BlendMode)
	}
	return s.pushLayer(bounds, mode, opacity)
}

// SaveLayerAlpha pushes state and starts an offscreen layer composited with alpha/255.
func (s *RasterSurface) SaveLayerAlpha(bounds *Rect, alpha int, _ SaveFlags) int {
	return s.pushLayer(bounds, gg.BlendNormal, float64(min(max(alpha, 0), maxAlpha))/maxAlpha)
}

func (s *RasterSurface) pushLayer(bounds *Rect, mode gg.BlendMode, opacity float64) int {
	n := s.SaveCount()
	s.ctx.Push()
	if bounds != nil {
		s.ClipRect(*bounds)
	}
	s.ctx.PushLayer(mode, opacity)
	s.frames = append(s.frames, rasterFrame{layer: true})
	return n
}

// Restore pops the most recent save, compositing its layer if it has one.
func (s *RasterSurface) Restore() error {
	if len(s.frames) == 0 {
		Logger().Warn("ggscript: raster restore underflow")
		return ErrRestoreUnderflow
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	if f.layer {
		s.ctx.PopLayer()
	}
	s.ctx.Pop()
	return nil
}

// RestoreToCount pops saves until SaveCount equals count. A count above
// the current save count is a no-op.
func (s *RasterSurface) RestoreToCount(count int) error {
	if count < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSaveCount, count)
	}
	for s.SaveCount() > count {
		if err := s.Restore(); err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Transform and clip
// --------------------------------------------------------------------------

func (s *RasterSurface) Translate(dx, dy float64) { s.ctx.Translate(dx, dy) }

func (s *RasterSurface) Rotate(degrees float64) { s.ctx.Rotate(radians(degrees)) }

// RotateAbout rotates clockwise by degrees around (px, py).
func (s *RasterSurface) RotateAbout(degrees, px, py float64) {
	s.ctx.RotateAbout(radians(degrees), px, py)
}

func (s *RasterSurface) Scale(sx, sy float64) { s.ctx.Scale(sx, sy) }

func (s *RasterSurface) Skew(sx, sy float64) { s.ctx.Shear(sx, sy) }

func (s *RasterSurface) Concat(m gg.Matrix) { s.ctx.Transform(m) }

// ClipRect intersects the clip with r. gg clips to the device-space bounding
// box of r, which is exact for axis-aligned matrices.
func (s *RasterSurface) ClipRect(r Rect) {
	r = r.Sorted()
	s.ctx.ClipRect(r.Left, r.Top, r.Width(), r.Height())
}

// --------------------------------------------------------------------------
// Drawing
// --------------------------------------------------------------------------

// DrawColor fills the clip with c. BlendClear and BlendSrc replace every
// pixel of the surface, ignoring the clip.
func (s *RasterSurface) DrawColor(c gg.RGBA, mode BlendMode) error {
	switch mode {
	case BlendDst:
		return nil
	case BlendClear:
		s.ctx.ClearWithColor(gg.Transparent)
		return nil
	case BlendSrc:
		s.ctx.ClearWithColor(c)
		return nil
	}
	p := NewPaint(0)
	p.Color = c
	p.BlendMode = mode
	return s.DrawPaint(p)
}

// DrawPaint fills the clip with p.
func (s *RasterSurface) DrawPaint(p *Paint) error {
	s.ctx.Push()
	defer s.ctx.Pop()
	s.ctx.Identity()

	q := *p
	q.Style = StyleFill
	q.Shadow = nil
	full := Rect{Right: float64(s.Width()), Bottom: float64(s.Height())}
	return s.drawPath(RectPath(full), &q)
}

func (s *RasterSurface) DrawCircle(cx, cy, radius float64, p *Paint) error {
	return s.drawPath(CirclePath(cx, cy, radius), p)
}

func (s *RasterSurface) DrawOval(r Rect, p *Paint) error {
	return s.drawPath(OvalPath(r), p)
}

func (s *RasterSurface) DrawRect(r Rect, p *Paint) error {
	return s.drawPath(RectPath(r), p)
}

func (s *RasterSurface) DrawRoundRect(r Rect, rx, ry float64, p *Paint) error {
	return s.drawPath(RoundRectPath(r, rx, ry), p)
}

func (s *RasterSurface) DrawArc(r Rect, startDeg, sweepDeg float64, useCenter bool, p *Paint) error {
	return s.drawPath(ArcPath(r, startDeg, sweepDeg, useCenter), p)
}

// DrawLines strokes each segment regardless of the paint style.
func (s *RasterSurface) DrawLines(pts []float64, p *Paint) error {
	q := *p
	q.Style = StyleStroke
	return s.drawPath(LinesPath(pts), &q)
}

// DrawPoints draws each point as a mark of the stroke width, round when
// the paint has a round cap.
func (s *RasterSurface) DrawPoints(pts []float64, p *Paint) error {
	q := *p
	q.Style = StyleFill
	return s.drawPath(PointsPath(pts, p.StrokeWidth, p.Cap == gg.LineCapRound), &q)
}

func (s *RasterSurface) DrawPath(path *gg.Path, p *Paint) error {
	return s.drawPath(path, p)
}

// DrawText draws s with its baseline origin at (x, y). Without a typeface
// nothing is drawn.
func (s *RasterSurface) DrawText(str string, x, y float64, p *Paint) error {
	if p.Typeface == nil {
		Logger().Debug("ggscript: text skipped, paint has no typeface")
		return nil
	}
	var opts []text.FaceOption
	if loc := p.Locale(); loc != "" {
		opts = append(opts, text.WithLanguage(loc))
	}
	face := p.Typeface.Face(p.TextSize, opts...)
	w, _ := text.Measure(str, face)
	switch p.TextAlign {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}

	s.ctx.SetFont(face)
	if sh := p.Shadow; sh != nil {
		s.drawString(str, x+sh.DX, y+sh.DY, sh.Color)
	}
	s.drawString(str, x, y, p.EffectiveColor())

	var decorations []float64
	if p.HasFlag(UnderlineText) {
		decorations = append(decorations, y+p.TextSize/9)
	}
	if p.HasFlag(StrikeThruText) {
		decorations = append(decorations, y-p.TextSize/3)
	}
	for _, dy := range decorations {
		q := *p
		q.Style = StyleFill
		q.Shadow = nil
		thick := p.TextSize / 18
		if err := s.drawPath(RectPath(Rect{Left: x, Top: dy, Right: x + w, Bottom: dy + thick}), &q); err != nil {
			return err
		}
	}
	return nil
}

func (s *RasterSurface) drawString(str string, x, y float64, c gg.RGBA) {
	dx, dy := s.ctx.TransformPoint(x, y)
	s.ctx.SetColor(c.Color())
	s.ctx.DrawString(str, dx, dy)
}

// DrawBitmap draws the src region of img scaled into dst.
func (s *RasterSurface) DrawBitmap(img image.Image, src *image.Rectangle, dst Rect, p *Paint) error {
	sr := img.Bounds()
	if src != nil {
		sr = src.Intersect(sr)
	}
	if sr.Empty() || dst.Empty() {
		return nil
	}

	m := s.ctx.GetTransform()
	if m.B != 0 || m.D != 0 || dst.Width() < 0 || dst.Height() < 0 {
		place := gg.Translate(dst.Left, dst.Top).
			Multiply(gg.Scale(dst.Width()/float64(sr.Dx()), dst.Height()/float64(sr.Dy()))).
			Multiply(gg.Translate(-float64(sr.Min.X), -float64(sr.Min.Y)))
		return s.drawTransformed(img, sr, place, p)
	}

	opacity, mode, interp, ok := s.imageStyle(p)
	if !ok {
		return nil
	}
	s.ctx.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:             dst.Left,
		Y:             dst.Top,
		DstWidth:      dst.Width(),
		DstHeight:     dst.Height(),
		SrcRect:       &sr,
		Interpolation: interp,
		Opacity:       opacity,
		BlendMode:     mode,
	})
	return nil
}

// DrawBitmapMatrix draws img mapped through m and then the current matrix.
func (s *RasterSurface) DrawBitmapMatrix(img image.Image, m gg.Matrix, p *Paint) error {
	if img.Bounds().Empty() {
		return nil
	}
	return s.drawTransformed(img, img.Bounds(), m, p)
}

// drawTransformed resamples the sr region of img through the full matrix
// into a surface-sized buffer, then composites it unscaled. gg's own image
// drawing only handles axis-aligned placement.
func (s *RasterSurface) drawTransformed(img image.Image, sr image.Rectangle, m gg.Matrix, p *Paint) error {
	opacity, mode, interp, ok := s.imageStyle(p)
	if !ok {
		return nil
	}
	full := s.ctx.GetTransform().Multiply(m)
	aff := f64.Aff3{full.A, full.B, full.C, full.D, full.E, full.F}

	buf := image.NewRGBA(image.Rect(0, 0, s.Width(), s.Height()))
	var scaler xdraw.Transformer = xdraw.NearestNeighbor
	if interp == gg.InterpBilinear {
		scaler = xdraw.BiLinear
	}
	scaler.Transform(buf, aff, img, sr, xdraw.Over, nil)

	s.ctx.Push()
	defer s.ctx.Pop()
	s.ctx.Identity()
	s.ctx.DrawImageEx(gg.ImageBufFromImage(buf), gg.DrawImageOptions{
		Interpolation: gg.InterpNearest,
		Opacity:       opacity,
		BlendMode:     mode,
	})
	return nil
}

// imageStyle derives bitmap compositing parameters from an optional paint.
// ok is false when nothing would be drawn.
func (s *RasterSurface) imageStyle(p *Paint) (opacity float64, mode gg.BlendMode, interp gg.InterpolationMode, ok bool) {
	if p == nil {
		return 1, gg.BlendNormal, gg.InterpBilinear, true
	}
	if p.BlendMode == BlendDst || p.Color.A <= 0 {
		return 0, gg.BlendNormal, gg.InterpNearest, false
	}
	interp = gg.InterpNearest
	if p.HasFlag(FilterBitmap) {
		interp = gg.InterpBilinear
	}
	return p.Color.A, s.layerMode(p.BlendMode), interp, true
}

// drawPath paints path with p: shadow first, then fill and stroke as the
// style requires. Non-default blend modes are composited through a layer.
func (s *RasterSurface) drawPath(path *gg.Path, p *Paint) error {
	if p.BlendMode == BlendDst {
		return nil
	}

	s.ctx.Push()
	defer s.ctx.Pop()

	if p.MaskFilter != nil {
		s.ctx.SetMask(p.MaskFilter)
	}
	layered := p.BlendMode != BlendSrcOver
	if layered {
		s.ctx.PushLayer(s.layerMode(p.BlendMode), 1)
		defer s.ctx.PopLayer()
	}

	if sh := p.Shadow; sh != nil {
		s.ctx.Push()
		s.ctx.Translate(sh.DX, sh.DY)
		err := s.paintPath(path, p, gg.Solid(sh.Color))
		s.ctx.Pop()
		if err != nil {
			return err
		}
	}
	return s.paintPath(path, p, p.Brush())
}

func (s *RasterSurface) paintPath(path *gg.Path, p *Paint, brush gg.Brush) error {
	if p.Style == StyleFill || p.Style == StyleFillAndStroke {
		s.ctx.ClearPath()
		s.setPath(path)
		s.ctx.SetFillBrush(brush)
		if err := s.ctx.Fill(); err != nil {
			return err
		}
	}
	if p.Style == StyleStroke || p.Style == StyleFillAndStroke {
		s.ctx.ClearPath()
		s.setPath(path)
		s.ctx.SetStrokeBrush(brush)
		s.applyStroke(p)
		if err := s.ctx.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

// setPath walks path elements onto the context, which maps them through
// the current matrix.
func (s *RasterSurface) setPath(path *gg.Path) {
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case gg.MoveTo:
			s.ctx.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			s.ctx.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			s.ctx.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			s.ctx.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			s.ctx.ClosePath()
		}
	}
}

func (s *RasterSurface) applyStroke(p *Paint) {
	width := p.StrokeWidth
	if width <= 0 {
		width = 1
	}
	s.ctx.SetLineWidth(width)
	s.ctx.SetLineCap(p.Cap)
	s.ctx.SetLineJoin(p.Join)
	s.ctx.SetMiterLimit(p.StrokeMiter)

	if pe := p.PathEffect; pe != nil && len(pe.Intervals) > 0 {
		s.ctx.SetDash(pe.Intervals...)
		s.ctx.SetDashOffset(pe.Phase)
	} else {
		s.ctx.ClearDash()
	}
}

func (s *RasterSurface) layerMode(m BlendMode) gg.BlendMode {
	mode, ok := m.Layer()
	if !ok {
		Logger().Debug("ggscript: blend mode not supported by raster surface", "mode", m.String())
	}
	return mode
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
