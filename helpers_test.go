package ggscript

import (
	"errors"
	"fmt"
	"image"
	"slices"
	"strings"

	"github.com/gogpu/gg"
)

// traceSurface records every call made on it. It keeps a real save count
// so that restores behave like on a canvas.
type traceSurface struct {
	w, h   int
	depth  int
	calls  []string
	failOn string // draw call name that returns errTrace
}

var errTrace = errors.New("trace: draw failed")

func newTrace() *traceSurface { return &traceSurface{w: 100, h: 100} }

func (t *traceSurface) log(format string, args ...any) {
	t.calls = append(t.calls, fmt.Sprintf(format, args...))
}

func (t *traceSurface) draw(name string, format string, args ...any) error {
	t.log(name+format, args...)
	if t.failOn == name {
		return errTrace
	}
	return nil
}

// reset forgets recorded calls.
func (t *traceSurface) reset() { t.calls = nil }

func (t *traceSurface) Width() int { return t.w }
func (t *traceSurface) Height() int { return t.h }
func (t *traceSurface) SaveCount() int { return t.depth + 1 }
func (t *traceSurface) String() string { return strings.Join(t.calls, "\n") }

func (t *traceSurface) push() int {
	n := t.SaveCount()
	t.depth++
	return n
}

func (t *traceSurface) Save(SaveFlags) int {
	t.log("Save")
	return t.push()
}

func (t *traceSurface) SaveLayer(bounds *Rect, p *Paint, _ SaveFlags) int {
	t.log("SaveLayer(%v %v)", bounds != nil, p != nil)
	return t.push()
}

func (t *traceSurface) SaveLayerAlpha(bounds *Rect, alpha int, _ SaveFlags) int {
	t.log("SaveLayerAlpha(%v %d)", bounds != nil, alpha)
	return t.push()
}

func (t *traceSurface) Restore() error {
	t.log("Restore")
	if t.depth == 0 {
		return ErrRestoreUnderflow
	}
	t.depth--
	return nil
}

func (t *traceSurface) RestoreToCount(count int) error {
	t.log("RestoreToCount(%d)", count)
	if count < 1 {
		return ErrInvalidSaveCount
	}
	t.depth = min(t.depth, count-1)
	return nil
}

func (t *traceSurface) Translate(dx, dy float64) { t.log("Translate(%g %g)", dx, dy) }
func (t *traceSurface) Rotate(deg float64) { t.log("Rotate(%g)", deg) }
func (t *traceSurface) Scale(sx, sy float64) { t.log("Scale(%g %g)", sx, sy) }
func (t *traceSurface) Skew(sx, sy float64) { t.log("Skew(%g %g)", sx, sy) }
func (t *traceSurface) Concat(gg.Matrix) { t.log("Concat") }
func (t *traceSurface) ClipRect(r Rect) { t.log("ClipRect(%g %g %g %g)", r.Left, r.Top, r.Right, r.Bottom) }

func (t *traceSurface) DrawColor(c gg.RGBA, mode BlendMode) error {
	return t.draw("Color", "(%v)", mode)
}

func (t *traceSurface) DrawPaint(*Paint) error { return t.draw("Paint", "") }

func (t *traceSurface) DrawCircle(cx, cy, r float64, _ *Paint) error {
	return t.draw("Circle", "(%g %g %g)", cx, cy, r)
}

func (t *traceSurface) DrawOval(r Rect, _ *Paint) error {
	return t.draw("Oval", "(%g %g %g %g)", r.Left, r.Top, r.Right, r.Bottom)
}

func (t *traceSurface) DrawRect(r Rect, _ *Paint) error {
	return t.draw("Rect", "(%g %g %g %g)", r.Left, r.Top, r.Right, r.Bottom)
}

func (t *traceSurface) DrawRoundRect(r Rect, rx, ry float64, _ *Paint) error {
	return t.draw("RoundRect", "(%g %g %g %g %g %g)", r.Left, r.Top, r.Right, r.Bottom, rx, ry)
}

func (t *traceSurface) DrawArc(_ Rect, start, sweep float64, useCenter bool, _ *Paint) error {
	return t.draw("Arc", "(%g %g %v)", start, sweep, useCenter)
}

func (t *traceSurface) DrawLines(pts []float64, _ *Paint) error {
	return t.draw("Lines", "%v", pts)
}

func (t *traceSurface) DrawPoints(pts []float64, _ *Paint) error {
	return t.draw("Points", "%v", pts)
}

func (t *traceSurface) DrawPath(*gg.Path, *Paint) error { return t.draw("Path", "") }

func (t *traceSurface) DrawText(s string, x, y float64, _ *Paint) error {
	return t.draw("Text", "(%q %g %g)", s, x, y)
}

func (t *traceSurface) DrawBitmap(img image.Image, src *image.Rectangle, dst Rect, p *Paint) error {
	return t.draw("Bitmap", "(%g %g %g %g %v)", dst.Left, dst.Top, dst.Right, dst.Bottom, p != nil)
}

func (t *traceSurface) DrawBitmapMatrix(image.Image, gg.Matrix, *Paint) error {
	return t.draw("BitmapMatrix", "")
}

// pivotSurface adds native pivoted transforms to traceSurface.
type pivotSurface struct {
	*traceSurface
}

func (p pivotSurface) RotateAbout(deg, px, py float64) {
	p.log("RotateAbout(%g %g %g)", deg, px, py)
}

func (p pivotSurface) ScaleAbout(sx, sy, px, py float64) {
	p.log("ScaleAbout(%g %g %g %g)", sx, sy, px, py)
}

// funcCommand runs fn when applied.
type funcCommand func(Surface)

func (funcCommand) Type() CommandType { return CmdCustom }

func (f funcCommand) Apply(s Surface) (int, error) {
	f(s)
	return NoSave, nil
}

func callsEqual(got, want []string) bool { return slices.Equal(got, want) }

func types(cmds []Command) []CommandType {
	out := make([]CommandType, len(cmds))
	for i, c := range cmds {
		out[i] = c.Type()
	}
	return out
}
