package ggscript

import (
	"image"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// NoSave is returned by Command.Apply for commands that do not push state.
// As a RestoreCommand count it marks an unqualified restore.
const NoSave = -1

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// State commands
	CmdSave           CommandType = iota // Push matrix and clip
	CmdSaveLayer                         // Push an offscreen layer
	CmdSaveLayerAlpha                    // Push an offscreen layer with alpha
	CmdRestore                           // Pop state

	// Transform commands
	CmdTranslate
	CmdRotate
	CmdScale
	CmdSkew
	CmdConcat
	CmdClipRect

	// Drawing commands
	CmdColor
	CmdPaint
	CmdCircle
	CmdOval
	CmdRect
	CmdRoundRect
	CmdArc
	CmdLines
	CmdPoints
	CmdPath
	CmdText
	CmdBitmap
	CmdBitmapMatrix
	CmdPicture

	// CmdCustom is reported by caller-defined commands.
	CmdCustom
)

var commandTypeNames = [...]string{
	CmdSave:           "Save",
	CmdSaveLayer:      "SaveLayer",
	CmdSaveLayerAlpha: "SaveLayerAlpha",
	CmdRestore:        "Restore",
	CmdTranslate:      "Translate",
	CmdRotate:         "Rotate",
	CmdScale:          "Scale",
	CmdSkew:           "Skew",
	CmdConcat:         "Concat",
	CmdClipRect:       "ClipRect",
	CmdColor:          "Color",
	CmdPaint:          "Paint",
	CmdCircle:         "Circle",
	CmdOval:           "Oval",
	CmdRect:           "Rect",
	CmdRoundRect:      "RoundRect",
	CmdArc:            "Arc",
	CmdLines:          "Lines",
	CmdPoints:         "Points",
	CmdPath:           "Path",
	CmdText:           "Text",
	CmdBitmap:         "Bitmap",
	CmdBitmapMatrix:   "BitmapMatrix",
	CmdPicture:        "Picture",
	CmdCustom:         "Custom",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is a single deferred drawing operation.
//
// Commands are immutable once queued and may be shared between scripts.
// Apply executes the command and returns either NoSave or the save count
// produced by a state push.
type Command interface {
	Type() CommandType
	Apply(s Surface) (int, error)
}

// --------------------------------------------------------------------------
// State Commands
// --------------------------------------------------------------------------

// SaveCommand pushes the surface matrix and clip.
//
// A non-zero Bracket pairs the save with the RestoreCommand carrying the
// same value: during replay that restore returns to the count this save
// produced.
type SaveCommand struct {
	Flags   SaveFlags
	Bracket uint64
}

func (SaveCommand) Type() CommandType { return CmdSave }

func (c SaveCommand) Apply(s Surface) (int, error) {
	return s.Save(c.Flags), nil
}

// SaveLayerCommand pushes an offscreen layer composited with Paint.
type SaveLayerCommand struct {
	Bounds *Rect
	Paint  *Paint
	Flags  SaveFlags
}

func (SaveLayerCommand) Type() CommandType { return CmdSaveLayer }

func (c SaveLayerCommand) Apply(s Surface) (int, error) {
	return s.SaveLayer(c.Bounds, c.Paint, c.Flags), nil
}

// SaveLayerAlphaCommand pushes an offscreen layer composited with Alpha.
type SaveLayerAlphaCommand struct {
	Bounds *Rect
	Alpha  int
	Flags  SaveFlags
}

func (SaveLayerAlphaCommand) Type() CommandType { return CmdSaveLayerAlpha }

func (c SaveLayerAlphaCommand) Apply(s Surface) (int, error) {
	return s.SaveLayerAlpha(c.Bounds, c.Alpha, c.Flags), nil
}

// RestoreCommand pops state. Count is the save count to restore to, or
// NoSave for a single unqualified pop. Explicit counts are at least 1, so
// NoSave never names a real save count.
type RestoreCommand struct {
	Count   int
	Bracket uint64
}

func (RestoreCommand) Type() CommandType { return CmdRestore }

func (c RestoreCommand) Apply(s Surface) (int, error) {
	if c.Count == NoSave {
		return NoSave, s.Restore()
	}
	return NoSave, s.RestoreToCount(c.Count)
}

// Unqualified reports whether the restore carries no explicit count.
func (c RestoreCommand) Unqualified() bool { return c.Count == NoSave }

var lastBracket atomic.Uint64

// newBracket returns a bracket value no other save/restore pair uses.
func newBracket() uint64 { return lastBracket.Add(1) }

// --------------------------------------------------------------------------
// Transform Commands
// --------------------------------------------------------------------------

// TranslateCommand offsets the matrix.
type TranslateCommand struct {
	DX, DY float64
}

func (TranslateCommand) Type() CommandType { return CmdTranslate }

func (c TranslateCommand) Apply(s Surface) (int, error) {
	s.Translate(c.DX, c.DY)
	return NoSave, nil
}

// RotateCommand rotates the matrix clockwise by Degrees, about (PX, PY)
// when Pivot is set.
type RotateCommand struct {
	Degrees float64
	PX, PY  float64
	Pivot   bool
}

func (RotateCommand) Type() CommandType { return CmdRotate }

func (c RotateCommand) Apply(s Surface) (int, error) {
	switch {
	case !c.Pivot:
		s.Rotate(c.Degrees)
	case isPivotRotator(s):
		s.(PivotRotator).RotateAbout(c.Degrees, c.PX, c.PY)
	default:
		s.Translate(c.PX, c.PY)
		s.Rotate(c.Degrees)
		s.Translate(-c.PX, -c.PY)
	}
	return NoSave, nil
}

func isPivotRotator(s Surface) bool {
	_, ok := s.(PivotRotator)
	return ok
}

// ScaleCommand scales the matrix, about (PX, PY) when Pivot is set.
type ScaleCommand struct {
	SX, SY float64
	PX, PY float64
	Pivot  bool
}

func (ScaleCommand) Type() CommandType { return CmdScale }

func (c ScaleCommand) Apply(s Surface) (int, error) {
	if !c.Pivot {
		s.Scale(c.SX, c.SY)
		return NoSave, nil
	}
	if ps, ok := s.(PivotScaler); ok {
		ps.ScaleAbout(c.SX, c.SY, c.PX, c.PY)
		return NoSave, nil
	}
	s.Translate(c.PX, c.PY)
	s.Scale(c.SX, c.SY)
	s.Translate(-c.PX, -c.PY)
	return NoSave, nil
}

// SkewCommand shears the matrix.
type SkewCommand struct {
	SX, SY float64
}

func (SkewCommand) Type() CommandType { return CmdSkew }

func (c SkewCommand) Apply(s Surface) (int, error) {
	s.Skew(c.SX, c.SY)
	return NoSave, nil
}

// ConcatCommand pre-multiplies the matrix by Matrix.
type ConcatCommand struct {
	Matrix gg.Matrix
}

func (ConcatCommand) Type() CommandType { return CmdConcat }

func (c ConcatCommand) Apply(s Surface) (int, error) {
	s.Concat(c.Matrix)
	return NoSave, nil
}

// ClipRectCommand intersects the clip with Bounds in local coordinates.
type ClipRectCommand struct {
	Bounds Rect
}

func (ClipRectCommand) Type() CommandType { return CmdClipRect }

func (c ClipRectCommand) Apply(s Surface) (int, error) {
	s.ClipRect(c.Bounds)
	return NoSave, nil
}

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

// ColorCommand fills the whole clip with Color using Mode.
type ColorCommand struct {
	Color gg.RGBA
	Mode  BlendMode
}

func (ColorCommand) Type() CommandType { return CmdColor }

func (c ColorCommand) Apply(s Surface) (int, error) {
	return NoSave, s.DrawColor(c.Color, c.Mode)
}

// PaintCommand fills the whole clip with Paint.
type PaintCommand struct {
	Paint *Paint
}

func (PaintCommand) Type() CommandType { return CmdPaint }

func (c PaintCommand) Apply(s Surface) (int, error) {
	return NoSave, s.DrawPaint(c.Paint)
}

// CircleCommand draws a circle.
type CircleCommand struct {
	CX, CY, Radius float64
	Paint          *Paint
}

func (CircleCommand) Type() CommandType { return CmdCircle }

func (c CircleCommand) Apply(s Surface) (int, error) {
	return NoSave, s.DrawCircle(c.CX, c.CY, c.Radius, c.Paint)
}

// OvalCommand draws the ellipse inscribed in Bounds.
type OvalCommand struct {
	Bounds Rect
	Paint  *Paint
}

func (OvalCommand) Type() CommandType { return CmdOval }

func (c OvalCommand) Apply(s Surface) (int, error) {
	return NoSave, s.DrawOval(c.Bounds, c.Paint)
}

// RectCommand draws a rectangle.
type RectCommand struct {
	Bounds Rect
	Paint  *Paint
}

func (RectCommand) Type() CommandType { return CmdRect }

func (c RectCommand) Apply(s Surface) (int, error) {
	return NoSave, s.DrawRect(c.Bounds, c.Paint)
}

// RoundRectCommand draws a rectangle with elliptical corners.
type RoundRectCommand struct {
	Bounds Rect
	RX, RY float64
	Paint  *Paint
}

func (RoundRectCommand) Type() CommandType { return CmdRoundRect }

func (c RoundRectCommand) Apply(s Surface) (int, error) {
	return NoSave, s.DrawRoundRect(c.Bounds, c.RX, c.RY, c.Paint)
}

// ArcCommand draws an arc of the oval inscribed in Bounds.
type ArcCommand struct {
	Bounds     Rect
	StartAngle float64 // degrees
	SweepAngle float64 // degrees, clockwise
	UseCenter  bool
	Paint      *Paint
}

func (ArcCommand) Type() CommandType { return CmdArc }

func (c ArcCommand) Apply(s Surface) (int, error) {
	return NoSave, s.DrawArc(c.Bounds, c.StartAngle, c.SweepAngle, c.UseCenter, c.Paint)
}

// LinesCommand draws independent segments, four values per segment.
type LinesCommand struct {
	Points []float64
	Paint  *Paint
}

func (LinesCommand) Type() CommandType { return CmdLines }

func (c LinesCommand) Apply(s Surface) (int, error) {
	return NoSave, s.DrawLines(c.Points, c.Paint)
}

// PointsCommand draws points, two values per point.
type PointsCommand struct {
	Points []float64
	Paint  *Paint
}

func (PointsCommand) Type() CommandType { return CmdPoints }

func (c PointsCommand) Apply(s Surface) (int, error) {
	return NoSave, s.DrawPoints(c.Points, c.Paint)
}

// PathCommand draws a path. The path is owned by the command.
type PathCommand struct {
	Path  *gg.Path
	Paint *Paint
}

func (PathCommand) Type() CommandType { return CmdPath }

func (c PathCommand) Apply(s Surface) (int, error) {
	return NoSave, s.DrawPath(c.Path, c.Paint)
}

// TextCommand draws a string with its baseline origin at (X, Y).
type TextCommand struct {
	Text  string
	X, Y  float64
	Paint *Paint
}

func (TextCommand) Type() CommandType { return CmdText }

func (c TextCommand) Apply(s Surface) (int, error) {
	return NoSave, s.DrawText(c.Text, c.X, c.Y, c.Paint)
}

// BitmapCommand draws the Src region of Image scaled into Dst.
type BitmapCommand struct {
	Image image.Image
	Src   *image.Rectangle
	Dst   Rect
	Paint *Paint
}

func (BitmapCommand) Type() CommandType { return CmdBitmap }

func (c BitmapCommand) Apply(s Surface) (int, error) {
	return NoSave, s.DrawBitmap(c.Image, c.Src, c.Dst, c.Paint)
}

// BitmapMatrixCommand draws Image transformed by Matrix.
type BitmapMatrixCommand struct {
	Image  image.Image
	Matrix gg.Matrix
	Paint  *Paint
}

func (BitmapMatrixCommand) Type() CommandType { return CmdBitmapMatrix }

func (c BitmapMatrixCommand) Apply(s Surface) (int, error) {
	return NoSave, s.DrawBitmapMatrix(c.Image, c.Matrix, c.Paint)
}
