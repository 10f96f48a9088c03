package ggscript

import (
	"image"
	"io"

	"github.com/gogpu/gg"
)

// SaveFlags selects which parts of the surface state a save captures.
// Surfaces that always save the full state may ignore them.
type SaveFlags uint8

const (
	SaveMatrix SaveFlags = 1 << iota
	SaveClip

	SaveAll = SaveMatrix | SaveClip
)

// Surface is an immediate-mode drawing target that commands are replayed on.
//
// Save counts follow the usual canvas convention: an unsaved surface reports
// 1, and Save, SaveLayer and SaveLayerAlpha return the count from before the
// push, so passing that value to RestoreToCount undoes the save and
// everything pushed after it.
//
// Implementations:
//   - RasterSurface: software rasterizer on a gg.Context
//   - backends/svg.Surface: SVG document writer
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Save pushes the matrix and clip.
	Save(flags SaveFlags) int

	// SaveLayer pushes state and redirects drawing to an offscreen layer
	// that is composited with p's alpha and blend mode on restore.
	// bounds and p may be nil.
	SaveLayer(bounds *Rect, p *Paint, flags SaveFlags) int

	// SaveLayerAlpha is SaveLayer with a plain alpha in [0, 255].
	SaveLayerAlpha(bounds *Rect, alpha int, flags SaveFlags) int

	// Restore pops the most recent save.
	Restore() error

	// RestoreToCount pops saves until SaveCount equals count.
	RestoreToCount(count int) error

	// SaveCount returns the current save count.
	SaveCount() int

	Translate(dx, dy float64)
	Rotate(degrees float64)
	Scale(sx, sy float64)
	Skew(sx, sy float64)
	Concat(m gg.Matrix)
	ClipRect(r Rect)

	DrawColor(c gg.RGBA, mode BlendMode) error
	DrawPaint(p *Paint) error
	DrawCircle(cx, cy, radius float64, p *Paint) error
	DrawOval(r Rect, p *Paint) error
	DrawRect(r Rect, p *Paint) error
	DrawRoundRect(r Rect, rx, ry float64, p *Paint) error
	DrawArc(r Rect, startDeg, sweepDeg float64, useCenter bool, p *Paint) error
	DrawLines(pts []float64, p *Paint) error
	DrawPoints(pts []float64, p *Paint) error
	DrawPath(path *gg.Path, p *Paint) error
	DrawText(s string, x, y float64, p *Paint) error

	// DrawBitmap draws the src region of img (all of img when src is nil)
	// scaled into dst. p may be nil.
	DrawBitmap(img image.Image, src *image.Rectangle, dst Rect, p *Paint) error

	// DrawBitmapMatrix draws img transformed by m. p may be nil.
	DrawBitmapMatrix(img image.Image, m gg.Matrix, p *Paint) error
}

// PivotRotator is implemented by surfaces with a native pivoted rotation.
type PivotRotator interface {
	RotateAbout(degrees, px, py float64)
}

// PivotScaler is implemented by surfaces with a native pivoted scale.
type PivotScaler interface {
	ScaleAbout(sx, sy, px, py float64)
}

// WriterSurface is implemented by surfaces that can encode their content.
type WriterSurface interface {
	Surface
	WriteTo(w io.Writer) (int64, error)
}

// ImageSurface is implemented by surfaces that rasterize to pixels.
type ImageSurface interface {
	Surface
	Image() image.Image
}
