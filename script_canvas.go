package ggscript

import (
	"fmt"

	"github.com/gogpu/gg"
)

// Save queues a push of the matrix and clip.
func (s *Script) Save() *Script {
	return s.add(SaveCommand{Flags: SaveAll})
}

// SaveFlags queues a save of the parts of the state selected by flags.
func (s *Script) SaveFlags(flags SaveFlags) *Script {
	return s.add(SaveCommand{Flags: flags})
}

// SaveLayer queues an offscreen layer clipped to bounds and composited with
// paint on restore. Both may be nil.
func (s *Script) SaveLayer(bounds *Rect, paint *Paint) *Script {
	return s.SaveLayerFlags(bounds, paint, SaveAll)
}

// SaveLayerRect is SaveLayer with scalar bounds.
func (s *Script) SaveLayerRect(left, top, right, bottom float64, paint *Paint) *Script {
	r := NewRect(left, top, right, bottom)
	return s.SaveLayerFlags(&r, paint, SaveAll)
}

// SaveLayerFlags is SaveLayer with explicit save flags.
func (s *Script) SaveLayerFlags(bounds *Rect, paint *Paint, flags SaveFlags) *Script {
	return s.add(SaveLayerCommand{Bounds: cloneRect(bounds), Paint: paint.Clone(), Flags: flags})
}

// SaveLayerAlpha queues an offscreen layer composited with alpha in [0, 255].
func (s *Script) SaveLayerAlpha(bounds *Rect, alpha int) *Script {
	return s.SaveLayerAlphaFlags(bounds, alpha, SaveAll)
}

// SaveLayerAlphaRect is SaveLayerAlpha with scalar bounds.
func (s *Script) SaveLayerAlphaRect(left, top, right, bottom float64, alpha int) *Script {
	r := NewRect(left, top, right, bottom)
	return s.SaveLayerAlphaFlags(&r, alpha, SaveAll)
}

// SaveLayerAlphaFlags is SaveLayerAlpha with explicit save flags.
func (s *Script) SaveLayerAlphaFlags(bounds *Rect, alpha int, flags SaveFlags) *Script {
	return s.add(SaveLayerAlphaCommand{Bounds: cloneRect(bounds), Alpha: alpha, Flags: flags})
}

// Restore queues an unqualified restore. During Draw it is resolved to
// the save count of the most recent outstanding save of that pass.
func (s *Script) Restore() *Script {
	return s.add(RestoreCommand{Count: NoSave})
}

// RestoreToCount queues a restore to an explicit save count. Counts below
// 1 record ErrInvalidArgument.
func (s *Script) RestoreToCount(count int) *Script {
	if count < 1 {
		return s.fail(ErrInvalidArgument, fmt.Sprintf("RestoreToCount(%d)", count))
	}
	return s.add(RestoreCommand{Count: count})
}

func (s *Script) Translate(dx, dy float64) *Script {
	return s.add(TranslateCommand{DX: dx, DY: dy})
}

// Rotate queues a clockwise rotation in degrees about the origin.
func (s *Script) Rotate(degrees float64) *Script {
	return s.add(RotateCommand{Degrees: degrees})
}

// RotateAbout queues a clockwise rotation in degrees about (px, py).
func (s *Script) RotateAbout(degrees, px, py float64) *Script {
	return s.add(RotateCommand{Degrees: degrees, PX: px, PY: py, Pivot: true})
}

func (s *Script) Skew(sx, sy float64) *Script {
	return s.add(SkewCommand{SX: sx, SY: sy})
}

func (s *Script) Scale(sx, sy float64) *Script {
	return s.add(ScaleCommand{SX: sx, SY: sy})
}

// ScaleAbout queues a scale that keeps (px, py) fixed.
func (s *Script) ScaleAbout(sx, sy, px, py float64) *Script {
	return s.add(ScaleCommand{SX: sx, SY: sy, PX: px, PY: py, Pivot: true})
}

func (s *Script) Concat(m gg.Matrix) *Script {
	return s.add(ConcatCommand{Matrix: m})
}

// ClipRect queues an intersection of the clip with r.
func (s *Script) ClipRect(r Rect) *Script {
	return s.add(ClipRectCommand{Bounds: r})
}

func cloneRect(r *Rect) *Rect {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
