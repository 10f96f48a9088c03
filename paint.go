package ggscript

import (
	"image/color"
	"slices"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/text/language"
)

// PaintFlags is a bit set of rendering hints carried by a Paint.
type PaintFlags uint32

const (
	// AntiAlias enables anti-aliased edges.
	AntiAlias PaintFlags = 1 << iota
	// FilterBitmap enables bilinear sampling when bitmaps are scaled.
	FilterBitmap
	// Dither requests dithering on low-precision targets.
	Dither
	// FakeBoldText emboldens text synthetically.
	FakeBoldText
	// UnderlineText draws an underline below text.
	UnderlineText
	// StrikeThruText draws a line through text.
	StrikeThruText
)

// DefaultPaintFlags are the flags of a lazily created current paint.
const DefaultPaintFlags = AntiAlias

// Style selects whether shapes are filled, stroked or both.
type Style uint8

const (
	// StyleFill fills the interior of shapes.
	StyleFill Style = iota
	// StyleStroke strokes the outline of shapes.
	StyleStroke
	// StyleFillAndStroke fills then strokes.
	StyleFillAndStroke
)

// String returns the string representation of a Style.
func (s Style) String() string {
	switch s {
	case StyleFill:
		return "Fill"
	case StyleStroke:
		return "Stroke"
	case StyleFillAndStroke:
		return "FillAndStroke"
	default:
		return "Unknown"
	}
}

// BlendMode is the compositing operator used when a draw lands on the surface.
// The zero value is BlendSrcOver.
type BlendMode uint8

const (
	BlendSrcOver BlendMode = iota
	BlendClear
	BlendSrc
	BlendDst
	BlendMultiply
	BlendScreen
	BlendOverlay
)

var blendModeNames = [...]string{
	BlendSrcOver:  "SrcOver",
	BlendClear:    "Clear",
	BlendSrc:      "Src",
	BlendDst:      "Dst",
	BlendMultiply: "Multiply",
	BlendScreen:   "Screen",
	BlendOverlay:  "Overlay",
}

// String returns the string representation of a BlendMode.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return "Unknown"
}

// Layer maps m onto the gg layer blend mode used to composite it.
// ok is false for modes gg cannot express as a layer composite.
func (m BlendMode) Layer() (mode gg.BlendMode, ok bool) {
	switch m {
	case BlendSrcOver:
		return gg.BlendNormal, true
	case BlendMultiply:
		return gg.BlendMultiply, true
	case BlendScreen:
		return gg.BlendScreen, true
	case BlendOverlay:
		return gg.BlendOverlay, true
	default:
		return gg.BlendNormal, false
	}
}

// TextAlign positions text horizontally relative to its origin.
type TextAlign uint8

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ColorFilter transforms the paint color before it is used.
type ColorFilter func(gg.RGBA) gg.RGBA

// LightingColorFilter multiplies the RGB channels by mul and then adds add.
// Alpha is left unchanged.
func LightingColorFilter(mul, add gg.RGBA) ColorFilter {
	return func(c gg.RGBA) gg.RGBA {
		return gg.RGBA{
			R: clamp01(c.R*mul.R + add.R),
			G: clamp01(c.G*mul.G + add.G),
			B: clamp01(c.B*mul.B + add.B),
			A: c.A,
		}
	}
}

// DashPathEffect strokes outlines as a dash pattern.
type DashPathEffect struct {
	Intervals []float64
	Phase     float64
}

// NewDashPathEffect returns a dash effect with alternating on/off lengths.
func NewDashPathEffect(phase float64, intervals ...float64) *DashPathEffect {
	return &DashPathEffect{Intervals: slices.Clone(intervals), Phase: phase}
}

// ShadowLayer describes a shadow drawn below every shape painted with it.
type ShadowLayer struct {
	Radius float64
	DX, DY float64
	Color  gg.RGBA
}

// Paint holds the style used to draw a single primitive.
//
// Paint is a value type: Script hands each queued command its own copy, and
// Clone must be used whenever a Paint outlives the call that received it.
// Brushes, masks and font sources are immutable and shared between copies.
type Paint struct {
	Flags       PaintFlags
	Color       gg.RGBA
	Style       Style
	StrokeWidth float64 // 0 draws a one pixel hairline
	StrokeMiter float64
	Cap         gg.LineCap
	Join        gg.LineJoin

	Shader      gg.Brush // overrides Color when set
	ColorFilter ColorFilter
	BlendMode   BlendMode
	PathEffect  *DashPathEffect
	MaskFilter  *gg.Mask
	Shadow      *ShadowLayer

	Typeface            *text.FontSource
	TextSize            float64
	TextAlign           TextAlign
	TextScaleX          float64
	TextSkewX           float64
	LetterSpacing       float64
	FontFeatureSettings string
	TextLocales         []language.Tag
}

// NewPaint returns an opaque black fill paint with the given flags.
func NewPaint(flags PaintFlags) *Paint {
	return &Paint{
		Flags:       flags,
		Color:       gg.Black,
		Style:       StyleFill,
		StrokeMiter: 4,
		Cap:         gg.LineCapButt,
		Join:        gg.LineJoinMiter,
		TextSize:    12,
		TextScaleX:  1,
	}
}

// DefaultPaint returns NewPaint(DefaultPaintFlags).
func DefaultPaint() *Paint {
	return NewPaint(DefaultPaintFlags)
}

// Clone returns an independent copy of p. Clone of nil is nil.
func (p *Paint) Clone() *Paint {
	if p == nil {
		return nil
	}
	c := *p
	if p.PathEffect != nil {
		c.PathEffect = &DashPathEffect{
			Intervals: slices.Clone(p.PathEffect.Intervals),
			Phase:     p.PathEffect.Phase,
		}
	}
	if p.Shadow != nil {
		s := *p.Shadow
		c.Shadow = &s
	}
	c.TextLocales = slices.Clone(p.TextLocales)
	return &c
}

// Alpha returns the paint alpha in the range [0, 255].
func (p *Paint) Alpha() int {
	return int(p.Color.A*maxAlpha + 0.5)
}

// SetAlpha replaces the alpha channel, clamping a to [0, 255].
func (p *Paint) SetAlpha(a int) {
	p.Color.A = float64(min(max(a, 0), maxAlpha)) / maxAlpha
}

// HasFlag reports whether every bit of f is set.
func (p *Paint) HasFlag(f PaintFlags) bool {
	return p.Flags&f == f
}

// EffectiveColor returns the paint color after the color filter.
func (p *Paint) EffectiveColor() gg.RGBA {
	if p.ColorFilter != nil {
		return p.ColorFilter(p.Color)
	}
	return p.Color
}

// Brush returns the brush surfaces should paint with: the shader if one is
// set, otherwise a solid brush of EffectiveColor.
func (p *Paint) Brush() gg.Brush {
	if p.Shader != nil {
		return p.Shader
	}
	return gg.Solid(p.EffectiveColor())
}

// Locale returns the first text locale, or "" when none is set.
func (p *Paint) Locale() string {
	if len(p.TextLocales) == 0 {
		return ""
	}
	return p.TextLocales[0].String()
}

const maxAlpha = 255

// rgbaOf converts any color to non-premultiplied gg.RGBA.
// gg.FromColor keeps premultiplied channels, which is wrong for paint colors.
func rgbaOf(c color.Color) gg.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return gg.RGBA{
		R: float64(n.R) / maxAlpha,
		G: float64(n.G) / maxAlpha,
		B: float64(n.B) / maxAlpha,
		A: float64(n.A) / maxAlpha,
	}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
