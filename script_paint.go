package ggscript

import (
	"image/color"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/language"
)

// Every method in this file edits the current paint, creating it with
// DefaultPaintFlags if needed. Commands already queued keep their own copy.

// Paint replaces the current paint with a copy of p. Paint(nil) clears it,
// after which draw calls without an explicit paint fail.
func (s *Script) Paint(p *Paint) *Script {
	s.paint = p.Clone()
	return s
}

// Color sets the paint color, including its alpha.
func (s *Script) Color(c color.Color) *Script {
	s.ensurePaint().Color = rgbaOf(c)
	return s
}

// ARGB sets the paint color from 8-bit components.
func (s *Script) ARGB(a, r, g, b int) *Script {
	s.ensurePaint().Color = gg.RGBA{
		R: channel(r),
		G: channel(g),
		B: channel(b),
		A: channel(a),
	}
	return s
}

// HexColor sets the paint color from "#rrggbb" or "#aarrggbb".
func (s *Script) HexColor(hex string) *Script {
	alpha := 1.0
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) == 8 {
		a, err := colorful.Hex("#" + digits[:2] + "0000")
		if err != nil {
			return s.fail(ErrInvalidArgument, "HexColor "+hex)
		}
		alpha = a.R
		digits = digits[2:]
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return s.fail(ErrInvalidArgument, "HexColor "+hex)
	}
	s.ensurePaint().Color = gg.RGBA{R: c.R, G: c.G, B: c.B, A: alpha}
	return s
}

// HSV sets an opaque paint color from hue in degrees, saturation and value
// in [0, 1].
func (s *Script) HSV(h, sat, v float64) *Script {
	c := colorful.Hsv(h, sat, v).Clamped()
	s.ensurePaint().Color = gg.RGBA{R: c.R, G: c.G, B: c.B, A: 1}
	return s
}

// Alpha sets the paint alpha, from 0 (transparent) to 255 (opaque).
func (s *Script) Alpha(a int) *Script {
	s.ensurePaint().SetAlpha(a)
	return s
}

// AlphaF sets the paint alpha from a fraction in [0, 1].
func (s *Script) AlphaF(a float64) *Script {
	return s.Alpha(int(maxAlpha * a))
}

// Flags replaces the paint flags.
func (s *Script) Flags(f PaintFlags) *Script {
	s.ensurePaint().Flags = f
	return s
}

// AddFlags sets additional paint flags.
func (s *Script) AddFlags(f PaintFlags) *Script {
	s.ensurePaint().Flags |= f
	return s
}

func (s *Script) Style(st Style) *Script {
	s.ensurePaint().Style = st
	return s
}

func (s *Script) StrokeWidth(w float64) *Script {
	s.ensurePaint().StrokeWidth = w
	return s
}

func (s *Script) StrokeMiter(m float64) *Script {
	s.ensurePaint().StrokeMiter = m
	return s
}

func (s *Script) StrokeCap(c gg.LineCap) *Script {
	s.ensurePaint().Cap = c
	return s
}

func (s *Script) StrokeJoin(j gg.LineJoin) *Script {
	s.ensurePaint().Join = j
	return s
}

// Shader paints with b instead of the paint color. Pass nil to go back to
// the color.
func (s *Script) Shader(b gg.Brush) *Script {
	s.ensurePaint().Shader = b
	return s
}

func (s *Script) ColorFilter(f ColorFilter) *Script {
	s.ensurePaint().ColorFilter = f
	return s
}

func (s *Script) BlendMode(m BlendMode) *Script {
	s.ensurePaint().BlendMode = m
	return s
}

// PathEffect sets a dash pattern for strokes. The effect is copied.
func (s *Script) PathEffect(pe *DashPathEffect) *Script {
	p := s.ensurePaint()
	p.PathEffect = nil
	if pe != nil {
		p.PathEffect = NewDashPathEffect(pe.Phase, pe.Intervals...)
	}
	return s
}

// MaskFilter restricts painting to the coverage of m.
func (s *Script) MaskFilter(m *gg.Mask) *Script {
	s.ensurePaint().MaskFilter = m
	return s
}

func (s *Script) Typeface(src *text.FontSource) *Script {
	s.ensurePaint().Typeface = src
	return s
}

// Shadow draws a copy of each shape offset by (dx, dy) in color c below it.
func (s *Script) Shadow(radius, dx, dy float64, c color.Color) *Script {
	s.ensurePaint().Shadow = &ShadowLayer{Radius: radius, DX: dx, DY: dy, Color: rgbaOf(c)}
	return s
}

// ClearShadow removes the shadow. Without a current paint it does nothing.
func (s *Script) ClearShadow() *Script {
	if s.paint != nil {
		s.paint.Shadow = nil
	}
	return s
}

func (s *Script) TextAlign(a TextAlign) *Script {
	s.ensurePaint().TextAlign = a
	return s
}

// TextLocale sets a single BCP 47 text locale, such as "ja-JP".
func (s *Script) TextLocale(tag string) *Script {
	return s.TextLocales(tag)
}

// TextLocales sets the text locales in priority order.
func (s *Script) TextLocales(tags ...string) *Script {
	locales := make([]language.Tag, 0, len(tags))
	for _, t := range tags {
		tag, err := language.Parse(t)
		if err != nil {
			return s.fail(ErrInvalidArgument, "TextLocales "+err.Error())
		}
		locales = append(locales, tag)
	}
	s.ensurePaint().TextLocales = locales
	return s
}

func (s *Script) TextSize(size float64) *Script {
	s.ensurePaint().TextSize = size
	return s
}

func (s *Script) TextScaleX(sx float64) *Script {
	s.ensurePaint().TextScaleX = sx
	return s
}

func (s *Script) TextSkewX(kx float64) *Script {
	s.ensurePaint().TextSkewX = kx
	return s
}

func (s *Script) LetterSpacing(em float64) *Script {
	s.ensurePaint().LetterSpacing = em
	return s
}

// FontFeatureSettings sets OpenType features in CSS syntax, e.g. "smcp".
func (s *Script) FontFeatureSettings(settings string) *Script {
	s.ensurePaint().FontFeatureSettings = settings
	return s
}

func channel(v int) float64 {
	return float64(min(max(v, 0), maxAlpha)) / maxAlpha
}
