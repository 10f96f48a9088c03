package ggscript

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func TestNewPaintDefaults(t *testing.T) {
	p := DefaultPaint()
	if p.Color != gg.Black {
		t.Errorf("Color = %v, want %v", p.Color, gg.Black)
	}
	if p.Style != StyleFill {
		t.Errorf("Style = %v, want %v", p.Style, StyleFill)
	}
	if !p.HasFlag(AntiAlias) || p.HasFlag(FilterBitmap) {
		t.Errorf("Flags = %b, want AntiAlias only", p.Flags)
	}
	if p.StrokeMiter != 4 || p.TextSize != 12 || p.TextScaleX != 1 {
		t.Errorf("paint = %+v, want miter 4, text size 12, scale 1", p)
	}
}

func TestPaintCloneIsDeep(t *testing.T) {
	p := NewPaint(0)
	p.PathEffect = NewDashPathEffect(1, 4, 2)
	p.Shadow = &ShadowLayer{Radius: 2, DX: 1, DY: 1, Color: gg.Black}

	c := p.Clone()
	c.PathEffect.Intervals[0] = 99
	c.Shadow.DX = 50
	c.Color = gg.Red

	if p.PathEffect.Intervals[0] != 4 {
		t.Errorf("original dash = %v, want unchanged", p.PathEffect.Intervals)
	}
	if p.Shadow.DX != 1 {
		t.Errorf("original shadow DX = %v, want 1", p.Shadow.DX)
	}
	if p.Color != gg.Black {
		t.Errorf("original color = %v, want black", p.Color)
	}

	var nilPaint *Paint
	if nilPaint.Clone() != nil {
		t.Error("nil Clone() != nil")
	}
}

func TestPaintAlpha(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{128, 128},
		{255, 255},
		{300, 255},
		{-5, 0},
	}
	for _, tt := range tests {
		p := NewPaint(0)
		p.SetAlpha(tt.in)
		if got := p.Alpha(); got != tt.want {
			t.Errorf("SetAlpha(%d): Alpha() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEffectiveColor(t *testing.T) {
	p := NewPaint(0)
	p.Color = gg.RGBA{R: 0.5, G: 0.5, B: 0.5, A: 0.8}
	p.ColorFilter = LightingColorFilter(gg.RGBA{R: 2, G: 0, B: 1}, gg.RGBA{B: 0.25})

	got := p.EffectiveColor()
	want := gg.RGBA{R: 1, G: 0, B: 0.75, A: 0.8}
	if got != want {
		t.Errorf("EffectiveColor() = %v, want %v", got, want)
	}
	if p.Color.R != 0.5 {
		t.Error("EffectiveColor() modified Color")
	}
}

func TestBlendModeLayer(t *testing.T) {
	tests := []struct {
		mode   BlendMode
		want   gg.BlendMode
		wantOK bool
	}{
		{BlendSrcOver, gg.BlendNormal, true},
		{BlendMultiply, gg.BlendMultiply, true},
		{BlendScreen, gg.BlendScreen, true},
		{BlendOverlay, gg.BlendOverlay, true},
		{BlendClear, gg.BlendNormal, false},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got, ok := tt.mode.Layer()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Layer() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
	if got := BlendMode(200).String(); got != "Unknown" {
		t.Errorf("String() = %q, want Unknown", got)
	}
}

func TestScriptColorSetters(t *testing.T) {
	const eps = 1e-9
	tests := []struct {
		name  string
		build func(*Script) *Script
		want  gg.RGBA
	}{
		{"Color", func(s *Script) *Script { return s.Color(red) }, gg.Red},
		{"ARGB", func(s *Script) *Script { return s.ARGB(255, 0, 255, 0) }, gg.Green},
		{"HexColor rgb", func(s *Script) *Script { return s.HexColor("#0000ff") }, gg.Blue},
		{"HexColor argb", func(s *Script) *Script { return s.HexColor("#00ff0000") }, gg.RGBA{R: 1}},
		{"HSV", func(s *Script) *Script { return s.HSV(120, 1, 1) }, gg.Green},
		{"Alpha", func(s *Script) *Script { return s.Color(red).Alpha(0) }, gg.RGBA{R: 1}},
		{"AlphaF", func(s *Script) *Script { return s.Color(red).AlphaF(1) }, gg.Red},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.build(New(1, 1))
			if s.Err() != nil {
				t.Fatalf("Err() = %v", s.Err())
			}
			got := s.CurrentPaint().Color
			if math.Abs(got.R-tt.want.R) > eps || math.Abs(got.G-tt.want.G) > eps ||
				math.Abs(got.B-tt.want.B) > eps || math.Abs(got.A-tt.want.A) > eps {
				t.Errorf("Color = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHexColorInvalid(t *testing.T) {
	for _, hex := range []string{"", "#12", "#zzzzzz", "#gg000000"} {
		s := New(1, 1).HexColor(hex)
		if !errors.Is(s.Err(), ErrInvalidArgument) {
			t.Errorf("HexColor(%q) Err() = %v, want %v", hex, s.Err(), ErrInvalidArgument)
		}
	}
}

func TestScriptPaintSetters(t *testing.T) {
	dash := NewDashPathEffect(2, 5, 5)
	s := New(1, 1).
		Flags(0).
		AddFlags(FilterBitmap | UnderlineText).
		Style(StyleFillAndStroke).
		StrokeWidth(3).
		StrokeMiter(8).
		StrokeCap(gg.LineCapRound).
		StrokeJoin(gg.LineJoinBevel).
		BlendMode(BlendScreen).
		PathEffect(dash).
		TextAlign(AlignCenter).
		TextSize(20).
		TextScaleX(1.5).
		TextSkewX(-0.25).
		LetterSpacing(0.1).
		FontFeatureSettings(`"liga" 0`).
		TextLocales("ja-JP", "en")
	if s.Err() != nil {
		t.Fatalf("Err() = %v", s.Err())
	}
	dash.Intervals[0] = 1

	p := s.CurrentPaint()
	if !p.HasFlag(FilterBitmap|UnderlineText) || p.HasFlag(AntiAlias) {
		t.Errorf("Flags = %b", p.Flags)
	}
	if p.Style != StyleFillAndStroke || p.StrokeWidth != 3 || p.StrokeMiter != 8 {
		t.Errorf("stroke = %v %v %v", p.Style, p.StrokeWidth, p.StrokeMiter)
	}
	if p.Cap != gg.LineCapRound || p.Join != gg.LineJoinBevel {
		t.Errorf("cap, join = %v, %v", p.Cap, p.Join)
	}
	if p.BlendMode != BlendScreen {
		t.Errorf("BlendMode = %v, want %v", p.BlendMode, BlendScreen)
	}
	if p.PathEffect.Intervals[0] != 5 {
		t.Errorf("PathEffect = %v, want a copy", p.PathEffect.Intervals)
	}
	if p.TextAlign != AlignCenter || p.TextSize != 20 || p.TextScaleX != 1.5 || p.TextSkewX != -0.25 {
		t.Errorf("text = %+v", p)
	}
	if p.LetterSpacing != 0.1 || p.FontFeatureSettings != `"liga" 0` {
		t.Errorf("LetterSpacing, FontFeatureSettings = %v, %q", p.LetterSpacing, p.FontFeatureSettings)
	}
	if p.Locale() != "ja-JP" || len(p.TextLocales) != 2 {
		t.Errorf("TextLocales = %v, want [ja-JP en]", p.TextLocales)
	}
}

func TestTextLocaleInvalid(t *testing.T) {
	s := New(1, 1).TextLocale("not a tag!")
	if !errors.Is(s.Err(), ErrInvalidArgument) {
		t.Errorf("Err() = %v, want %v", s.Err(), ErrInvalidArgument)
	}
}

func TestShadowAndClear(t *testing.T) {
	s := New(1, 1)
	if s.ClearShadow().CurrentPaint() != nil {
		t.Error("ClearShadow() created a paint")
	}
	s.Shadow(3, 1, 2, red)
	if sh := s.CurrentPaint().Shadow; sh == nil || sh.Radius != 3 || sh.DY != 2 || sh.Color != gg.Red {
		t.Errorf("Shadow = %+v", sh)
	}
	if s.ClearShadow().CurrentPaint().Shadow != nil {
		t.Error("ClearShadow() left the shadow")
	}
}

func TestPaintReplacesAndClears(t *testing.T) {
	p := NewPaint(0)
	p.Color = gg.Blue
	s := New(1, 1).Paint(p)
	p.Color = gg.Red
	if got := s.CurrentPaint().Color; got != gg.Blue {
		t.Errorf("Color = %v, want copy taken at Paint", got)
	}
	if s.Paint(nil).CurrentPaint() != nil {
		t.Error("Paint(nil) did not clear the current paint")
	}
}
