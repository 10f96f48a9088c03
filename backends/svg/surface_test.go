package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/ggscript"
)

var red = color.NRGBA{R: 255, A: 255}

// render draws build onto a fresh surface and returns the document.
func render(t *testing.T, build func(*ggscript.Script)) string {
	t.Helper()
	s := New(100, 80)
	sc := ggscript.Wrap(s)
	build(sc)
	if _, err := sc.Draw(); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	doc := string(s.Bytes())
	checkWellFormed(t, doc)
	return doc
}

// checkWellFormed parses doc and verifies that every <g> is closed.
func checkWellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	depth := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("malformed SVG: %v\n%s", err, doc)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			if tok.Name.Local == "g" {
				depth++
			}
		case xml.EndElement:
			if tok.Name.Local == "g" {
				depth--
			}
		}
	}
	if depth != 0 {
		t.Errorf("unbalanced groups: depth %d", depth)
	}
}

func TestRegistered(t *testing.T) {
	s, err := ggscript.NewSurface("svg", 10, 20)
	if err != nil {
		t.Fatalf("NewSurface() error = %v", err)
	}
	if _, ok := s.(*Surface); !ok {
		t.Errorf("NewSurface(svg) = %T, want *Surface", s)
	}
}

func TestDocumentContents(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	tests := []struct {
		name  string
		build func(*ggscript.Script)
		want  []string
	}{
		{
			name:  "fill",
			build: func(s *ggscript.Script) { s.Color(red).Rect(1, 2, 11, 12) },
			want:  []string{`<path d="M1 2 L11 2 L11 12 L1 12 Z"`, `fill="#ff0000"`},
		},
		{
			name: "stroke",
			build: func(s *ggscript.Script) {
				s.Color(red).Style(ggscript.StyleStroke).StrokeWidth(2).
					PathEffect(ggscript.NewDashPathEffect(1, 4, 2)).Circle(5, 5, 3)
			},
			want: []string{`fill="none"`, `stroke="#ff0000"`, `stroke-width="2"`, `stroke-dasharray="4 2"`, `stroke-dashoffset="1"`},
		},
		{
			name:  "hairline",
			build: func(s *ggscript.Script) { s.Color(red).Line(0, 0, 10, 10) },
			want:  []string{`vector-effect="non-scaling-stroke"`},
		},
		{
			name:  "alpha",
			build: func(s *ggscript.Script) { s.Color(red).AlphaF(0.5).Rect(0, 0, 1, 1) },
			want:  []string{`fill-opacity="0.498"`},
		},
		{
			name: "transforms",
			build: func(s *ggscript.Script) {
				s.Save().Translate(3, 4).RotateAbout(90, 5, 5).Scale(2, 2).Restore()
			},
			want: []string{`translate(3 4)`, `rotate(90 5 5)`, `scale(2 2)`},
		},
		{
			name:  "clip",
			build: func(s *ggscript.Script) { s.Save().ClipRect(ggscript.NewRect(0, 0, 5, 5)).Restore() },
			want:  []string{`<clipPath id="clip1"`, `clip-path="url(#clip1)"`},
		},
		{
			name: "layer",
			build: func(s *ggscript.Script) {
				p := ggscript.NewPaint(0)
				p.SetAlpha(51)
				p.BlendMode = ggscript.BlendMultiply
				s.SaveLayer(nil, p).Restore()
			},
			want: []string{`opacity="0.2"`, `mix-blend-mode:multiply`},
		},
		{
			name:  "blurred shadow",
			build: func(s *ggscript.Script) { s.Color(red).Shadow(4, 2, 2, color.Black).Rect(0, 0, 5, 5) },
			want:  []string{`<filter id="blur1"`, `<feGaussianBlur`, `filter="url(#blur1)"`, `fill="#000000"`},
		},
		{
			name: "gradient",
			build: func(s *ggscript.Script) {
				s.Shader(&gg.LinearGradientBrush{
					Start: gg.Pt(0, 0),
					End:   gg.Pt(10, 0),
					Stops: []gg.ColorStop{{Offset: 0, Color: gg.Red}, {Offset: 1, Color: gg.Blue}},
				}).Rect(0, 0, 10, 10)
			},
			want: []string{`<linearGradient id="grad1"`, `stop-color="#0000ff"`, `fill="url(#grad1)"`},
		},
		{
			name: "text",
			build: func(s *ggscript.Script) {
				s.Color(red).TextSize(16).TextAlign(ggscript.AlignCenter).TextLocale("fr").
					AddFlags(ggscript.UnderlineText).Text("a<b", 10, 20)
			},
			want: []string{`font-size="16"`, `text-anchor="middle"`, `xml:lang="fr"`, `text-decoration="underline"`, `a&lt;b`},
		},
		{
			name:  "bitmap",
			build: func(s *ggscript.Script) { s.BitmapRect(img, nil, ggscript.NewRect(10, 10, 14, 18)) },
			want:  []string{`matrix(2 0 0 4 10 10)`, `data:image/png;base64,`},
		},
		{
			name:  "color",
			build: func(s *ggscript.Script) { s.DrawColor(red) },
			want:  []string{`<path d="M0 0 L100 0 L100 80 L0 80 Z"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := render(t, tt.build)
			for _, w := range tt.want {
				if !strings.Contains(doc, w) {
					t.Errorf("document missing %q:\n%s", w, doc)
				}
			}
		})
	}
}

func TestDrawColorUnderTransform(t *testing.T) {
	doc := render(t, func(s *ggscript.Script) {
		s.Translate(10, 20).DrawColor(red)
	})
	if !strings.Contains(doc, `<path d="M-10 -20 L90 -20 L90 60 L-10 60 Z"`) {
		t.Errorf("full-surface fill not mapped back through the matrix:\n%s", doc)
	}
}

func TestUnbalancedSavesStayWellFormed(t *testing.T) {
	render(t, func(s *ggscript.Script) {
		s.Save().Translate(1, 1).SaveLayerAlpha(nil, 10).ClipRect(ggscript.NewRect(0, 0, 1, 1)).Rotate(5)
	})
}

func TestRestoreClosesGroups(t *testing.T) {
	s := New(10, 10)
	n := s.Save(ggscript.SaveAll)
	s.Translate(1, 1)
	s.ClipRect(ggscript.NewRect(0, 0, 1, 1))
	if s.openGroups() != 2 {
		t.Fatalf("openGroups() = %d, want 2", s.openGroups())
	}
	if err := s.RestoreToCount(n); err != nil {
		t.Fatal(err)
	}
	if s.openGroups() != 0 || s.SaveCount() != 1 {
		t.Errorf("after restore: groups %d, save count %d", s.openGroups(), s.SaveCount())
	}
	if s.ctm != gg.Identity() {
		t.Errorf("ctm = %v, want identity", s.ctm)
	}
	if err := s.Restore(); !errors.Is(err, ggscript.ErrRestoreUnderflow) {
		t.Errorf("Restore() error = %v, want %v", err, ggscript.ErrRestoreUnderflow)
	}
	if err := s.RestoreToCount(0); !errors.Is(err, ggscript.ErrInvalidSaveCount) {
		t.Errorf("RestoreToCount(0) error = %v, want %v", err, ggscript.ErrInvalidSaveCount)
	}
}

func TestWriteToIsRepeatable(t *testing.T) {
	s := New(10, 10)
	s.Translate(1, 1)
	var a, b bytes.Buffer
	if _, err := s.WriteTo(&a); err != nil {
		t.Fatal(err)
	}
	n, err := s.WriteTo(&b)
	if err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() || n != int64(b.Len()) {
		t.Errorf("WriteTo() not repeatable: %q vs %q", a.String(), b.String())
	}
}

func TestPathData(t *testing.T) {
	p := gg.NewPath()
	p.MoveTo(0, 0.5)
	p.QuadraticTo(1, 1, 2, 0)
	p.CubicTo(3, 1, 4, 1, 5, 0)
	p.Close()
	want := "M0 0.5 Q1 1 2 0 C3 1 4 1 5 0 Z"
	if got := pathData(p); got != want {
		t.Errorf("pathData() = %q, want %q", got, want)
	}
	if got := pathData(gg.NewPath()); got != "" {
		t.Errorf("pathData(empty) = %q, want empty", got)
	}
}

func TestMatrixAttr(t *testing.T) {
	m := gg.Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	if got, want := matrixAttr(m), "matrix(1 4 2 5 3 6)"; got != want {
		t.Errorf("matrixAttr() = %q, want %q", got, want)
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.00001, "0"},
		{1.5, "1.5"},
		{1.0 / 3, "0.3333"},
		{100, "100"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
