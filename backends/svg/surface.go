// Package svg provides a ggscript surface that writes SVG documents.
//
// Drawing state maps onto nested groups: every transform, clip and layer
// opens a <g> element, and a restore closes the groups opened since the
// matching save. Shapes are emitted as <path> elements, bitmaps as
// embedded PNG data, and text as <text> elements.
//
// # Supported Features
//
//   - Fill, stroke and fill-and-stroke styles, dashes, caps and joins
//   - Solid colors and linear gradient shaders
//   - Layers with alpha and multiply, screen or overlay blending
//   - Shadows, blurred with an SVG filter when they have a radius
//   - Rectangular clips in any transform
//
// # Example
//
//	import _ "github.com/gogpu/ggscript/backends/svg"
//
//	s, _ := ggscript.NewSurface("svg", 400, 300)
//	ggscript.Wrap(s).Color(color.Black).Circle(200, 150, 100).Draw()
//	s.(ggscript.WriterSurface).WriteTo(os.Stdout)
package svg

import (
	"bytes"
	"fmt"
	"io"

	svgo "github.com/ajstarks/svgo"
	"github.com/gogpu/gg"
	"github.com/gogpu/ggscript"
)

func init() {
	ggscript.Register("svg", func(width, height int) ggscript.Surface {
		return New(width, height)
	})
}

// Surface records drawing as an SVG document.
type Surface struct {
	buf    bytes.Buffer
	doc    *svgo.SVG
	width  int
	height int

	ctm    gg.Matrix // tracked for full-surface fills
	open   int       // groups opened since the last save
	frames []frame
	ids    int
}

type frame struct {
	open int
	ctm  gg.Matrix
}

var (
	_ ggscript.Surface       = (*Surface)(nil)
	_ ggscript.WriterSurface = (*Surface)(nil)
	_ ggscript.PivotRotator  = (*Surface)(nil)
)

// New returns an empty SVG surface of the given size.
func New(width, height int) *Surface {
	s := &Surface{width: width, height: height, ctm: gg.Identity()}
	s.doc = svgo.New(&s.buf)
	s.doc.Start(width, height)
	return s
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// WriteTo writes the document, closing every group still open. The surface
// stays usable and later drawing appears in later writes.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	var tail bytes.Buffer
	end := svgo.New(&tail)
	for range s.openGroups() {
		end.Gend()
	}
	end.End()

	n, err := w.Write(s.buf.Bytes())
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(tail.Bytes())
	return int64(n + m), err
}

// Bytes returns the complete document.
func (s *Surface) Bytes() []byte {
	var b bytes.Buffer
	_, _ = s.WriteTo(&b)
	return b.Bytes()
}

func (s *Surface) openGroups() int {
	n := s.open
	for _, f := range s.frames {
		n += f.open
	}
	return n
}

// --------------------------------------------------------------------------
// State
// --------------------------------------------------------------------------

func (s *Surface) SaveCount() int { return len(s.frames) + 1 }

func (s *Surface) Save(ggscript.SaveFlags) int {
	n := s.SaveCount()
	s.frames = append(s.frames, frame{open: s.open, ctm: s.ctm})
	s.open = 0
	return n
}

// SaveLayer opens a group carrying the alpha and blend mode of p.
func (s *Surface) SaveLayer(bounds *ggscript.Rect, p *ggscript.Paint, flags ggscript.SaveFlags) int {
	n := s.Save(flags)
	if bounds != nil {
		s.ClipRect(*bounds)
	}
	attrs := []string{}
	if p != nil {
		attrs = append(attrs, fmt.Sprintf(`opacity="%s"`, num(p.Color.A)))
		if css := blendCSS(p.BlendMode); css != "" {
			attrs = append(attrs, "mix-blend-mode:"+css)
		}
	}
	s.group(attrs...)
	return n
}

// SaveLayerAlpha opens a group with opacity alpha/255.
func (s *Surface) SaveLayerAlpha(bounds *ggscript.Rect, alpha int, flags ggscript.SaveFlags) int {
	n := s.Save(flags)
	if bounds != nil {
		s.ClipRect(*bounds)
	}
	s.group(fmt.Sprintf(`opacity="%s"`, num(float64(min(max(alpha, 0), 255))/255)))
	return n
}

// Restore closes the groups opened since the most recent save.
func (s *Surface) Restore() error {
	if len(s.frames) == 0 {
		ggscript.Logger().Warn("ggscript: svg restore underflow")
		return ggscript.ErrRestoreUnderflow
	}
	for range s.open {
		s.doc.Gend()
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	s.open = f.open
	s.ctm = f.ctm
	return nil
}

func (s *Surface) RestoreToCount(count int) error {
	if count < 1 {
		return fmt.Errorf("%w: %d", ggscript.ErrInvalidSaveCount, count)
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

func (s *Surface) Translate(dx, dy float64) {
	s.transform(gg.Translate(dx, dy), fmt.Sprintf("translate(%s %s)", num(dx), num(dy)))
}

func (s *Surface) Rotate(degrees float64) {
	s.transform(gg.Rotate(radians(degrees)), fmt.Sprintf("rotate(%s)", num(degrees)))
}

// RotateAbout uses the native three-argument SVG rotate.
func (s *Surface) RotateAbout(degrees, px, py float64) {
	m := gg.Translate(px, py).Multiply(gg.Rotate(radians(degrees))).Multiply(gg.Translate(-px, -py))
	s.transform(m, fmt.Sprintf("rotate(%s %s %s)", num(degrees), num(px), num(py)))
}

func (s *Surface) Scale(sx, sy float64) {
	s.transform(gg.Scale(sx, sy), fmt.Sprintf("scale(%s %s)", num(sx), num(sy)))
}

func (s *Surface) Skew(sx, sy float64) {
	s.Concat(gg.Shear(sx, sy))
}

func (s *Surface) Concat(m gg.Matrix) {
	s.transform(m, matrixAttr(m))
}

func (s *Surface) transform(m gg.Matrix, attr string) {
	s.ctm = s.ctm.Multiply(m)
	s.doc.Gtransform(attr)
	s.open++
}

// ClipRect defines a clip path and opens a group using it.
func (s *Surface) ClipRect(r ggscript.Rect) {
	id := s.nextID("clip")
	s.doc.Def()
	s.doc.ClipPath(fmt.Sprintf(`id="%s"`, id))
	s.doc.Path(pathData(ggscript.RectPath(r.Sorted())))
	s.doc.ClipEnd()
	s.doc.DefEnd()
	s.group(fmt.Sprintf(`clip-path="url(#%s)"`, id))
}

func (s *Surface) group(attrs ...string) {
	if len(attrs) == 0 {
		s.doc.Group(`class="layer"`)
	} else {
		s.doc.Group(attrs...)
	}
	s.open++
}

func (s *Surface) nextID(prefix string) string {
	s.ids++
	return fmt.Sprintf("%s%d", prefix, s.ids)
}
