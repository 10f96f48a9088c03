package svg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"math"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo"
	"github.com/gogpu/gg"
	"github.com/gogpu/ggscript"
	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
)

// DrawColor covers the surface with c. BlendClear cannot be expressed in a
// vector document and is skipped; BlendSrc paints like source-over.
func (s *Surface) DrawColor(c gg.RGBA, mode ggscript.BlendMode) error {
	switch mode {
	case ggscript.BlendDst:
		return nil
	case ggscript.BlendClear:
		ggscript.Logger().Debug("ggscript: svg surface cannot clear")
		return nil
	case ggscript.BlendSrc:
		mode = ggscript.BlendSrcOver
	}
	p := ggscript.NewPaint(0)
	p.Color = c
	p.BlendMode = mode
	return s.DrawPaint(p)
}

// DrawPaint covers the whole surface, whatever the current transform.
func (s *Surface) DrawPaint(p *ggscript.Paint) error {
	full := ggscript.RectPath(ggscript.Rect{Right: float64(s.width), Bottom: float64(s.height)})
	q := *p
	q.Style = ggscript.StyleFill
	q.Shadow = nil
	s.drawPath(full.Transform(s.ctm.Invert()), &q)
	return nil
}

func (s *Surface) DrawCircle(cx, cy, radius float64, p *ggscript.Paint) error {
	s.drawPath(ggscript.CirclePath(cx, cy, radius), p)
	return nil
}

func (s *Surface) DrawOval(r ggscript.Rect, p *ggscript.Paint) error {
	s.drawPath(ggscript.OvalPath(r), p)
	return nil
}

func (s *Surface) DrawRect(r ggscript.Rect, p *ggscript.Paint) error {
	s.drawPath(ggscript.RectPath(r), p)
	return nil
}

func (s *Surface) DrawRoundRect(r ggscript.Rect, rx, ry float64, p *ggscript.Paint) error {
	s.drawPath(ggscript.RoundRectPath(r, rx, ry), p)
	return nil
}

func (s *Surface) DrawArc(r ggscript.Rect, startDeg, sweepDeg float64, useCenter bool, p *ggscript.Paint) error {
	s.drawPath(ggscript.ArcPath(r, startDeg, sweepDeg, useCenter), p)
	return nil
}

func (s *Surface) DrawLines(pts []float64, p *ggscript.Paint) error {
	q := *p
	q.Style = ggscript.StyleStroke
	s.drawPath(ggscript.LinesPath(pts), &q)
	return nil
}

func (s *Surface) DrawPoints(pts []float64, p *ggscript.Paint) error {
	q := *p
	q.Style = ggscript.StyleFill
	s.drawPath(ggscript.PointsPath(pts, p.StrokeWidth, p.Cap == gg.LineCapRound), &q)
	return nil
}

func (s *Surface) DrawPath(path *gg.Path, p *ggscript.Paint) error {
	s.drawPath(path, p)
	return nil
}

// DrawText emits a <text> element. The typeface is not embedded; viewers
// substitute a default font.
func (s *Surface) DrawText(str string, x, y float64, p *ggscript.Paint) error {
	attrs := []string{
		fmt.Sprintf(`font-size="%s"`, num(p.TextSize)),
		fmt.Sprintf(`text-anchor="%s"`, anchor(p.TextAlign)),
	}
	if loc := p.Locale(); loc != "" {
		attrs = append(attrs, fmt.Sprintf(`xml:lang="%s"`, loc))
	}
	if p.LetterSpacing != 0 {
		attrs = append(attrs, fmt.Sprintf(`letter-spacing="%s"`, num(p.LetterSpacing*p.TextSize)))
	}
	var deco []string
	if p.HasFlag(ggscript.UnderlineText) {
		deco = append(deco, "underline")
	}
	if p.HasFlag(ggscript.StrikeThruText) {
		deco = append(deco, "line-through")
	}
	if len(deco) > 0 {
		attrs = append(attrs, fmt.Sprintf(`text-decoration="%s"`, strings.Join(deco, " ")))
	}

	if sh := p.Shadow; sh != nil {
		s.doc.Gtransform(fmt.Sprintf("translate(%s %s)", num(x+sh.DX), num(y+sh.DY)))
		s.doc.Text(0, 0, str, append(colorAttrs("fill", sh.Color), attrs...)...)
		s.doc.Gend()
	}
	s.doc.Gtransform(fmt.Sprintf("translate(%s %s)", num(x), num(y)))
	s.doc.Text(0, 0, str, append(s.brushAttrs("fill", p), attrs...)...)
	s.doc.Gend()
	return nil
}

// DrawBitmap embeds the src region of img as PNG data scaled into dst.
func (s *Surface) DrawBitmap(img image.Image, src *image.Rectangle, dst ggscript.Rect, p *ggscript.Paint) error {
	sr := img.Bounds()
	if src != nil {
		sr = src.Intersect(sr)
	}
	if sr.Empty() {
		return nil
	}
	m := gg.Translate(dst.Left, dst.Top).
		Multiply(gg.Scale(dst.Width()/float64(sr.Dx()), dst.Height()/float64(sr.Dy())))
	return s.image(img, sr, m, p)
}

// DrawBitmapMatrix embeds img mapped through m.
func (s *Surface) DrawBitmapMatrix(img image.Image, m gg.Matrix, p *ggscript.Paint) error {
	if img.Bounds().Empty() {
		return nil
	}
	return s.image(img, img.Bounds(), m, p)
}

func (s *Surface) image(img image.Image, sr image.Rectangle, m gg.Matrix, p *ggscript.Paint) error {
	crop := image.NewRGBA(image.Rect(0, 0, sr.Dx(), sr.Dy()))
	xdraw.Copy(crop, image.Point{}, img, sr, xdraw.Src, nil)

	var data bytes.Buffer
	if err := png.Encode(&data, crop); err != nil {
		return fmt.Errorf("svg: encode image: %w", err)
	}
	href := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data.Bytes())

	var attrs []string
	if p != nil {
		attrs = append(attrs, fmt.Sprintf(`opacity="%s"`, num(p.Color.A)))
		if !p.HasFlag(ggscript.FilterBitmap) {
			attrs = append(attrs, `image-rendering="pixelated"`)
		}
	}
	s.doc.Gtransform(matrixAttr(m))
	s.doc.Image(0, 0, sr.Dx(), sr.Dy(), href, attrs...)
	s.doc.Gend()
	return nil
}

// drawPath emits path, preceded by its shadow when p has one.
func (s *Surface) drawPath(path *gg.Path, p *ggscript.Paint) {
	if p.BlendMode == ggscript.BlendDst {
		return
	}
	d := pathData(path)
	if d == "" {
		return
	}

	if sh := p.Shadow; sh != nil {
		attrs := s.styleAttrs(p, func(kind string) []string { return colorAttrs(kind, sh.Color) })
		if sh.Radius > 0 {
			id := s.nextID("blur")
			s.doc.Def()
			s.doc.Filter(id)
			s.doc.FeGaussianBlur(svgo.Filterspec{In: "SourceGraphic"}, sh.Radius/2, sh.Radius/2)
			s.doc.Fend()
			s.doc.DefEnd()
			attrs = append(attrs, fmt.Sprintf(`filter="url(#%s)"`, id))
		}
		s.doc.Gtransform(fmt.Sprintf("translate(%s %s)", num(sh.DX), num(sh.DY)))
		s.doc.Path(d, attrs...)
		s.doc.Gend()
	}

	s.doc.Path(d, s.styleAttrs(p, func(kind string) []string { return s.brushAttrs(kind, p) })...)
}

// styleAttrs returns fill and stroke attributes for p, painting with the
// attributes produced by paint.
func (s *Surface) styleAttrs(p *ggscript.Paint, paint func(kind string) []string) []string {
	var attrs []string
	if p.Style == ggscript.StyleFill || p.Style == ggscript.StyleFillAndStroke {
		attrs = append(attrs, paint("fill")...)
	} else {
		attrs = append(attrs, `fill="none"`)
	}

	if p.Style == ggscript.StyleStroke || p.Style == ggscript.StyleFillAndStroke {
		attrs = append(attrs, paint("stroke")...)
		if p.StrokeWidth <= 0 {
			attrs = append(attrs, `stroke-width="1"`, `vector-effect="non-scaling-stroke"`)
		} else {
			attrs = append(attrs, fmt.Sprintf(`stroke-width="%s"`, num(p.StrokeWidth)))
		}
		attrs = append(attrs,
			fmt.Sprintf(`stroke-linecap="%s"`, lineCap(p.Cap)),
			fmt.Sprintf(`stroke-linejoin="%s"`, lineJoin(p.Join)),
			fmt.Sprintf(`stroke-miterlimit="%s"`, num(p.StrokeMiter)),
		)
		if pe := p.PathEffect; pe != nil && len(pe.Intervals) > 0 {
			dash := make([]string, len(pe.Intervals))
			for i, v := range pe.Intervals {
				dash[i] = num(v)
			}
			attrs = append(attrs,
				fmt.Sprintf(`stroke-dasharray="%s"`, strings.Join(dash, " ")),
				fmt.Sprintf(`stroke-dashoffset="%s"`, num(pe.Phase)))
		}
	}

	if css := blendCSS(p.BlendMode); css != "" {
		attrs = append(attrs, "mix-blend-mode:"+css)
	}
	return attrs
}

// brushAttrs paints kind ("fill" or "stroke") with the shader of p, or with
// its color. Linear gradients become gradient definitions; other shaders are
// approximated by their color at the origin.
func (s *Surface) brushAttrs(kind string, p *ggscript.Paint) []string {
	shader := p.Shader
	if lg, ok := shader.(gg.LinearGradientBrush); ok {
		shader = &lg
	}
	switch b := shader.(type) {
	case nil:
		return colorAttrs(kind, p.EffectiveColor())
	case *gg.LinearGradientBrush:
		id := s.nextID("grad")
		s.doc.Def()
		fmt.Fprintf(s.doc.Writer,
			`<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
			id, num(b.Start.X), num(b.Start.Y), num(b.End.X), num(b.End.Y))
		for _, stop := range b.Stops {
			fmt.Fprintf(s.doc.Writer, `<stop offset="%s" stop-color="%s" stop-opacity="%s"/>`+"\n",
				num(stop.Offset), hex(stop.Color), num(stop.Color.A))
		}
		fmt.Fprintln(s.doc.Writer, `</linearGradient>`)
		s.doc.DefEnd()
		return []string{fmt.Sprintf(`%s="url(#%s)"`, kind, id)}
	default:
		ggscript.Logger().Debug("ggscript: svg shader approximated by a solid color", "shader", fmt.Sprintf("%T", b))
		return colorAttrs(kind, b.ColorAt(0, 0))
	}
}

func colorAttrs(kind string, c gg.RGBA) []string {
	attrs := []string{fmt.Sprintf(`%s="%s"`, kind, hex(c))}
	if c.A < 1 {
		attrs = append(attrs, fmt.Sprintf(`%s-opacity="%s"`, kind, num(c.A)))
	}
	return attrs
}

func hex(c gg.RGBA) string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// pathData converts path into SVG path data.
func pathData(path *gg.Path) string {
	var b strings.Builder
	pt := func(cmd byte, pts ...gg.Point) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(cmd)
		for i, p := range pts {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(num(p.X))
			b.WriteByte(' ')
			b.WriteString(num(p.Y))
		}
	}
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case gg.MoveTo:
			pt('M', e.Point)
		case gg.LineTo:
			pt('L', e.Point)
		case gg.QuadTo:
			pt('Q', e.Control, e.Point)
		case gg.CubicTo:
			pt('C', e.Control1, e.Control2, e.Point)
		case gg.Close:
			pt('Z')
		}
	}
	return b.String()
}

// matrixAttr formats m as an SVG matrix transform. gg stores rows
// (A B C / D E F); SVG lists columns.
func matrixAttr(m gg.Matrix) string {
	return fmt.Sprintf("matrix(%s %s %s %s %s %s)", num(m.A), num(m.D), num(m.B), num(m.E), num(m.C), num(m.F))
}

// num formats v compactly, dropping float noise beyond 1e-4.
func num(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func lineCap(c gg.LineCap) string {
	switch c {
	case gg.LineCapRound:
		return "round"
	case gg.LineCapSquare:
		return "square"
	default:
		return "butt"
	}
}

func lineJoin(j gg.LineJoin) string {
	switch j {
	case gg.LineJoinRound:
		return "round"
	case gg.LineJoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}

func anchor(a ggscript.TextAlign) string {
	switch a {
	case ggscript.AlignCenter:
		return "middle"
	case ggscript.AlignRight:
		return "end"
	default:
		return "start"
	}
}

func blendCSS(m ggscript.BlendMode) string {
	switch m {
	case ggscript.BlendMultiply:
		return "multiply"
	case ggscript.BlendScreen:
		return "screen"
	case ggscript.BlendOverlay:
		return "overlay"
	default:
		return ""
	}
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
