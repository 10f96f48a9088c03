// Command ggscript renders a demonstration script to PNG or SVG.
//
// Settings come from ggscript.yaml in the working directory when present;
// flags override them.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/gg"
	"github.com/gogpu/ggscript"
	_ "github.com/gogpu/ggscript/backends/svg"
	"github.com/gogpu/ggscript/cmd/ggscript/internal/config"
)

func main() {
	defaults := config.Default()
	var flags config.Config
	flag.IntVar(&flags.Width, "width", defaults.Width, "image width")
	flag.IntVar(&flags.Height, "height", defaults.Height, "image height")
	flag.StringVar(&flags.Backend, "backend", defaults.Backend, "surface backend (raster, svg)")
	flag.StringVar(&flags.Format, "format", defaults.Format, "bitmap pixel format for the raster backend")
	flag.StringVar(&flags.Output, "output", defaults.Output, "output file")
	flag.StringVar(&flags.LogLevel, "log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	flag.Parse()

	file, err := config.LoadOptional(".")
	if err != nil {
		log.Fatal(err)
	}
	cfg := config.Merge(defaults, *file)
	cfg = config.Merge(cfg, explicit(flags))
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	level, _ := cfg.Level()
	ggscript.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := render(cfg); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d, %s)\n", cfg.Output, cfg.Width, cfg.Height, cfg.Backend)
}

// explicit keeps only the flags set on the command line.
func explicit(flags config.Config) config.Config {
	var c config.Config
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			c.Width = flags.Width
		case "height":
			c.Height = flags.Height
		case "backend":
			c.Backend = flags.Backend
		case "format":
			c.Format = flags.Format
		case "output":
			c.Output = flags.Output
		case "log-level":
			c.LogLevel = flags.LogLevel
		}
	})
	return c
}

func render(cfg config.Config) error {
	var encode func(io.Writer) error
	if cfg.Backend == "raster" {
		format, err := ggscript.ParsePixelFormat(cfg.Format)
		if err != nil {
			return err
		}
		s := ggscript.New(cfg.Width, cfg.Height, ggscript.WithPixelFormat(format))
		bmp, err := demo(s, cfg.Width, cfg.Height).Draw()
		if err != nil {
			return err
		}
		encode = func(w io.Writer) error { return png.Encode(w, bmp.Image()) }
	} else {
		surface, err := ggscript.NewSurface(cfg.Backend, cfg.Width, cfg.Height)
		if err != nil {
			return err
		}
		ws, ok := surface.(ggscript.WriterSurface)
		if !ok {
			return fmt.Errorf("backend %q cannot write output", cfg.Backend)
		}
		if _, err := demo(ggscript.Wrap(surface), cfg.Width, cfg.Height).Draw(); err != nil {
			return err
		}
		encode = func(w io.Writer) error {
			_, err := ws.WriteTo(w)
			return err
		}
	}
	return writeFile(cfg.Output, encode)
}

// writeFile creates path and fills it with encode. The file is removed
// when encoding fails.
func writeFile(path string, encode func(io.Writer) error) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	err = encode(out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
	}
	return err
}

// demo builds the demonstration onto s.
func demo(s *ggscript.Script, w, h int) *ggscript.Script {
	fw, fh := float64(w), float64(h)

	s.Shader(&gg.LinearGradientBrush{
		Start: gg.Pt(0, 0),
		End:   gg.Pt(0, fh),
		Stops: []gg.ColorStop{
			{Offset: 0, Color: gg.RGB(0.1, 0.2, 0.4)},
			{Offset: 1, Color: gg.RGB(0.5, 0.5, 0.6)},
		},
	}).Rect(0, 0, fw, fh).Shader(nil)

	badge := ggscript.New(120, 120).
		HexColor("#ffcc00").
		Shadow(6, 4, 4, color.NRGBA{A: 128}).
		Circle(60, 60, 50).
		ClearShadow().
		Color(color.White).
		Style(ggscript.StyleStroke).
		StrokeWidth(4).
		Circle(60, 60, 50)
	s.ScriptAt(40, 40, badge).ScriptAt(180, 40, badge)

	// Rotated squares
	for i := range 8 {
		s.Save().
			Translate(fw-150, 150).
			Rotate(float64(i)*45).
			HSV(float64(i)*45, 0.7, 0.9).
			Style(ggscript.StyleFill).
			Rect(-30, -30, 30, 30).
			Restore()
	}

	// Star
	star := gg.NewPath()
	for i := range 10 {
		r := 60.0
		if i%2 == 1 {
			r = 30
		}
		a := float64(i)*math.Pi/5 - math.Pi/2
		if i == 0 {
			star.MoveTo(r*math.Cos(a), r*math.Sin(a))
		} else {
			star.LineTo(r*math.Cos(a), r*math.Sin(a))
		}
	}
	star.Close()
	s.Save().
		Translate(fw/2, fh-150).
		Color(color.NRGBA{R: 255, G: 255, A: 255}).
		Path(star).
		Restore()

	s.SaveLayerAlpha(nil, 160).
		Color(color.NRGBA{R: 255, G: 128, A: 255}).
		Style(ggscript.StyleStroke).
		StrokeWidth(6).
		StrokeCap(gg.LineCapRound).
		PathEffect(ggscript.NewDashPathEffect(0, 20, 10)).
		Arc(ggscript.NewRect(40, fh-220, 240, fh-20), -90, 270, false).
		Restore()

	return s
}
