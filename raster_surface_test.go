package ggscript

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	return d >= -tol && d <= tol
}

func drawRaster(t *testing.T, w, h int, build func(*Script)) image.Image {
	t.Helper()
	s := New(w, h)
	build(s)
	bmp, err := s.Draw()
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	return bmp.Image()
}

func TestRasterPixels(t *testing.T) {
	transparent := color.NRGBA{}
	tests := []struct {
		name   string
		build  func(*Script)
		checks map[image.Point]color.NRGBA
	}{
		{
			name:  "rect",
			build: func(s *Script) { s.Color(red).Rect(4, 4, 12, 12) },
			checks: map[image.Point]color.NRGBA{
				{8, 8}: red,
				{1, 1}: transparent,
			},
		},
		{
			name: "translate restored",
			build: func(s *Script) {
				s.Color(red).Save().Translate(10, 0).Rect(0, 0, 5, 5).Restore().
					Color(blue).Rect(0, 10, 5, 15)
			},
			checks: map[image.Point]color.NRGBA{
				{12, 2}: red,
				{2, 2}:  transparent,
				{2, 12}: blue,
			},
		},
		{
			name:  "clip",
			build: func(s *Script) { s.ClipRect(NewRect(0, 0, 8, 8)).DrawColor(red) },
			checks: map[image.Point]color.NRGBA{
				{3, 3}:   red,
				{12, 12}: transparent,
			},
		},
		{
			name:  "clear",
			build: func(s *Script) { s.DrawColor(red).DrawColorMode(color.Black, BlendClear) },
			checks: map[image.Point]color.NRGBA{
				{3, 3}: transparent,
			},
		},
		{
			name:  "src replaces",
			build: func(s *Script) { s.DrawColor(red).DrawColorMode(blue, BlendSrc) },
			checks: map[image.Point]color.NRGBA{
				{3, 3}: blue,
			},
		},
		{
			name: "stroke leaves center",
			build: func(s *Script) {
				s.Color(red).Style(StyleStroke).StrokeWidth(2).Circle(8, 8, 6)
			},
			checks: map[image.Point]color.NRGBA{
				{8, 8}:  transparent,
				{13, 8}: red,
			},
		},
		{
			name:  "shadow",
			build: func(s *Script) { s.Color(red).Shadow(0, 6, 6, blue).Rect(0, 0, 6, 6) },
			checks: map[image.Point]color.NRGBA{
				{2, 2}:   red,
				{10, 10}: blue,
			},
		},
		{
			name:  "dst draws nothing",
			build: func(s *Script) { s.Color(red).BlendMode(BlendDst).Rect(0, 0, 16, 16) },
			checks: map[image.Point]color.NRGBA{
				{8, 8}: transparent,
			},
		},
		{
			name:  "points",
			build: func(s *Script) { s.Color(red).StrokeWidth(4).Point(8, 8) },
			checks: map[image.Point]color.NRGBA{
				{8, 8}: red,
				{1, 1}: transparent,
			},
		},
		{
			name: "pie",
			build: func(s *Script) {
				s.Color(red).Arc(NewRect(0, 0, 16, 16), 0, 90, true)
			},
			checks: map[image.Point]color.NRGBA{
				{11, 11}: red,
				{4, 4}:   transparent,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := drawRaster(t, 16, 16, tt.build)
			for pt, want := range tt.checks {
				if got := nrgbaAt(img, pt.X, pt.Y); got != want {
					t.Errorf("pixel %v = %v, want %v", pt, got, want)
				}
			}
		})
	}
}

func TestRasterLayerAlpha(t *testing.T) {
	img := drawRaster(t, 8, 8, func(s *Script) {
		s.SaveLayerAlpha(nil, 128).Color(red).Rect(0, 0, 8, 8).Restore()
	})
	got := nrgbaAt(img, 4, 4)
	if !near(got.A, 128, 3) {
		t.Errorf("alpha = %d, want about 128", got.A)
	}
	if !near(got.R, 255, 2) || got.G != 0 {
		t.Errorf("color = %v, want red", got)
	}
}

func TestRasterBitmap(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			src.Set(x, y, blue)
		}
	}
	img := drawRaster(t, 16, 16, func(s *Script) {
		s.BitmapRect(src, nil, NewRect(4, 4, 12, 12))
	})
	if got := nrgbaAt(img, 8, 8); got != blue {
		t.Errorf("pixel (8,8) = %v, want %v", got, blue)
	}
	if got := nrgbaAt(img, 1, 1); got.A != 0 {
		t.Errorf("pixel (1,1) = %v, want transparent", got)
	}

	img = drawRaster(t, 16, 16, func(s *Script) {
		s.Translate(8, 8).Rotate(180).BitmapSize(src, 4, 4)
	})
	if got := nrgbaAt(img, 6, 6); got != blue {
		t.Errorf("rotated pixel (6,6) = %v, want %v", got, blue)
	}
	if got := nrgbaAt(img, 10, 10); got.A != 0 {
		t.Errorf("rotated pixel (10,10) = %v, want transparent", got)
	}
}

func TestRasterSaveCounts(t *testing.T) {
	s := NewRasterSurface(4, 4)
	if got := s.SaveCount(); got != 1 {
		t.Fatalf("SaveCount() = %d, want 1", got)
	}
	if got := s.Save(SaveAll); got != 1 {
		t.Errorf("Save() = %d, want 1", got)
	}
	if got := s.SaveLayerAlpha(nil, 255, SaveAll); got != 2 {
		t.Errorf("SaveLayerAlpha() = %d, want 2", got)
	}
	if got := s.SaveLayer(nil, nil, SaveAll); got != 3 {
		t.Errorf("SaveLayer() = %d, want 3", got)
	}
	if err := s.RestoreToCount(2); err != nil {
		t.Fatalf("RestoreToCount(2) error = %v", err)
	}
	if got := s.SaveCount(); got != 2 {
		t.Errorf("SaveCount() = %d, want 2", got)
	}
	if err := s.RestoreToCount(0); !errors.Is(err, ErrInvalidSaveCount) {
		t.Errorf("RestoreToCount(0) error = %v, want %v", err, ErrInvalidSaveCount)
	}
	if err := s.RestoreToCount(10); err != nil {
		t.Errorf("RestoreToCount(10) error = %v, want nil", err)
	}
	if err := s.Restore(); err != nil {
		t.Fatal(err)
	}
	if err := s.Restore(); !errors.Is(err, ErrRestoreUnderflow) {
		t.Errorf("Restore() error = %v, want %v", err, ErrRestoreUnderflow)
	}
}

func TestRasterWriteTo(t *testing.T) {
	s := NewRasterSurface(4, 4)
	var buf bytes.Buffer
	n, err := s.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, wrote %d bytes", n, buf.Len())
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("WriteTo() did not write a PNG")
	}
}

func TestPictureReplayIsolated(t *testing.T) {
	pic := Wrap(NewRasterSurface(8, 8)).
		Color(red).
		Translate(100, 100).
		Save().
		Rect(0, 0, 8, 8).
		Record()

	img := drawRaster(t, 16, 16, func(s *Script) {
		s.Picture(pic).Color(blue).Rect(0, 0, 4, 4)
	})
	if got := nrgbaAt(img, 2, 2); got != blue {
		t.Errorf("pixel (2,2) = %v, want %v after picture", got, blue)
	}

	img = drawRaster(t, 16, 16, func(s *Script) {
		s.PictureRect(Wrap(NewRasterSurface(8, 8)).Color(red).Rect(0, 0, 8, 8).Record(), NewRect(8, 8, 16, 16))
	})
	if got := nrgbaAt(img, 12, 12); got != red {
		t.Errorf("pixel (12,12) = %v, want %v", got, red)
	}
	if got := nrgbaAt(img, 4, 4); got.A != 0 {
		t.Errorf("pixel (4,4) = %v, want transparent", got)
	}
}

func TestPictureCommandCalls(t *testing.T) {
	pic := NewPicture(10, 20, SaveCommand{}, RestoreCommand{Count: NoSave})
	tr := newTrace()
	if err := pic.Draw(tr); err != nil {
		t.Fatal(err)
	}
	want := []string{"Save", "Save", "RestoreToCount(2)", "RestoreToCount(1)"}
	if !callsEqual(tr.calls, want) {
		t.Errorf("calls = %v, want %v", tr.calls, want)
	}

	tr = newTrace()
	if _, err := (PictureCommand{Picture: pic, Dst: &Rect{Left: 1, Top: 2, Right: 21, Bottom: 12}}).Apply(tr); err != nil {
		t.Fatal(err)
	}
	want = []string{
		"Save", "ClipRect(1 2 21 12)", "Translate(1 2)", "Scale(2 0.5)",
		"Save", "RestoreToCount(2)", "RestoreToCount(1)",
	}
	if !callsEqual(tr.calls, want) {
		t.Errorf("calls = %v, want %v", tr.calls, want)
	}
}
