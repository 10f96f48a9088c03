package ggscript

import (
	"fmt"
	"image"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// PixelFormat selects the pixel storage of a Bitmap.
type PixelFormat uint8

const (
	// FormatARGB8888 stores 8 bits per channel with alpha (*image.RGBA).
	FormatARGB8888 PixelFormat = iota
	// FormatRGBA64 stores 16 bits per channel with alpha (*image.RGBA64).
	FormatRGBA64
	// FormatGray8 stores 8-bit luminance (*image.Gray).
	FormatGray8
	// FormatAlpha8 stores 8-bit alpha only (*image.Alpha).
	FormatAlpha8
)

// String returns the string representation of a PixelFormat.
func (f PixelFormat) String() string {
	switch f {
	case FormatARGB8888:
		return "ARGB8888"
	case FormatRGBA64:
		return "RGBA64"
	case FormatGray8:
		return "Gray8"
	case FormatAlpha8:
		return "Alpha8"
	default:
		return "Unknown"
	}
}

// ParsePixelFormat returns the format named s, ignoring case.
func ParsePixelFormat(s string) (PixelFormat, error) {
	for f := FormatARGB8888; f <= FormatAlpha8; f++ {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown pixel format %q", ErrInvalidArgument, s)
}

// Bitmap is a pixel buffer that a Script can draw into.
// A Bitmap is mutable unless created by BitmapFromImage; only mutable,
// unreleased bitmaps can back a Script.
type Bitmap struct {
	img      xdraw.Image
	format   PixelFormat
	mutable  bool
	released bool
}

// NewBitmap allocates a transparent, mutable bitmap.
func NewBitmap(width, height int, format PixelFormat) *Bitmap {
	return &Bitmap{
		img:     newImage(image.Rect(0, 0, width, height), format),
		format:  format,
		mutable: true,
	}
}

// BitmapFromImage returns an immutable ARGB8888 copy of img.
func BitmapFromImage(img image.Image) *Bitmap {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return &Bitmap{img: dst, format: FormatARGB8888}
}

// WrapImage returns a mutable bitmap drawing directly into img.
// Formats other than those of PixelFormat are reported as ARGB8888 and
// converted when written.
func WrapImage(img xdraw.Image) *Bitmap {
	return &Bitmap{img: img, format: formatOf(img), mutable: true}
}

// Copy returns a new bitmap holding the pixels of b converted to format.
func (b *Bitmap) Copy(format PixelFormat, mutable bool) (*Bitmap, error) {
	if b.released {
		return nil, fmt.Errorf("%w: copy of released bitmap", ErrInvalidArgument)
	}
	r := b.img.Bounds()
	dst := newImage(image.Rect(0, 0, r.Dx(), r.Dy()), format)
	xdraw.Draw(dst, dst.Bounds(), b.img, r.Min, xdraw.Src)
	return &Bitmap{img: dst, format: format, mutable: mutable}, nil
}

// Image returns the backing image, or nil once released.
func (b *Bitmap) Image() image.Image {
	if b.released {
		return nil
	}
	return b.img
}

// Width returns the width in pixels.
func (b *Bitmap) Width() int { return b.img.Bounds().Dx() }

// Height returns the height in pixels.
func (b *Bitmap) Height() int { return b.img.Bounds().Dy() }

// Format returns the pixel format.
func (b *Bitmap) Format() PixelFormat { return b.format }

// IsMutable reports whether the bitmap may be drawn into.
func (b *Bitmap) IsMutable() bool { return b.mutable }

// IsReleased reports whether Release has been called.
func (b *Bitmap) IsReleased() bool { return b.released }

// Release drops the pixel storage. The bitmap cannot be used afterwards.
func (b *Bitmap) Release() {
	b.released = true
	b.img = emptyImage(b.img)
}

// load replaces the pixels of b with src, converting to b's format.
func (b *Bitmap) load(src image.Image) {
	xdraw.Draw(b.img, b.img.Bounds(), src, src.Bounds().Min, xdraw.Src)
}

func newImage(r image.Rectangle, format PixelFormat) xdraw.Image {
	switch format {
	case FormatRGBA64:
		return image.NewRGBA64(r)
	case FormatGray8:
		return image.NewGray(r)
	case FormatAlpha8:
		return image.NewAlpha(r)
	default:
		return image.NewRGBA(r)
	}
}

func formatOf(img image.Image) PixelFormat {
	switch img.(type) {
	case *image.RGBA64:
		return FormatRGBA64
	case *image.Gray:
		return FormatGray8
	case *image.Alpha:
		return FormatAlpha8
	default:
		return FormatARGB8888
	}
}

// emptyImage keeps the bounds of a released image so Width and Height stay
// meaningful while the pixels are dropped.
func emptyImage(img xdraw.Image) xdraw.Image {
	return &image.Alpha{Rect: img.Bounds()}
}
