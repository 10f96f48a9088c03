package ggscript

// Option configures a Script during creation.
//
// Example:
//
//	s := ggscript.New(320, 240, ggscript.WithPixelFormat(ggscript.FormatGray8))
type Option func(*options)

type options struct {
	format   PixelFormat
	capacity int
}

func defaultOptions() options {
	return options{
		format:   FormatARGB8888,
		capacity: 16,
	}
}

// WithPixelFormat sets the pixel format of the bitmap allocated by New.
// It has no effect on NewFromBitmap or Wrap.
func WithPixelFormat(f PixelFormat) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithCapacity preallocates room for n commands in the queue.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}
