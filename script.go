package ggscript

import (
	"fmt"
	"slices"
)

// Script is a fluent builder of deferred drawing commands.
//
// Configuration calls (Color, StrokeWidth, Shadow, ...) edit an optional
// current paint. Draw calls queue a command holding a copy of that paint,
// so later configuration never changes what was already queued. Draw
// replays the queue in order onto the script's surface.
//
// A failed call records an error, queues nothing and returns the script so
// the chain can continue; Err reports it and Draw returns it. A draw call
// that failed for lack of a current paint may be retried once a paint is
// configured: the retry succeeding withdraws the error it recorded.
//
// A Script is not safe for concurrent use.
type Script struct {
	commands []Command
	paint    *Paint
	replay   replayer
	errs     []buildError

	surface Surface
	raster  *RasterSurface // set when the script owns bitmap
	bitmap  *Bitmap
}

// New returns a script drawing into a newly allocated, transparent bitmap
// of the given size.
func New(width, height int, opts ...Option) *Script {
	o := applyOptions(opts)
	raster := NewRasterSurface(width, height)
	return &Script{
		commands: make([]Command, 0, o.capacity),
		surface:  raster,
		raster:   raster,
		bitmap:   NewBitmap(width, height, o.format),
	}
}

// NewFromBitmap returns a script drawing over the pixels of b. b must be
// mutable and not released.
func NewFromBitmap(b *Bitmap, opts ...Option) (*Script, error) {
	if b == nil || !b.IsMutable() || b.IsReleased() {
		return nil, fmt.Errorf("%w: bitmap must be mutable and unreleased", ErrInvalidArgument)
	}
	o := applyOptions(opts)
	raster := NewRasterSurfaceForImage(b.Image())
	return &Script{
		commands: make([]Command, 0, o.capacity),
		surface:  raster,
		raster:   raster,
		bitmap:   b,
	}, nil
}

// Wrap returns a script drawing onto a caller-owned surface. Draw returns a
// nil bitmap for wrapped surfaces.
func Wrap(s Surface, opts ...Option) *Script {
	o := applyOptions(opts)
	return &Script{
		commands: make([]Command, 0, o.capacity),
		surface:  s,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Draw replays every queued command onto the surface, in order.
//
// An unqualified Restore that follows a save made during this pass is
// resolved to the save count that save produced, so it unwinds exactly that
// save even when the surface already held state of its own.
//
// Draw returns the bitmap the script owns, or nil for wrapped surfaces.
// It fails with the first unresolved build error before drawing anything, or
// with the first error reported by the surface.
func (s *Script) Draw() (*Bitmap, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	s.replay.reset()
	if err := s.replay.run(s.surface, s.commands); err != nil {
		return nil, err
	}
	if s.bitmap == nil {
		return nil, nil
	}
	if err := s.raster.RestoreToCount(1); err != nil {
		return nil, err
	}
	s.bitmap.load(s.raster.Image())
	return s.bitmap, nil
}

// Err returns the first unresolved error recorded while building, if any.
func (s *Script) Err() error {
	if len(s.errs) == 0 {
		return nil
	}
	return s.errs[0].err
}

// ClearErr forgets every recorded build error, returning the first.
func (s *Script) ClearErr() error {
	err := s.Err()
	s.errs = nil
	return err
}

// Len returns the number of queued commands.
func (s *Script) Len() int { return len(s.commands) }

// Commands returns a copy of the command queue.
func (s *Script) Commands() []Command { return slices.Clone(s.commands) }

// SaveCount returns the save count that an unqualified restore would
// currently be resolved to, or NoSave. It only changes during Draw.
func (s *Script) SaveCount() int { return s.replay.current() }

// Surface returns the surface commands are replayed on.
func (s *Script) Surface() Surface { return s.surface }

// CurrentPaint returns a copy of the current paint, or nil.
func (s *Script) CurrentPaint() *Paint { return s.paint.Clone() }

// Script appends the commands of other. Commands are immutable and shared,
// not copied. Unresolved build errors of other are carried over; retrying
// the failed call on s does not withdraw them.
func (s *Script) Script(other *Script) *Script {
	if other == nil {
		return s.fail(ErrInvalidArgument, "Script of nil script")
	}
	for _, e := range other.errs {
		s.errs = append(s.errs, buildError{err: e.err})
	}
	s.commands = append(s.commands, other.commands...)
	return s
}

// ScriptAt appends the commands of other offset by (dx, dy), bracketed by a
// save and a restore so that nothing other does to the state escapes.
//
// The closing restore always returns to the bracketing save, however many
// saves other leaves open. A restore in other without a matching save in
// other is skipped, so other can neither pop the offset nor the caller's
// state.
func (s *Script) ScriptAt(dx, dy float64, other *Script) *Script {
	if other == nil {
		return s.fail(ErrInvalidArgument, "ScriptAt of nil script")
	}
	b := newBracket()
	s.add(SaveCommand{Flags: SaveAll, Bracket: b})
	s.add(TranslateCommand{DX: dx, DY: dy})
	s.Script(other)
	return s.add(RestoreCommand{Count: NoSave, Bracket: b})
}

// Record returns an immutable picture of the current queue, sized like
// the surface.
func (s *Script) Record() *Picture {
	return NewPicture(s.surface.Width(), s.surface.Height(), s.commands...)
}

// Custom queues a caller-defined command.
func (s *Script) Custom(cmd Command) *Script {
	if cmd == nil {
		return s.fail(ErrInvalidArgument, "Custom with nil command")
	}
	return s.add(cmd)
}

func (s *Script) add(cmd Command) *Script {
	s.commands = append(s.commands, cmd)
	return s
}

// buildError is an error recorded while building. op is set for errors a
// later successful call of the same operation withdraws.
type buildError struct {
	op  string
	err error
}

// fail records err annotated with detail.
func (s *Script) fail(err error, detail string) *Script {
	s.errs = append(s.errs, buildError{err: fmt.Errorf("%w: %s", err, detail)})
	return s
}

// implicitPaint returns a copy of the current paint for op, recording
// ErrInvalidState when there is none. Success withdraws the errors earlier
// calls of op recorded.
func (s *Script) implicitPaint(op string) (*Paint, bool) {
	if s.paint == nil {
		s.errs = append(s.errs, buildError{
			op:  op,
			err: fmt.Errorf("%w: %s requires a current paint", ErrInvalidState, op),
		})
		return nil, false
	}
	s.errs = slices.DeleteFunc(s.errs, func(e buildError) bool { return e.op == op })
	return s.paint.Clone(), true
}

// explicitPaint returns a copy of p for op, recording ErrInvalidArgument
// when p is nil.
func (s *Script) explicitPaint(op string, p *Paint) (*Paint, bool) {
	if p == nil {
		s.fail(ErrInvalidArgument, op+" with nil paint")
		return nil, false
	}
	return p.Clone(), true
}

// ensurePaint returns the current paint, creating it on first use.
func (s *Script) ensurePaint() *Paint {
	if s.paint == nil {
		s.paint = NewPaint(DefaultPaintFlags)
	}
	return s.paint
}
