package ggscript

import "errors"

var (
	// ErrInvalidArgument is returned when a caller-supplied value cannot be
	// used, such as an immutable or released bitmap passed to NewFromBitmap.
	ErrInvalidArgument = errors.New("ggscript: invalid argument")

	// ErrInvalidState is recorded when a draw call relies on the current
	// paint before any paint has been configured.
	ErrInvalidState = errors.New("ggscript: invalid state")

	// ErrRestoreUnderflow is returned by surfaces when a restore has no
	// matching save.
	ErrRestoreUnderflow = errors.New("ggscript: restore without matching save")

	// ErrInvalidSaveCount is returned by surfaces for RestoreToCount(n) with n < 1.
	ErrInvalidSaveCount = errors.New("ggscript: invalid save count")
)
