package ggscript

import (
	"context"
	"fmt"
	"log/slog"
)

// replayer runs a command sequence against a surface in a single forward
// pass. It tracks the save counts produced during the pass so that an
// unqualified restore can be resolved to the save it matches.
type replayer struct {
	counts []int
	frames []frame
}

// frame is an open bracketed save.
type frame struct {
	bracket uint64
	count   int // save count the bracketing save produced
	depth   int // len(counts) right after that save
}

// current returns the most recent outstanding save count, or NoSave.
func (r *replayer) current() int {
	if len(r.counts) == 0 {
		return NoSave
	}
	return r.counts[len(r.counts)-1]
}

// reset forgets all tracked save counts.
func (r *replayer) reset() {
	r.counts = r.counts[:0]
	r.frames = r.frames[:0]
}

// run applies cmds to s in order. The first surface error stops the pass.
func (r *replayer) run(s Surface, cmds []Command) error {
	log := Logger()
	debug := log.Enabled(context.Background(), slog.LevelDebug)

	for i, cmd := range cmds {
		cmd, skip := r.resolve(cmd)
		if skip {
			if debug {
				log.Debug("ggscript: unmatched restore skipped", "index", i)
			}
			continue
		}

		n, err := cmd.Apply(s)
		if err != nil {
			return fmt.Errorf("ggscript: command %d (%s): %w", i, cmd.Type(), err)
		}

		if restore, ok := cmd.(RestoreCommand); ok && !restore.Unqualified() {
			r.unwind(restore.Count)
		}
		if n != NoSave {
			r.counts = append(r.counts, n)
			if save, ok := cmd.(SaveCommand); ok && save.Bracket != 0 {
				r.frames = append(r.frames, frame{bracket: save.Bracket, count: n, depth: len(r.counts)})
			}
		}

		if debug {
			log.Debug("ggscript: replay",
				"index", i,
				"command", cmd.Type().String(),
				"saveCount", r.current())
		}
	}
	return nil
}

// resolve gives an unqualified restore the count it must restore to.
// skip reports a restore inside a bracket that has no save of its own left
// to undo.
func (r *replayer) resolve(cmd Command) (_ Command, skip bool) {
	restore, ok := cmd.(RestoreCommand)
	if !ok || !restore.Unqualified() {
		return cmd, false
	}
	if restore.Bracket != 0 {
		if count, ok := r.close(restore.Bracket); ok {
			return RestoreCommand{Count: count}, false
		}
	} else if n := len(r.frames); n > 0 && len(r.counts) <= r.frames[n-1].depth {
		return cmd, true
	}
	if len(r.counts) > 0 {
		return RestoreCommand{Count: r.current()}, false
	}
	return cmd, false
}

// close ends the bracket b and any bracket opened inside it, returning the
// save count b started at.
func (r *replayer) close(b uint64) (int, bool) {
	for i := len(r.frames) - 1; i >= 0; i-- {
		if r.frames[i].bracket == b {
			count := r.frames[i].count
			r.frames = r.frames[:i]
			return count, true
		}
	}
	return NoSave, false
}

// unwind drops tracked counts undone by restoring to count.
func (r *replayer) unwind(count int) {
	for len(r.counts) > 0 && r.counts[len(r.counts)-1] >= count {
		r.counts = r.counts[:len(r.counts)-1]
	}
}
