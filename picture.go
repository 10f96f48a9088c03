package ggscript

import "slices"

// Picture is an immutable, replayable snapshot of a script's commands.
// A Picture may be drawn any number of times, onto any surface, and from
// several goroutines at once.
type Picture struct {
	width, height int
	commands      []Command
}

// NewPicture returns a picture of the given nominal size replaying cmds.
// The slice is copied.
func NewPicture(width, height int, cmds ...Command) *Picture {
	return &Picture{width: width, height: height, commands: slices.Clone(cmds)}
}

// Width returns the nominal picture width.
func (p *Picture) Width() int { return p.width }

// Height returns the nominal picture height.
func (p *Picture) Height() int { return p.height }

// Len returns the number of recorded commands.
func (p *Picture) Len() int { return len(p.commands) }

// Commands returns a copy of the recorded command list.
func (p *Picture) Commands() []Command { return slices.Clone(p.commands) }

// Draw replays the picture onto s, leaving the state of s unchanged.
func (p *Picture) Draw(s Surface) error {
	_, err := PictureCommand{Picture: p}.Apply(s)
	return err
}

// PictureCommand replays a picture isolated between a save and a restore.
// When Dst is set the picture is clipped to Dst and its nominal size is
// scaled to fill it.
type PictureCommand struct {
	Picture *Picture
	Dst     *Rect
}

func (PictureCommand) Type() CommandType { return CmdPicture }

func (c PictureCommand) Apply(s Surface) (int, error) {
	saved := s.Save(SaveAll)
	if c.Dst != nil {
		dst := *c.Dst
		s.ClipRect(dst)
		s.Translate(dst.Left, dst.Top)
		if c.Picture.width > 0 && c.Picture.height > 0 {
			s.Scale(dst.Width()/float64(c.Picture.width), dst.Height()/float64(c.Picture.height))
		}
	}

	var r replayer
	err := r.run(s, c.Picture.commands)
	if rerr := s.RestoreToCount(saved); err == nil {
		err = rerr
	}
	return NoSave, err
}
