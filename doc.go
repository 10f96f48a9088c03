// Package ggscript builds 2D drawings as scripts of deferred commands.
//
// # Overview
//
// A Script queues drawing commands through a fluent API and replays them
// onto a Surface when Draw is called. Configuration calls edit an optional
// current paint; draw calls capture a copy of it, so a queued command is
// never affected by configuration that follows it.
//
// # Quick Start
//
//	bmp, err := ggscript.New(256, 256).
//	    Color(color.White).
//	    Rect(0, 0, 256, 256).
//	    Color(color.NRGBA{R: 200, A: 255}).
//	    Style(ggscript.StyleStroke).
//	    StrokeWidth(4).
//	    Circle(128, 128, 80).
//	    Draw()
//
// # Composition
//
// Scripts compose by splicing. Script appends another script's commands
// as-is; ScriptAt brackets them with a save, a translation and a restore:
//
//	badge := ggscript.New(64, 64).Color(color.Black).Circle(32, 32, 30)
//	page := ggscript.New(640, 480).
//	    ScriptAt(10, 10, badge).
//	    ScriptAt(100, 10, badge)
//
// # Surfaces
//
// New and NewFromBitmap draw through RasterSurface, a software rasterizer
// on github.com/gogpu/gg, into a Bitmap. Wrap draws onto any Surface, such
// as the SVG writer in backends/svg. Surfaces register by name:
//
//	import _ "github.com/gogpu/ggscript/backends/svg"
//
//	s, _ := ggscript.NewSurface("svg", 640, 480)
//	_, err := ggscript.Wrap(s).Script(page).Draw()
//
// # Coordinate System
//
// Origin at the top-left, x to the right, y down. Angles are in degrees and
// positive angles turn clockwise.
package ggscript
