// ndsinterp - pixel-perfect Nintendo DS 3D slope interpolation
// Copyright (C) 2026  The ndsinterp authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ndsinterp

import (
	"fmt"

	"github.com/ndskit/ndsinterp/golden"
)

// Screen dimensions of the DS 3D engine output.
const (
	ScreenWidth  = golden.ScreenWidth
	ScreenHeight = golden.ScreenHeight
)

// Mismatch describes one scanline where the interpolator diverges from a
// hardware capture. It carries the raw fixed-point values and the increment
// so the specific rounding step that diverged can be diagnosed.
type Mismatch struct {
	X, Y     int32 // tested endpoint
	Scanline int32

	// Missing is true when the capture has no span on a scanline the
	// interpolator drew. GotStart/GotEnd are still valid in that case;
	// WantStart/WantEnd are not.
	Missing bool

	GotStart, GotEnd   int32 // computed screen span, leftmost pixel first
	WantStart, WantEnd uint8 // captured screen span

	FracStart, FracEnd int32 // computed fixed-point span, leftmost first
	DX                 int32 // fixed-point increment of the tested slope
}

func (m Mismatch) String() string {
	if m.Missing {
		return fmt.Sprintf("%3dx%-3d Y=%3d: span doesn't exist", m.X, m.Y, m.Scanline)
	}
	return fmt.Sprintf("%3dx%-3d Y=%3d: %3d..%3d  !=  %3d..%3d  (%+d..%+d)  raw X = %10d..%10d  masked X = %10d..%10d  inc = %10d",
		m.X, m.Y, m.Scanline,
		m.GotStart, m.GotEnd, m.WantStart, m.WantEnd,
		m.GotStart-int32(m.WantStart), m.GotEnd-int32(m.WantEnd),
		m.FracStart, m.FracEnd,
		m.FracStart%One, m.FracEnd%One,
		m.DX)
}

// walkLine drives a Slope over the line (x0,y0)-(x1,y1) exactly as the
// conformance driver on hardware does: endpoints normalized top to bottom,
// a zero-height line extended to cover one scanline, spans reported with
// the leftmost pixel first, scanlines starting beyond the visible width
// skipped, and the walk stopped at the bottom of the screen.
func walkLine(x0, y0, x1, y1 int32, visit func(y, startX, endX, fracStart, fracEnd int32, s *Slope)) {
	if y0 > y1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	// Y0 coinciding with Y1 is equivalent to Y0 and Y1 one pixel apart.
	if y0 == y1 {
		y1++
	}

	var s Slope
	s.Setup(x0, y0, x1, y1)

	for y := y0; y < y1; y++ {
		fracStart := s.FracXStart(y)
		fracEnd := s.FracXEnd(y)
		startX := fracStart >> FracBits
		endX := fracEnd >> FracBits

		// Spans are reversed when the slope is negative.
		if s.IsNegative() {
			startX, endX = endX, startX
			fracStart, fracEnd = fracEnd, fracStart
		}

		if startX >= ScreenWidth {
			continue
		}
		if y == ScreenHeight {
			break
		}

		visit(y, startX, endX, fracStart, fracEnd, &s)
	}
}

// CheckEndpoint replays the line from c's origin corner to the endpoint
// (x, y) and compares every computed scanline span against the capture.
// It returns one Mismatch per diverging scanline, in scanline order, and
// never stops early; an empty result means the interpolator matches the
// hardware on this line.
func CheckEndpoint(c *golden.Capture, x, y int32) []Mismatch {
	x0, y0 := c.Corner.Origin()
	line := c.Line(int(x), int(y))

	var mismatches []Mismatch
	walkLine(x0, y0, x, y, func(sy, startX, endX, fracStart, fracEnd int32, s *Slope) {
		span := line.Spans[sy]
		switch {
		case !span.Exists:
			mismatches = append(mismatches, Mismatch{
				X: x, Y: y, Scanline: sy,
				Missing:   true,
				GotStart:  startX,
				GotEnd:    endX,
				FracStart: fracStart,
				FracEnd:   fracEnd,
				DX:        s.DX(),
			})
		case int32(span.Start) != startX || int32(span.End) != endX:
			mismatches = append(mismatches, Mismatch{
				X: x, Y: y, Scanline: sy,
				GotStart:  startX,
				GotEnd:    endX,
				WantStart: span.Start,
				WantEnd:   span.End,
				FracStart: fracStart,
				FracEnd:   fracEnd,
				DX:        s.DX(),
			})
		}
	})
	return mismatches
}

// Sweep checks every endpoint recorded in c, in raster order, and returns
// all mismatches found. The sweep always completes; an empty result means
// the interpolator reproduces the whole capture.
func Sweep(c *golden.Capture) []Mismatch {
	var mismatches []Mismatch
	for y := c.MinY; y <= c.MaxY; y++ {
		for x := c.MinX; x <= c.MaxX; x++ {
			mismatches = append(mismatches, CheckEndpoint(c, int32(x), int32(y))...)
		}
	}
	return mismatches
}

// Record writes the spans the interpolator produces for the line from c's
// origin corner to (x, y) into the capture. It is the software twin of one
// hardware acquisition step, useful for synthesizing captures in tests and
// for exercising the pipeline without hardware.
func Record(c *golden.Capture, x, y int32) {
	x0, y0 := c.Corner.Origin()
	line := c.Line(int(x), int(y))

	walkLine(x0, y0, x, y, func(sy, startX, endX, _, _ int32, _ *Slope) {
		line.Spans[sy] = golden.Span{
			Exists: true,
			Start:  uint8(startX),
			End:    uint8(endX),
		}
	})
}

// RecordAll records every endpoint in c's bounding box.
func RecordAll(c *golden.Capture) {
	for y := c.MinY; y <= c.MaxY; y++ {
		for x := c.MinX; x <= c.MaxX; x++ {
			Record(c, int32(x), int32(y))
		}
	}
}
