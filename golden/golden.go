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

// Package golden reads and writes the binary span captures recorded from
// Nintendo DS hardware. A capture holds, for every tested line endpoint
// reachable from one fixed screen corner, the exact pixel span the
// rasterizer drew on each scanline. The core only ever reads captures;
// the writer exists as the software mirror of the acquisition program,
// for tests and synthetic data.
package golden

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Screen dimensions of the DS 3D engine output.
const (
	ScreenWidth  = 256
	ScreenHeight = 192
)

// ErrFormat is wrapped by all errors reporting a malformed capture file.
var ErrFormat = errors.New("malformed capture")

// Corner identifies the fixed screen corner a capture's lines originate
// from. The tag doubles as the first byte of the file format.
type Corner uint8

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// String returns the short name used in capture filenames ("TL", ...).
func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "TL"
	case TopRight:
		return "TR"
	case BottomLeft:
		return "BL"
	case BottomRight:
		return "BR"
	}
	return fmt.Sprintf("Corner(%d)", uint8(c))
}

// Name returns the human-readable corner name.
func (c Corner) Name() string {
	switch c {
	case TopLeft:
		return "top left"
	case TopRight:
		return "top right"
	case BottomLeft:
		return "bottom left"
	case BottomRight:
		return "bottom right"
	}
	return c.String()
}

// Origin returns the corner's fixed screen coordinate, the first endpoint
// of every line in a capture with this tag.
func (c Corner) Origin() (x, y int32) {
	if c&1 != 0 {
		x = ScreenWidth
	}
	if c&2 != 0 {
		y = ScreenHeight
	}
	return x, y
}

// ScanlineRange returns the inclusive range of scanlines recorded for an
// endpoint at the given Y. Lines from a bottom-half corner only cross
// scanlines at or below the endpoint, so those captures record y..191;
// top-half captures record 0..y. Both ends clamp to the last scanline.
func (c Corner) ScanlineRange(y int) (startY, endY int) {
	y = min(y, ScreenHeight-1)
	if c&2 != 0 {
		return y, ScreenHeight - 1
	}
	return 0, y
}

// Span is the inclusive pixel range a rasterized line occupies on one
// scanline. Exists is false on scanlines the line does not intersect.
type Span struct {
	Exists     bool
	Start, End uint8
}

// Line holds one recorded span per scanline for a single tested endpoint.
type Line struct {
	Spans [ScreenHeight]Span
}

// Capture is one golden data file: every span the hardware drew for every
// tested endpoint reachable from one origin corner.
type Capture struct {
	Corner Corner

	// Bounding box of tested endpoints, inclusive.
	MinX, MaxX int
	MinY, MaxY int

	lines [][]Line // indexed [y][x], 0..MaxY by 0..MaxX
}

// NewCapture returns an empty capture covering the given endpoint bounding
// box. All spans start out non-existent.
func NewCapture(corner Corner, minX, maxX, minY, maxY int) *Capture {
	c := &Capture{
		Corner: corner,
		MinX:   minX, MaxX: maxX,
		MinY: minY, MaxY: maxY,
	}
	c.lines = make([][]Line, maxY+1)
	for y := range c.lines {
		c.lines[y] = make([]Line, maxX+1)
	}
	return c
}

// Line returns the recorded spans for the endpoint (x, y). The returned
// pointer aliases the capture's storage.
func (c *Capture) Line(x, y int) *Line {
	return &c.lines[y][x]
}

// Read parses a capture from r.
//
// The stream is little-endian: a corner tag byte, u16 minX, u16 maxX, byte
// minY, byte maxY, then one record per endpoint in raster order (increasing
// Y, then increasing X). Each record opens with the coordinates of the
// endpoint from the previous iteration, initially (0,0); the span data that
// follows also belongs to that previous endpoint, covering the scanline
// range ScanlineRange gives for its Y. One trailing span block after the
// loop carries the final endpoint. Any echoed coordinate that does not
// match the expected sequence makes the whole file unusable and aborts
// with an error wrapping ErrFormat.
func Read(r io.Reader) (*Capture, error) {
	br := bufio.NewReader(r)

	var hdr [7]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrFormat, err)
	}

	corner := Corner(hdr[0])
	if corner > BottomRight {
		return nil, fmt.Errorf("%w: invalid corner tag %d", ErrFormat, hdr[0])
	}

	minX := int(hdr[1]) | int(hdr[2])<<8
	maxX := int(hdr[3]) | int(hdr[4])<<8
	minY, maxY := int(hdr[5]), int(hdr[6])
	if minX > maxX || minY > maxY || maxX > ScreenWidth || maxY > ScreenHeight {
		return nil, fmt.Errorf("%w: bad bounding box %dx%d to %dx%d",
			ErrFormat, minX, minY, maxX, maxY)
	}
	c := NewCapture(corner, minX, maxX, minY, maxY)

	readSpans := func(line *Line, startY, endY int) error {
		for y := startY; y <= endY; y++ {
			var raw [3]byte
			if _, err := io.ReadFull(br, raw[:]); err != nil {
				return fmt.Errorf("%w: span data: %v", ErrFormat, err)
			}
			line.Spans[y] = Span{
				Exists: raw[0] != 0,
				Start:  raw[1],
				End:    raw[2],
			}
		}
		return nil
	}

	// Each record echoes the previous endpoint's coordinates and carries
	// the previous endpoint's spans; the first record echoes (0,0).
	prevX, prevY := 0, 0
	for y := c.MinY; y <= c.MaxY; y++ {
		for x := c.MinX; x <= c.MaxX; x++ {
			var coords [2]byte
			if _, err := io.ReadFull(br, coords[:]); err != nil {
				return nil, fmt.Errorf("%w: endpoint coordinates: %v", ErrFormat, err)
			}
			if coords[0] != uint8(prevX) || coords[1] != uint8(prevY) {
				return nil, fmt.Errorf("%w: endpoint (%d,%d) out of sequence, expected (%d,%d)",
					ErrFormat, coords[0], coords[1], prevX, prevY)
			}
			startY, endY := corner.ScanlineRange(prevY)
			if err := readSpans(c.Line(prevX, prevY), startY, endY); err != nil {
				return nil, err
			}
			prevX, prevY = x, y
		}
	}

	// Trailing block for the final endpoint. Bottom-half captures range it
	// from MinY, top-half captures up to MaxY.
	startY, endY := corner.ScanlineRange(c.MaxY)
	if corner&2 != 0 {
		startY, endY = corner.ScanlineRange(c.MinY)
	}
	if err := readSpans(c.Line(prevX, prevY), startY, endY); err != nil {
		return nil, err
	}

	return c, nil
}

// ReadFile parses the capture stored at path.
func ReadFile(path string) (c *Capture, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	c, err = Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
