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

package golden

import (
	"bufio"
	"io"
)

// Write emits c in the acquisition program's binary format, byte for byte
// what Read consumes: the header, then per raster-order iteration the
// previous endpoint's coordinates and spans, then the trailing span block
// for the final endpoint.
func Write(w io.Writer, c *Capture) error {
	bw := bufio.NewWriter(w)

	bw.WriteByte(byte(c.Corner))
	bw.WriteByte(byte(c.MinX))
	bw.WriteByte(byte(c.MinX >> 8))
	bw.WriteByte(byte(c.MaxX))
	bw.WriteByte(byte(c.MaxX >> 8))
	bw.WriteByte(byte(c.MinY))
	bw.WriteByte(byte(c.MaxY))

	writeSpans := func(line *Line, startY, endY int) {
		for y := startY; y <= endY; y++ {
			s := line.Spans[y]
			exists := byte(0)
			if s.Exists {
				exists = 1
			}
			bw.WriteByte(exists)
			bw.WriteByte(s.Start)
			bw.WriteByte(s.End)
		}
	}

	prevX, prevY := 0, 0
	for y := c.MinY; y <= c.MaxY; y++ {
		for x := c.MinX; x <= c.MaxX; x++ {
			bw.WriteByte(byte(prevX))
			bw.WriteByte(byte(prevY))
			startY, endY := c.Corner.ScanlineRange(prevY)
			writeSpans(c.Line(prevX, prevY), startY, endY)
			prevX, prevY = x, y
		}
	}

	startY, endY := c.Corner.ScanlineRange(c.MaxY)
	if c.Corner&2 != 0 {
		startY, endY = c.Corner.ScanlineRange(c.MinY)
	}
	writeSpans(c.Line(prevX, prevY), startY, endY)

	return bw.Flush()
}
