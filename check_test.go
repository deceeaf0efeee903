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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndskit/ndsinterp/golden"
)

// TestSweepRoundTrip synthesizes a capture from the interpolator itself,
// pushes it through the binary format, and sweeps it. Replaying every
// recorded endpoint must reproduce identical spans with zero mismatches.
func TestSweepRoundTrip(t *testing.T) {
	corners := []golden.Corner{
		golden.TopLeft, golden.TopRight, golden.BottomLeft, golden.BottomRight,
	}
	for _, corner := range corners {
		t.Run(corner.String(), func(t *testing.T) {
			c := golden.NewCapture(corner, 0, 48, 0, 36)
			RecordAll(c)

			var buf bytes.Buffer
			require.NoError(t, golden.Write(&buf, c))
			got, err := golden.Read(&buf)
			require.NoError(t, err)

			assert.Empty(t, Sweep(got))
		})
	}
}

// TestSweepFullScreenTopLeft covers the complete endpoint grid for one
// corner, including the documented gap slopes and the off-screen column at
// x=256.
func TestSweepFullScreenTopLeft(t *testing.T) {
	if testing.Short() {
		t.Skip("full 257x193 endpoint sweep")
	}
	c := golden.NewCapture(golden.TopLeft, 0, ScreenWidth, 0, ScreenHeight)
	RecordAll(c)
	assert.Empty(t, Sweep(c))
}

func TestCheckEndpointLocatesCorruption(t *testing.T) {
	c := golden.NewCapture(golden.TopLeft, 0, 80, 0, 60)
	RecordAll(c)

	// Nudge one span end on the 69x49 slope.
	line := c.Line(69, 49)
	require.True(t, line.Spans[20].Exists)
	line.Spans[20].End++

	mismatches := CheckEndpoint(c, 69, 49)
	require.Len(t, mismatches, 1)

	m := mismatches[0]
	assert.Equal(t, int32(69), m.X)
	assert.Equal(t, int32(49), m.Y)
	assert.Equal(t, int32(20), m.Scanline)
	assert.False(t, m.Missing)
	assert.Equal(t, m.GotEnd+1, int32(m.WantEnd))
	assert.Equal(t, m.GotStart, int32(m.WantStart))
	assert.Equal(t, int32(369081), m.DX)

	// The rest of the capture still sweeps clean except for this endpoint.
	all := Sweep(c)
	require.Len(t, all, 1)
	assert.Equal(t, m, all[0])
}

func TestCheckEndpointReportsMissingSpan(t *testing.T) {
	c := golden.NewCapture(golden.BottomLeft, 0, 40, 0, 30)
	RecordAll(c)

	// Drop a span the interpolator draws. Lines from a bottom corner to an
	// endpoint at y cover scanlines y..191.
	line := c.Line(25, 10)
	require.True(t, line.Spans[100].Exists)
	line.Spans[100] = golden.Span{}

	mismatches := CheckEndpoint(c, 25, 10)
	require.Len(t, mismatches, 1)
	assert.True(t, mismatches[0].Missing)
	assert.Equal(t, int32(100), mismatches[0].Scanline)
	assert.Contains(t, mismatches[0].String(), "span doesn't exist")
}

// TestCheckEndpointDegenerate exercises the zero-height normalization: an
// endpoint on the origin's own scanline still produces exactly one scanline
// of span.
func TestCheckEndpointDegenerate(t *testing.T) {
	c := golden.NewCapture(golden.TopLeft, 0, 10, 0, 0)
	RecordAll(c)

	line := c.Line(5, 0)
	assert.True(t, line.Spans[0].Exists)
	for sy := 1; sy < golden.ScreenHeight; sy++ {
		assert.False(t, line.Spans[sy].Exists, "scanline %d", sy)
	}
	assert.Empty(t, CheckEndpoint(c, 5, 0))
}

// TestRecordSkipsOffscreenSpans: from the top-right corner the line to
// (256, y) runs down the off-screen column x=256 and must record nothing.
func TestRecordSkipsOffscreenSpans(t *testing.T) {
	c := golden.NewCapture(golden.TopRight, 256, 256, 0, 10)
	RecordAll(c)

	line := c.Line(256, 10)
	for sy := 0; sy < golden.ScreenHeight; sy++ {
		assert.False(t, line.Spans[sy].Exists, "scanline %d", sy)
	}
	assert.Empty(t, CheckEndpoint(c, 256, 10))
}

func TestMismatchString(t *testing.T) {
	m := Mismatch{
		X: 69, Y: 49, Scanline: 37,
		GotStart: 52, GotEnd: 52,
		WantStart: 52, WantEnd: 53,
		FracStart: 13787069, FracEnd: 13893561,
		DX: 369081,
	}
	s := m.String()
	assert.Contains(t, s, "69x49")
	assert.Contains(t, s, "Y= 37")
	assert.Contains(t, s, "+0..-1")
}
