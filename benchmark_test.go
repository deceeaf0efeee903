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
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/vector"

	"github.com/ndskit/ndsinterp/golden"
)

var benchLines = []struct{ x1, y1 int32 }{
	{69, 49},   // X-major with a hardware gap
	{10, 180},  // steep Y-major
	{256, 192}, // full-screen diagonal
}

// BenchmarkSlopeSpans benchmarks the fixed-point interpolator walking
// whole lines from the top-left corner.
func BenchmarkSlopeSpans(b *testing.B) {
	for _, line := range benchLines {
		b.Run(fmt.Sprintf("%dx%d", line.x1, line.y1), func(b *testing.B) {
			var sink int32
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				walkLine(0, 0, line.x1, line.y1, func(_, startX, endX, _, _ int32, _ *Slope) {
					sink += startX + endX
				})
			}
			_ = sink
		})
	}
}

// BenchmarkVectorSpans rasterizes the same lines as one-pixel-wide quads
// with x/image/vector, for comparison with the fixed-point interpolator.
// The outputs differ: vector antialiases, the hardware does not.
func BenchmarkVectorSpans(b *testing.B) {
	for _, line := range benchLines {
		b.Run(fmt.Sprintf("%dx%d", line.x1, line.y1), func(b *testing.B) {
			r := vector.NewRasterizer(ScreenWidth, ScreenHeight)
			dst := image.NewAlpha(image.Rect(0, 0, ScreenWidth, ScreenHeight))
			src := image.NewUniform(color.Alpha{255})

			x1 := float32(line.x1)
			y1 := float32(line.y1)

			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				r.Reset(ScreenWidth, ScreenHeight)
				r.MoveTo(0, 0)
				r.LineTo(x1, y1)
				r.LineTo(x1+1, y1)
				r.LineTo(1, 0)
				r.ClosePath()
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkSweep benchmarks a conformance sweep over a synthesized capture.
func BenchmarkSweep(b *testing.B) {
	c := golden.NewCapture(golden.TopLeft, 0, 64, 0, 48)
	RecordAll(c)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if m := Sweep(c); len(m) != 0 {
			b.Fatalf("unexpected mismatches: %d", len(m))
		}
	}
}
