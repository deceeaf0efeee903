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

// Package ndsinterp reproduces the Nintendo DS 3D rasterizer's line
// interpolation bit-for-bit, including its rounding errors, and checks the
// reproduction against span data captured from real hardware.
package ndsinterp

// Fixed-point parameters of the DS interpolator. The hardware works on
// 32-bit integers with 18 fractional bits throughout, with one notable
// exception for X-major spans (see SpanMask).
const (
	// FracBits is the number of fractional bits (aka resolution) of the
	// interpolator.
	FracBits = 18

	// One is the value 1.0 in fixed-point form.
	One = 1 << FracBits

	// Bias is the half-unit offset applied to X-major and diagonal spans.
	Bias = One >> 1

	// SpanMask discards the low half of the fractional bits when deriving
	// the end of an X-major span from its start, rounding the start down
	// to a coarser grid. The exact hardware mechanism is unknown; the mask
	// was reverse-engineered from captured output, and one plausible
	// explanation is an intermediate calculation done on the value shifted
	// right by 9 and shifted back afterwards. The masking is what makes
	// certain X-major slopes (69x49, 70x66, 71x49, ...) display a one-pixel
	// gap, so it must not be "corrected".
	SpanMask = ^int32(0) << (FracBits / 2)
)

// Slope interpolates one line of a rasterized polygon edge exactly as the
// DS hardware does, down to the one-pixel gaps some X-major slopes show.
//
// The per-scanline X increment is derived by computing the reciprocal of
// Y1-Y0 first and multiplying by X1-X0 second. That order avoids a
// multiplication overflow at the cost of precision in the division, and
// reversing it changes results; it is the exact sequence the hardware uses.
//
// For X-major slopes every scanline carries a span of pixels:
//
//	DX     = 1/(Y1-Y0) * (X1-X0)
//	Xstart = (Y-Y0)*DX + X0 + 0.5
//	Xend   = Xstart[discarding 9 LSBs] + DX - 1.0
//
// Y-major slopes carry exactly one pixel per scanline and skip the 0.5 bias:
//
//	X = (Y-Y0)*DX + X0
//
// Negative slopes mirror their positive counterparts down to the gaps,
// which appear at the same scanlines on the opposite side of the span. They
// are handled by pre-decrementing the raw X0, swapping X0 and X1 so DX stays
// non-negative, stepping the start leftwards, and rounding the masked
// fraction up instead of down.
//
// A Slope is a plain value; configure it with Setup and reuse it freely.
// Configured slopes are read-only and safe for concurrent queries.
type Slope struct {
	x0       int32 // fixed-point X0 (minus 1 raw unit if the slope is negative)
	y0       int32 // Y0 screen coordinate
	dx       int32 // fixed-point X displacement per scanline, always >= 0
	negative bool  // X decreases as Y increases
	xMajor   bool  // X1-X0 > Y1-Y0
}

// Setup configures the slope to interpolate the line (x0,y0)-(x1,y1) in
// screen coordinates. Arithmetic is int32 throughout so that overflow wraps
// exactly as the hardware's 32-bit registers do.
func (s *Slope) Setup(x0, y0, x1, y1 int32) {
	// Always interpolate top to bottom.
	if y1 < y0 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	s.x0 = x0 << FracBits
	s.y0 = y0

	// Negative slopes pre-decrement the raw X0 and swap the endpoints so
	// that the stored delta is non-negative; the direction lives in
	// s.negative, not in the sign of dx.
	s.negative = x1 < x0
	if s.negative {
		s.x0--
		x0, x1 = x1, x0
	}

	dx := x1 - x0
	dy := y1 - y0
	s.xMajor = dx > dy

	// X-major and exactly diagonal slopes get a half-unit bias towards the
	// direction of travel.
	if s.xMajor || dx == dy {
		if s.negative {
			s.x0 -= Bias
		} else {
			s.x0 += Bias
		}
	}

	// Reciprocal first, multiplication second; see the type comment.
	s.dx = dx
	if dy != 0 {
		s.dx *= One / dy
	} else {
		s.dx *= One
	}
}

// FracXStart returns the fixed-point starting X coordinate of the span at
// scanline y. For negative slopes this is the span's rightmost pixel.
//
// y must be in the [y0,y1] range given to Setup; values outside it are a
// precondition violation, not a reported error.
func (s *Slope) FracXStart(y int32) int32 {
	displacement := (y - s.y0) * s.dx
	if s.negative {
		return s.x0 - displacement
	}
	return s.x0 + displacement
}

// FracXEnd returns the fixed-point ending X coordinate of the span at
// scanline y. For negative slopes this is the span's leftmost pixel.
//
// y must be in the [y0,y1] range given to Setup.
func (s *Slope) FracXEnd(y int32) int32 {
	result := s.FracXStart(y)
	if s.xMajor {
		if s.negative {
			// (^SpanMask - (x & ^SpanMask)) rounds the masked-out fraction
			// up to the largest value below 1.0 on the 9-bit grid. Working
			// in the opposite direction, the "floor" is really a ceiling.
			result = result + (^SpanMask - (result & ^SpanMask)) - s.dx + One
		} else {
			result = (result & SpanMask) + s.dx - One
		}
	}
	return result
}

// XStart returns the starting X screen coordinate of the span at scanline y,
// truncating the fractional part.
func (s *Slope) XStart(y int32) int32 { return s.FracXStart(y) >> FracBits }

// XEnd returns the ending X screen coordinate of the span at scanline y,
// truncating the fractional part.
func (s *Slope) XEnd(y int32) int32 { return s.FracXEnd(y) >> FracBits }

// DX returns the fixed-point X displacement per scanline.
func (s *Slope) DX() int32 { return s.dx }

// IsXMajor reports whether the slope's horizontal extent exceeds its
// vertical extent.
func (s *Slope) IsXMajor() bool { return s.xMajor }

// IsNegative reports whether X decreases as Y increases.
func (s *Slope) IsNegative() bool { return s.negative }
