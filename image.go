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
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/image/bmp"

	"github.com/ndskit/ndsinterp/golden"
)

// RenderLine paints the recorded spans of one endpoint into a fresh
// 256x192 grayscale frame, drawn pixels white on a black background.
func RenderLine(line *golden.Line) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	for y := 0; y < golden.ScreenHeight; y++ {
		span := line.Spans[y]
		if !span.Exists {
			continue
		}
		row := img.Pix[y*img.Stride:]
		for x := int(span.Start); x <= int(span.End); x++ {
			row[x] = 255
		}
	}
	return img
}

// WriteImages renders every endpoint in the capture to a BMP file in dir,
// named <corner>-<x>x<y>.bmp. The directory is created if needed.
func WriteImages(c *golden.Capture, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for y := c.MinY; y <= c.MaxY; y++ {
		for x := c.MinX; x <= c.MaxX; x++ {
			name := fmt.Sprintf("%s-%dx%d.bmp", c.Corner, x, y)
			if err := WriteBMP(filepath.Join(dir, name), RenderLine(c.Line(x, y))); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteBMP encodes img to a BMP file at path.
func WriteBMP(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return bmp.Encode(f, img)
}

// expand5to8 widens a 5-bit color channel to 8 bits the way the hardware
// does, replicating the top bits into the low bits.
func expand5to8(c5 uint8) uint8 {
	return c5<<3 | c5>>2
}

// DecodeScreenCapture converts a raw screen dump taken from the DS (256x192
// little-endian RGB555 pixels, top to bottom) into an image.
func DecodeScreenCapture(r io.Reader) (*image.NRGBA, error) {
	br := bufio.NewReader(r)
	img := image.NewNRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	var raw [2]byte
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			if _, err := io.ReadFull(br, raw[:]); err != nil {
				return nil, fmt.Errorf("screen capture truncated at %dx%d: %w", x, y, err)
			}
			clr := uint16(raw[0]) | uint16(raw[1])<<8
			i := y*img.Stride + x*4
			img.Pix[i+0] = expand5to8(uint8(clr >> 0 & 0x1F))
			img.Pix[i+1] = expand5to8(uint8(clr >> 5 & 0x1F))
			img.Pix[i+2] = expand5to8(uint8(clr >> 10 & 0x1F))
			img.Pix[i+3] = 255
		}
	}
	return img, nil
}

// UniqueColors returns the distinct RGB555 values present in a raw screen
// dump, in ascending order.
func UniqueColors(r io.Reader) ([]uint16, error) {
	br := bufio.NewReader(r)
	seen := make(map[uint16]struct{})
	var raw [2]byte
	for i := 0; i < ScreenHeight*ScreenWidth; i++ {
		if _, err := io.ReadFull(br, raw[:]); err != nil {
			return nil, fmt.Errorf("screen capture truncated: %w", err)
		}
		seen[uint16(raw[0])|uint16(raw[1])<<8] = struct{}{}
	}
	colors := make([]uint16, 0, len(seen))
	for clr := range seen {
		colors = append(colors, clr)
	}
	slices.Sort(colors)
	return colors, nil
}
