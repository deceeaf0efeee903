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

// Command ndsinterp replays hardware span captures through the software
// interpolator and reports any scanline where the two disagree.
//
// It looks for TL.bin, TR.bin, BL.bin and BR.bin (one capture per origin
// corner) in the data directory; missing files simply skip that corner's
// sweep. Conversion of raw RGB555 screen dumps and per-slope BMP export
// are available through flags.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ndskit/ndsinterp"
	"github.com/ndskit/ndsinterp/golden"
)

func main() {
	os.Exit(run())
}

func run() int {
	dataDir := flag.String("data", "data", "directory holding the capture files (TL.bin, TR.bin, BL.bin, BR.bin)")
	imageDir := flag.String("images", "", "write per-slope BMP renderings of each loaded capture into this directory")
	screencap := flag.String("screencap", "", "raw RGB555 screen dump to convert")
	screencapOut := flag.String("screencap-out", "screencap.bmp", "output file for -screencap")
	colors := flag.String("colors", "", "list the unique colors in a raw RGB555 screen dump")
	synth := flag.String("synth", "", "write a synthetic top-left capture covering endpoints up to WxH (e.g. 256x192)")
	synthOut := flag.String("synth-out", "TL.bin", "output file for -synth")
	flag.Parse()

	ok := true

	if *screencap != "" {
		if err := convertScreenCap(*screencap, *screencapOut); err != nil {
			fmt.Fprintln(os.Stderr, err)
			ok = false
		}
	}
	if *colors != "" {
		if err := listColors(*colors); err != nil {
			fmt.Fprintln(os.Stderr, err)
			ok = false
		}
	}
	if *synth != "" {
		if err := writeSynthetic(*synth, *synthOut); err != nil {
			fmt.Fprintln(os.Stderr, err)
			ok = false
		}
	}

	corners := []golden.Corner{
		golden.TopLeft, golden.TopRight, golden.BottomLeft, golden.BottomRight,
	}
	for _, corner := range corners {
		path := filepath.Join(*dataDir, corner.String()+".bin")
		c, err := load(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			ok = false
			continue
		}
		if c == nil {
			continue // no capture for this corner
		}

		if !test(c) {
			ok = false
		}

		if *imageDir != "" {
			if err := ndsinterp.WriteImages(c, filepath.Join(*imageDir, corner.String())); err != nil {
				fmt.Fprintln(os.Stderr, err)
				ok = false
			}
		}
	}

	if !ok {
		return 1
	}
	return 0
}

// load reads one capture, returning (nil, nil) when the file is absent.
func load(path string) (*golden.Capture, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	fmt.Printf("Loading %s... ", path)
	c, err := golden.ReadFile(path)
	if err != nil {
		fmt.Println("failed")
		return nil, err
	}
	fmt.Printf("%s, %dx%d to %dx%d -- OK\n",
		c.Corner.Name(), c.MinX, c.MinY, c.MaxX, c.MaxY)
	return c, nil
}

// test sweeps one capture and prints every mismatch found.
func test(c *golden.Capture) bool {
	fmt.Printf("Testing %s slopes... ", c.Corner.Name())

	mismatches := ndsinterp.Sweep(c)
	if len(mismatches) == 0 {
		fmt.Println("OK!")
		return true
	}

	fmt.Println("found mismatch")
	for _, m := range mismatches {
		fmt.Println(m)
	}
	return false
}

func convertScreenCap(in, out string) (err error) {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := ndsinterp.DecodeScreenCapture(f)
	if err != nil {
		return err
	}
	return ndsinterp.WriteBMP(out, img)
}

func listColors(in string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	colors, err := ndsinterp.UniqueColors(f)
	if err != nil {
		return err
	}
	for _, clr := range colors {
		r5 := clr >> 0 & 0x1F
		g5 := clr >> 5 & 0x1F
		b5 := clr >> 10 & 0x1F
		fmt.Printf(" %04x  (%d, %d, %d)\n", clr, r5, g5, b5)
	}
	return nil
}

func writeSynthetic(size, out string) (err error) {
	var maxX, maxY int
	if _, err := fmt.Sscanf(strings.ToLower(size), "%dx%d", &maxX, &maxY); err != nil {
		return fmt.Errorf("-synth wants WxH, got %q", size)
	}
	if maxX < 0 || maxX > golden.ScreenWidth || maxY < 0 || maxY > golden.ScreenHeight {
		return fmt.Errorf("-synth size %q out of range", size)
	}

	c := golden.NewCapture(golden.TopLeft, 0, maxX, 0, maxY)
	ndsinterp.RecordAll(c)

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return golden.Write(f, c)
}
