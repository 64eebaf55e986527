// This file is part of Phosphor.
//
// Phosphor is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Phosphor is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Phosphor.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fpg1/phosphor/test"
)

const testTrace = `F:1 PC:100
P:1 X:10 Y:20 B:7
P:2 X:40 Y:20 B:3 R:2
`

// prepare a working directory with a local resource directory and a trace
// file. returns the path of the trace file.
func prepare(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	err := os.Mkdir(".phosphor", 0o700)
	test.DemandSuccess(t, err)

	pth := filepath.Join(dir, "trace.log")
	err = os.WriteFile(pth, []byte(testTrace), 0o600)
	test.DemandSuccess(t, err)

	return pth
}

func TestHelp(t *testing.T) {
	tw := &test.CompareWriter{}
	v := launch(context.Background(), []string{"-help"}, tw)
	test.ExpectEquality(t, v, 0)
	test.ExpectSuccess(t, strings.Contains(tw.String(), "available sub-modes: RENDER, VIEW, ASCII"))
}

func TestASCII(t *testing.T) {
	pth := prepare(t)

	tw := &test.CompareWriter{}
	v := launch(context.Background(), []string{"ascii",
		"-width", "64", "-height", "32", "-scale", "8", "-maxwidth", "40", pth}, tw)
	test.ExpectEquality(t, v, 0)

	out := tw.String()
	test.ExpectSuccess(t, strings.Contains(out, "parsed 2 pixels at 2 unique positions"))
	test.ExpectSuccess(t, strings.Contains(out, "| #   -  |"))
}

func TestASCIIImage(t *testing.T) {
	pth := prepare(t)

	tw := &test.CompareWriter{}
	v := launch(context.Background(), []string{"ascii",
		"-width", "64", "-height", "32", "-scale", "8", "-maxwidth", "40",
		"-png", "preview.png", "-pngscale", "2", pth}, tw)
	test.ExpectEquality(t, v, 0, tw.String())
	test.ExpectSuccess(t, strings.Contains(tw.String(), "preview saved to preview.png"))

	f, err := os.Open("preview.png")
	test.DemandSuccess(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.Width, 16)
	test.ExpectEquality(t, cfg.Height, 8)

	// an existing image is not overwritten
	tw.Clear()
	v = launch(context.Background(), []string{"ascii",
		"-width", "64", "-height", "32", "-png", "preview.png", pth}, tw)
	test.ExpectInequality(t, v, 0)
}

func TestRender(t *testing.T) {
	pth := prepare(t)

	tw := &test.CompareWriter{}
	v := launch(context.Background(), []string{"render",
		"-fpscap=false", "-rate", "0", "-frames", "2",
		"-digest", "-screenshot", "shot", pth}, tw)
	test.ExpectEquality(t, v, 0, tw.String())

	out := tw.String()
	test.ExpectSuccess(t, strings.Contains(out, "(2 frames)"))
	test.ExpectSuccess(t, strings.Contains(out, "screenshot saved to shot_2.png"))

	_, err := os.Stat("shot_2.png")
	test.ExpectSuccess(t, err)
}

func TestRenderErrors(t *testing.T) {
	pth := prepare(t)

	tw := &test.CompareWriter{}
	v := launch(context.Background(), []string{"render", "-spec", "PAL", pth}, tw)
	test.ExpectEquality(t, v, exitMode)

	tw.Clear()
	v = launch(context.Background(), []string{"render", "a.log", "b.log"}, tw)
	test.ExpectEquality(t, v, exitMode)
	test.ExpectSuccess(t, strings.Contains(tw.String(), "too many arguments"))

	tw.Clear()
	v = launch(context.Background(), []string{"render", "-serial", "/dev/null", pth}, tw)
	test.ExpectEquality(t, v, exitMode)
}

func TestVersion(t *testing.T) {
	tw := &test.CompareWriter{}
	v := launch(context.Background(), []string{"-version"}, tw)
	test.ExpectEquality(t, v, 0)
	test.ExpectSuccess(t, strings.HasPrefix(tw.String(), "Phosphor "))
}
