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
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"time"

	"github.com/bradleyjkemp/memviz"

	"github.com/fpg1/phosphor/crt"
	"github.com/fpg1/phosphor/digest"
	"github.com/fpg1/phosphor/gui/sdlview"
	"github.com/fpg1/phosphor/logger"
	"github.com/fpg1/phosphor/modalflag"
	"github.com/fpg1/phosphor/monitor"
	"github.com/fpg1/phosphor/prefs"
	"github.com/fpg1/phosphor/screenshot"
	"github.com/fpg1/phosphor/statsview"
	"github.com/fpg1/phosphor/trace"
	"github.com/fpg1/phosphor/version"
)

// exit values
const (
	exitParse = 10
	exitMode  = 20
)

// the default replay rate is roughly the rate at which the hardware's debug
// port can log pixels
const defaultRate = 10000

// SDL requires that the window is serviced by the main thread. VIEW mode runs
// the monitor on the main goroutine.
func init() {
	runtime.LockOSThread()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	exitVal := launch(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(exitVal)
}

func launch(ctx context.Context, args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("RENDER", "VIEW", "ASCII")

	log := md.AddBool("log", false, "echo log to stdout")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	showVersion := md.AddBool("version", false, "print version and exit")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	if *showVersion {
		fmt.Fprintln(output, version.String())
		return 0
	}

	if *log {
		logger.SetEcho(output)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		statsview.Launch(output)
	}

	switch md.Mode() {
	case "RENDER":
		err = render(ctx, md, output)
	case "VIEW":
		err = view(ctx, md, output)
	case "ASCII":
		err = ascii(ctx, md, output)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return exitMode
	}

	return 0
}

// input flags are common to all modes.
type input struct {
	serial *string
	baud   *int
}

func addInput(md *modalflag.Modes) input {
	return input{
		serial: md.AddString("serial", "", "read trace from serial device"),
		baud:   md.AddInt("baud", trace.DefaultBaud, "speed of serial device"),
	}
}

// open the trace named on the command line or the serial device. with
// neither, the trace is read from stdin.
func (in input) open(md *modalflag.Modes) (io.ReadCloser, error) {
	if *in.serial != "" {
		if len(md.RemainingArgs()) > 0 {
			return nil, fmt.Errorf("trace file and serial device both specified for %s mode", md)
		}
		return trace.OpenSerial(*in.serial, *in.baud)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return trace.Open("-")
	case 1:
		return trace.Open(md.GetArg(0))
	}
	return nil, fmt.Errorf("too many arguments for %s mode", md)
}

// crt flags are common to the RENDER and VIEW modes.
type crtFlags struct {
	spec   *string
	prefs  *string
	rate   *int
	frames *int
	fpsCap *bool
}

func addCRT(md *modalflag.Modes, frames int) crtFlags {
	return crtFlags{
		spec:   md.AddString("spec", "", "CRT specification: VGA, SVGA, XGA"),
		prefs:  md.AddString("prefs", "", "preferences for this run only (eg. 'crt.blur::false')"),
		rate:   md.AddInt("rate", defaultRate, "pixels per second to replay (0 for no limit)"),
		frames: md.AddInt("frames", frames, "number of frames to scan (0 for no limit)"),
		fpsCap: md.AddBool("fpscap", true, "cap frame rate to the specification"),
	}
}

// create a CRT and the monitor to drive it.
func (cf crtFlags) create() (*monitor.Monitor, *crt.Preferences, error) {
	if *cf.prefs != "" {
		prefs.PushCommandLineStack(*cf.prefs)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "phosphor", "unused preferences: %s", unused)
			}
		}()
	}

	p, err := crt.NewPreferences()
	if err != nil {
		return nil, nil, err
	}

	if *cf.spec != "" {
		if err := p.Spec.Set(*cf.spec); err != nil {
			return nil, nil, err
		}
	}

	spec, err := p.Specification()
	if err != nil {
		return nil, nil, err
	}

	c, err := crt.NewCRT(spec)
	if err != nil {
		return nil, nil, err
	}
	c.SetPreferences(p)

	mon := monitor.NewMonitor(c)
	mon.SetFPSCap(*cf.fpsCap)

	return mon, p, nil
}

// closeOnDone closes the input when the context is done. closing the input is
// the only way to interrupt a blocked read. the returned function closes the
// input early and can be called any number of times.
func closeOnDone(ctx context.Context, rc io.Closer) func() {
	var once sync.Once
	stop := make(chan struct{})

	closeInput := func() {
		once.Do(func() {
			close(stop)
			_ = rc.Close()
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			closeInput()
		case <-stop:
		}
	}()

	return closeInput
}

// replay the trace into the CRT in the background. the returned function
// waits for the replay to finish and reports the result.
func replay(ctx context.Context, rc io.ReadCloser, c *crt.CRT, rate int, output io.Writer) func() {
	closeInput := closeOnDone(ctx, rc)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer closeInput()

		st, err := trace.Replay(ctx, trace.NewReader(rc), c, rate)
		if err != nil && ctx.Err() == nil {
			logger.Log(logger.Allow, "trace", err)
		}
		logger.Logf(logger.Allow, "trace", "replay: %s", st)
	}()

	return func() {
		<-done
		fmt.Fprintln(output, c.Telemetry())
	}
}

func render(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	in := addInput(md)
	cf := addCRT(md, 120)
	showDigest := md.AddBool("digest", false, "print digest of the rendered frames")
	shot := md.AddString("screenshot", "", "save the final frame to a PNG file with this base name")
	scale := md.AddInt("scale", 1, "screenshot scaling")
	dump := md.AddString("memviz", "", "write a graph of the CRT specification and telemetry to a .dot file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	rc, err := in.open(md)
	if err != nil {
		return err
	}

	mon, _, err := cf.create()
	if err != nil {
		rc.Close()
		return err
	}

	var dig *digest.Video
	if *showDigest {
		dig = digest.NewVideo()
		if err := mon.AddPixelRenderer(dig); err != nil {
			rc.Close()
			return err
		}
	}

	var img *screenshot.Image
	if *shot != "" {
		img = screenshot.NewImage()
		if err := mon.AddPixelRenderer(img); err != nil {
			rc.Close()
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	wait := replay(ctx, rc, mon.CRT(), *cf.rate, output)

	err = mon.Run(ctx, *cf.frames)
	cancel()
	wait()

	if e := mon.End(); err == nil {
		err = e
	}
	if err != nil {
		return err
	}

	if dig != nil {
		fmt.Fprintf(output, "%s (%d frames)\n", dig.Hash(), dig.Frames())
	}

	if img != nil {
		fn, err := img.Save(*shot, *scale)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "screenshot saved to %s\n", fn)
	}

	if *dump != "" {
		f, err := os.Create(*dump)
		if err != nil {
			return err
		}
		spec := mon.CRT().Spec()
		tel := mon.CRT().Telemetry()
		memviz.Map(f, &spec, &tel)
		if err := f.Close(); err != nil {
			return err
		}
	}

	return nil
}

func view(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	in := addInput(md)
	cf := addCRT(md, 0)
	scale := md.AddFloat64("scale", 1.0, "window scaling")
	shotScale := md.AddInt("shotscale", 2, "screenshot scaling")

	md.AdditionalHelp("keys: B toggle blur, T toggle thick beam, S screenshot, Escape quit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	rc, err := in.open(md)
	if err != nil {
		return err
	}

	mon, crtPrefs, err := cf.create()
	if err != nil {
		rc.Close()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	vw, err := sdlview.NewView(float32(*scale), cancel)
	if err != nil {
		rc.Close()
		return err
	}
	if err := mon.AddPixelRenderer(vw); err != nil {
		rc.Close()
		return err
	}

	img := screenshot.NewImage()
	if err := mon.AddPixelRenderer(img); err != nil {
		rc.Close()
		return err
	}

	vw.OnKey("B", func() {
		_ = crtPrefs.Blur.Set(!crtPrefs.Blur.Get().(bool))
	})
	vw.OnKey("T", func() {
		_ = crtPrefs.ThickBeam.Set(!crtPrefs.ThickBeam.Get().(bool))
	})
	vw.OnKey("S", func() {
		fn, err := img.Save(fmt.Sprintf("phosphor_%s", time.Now().Format("20060102_150405")), *shotScale)
		if err != nil {
			logger.Log(logger.Allow, "sdlview", err)
			return
		}
		fmt.Fprintf(output, "screenshot saved to %s\n", fn)
	})

	wait := replay(ctx, rc, mon.CRT(), *cf.rate, output)

	err = mon.Run(ctx, *cf.frames)
	cancel()
	wait()

	if e := mon.End(); err == nil {
		err = e
	}
	if err != nil {
		return err
	}

	return crtPrefs.Save()
}

func ascii(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	in := addInput(md)
	width := md.AddInt("width", 1024, "width of device coordinate space")
	height := md.AddInt("height", 1024, "height of device coordinate space")
	scale := md.AddInt("scale", 8, "device positions per preview cell")
	maxWidth := md.AddInt("maxwidth", 0, "maximum width of preview (0 for terminal width)")
	refresh := md.AddInt("refresh", 100, "redraw after this many pixels (serial only)")
	pngFile := md.AddString("png", "", "also save the preview to this PNG file")
	pngScale := md.AddInt("pngscale", 4, "image pixels per preview cell in the PNG file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	rc, err := in.open(md)
	if err != nil {
		return err
	}
	defer closeOnDone(ctx, rc)()

	if *refresh < 1 {
		*refresh = 1
	}
	if *maxWidth <= 0 {
		*maxWidth = trace.TerminalWidth(os.Stdout)
	}

	live := *in.serial != ""
	pv := trace.NewPreview(*width, *height, *scale)
	rd := trace.NewReader(rc)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		rec, err := rd.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break // for loop
			}
			return err
		}

		frame := pv.Frame
		pv.Add(rec)

		if live && (rec.Kind == trace.KindFrame && rec.Frame != frame ||
			rec.Kind == trace.KindPixel && pv.Pixels%*refresh == 0) {
			// clear screen and home cursor
			fmt.Fprint(output, "\033[2J\033[H")
			fmt.Fprint(output, pv.Render(*maxWidth))
		}
	}

	fmt.Fprintf(output, "parsed %d pixels at %d unique positions\n\n", pv.Pixels, pv.Unique)
	fmt.Fprint(output, pv.Render(*maxWidth))

	if *pngFile != "" {
		if err := screenshot.WritePNG(*pngFile, pv.Image(), *pngScale); err != nil {
			return err
		}
		fmt.Fprintf(output, "preview saved to %s\n", *pngFile)
	}

	return nil
}
