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

package trace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/logger"
)

// Beamer is the destination for replayed events. Implemented by crt.CRT.
type Beamer interface {
	Beam(ev signal.PixelEvent) bool
}

// Stats summarises a replay.
type Stats struct {
	Pixels int
	Frames int

	// pixels that did not fit the event fields. they are still presented to
	// the Beamer, with the fields wrapped
	OutOfRange int

	// pixels refused by the Beamer
	Dropped int
}

func (st Stats) String() string {
	return fmt.Sprintf("pixels=%d frames=%d out-of-range=%d dropped=%d",
		st.Pixels, st.Frames, st.OutOfRange, st.Dropped)
}

// Interval returns the time between pixels for a replay rate in pixels per
// second. Returns zero if the rate is not limited, which is the case for a
// rate of zero or less or a rate too fast to be measured.
func Interval(rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Second / time.Duration(rate)
}

// Replay reads every record from the Reader and presents the pixels to the
// Beamer at the specified rate, in pixels per second. A rate of zero or less,
// or a rate faster than one pixel per nanosecond, presents pixels as quickly
// as possible.
//
// Replay returns when the log is exhausted or the context is cancelled.
func Replay(ctx context.Context, rd *Reader, dst Beamer, rate int) (Stats, error) {
	var st Stats

	var pace <-chan time.Time
	if interval := Interval(rate); interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		pace = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		default:
		}

		rec, err := rd.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return st, nil
			}
			return st, err
		}

		switch rec.Kind {
		case KindFrame:
			st.Frames++
			logger.Logf(logger.Allow, "trace", "frame %d (pc %04o)", rec.Frame.Num, rec.Frame.PC)

		case KindPixel:
			if pace != nil {
				select {
				case <-ctx.Done():
					return st, ctx.Err()
				case <-pace:
				}
			}

			st.Pixels++
			if !rec.Pixel.InRange() {
				st.OutOfRange++
				logger.Logf(logger.Allow, "trace", "out of range: %s", rec.Pixel)
			}
			if !dst.Beam(rec.Pixel.Event()) {
				st.Dropped++
			}
		}
	}
}
