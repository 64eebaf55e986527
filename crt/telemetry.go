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

package crt

import (
	"fmt"
	"strings"

	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/logger"
)

// Telemetry is a snapshot of the internal state of the pipeline. Values
// prefixed with Frame are for the most recently completed frame only.
type Telemetry struct {
	Spec   string
	Frames int

	QueueHead int
	QueueTail int
	QueueLen  int
	InboxLen  int

	FrameReceived  int
	FrameExpanded  int
	FrameRefreshed int
	FrameInserted  int
	FrameForced    int
	FrameStalled   int
	FrameDropped   int

	// number of visible points at the end of the frame
	Live int

	// the point at the representative tap of the point store
	Representative signal.LivePoint
}

func (tel Telemetry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s frame %d: ", tel.Spec, tel.Frames))
	s.WriteString(fmt.Sprintf("queue %d [%d:%d] inbox %d ", tel.QueueLen, tel.QueueHead, tel.QueueTail, tel.InboxLen))
	s.WriteString(fmt.Sprintf("recv %d exp %d ref %d ins %d ", tel.FrameReceived, tel.FrameExpanded, tel.FrameRefreshed, tel.FrameInserted))
	s.WriteString(fmt.Sprintf("forced %d stalled %d dropped %d ", tel.FrameForced, tel.FrameStalled, tel.FrameDropped))
	s.WriteString(fmt.Sprintf("live %d rep %s", tel.Live, tel.Representative))
	return s.String()
}

// counters at the start of the current frame. counters in the pipeline are
// cumulative so the per-frame values are the difference
type telemetryFrame struct {
	// number of completed frames
	frames int

	received int

	expanded     int
	refreshed    int
	inserted     int
	forced       int
	stalled      int
	queueDropped int
	inboxDropped int64
}

// Telemetry returns the state of the pipeline at the end of the most recently
// completed frame. It can be called from any goroutine.
func (crt *CRT) Telemetry() Telemetry {
	return crt.telemetry.Load().(Telemetry)
}

// endFrame publishes telemetry for the frame that has just ended.
func (crt *CRT) endFrame() {
	inboxDropped := crt.inboxDropped.Load()

	tel := Telemetry{
		Spec:           crt.spec.ID,
		Frames:         crt.frame.frames + 1,
		QueueHead:      crt.queue.Head(),
		QueueTail:      crt.queue.Tail(),
		QueueLen:       crt.queue.Len(),
		InboxLen:       len(crt.inbox),
		FrameReceived:  crt.frame.received,
		FrameExpanded:  crt.queue.Expanded - crt.frame.expanded,
		FrameRefreshed: crt.store.Refreshed - crt.frame.refreshed,
		FrameInserted:  crt.store.Inserted - crt.frame.inserted,
		FrameForced:    crt.store.Forced - crt.frame.forced,
		FrameStalled:   crt.store.Stalled - crt.frame.stalled,
		FrameDropped:   crt.queue.Dropped - crt.frame.queueDropped + int(inboxDropped-crt.frame.inboxDropped),
		Live:           crt.store.Live(),
		Representative: crt.store.Representative(),
	}
	crt.telemetry.Store(tel)

	crt.frame = telemetryFrame{
		frames:       tel.Frames,
		expanded:     crt.queue.Expanded,
		refreshed:    crt.store.Refreshed,
		inserted:     crt.store.Inserted,
		forced:       crt.store.Forced,
		stalled:      crt.store.Stalled,
		queueDropped: crt.queue.Dropped,
		inboxDropped: inboxDropped,
	}

	if tel.FrameDropped > 0 {
		logger.Logf(logger.Allow, "crt", "%d events dropped in frame %d", tel.FrameDropped, tel.Frames)
	}
}
