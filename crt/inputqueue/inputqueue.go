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

// Package inputqueue holds beam events that have been ingested but not yet
// placed in the point store.
//
// The queue is a fixed size ring. When the ring is full new events are
// rejected: the events already queued are older and are closer to being
// drawn, so discarding the newest event disturbs the image least. A rejected
// event is counted and otherwise lost silently.
package inputqueue

import (
	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/crt/specification"
)

// Queue is a bounded ring of pending PixelEvents.
type Queue struct {
	ring []signal.PixelEvent

	// head is the index of the oldest event. tail is the index at which the
	// next event will be written
	head  int
	tail  int
	count int

	thickBeam bool
	noExpand  signal.Brightness

	// number of events rejected because the ring was full. the count is
	// cumulative and is never reset except by Reset()
	Dropped int

	// number of extra events created by thick beam expansion
	Expanded int
}

// NewQueue is the preferred method of initialisation for the Queue type.
func NewQueue(spec specification.Spec) *Queue {
	return &Queue{
		ring:      make([]signal.PixelEvent, spec.QueueDepth),
		thickBeam: spec.ThickBeam,
		noExpand:  spec.NoExpandBrightness,
	}
}

// Reset empties the queue and clears the counters.
func (q *Queue) Reset() {
	q.head = 0
	q.tail = 0
	q.count = 0
	q.Dropped = 0
	q.Expanded = 0
}

// SetThickBeam enables or disables thick beam expansion for events pushed
// from now on.
func (q *Queue) SetThickBeam(thick bool) {
	q.thickBeam = thick
}

// Enqueue appends an event at the tail of the ring. Returns false if the ring
// is full and the event has been discarded.
func (q *Queue) Enqueue(ev signal.PixelEvent) bool {
	if q.count == len(q.ring) {
		q.Dropped++
		return false
	}
	q.ring[q.tail] = ev
	q.tail = (q.tail + 1) % len(q.ring)
	q.count++
	return true
}

// Dequeue removes and returns the oldest event.
func (q *Queue) Dequeue() (signal.PixelEvent, bool) {
	if q.count == 0 {
		return signal.PixelEvent{}, false
	}
	ev := q.ring[q.head]
	q.head = (q.head + 1) % len(q.ring)
	q.count--
	return ev, true
}

// Peek returns the oldest event without removing it.
func (q *Queue) Peek() (signal.PixelEvent, bool) {
	if q.count == 0 {
		return signal.PixelEvent{}, false
	}
	return q.ring[q.head], true
}

// Len is the number of pending events.
func (q *Queue) Len() int {
	return q.count
}

// Cap is the capacity of the ring.
func (q *Queue) Cap() int {
	return len(q.ring)
}

// Head is the read pointer of the ring.
func (q *Queue) Head() int {
	return q.head
}

// Tail is the write pointer of the ring.
func (q *Queue) Tail() int {
	return q.tail
}

// Expand returns the events that a single event becomes. When thick beam is
// enabled and the brightness is not the no-expand code, the event becomes a
// plus shaped cluster: centre, up, down, left and right. Coordinates at the
// edge of the range wrap.
func (q *Queue) Expand(ev signal.PixelEvent) []signal.PixelEvent {
	if !q.thickBeam || ev.Brightness == q.noExpand {
		return []signal.PixelEvent{ev}
	}

	c := func(dx, dy int) signal.PixelEvent {
		return signal.PixelEvent{X: ev.X.Add(dx), Y: ev.Y.Add(dy), Brightness: ev.Brightness}
	}

	return []signal.PixelEvent{
		ev,
		c(0, -1),
		c(0, 1),
		c(-1, 0),
		c(1, 0),
	}
}

// Push expands an event and enqueues the result. Cells of a cluster that do
// not fit are dropped individually. Returns the number of events enqueued.
func (q *Queue) Push(ev signal.PixelEvent) int {
	cluster := q.Expand(ev)
	q.Expanded += len(cluster) - 1

	n := 0
	for _, e := range cluster {
		if q.Enqueue(e) {
			n++
		}
	}
	return n
}
