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

// Package pointstore is the phosphor of the emulated CRT. It holds every point
// that is currently glowing, decays them over time, and places new beam
// events into slots vacated by points that have faded from view.
//
// The store is made up of four stages. Each stage is a circular delay line
// and the stages are wired into a ring: S0 feeds S1, S1 feeds S2, S2 feeds S3
// and S3 feeds S0. Every tick, the point leaving each stage enters the next.
//
// Only a handful of slots in each stage can be inspected on any one tick.
// These are the taps and they are evenly spaced along the stage. Tap zero
// holds the point that has just entered the stage. Because the stages rotate
// one slot per tick, every point passes a tap once every Depth/Taps ticks.
//
// Before an event from the input queue is placed in the store, it is compared
// against the taps for long enough that every point has been seen. If a point
// at the same position is found then that point is refreshed. Only if no
// match is found is the event inserted, so there is never more than one point
// at any position.
//
// Decay is applied once every DecayDivisor ticks to every point. Rather than
// visit every slot, the store counts decay epochs and brings a slot up to date
// whenever it is looked at.
package pointstore

import (
	"github.com/fpg1/phosphor/crt/inputqueue"
	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/crt/specification"
)

// Priority is the order in which stages are considered when choosing a slot
// for a new point and when flushing taps to the row buffer. The order affects
// the image so it must not be changed.
var Priority = [specification.NumStages]int{3, 0, 1, 2}

type slot struct {
	point signal.LivePoint

	// the decay epoch at which point.Luma was last brought up to date
	epoch uint64
}

// Tap is a single visible slot as seen on a particular tick.
type Tap struct {
	Stage int
	Tap   int
	Point signal.LivePoint
}

// Store is the phosphor point store.
type Store struct {
	spec specification.Spec

	stages [specification.NumStages][]slot

	// read pointer shared by every stage
	ptr int

	// global tick counter and the number of decay epochs that have elapsed
	tick  uint64
	epoch uint64

	// the number of ticks the event at the head of the input queue has been
	// compared against the taps
	searched int

	// ticks since the last successful refresh or insertion
	stale int

	// taps as they were at the end of the most recent tick, in priority order
	taps []Tap

	// cumulative counters
	Refreshed int
	Inserted  int
	Forced    int
	Stalled   int
}

// NewStore is the preferred method of initialisation for the Store type.
func NewStore(spec specification.Spec) *Store {
	st := &Store{
		spec: spec,
		taps: make([]Tap, 0, specification.NumStages*spec.Taps),
	}
	for s := range st.stages {
		st.stages[s] = make([]slot, spec.Depth)
	}
	st.snapshot()
	return st
}

// Reset empties the store.
func (st *Store) Reset() {
	for s := range st.stages {
		clear(st.stages[s])
	}
	st.ptr = 0
	st.tick = 0
	st.epoch = 0
	st.searched = 0
	st.stale = 0
	st.Refreshed = 0
	st.Inserted = 0
	st.Forced = 0
	st.Stalled = 0
	st.snapshot()
}

// materialise brings the luma of a slot up to date with the current epoch and
// returns the point.
func (st *Store) materialise(sl *slot) signal.LivePoint {
	if sl.epoch != st.epoch {
		sl.point.Luma = DimN(sl.point.Luma, st.epoch-sl.epoch)
		sl.epoch = st.epoch
	}
	return sl.point
}

// index of a tap on any stage
func (st *Store) tapIndex(tap int) int {
	return (st.ptr + tap*st.spec.TapSpacing()) % st.spec.Depth
}

// Tick advances the store by one tick, consuming at most one event from the
// queue.
func (st *Store) Tick(queue *inputqueue.Queue) {
	if st.tick%uint64(st.spec.DecayDivisor) == 0 {
		st.epoch++
	}

	// every stage hands its outgoing point to the next stage. outgoing points
	// are all read before any are written
	var out [specification.NumStages]slot
	for s := range st.stages {
		st.materialise(&st.stages[s][st.ptr])
		out[s] = st.stages[s][st.ptr]
	}
	for s := range st.stages {
		st.stages[(s+1)%specification.NumStages][st.ptr] = out[s]
	}

	if st.service(queue) {
		st.stale = 0
	} else {
		st.stale++
	}

	st.snapshot()

	st.ptr = (st.ptr + 1) % st.spec.Depth
	st.tick++
}

// service compares the event at the head of the queue against the taps and
// either refreshes a matching point or inserts a new one. Returns true if the
// queue was serviced.
func (st *Store) service(queue *inputqueue.Queue) bool {
	ev, ok := queue.Peek()
	if !ok {
		st.searched = 0
		return false
	}

	// dedup search
	for _, s := range Priority {
		for t := 0; t < st.spec.Taps; t++ {
			sl := &st.stages[s][st.tapIndex(t)]
			p := st.materialise(sl)
			if p.Luma.Visible() && p.At(ev.X, ev.Y) {
				sl.point.Luma = signal.LumaMax
				queue.Dequeue()
				st.searched = 0
				st.Refreshed++
				return true
			}
		}
	}

	if st.searched < st.spec.SearchWindow() {
		st.searched++
	}

	// the event has not been seen against every point yet
	if st.searched < st.spec.SearchWindow() {
		return false
	}

	// reclaim a slot from the incoming points
	for _, s := range Priority {
		if st.reclaim(&st.stages[s][st.tapIndex(0)], queue) {
			return true
		}
	}

	// staleness fallback. any visible tap can be reclaimed
	if st.stale > st.spec.StaleThreshold {
		for _, s := range Priority {
			for t := 1; t < st.spec.Taps; t++ {
				if st.reclaim(&st.stages[s][st.tapIndex(t)], queue) {
					st.Forced++
					return true
				}
			}
		}
	}

	st.Stalled++
	return false
}

// reclaim places the event at the head of the queue in the slot if the point
// already in the slot has faded.
func (st *Store) reclaim(sl *slot, queue *inputqueue.Queue) bool {
	p := st.materialise(sl)
	if p.Luma.Visible() {
		return false
	}
	ev, _ := queue.Dequeue()
	sl.point = signal.LivePoint{X: ev.X, Y: ev.Y, Luma: signal.LumaMax}
	sl.epoch = st.epoch
	st.searched = 0
	st.Inserted++
	return true
}

// snapshot the taps in priority order.
func (st *Store) snapshot() {
	st.taps = st.taps[:0]
	for _, s := range Priority {
		for t := 0; t < st.spec.Taps; t++ {
			st.taps = append(st.taps, Tap{
				Stage: s,
				Tap:   t,
				Point: st.materialise(&st.stages[s][st.tapIndex(t)]),
			})
		}
	}
}

// Taps returns the visible taps as they were at the end of the most recent
// tick, in priority order. The returned slice is reused on the next tick.
func (st *Store) Taps() []Tap {
	return st.taps
}

// Representative returns the point at tap zero of stage zero.
func (st *Store) Representative() signal.LivePoint {
	for _, t := range st.taps {
		if t.Stage == 0 && t.Tap == 0 {
			return t.Point
		}
	}
	return signal.LivePoint{}
}

// Ticks returns the value of the global tick counter.
func (st *Store) Ticks() uint64 {
	return st.tick
}

// Each calls f for every visible point in the store.
func (st *Store) Each(f func(signal.LivePoint)) {
	for s := range st.stages {
		for i := range st.stages[s] {
			p := st.materialise(&st.stages[s][i])
			if p.Luma.Visible() {
				f(p)
			}
		}
	}
}

// Live returns the number of visible points in the store.
func (st *Store) Live() int {
	n := 0
	st.Each(func(_ signal.LivePoint) {
		n++
	})
	return n
}

// Find returns every visible point at the position.
func (st *Store) Find(x, y signal.Coord) []signal.LivePoint {
	var f []signal.LivePoint
	st.Each(func(p signal.LivePoint) {
		if p.At(x, y) {
			f = append(f, p)
		}
	})
	return f
}
