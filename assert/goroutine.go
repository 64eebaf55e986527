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

// Package assert contains checks that are only useful during development and
// testing.
package assert

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
)

// GetGoRoutineID returns an identifier for the calling goroutine. The result
// is different between goroutines and consistent for a given goroutine. It
// should only ever be used for debugging or testing purposes.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Owner records the goroutine that first claims a resource. Later claims from
// a different goroutine are reported as an error.
type Owner struct {
	id atomic.Uint64
}

// Claim the resource for the calling goroutine. Returns an error if the
// resource has already been claimed by a different goroutine.
func (o *Owner) Claim() error {
	id := GetGoRoutineID()
	if o.id.CompareAndSwap(0, id) {
		return nil
	}
	if owner := o.id.Load(); owner != id {
		return fmt.Errorf("assert: resource owned by goroutine %d accessed from goroutine %d", owner, id)
	}
	return nil
}

// Release the resource so that it can be claimed by another goroutine.
func (o *Owner) Release() {
	o.id.Store(0)
}
