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

package assert_test

import (
	"testing"

	"github.com/fpg1/phosphor/assert"
	"github.com/fpg1/phosphor/test"
)

func TestGoRoutineID(t *testing.T) {
	id := assert.GetGoRoutineID()
	test.ExpectInequality(t, id, 0)
	test.ExpectEquality(t, assert.GetGoRoutineID(), id)

	done := make(chan uint64)
	go func() {
		done <- assert.GetGoRoutineID()
	}()
	test.ExpectInequality(t, <-done, id)
}

func TestOwner(t *testing.T) {
	var o assert.Owner
	test.ExpectSuccess(t, o.Claim())
	test.ExpectSuccess(t, o.Claim())

	done := make(chan error)
	go func() {
		done <- o.Claim()
	}()
	test.ExpectFailure(t, <-done)

	o.Release()
	go func() {
		done <- o.Claim()
	}()
	test.ExpectSuccess(t, <-done)
}
