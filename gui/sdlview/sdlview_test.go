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

package sdlview_test

import (
	"testing"

	"github.com/fpg1/phosphor/crt/specification"
	"github.com/fpg1/phosphor/gui/sdlview"
	"github.com/fpg1/phosphor/test"
)

func TestWindowSize(t *testing.T) {
	w, h := sdlview.WindowSize(specification.SpecVGA, 1.0)
	test.ExpectEquality(t, w, int32(640))
	test.ExpectEquality(t, h, int32(480))

	w, h = sdlview.WindowSize(specification.SpecSVGA, 1.5)
	test.ExpectEquality(t, w, int32(1200))
	test.ExpectEquality(t, h, int32(900))

	// scale of zero is treated as one
	w, h = sdlview.WindowSize(specification.SpecXGA, 0)
	test.ExpectEquality(t, w, int32(1024))
	test.ExpectEquality(t, h, int32(768))
}
