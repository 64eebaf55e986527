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
	"bufio"
	"io"
	"os"

	"github.com/pkg/term"

	"github.com/fpg1/phosphor/curated"
)

// Sentinal error patterns.
const (
	CannotOpen = "trace: cannot open %s: %v"
	ReadError  = "trace: read error: %v"
)

// DefaultBaud is the speed of the hardware's debug port.
const DefaultBaud = 115200

// Reader returns records from a log one at a time.
type Reader struct {
	scanner *bufio.Scanner

	// number of lines read so far. includes lines that contained no record
	Lines int

	// number of lines that looked like records but could not be parsed
	Malformed int
}

// NewReader is the preferred method of initialisation for the Reader type.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(r),
	}
}

// Next returns the next record in the log. Lines without a record and lines
// that can't be parsed are skipped. Returns io.EOF at the end of the log.
func (rd *Reader) Next() (Record, error) {
	for rd.scanner.Scan() {
		rd.Lines++
		rec, err := ParseLine(rd.scanner.Text())
		if err != nil {
			rd.Malformed++
			continue
		}
		if rec.Kind == KindNone {
			continue
		}
		return rec, nil
	}

	if err := rd.scanner.Err(); err != nil {
		return Record{}, curated.Errorf(ReadError, err)
	}

	return Record{}, io.EOF
}

// Open a log file for reading. The name "-" (or the empty string) opens
// stdin, in which case the returned Closer does nothing.
func Open(name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, curated.Errorf(CannotOpen, name, err)
	}
	return f, nil
}

// OpenSerial opens the named serial device in raw mode at the specified
// speed. Any data already buffered by the device is discarded.
func OpenSerial(name string, baud int) (io.ReadCloser, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}

	t, err := term.Open(name, term.Speed(baud), term.RawMode)
	if err != nil {
		return nil, curated.Errorf(CannotOpen, name, err)
	}

	if err := t.Flush(); err != nil {
		_ = t.Close()
		return nil, curated.Errorf(CannotOpen, name, err)
	}

	return t, nil
}
