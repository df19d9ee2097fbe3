// This file is part of Gopher68k.
//
// Gopher68k is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher68k is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher68k.  If not, see <https://www.gnu.org/licenses/>.

package logger

import (
	"strings"
	"testing"

	"github.com/quillon/gopher68k/test"
)

func TestCentral(t *testing.T) {
	Clear()

	Log(Allow, "tick", "one")
	Log(Allow, "tick", "two")

	s := strings.Builder{}
	Write(&s)
	test.Equate(t, s.String(), "tick: one\ntick: two\n")

	// repeated entries fold into the previous entry
	Log(Allow, "tick", "two")
	s.Reset()
	Write(&s)
	test.Equate(t, s.String(), "tick: one\ntick: two (repeat x2)\n")

	// tail returns only the most recent entries
	s.Reset()
	Tail(&s, 1)
	test.Equate(t, s.String(), "tick: two (repeat x2)\n")

	Clear()
	s.Reset()
	Write(&s)
	test.Equate(t, s.String(), "")
}

func TestWriteRecent(t *testing.T) {
	Clear()

	Log(Allow, "cpu", "reset")

	s := strings.Builder{}
	WriteRecent(&s)
	test.Equate(t, s.String(), "cpu: reset\n")

	// a second call with no new entries writes nothing
	s.Reset()
	WriteRecent(&s)
	test.Equate(t, s.String(), "")

	Log(Allow, "cpu", "stopped")
	s.Reset()
	WriteRecent(&s)
	test.Equate(t, s.String(), "cpu: stopped\n")
}
