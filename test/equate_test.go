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

package test_test

import (
	"testing"

	"github.com/quillon/gopher68k/test"
)

func TestEquate(t *testing.T) {
	test.Equate(t, uint32(10), 10)
	test.Equate(t, uint16(0xbeef), uint16(0xbeef))
	test.Equate(t, "ok", "ok")

	// named types, like the instruction decode enumerations, go through
	// the general comparison path
	type flavour int
	test.Equate(t, flavour(2), flavour(2))
}
