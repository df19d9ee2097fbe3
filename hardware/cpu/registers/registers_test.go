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

package registers_test

import (
	"testing"

	"github.com/quillon/gopher68k/hardware/cpu/instructions"
	"github.com/quillon/gopher68k/hardware/cpu/registers"
	"github.com/quillon/gopher68k/test"
)

func TestRegisterSizedWrites(t *testing.T) {
	r := registers.NewRegister(0xdeadbeef, "D0")
	test.Equate(t, r.Value(), uint32(0xdeadbeef))
	test.Equate(t, r.ValueSized(instructions.Byte), uint32(0xef))
	test.Equate(t, r.ValueSized(instructions.Word), uint32(0xbeef))

	// partial writes leave the upper bits alone
	r.LoadSized(instructions.Byte, 0x12345678)
	test.Equate(t, r.Value(), uint32(0xdeadbe78))
	r.LoadSized(instructions.Word, 0x00001234)
	test.Equate(t, r.Value(), uint32(0xdead1234))
	r.LoadSized(instructions.Long, 0xcafef00d)
	test.Equate(t, r.Value(), uint32(0xcafef00d))
}

func TestStatusRegister(t *testing.T) {
	var sr registers.StatusRegister

	sr.Reset()
	test.Equate(t, sr.Value(), uint16(0x2700))
	test.Equate(t, sr.Supervisor, true)
	test.Equate(t, sr.InterruptMask, uint8(7))
	test.Equate(t, sr.String(), "-S7-----")

	// unimplemented bits never stick
	sr.Load(0xffff)
	test.Equate(t, sr.Value(), uint16(0xa71f))
	test.Equate(t, sr.Trace, true)
	test.Equate(t, sr.String(), "TS7XNZVC")

	// ccr writes leave the system byte alone
	sr.LoadCCR(0x00)
	test.Equate(t, sr.Value(), uint16(0xa700))
	sr.LoadCCR(0x15)
	test.Equate(t, sr.CCR(), uint8(0x15))
	test.Equate(t, sr.Carry, true)
	test.Equate(t, sr.Zero, true)
	test.Equate(t, sr.Extend, true)
	test.Equate(t, sr.Supervisor, true)
}
