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

package registers

import (
	"strings"
)

// srMask covers the bits of the status register that exist on the MC68000.
// writes through Load are filtered through it; the unimplemented bits always
// read back as zero.
const srMask = 0xa71f

// StatusRegister represents the MC68000 status register: the condition code
// byte in the low half and the system byte (trace, supervisor, interrupt
// mask) in the high half.
type StatusRegister struct {
	Carry    bool
	Overflow bool
	Zero     bool
	Negative bool
	Extend   bool

	InterruptMask uint8
	Supervisor    bool
	Trace         bool
}

func (sr StatusRegister) String() string {
	s := strings.Builder{}

	flag := func(set bool, label rune) {
		if set {
			s.WriteRune(label)
		} else {
			s.WriteRune('-')
		}
	}

	flag(sr.Trace, 'T')
	flag(sr.Supervisor, 'S')
	s.WriteRune('0' + rune(sr.InterruptMask&0x7))
	flag(sr.Extend, 'X')
	flag(sr.Negative, 'N')
	flag(sr.Zero, 'Z')
	flag(sr.Overflow, 'V')
	flag(sr.Carry, 'C')

	return s.String()
}

// Value returns the status register as the 16 bit word that MOVE from SR
// sees and that exception frames record.
func (sr StatusRegister) Value() uint16 {
	var v uint16
	if sr.Carry {
		v |= 0x0001
	}
	if sr.Overflow {
		v |= 0x0002
	}
	if sr.Zero {
		v |= 0x0004
	}
	if sr.Negative {
		v |= 0x0008
	}
	if sr.Extend {
		v |= 0x0010
	}
	v |= uint16(sr.InterruptMask&0x7) << 8
	if sr.Supervisor {
		v |= 0x2000
	}
	if sr.Trace {
		v |= 0x8000
	}
	return v
}

// Load replaces the entire status register. bits outside the MC68000
// implemented set are ignored. the caller is responsible for the stack
// pointer swap when the supervisor bit changes.
func (sr *StatusRegister) Load(v uint16) {
	v &= srMask
	sr.Carry = v&0x0001 != 0
	sr.Overflow = v&0x0002 != 0
	sr.Zero = v&0x0004 != 0
	sr.Negative = v&0x0008 != 0
	sr.Extend = v&0x0010 != 0
	sr.InterruptMask = uint8(v>>8) & 0x7
	sr.Supervisor = v&0x2000 != 0
	sr.Trace = v&0x8000 != 0
}

// CCR returns the condition code byte, the only part of the status register
// visible to user mode programs.
func (sr StatusRegister) CCR() uint8 {
	return uint8(sr.Value() & 0x00ff)
}

// LoadCCR replaces the condition code byte, leaving the system byte alone.
func (sr *StatusRegister) LoadCCR(v uint8) {
	v &= 0x1f
	sr.Carry = v&0x01 != 0
	sr.Overflow = v&0x02 != 0
	sr.Zero = v&0x04 != 0
	sr.Negative = v&0x08 != 0
	sr.Extend = v&0x10 != 0
}

// Reset puts the status register into its power on state: supervisor mode,
// interrupts masked to level 7, trace off, condition codes clear.
func (sr *StatusRegister) Reset() {
	sr.Load(0x2700)
}
