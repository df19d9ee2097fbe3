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

package cpu

import (
	"fmt"
	"strings"

	"github.com/quillon/gopher68k/curated"
)

// Sentinal error returned by PeekField.
const UnknownField = "cpu: no such field: %s"

// peekUSP returns the user stack pointer regardless of which pointer A7
// currently is.
func (mc *CPU) peekUSP() uint32 {
	if mc.SR.Supervisor {
		return mc.USP.Value()
	}
	return mc.A[7].Value()
}

// peekSSP returns the supervisor stack pointer regardless of which pointer
// A7 currently is.
func (mc *CPU) peekSSP() uint32 {
	if mc.SR.Supervisor {
		return mc.A[7].Value()
	}
	return mc.SSP.Value()
}

// peekFieldNames lists every name PeekField recognises, in the order a
// debugger would want to present them. d0 to d7 and a0 to a7 are appended
// by the package init function.
var peekFieldNames = []string{
	"usp", "ssp", "pc", "sr", "ccr", "ir", "irc",
	"c", "v", "z", "n", "x", "s", "t", "imask",
	"halted", "stopped", "cycles",
}

func init() {
	for i := 0; i < 8; i++ {
		peekFieldNames = append(peekFieldNames, fmt.Sprintf("d%d", i))
	}
	for i := 0; i < 8; i++ {
		peekFieldNames = append(peekFieldNames, fmt.Sprintf("a%d", i))
	}
}

// PeekFieldNames returns the names PeekField recognises.
func PeekFieldNames() []string {
	names := make([]string, len(peekFieldNames))
	copy(names, peekFieldNames)
	return names
}

func peekBool(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// PeekField returns the value of a named register or flag without
// disturbing the emulation. recognised names, all case insensitive, are d0
// to d7, a0 to a7, usp, ssp, pc, sr, ccr, ir and irc; the individual
// status bits c, v, z, n, x, s and t, reported as 0 or 1, and the three
// bit interrupt mask imask; the halted and stopped conditions, also 0 or
// 1; and cycles, the low 32 bits of the tick count since the last Reset()
// (the Cycles field carries the full count).
func (mc *CPU) PeekField(name string) (uint32, error) {
	name = strings.ToLower(name)

	if len(name) == 2 && name[1] >= '0' && name[1] <= '7' {
		r := int(name[1] - '0')
		switch name[0] {
		case 'd':
			return mc.D[r].Value(), nil
		case 'a':
			return mc.A[r].Value(), nil
		}
	}

	switch name {
	case "usp":
		return mc.peekUSP(), nil
	case "ssp":
		return mc.peekSSP(), nil
	case "pc":
		return mc.PC.Value(), nil
	case "sr":
		return uint32(mc.SR.Value()), nil
	case "ccr":
		return uint32(mc.SR.CCR()), nil
	case "ir":
		return uint32(mc.IR), nil
	case "irc":
		return uint32(mc.IRC), nil
	case "c":
		return peekBool(mc.SR.Carry), nil
	case "v":
		return peekBool(mc.SR.Overflow), nil
	case "z":
		return peekBool(mc.SR.Zero), nil
	case "n":
		return peekBool(mc.SR.Negative), nil
	case "x":
		return peekBool(mc.SR.Extend), nil
	case "s":
		return peekBool(mc.SR.Supervisor), nil
	case "t":
		return peekBool(mc.SR.Trace), nil
	case "imask":
		return uint32(mc.SR.InterruptMask), nil
	case "halted":
		return peekBool(mc.Halted), nil
	case "stopped":
		return peekBool(mc.Stopped), nil
	case "cycles":
		return uint32(mc.Cycles), nil
	}

	return 0, curated.Errorf(UnknownField, name)
}

// PeekFields returns the values of several named registers in one call.
// the first unknown name aborts the peek.
func (mc *CPU) PeekFields(names ...string) ([]uint32, error) {
	values := make([]uint32, len(names))
	for i, name := range names {
		v, err := mc.PeekField(name)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
