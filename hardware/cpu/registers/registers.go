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

// Package registers implements the register file of the MC68000: the eight
// data registers, the eight address registers (with the stack pointer
// shadows), the program counter and the status register.
package registers

import (
	"fmt"

	"github.com/quillon/gopher68k/hardware/cpu/instructions"
)

// Register is a 32 bit general purpose register. data and address registers
// are both represented by this type; the width rules for partial writes
// differ between them and are applied by the callers in the cpu package.
type Register struct {
	label string
	value uint32
}

// NewRegister is the preferred method of initialisation for the Register
// type.
func NewRegister(val uint32, label string) Register {
	return Register{label: label, value: val}
}

// Label returns the label assigned to the register.
func (r Register) Label() string {
	return r.label
}

func (r Register) String() string {
	return fmt.Sprintf("%s=%08x", r.label, r.value)
}

// Value returns the full 32 bit contents of the register.
func (r Register) Value() uint32 {
	return r.value
}

// ValueSized returns the low byte, word or long of the register.
func (r Register) ValueSized(size instructions.Size) uint32 {
	return r.value & size.Mask()
}

// Load writes the full 32 bits of the register.
func (r *Register) Load(val uint32) {
	r.value = val
}

// LoadSized writes the low byte, word or long of the register, leaving the
// upper bits untouched. this is the data register rule; address registers
// take sign extended full width writes instead.
func (r *Register) LoadSized(size instructions.Size, val uint32) {
	mask := size.Mask()
	r.value = (r.value &^ mask) | (val & mask)
}

// ProgramCounter is the specialisation of Register used for the program
// counter. it is always 32 bits wide but only the low 24 are ever driven
// onto the address bus.
type ProgramCounter struct {
	value uint32
}

func (pc ProgramCounter) String() string {
	return fmt.Sprintf("PC=%08x", pc.value)
}

// Value returns the current value of the program counter.
func (pc ProgramCounter) Value() uint32 {
	return pc.value
}

// Load a new address into the program counter.
func (pc *ProgramCounter) Load(val uint32) {
	pc.value = val
}

// Add an offset to the program counter. negative offsets move it backwards.
func (pc *ProgramCounter) Add(offset int32) {
	pc.value += uint32(offset)
}
