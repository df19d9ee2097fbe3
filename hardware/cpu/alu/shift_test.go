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

package alu_test

import (
	"testing"

	"github.com/quillon/gopher68k/hardware/cpu/alu"
	"github.com/quillon/gopher68k/hardware/cpu/instructions"
	"github.com/quillon/gopher68k/test"
)

func TestArithmeticShiftRight(t *testing.T) {
	// sign replication. shifting a negative byte far enough gives all ones
	r := alu.Shift(instructions.ArithmeticShift, instructions.Byte, 0xaa, 9, false, false)
	test.Equate(t, r.Value, uint32(0xff))
	test.Equate(t, r.Carry, true)

	// positive values run out to zero
	r = alu.Shift(instructions.ArithmeticShift, instructions.Byte, 0x2a, 9, false, false)
	test.Equate(t, r.Value, uint32(0x00))
	test.Equate(t, r.Carry, false)

	// the last bit out is the carry
	r = alu.Shift(instructions.ArithmeticShift, instructions.Word, 0x0003, 1, false, false)
	test.Equate(t, r.Value, uint32(0x0001))
	test.Equate(t, r.Carry, true)
	test.Equate(t, r.Extend, true)
	test.Equate(t, r.Overflow, false)
}

func TestArithmeticShiftLeftOverflow(t *testing.T) {
	// the sign bit changes during the shift, so overflow is set even though
	// the final sign matches the original
	r := alu.Shift(instructions.ArithmeticShift, instructions.Byte, 0xaa, 2, true, false)
	test.Equate(t, r.Value, uint32(0xa8))
	test.Equate(t, r.Overflow, true)

	// no sign change at any step, no overflow
	r = alu.Shift(instructions.ArithmeticShift, instructions.Byte, 0x01, 1, true, false)
	test.Equate(t, r.Value, uint32(0x02))
	test.Equate(t, r.Overflow, false)

	// shifting everything out. once the operand is zero the sign stops
	// changing but the overflow from the early steps sticks
	r = alu.Shift(instructions.ArithmeticShift, instructions.Byte, 0xaa, 20, true, false)
	test.Equate(t, r.Value, uint32(0x00))
	test.Equate(t, r.Overflow, true)
	test.Equate(t, r.Carry, false)
}

func TestLogicalShift(t *testing.T) {
	r := alu.Shift(instructions.LogicalShift, instructions.Byte, 0xaa, 1, false, false)
	test.Equate(t, r.Value, uint32(0x55))
	test.Equate(t, r.Carry, false)
	test.Equate(t, r.Overflow, false)

	r = alu.Shift(instructions.LogicalShift, instructions.Byte, 0x55, 1, false, false)
	test.Equate(t, r.Value, uint32(0x2a))
	test.Equate(t, r.Carry, true)
	test.Equate(t, r.Extend, true)

	// a register sourced count can exceed the operand width, clearing the
	// operand entirely
	r = alu.Shift(instructions.LogicalShift, instructions.Long, 0xdeadbeef, 33, true, false)
	test.Equate(t, r.Value, uint32(0))
	test.Equate(t, r.Carry, false)
}

func TestRotateExtend(t *testing.T) {
	// with X clear a zero rotates into the low bit
	r := alu.Shift(instructions.RotateExtend, instructions.Byte, 0xaa, 1, true, false)
	test.Equate(t, r.Value, uint32(0x54))
	test.Equate(t, r.Carry, true)
	test.Equate(t, r.Extend, true)

	// with X set the low bit is filled
	r = alu.Shift(instructions.RotateExtend, instructions.Byte, 0xaa, 1, true, true)
	test.Equate(t, r.Value, uint32(0x55))
	test.Equate(t, r.Carry, true)
	test.Equate(t, r.Extend, true)

	// X sits inside the rotation: the period is the operand width plus one
	r = alu.Shift(instructions.RotateExtend, instructions.Byte, 0xaa, 9, true, false)
	test.Equate(t, r.Value, uint32(0xaa))
	test.Equate(t, r.Extend, false)

	// count of zero reports the current X as carry and changes nothing
	r = alu.Shift(instructions.RotateExtend, instructions.Byte, 0xaa, 0, true, true)
	test.Equate(t, r.Value, uint32(0xaa))
	test.Equate(t, r.Carry, true)
	test.Equate(t, r.Extend, true)
}

func TestRotate(t *testing.T) {
	r := alu.Shift(instructions.Rotate, instructions.Byte, 0x81, 1, true, false)
	test.Equate(t, r.Value, uint32(0x03))
	test.Equate(t, r.Carry, true)

	// plain rotates never touch X
	r = alu.Shift(instructions.Rotate, instructions.Byte, 0x81, 1, true, true)
	test.Equate(t, r.Value, uint32(0x03))
	test.Equate(t, r.Extend, true)
	r = alu.Shift(instructions.Rotate, instructions.Byte, 0x81, 1, false, false)
	test.Equate(t, r.Value, uint32(0xc0))
	test.Equate(t, r.Carry, true)
	test.Equate(t, r.Extend, false)

	// count of zero clears carry even if the value is "negative"
	r = alu.Shift(instructions.Rotate, instructions.Byte, 0x81, 0, true, false)
	test.Equate(t, r.Value, uint32(0x81))
	test.Equate(t, r.Carry, false)

	// a full rotation restores the value
	r = alu.Shift(instructions.Rotate, instructions.Word, 0xbeef, 16, true, false)
	test.Equate(t, r.Value, uint32(0xbeef))
}

func TestRotateRoundTrip(t *testing.T) {
	// rotating left then right by the same count restores the operand, for
	// any count and any width. the closing right rotation leaves carry as
	// the high bit of the restored value, except at count zero where carry
	// is always clear
	for _, sz := range []instructions.Size{instructions.Byte, instructions.Word, instructions.Long} {
		v := uint32(0x96a5c3d2) & sz.Mask()
		for count := 0; count < 40; count++ {
			l := alu.Shift(instructions.Rotate, sz, v, count, true, false)
			r := alu.Shift(instructions.Rotate, sz, l.Value, count, false, false)
			test.Equate(t, r.Value, v)
			if count == 0 {
				test.Equate(t, r.Carry, false)
			} else {
				test.Equate(t, r.Carry, v&sz.MSB() != 0)
			}
		}
	}
}

func TestShiftCountZero(t *testing.T) {
	// count zero leaves the value and X alone and clears carry and overflow
	// for everything except the extend rotates
	ops := []instructions.Operation{
		instructions.ArithmeticShift,
		instructions.LogicalShift,
		instructions.Rotate,
	}
	for _, op := range ops {
		r := alu.Shift(op, instructions.Word, 0x8000, 0, true, true)
		test.Equate(t, r.Value, uint32(0x8000))
		test.Equate(t, r.Carry, false)
		test.Equate(t, r.Overflow, false)
		test.Equate(t, r.Extend, true)
	}
}

func TestAddSub(t *testing.T) {
	r, c, v := alu.Add(0x7f, 0x01, instructions.Byte)
	test.Equate(t, r, uint32(0x80))
	test.Equate(t, c, false)
	test.Equate(t, v, true)

	r, c, v = alu.Add(0xff, 0x01, instructions.Byte)
	test.Equate(t, r, uint32(0x00))
	test.Equate(t, c, true)
	test.Equate(t, v, false)

	r, c, v = alu.Sub(0x00, 0x01, instructions.Word)
	test.Equate(t, r, uint32(0xffff))
	test.Equate(t, c, true)
	test.Equate(t, v, false)

	r, c, v = alu.Sub(0x8000, 0x0001, instructions.Word)
	test.Equate(t, r, uint32(0x7fff))
	test.Equate(t, c, false)
	test.Equate(t, v, true)

	n, z := alu.NegativeZero(0x8000, instructions.Word)
	test.Equate(t, n, true)
	test.Equate(t, z, false)
	n, z = alu.NegativeZero(0x10000, instructions.Word)
	test.Equate(t, n, false)
	test.Equate(t, z, true)
}
