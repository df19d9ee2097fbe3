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

package alu

import (
	"github.com/quillon/gopher68k/hardware/cpu/instructions"
)

// ShiftResult is the outcome of one operation from the shift and rotate
// family. Extend is the value the X flag should take afterwards; for the
// plain rotates, which never touch X, it is the value that was passed in.
type ShiftResult struct {
	Value    uint32
	Carry    bool
	Overflow bool
	Extend   bool
}

// Shift performs one operation from the shift and rotate family: ASL/ASR,
// LSL/LSR, ROXL/ROXR or ROL/ROR, selected by op and left. count must already
// be normalised (immediate counts are 1 to 8, register counts are modulo 64;
// both are the caller's business).
//
// flag behaviour for a count of zero follows the hardware: carry is cleared
// except for the extend rotates, which report the current X; overflow is
// cleared; X is left alone by every operation.
func Shift(op instructions.Operation, size instructions.Size, value uint32, count int, left bool, extend bool) ShiftResult {
	mask := size.Mask()
	msb := size.MSB()

	res := ShiftResult{
		Value:  value & mask,
		Extend: extend,
	}

	if count == 0 {
		if op == instructions.RotateExtend {
			res.Carry = extend
		}
		return res
	}

	for i := 0; i < count; i++ {
		switch op {
		case instructions.ArithmeticShift:
			if left {
				out := res.Value&msb != 0
				res.Value = (res.Value << 1) & mask
				res.Carry = out
				res.Extend = out

				// overflow accumulates: set if the sign bit changes at any
				// point during the shift
				if out != (res.Value&msb != 0) {
					res.Overflow = true
				}
			} else {
				out := res.Value&0x1 != 0
				res.Value = (res.Value >> 1) | (res.Value & msb)
				res.Carry = out
				res.Extend = out
			}

		case instructions.LogicalShift:
			if left {
				out := res.Value&msb != 0
				res.Value = (res.Value << 1) & mask
				res.Carry = out
				res.Extend = out
			} else {
				out := res.Value&0x1 != 0
				res.Value >>= 1
				res.Carry = out
				res.Extend = out
			}

		case instructions.RotateExtend:
			// the X flag sits inside the rotation so the period is one
			// longer than the operand width
			if left {
				out := res.Value&msb != 0
				res.Value = (res.Value << 1) & mask
				if res.Extend {
					res.Value |= 0x1
				}
				res.Carry = out
				res.Extend = out
			} else {
				out := res.Value&0x1 != 0
				res.Value >>= 1
				if res.Extend {
					res.Value |= msb
				}
				res.Carry = out
				res.Extend = out
			}

		case instructions.Rotate:
			if left {
				out := res.Value&msb != 0
				res.Value = (res.Value << 1) & mask
				if out {
					res.Value |= 0x1
				}
				res.Carry = out
			} else {
				out := res.Value&0x1 != 0
				res.Value >>= 1
				if out {
					res.Value |= msb
				}
				res.Carry = out
			}
		}
	}

	return res
}
