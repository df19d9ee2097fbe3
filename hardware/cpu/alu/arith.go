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

// Add returns a+b truncated to size, along with the carry and overflow
// conditions at that width.
func Add(a, b uint32, size instructions.Size) (uint32, bool, bool) {
	mask := size.Mask()
	msb := size.MSB()
	a &= mask
	b &= mask

	sum := uint64(a) + uint64(b)
	result := uint32(sum) & mask

	carry := sum > uint64(mask)
	overflow := (a^result)&(b^result)&msb != 0

	return result, carry, overflow
}

// Sub returns a-b truncated to size, along with the borrow and overflow
// conditions at that width. note the operand order: a is the destination, b
// the value being subtracted from it.
func Sub(a, b uint32, size instructions.Size) (uint32, bool, bool) {
	mask := size.Mask()
	msb := size.MSB()
	a &= mask
	b &= mask

	result := (a - b) & mask

	borrow := b > a
	overflow := (a^b)&(a^result)&msb != 0

	return result, borrow, overflow
}

// NegativeZero returns the negative and zero conditions for a value at the
// given width.
func NegativeZero(value uint32, size instructions.Size) (bool, bool) {
	value &= size.Mask()
	return value&size.MSB() != 0, value == 0
}
