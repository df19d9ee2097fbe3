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

package instructions

// Size is the operand size of an instruction.
type Size int

// The three operand sizes of the MC68000.
const (
	Byte Size = iota
	Word
	Long
)

func (s Size) String() string {
	switch s {
	case Byte:
		return ".b"
	case Word:
		return ".w"
	case Long:
		return ".l"
	}
	return ".?"
}

// Bits returns the number of bits in an operand of this size.
func (s Size) Bits() int {
	switch s {
	case Byte:
		return 8
	case Word:
		return 16
	}
	return 32
}

// Bytes returns the number of bytes in an operand of this size.
func (s Size) Bytes() uint32 {
	switch s {
	case Byte:
		return 1
	case Word:
		return 2
	}
	return 4
}

// Mask returns the mask covering an operand of this size.
func (s Size) Mask() uint32 {
	switch s {
	case Byte:
		return 0x000000ff
	case Word:
		return 0x0000ffff
	}
	return 0xffffffff
}

// MSB returns the mask for the most significant bit of an operand of this
// size.
func (s Size) MSB() uint32 {
	switch s {
	case Byte:
		return 0x00000080
	case Word:
		return 0x00008000
	}
	return 0x80000000
}

// SignExtend widens a value of this size to 32 bits, propagating the sign
// bit.
func (s Size) SignExtend(v uint32) uint32 {
	v &= s.Mask()
	if v&s.MSB() != 0 {
		v |= ^s.Mask()
	}
	return v
}
