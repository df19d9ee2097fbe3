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

// AddressingMode describes the method of memory addressing used by an
// instruction operand.
type AddressingMode int

// List of MC68000 addressing modes.
const (
	DataRegister    AddressingMode = iota // Dn
	AddressRegister                       // An
	Indirect                              // (An)
	PostIncrement                         // (An)+
	PreDecrement                          // -(An)
	Displacement                          // (d16,An)
	Index                                 // (d8,An,Xn)
	AbsoluteShort                         // (xxx).w
	AbsoluteLong                          // (xxx).l
	PCDisplacement                        // (d16,PC)
	PCIndex                               // (d8,PC,Xn)
	Immediate                             // #<data>
)

func (m AddressingMode) String() string {
	switch m {
	case DataRegister:
		return "Dn"
	case AddressRegister:
		return "An"
	case Indirect:
		return "(An)"
	case PostIncrement:
		return "(An)+"
	case PreDecrement:
		return "-(An)"
	case Displacement:
		return "(d16,An)"
	case Index:
		return "(d8,An,Xn)"
	case AbsoluteShort:
		return "(xxx).w"
	case AbsoluteLong:
		return "(xxx).l"
	case PCDisplacement:
		return "(d16,PC)"
	case PCIndex:
		return "(d8,PC,Xn)"
	case Immediate:
		return "#imm"
	}
	return "unknown addressing mode"
}

// decodeMode converts the 3 bit mode and register fields of an effective
// address specification into an AddressingMode. The returned boolean is false
// for the unassigned encodings in the mode 7 group.
func decodeMode(mode, reg uint16) (AddressingMode, bool) {
	switch mode {
	case 0:
		return DataRegister, true
	case 1:
		return AddressRegister, true
	case 2:
		return Indirect, true
	case 3:
		return PostIncrement, true
	case 4:
		return PreDecrement, true
	case 5:
		return Displacement, true
	case 6:
		return Index, true
	case 7:
		switch reg {
		case 0:
			return AbsoluteShort, true
		case 1:
			return AbsoluteLong, true
		case 2:
			return PCDisplacement, true
		case 3:
			return PCIndex, true
		case 4:
			return Immediate, true
		}
	}
	return DataRegister, false
}

// IsRegisterDirect returns true for the two register direct modes.
func (m AddressingMode) IsRegisterDirect() bool {
	return m == DataRegister || m == AddressRegister
}

// IsMemory returns true for modes that resolve to a memory address,
// including the PC relative modes.
func (m AddressingMode) IsMemory() bool {
	return !m.IsRegisterDirect() && m != Immediate
}

// IsControl returns true for the modes usable by control flow instructions
// (JMP, JSR, LEA). These are the memory modes with a single well defined
// address.
func (m AddressingMode) IsControl() bool {
	switch m {
	case Indirect, Displacement, Index, AbsoluteShort, AbsoluteLong, PCDisplacement, PCIndex:
		return true
	}
	return false
}

// IsAlterable returns true for modes that can be the destination of a write.
func (m AddressingMode) IsAlterable() bool {
	switch m {
	case PCDisplacement, PCIndex, Immediate:
		return false
	}
	return true
}

// IsDataAlterable returns true for alterable modes excluding address
// register direct.
func (m AddressingMode) IsDataAlterable() bool {
	return m.IsAlterable() && m != AddressRegister
}

// IsMemoryAlterable returns true for alterable memory modes. The single bit
// memory shift and rotate instructions are restricted to these.
func (m AddressingMode) IsMemoryAlterable() bool {
	return m.IsAlterable() && !m.IsRegisterDirect()
}
