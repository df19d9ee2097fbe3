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

import "fmt"

// Operation is the closed enumeration of operation kinds produced by
// Decode().
type Operation int

// List of operations.
const (
	ArithmeticShift Operation = iota // ASL / ASR
	LogicalShift                     // LSL / LSR
	RotateExtend                     // ROXL / ROXR
	Rotate                           // ROL / ROR
	Move                             // MOVE / MOVEA
	Moveq
	Clr
	Not
	Neg
	Tst
	Lea
	Swap
	Exg
	Add
	Sub
	Cmp
	And
	Or
	Eor
	Addi
	Subi
	Cmpi
	Andi
	Ori
	Eori
	AndiToCCR
	AndiToSR
	OriToCCR
	OriToSR
	EoriToCCR
	EoriToSR
	MoveToCCR
	MoveToSR
	MoveFromSR
	MoveUSP
	Branch // Bcc / BRA / BSR
	Jmp
	Jsr
	Rts
	Rte
	Nop
	Stop
	Reset
	Trap
	Trapv
	Illegal // the explicit ILLEGAL opcode, 0x4afc
)

func (op Operation) String() string {
	switch op {
	case ArithmeticShift:
		return "ASd"
	case LogicalShift:
		return "LSd"
	case RotateExtend:
		return "ROXd"
	case Rotate:
		return "ROd"
	case Move:
		return "MOVE"
	case Moveq:
		return "MOVEQ"
	case Clr:
		return "CLR"
	case Not:
		return "NOT"
	case Neg:
		return "NEG"
	case Tst:
		return "TST"
	case Lea:
		return "LEA"
	case Swap:
		return "SWAP"
	case Exg:
		return "EXG"
	case Add:
		return "ADD"
	case Sub:
		return "SUB"
	case Cmp:
		return "CMP"
	case And:
		return "AND"
	case Or:
		return "OR"
	case Eor:
		return "EOR"
	case Addi:
		return "ADDI"
	case Subi:
		return "SUBI"
	case Cmpi:
		return "CMPI"
	case Andi:
		return "ANDI"
	case Ori:
		return "ORI"
	case Eori:
		return "EORI"
	case AndiToCCR:
		return "ANDI to CCR"
	case AndiToSR:
		return "ANDI to SR"
	case OriToCCR:
		return "ORI to CCR"
	case OriToSR:
		return "ORI to SR"
	case EoriToCCR:
		return "EORI to CCR"
	case EoriToSR:
		return "EORI to SR"
	case MoveToCCR:
		return "MOVE to CCR"
	case MoveToSR:
		return "MOVE to SR"
	case MoveFromSR:
		return "MOVE from SR"
	case MoveUSP:
		return "MOVE USP"
	case Branch:
		return "Bcc"
	case Jmp:
		return "JMP"
	case Jsr:
		return "JSR"
	case Rts:
		return "RTS"
	case Rte:
		return "RTE"
	case Nop:
		return "NOP"
	case Stop:
		return "STOP"
	case Reset:
		return "RESET"
	case Trap:
		return "TRAP"
	case Trapv:
		return "TRAPV"
	case Illegal:
		return "ILLEGAL"
	}
	return "unknown operation"
}

// Class says what kind of bit pattern Decode() was given.
type Class int

// List of decode classes.
const (
	// a recognised, implemented instruction.
	Decoded Class = iota

	// a pattern with no meaning on the MC68000. raises the illegal
	// instruction exception.
	Undefined

	// the two emulator trap regions, each with its own exception vector.
	LineA
	LineF

	// a valid MC68000 instruction that this emulation does not support. the
	// cpu package reports these explicitly rather than treating them as
	// illegal.
	Unimplemented
)

func (c Class) String() string {
	switch c {
	case Decoded:
		return "decoded"
	case Undefined:
		return "undefined"
	case LineA:
		return "line-a"
	case LineF:
		return "line-f"
	case Unimplemented:
		return "unimplemented"
	}
	return "unknown class"
}

// Definition is the result of decoding one 16 bit opcode.
type Definition struct {
	Opcode uint16
	Class  Class

	Operation Operation
	Size      Size

	// (source) effective address
	Mode     AddressingMode
	Register int

	// destination effective address. only used by Move
	DestMode     AddressingMode
	DestRegister int

	// shift/rotate fields. Count is the immediate count (1-8) or the number
	// of the data register holding the count
	Left              bool
	CountFromRegister bool
	Count             int

	// branch condition field (0 = BRA, 1 = BSR)
	Condition int

	// operation specific payload: MOVEQ data, TRAP vector, branch
	// displacement byte, EXG opmode, MOVE USP direction
	Data int
}

// conditionMnemonics for the 16 branch condition codes. codes 0 and 1 encode
// BRA and BSR in the Bcc opcode space.
var conditionMnemonics = [16]string{
	"RA", "SR", "HI", "LS", "CC", "CS", "NE", "EQ",
	"VC", "VS", "PL", "MI", "GE", "LT", "GT", "LE",
}

// String returns a single instruction definition as a string.
func (def Definition) String() string {
	switch def.Class {
	case Undefined:
		return fmt.Sprintf("%04x undefined", def.Opcode)
	case LineA:
		return fmt.Sprintf("%04x line-a", def.Opcode)
	case LineF:
		return fmt.Sprintf("%04x line-f", def.Opcode)
	case Unimplemented:
		return fmt.Sprintf("%04x unimplemented", def.Opcode)
	}

	if def.Operation == Branch {
		return fmt.Sprintf("%04x B%s", def.Opcode, conditionMnemonics[def.Condition])
	}

	return fmt.Sprintf("%04x %s%s [mode=%s]", def.Opcode, def.Operation, def.Size, def.Mode)
}
