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

package cpu_test

import (
	"strings"
	"testing"

	"github.com/quillon/gopher68k/curated"
	"github.com/quillon/gopher68k/hardware/cpu"
	"github.com/quillon/gopher68k/hardware/memory"
	"github.com/quillon/gopher68k/hardware/memory/bus"
	"github.com/quillon/gopher68k/logger"
	"github.com/quillon/gopher68k/test"
)

const (
	testSSP = 0x00080000
	testORG = 0x00001000
)

// setup builds a machine with the reset vectors pointing at testSSP and
// testORG and the program words in place, then runs the reset sequence,
// leaving the processor at the boundary of the first instruction. the
// program must be poked before Reset() because the tail of the reset
// sequence prefetches the first word.
func setup(t *testing.T, program ...uint16) (*cpu.CPU, *memory.Memory) {
	t.Helper()

	mem := memory.NewMemory()
	mem.PokeLong(cpu.VectorResetSSP*4, testSSP)
	mem.PokeLong(cpu.VectorResetPC*4, testORG)
	for i, w := range program {
		mem.PokeWord(testORG+uint32(i*2), w)
	}

	mc := cpu.NewCPU(mem, nil)
	mc.Reset()
	runToBoundary(t, mc)

	return mc, mem
}

// runToBoundary ticks the processor until it reaches an instruction
// boundary, returning the number of cycles that took.
func runToBoundary(t *testing.T, mc *cpu.CPU) int {
	t.Helper()

	n := 0
	for {
		if err := mc.Tick(); err != nil {
			t.Fatalf("unexpected tick error: %v", err)
		}
		n++
		if mc.AtBoundary() {
			return n
		}
		if n > 1000 {
			t.Fatalf("no instruction boundary after %d cycles", n)
		}
	}
}

func TestReset(t *testing.T) {
	mem := memory.NewMemory()
	mem.PokeLong(cpu.VectorResetSSP*4, 0x00080000)
	mem.PokeLong(cpu.VectorResetPC*4, 0x00f80008)
	mem.PokeWord(0xf80008, 0x4e71)

	mc := cpu.NewCPU(mem, nil)
	mc.Reset()
	n := runToBoundary(t, mc)
	test.Equate(t, n, 36)

	ssp, err := mc.PeekField("ssp")
	test.Equate(t, err, nil)
	test.Equate(t, ssp, uint32(0x00080000))
	test.Equate(t, mc.SR.Supervisor, true)
	test.Equate(t, mc.SR.InterruptMask, uint8(7))

	// the pipeline holds the first instruction
	test.Equate(t, mc.IRC, uint16(0x4e71))
	test.Equate(t, mc.PC.Value(), uint32(0x00f8000a))
}

func TestNop(t *testing.T) {
	mc, _ := setup(t, 0x4e71)
	test.Equate(t, runToBoundary(t, mc), 4)
}

func TestMoveq(t *testing.T) {
	mc, _ := setup(t, 0x70ff) // MOVEQ #-1,D0
	test.Equate(t, runToBoundary(t, mc), 4)
	test.Equate(t, mc.D[0].Value(), uint32(0xffffffff))
	test.Equate(t, mc.SR.Negative, true)
	test.Equate(t, mc.SR.Zero, false)
}

func TestShiftRegisterTiming(t *testing.T) {
	mc, _ := setup(t, 0xe74a) // LSL.W #3,D2
	mc.D[2].Load(0x00001234)

	// six cycles plus two per bit shifted
	test.Equate(t, runToBoundary(t, mc), 12)
	test.Equate(t, mc.D[2].Value(), uint32(0x000091a0))
	test.Equate(t, mc.SR.Carry, false)
	test.Equate(t, mc.SR.Negative, true)
}

func TestShiftMemory(t *testing.T) {
	// ROXL.W (A0) with X set
	mc, mem := setup(t, 0xe5d0)
	mc.A[0].Load(0x2000)
	mem.PokeWord(0x2000, 0x8000)
	mc.SR.Extend = true

	test.Equate(t, runToBoundary(t, mc), 12)
	v, _ := mem.Peek(0x2001)
	test.Equate(t, v, uint8(0x01))
	test.Equate(t, mc.SR.Carry, true)
	test.Equate(t, mc.SR.Extend, true)
}

func TestBranch(t *testing.T) {
	mc, mem := setup(t,
		0x7001, // MOVEQ #1,D0
		0x6604) // BNE.s +4
	mem.PokeWord(testORG+8, 0x4e71) // NOP at the target

	runToBoundary(t, mc)
	test.Equate(t, runToBoundary(t, mc), 10)
	test.Equate(t, mc.IRC, uint16(0x4e71))
	test.Equate(t, mc.PC.Value(), uint32(testORG+10))
}

func TestBranchNotTaken(t *testing.T) {
	mc, _ := setup(t,
		0x7001, // MOVEQ #1,D0
		0x6704, // BEQ.s +4, not taken
		0x6700, // BEQ.w, not taken
		0x0100)

	runToBoundary(t, mc)
	test.Equate(t, runToBoundary(t, mc), 8)

	// word displacement form costs more when not taken
	test.Equate(t, runToBoundary(t, mc), 12)
}

func TestMoveMemory(t *testing.T) {
	// MOVE.W $0f80.w,$0f82.w
	mc, mem := setup(t, 0x31f8, 0x0f80, 0x0f82)
	mem.PokeWord(0x0f80, 0x8001)

	test.Equate(t, runToBoundary(t, mc), 20)
	v, _ := mem.Peek(0x0f82)
	test.Equate(t, v, uint8(0x80))
	v, _ = mem.Peek(0x0f83)
	test.Equate(t, v, uint8(0x01))
	test.Equate(t, mc.SR.Negative, true)
}

func TestWaitStates(t *testing.T) {
	mc, mem := setup(t, 0x4e71)
	mem.WaitStates = 2

	// the prefetch pays the wait states like any other access
	test.Equate(t, runToBoundary(t, mc), 6)
}

func TestTrap(t *testing.T) {
	mc, mem := setup(t, 0x4e40) // TRAP #0
	mem.PokeLong(cpu.VectorTrap*4, 0x2000)
	mem.PokeWord(0x2000, 0x4e71)

	test.Equate(t, runToBoundary(t, mc), 34)
	test.Equate(t, mc.IRC, uint16(0x4e71))

	// the frame holds the pre-trap status register and the address of the
	// instruction after the trap
	a7 := mc.A[7].Value()
	test.Equate(t, a7, uint32(testSSP-6))
	hi, _ := mem.Peek(a7)
	lo, _ := mem.Peek(a7 + 1)
	test.Equate(t, uint16(hi)<<8|uint16(lo), uint16(0x2700))
	b3, _ := mem.Peek(a7 + 4)
	b4, _ := mem.Peek(a7 + 5)
	test.Equate(t, uint32(b3)<<8|uint32(b4), uint32(testORG+2))
}

func TestRte(t *testing.T) {
	mc, mem := setup(t,
		0x4e40, // TRAP #0
		0x4e71)
	mem.PokeLong(cpu.VectorTrap*4, 0x2000)
	mem.PokeWord(0x2000, 0x4e73) // RTE

	runToBoundary(t, mc)
	test.Equate(t, runToBoundary(t, mc), 20)

	// back at the instruction after the trap, stack restored
	test.Equate(t, mc.IRC, uint16(0x4e71))
	test.Equate(t, mc.A[7].Value(), uint32(testSSP))
	test.Equate(t, mc.SR.Value(), uint16(0x2700))
}

func TestPrivilegeViolation(t *testing.T) {
	mc, mem := setup(t,
		0x7000, // MOVEQ #0,D0
		0x46c0, // MOVE D0,SR -> user mode
		0x46c0) // MOVE D0,SR again, now privileged
	mem.PokeLong(cpu.VectorPrivilege*4, 0x2000)
	mem.PokeWord(0x2000, 0x4e71)

	runToBoundary(t, mc)
	runToBoundary(t, mc)
	test.Equate(t, mc.SR.Supervisor, false)

	// dropping out of supervisor mode swapped the stack pointers
	ssp, _ := mc.PeekField("ssp")
	test.Equate(t, ssp, uint32(testSSP))

	runToBoundary(t, mc)
	test.Equate(t, mc.SR.Supervisor, true)
	test.Equate(t, mc.IRC, uint16(0x4e71))
}

func TestIllegalInstruction(t *testing.T) {
	mc, mem := setup(t, 0x4afc)
	mem.PokeLong(cpu.VectorIllegal*4, 0x2000)
	mem.PokeWord(0x2000, 0x4e71)

	test.Equate(t, runToBoundary(t, mc), 34)
	test.Equate(t, mc.IRC, uint16(0x4e71))

	// an undefined pattern takes the same vector
	mc2, mem2 := setup(t, 0x0c3c) // CMPI with a CCR-form address: undefined
	mem2.PokeLong(cpu.VectorIllegal*4, 0x2000)
	runToBoundary(t, mc2)
	pc, _ := mc2.PeekField("pc")
	test.Equate(t, pc, uint32(0x2002))
}

func TestLineATrap(t *testing.T) {
	mc, mem := setup(t, 0xa123)
	mem.PokeLong(cpu.VectorLineA*4, 0x2000)
	mem.PokeWord(0x2000, 0x4e71)

	runToBoundary(t, mc)
	test.Equate(t, mc.IRC, uint16(0x4e71))
}

func TestNotImplemented(t *testing.T) {
	mc, _ := setup(t, 0x5240) // ADDQ #1,D0: real but unsupported

	err := mc.Tick()
	if !curated.Is(err, cpu.NotImplemented) {
		t.Fatalf("expected a not-implemented error, got %v", err)
	}

	// nothing changed; the condition repeats
	test.Equate(t, mc.D[0].Value(), uint32(0))
	err = mc.Tick()
	if !curated.Is(err, cpu.NotImplemented) {
		t.Fatalf("expected a not-implemented error, got %v", err)
	}
}

func TestAddressError(t *testing.T) {
	// MOVE.W $0f81.w,D0: word read of an odd address
	mc, mem := setup(t, 0x3038, 0x0f81)
	mem.PokeLong(cpu.VectorAddressError*4, 0x2000)
	mem.PokeWord(0x2000, 0x4e71)

	runToBoundary(t, mc)
	test.Equate(t, mc.IRC, uint16(0x4e71))

	// the seven word fault frame
	a7 := mc.A[7].Value()
	test.Equate(t, a7, uint32(testSSP-14))

	peekWord := func(addr uint32) uint16 {
		hi, _ := mem.Peek(addr)
		lo, _ := mem.Peek(addr + 1)
		return uint16(hi)<<8 | uint16(lo)
	}

	// access info: a read in supervisor data space
	test.Equate(t, peekWord(a7), uint16(0x0015))
	// faulting address
	test.Equate(t, peekWord(a7+2), uint16(0x0000))
	test.Equate(t, peekWord(a7+4), uint16(0x0f81))
	// instruction register
	test.Equate(t, peekWord(a7+6), uint16(0x3038))
	// program counter of the faulting instruction
	test.Equate(t, peekWord(a7+10), uint16(0x0000))
	test.Equate(t, peekWord(a7+12), uint16(testORG))
}

func TestDoubleFaultHalts(t *testing.T) {
	mem := memory.NewMemory()
	mem.PokeLong(cpu.VectorResetSSP*4, 0x00001000) // stack inside the fault range
	mem.PokeLong(cpu.VectorResetPC*4, 0x00002000)
	mem.PokeWord(0x2000, 0x3038) // MOVE.W $0f80.w,D0
	mem.PokeWord(0x2002, 0x0f80)
	mem.SetFaultRange(0x0f00, 0x1000)

	mc := cpu.NewCPU(mem, nil)
	mc.Reset()
	runToBoundary(t, mc)

	var err error
	for i := 0; i < 100; i++ {
		err = mc.Tick()
		if err != nil {
			break
		}
	}
	if !curated.Is(err, cpu.ProcessorHalted) {
		t.Fatalf("expected a halted error, got %v", err)
	}
	test.Equate(t, mc.Halted, true)

	// halted is terminal until reset
	if !curated.Is(mc.Tick(), cpu.ProcessorHalted) {
		t.Fatal("expected the halt to be terminal")
	}
	mem.SetFaultRange(0, 0)
	mem.PokeLong(cpu.VectorResetSSP*4, 0x00080000)
	mc.Reset()
	runToBoundary(t, mc)
	test.Equate(t, mc.Halted, false)
}

func TestInterrupt(t *testing.T) {
	mc, mem := setup(t, 0x4e71, 0x4e71)
	mem.PokeLong((cpu.VectorAutovector+2)*4, 0x3000)
	mem.PokeWord(0x3000, 0x4e71)

	runToBoundary(t, mc)
	mem.RaiseInterrupt(2, bus.AutoVector)

	// level two is below the reset mask of seven: nothing happens
	runToBoundary(t, mc)
	test.Equate(t, mc.IRC, uint16(0x0000))

	// lower the mask and raise it again
	mc.SR.InterruptMask = 0
	mem.RaiseInterrupt(2, bus.AutoVector)
	test.Equate(t, runToBoundary(t, mc), 40)
	test.Equate(t, mc.IRC, uint16(0x4e71))
	test.Equate(t, mc.SR.InterruptMask, uint8(2))
	test.Equate(t, mc.SR.Supervisor, true)
}

func TestStopAndWake(t *testing.T) {
	mc, mem := setup(t,
		0x4e72, // STOP #$2000
		0x2000)
	mem.PokeLong((cpu.VectorAutovector+3)*4, 0x3000)
	mem.PokeWord(0x3000, 0x4e71)

	test.Equate(t, runToBoundary(t, mc), 8)
	test.Equate(t, mc.Stopped, true)
	test.Equate(t, mc.SR.Value(), uint16(0x2000))

	// the stopped processor burns cycles without doing anything
	for i := 0; i < 10; i++ {
		test.Equate(t, mc.Tick(), nil)
	}
	test.Equate(t, mc.Stopped, true)

	mem.RaiseInterrupt(3, bus.AutoVector)
	runToBoundary(t, mc)
	test.Equate(t, mc.Stopped, false)
	test.Equate(t, mc.IRC, uint16(0x4e71))
}

func TestTrace(t *testing.T) {
	mc, mem := setup(t, 0x4e71, 0x4e71)
	mem.PokeLong(cpu.VectorTrace*4, 0x2000)
	mem.PokeWord(0x2000, 0x4e71)

	mc.SR.Trace = true

	// the traced instruction runs to completion first
	runToBoundary(t, mc)
	test.Equate(t, mc.PC.Value(), uint32(testORG+4))

	// then the trace exception fires, with the trace bit cleared in the
	// handler
	runToBoundary(t, mc)
	test.Equate(t, mc.IRC, uint16(0x4e71))
	test.Equate(t, mc.SR.Trace, false)

	pc, _ := mc.PeekField("pc")
	test.Equate(t, pc, uint32(0x2002))
}

func TestPreferencesDrainLimit(t *testing.T) {
	mem := memory.NewMemory()
	mem.PokeLong(cpu.VectorResetSSP*4, testSSP)
	mem.PokeLong(cpu.VectorResetPC*4, testORG)
	mem.PokeWord(testORG, 0x31f8) // MOVE.W $0f80.w,$0f82.w
	mem.PokeWord(testORG+2, 0x0f80)
	mem.PokeWord(testORG+4, 0x0f82)

	// a limit this small trips on the instant chain of a legitimate
	// instruction builder
	mc := cpu.NewCPU(mem, &cpu.Preferences{DrainLimit: 1})
	mc.Reset()

	var err error
	for i := 0; i < 100; i++ {
		if err = mc.Tick(); err != nil {
			break
		}
	}
	test.ExpectedFailure(t, err)
	if !strings.Contains(err.Error(), "runaway") {
		t.Fatalf("expected a runaway chain error, got %v", err)
	}
}

func TestPreferencesLogUnimplemented(t *testing.T) {
	logger.Clear()

	mem := memory.NewMemory()
	mem.PokeLong(cpu.VectorResetSSP*4, testSSP)
	mem.PokeLong(cpu.VectorResetPC*4, testORG)
	mem.PokeWord(testORG, 0x5240) // ADDQ #1,D0: real but unsupported

	mc := cpu.NewCPU(mem, &cpu.Preferences{LogUnimplemented: true})
	mc.Reset()
	runToBoundary(t, mc)

	// the condition repeats but is logged once
	test.ExpectedFailure(t, mc.Tick())
	test.ExpectedFailure(t, mc.Tick())

	logger.BorrowLog(func(entries []logger.Entry) {
		n := 0
		for i := range entries {
			if strings.Contains(entries[i].String(), "unsupported instruction") {
				n++
			}
		}
		test.Equate(t, n, 1)
	})
}

func TestPeekFields(t *testing.T) {
	mc, _ := setup(t)
	mc.D[3].Load(0xcafe0000)

	v, err := mc.PeekField("D3")
	test.Equate(t, err, nil)
	test.Equate(t, v, uint32(0xcafe0000))

	_, err = mc.PeekField("d9")
	if !curated.Is(err, cpu.UnknownField) {
		t.Fatalf("expected an unknown field error, got %v", err)
	}

	vs, err := mc.PeekFields("sr", "ccr")
	test.Equate(t, err, nil)
	test.Equate(t, vs[0], uint32(0x2700))
	test.Equate(t, vs[1], uint32(0x00))
}

func TestPeekFieldNames(t *testing.T) {
	mc, _ := setup(t, 0x70ff) // MOVEQ #-1,D0
	runToBoundary(t, mc)

	// every advertised name resolves
	names := cpu.PeekFieldNames()
	test.Equate(t, len(names), 34)
	for _, name := range names {
		if _, err := mc.PeekField(name); err != nil {
			t.Fatalf("advertised field %q does not peek: %v", name, err)
		}
	}

	// the status bits report as 0 or 1
	v, _ := mc.PeekField("n")
	test.Equate(t, v, uint32(1))
	v, _ = mc.PeekField("z")
	test.Equate(t, v, uint32(0))
	v, _ = mc.PeekField("s")
	test.Equate(t, v, uint32(1))
	v, _ = mc.PeekField("imask")
	test.Equate(t, v, uint32(7))
	v, _ = mc.PeekField("halted")
	test.Equate(t, v, uint32(0))
	v, _ = mc.PeekField("stopped")
	test.Equate(t, v, uint32(0))

	// reset is 36 cycles plus the four of the MOVEQ
	v, _ = mc.PeekField("cycles")
	test.Equate(t, v, uint32(40))
}
