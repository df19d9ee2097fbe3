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

package verification

import (
	"fmt"
	"strings"

	"github.com/quillon/gopher68k/hardware/cpu"
	"github.com/quillon/gopher68k/hardware/memory"
	"github.com/quillon/gopher68k/hardware/memory/bus"
	"github.com/quillon/gopher68k/logger"
)

// Report is the outcome of running one verification case. a behaviour
// mismatch is not an error: errors are reserved for cases that could not be
// run at all.
type Report struct {
	Name       string
	Mismatches []string
}

// Passed returns true if the case ran without any behaviour mismatch.
func (r Report) Passed() bool {
	return len(r.Mismatches) == 0
}

func (r Report) String() string {
	if r.Passed() {
		return fmt.Sprintf("%s: ok", r.Name)
	}
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %d mismatches", r.Name, len(r.Mismatches)))
	for _, m := range r.Mismatches {
		s.WriteString("\n\t")
		s.WriteString(m)
	}
	return s.String()
}

// traceBus wraps the flat memory implementation and records every access
// the processor makes, stamped with the cycle it completed on.
type traceBus struct {
	mem   *memory.Memory
	mc    *cpu.CPU
	trace []BusAccess
}

func (tb *traceBus) record(flags uint8, address uint32, data uint16) {
	tb.trace = append(tb.trace, BusAccess{
		Cycle:   uint32(tb.mc.Cycles),
		Flags:   flags,
		Address: address,
		Data:    data,
	})
}

func (tb *traceBus) ReadByte(address uint32, fc bus.FunctionCode) (uint8, int, error) {
	v, wait, err := tb.mem.ReadByte(address, fc)
	if err == nil {
		tb.record(uint8(fc)&FlagFCMask, address, uint16(v))
	}
	return v, wait, err
}

func (tb *traceBus) ReadWord(address uint32, fc bus.FunctionCode) (uint16, int, error) {
	v, wait, err := tb.mem.ReadWord(address, fc)
	if err == nil {
		tb.record(uint8(fc)&FlagFCMask, address, v)
	}
	return v, wait, err
}

func (tb *traceBus) WriteByte(address uint32, data uint8, fc bus.FunctionCode) (int, error) {
	wait, err := tb.mem.WriteByte(address, data, fc)
	if err == nil {
		tb.record(FlagWrite|(uint8(fc)&FlagFCMask), address, uint16(data))
	}
	return wait, err
}

func (tb *traceBus) WriteWord(address uint32, data uint16, fc bus.FunctionCode) (int, error) {
	wait, err := tb.mem.WriteWord(address, data, fc)
	if err == nil {
		tb.record(FlagWrite|(uint8(fc)&FlagFCMask), address, data)
	}
	return wait, err
}

func (tb *traceBus) InterruptLevel() int {
	return tb.mem.InterruptLevel()
}

func (tb *traceBus) InterruptAcknowledge(level int) (int, int, error) {
	return tb.mem.InterruptAcknowledge(level)
}

func (tb *traceBus) Reset() {
	tb.mem.Reset()
}

// Run executes one verification case and compares the outcome against the
// case's expectations.
func Run(c Case) (Report, error) {
	rep := Report{Name: c.Name}

	mem := memory.NewMemory()
	for _, p := range c.InitialMemory {
		for i, b := range p.Data {
			if err := mem.Poke(p.Address+uint32(i), b); err != nil {
				return rep, err
			}
		}
	}

	tb := &traceBus{mem: mem}
	mc := cpu.NewCPU(tb, nil)
	tb.mc = mc

	loadRegisters(mc, c.Initial)

	// fill the prefetch pipeline from the starting program counter, then
	// discard the traffic it generated. the case's bus trace and cycle
	// budget start with the first instruction
	if err := mc.Jump(c.Initial.PC); err != nil {
		return rep, err
	}
	for !mc.AtBoundary() {
		if err := mc.Tick(); err != nil {
			return rep, err
		}
	}
	tb.trace = tb.trace[:0]
	mc.Cycles = 0

	for i := uint32(0); i < c.CycleBudget; i++ {
		if err := mc.Tick(); err != nil {
			// an unsupported instruction is a mismatch against the fixture,
			// not a harness failure
			rep.Mismatches = append(rep.Mismatches, fmt.Sprintf("cycle %d: %v", i+1, err))
			break
		}
	}

	compareRegisters(&rep, mc, c.Final)
	compareMemory(&rep, mem, c.FinalMemory)
	compareTrace(&rep, tb.trace, c.BusTrace)

	logger.Logf(logger.Allow, "verification", "%s", rep.String())

	return rep, nil
}

// RunAll executes every case in a fixture.
func RunAll(f Fixture) ([]Report, error) {
	reports := make([]Report, 0, len(f.Cases))
	for _, c := range f.Cases {
		rep, err := Run(c)
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func loadRegisters(mc *cpu.CPU, rs RegisterState) {
	for i := range rs.D {
		mc.D[i].Load(rs.D[i])
	}
	for i := range rs.A {
		mc.A[i].Load(rs.A[i])
	}

	mc.SR.Load(rs.SR)
	if mc.SR.Supervisor {
		mc.A[7].Load(rs.SSP)
		mc.USP.Load(rs.USP)
	} else {
		mc.A[7].Load(rs.USP)
		mc.SSP.Load(rs.SSP)
	}
	mc.PC.Load(rs.PC)
}

func compareRegisters(rep *Report, mc *cpu.CPU, want RegisterState) {
	mismatch := func(name string, got uint32, want uint32) {
		rep.Mismatches = append(rep.Mismatches,
			fmt.Sprintf("%s: got %08x, want %08x", name, got, want))
	}

	for i := range want.D {
		if mc.D[i].Value() != want.D[i] {
			mismatch(fmt.Sprintf("D%d", i), mc.D[i].Value(), want.D[i])
		}
	}
	for i := range want.A {
		if mc.A[i].Value() != want.A[i] {
			mismatch(fmt.Sprintf("A%d", i), mc.A[i].Value(), want.A[i])
		}
	}

	fields := []struct {
		name string
		want uint32
	}{
		{"usp", want.USP},
		{"ssp", want.SSP},
		{"pc", want.PC},
		{"sr", uint32(want.SR)},
	}
	for _, f := range fields {
		got, _ := mc.PeekField(f.name)
		if got != f.want {
			mismatch(f.name, got, f.want)
		}
	}
}

func compareMemory(rep *Report, mem *memory.Memory, patches []MemoryPatch) {
	for _, p := range patches {
		for i, want := range p.Data {
			addr := p.Address + uint32(i)
			got, err := mem.Peek(addr)
			if err != nil || got != want {
				rep.Mismatches = append(rep.Mismatches,
					fmt.Sprintf("memory %06x: got %02x, want %02x", addr, got, want))
			}
		}
	}
}

func compareTrace(rep *Report, got []BusAccess, want []BusAccess) {
	if len(got) != len(want) {
		rep.Mismatches = append(rep.Mismatches,
			fmt.Sprintf("bus trace: got %d accesses, want %d", len(got), len(want)))
		return
	}
	for i := range want {
		if got[i] != want[i] {
			rep.Mismatches = append(rep.Mismatches,
				fmt.Sprintf("bus access %d: got %+v, want %+v", i, got[i], want[i]))
		}
	}
}
