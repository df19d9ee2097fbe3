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

package debugger

import (
	"io"
	"strings"
	"testing"

	"github.com/quillon/gopher68k/debugger/terminal"
	"github.com/quillon/gopher68k/test"
)

// mockTerm records anything printed to it and never offers any input.
type mockTerm struct {
	output []string
}

func (mt *mockTerm) Initialise() error                            { return nil }
func (mt *mockTerm) CleanUp()                                     {}
func (mt *mockTerm) RegisterTabCompletion(terminal.TabCompletion) {}
func (mt *mockTerm) Silence(bool)                                 {}
func (mt *mockTerm) TermReadCheck() bool                          { return false }
func (mt *mockTerm) IsInteractive() bool                          { return false }

func (mt *mockTerm) TermRead([]byte, terminal.Prompt, *terminal.ReadEvents) (int, error) {
	return 0, io.EOF
}

func (mt *mockTerm) TermPrintLine(style terminal.Style, s string) {
	mt.output = append(mt.output, s)
}

func (mt *mockTerm) contains(sub string) bool {
	for _, s := range mt.output {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func setup(t *testing.T) (*Debugger, *mockTerm) {
	t.Helper()

	mt := &mockTerm{}
	dbg := NewDebugger(mt)

	// reset vectors: supervisor stack at 0x8000, program at 0x1000
	for _, cmd := range []string{
		"POKE 0 0 0 80 0",
		"POKE 4 0 0 10 0",
		"POKE 1000 4e 71 4e 71",
		"RESET",
	} {
		if err := dbg.processInput(cmd); err != nil {
			t.Fatalf("%s: %v", cmd, err)
		}
	}

	return dbg, mt
}

func TestCommandStep(t *testing.T) {
	dbg, _ := setup(t)

	err := dbg.processInput("STEP")
	test.ExpectedSuccess(t, err)

	pc, err := dbg.mc.PeekField("pc")
	test.ExpectedSuccess(t, err)
	test.Equate(t, pc, uint32(0x1004))

	// reset sequence plus one NOP
	test.Equate(t, dbg.mc.Cycles, uint64(40))
}

func TestCommandPrefix(t *testing.T) {
	dbg, _ := setup(t)

	// "s" is an unambiguous prefix of STEP
	err := dbg.processInput("s 2")
	test.ExpectedSuccess(t, err)
	test.Equate(t, dbg.mc.Cycles, uint64(44))

	// "r" is not
	err = dbg.processInput("r")
	test.ExpectedFailure(t, err)
}

func TestCommandMem(t *testing.T) {
	dbg, mt := setup(t)

	err := dbg.processInput("MEM 1000 4")
	test.ExpectedSuccess(t, err)
	if !mt.contains("4e 71 4e 71") {
		t.Errorf("MEM dump does not show poked memory")
	}
}

func TestCommandPeek(t *testing.T) {
	dbg, mt := setup(t)

	err := dbg.processInput("PEEK ssp pc")
	test.ExpectedSuccess(t, err)
	if !mt.contains("ssp=00008000") {
		t.Errorf("PEEK does not show the supervisor stack pointer")
	}

	err = dbg.processInput("PEEK xyzzy")
	test.ExpectedFailure(t, err)

	// a bare PEEK lists the valid names
	err = dbg.processInput("PEEK")
	test.ExpectedSuccess(t, err)
	if !mt.contains("imask") || !mt.contains("cycles") {
		t.Errorf("PEEK does not list the valid field names")
	}
}

func TestCommandQuit(t *testing.T) {
	dbg, _ := setup(t)

	dbg.running = true
	err := dbg.processInput("QUIT")
	test.ExpectedSuccess(t, err)
	test.Equate(t, dbg.running, false)
}
