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

package commandline_test

import (
	"testing"

	"github.com/quillon/gopher68k/curated"
	"github.com/quillon/gopher68k/debugger/terminal/commandline"
	"github.com/quillon/gopher68k/test"
)

func testCommands() *commandline.Commands {
	return commandline.NewCommands([]commandline.Command{
		{Name: "TICK", Template: "TICK [n]", Help: "advance the clock"},
		{Name: "STEP", Template: "STEP [n]", Help: "step instructions"},
		{Name: "REGISTERS", Template: "REGISTERS", Help: "show registers"},
		{Name: "RESET", Template: "RESET", Help: "reset the machine"},
		{Name: "QUIT", Template: "QUIT", Help: "leave the debugger"},
	})
}

func TestFind(t *testing.T) {
	cmds := testCommands()

	sel, err := cmds.Find("tick")
	test.ExpectedSuccess(t, err)
	test.Equate(t, sel.Command.Name, "TICK")

	// shortest unambiguous prefix with arguments
	sel, err = cmds.Find("s 10")
	test.ExpectedSuccess(t, err)
	test.Equate(t, sel.Command.Name, "STEP")
	test.Equate(t, len(sel.Args), 1)
	test.Equate(t, sel.Args[0], "10")

	// empty line selects nothing but is not an error
	sel, err = cmds.Find("")
	test.ExpectedSuccess(t, err)
	if sel.Command != nil {
		t.Errorf("empty input should not select a command")
	}
}

func TestFindErrors(t *testing.T) {
	cmds := testCommands()

	_, err := cmds.Find("re")
	test.ExpectedFailure(t, err)
	if !curated.Is(err, commandline.AmbiguousCommand) {
		t.Errorf("expected ambiguous command error")
	}

	_, err = cmds.Find("frobnicate")
	test.ExpectedFailure(t, err)
	if !curated.Is(err, commandline.UnknownCommand) {
		t.Errorf("expected unknown command error")
	}
}

func TestTabCompletion(t *testing.T) {
	cmds := testCommands()
	tc := commandline.NewTabCompletion(cmds)

	// unique prefix
	test.Equate(t, tc.Complete("q"), "QUIT ")

	// cycling through an ambiguous prefix
	tc.Reset()
	s := tc.Complete("re")
	test.Equate(t, s, "REGISTERS ")
	s = tc.Complete(s)
	test.Equate(t, s, "RESET ")
	s = tc.Complete(s)
	test.Equate(t, s, "REGISTERS ")

	// completion never touches a line that already has arguments
	tc.Reset()
	test.Equate(t, tc.Complete("step 10"), "step 10")
}
