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

package modalflag_test

import (
	"os"
	"testing"

	"github.com/quillon/gopher68k/modalflag"
	"github.com/quillon/gopher68k/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.Equate(t, p, modalflag.ParseContinue)
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Mode(), "")
	test.Equate(t, md.Path(), "")
}

func TestFlags(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{"-verbose", "fixture.bin"})
	verbose := md.AddBool("verbose", false, "print additional messages")

	p, err := md.Parse()
	test.Equate(t, p, modalflag.ParseContinue)
	test.ExpectedSuccess(t, err)
	test.Equate(t, *verbose, true)
	test.Equate(t, len(md.RemainingArgs()), 1)
	test.Equate(t, md.GetArg(0), "fixture.bin")
}

func TestSubModes(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{"debug"})
	md.AddSubModes("run", "debug", "verify")

	p, err := md.Parse()
	test.Equate(t, p, modalflag.ParseContinue)
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Mode(), "DEBUG")
}

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{"program.bin"})
	md.AddSubModes("run", "debug", "verify")

	p, err := md.Parse()
	test.Equate(t, p, modalflag.ParseContinue)
	test.ExpectedSuccess(t, err)

	// first listed sub-mode is the default
	test.Equate(t, md.Mode(), "RUN")
	test.Equate(t, md.GetArg(0), "program.bin")
}

func TestChainedModes(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{"run", "-ticks", "100", "program.bin"})
	md.AddSubModes("run", "debug")

	p, err := md.Parse()
	test.Equate(t, p, modalflag.ParseContinue)
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Mode(), "RUN")

	md.NewMode()
	ticks := md.AddInt("ticks", -1, "number of ticks to run for")

	p, err = md.Parse()
	test.Equate(t, p, modalflag.ParseContinue)
	test.ExpectedSuccess(t, err)
	test.Equate(t, *ticks, 100)
	test.Equate(t, md.Path(), "RUN")
	test.Equate(t, len(md.RemainingArgs()), 1)
}
