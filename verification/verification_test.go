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

package verification_test

import (
	"bytes"
	"testing"

	"github.com/quillon/gopher68k/curated"
	"github.com/quillon/gopher68k/test"
	"github.com/quillon/gopher68k/verification"
)

// nopCase is the simplest possible case: a NOP, four cycles, one prefetch
// on the bus.
func nopCase() verification.Case {
	c := verification.Case{
		Name:        "nop",
		CycleBudget: 4,
	}

	c.Initial.SR = 0x2700
	c.Initial.PC = 0x1000
	c.Initial.SSP = 0x80000

	c.InitialMemory = []verification.MemoryPatch{
		{Address: 0x1000, Data: []uint8{0x4e, 0x71}},
	}

	c.Final = c.Initial
	c.Final.PC = 0x1004

	c.BusTrace = []verification.BusAccess{
		{Cycle: 4, Flags: 0x06, Address: 0x1002, Data: 0x0000},
	}

	return c
}

func moveqCase() verification.Case {
	c := nopCase()
	c.Name = "moveq #5,d0"
	c.InitialMemory[0].Data = []uint8{0x70, 0x05}
	c.Final.D[0] = 5
	return c
}

func TestRunCases(t *testing.T) {
	f := verification.Fixture{
		Cases: []verification.Case{nopCase(), moveqCase()},
	}

	reports, err := verification.RunAll(f)
	test.Equate(t, err, nil)
	test.Equate(t, len(reports), 2)
	for _, rep := range reports {
		if !rep.Passed() {
			t.Errorf("unexpected mismatch: %s", rep.String())
		}
	}
}

func TestRunMismatch(t *testing.T) {
	c := moveqCase()
	c.Final.D[0] = 6

	rep, err := verification.Run(c)
	test.Equate(t, err, nil)
	test.Equate(t, rep.Passed(), false)
	test.Equate(t, len(rep.Mismatches), 1)
}

func TestRunTraceMismatch(t *testing.T) {
	c := nopCase()
	c.BusTrace = nil

	rep, err := verification.Run(c)
	test.Equate(t, err, nil)
	test.Equate(t, rep.Passed(), false)
}

func TestContainerRoundTrip(t *testing.T) {
	f := verification.Fixture{
		Cases: []verification.Case{nopCase(), moveqCase()},
	}

	b := &bytes.Buffer{}
	test.Equate(t, f.Encode(b), nil)

	g, err := verification.Decode(b)
	test.Equate(t, err, nil)
	test.Equate(t, len(g.Cases), 2)
	test.Equate(t, g.Cases[0].Name, "nop")
	test.Equate(t, g.Cases[1].Initial.PC, uint32(0x1000))
	test.Equate(t, len(g.Cases[1].BusTrace), 1)

	// the decoded fixture still runs
	reports, err := verification.RunAll(g)
	test.Equate(t, err, nil)
	test.Equate(t, reports[1].Passed(), true)
}

func TestContainerErrors(t *testing.T) {
	_, err := verification.Decode(bytes.NewReader([]byte("JUNKDATA")))
	if !curated.Is(err, verification.NotAFixture) {
		t.Fatalf("expected a not-a-fixture error, got %v", err)
	}

	_, err = verification.Decode(bytes.NewReader([]byte("G6")))
	if !curated.Is(err, verification.NotAFixture) {
		t.Fatalf("expected a not-a-fixture error, got %v", err)
	}

	// a truncated but correctly identified container is corrupt, not
	// unrecognised
	_, err = verification.Decode(bytes.NewReader([]byte("G68K\x00\x01")))
	if !curated.Is(err, verification.CorruptFixture) {
		t.Fatalf("expected a corrupt container error, got %v", err)
	}
}
