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
	"encoding/binary"
	"io"

	"github.com/quillon/gopher68k/curated"
)

// Sentinal errors returned while reading fixture containers.
const (
	NotAFixture        = "fixture: not a fixture container"
	UnsupportedVersion = "fixture: unsupported container version: %d"
	CorruptFixture     = "fixture: corrupt container: %v"
)

// fixture container magic and the version this package reads and writes.
var magic = [4]byte{'G', '6', '8', 'K'}

const containerVersion = 1

// flag bits of a BusAccess.
const (
	// the access is a write. reads have the bit clear
	FlagWrite = 0x80

	// the low three bits are the function code of the access
	FlagFCMask = 0x07
)

// RegisterState is a complete snapshot of the programmer visible register
// file.
type RegisterState struct {
	D   [8]uint32
	A   [7]uint32
	USP uint32
	SSP uint32
	PC  uint32
	SR  uint16
}

// MemoryPatch is a run of bytes at an address: the initial contents of a
// stretch of memory, or the expected final contents.
type MemoryPatch struct {
	Address uint32
	Data    []uint8
}

// BusAccess is one expected bus transaction: the cycle it completes on,
// its direction and function code, and the address and data involved. byte
// accesses record the byte in the low half of Data.
type BusAccess struct {
	Cycle   uint32
	Flags   uint8
	Address uint32
	Data    uint16
}

// Case is one verification case.
type Case struct {
	Name string

	Initial       RegisterState
	InitialMemory []MemoryPatch

	Final       RegisterState
	FinalMemory []MemoryPatch

	BusTrace []BusAccess

	// the number of cycles the case runs for
	CycleBudget uint32
}

// Fixture is the decoded contents of a fixture container.
type Fixture struct {
	Cases []Case
}

// Encode writes the fixture as a container to w.
func (f Fixture) Encode(w io.Writer) error {
	write := func(v interface{}) error {
		return binary.Write(w, binary.BigEndian, v)
	}

	if _, err := w.Write(magic[:]); err != nil {
		return curated.Errorf(CorruptFixture, err)
	}
	if err := write(uint16(containerVersion)); err != nil {
		return curated.Errorf(CorruptFixture, err)
	}
	if err := write(uint16(len(f.Cases))); err != nil {
		return curated.Errorf(CorruptFixture, err)
	}

	for _, c := range f.Cases {
		if err := write(uint16(len(c.Name))); err != nil {
			return curated.Errorf(CorruptFixture, err)
		}
		if _, err := w.Write([]byte(c.Name)); err != nil {
			return curated.Errorf(CorruptFixture, err)
		}

		if err := write(c.Initial); err != nil {
			return curated.Errorf(CorruptFixture, err)
		}
		if err := encodePatches(w, c.InitialMemory); err != nil {
			return err
		}
		if err := write(c.Final); err != nil {
			return curated.Errorf(CorruptFixture, err)
		}
		if err := encodePatches(w, c.FinalMemory); err != nil {
			return err
		}

		if err := write(uint32(len(c.BusTrace))); err != nil {
			return curated.Errorf(CorruptFixture, err)
		}
		for _, b := range c.BusTrace {
			if err := write(b); err != nil {
				return curated.Errorf(CorruptFixture, err)
			}
		}

		if err := write(c.CycleBudget); err != nil {
			return curated.Errorf(CorruptFixture, err)
		}
	}

	return nil
}

func encodePatches(w io.Writer, patches []MemoryPatch) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(patches))); err != nil {
		return curated.Errorf(CorruptFixture, err)
	}
	for _, p := range patches {
		if err := binary.Write(w, binary.BigEndian, p.Address); err != nil {
			return curated.Errorf(CorruptFixture, err)
		}
		if err := binary.Write(w, binary.BigEndian, uint32(len(p.Data))); err != nil {
			return curated.Errorf(CorruptFixture, err)
		}
		if _, err := w.Write(p.Data); err != nil {
			return curated.Errorf(CorruptFixture, err)
		}
	}
	return nil
}

// limits applied while decoding, so a corrupt container fails cleanly
// rather than trying to allocate nonsense.
const (
	maxCases     = 0xffff
	maxPatches   = 1 << 16
	maxPatchSize = 1 << 24
	maxTrace     = 1 << 24
)

// Decode reads a fixture container from r.
func Decode(r io.Reader) (Fixture, error) {
	var f Fixture

	read := func(v interface{}) error {
		return binary.Read(r, binary.BigEndian, v)
	}

	var m [4]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return f, curated.Errorf(NotAFixture)
	}
	if m != magic {
		return f, curated.Errorf(NotAFixture)
	}

	var version uint16
	if err := read(&version); err != nil {
		return f, curated.Errorf(CorruptFixture, err)
	}
	if version != containerVersion {
		return f, curated.Errorf(UnsupportedVersion, version)
	}

	var numCases uint16
	if err := read(&numCases); err != nil {
		return f, curated.Errorf(CorruptFixture, err)
	}

	for i := 0; i < int(numCases); i++ {
		var c Case

		var nameLen uint16
		if err := read(&nameLen); err != nil {
			return f, curated.Errorf(CorruptFixture, err)
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return f, curated.Errorf(CorruptFixture, err)
		}
		c.Name = string(name)

		if err := read(&c.Initial); err != nil {
			return f, curated.Errorf(CorruptFixture, err)
		}
		var err error
		c.InitialMemory, err = decodePatches(r)
		if err != nil {
			return f, err
		}
		if err := read(&c.Final); err != nil {
			return f, curated.Errorf(CorruptFixture, err)
		}
		c.FinalMemory, err = decodePatches(r)
		if err != nil {
			return f, err
		}

		var numTrace uint32
		if err := read(&numTrace); err != nil {
			return f, curated.Errorf(CorruptFixture, err)
		}
		if numTrace > maxTrace {
			return f, curated.Errorf(CorruptFixture, "bus trace too long")
		}
		c.BusTrace = make([]BusAccess, numTrace)
		for j := range c.BusTrace {
			if err := read(&c.BusTrace[j]); err != nil {
				return f, curated.Errorf(CorruptFixture, err)
			}
		}

		if err := read(&c.CycleBudget); err != nil {
			return f, curated.Errorf(CorruptFixture, err)
		}

		f.Cases = append(f.Cases, c)
	}

	return f, nil
}

func decodePatches(r io.Reader) ([]MemoryPatch, error) {
	var num uint32
	if err := binary.Read(r, binary.BigEndian, &num); err != nil {
		return nil, curated.Errorf(CorruptFixture, err)
	}
	if num > maxPatches {
		return nil, curated.Errorf(CorruptFixture, "too many memory patches")
	}

	patches := make([]MemoryPatch, num)
	for i := range patches {
		if err := binary.Read(r, binary.BigEndian, &patches[i].Address); err != nil {
			return nil, curated.Errorf(CorruptFixture, err)
		}
		var size uint32
		if err := binary.Read(r, binary.BigEndian, &size); err != nil {
			return nil, curated.Errorf(CorruptFixture, err)
		}
		if size > maxPatchSize {
			return nil, curated.Errorf(CorruptFixture, "memory patch too large")
		}
		patches[i].Data = make([]uint8, size)
		if _, err := io.ReadFull(r, patches[i].Data); err != nil {
			return nil, curated.Errorf(CorruptFixture, err)
		}
	}

	return patches, nil
}
